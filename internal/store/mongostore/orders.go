package mongostore

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecommercepro-backend/internal/models"
)

type orderStore struct {
	coll *mongo.Collection
}

func (s orderStore) Insert(ctx context.Context, o models.Order) error {
	_, err := s.coll.InsertOne(ctx, o)
	return err
}

func (s orderStore) List(ctx context.Context, limit int64) ([]models.Order, error) {
	opts := options.Find().
		SetProjection(noID).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (s orderStore) SetStatus(ctx context.Context, id string, status models.OrderStatus) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s orderStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}

// Revenue sums totals of paid orders in Go so mixed double/decimal128
// documents still add up exactly.
func (s orderStore) Revenue(ctx context.Context) (decimal.Decimal, error) {
	cur, err := s.coll.Find(ctx,
		bson.M{"status": models.StatusPaid},
		options.Find().SetProjection(bson.D{{Key: "total", Value: 1}, {Key: "_id", Value: 0}}))
	if err != nil {
		return decimal.Zero, err
	}
	defer cur.Close(ctx)

	total := decimal.Zero
	for cur.Next(ctx) {
		var row struct {
			Total decimal.Decimal `bson:"total"`
		}
		if err := cur.Decode(&row); err != nil {
			return decimal.Zero, fmt.Errorf("decode order total: %w", err)
		}
		total = total.Add(row.Total)
	}
	return total, cur.Err()
}
