package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecommercepro-backend/internal/models"
)

type productStore struct {
	coll *mongo.Collection
}

func (s productStore) List(ctx context.Context, f models.ProductFilter) ([]models.Product, error) {
	filter := bson.M{}
	if f.Category != nil {
		filter["category"] = *f.Category
	}
	if f.Featured != nil {
		filter["featured"] = *f.Featured
	}
	return s.find(ctx, filter)
}

func (s productStore) Get(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	err := s.coll.FindOne(ctx, bson.M{"id": id}, options.FindOne().SetProjection(noID)).Decode(&p)
	if isNoDocuments(err) {
		return p, models.ErrNotFound
	}
	return p, err
}

func (s productStore) Categories(ctx context.Context) ([]string, error) {
	values, err := s.coll.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(values))
	for _, v := range values {
		if c, ok := v.(string); ok {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

func (s productStore) Insert(ctx context.Context, p models.Product) error {
	_, err := s.coll.InsertOne(ctx, p)
	return err
}

func (s productStore) InsertMany(ctx context.Context, ps []models.Product) error {
	docs := make([]any, len(ps))
	for i := range ps {
		docs[i] = ps[i]
	}
	_, err := s.coll.InsertMany(ctx, docs)
	return err
}

func (s productStore) Update(ctx context.Context, p models.Product) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"id": p.ID}, bson.M{"$set": bson.M{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"category":    p.Category,
		"image_url":   p.ImageURL,
		"stock":       p.Stock,
		"featured":    p.Featured,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s productStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s productStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}

func (s productStore) LowStock(ctx context.Context, below int) ([]models.Product, error) {
	return s.find(ctx, bson.M{"stock": bson.M{"$lt": below}})
}

func (s productStore) CategoryCounts(ctx context.Context) ([]models.CategoryCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "category", Value: "$_id"},
			{Key: "count", Value: 1},
			{Key: "_id", Value: 0},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "category", Value: 1}}}},
	}
	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	counts := []models.CategoryCount{}
	if err := cur.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("decode category counts: %w", err)
	}
	return counts, nil
}

func (s productStore) find(ctx context.Context, filter bson.M) ([]models.Product, error) {
	cur, err := s.coll.Find(ctx, filter, options.Find().SetProjection(noID))
	if err != nil {
		return nil, err
	}
	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}
