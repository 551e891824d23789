package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecommercepro-backend/internal/models"
	"ecommercepro-backend/internal/shop"
)

type cartStore struct {
	coll *mongo.Collection
}

func (s cartStore) FindBySession(ctx context.Context, sessionID string) (*models.Cart, error) {
	var c models.Cart
	err := s.coll.FindOne(ctx, bson.M{"session_id": sessionID}, options.FindOne().SetProjection(noID)).Decode(&c)
	if isNoDocuments(err) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if c.Items == nil {
		c.Items = []models.CartItem{}
	}
	return &c, nil
}

func (s cartStore) Insert(ctx context.Context, c *models.Cart) error {
	_, err := s.coll.InsertOne(ctx, c)
	if mongo.IsDuplicateKeyError(err) {
		return shop.ErrCartExists
	}
	return err
}

// Upsert replaces the whole cart document; concurrent writers for one
// session overwrite each other.
func (s cartStore) Upsert(ctx context.Context, c *models.Cart) error {
	_, err := s.coll.ReplaceOne(ctx, bson.M{"session_id": c.SessionID}, c, options.Replace().SetUpsert(true))
	return err
}

func (s cartStore) Replace(ctx context.Context, c *models.Cart) error {
	res, err := s.coll.ReplaceOne(ctx, bson.M{"session_id": c.SessionID}, c)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
