package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/ebanking-console/internal/core/domain"
)

type credentialDoc struct {
	Key       string     `bson:"_id"`
	Value     string     `bson:"value"`
	UpdatedAt time.Time  `bson:"updated_at"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// CredentialStore keeps one document per credential key.
type CredentialStore struct {
	coll *mongo.Collection
	ttl  time.Duration
	now  func() time.Time
}

// NewCredentialStore returns a store over the named collection. With a
// positive ttl documents carry an expiry and a TTL index removes them.
func NewCredentialStore(ctx context.Context, db *mongo.Database, collection string, ttl time.Duration) (*CredentialStore, error) {
	s := &CredentialStore{coll: db.Collection(collection), ttl: ttl, now: time.Now}
	if ttl > 0 {
		_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("expires_at_ttl"),
		})
		if err != nil {
			return nil, fmt.Errorf("create ttl index: %w", err)
		}
	}
	return s, nil
}

func (s *CredentialStore) Get(ctx context.Context, key string) (string, error) {
	var doc credentialDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", domain.ErrCredentialNotFound
	}
	if err != nil {
		return "", fmt.Errorf("find credential %s: %w", key, err)
	}
	// The TTL monitor only runs periodically.
	if doc.ExpiresAt != nil && !s.now().Before(*doc.ExpiresAt) {
		return "", domain.ErrCredentialNotFound
	}
	return doc.Value, nil
}

func (s *CredentialStore) Set(ctx context.Context, key, value string) error {
	now := s.now().UTC()
	set := bson.M{"value": value, "updated_at": now}
	update := bson.M{"$set": set}
	if s.ttl > 0 {
		set["expires_at"] = now.Add(s.ttl)
	} else {
		update["$unset"] = bson.M{"expires_at": ""}
	}
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert credential %s: %w", key, err)
	}
	return nil
}

func (s *CredentialStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if _, err := s.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": keys}}); err != nil {
		return fmt.Errorf("delete credentials: %w", err)
	}
	return nil
}

// Ping reports whether the database answers.
func (s *CredentialStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}
