package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wellness/planner/internal/domain"
	"wellness/planner/internal/repository"
)

const profileCollectionName = "user_profiles"

type mongoProfileRepository struct {
	collection *mongo.Collection
}

func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{collection: db.Collection(profileCollectionName)}
}

func (r *mongoProfileRepository) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var p domain.UserProfile
	if err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&p); err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

// Upsert replaces the stored profile with p, creating it on first save.
func (r *mongoProfileRepository) Upsert(ctx context.Context, p *domain.UserProfile) error {
	if p.UserID == "" {
		return errors.New("profile requires a user id")
	}
	p.UpdatedAt = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"userId": p.UserID},
		p,
		options.Replace().SetUpsert(true),
	)
	return mapErr(err)
}

func EnsureProfileIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
