package mongo

import (
	"alcyxob/fitness-catalog/internal/domain"
	"alcyxob/fitness-catalog/internal/repository"
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const selectionCollectionName = "slot_selections"

type selectionDocument struct {
	domain.SlotKey `bson:",inline"`
	ExerciseID     string    `bson:"exerciseId"`
	CreatedAt      time.Time `bson:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt"`
}

// mongoSelectionRepository implements repository.SelectionRepository
type mongoSelectionRepository struct {
	collection *mongo.Collection
}

// NewMongoSelectionRepository creates the slot selection store backed by MongoDB.
func NewMongoSelectionRepository(db *mongo.Database) repository.SelectionRepository {
	return &mongoSelectionRepository{
		collection: db.Collection(selectionCollectionName),
	}
}

func keyFilter(key domain.SlotKey) bson.M {
	return bson.M{
		"programId":    key.ProgramID,
		"exerciseSlot": key.ExerciseSlot,
		"categorySlot": key.CategorySlot,
	}
}

// Get retrieves the stored exercise id for key.
func (r *mongoSelectionRepository) Get(ctx context.Context, key domain.SlotKey) (string, error) {
	var doc selectionDocument
	err := r.collection.FindOne(ctx, keyFilter(key)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", repository.ErrNotFound
		}
		return "", err
	}
	return doc.ExerciseID, nil
}

// Set creates the record on first write and overwrites the exercise id afterwards.
func (r *mongoSelectionRepository) Set(ctx context.Context, key domain.SlotKey, exerciseID string) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set":         bson.M{"exerciseId": exerciseID, "updatedAt": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	_, err := r.collection.UpdateOne(ctx, keyFilter(key), update, options.Update().SetUpsert(true))
	return err
}

// EnsureSelectionIndexes creates the unique key index for slot selections.
func EnsureSelectionIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "programId", Value: 1},
				{Key: "exerciseSlot", Value: 1},
				{Key: "categorySlot", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("slot_selection_key"),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		slog.Warn("failed to create indexes", "collection", collection.Name(), "error", err)
	}
}
