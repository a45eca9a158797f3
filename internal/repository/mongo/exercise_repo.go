package mongo

import (
	"alcyxob/fitness-catalog/internal/repository"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseCollectionName = "exercises"

// mongoExerciseRowRepository implements repository.ExerciseRowRepository
type mongoExerciseRowRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewMongoExerciseRowRepository creates the exercise row store backed by MongoDB.
func NewMongoExerciseRowRepository(db *mongo.Database) repository.ExerciseRowRepository {
	return &mongoExerciseRowRepository{
		collection: db.Collection(exerciseCollectionName),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Find returns one page of rows ordered by name. _id breaks ties so that page
// boundaries stay stable between calls.
func (r *mongoExerciseRowRepository) Find(ctx context.Context, q repository.ExerciseRowQuery) ([]repository.ExerciseRow, error) {
	filter := bson.M{}
	if q.Category != "" {
		filter["category"] = q.Category
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	if q.Offset > 0 {
		findOptions.SetSkip(int64(q.Offset))
	}
	if q.Limit > 0 {
		findOptions.SetLimit(int64(q.Limit))
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := []repository.ExerciseRow{}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID retrieves a single row.
func (r *mongoExerciseRowRepository) FindByID(ctx context.Context, id string) (*repository.ExerciseRow, error) {
	var row repository.ExerciseRow
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&row)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// Insert stores a new row; the caller supplies the id.
func (r *mongoExerciseRowRepository) Insert(ctx context.Context, row *repository.ExerciseRow) error {
	if row.ID == "" || row.Name == "" {
		return errors.New("exercise row id and name are required")
	}

	now := r.now()
	row.CreatedAt = now
	row.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, row); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("exercise %q: %w", row.ID, repository.ErrAlreadyExists)
		}
		return err
	}
	return nil
}

// Update $sets exactly the given fields plus updated_at; other fields are untouched.
func (r *mongoExerciseRowRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	set := bson.M{"updated_at": r.now()}
	for k, v := range fields {
		set[k] = v
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a row. A missing row is reported, never swallowed.
func (r *mongoExerciseRowRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Full and paged listing sort
			Keys:    bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("exercise_name_order"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetName("exercise_category_name"),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		slog.Warn("failed to create indexes", "collection", collection.Name(), "error", err)
	}
}
