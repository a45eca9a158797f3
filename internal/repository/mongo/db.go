package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// ConnectDB creates a MongoDB client. The driver connects lazily, so an unreachable
// server is not an error here; use Ping to check reachability.
// timeout bounds every operation the driver issues; zero keeps the driver default.
func ConnectDB(uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	if timeout > 0 {
		clientOptions.SetTimeout(timeout)
	}
	return mongo.Connect(ctx, clientOptions)
}

// Ping checks that the primary is reachable.
func Ping(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return client.Ping(ctx, readpref.Primary())
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes of every collection this service owns.
func EnsureIndexes(ctx context.Context, db *mongo.Database) {
	EnsureExerciseIndexes(ctx, db.Collection(exerciseCollectionName))
	EnsureSelectionIndexes(ctx, db.Collection(selectionCollectionName))
}
