package remote

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abhisek/cogtests/internal/store"
)

// Mongo is a Remote backed by one MongoDB collection of transcripts, one
// document per session keyed by session ID.
type Mongo struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// Dial connects to uri and verifies the server is reachable.
func Dial(ctx context.Context, uri, database, collection string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &Mongo{client: client, collection: client.Database(database).Collection(collection)}, nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) IDs(ctx context.Context) (map[string]bool, error) {
	values, err := m.collection.Distinct(ctx, "_id", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list remote sessions: %w", err)
	}
	ids := make(map[string]bool, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			ids[id] = true
		}
	}
	return ids, nil
}

func (m *Mongo) Push(ctx context.Context, ts []*store.Transcript) error {
	if len(ts) == 0 {
		return nil
	}
	docs := make([]interface{}, len(ts))
	for i, t := range ts {
		docs[i] = t
	}
	_, err := m.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("push sessions: %w", err)
	}
	return nil
}

func (m *Mongo) Fetch(ctx context.Context, exclude map[string]bool) ([]*store.Transcript, int, error) {
	known := make([]string, 0, len(exclude))
	for id := range exclude {
		known = append(known, id)
	}
	cursor, err := m.collection.Find(ctx, bson.M{"_id": bson.M{"$nin": known}})
	if err != nil {
		return nil, 0, fmt.Errorf("fetch sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*store.Transcript
	corrupt := 0
	for cursor.Next(ctx) {
		var t store.Transcript
		if err := cursor.Decode(&t); err != nil {
			corrupt++
			continue
		}
		out = append(out, &t)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("fetch sessions: %w", err)
	}
	return out, corrupt, nil
}
