package source

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/davin-ai/agriview/services/api/normalize"
)

// Mongo scans a hosted MongoDB collection.
type Mongo struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongo connects a client and pings the primary.
func NewMongo(ctx context.Context, uri, database, collection string) (*Mongo, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect readings collection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping readings database: %w", err)
	}

	return &Mongo{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

// Scan reads every document of the collection, folding BSON-specific
// scalar types to Go-native values before handing rows to the normalizer.
func (m *Mongo) Scan(ctx context.Context) ([]normalize.RawRecord, error) {
	cursor, err := m.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("scan readings collection: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]normalize.RawRecord, 0)
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode reading document: %w", err)
		}
		rec := make(normalize.RawRecord, len(doc))
		for k, v := range doc {
			rec[k] = foldBSONValue(v)
		}
		records = append(records, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("scan readings collection: %w", err)
	}
	return records, nil
}

// foldBSONValue maps driver scalar types onto the plain Go values the
// normalizer understands.
func foldBSONValue(v any) any {
	switch t := v.(type) {
	case bson.DateTime:
		return t.Time().UTC()
	case bson.Decimal128:
		return t.String()
	default:
		return v
	}
}

// Close disconnects the client.
func (m *Mongo) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = m.client.Disconnect(ctx)
}
