// Package storage archives finished crawl results to MongoDB. The
// archive is optional: with no URI configured every method no-ops, so
// the crawler never needs a database to run.
package storage

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// Record is one archived file discovery.
type Record struct {
	Path     string    `bson:"path"`
	StartDir string    `bson:"startDir"`
	FoundAt  time.Time `bson:"foundAt"`
}

// New connects when uri is non-empty; an empty uri yields a no-op Store.
func New(ctx context.Context, uri string) (*Store, error) {
	if uri == "" {
		return &Store{}, nil
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	return &Store{
		client:     client,
		collection: client.Database("indexcrawl").Collection("files"),
	}, nil
}

// ArchiveRun replaces any previous archive for startDir with the files
// from this run.
func (s *Store) ArchiveRun(ctx context.Context, startDir string, files []string) error {
	if s.client == nil {
		return nil
	}
	if _, err := s.collection.DeleteMany(ctx, bson.M{"startDir": startDir}); err != nil {
		return err
	}
	now := time.Now().UTC()
	docs := make([]any, 0, len(files))
	for _, p := range files {
		docs = append(docs, Record{Path: p, StartDir: startDir, FoundAt: now})
	}
	if len(docs) == 0 {
		return nil
	}
	_, err := s.collection.InsertMany(ctx, docs)
	return err
}

func (s *Store) Close(ctx context.Context) {
	if s.client != nil {
		_ = s.client.Disconnect(ctx)
	}
}
