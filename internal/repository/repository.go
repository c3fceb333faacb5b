// Package repository provides methods to initialize db and store daily temperature averages.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/katiamach/temperature-chart/internal/model"
)

// DB collections.
const (
	dailyAveragesCollection = "dailyAverages"
)

// DB errors.
var (
	ErrNoAveragesForLocation = errors.New("there are no daily averages for the given location")
)

type dailyAverageDoc struct {
	Location  string    `bson:"location"`
	Date      string    `bson:"date"`
	Average   float64   `bson:"average"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// Repository wraps database and mongo client.
type Repository struct {
	client *mongo.Client
	db     *mongo.Database
}

// New creates new repository from the mongo database at uri.
func New(ctx context.Context, uri, database string) (*Repository, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := NewMongoDBClient(ctxWithTimeout, uri)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	db := client.Database(database)

	err = createIndexes(ctxWithTimeout, db)
	if err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return &Repository{
		client: client,
		db:     db,
	}, nil
}

// NewFromDatabase creates a repository on an already connected database.
func NewFromDatabase(db *mongo.Database) *Repository {
	return &Repository{client: db.Client(), db: db}
}

// CreateIndexes creates necessary indexes for collections.
func createIndexes(ctx context.Context, db *mongo.Database) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "location", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := db.Collection(dailyAveragesCollection).Indexes().CreateOne(ctx, indexModel)
	if err != nil {
		return fmt.Errorf("failed to create unique location date index: %w", err)
	}

	return nil
}

// Close closes mongo db connection.
func (r *Repository) Close() error {
	if err := r.client.Disconnect(context.TODO()); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}

	return nil
}

// UpsertDailyAverages inserts or replaces the daily averages of location.
func (r *Repository) UpsertDailyAverages(ctx context.Context, location string, ds model.Dataset) error {
	if len(ds) == 0 {
		return nil
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	writes := make([]mongo.WriteModel, 0, len(ds))
	for _, d := range ds {
		doc := dailyAverageDoc{Location: location, Date: d.Date, Average: d.Average, UpdatedAt: now}
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"location": location, "date": d.Date}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	_, err := r.db.Collection(dailyAveragesCollection).BulkWrite(ctxWithTimeout, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("failed to upsert daily averages: %w", err)
	}

	return nil
}

// GetDailyAverages gets the last days daily averages of location, oldest first. A
// non-positive days returns all of them.
func (r *Repository) GetDailyAverages(ctx context.Context, location string, days int) (model.Dataset, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if days > 0 {
		opts.SetLimit(int64(days))
	}

	cur, err := r.db.Collection(dailyAveragesCollection).Find(ctxWithTimeout, bson.M{"location": location}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctxWithTimeout)

	var docs []dailyAverageDoc
	for cur.Next(ctxWithTimeout) {
		doc := dailyAverageDoc{}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		return nil, ErrNoAveragesForLocation
	}

	// newest first from the query, the chart wants them chronological
	ds := make(model.Dataset, len(docs))
	for i, doc := range docs {
		ds[len(docs)-1-i] = model.DailyAverage{Date: doc.Date, Average: doc.Average}
	}

	return ds, nil
}

// CheckIfAveragesExist checks if any daily averages are stored for location.
func (r *Repository) CheckIfAveragesExist(ctx context.Context, location string) (bool, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	num, err := r.db.Collection(dailyAveragesCollection).CountDocuments(ctxWithTimeout, bson.M{"location": location})

	return num > 0, err
}
