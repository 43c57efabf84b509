package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nagaraj2331P/aura-hr-solutions/internal/config"
)

const (
	CollectionStudents    = "students"
	CollectionAdmins      = "admins"
	CollectionProjects    = "projects"
	CollectionSubmissions = "submissions"
	CollectionTimesheets  = "timesheets"
)

func NewConnection(ctx context.Context, cfg *config.Config) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.Database.URI).
		SetMaxPoolSize(cfg.Database.MaxPoolSize)
	if cfg.Database.ConnectTimeout > 0 {
		opts = opts.SetConnectTimeout(cfg.Database.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}

	return client, client.Database(cfg.Database.Name), nil
}

// EnsureIndexes creates the indexes the query paths rely on. Safe to call on
// every startup.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		CollectionStudents: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "skills", Value: 1}}},
		},
		CollectionAdmins: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollectionProjects: {
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "deadline", Value: 1}}},
			{Keys: bson.D{{Key: "assignedTo.student", Value: 1}}},
		},
		CollectionSubmissions: {
			{Keys: bson.D{{Key: "project", Value: 1}, {Key: "student", Value: 1}}},
			{Keys: bson.D{{Key: "student", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "submittedAt", Value: 1}}},
		},
		CollectionTimesheets: {
			{Keys: bson.D{{Key: "student", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "loginTime", Value: -1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := database.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
