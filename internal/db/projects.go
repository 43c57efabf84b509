package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nagaraj2331P/aura-hr-solutions/internal/model"
	apperrors "github.com/nagaraj2331P/aura-hr-solutions/pkg/errors"
)

type projectRepository struct {
	collection *mongo.Collection
}

func NewProjectRepository(database *mongo.Database) ProjectRepository {
	return &projectRepository{collection: database.Collection(CollectionProjects)}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	project.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, project)
	return err
}

func (r *projectRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Project, error) {
	var project model.Project
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) Update(ctx context.Context, project *model.Project) error {
	project.UpdatedAt = time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": project.ID}, project)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *projectRepository) List(ctx context.Context, filter ProjectFilter) ([]model.Project, int64, error) {
	query := bson.M{"isActive": true}

	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if len(filter.Skills) > 0 {
		query["skillsRequired"] = bson.M{"$in": filter.Skills}
	}
	if filter.Difficulty != "" {
		query["difficulty"] = filter.Difficulty
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var projects []model.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (r *projectRepository) ListAssignedTo(ctx context.Context, studentID primitive.ObjectID) ([]model.Project, error) {
	query := bson.M{"assignedTo.student": studentID, "isActive": true}

	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var projects []model.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepository) CountActive(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"isActive": true})
}

func (r *projectRepository) StatusDistribution(ctx context.Context) ([]model.StatusCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"isActive": true}}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var counts []model.StatusCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}
