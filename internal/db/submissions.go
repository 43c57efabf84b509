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

type submissionRepository struct {
	collection *mongo.Collection
}

func NewSubmissionRepository(database *mongo.Database) SubmissionRepository {
	return &submissionRepository{collection: database.Collection(CollectionSubmissions)}
}

func (r *submissionRepository) Create(ctx context.Context, submission *model.Submission) error {
	submission.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, submission)
	return err
}

func (r *submissionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Submission, error) {
	var submission model.Submission
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&submission)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// Update writes the whole document back. Embedded files and revision history
// ride along, so a transition and its snapshot land in one atomic write.
func (r *submissionRepository) Update(ctx context.Context, submission *model.Submission) error {
	submission.UpdatedAt = time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": submission.ID}, submission)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *submissionRepository) List(ctx context.Context, filter SubmissionFilter) ([]model.Submission, int64, error) {
	query := bson.M{}
	if filter.Student != nil {
		query["student"] = *filter.Student
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "submittedAt", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var submissions []model.Submission
	if err := cursor.All(ctx, &submissions); err != nil {
		return nil, 0, err
	}
	return submissions, total, nil
}

func (r *submissionRepository) CountByStatus(ctx context.Context, status model.SubmissionStatus) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}

func (r *submissionRepository) RecentByStudent(ctx context.Context, studentID primitive.ObjectID, limit int) ([]model.Submission, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"student": studentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var submissions []model.Submission
	if err := cursor.All(ctx, &submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}
