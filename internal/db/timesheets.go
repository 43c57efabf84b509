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

type timesheetRepository struct {
	collection *mongo.Collection
}

func NewTimesheetRepository(database *mongo.Database) TimesheetRepository {
	return &timesheetRepository{collection: database.Collection(CollectionTimesheets)}
}

func (r *timesheetRepository) Create(ctx context.Context, timesheet *model.Timesheet) error {
	if timesheet.ID.IsZero() {
		timesheet.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, timesheet)
	return err
}

func (r *timesheetRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Timesheet, error) {
	var timesheet model.Timesheet
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&timesheet)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &timesheet, nil
}

func (r *timesheetRepository) Update(ctx context.Context, timesheet *model.Timesheet) error {
	timesheet.UpdatedAt = time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": timesheet.ID}, timesheet)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *timesheetRepository) List(ctx context.Context, filter TimesheetFilter) ([]model.Timesheet, int64, error) {
	query := bson.M{}
	if filter.Student != nil {
		query["student"] = *filter.Student
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.StartDate != nil || filter.EndDate != nil {
		dateRange := bson.M{}
		if filter.StartDate != nil {
			dateRange["$gte"] = *filter.StartDate
		}
		if filter.EndDate != nil {
			dateRange["$lte"] = *filter.EndDate
		}
		query["date"] = dateRange
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "loginTime", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var timesheets []model.Timesheet
	if err := cursor.All(ctx, &timesheets); err != nil {
		return nil, 0, err
	}
	return timesheets, total, nil
}

// FindActive returns the student's open work session, or ErrNotFound when
// every session has been closed.
func (r *timesheetRepository) FindActive(ctx context.Context, studentID primitive.ObjectID) (*model.Timesheet, error) {
	query := bson.M{
		"student":    studentID,
		"status":     model.TimesheetStatusActive,
		"logoutTime": nil,
	}

	var timesheet model.Timesheet
	err := r.collection.FindOne(ctx, query).Decode(&timesheet)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &timesheet, nil
}

func (r *timesheetRepository) CountByStatus(ctx context.Context, status model.TimesheetStatus) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}

// ApprovedTotals sums approved hours and earnings for one student.
func (r *timesheetRepository) ApprovedTotals(ctx context.Context, studentID primitive.ObjectID) (float64, float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"student": studentID, "status": model.TimesheetStatusApproved}}},
		{{Key: "$group", Value: bson.M{
			"_id":      nil,
			"hours":    bson.M{"$sum": "$totalHours"},
			"earnings": bson.M{"$sum": "$earnings"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Hours    float64 `bson:"hours"`
		Earnings float64 `bson:"earnings"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, nil
	}
	return results[0].Hours, results[0].Earnings, nil
}

func (r *timesheetRepository) ListApproved(ctx context.Context, from, to time.Time) ([]model.Timesheet, error) {
	query := bson.M{
		"status": model.TimesheetStatusApproved,
		"date":   bson.M{"$gte": from, "$lte": to},
	}

	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var timesheets []model.Timesheet
	if err := cursor.All(ctx, &timesheets); err != nil {
		return nil, err
	}
	return timesheets, nil
}

func (r *timesheetRepository) RecentByStudent(ctx context.Context, studentID primitive.ObjectID, limit int) ([]model.Timesheet, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "loginTime", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"student": studentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var timesheets []model.Timesheet
	if err := cursor.All(ctx, &timesheets); err != nil {
		return nil, err
	}
	return timesheets, nil
}
