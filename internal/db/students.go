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

type studentRepository struct {
	collection *mongo.Collection
}

func NewStudentRepository(database *mongo.Database) StudentRepository {
	return &studentRepository{collection: database.Collection(CollectionStudents)}
}

func (r *studentRepository) Create(ctx context.Context, student *model.Student) error {
	student.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, student)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.ErrEmailTaken
	}
	return err
}

func (r *studentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Student, error) {
	var student model.Student
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&student)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	var student model.Student
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&student)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) Update(ctx context.Context, student *model.Student) error {
	student.UpdatedAt = time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": student.ID}, student)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *studentRepository) List(ctx context.Context, filter StudentFilter) ([]model.Student, int64, error) {
	query := bson.M{"isActive": true}

	if filter.Search != "" {
		query["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": filter.Search, "$options": "i"}},
			bson.M{"email": bson.M{"$regex": filter.Search, "$options": "i"}},
		}
	}
	if len(filter.Skills) > 0 {
		query["skills"] = bson.M{"$in": filter.Skills}
	}
	if filter.Expertise != "" {
		query["expertise"] = filter.Expertise
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

	var students []model.Student
	if err := cursor.All(ctx, &students); err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

func (r *studentRepository) CountActive(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"isActive": true})
}
