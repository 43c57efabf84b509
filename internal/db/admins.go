package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nagaraj2331P/aura-hr-solutions/internal/model"
	apperrors "github.com/nagaraj2331P/aura-hr-solutions/pkg/errors"
)

type adminRepository struct {
	collection *mongo.Collection
}

func NewAdminRepository(database *mongo.Database) AdminRepository {
	return &adminRepository{collection: database.Collection(CollectionAdmins)}
}

func (r *adminRepository) Create(ctx context.Context, admin *model.Admin) error {
	admin.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, admin)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.ErrEmailTaken
	}
	return err
}

func (r *adminRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Admin, error) {
	var admin model.Admin
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) Update(ctx context.Context, admin *model.Admin) error {
	admin.UpdatedAt = time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": admin.ID}, admin)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
