package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hyperkh65/loadsim/internal/domain/model"
)

// ContainersRepository stores container catalog overrides.
type ContainersRepository struct {
	collection *mongo.Collection
}

// NewContainersRepository creates a new containers repository.
func NewContainersRepository(db *MongoDB) *ContainersRepository {
	return &ContainersRepository{
		collection: db.Containers,
	}
}

// List returns every stored container ordered by code.
func (r *ContainersRepository) List(ctx context.Context) ([]model.ContainerRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	records := []model.ContainerRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetByCode returns the stored container with the given code, or nil when
// there is none.
func (r *ContainersRepository) GetByCode(ctx context.Context, code string) (*model.ContainerRecord, error) {
	var record model.ContainerRecord
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Upsert creates or replaces the container stored under container.Code and
// bumps its version. On insert the code is taken from the filter.
func (r *ContainersRepository) Upsert(ctx context.Context, container model.Container, updatedBy string) (*model.ContainerRecord, error) {
	set := bson.M{
		"label":      container.Label,
		"inner":      container.Inner,
		"updated_at": time.Now().UTC(),
	}
	if updatedBy != "" {
		set["updated_by"] = updatedBy
	}
	update := bson.M{
		"$set": set,
		"$inc": bson.M{"version": 1},
	}

	var record model.ContainerRecord
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"code": container.Code},
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
