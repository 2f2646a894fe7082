package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ntu-info/emogo-backend-chaudharyinder/dto"
	"github.com/ntu-info/emogo-backend-chaudharyinder/entities"
)

var ErrRecordNotFound = errors.New("record not found")

type RecordRepository interface {
	Insert(ctx context.Context, record *entities.Record) (primitive.ObjectID, error)
	Find(ctx context.Context, query dto.ListQuery) ([]*entities.Record, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*entities.Record, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error)
	DeleteVideoless(ctx context.Context) (int64, error)
}

type repo struct {
	collection *mongo.Collection
}

func NewRepo(db *mongo.Database) RecordRepository {
	return &repo{
		collection: db.Collection(entities.Record{}.CollectionName()),
	}
}

func (r *repo) Insert(ctx context.Context, record *entities.Record) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("store returned a non-object id")
	}
	return id, nil
}

func (r *repo) Find(ctx context.Context, query dto.ListQuery) ([]*entities.Record, error) {
	opts := options.Find().
		SetSort(timestampSort()).
		SetSkip(query.Skip).
		SetLimit(query.Limit)

	cursor, err := r.collection.Find(ctx, listFilter(query.Mood), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	// Single forward pass over the cursor.
	records := make([]*entities.Record, 0)
	for cursor.Next(ctx) {
		record := &entities.Record{}
		if err := cursor.Decode(record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *repo) FindByID(ctx context.Context, id primitive.ObjectID) (*entities.Record, error) {
	record := &entities.Record{}
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (r *repo) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *repo) DeleteVideoless(ctx context.Context) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, videolessFilter())
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
