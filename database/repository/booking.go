package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"prbal/models"
	"prbal/utils"
)

// BookingRepository defines the storage surface for bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Update(ctx context.Context, b *models.Booking) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter bson.M, page, pageSize int) (*models.BookingListResponse, error)
}

// MongoBookingRepo is the MongoDB-backed booking repository.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

func NewMongoBookingRepo(coll *mongo.Collection) *MongoBookingRepo {
	return &MongoBookingRepo{coll: coll}
}

func (repo *MongoBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, bson.M(b.ToMap())); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var raw bson.M
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&raw); err != nil {
		return nil, fmt.Errorf("booking not found: %w", err)
	}
	return models.BookingFromMap(wireMap(raw))
}

func (repo *MongoBookingRepo) Update(ctx context.Context, b *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"id": b.ID}
	update := bson.M{"$set": bson.M(b.ToMap())}
	if _, err := repo.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("error updating booking %s: %w", b.ID, err)
	}
	return nil
}

func (repo *MongoBookingRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := repo.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("error deleting booking %s: %w", id, err)
	}
	return nil
}

// List returns a page of bookings in the standard pagination envelope.
func (repo *MongoBookingRepo) List(ctx context.Context, filter bson.M, page, pageSize int) (*models.BookingListResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if filter == nil {
		filter = bson.M{}
	}
	total, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error counting bookings: %w", err)
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer cursor.Close(ctx)

	resp := &models.BookingListResponse{Count: int(total), Results: []models.Booking{}}
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("error decoding booking document: %w", err)
		}
		b, err := models.BookingFromMap(wireMap(raw))
		if err != nil {
			utils.GetLogger().Warn("skipping unreadable booking document", zap.Error(err))
			continue
		}
		resp.Results = append(resp.Results, *b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}
	resp.Next, resp.Previous = pageCursors("/api/bookings/", page, pageSize, total)
	return resp, nil
}
