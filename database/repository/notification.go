package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"prbal/models"
	"prbal/utils"
)

// NotificationRepository defines the storage surface for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.AppNotification) error
	GetByID(ctx context.Context, id string) (*models.AppNotification, error)
	MarkRead(ctx context.Context, id string, at time.Time) (*models.AppNotification, error)
	List(ctx context.Context, filter bson.M, page, pageSize int) (*models.NotificationListResponse, error)
}

// MongoNotificationRepo is the MongoDB-backed notification repository.
type MongoNotificationRepo struct {
	coll *mongo.Collection
}

func NewMongoNotificationRepo(coll *mongo.Collection) *MongoNotificationRepo {
	return &MongoNotificationRepo{coll: coll}
}

func (repo *MongoNotificationRepo) Create(ctx context.Context, n *models.AppNotification) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, bson.M(n.ToMap())); err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}
	return nil
}

func (repo *MongoNotificationRepo) GetByID(ctx context.Context, id string) (*models.AppNotification, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var raw bson.M
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&raw); err != nil {
		return nil, fmt.Errorf("notification not found: %w", err)
	}
	return models.AppNotificationFromMap(wireMap(raw))
}

// MarkRead stores and returns the read copy of a notification.
func (repo *MongoNotificationRepo) MarkRead(ctx context.Context, id string, at time.Time) (*models.AppNotification, error) {
	n, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	read := n.MarkedRead(at)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M(read.ToMap())}
	if _, err := repo.coll.UpdateOne(ctx, filter, update); err != nil {
		return nil, fmt.Errorf("error marking notification %s read: %w", id, err)
	}
	return read, nil
}

// List returns a page of notifications in the standard pagination envelope.
func (repo *MongoNotificationRepo) List(ctx context.Context, filter bson.M, page, pageSize int) (*models.NotificationListResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if filter == nil {
		filter = bson.M{}
	}
	total, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error counting notifications: %w", err)
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	defer cursor.Close(ctx)

	resp := &models.NotificationListResponse{Count: int(total), Results: []models.AppNotification{}}
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("error decoding notification document: %w", err)
		}
		n, err := models.AppNotificationFromMap(wireMap(raw))
		if err != nil {
			utils.GetLogger().Warn("skipping unreadable notification document", zap.Error(err))
			continue
		}
		resp.Results = append(resp.Results, *n)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}
	resp.Next, resp.Previous = pageCursors("/api/notifications/", page, pageSize, total)
	return resp, nil
}
