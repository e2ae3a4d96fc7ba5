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

// PaymentRepository defines the storage surface for payments.
type PaymentRepository interface {
	Create(ctx context.Context, p *models.Payment) error
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	Update(ctx context.Context, p *models.Payment) error
	List(ctx context.Context, filter bson.M, page, pageSize int) (*models.PaymentListResponse, error)
}

// MongoPaymentRepo is the MongoDB-backed payment repository.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

func NewMongoPaymentRepo(coll *mongo.Collection) *MongoPaymentRepo {
	return &MongoPaymentRepo{coll: coll}
}

func (repo *MongoPaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, bson.M(p.ToMap())); err != nil {
		return fmt.Errorf("error creating payment: %w", err)
	}
	return nil
}

func (repo *MongoPaymentRepo) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var raw bson.M
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&raw); err != nil {
		return nil, fmt.Errorf("payment not found: %w", err)
	}
	return models.PaymentFromMap(wireMap(raw))
}

func (repo *MongoPaymentRepo) Update(ctx context.Context, p *models.Payment) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"id": p.ID}
	update := bson.M{"$set": bson.M(p.ToMap())}
	if _, err := repo.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("error updating payment %s: %w", p.ID, err)
	}
	return nil
}

// List returns a page of payments in the standard pagination envelope.
func (repo *MongoPaymentRepo) List(ctx context.Context, filter bson.M, page, pageSize int) (*models.PaymentListResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if filter == nil {
		filter = bson.M{}
	}
	total, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error counting payments: %w", err)
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing payments: %w", err)
	}
	defer cursor.Close(ctx)

	resp := &models.PaymentListResponse{Count: int(total), Results: []models.Payment{}}
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("error decoding payment document: %w", err)
		}
		p, err := models.PaymentFromMap(wireMap(raw))
		if err != nil {
			utils.GetLogger().Warn("skipping unreadable payment document", zap.Error(err))
			continue
		}
		resp.Results = append(resp.Results, *p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payments: %w", err)
	}
	resp.Next, resp.Previous = pageCursors("/api/payments/", page, pageSize, total)
	return resp, nil
}
