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

// ProductRepository defines the storage surface for catalog products.
type ProductRepository interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter bson.M, page, pageSize int) (*models.ProductListResponse, error)
}

// MongoProductRepo is the MongoDB-backed product repository.
type MongoProductRepo struct {
	coll *mongo.Collection
}

func NewMongoProductRepo(coll *mongo.Collection) *MongoProductRepo {
	return &MongoProductRepo{coll: coll}
}

func (repo *MongoProductRepo) Create(ctx context.Context, p *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, bson.M(p.ToMap())); err != nil {
		return fmt.Errorf("error creating product: %w", err)
	}
	return nil
}

func (repo *MongoProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var raw bson.M
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&raw); err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	return models.ProductFromMap(wireMap(raw))
}

func (repo *MongoProductRepo) Update(ctx context.Context, p *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"id": p.ID}
	update := bson.M{"$set": bson.M(p.ToMap())}
	if _, err := repo.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("error updating product %s: %w", p.ID, err)
	}
	return nil
}

func (repo *MongoProductRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := repo.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("error deleting product %s: %w", id, err)
	}
	return nil
}

// List returns a page of products in the standard pagination envelope.
func (repo *MongoProductRepo) List(ctx context.Context, filter bson.M, page, pageSize int) (*models.ProductListResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if filter == nil {
		filter = bson.M{}
	}
	total, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error counting products: %w", err)
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}
	defer cursor.Close(ctx)

	resp := &models.ProductListResponse{Count: int(total), Results: []models.Product{}}
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("error decoding product document: %w", err)
		}
		p, err := models.ProductFromMap(wireMap(raw))
		if err != nil {
			utils.GetLogger().Warn("skipping unreadable product document", zap.Error(err))
			continue
		}
		resp.Results = append(resp.Results, *p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	resp.Next, resp.Previous = pageCursors("/api/products/", page, pageSize, total)
	return resp, nil
}
