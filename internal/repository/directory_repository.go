package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stefan-mouope/terabia-catalog/internal/catalog"
	"github.com/stefan-mouope/terabia-catalog/internal/models"
)

// SellerRepository reads the users collection. The catalog never writes
// it; account management is the auth service's job.
type SellerRepository struct {
	collection *mongo.Collection
}

func NewSellerRepository(db *mongo.Database) *SellerRepository {
	return &SellerRepository{collection: db.Collection("users")}
}

func (r *SellerRepository) FindByID(ctx context.Context, id string) (*models.Seller, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, catalog.ErrNotFound
	}

	var seller models.Seller
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&seller)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, catalog.ErrNotFound
		}
		return nil, &catalog.StorageError{Op: "find seller", Err: err}
	}
	return &seller, nil
}

// CategoryRepository answers existence checks against the categories
// collection. Category administration lives elsewhere.
type CategoryRepository struct {
	collection *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{collection: db.Collection("categories")}
}

func (r *CategoryRepository) Exists(ctx context.Context, id int) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, &catalog.StorageError{Op: "count categories", Err: err}
	}
	return count > 0, nil
}
