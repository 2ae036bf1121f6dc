package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stefan-mouope/terabia-catalog/internal/catalog"
	"github.com/stefan-mouope/terabia-catalog/internal/models"
)

const (
	writeTimeout = 5 * time.Second
	readTimeout  = 3 * time.Second
	listTimeout  = 10 * time.Second
)

// ProductRepository is the Mongo-backed product store. It owns the
// products collection and consults the seller/category directories for
// reference checks on create.
type ProductRepository struct {
	collection *mongo.Collection
	sellers    catalog.SellerDirectory
	categories catalog.CategoryDirectory
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection("products"),
		sellers:    NewSellerRepository(db),
		categories: NewCategoryRepository(db),
	}
}

// Create assigns the id and timestamps, verifies both foreign references
// resolve, and inserts the record.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if _, err := r.sellers.FindByID(ctx, product.SellerID); err != nil {
		if err == catalog.ErrNotFound {
			return catalog.ErrConstraint
		}
		return err
	}
	ok, err := r.categories.Exists(ctx, product.CategoryID)
	if err != nil {
		return err
	}
	if !ok {
		return catalog.ErrConstraint
	}

	product.ID = primitive.NewObjectID()
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.Images == nil {
		product.Images = []string{}
	}

	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return &catalog.StorageError{Op: "insert product", Err: err}
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// An id that is not valid hex can never match a row.
		return nil, catalog.ErrNotFound
	}

	var product models.Product
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, catalog.ErrNotFound
		}
		return nil, &catalog.StorageError{Op: "find product", Err: err}
	}
	return &product, nil
}

// FindAll returns every product in store-native order. A zero window
// means no bound.
func (r *ProductRepository) FindAll(ctx context.Context, w catalog.ListWindow) ([]models.Product, error) {
	return r.find(ctx, bson.M{}, w)
}

// FindBySeller returns every product of one seller, active or not.
func (r *ProductRepository) FindBySeller(ctx context.Context, sellerID string, w catalog.ListWindow) ([]models.Product, error) {
	return r.find(ctx, bson.M{"seller_id": sellerID}, w)
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M, w catalog.ListWindow) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, listOptions(w))
	if err != nil {
		return nil, &catalog.StorageError{Op: "list products", Err: err}
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, &catalog.StorageError{Op: "decode products", Err: err}
	}
	return products, nil
}

// Update applies the fields present in upd and returns the refreshed
// record. A payload re-pointing category_id gets the same existence
// check as create.
func (r *ProductRepository) Update(ctx context.Context, id string, upd models.ProductUpdate) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, catalog.ErrNotFound
	}

	if upd.CategoryID != nil {
		ok, err := r.categories.Exists(ctx, *upd.CategoryID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, catalog.ErrConstraint
		}
	}

	set := updateDocument(upd)
	set["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Product
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, catalog.ErrNotFound
		}
		return nil, &catalog.StorageError{Op: "update product", Err: err}
	}
	return &updated, nil
}

// Delete physically removes the record. Deleting an already-deleted id
// reports ErrNotFound again, never a different error.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return catalog.ErrNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return &catalog.StorageError{Op: "delete product", Err: err}
	}
	if result.DeletedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// listOptions translates a window into find options. Limit and offset
// apply independently: a pure-offset window still skips rows.
func listOptions(w catalog.ListWindow) *options.FindOptions {
	opts := options.Find()
	if w.Limit > 0 {
		opts.SetLimit(w.Limit)
	}
	if w.Offset > 0 {
		opts.SetSkip(w.Offset)
	}
	return opts
}

// updateDocument maps the present fields of a partial payload to a $set
// document. Absent fields stay untouched in the stored record.
func updateDocument(upd models.ProductUpdate) bson.M {
	set := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.CategoryID != nil {
		set["category_id"] = *upd.CategoryID
	}
	if upd.Price != nil {
		set["price"] = *upd.Price
	}
	if upd.Stock != nil {
		set["stock"] = *upd.Stock
	}
	if upd.Unit != nil {
		set["unit"] = *upd.Unit
	}
	if upd.Images != nil {
		set["images"] = upd.Images
	}
	if upd.LocationCity != nil {
		set["location_city"] = *upd.LocationCity
	}
	if upd.Currency != nil {
		set["currency"] = *upd.Currency
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}
	return set
}
