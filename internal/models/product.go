package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is the canonical catalog record. All numeric and boolean
// coercion happens before a value reaches this struct; the store persists
// it as-is.
type Product struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SellerID     string             `json:"seller_id" bson:"seller_id"`
	CategoryID   int                `json:"category_id" bson:"category_id"`
	Title        string             `json:"title" bson:"title"`
	Description  string             `json:"description" bson:"description"`
	Price        float64            `json:"price" bson:"price"`
	Stock        int                `json:"stock" bson:"stock"`
	Unit         string             `json:"unit" bson:"unit"`
	Images       []string           `json:"images" bson:"images"`
	LocationCity string             `json:"location_city" bson:"location_city"`
	Currency     string             `json:"currency" bson:"currency"`
	IsActive     bool               `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// ProductUpdate carries a partial field set. Nil pointers mean "leave the
// stored value alone". seller_id is deliberately absent: it is set at
// creation and never altered.
type ProductUpdate struct {
	Title        *string  `json:"title,omitempty"`
	Description  *string  `json:"description,omitempty"`
	CategoryID   *int     `json:"category_id,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Stock        *int     `json:"stock,omitempty"`
	Unit         *string  `json:"unit,omitempty"`
	Images       []string `json:"images,omitempty"`
	LocationCity *string  `json:"location_city,omitempty"`
	Currency     *string  `json:"currency,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
}
