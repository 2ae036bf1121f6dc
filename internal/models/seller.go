package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Seller is the slice of the users collection the catalog is allowed to
// see. The full user document (password, role, ...) belongs to the auth
// service.
type Seller struct {
	ID    primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name  string             `json:"name" bson:"name"`
	Phone string             `json:"phone" bson:"phone"`
}

// SellerSummary is the projection embedded in the public product detail.
type SellerSummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
}

type Category struct {
	ID   int    `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`
}
