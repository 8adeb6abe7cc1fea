package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order holds weak references only: UserID points into the relational
// store, ProductIDs into the product collection. TotalAmount is the sum of
// the referenced product prices at the last successful pricing, 2dp; it is
// a cached value and goes stale if the catalog changes afterwards.
type Order struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID      int64                `bson:"userId" json:"userId"`
	ProductIDs  []primitive.ObjectID `bson:"productIds" json:"productIds"`
	TotalAmount float64              `bson:"totalAmount" json:"totalAmount"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// OrderView is the read-path shape: product ids expanded into documents and
// the referenced user joined in. User is null when the referent no longer
// exists; the order stays readable regardless.
type OrderView struct {
	ID          primitive.ObjectID `json:"id"`
	UserID      int64              `json:"userId"`
	Products    []Product          `json:"products"`
	TotalAmount float64            `json:"totalAmount"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	User        *User              `json:"user"`
}
