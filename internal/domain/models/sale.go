package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SaleLine is one (dish, quantity) entry of a recorded sale.
type SaleLine struct {
	Dish     primitive.ObjectID `bson:"dish" json:"dish"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// Sale is one persisted sale submission. TotalSales is the revenue at the
// dish prices in effect when the sale was recorded; it is never recomputed.
type Sale struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Restaurant primitive.ObjectID `bson:"restaurant" json:"restaurant"`
	Dishes     []SaleLine         `bson:"dishes" json:"dishes"`
	TotalSales float64            `bson:"totalSales" json:"totalSales"`
	SaleDate   time.Time          `bson:"saleDate" json:"saleDate"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
