package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InventoryLot is one purchase of an ingredient. Sales and waste decrement
// Quantity; a lot that reaches zero is deleted, never left at zero.
type InventoryLot struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Restaurant    primitive.ObjectID `bson:"restaurant" json:"restaurant"`
	ItemName      string             `bson:"itemName" json:"itemName"`
	Quantity      float64            `bson:"quantity" json:"quantity"`
	Unit          string             `bson:"unit" json:"unit"`
	Category      string             `bson:"category" json:"category"`
	PurchasePrice float64            `bson:"purchasePrice" json:"purchasePrice"` // cost per unit
	PurchaseDate  time.Time          `bson:"purchaseDate" json:"purchaseDate"`
	ExpiryDate    time.Time          `bson:"expiryDate" json:"expiryDate"`
	EnteredBy     string             `bson:"enteredBy" json:"enteredBy"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// LotUpdate carries the caller-editable fields of an inventory lot.
type LotUpdate struct {
	ItemName      string    `bson:"itemName"`
	Quantity      float64   `bson:"quantity"`
	Unit          string    `bson:"unit"`
	PurchasePrice float64   `bson:"purchasePrice"`
	ExpiryDate    time.Time `bson:"expiryDate"`
}
