package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WasteReason enumerates why inventory was written off.
type WasteReason string

const (
	WasteExpired        WasteReason = "expired"
	WasteSpoiled        WasteReason = "spoiled"
	WasteOverproduction WasteReason = "overproduction"
	WastePreparation    WasteReason = "preparation"
	WasteCustomerReturn WasteReason = "customer-return"
	WasteDamaged        WasteReason = "damaged"
	WasteOther          WasteReason = "other"
)

// ValidWasteReason reports whether r is one of the known write-off reasons.
func ValidWasteReason(r WasteReason) bool {
	switch r {
	case WasteExpired, WasteSpoiled, WasteOverproduction, WastePreparation,
		WasteCustomerReturn, WasteDamaged, WasteOther:
		return true
	}
	return false
}

// WasteRecord books the cost of a manual inventory write-off. ItemName, Unit
// and Price are snapshots taken at write-off time so later lot edits or
// deletion cannot corrupt historical waste cost.
type WasteRecord struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Restaurant    primitive.ObjectID  `bson:"restaurant" json:"restaurant"`
	InventoryItem *primitive.ObjectID `bson:"inventoryItem,omitempty" json:"inventoryItem,omitempty"`
	ItemName      string              `bson:"itemName" json:"itemName"`
	Price         float64             `bson:"price" json:"price"` // unit cost snapshot
	Cost          float64             `bson:"cost" json:"cost"`   // Quantity * Price
	Quantity      float64             `bson:"quantity" json:"quantity"`
	Unit          string              `bson:"unit" json:"unit"`
	Reason        WasteReason         `bson:"reason" json:"reason"`
	Description   string              `bson:"description,omitempty" json:"description,omitempty"`
	Date          time.Time           `bson:"date" json:"date"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// ProfitLossRecord is one profit computation for a day window. The log is
// append-only and several records may exist for the same day.
// TotalInventoryCost is the procurement cost of lots purchased in the window,
// not cost of goods sold.
type ProfitLossRecord struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Restaurant         primitive.ObjectID `bson:"restaurant" json:"restaurant"`
	Date               time.Time          `bson:"date" json:"date"`
	TotalIncome        float64            `bson:"totalIncome" json:"totalIncome"`
	TotalInventoryCost float64            `bson:"totalInventoryCost" json:"totalInventoryCost"`
	TotalWasteCost     float64            `bson:"totalWasteCost" json:"totalWasteCost"`
	Profit             float64            `bson:"profit" json:"profit"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}
