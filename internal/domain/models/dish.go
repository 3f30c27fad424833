package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ingredient is one bill-of-materials line: the quantity of an inventory item
// consumed per serving of a dish.
type Ingredient struct {
	Name     string  `bson:"name" json:"name"`
	Quantity float64 `bson:"quantity" json:"quantity"`
	Unit     string  `bson:"unit" json:"unit"`
}

// Dish is a menu entry. Ephemeral dishes expire at EphemeralExpiresAt: the
// store carries a TTL index on that field and active-menu reads filter them
// out between TTL monitor passes.
type Dish struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Restaurant         primitive.ObjectID `bson:"restaurant" json:"restaurant"`
	Name               string             `bson:"name" json:"name"`
	Ingredients        []Ingredient       `bson:"ingredients" json:"ingredients"`
	Price              float64            `bson:"price" json:"price"`
	ActiveOnMenu       bool               `bson:"activeOnMenu" json:"activeOnMenu"`
	Category           string             `bson:"category" json:"category"`
	PrepTime           int                `bson:"prepTime" json:"prepTime"`
	Allergens          []string           `bson:"allergens,omitempty" json:"allergens,omitempty"`
	Description        string             `bson:"description,omitempty" json:"description,omitempty"`
	IsEphemeral        bool               `bson:"isEphemeral" json:"isEphemeral"`
	EphemeralExpiresAt *time.Time         `bson:"ephemeralExpiresAt,omitempty" json:"ephemeralExpiresAt,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HistoryDish is the archival copy of an ephemeral dish plus its cumulative
// sales, kept after the dish itself is TTL-deleted.
type HistoryDish struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Restaurant        primitive.ObjectID `bson:"restaurant" json:"restaurant"`
	DishID            primitive.ObjectID `bson:"dishId" json:"dishId"`
	Name              string             `bson:"name" json:"name"`
	Ingredients       []Ingredient       `bson:"ingredients" json:"ingredients"`
	Price             float64            `bson:"price" json:"price"`
	Category          string             `bson:"category" json:"category"`
	PrepTime          int                `bson:"prepTime" json:"prepTime"`
	Allergens         []string           `bson:"allergens,omitempty" json:"allergens,omitempty"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	IsEphemeral       bool               `bson:"isEphemeral" json:"isEphemeral"`
	TotalSales        float64            `bson:"totalSales" json:"totalSales"`
	TotalQuantitySold int                `bson:"totalQuantitySold" json:"totalQuantitySold"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
