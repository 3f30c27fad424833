package models

// SalesPoint is one calendar day of revenue in the dashboard trend.
type SalesPoint struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Amount float64 `json:"amount"`
}

// CategoryValue is the inventory value held in one category, with the chart
// color the dashboard renders it in.
type CategoryValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// Dashboard is the read-only rollup returned by GET /api/dashboard.
type Dashboard struct {
	TotalRevenue    float64         `json:"totalRevenue"`
	InventoryValue  float64         `json:"inventoryValue"`
	InventoryItems  float64         `json:"inventoryItems"`
	MenuItemsSold   int             `json:"menuItemsSold"`
	ProfitLoss      float64         `json:"profitLoss"`
	SalesData       []SalesPoint    `json:"salesData"`
	InventoryStatus []CategoryValue `json:"inventoryStatus"`
}

// Suggestion is one AI-proposed dish assembled from expiring ingredients.
type Suggestion struct {
	DishName    string       `json:"dishName"`
	Description string       `json:"description"`
	Ingredients []Ingredient `json:"ingredients"`
}
