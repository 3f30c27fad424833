// Package sales implements sale recording: revenue computation, FIFO
// consumption of inventory lots, and archival of ephemeral dish sales.
package sales

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/resto/internal/apperror"
	"github.com/mamadbah2/resto/internal/domain/models"
)

// Store is the persistence surface the recorder needs.
type Store interface {
	DishByID(ctx context.Context, restaurant, id primitive.ObjectID) (*models.Dish, error)
	LotsByItem(ctx context.Context, restaurant primitive.ObjectID, itemName string) ([]models.InventoryLot, error)
	DecrementLot(ctx context.Context, id primitive.ObjectID, qty float64) error
	ConsumeLot(ctx context.Context, id primitive.ObjectID, qty float64) error
	UpsertHistoryDish(ctx context.Context, restaurant primitive.ObjectID, dish *models.Dish, revenue float64, quantity int) error
	InsertSale(ctx context.Context, sale *models.Sale) error
	ListSales(ctx context.Context, restaurant primitive.ObjectID, from, to *time.Time) ([]models.Sale, error)
}

// Line is one (dish, quantity) entry of a sale submission.
type Line struct {
	DishID   primitive.ObjectID
	Quantity int
}

// Recorder records sales against the inventory ledger.
type Recorder struct {
	store  Store
	logger *zap.Logger
}

// NewRecorder wires a new recorder instance.
func NewRecorder(store Store, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{store: store, logger: logger}
}

// lotConsumption is one planned write against a lot.
type lotConsumption struct {
	lotID    primitive.ObjectID
	quantity float64
	exhausts bool // consume the whole lot and delete it
}

// Record validates and persists one sale submission.
//
// The deduction runs in two phases. Planning resolves every dish, aggregates
// the required quantity per ingredient and walks each ingredient's lots
// oldest-purchase-first, computing per-lot consumption without writing
// anything; a missing dish, a missing ingredient or a shortfall aborts here,
// before any mutation. The commit phase then applies the plan with
// conditional writes so a concurrent sale racing this one surfaces as a
// conflict rather than over-consuming a lot. A conflict mid-commit still
// leaves earlier lots of the same plan consumed; callers see the conflict
// and no Sale document is created.
func (r *Recorder) Record(ctx context.Context, restaurant primitive.ObjectID, lines []Line) (*models.Sale, error) {
	if len(lines) == 0 {
		return nil, apperror.NewInvalidInput("expected a non-empty array of dishes")
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, apperror.NewInvalidInput("dish quantity must be positive")
		}
	}

	var (
		totalSales float64
		saleLines  = make([]models.SaleLine, 0, len(lines))
		ephemerals = make(map[primitive.ObjectID]ephemeralTally)
	)

	// Aggregate ingredient requirements across every dish, keeping first-seen
	// order so shortfall errors name ingredients deterministically.
	var reqOrder []string
	required := make(map[string]float64)

	for _, line := range lines {
		dish, err := r.store.DishByID(ctx, restaurant, line.DishID)
		if err != nil {
			return nil, err
		}

		revenue := dish.Price * float64(line.Quantity)
		totalSales += revenue
		saleLines = append(saleLines, models.SaleLine{Dish: dish.ID, Quantity: line.Quantity})

		if dish.IsEphemeral {
			tally := ephemerals[dish.ID]
			tally.dish = dish
			tally.revenue += revenue
			tally.quantity += line.Quantity
			ephemerals[dish.ID] = tally
		}

		for _, ing := range dish.Ingredients {
			if _, seen := required[ing.Name]; !seen {
				reqOrder = append(reqOrder, ing.Name)
			}
			required[ing.Name] += ing.Quantity * float64(line.Quantity)
		}
	}

	plan, err := r.planConsumption(ctx, restaurant, reqOrder, required)
	if err != nil {
		return nil, err
	}

	for _, c := range plan {
		if c.exhausts {
			err = r.store.ConsumeLot(ctx, c.lotID, c.quantity)
		} else {
			err = r.store.DecrementLot(ctx, c.lotID, c.quantity)
		}
		if err != nil {
			r.logger.Warn("sale commit aborted",
				zap.String("lot_id", c.lotID.Hex()),
				zap.Error(err))
			return nil, err
		}
	}

	for _, tally := range ephemerals {
		if err := r.store.UpsertHistoryDish(ctx, restaurant, tally.dish, tally.revenue, tally.quantity); err != nil {
			return nil, err
		}
	}

	sale := &models.Sale{
		Restaurant: restaurant,
		Dishes:     saleLines,
		TotalSales: totalSales,
	}
	if err := r.store.InsertSale(ctx, sale); err != nil {
		return nil, err
	}

	r.logger.Info("sale recorded",
		zap.String("sale_id", sale.ID.Hex()),
		zap.Float64("total_sales", sale.TotalSales),
		zap.Int("lines", len(saleLines)))

	return sale, nil
}

type ephemeralTally struct {
	dish     *models.Dish
	revenue  float64
	quantity int
}

// planConsumption walks each ingredient's lots in FIFO order and computes
// the per-lot writes needed to cover the requirement. Read-only.
func (r *Recorder) planConsumption(ctx context.Context, restaurant primitive.ObjectID, order []string, required map[string]float64) ([]lotConsumption, error) {
	var plan []lotConsumption

	for _, name := range order {
		remaining := required[name]

		lots, err := r.store.LotsByItem(ctx, restaurant, name)
		if err != nil {
			return nil, err
		}
		if len(lots) == 0 {
			return nil, apperror.NewNotFound("inventory item", name)
		}

		for _, lot := range lots {
			if remaining <= 0 {
				break
			}
			if lot.Quantity <= remaining {
				plan = append(plan, lotConsumption{lotID: lot.ID, quantity: lot.Quantity, exhausts: true})
				remaining -= lot.Quantity
			} else {
				plan = append(plan, lotConsumption{lotID: lot.ID, quantity: remaining})
				remaining = 0
			}
		}

		if remaining > 0 {
			return nil, apperror.NewInsufficientStock(name, required[name], sumQuantities(lots))
		}
	}

	return plan, nil
}

func sumQuantities(lots []models.InventoryLot) float64 {
	var total float64
	for _, lot := range lots {
		total += lot.Quantity
	}
	return total
}

// History returns sale records, optionally bounded by a saleDate range.
func (r *Recorder) History(ctx context.Context, restaurant primitive.ObjectID, from, to *time.Time) ([]models.Sale, error) {
	return r.store.ListSales(ctx, restaurant, from, to)
}
