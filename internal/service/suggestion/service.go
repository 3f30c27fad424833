// Package suggestion turns soon-to-expire inventory into AI-proposed dish
// ideas: filter the ledger, prompt the generation service, parse its
// delimited answer, and drop anything already on the menu.
package suggestion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/resto/internal/apperror"
	"github.com/mamadbah2/resto/internal/domain/models"
	"github.com/mamadbah2/resto/pkg/clients/gemini"
)

// Inventory provides the expiring-lot scan.
type Inventory interface {
	ExpiringWithin(ctx context.Context, restaurant primitive.ObjectID, today time.Time, windowDays int) ([]models.InventoryLot, error)
}

// Menu provides the active dish list used to exclude existing names.
type Menu interface {
	Active(ctx context.Context, restaurant primitive.ObjectID) ([]models.Dish, error)
}

// Result is the suggestion pipeline's answer.
type Result struct {
	Dishes      []models.Suggestion   `json:"dishes"`
	Ingredients []models.InventoryLot `json:"ingredients"`
}

// Service runs the suggestion pipeline. A nil generator means no API key was
// configured and Suggest reports the feature unavailable.
type Service struct {
	inventory  Inventory
	menu       Menu
	generator  gemini.Generator
	windowDays int
	logger     *zap.Logger
}

// NewService wires a new suggestion service instance.
func NewService(inv Inventory, menu Menu, generator gemini.Generator, windowDays int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if windowDays < 1 {
		windowDays = 1
	}
	return &Service{
		inventory:  inv,
		menu:       menu,
		generator:  generator,
		windowDays: windowDays,
		logger:     logger,
	}
}

// Suggest produces dish suggestions for the restaurant's expiring
// ingredients. An empty Result (no error) means nothing expires inside the
// window.
func (s *Service) Suggest(ctx context.Context, restaurant primitive.ObjectID) (*Result, error) {
	if s.generator == nil {
		return nil, apperror.NewServiceUnavailable("dish suggestions are not configured")
	}

	expiring, err := s.inventory.ExpiringWithin(ctx, restaurant, time.Now(), s.windowDays)
	if err != nil {
		return nil, err
	}
	if len(expiring) == 0 {
		return &Result{}, nil
	}

	currentMenu, err := s.menu.Active(ctx, restaurant)
	if err != nil {
		return nil, err
	}

	ingredientNames := distinctItemNames(expiring)
	prompt := buildPrompt(ingredientNames, dishNames(currentMenu))

	responseText, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("generation call failed", zap.Error(err))
		return nil, apperror.NewUpstreamService("failed to generate dish suggestions").WithCause(err)
	}

	parsed := Parse(responseText)
	if len(parsed.Rejected) > 0 {
		s.logger.Warn("rejected malformed suggestion segments",
			zap.Int("rejected", len(parsed.Rejected)),
			zap.Int("accepted", len(parsed.Dishes)))
	}
	if len(parsed.Dishes) == 0 {
		return nil, apperror.NewUpstreamService("generation service returned no parseable suggestions")
	}

	fresh := excludeExisting(parsed.Dishes, currentMenu)

	return &Result{Dishes: fresh, Ingredients: expiring}, nil
}

// buildPrompt renders the fixed chef prompt: the delimited output contract,
// the allowed units, the menu exclusion list and the expiring ingredients.
func buildPrompt(ingredientNames, menuNames []string) string {
	return fmt.Sprintf(`You are a highly skilled chef specializing in creating unique and creative dishes using available ingredients that are about to expire.

Task:
Generate multiple dish suggestions using some or all of these ingredients that will expire soon. It is NOT necessary to use all the ingredients, but the dish should make sense.

Output format:
Return the result in plain text format, where each dish follows this pattern:
dishName: Description: ingredient: quantity: unit; dishName: Description: ingredient: quantity: unit;
Units can be grams, kg, liters, ml, pieces, boxes, and bottle only, no other than that, so give the unit from the given only. The quantity should be a number. The description should be giving information about the dish.

Requirements:
- Return a string containing at least 5 unique and diverse dish suggestions.
- Do NOT include any of the following dishes that are already on the menu: %s.
- Each dish should be separated by a semicolon (;) and should follow the exact pattern.

Ingredients available: %s
`, strings.Join(menuNames, ", "), strings.Join(ingredientNames, ", "))
}

// excludeExisting drops suggestions whose name matches an existing menu dish
// case-insensitively.
func excludeExisting(suggestions []models.Suggestion, menu []models.Dish) []models.Suggestion {
	existing := make(map[string]struct{}, len(menu))
	for _, d := range menu {
		existing[strings.ToLower(d.Name)] = struct{}{}
	}

	out := make([]models.Suggestion, 0, len(suggestions))
	for _, sug := range suggestions {
		if _, taken := existing[strings.ToLower(sug.DishName)]; taken {
			continue
		}
		out = append(out, sug)
	}
	return out
}

func distinctItemNames(lots []models.InventoryLot) []string {
	seen := make(map[string]struct{}, len(lots))
	var names []string
	for _, lot := range lots {
		if _, dup := seen[lot.ItemName]; dup {
			continue
		}
		seen[lot.ItemName] = struct{}{}
		names = append(names, lot.ItemName)
	}
	return names
}

func dishNames(dishes []models.Dish) []string {
	names := make([]string, 0, len(dishes))
	for _, d := range dishes {
		names = append(names, d.Name)
	}
	return names
}
