package suggestion

import (
	"strconv"
	"strings"

	"github.com/mamadbah2/resto/internal/domain/models"
)

// allowedUnits are the only measurement units the prompt permits the model
// to answer with. Anything else marks a segment malformed.
var allowedUnits = map[string]struct{}{
	"grams":   {},
	"kg":      {},
	"liters":  {},
	"ml":      {},
	"pieces":  {},
	"boxes":   {},
	"bottle":  {},
	"bottles": {},
}

// ParseResult is the typed outcome of parsing a generation response. Rejected
// carries the raw segments that did not match the grammar; they are reported,
// never silently dropped.
type ParseResult struct {
	Dishes   []models.Suggestion
	Rejected []string
}

// Parse interprets the delimited text protocol
//
//	dishName: description: ingredient: quantity: unit[: ingredient: quantity: unit ...]; ...
//
// Segments are separated by semicolons. A segment is accepted only when it
// carries a name, a description and at least one complete (name, numeric
// quantity, allowed unit) ingredient triple; everything else is rejected.
func Parse(responseText string) ParseResult {
	var result ParseResult

	for _, segment := range strings.Split(responseText, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		dish, ok := parseSegment(segment)
		if !ok {
			result.Rejected = append(result.Rejected, segment)
			continue
		}
		result.Dishes = append(result.Dishes, dish)
	}

	return result
}

func parseSegment(segment string) (models.Suggestion, bool) {
	parts := strings.Split(segment, ":")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	// Name, description, then whole (ingredient, quantity, unit) triples.
	if len(parts) < 5 || (len(parts)-2)%3 != 0 {
		return models.Suggestion{}, false
	}
	if parts[0] == "" || parts[1] == "" {
		return models.Suggestion{}, false
	}

	dish := models.Suggestion{
		DishName:    parts[0],
		Description: parts[1],
	}

	for i := 2; i < len(parts); i += 3 {
		name := parts[i]
		qty, err := strconv.ParseFloat(parts[i+1], 64)
		unit := strings.ToLower(parts[i+2])

		if name == "" || err != nil || qty <= 0 {
			return models.Suggestion{}, false
		}
		if _, ok := allowedUnits[unit]; !ok {
			return models.Suggestion{}, false
		}

		dish.Ingredients = append(dish.Ingredients, models.Ingredient{
			Name:     name,
			Quantity: qty,
			Unit:     unit,
		})
	}

	return dish, true
}
