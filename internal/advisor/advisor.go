// Package advisor proposes ways to combine coupons that are usable today.
package advisor

import (
	"fmt"
	"strings"

	"github.com/tayloree/coupon-report/internal/coupon"
)

// MinActive is the smallest active batch that gets any suggestion.
const MinActive = 2

// Kind identifies which rule produced a suggestion.
type Kind string

const (
	KindDrinkFood  Kind = "drink+food"
	KindDoubleFood Kind = "double-food"
	KindSingle     Kind = "single"
)

// Fixed suggestion texts.
const (
	DrinkFoodSaving    = "Bigger savings as a combo"
	DrinkFoodStrategy  = "use the food coupon first, then the drink coupon."
	DoubleFoodLabel    = "Double food combo"
	DoubleFoodSaving   = "Stacked discounts"
	DoubleFoodStrategy = "split across two visits or share with a companion."
	SingleSaving       = "See coupon terms"
	SingleStrategy     = "suitable for any order."
)

// maxSingles caps how many "other" coupons get a suggestion of their own.
const maxSingles = 2

// Suggestion is one heuristic pairing of active coupons.
type Suggestion struct {
	Kind     Kind     `json:"kind"`
	Label    string   `json:"label"`
	Coupons  []string `json:"coupons"`
	Saving   string   `json:"saving"`
	Strategy string   `json:"strategy"`
	Rank     int      `json:"rank"`
}

// Suggest returns combination suggestions for the coupons usable today, in
// fixed priority order. It returns an empty slice for fewer than MinActive
// coupons.
func Suggest(active []coupon.Coupon) []Suggestion {
	out := []Suggestion{}
	if len(active) < MinActive {
		return out
	}

	groups := Groups(active)
	drinks, foods, others := groups[GroupDrink], groups[GroupFood], groups[GroupOther]

	if len(drinks) > 0 && len(foods) > 0 {
		drink, food := drinks[0], foods[0]
		out = append(out, Suggestion{
			Kind:     KindDrinkFood,
			Label:    firstWord(drink.Name) + "+" + firstWord(food.Name),
			Coupons:  []string{drink.Name, food.Name},
			Saving:   DrinkFoodSaving,
			Strategy: DrinkFoodStrategy,
			Rank:     5,
		})
	}

	if len(foods) >= 2 {
		out = append(out, Suggestion{
			Kind:     KindDoubleFood,
			Label:    DoubleFoodLabel,
			Coupons:  []string{foods[0].Name, foods[1].Name},
			Saving:   DoubleFoodSaving,
			Strategy: DoubleFoodStrategy,
			Rank:     4,
		})
	}

	for i, c := range others {
		if i == maxSingles {
			break
		}
		saving := c.Discount
		if saving == "" {
			saving = SingleSaving
		}
		out = append(out, Suggestion{
			Kind:     KindSingle,
			Label:    fmt.Sprintf("General offer %d", i+1),
			Coupons:  []string{c.Name},
			Saving:   saving,
			Strategy: SingleStrategy,
			Rank:     3,
		})
	}

	return out
}

// firstWord splits on any whitespace, so leading spaces and tabs never yield
// an empty label part.
func firstWord(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return name
}
