// Package pricing computes picnic prices. Quote is a pure function: the
// server recomputes every price from the submitted selection and never
// trusts a client-side total.
package pricing

import (
	"fmt"

	apperrors "piqueunique/pkg/errors"
)

// Breakdown is the priced result of a guest-count and add-on selection.
// TotalPrice is always BasePrice + AdditionalPrice.
type Breakdown struct {
	BasePrice       int `json:"base_price"`
	AdditionalPrice int `json:"additional_price"`
	TotalPrice      int `json:"total_price"`
}

// baseTier is a contiguous guest-count band with a fixed base price.
type baseTier struct {
	minGuests int
	maxGuests int
	price     int
}

var baseTiers = []baseTier{
	{2, 2, 200},
	{3, 6, 240},
	{7, 10, 290},
	{11, 14, 380},
}

// MinGuests and MaxGuests bound the bookable party size.
const (
	MinGuests = 2
	MaxGuests = 14
)

// BasePrice returns the tier price for a guest count. Counts outside the
// defined bands are rejected, never clamped or defaulted.
func BasePrice(guestCount int) (int, error) {
	for _, tier := range baseTiers {
		if guestCount >= tier.minGuests && guestCount <= tier.maxGuests {
			return tier.price, nil
		}
	}
	return 0, apperrors.Validation(
		fmt.Sprintf("guest count %d is outside the bookable range %d-%d", guestCount, MinGuests, MaxGuests),
		map[string]any{"field": "guest_count", "min": MinGuests, "max": MaxGuests},
	)
}

// addOnPrice computes one selected add-on's contribution.
func addOnPrice(a AddOn, guestCount int) int {
	switch a.Unit {
	case UnitPerGuest:
		return a.Price * guestCount
	case UnitPerFiveGuests:
		groups := (guestCount + 4) / 5
		return a.Price * groups
	default:
		return a.Price
	}
}

// Quote prices a selection. Duplicate add-on IDs are counted once; an
// unknown ID is a validation error.
func Quote(guestCount int, addOnIDs []string) (Breakdown, error) {
	base, err := BasePrice(guestCount)
	if err != nil {
		return Breakdown{}, err
	}

	additional := 0
	seen := make(map[string]struct{}, len(addOnIDs))
	for _, id := range addOnIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		addOn, ok := Lookup(id)
		if !ok {
			return Breakdown{}, apperrors.Validation(
				fmt.Sprintf("unknown additional service: %s", id),
				map[string]any{"field": "additional_services", "id": id},
			)
		}
		additional += addOnPrice(addOn, guestCount)
	}

	return Breakdown{
		BasePrice:       base,
		AdditionalPrice: additional,
		TotalPrice:      base + additional,
	}, nil
}
