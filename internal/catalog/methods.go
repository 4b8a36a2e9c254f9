// Package catalog provides the static reference catalogs used by the
// service: withdrawal methods and waste types. The data is immutable at
// runtime.
package catalog

import "recycle-rewards/internal/model"

// Withdrawal method IDs.
const (
	MethodMTN    = "wm1"
	MethodOrange = "wm2"
	MethodCard   = "wm3"
)

// withdrawalMethods contains all supported payout channels.
// Amounts are in XAF.
var withdrawalMethods = map[string]model.WithdrawalMethod{
	MethodMTN: {
		ID:             MethodMTN,
		Name:           "MTN Mobile Money",
		MinAmount:      500,
		MaxAmount:      100_000,
		FeePercent:     1.5,
		ProcessingTime: "Instantané",
		RequiresPhone:  true,
	},
	MethodOrange: {
		ID:             MethodOrange,
		Name:           "Orange Money",
		MinAmount:      500,
		MaxAmount:      100_000,
		FeePercent:     1.2,
		ProcessingTime: "Instantané",
		RequiresPhone:  true,
	},
	MethodCard: {
		ID:             MethodCard,
		Name:           "Carte Bancaire",
		MinAmount:      1_000,
		MaxAmount:      500_000,
		FeePercent:     2.0,
		ProcessingTime: "2-3 jours ouvrables",
		RequiresPhone:  false,
	},
}

// methodOrder defines the display order for Methods.
var methodOrder = []string{MethodMTN, MethodOrange, MethodCard}

// Methods returns all withdrawal methods in display order.
func Methods() []model.WithdrawalMethod {
	methods := make([]model.WithdrawalMethod, 0, len(methodOrder))
	for _, id := range methodOrder {
		if m, ok := withdrawalMethods[id]; ok {
			methods = append(methods, m)
		}
	}
	return methods
}

// Method returns the withdrawal method for a given ID.
func Method(id string) (model.WithdrawalMethod, bool) {
	m, ok := withdrawalMethods[id]
	return m, ok
}
