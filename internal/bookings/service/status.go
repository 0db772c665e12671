package service

import "piqueunique/pkg/model"

// allowedTransitions is the booking status machine. Cancelled is terminal;
// a cancelled booking can only be re-created as a new one.
var allowedTransitions = map[string][]string{
	model.StatusPending:   {model.StatusConfirmed, model.StatusCancelled},
	model.StatusConfirmed: {model.StatusCancelled},
	model.StatusCancelled: {},
}

// CanTransition reports whether a booking may move from one status to
// another. Same-status updates are rejected as no-ops.
func CanTransition(from, to string) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
