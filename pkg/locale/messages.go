// Package locale maps internal error codes to the fixed Lithuanian strings
// shown to customers. One message per code; internal detail never leaves
// the service.
package locale

import apperrors "piqueunique/pkg/errors"

var messages = map[string]string{
	apperrors.CodeValidation:   "Pateikti duomenys neteisingi. Patikrinkite užpildytus laukus.",
	apperrors.CodeInvalidInput: "Užklausa suformuota neteisingai.",
	apperrors.CodeUnauthorized: "Norėdami tęsti, prisijunkite.",
	apperrors.CodeForbidden:    "Neturite teisės atlikti šio veiksmo.",
	apperrors.CodeNotFound:     "Rezervacija nerasta.",
	apperrors.CodeConflict:     "Pasirinktas laikas jau rezervuotas. Pasirinkite kitą laiką.",
	apperrors.CodeUnavailable:  "Paslauga laikinai nepasiekiama. Bandykite dar kartą.",
	apperrors.CodeTimeout:      "Užklausa užtruko per ilgai. Bandykite dar kartą.",
	apperrors.CodeInternal:     "Įvyko klaida. Bandykite dar kartą vėliau.",
}

const fallback = "Įvyko klaida. Bandykite dar kartą vėliau."

// Message returns the user-facing Lithuanian string for an error code.
func Message(code string) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return fallback
}
