package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	err := Validation("Booking validation failed", nil)
	want := "VALIDATION_ERROR: Booking validation failed"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestAppError_ErrorWithCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("Failed to create booking", cause)
	want := "INTERNAL_ERROR: Failed to create booking (caused by: connection refused)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("write conflict")
	err := Internal("Transaction failed", cause)
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestConstructors_StatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  *AppError
		code string
		http int
	}{
		{"not found", NotFound("Booking"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("bad", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("bad"), CodeInvalidInput, http.StatusBadRequest},
		{"unauthorized", Unauthorized("no credential"), CodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden("not owner"), CodeForbidden, http.StatusForbidden},
		{"conflict", Conflict("slot occupied"), CodeConflict, http.StatusConflict},
		{"internal", Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
		{"timeout", Timeout("too slow"), CodeTimeout, http.StatusGatewayTimeout},
		{"unavailable", Unavailable("MongoDB"), CodeUnavailable, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("Code = %q, want %q", tc.err.Code, tc.code)
			}
			if tc.err.StatusCode() != tc.http {
				t.Errorf("StatusCode() = %d, want %d", tc.err.StatusCode(), tc.http)
			}
		})
	}
}

func TestNotFoundWithID_Details(t *testing.T) {
	err := NotFoundWithID("Booking", "abc123")
	if err.Details["id"] != "abc123" {
		t.Errorf("Details[id] = %v, want abc123", err.Details["id"])
	}
	if err.Details["resource"] != "Booking" {
		t.Errorf("Details[resource] = %v, want Booking", err.Details["resource"])
	}
}

func TestAsAppError_PassesThrough(t *testing.T) {
	orig := Conflict("slot occupied")
	got := AsAppError(orig)
	if got != orig {
		t.Error("expected the same *AppError back")
	}
}

func TestAsAppError_WrapsUnknown(t *testing.T) {
	got := AsAppError(fmt.Errorf("some driver error"))
	if got.Code != CodeInternal {
		t.Errorf("Code = %q, want %q", got.Code, CodeInternal)
	}
}

func TestIsAppError(t *testing.T) {
	if !IsAppError(Forbidden("nope")) {
		t.Error("expected true for *AppError")
	}
	if IsAppError(errors.New("plain")) {
		t.Error("expected false for plain error")
	}
}
