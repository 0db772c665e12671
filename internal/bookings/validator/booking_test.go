package validator

import (
	"testing"
	"time"

	"piqueunique/pkg/logger"
	"piqueunique/pkg/model"
)

func newTestValidator() *BookingValidator {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return NewBookingValidator(log)
}

func validBooking() *model.Booking {
	return &model.Booking{
		Location:           "klaipeda",
		Date:               time.Now().UTC().AddDate(0, 0, 7).Truncate(24 * time.Hour),
		Time:               "14:00",
		Theme:              "undiniu",
		GuestCount:         4,
		AdditionalServices: []string{"painting"},
		BasePrice:          240,
		AdditionalPrice:    40,
		TotalPrice:         280,
		ContactInfo: model.ContactInfo{
			Name:  "Jonas Jonaitis",
			Email: "jonas@example.lt",
			Phone: "+37060012345",
		},
		Status:        model.StatusPending,
		PaymentStatus: model.PaymentPending,
		UserID:        "user-1",
		UserEmail:     "jonas@example.lt",
	}
}

func TestValidate_ValidBooking(t *testing.T) {
	v := newTestValidator()
	if err := v.Validate(validBooking()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*model.Booking)
	}{
		{"missing location", func(b *model.Booking) { b.Location = "" }},
		{"missing date", func(b *model.Booking) { b.Date = time.Time{} }},
		{"missing time", func(b *model.Booking) { b.Time = "" }},
		{"missing theme", func(b *model.Booking) { b.Theme = "" }},
		{"missing guest count", func(b *model.Booking) { b.GuestCount = 0 }},
		{"missing contact name", func(b *model.Booking) { b.ContactInfo.Name = "" }},
		{"missing contact email", func(b *model.Booking) { b.ContactInfo.Email = "" }},
		{"missing contact phone", func(b *model.Booking) { b.ContactInfo.Phone = "" }},
		{"missing user id", func(b *model.Booking) { b.UserID = "" }},
	}

	v := newTestValidator()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := validBooking()
			tc.mutate(b)
			if err := v.Validate(b); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestValidate_EnumFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*model.Booking)
	}{
		{"unknown location", func(b *model.Booking) { b.Location = "vilnius" }},
		{"unknown time slot", func(b *model.Booking) { b.Time = "12:00" }},
		{"unknown theme", func(b *model.Booking) { b.Theme = "pirate" }},
		{"unknown status", func(b *model.Booking) { b.Status = "archived" }},
		{"guest count above band", func(b *model.Booking) { b.GuestCount = 15 }},
		{"guest count below band", func(b *model.Booking) { b.GuestCount = 1 }},
	}

	v := newTestValidator()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := validBooking()
			tc.mutate(b)
			if err := v.Validate(b); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestValidate_TotalMustMatchParts(t *testing.T) {
	v := newTestValidator()
	b := validBooking()
	b.TotalPrice = 999
	if err := v.Validate(b); err == nil {
		t.Error("expected validation error for inconsistent total")
	}
}

func TestValidate_PastDateRejected(t *testing.T) {
	v := newTestValidator()
	b := validBooking()
	b.Date = time.Now().UTC().AddDate(0, 0, -1)
	if err := v.Validate(b); err == nil {
		t.Error("expected validation error for past date")
	}
}

func TestValidate_BadPhone(t *testing.T) {
	v := newTestValidator()
	b := validBooking()
	b.ContactInfo.Phone = "860012345"
	if err := v.Validate(b); err == nil {
		t.Error("expected validation error for non-E.164 phone")
	}
}

func TestValidateDraft_PartialFieldsAllowed(t *testing.T) {
	v := newTestValidator()
	draft := &model.Draft{
		UserID:     "user-1",
		GuestCount: 3,
	}
	if err := v.ValidateDraft(draft); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateDraft_SuppliedFieldsStillChecked(t *testing.T) {
	v := newTestValidator()
	draft := &model.Draft{
		UserID:   "user-1",
		Location: "vilnius",
	}
	if err := v.ValidateDraft(draft); err == nil {
		t.Error("expected validation error for unknown location")
	}
}

func TestValidateDraft_RequiresUser(t *testing.T) {
	v := newTestValidator()
	if err := v.ValidateDraft(&model.Draft{}); err == nil {
		t.Error("expected validation error for missing user id")
	}
}

func TestValidatePatch(t *testing.T) {
	v := newTestValidator()

	name := "Rūta"
	good := &model.BookingPatch{ContactInfo: &model.ContactInfoPatch{Name: &name}}
	if err := v.ValidatePatch(good); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	badPhone := "nope"
	bad := &model.BookingPatch{ContactInfo: &model.ContactInfoPatch{Phone: &badPhone}}
	if err := v.ValidatePatch(bad); err == nil {
		t.Error("expected validation error for bad phone")
	}
}
