package model

import (
	"fmt"
	"time"
)

// Booking statuses. Transitions between them are guarded by the booking
// service; see service.CanTransition.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Payment statuses are recorded as-is, never derived by this service.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

const (
	// DateOnly is the wire and storage format for picnic dates.
	DateOnly = "2006-01-02"

	// SlotDuration is the fixed length of every picnic time slot.
	SlotDuration = 3 * time.Hour
)

// TimeSlots are the fixed slot-start labels a picnic can begin at.
var TimeSlots = []string{"10:00", "14:00", "18:00"}

// ContactInfo identifies the person the picnic is prepared for.
// All three fields are required on a finalized booking.
type ContactInfo struct {
	Name  string `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" bson:"email" validate:"required,email"`
	Phone string `json:"phone" bson:"phone" validate:"required,lt_phone"`
}

// Booking is the immutable reservation record. Identity fields never change
// after Finalize; only status, contact and note fields may be mutated, and
// only through the whitelisted service operations.
type Booking struct {
	ID                 string      `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Location           string      `json:"location" bson:"location" validate:"required,oneof=juodkrante nida klaipeda palanga svencele other"`
	Date               time.Time   `json:"date" bson:"date" validate:"required"`
	Time               string      `json:"time" bson:"time" validate:"required,oneof=10:00 14:00 18:00"`
	Theme              string      `json:"theme" bson:"theme" validate:"required,oneof=undiniu feju laumiu disco"`
	GuestCount         int         `json:"guest_count" bson:"guest_count" validate:"required,min=2,max=14"`
	AdditionalServices []string    `json:"additional_services" bson:"additional_services" validate:"omitempty,unique,dive,min=1"`
	BasePrice          int         `json:"base_price" bson:"base_price" validate:"min=0"`
	AdditionalPrice    int         `json:"additional_price" bson:"additional_price" validate:"min=0"`
	TotalPrice         int         `json:"total_price" bson:"total_price" validate:"required,min=0"`
	ContactInfo        ContactInfo `json:"contact_info" bson:"contact_info"`
	Status             string      `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled"`
	PaymentStatus      string      `json:"payment_status" bson:"payment_status" validate:"required,oneof=pending paid refunded"`
	UserID             string      `json:"user_id" bson:"user_id" validate:"required"`
	UserEmail          string      `json:"user_email,omitempty" bson:"user_email,omitempty" validate:"omitempty,email"`
	SpecialRequests    string      `json:"special_requests,omitempty" bson:"special_requests,omitempty" validate:"omitempty,max=1000"`
	RescheduleNote     string      `json:"reschedule_note,omitempty" bson:"reschedule_note,omitempty" validate:"omitempty,max=1000"`
	CreatedAt          time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at" bson:"updated_at"`
}

// Occupies reports whether the booking holds its slot against other
// reservations. Cancelled bookings never occupy a slot.
func (b *Booking) Occupies() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// SlotKey is the deterministic identifier of a (location, date, time) triple,
// used as the advisory lock _id during finalize.
func SlotKey(location string, date time.Time, slot string) string {
	return fmt.Sprintf("slot_%s_%s_%s", location, date.Format(DateOnly), slot)
}

// ContactInfoPatch carries the owner-editable contact fields. Nil pointers
// leave the stored value untouched (merge, not replace).
type ContactInfoPatch struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,lt_phone"`
}

// BookingPatch is the whitelisted subset of fields the owning user may
// change on an existing booking. Anything else submitted by the client is
// dropped during decoding, not rejected.
type BookingPatch struct {
	ContactInfo     *ContactInfoPatch `json:"contact_info,omitempty"`
	SpecialRequests *string           `json:"special_requests,omitempty" validate:"omitempty,max=1000"`
	RescheduleNote  *string           `json:"reschedule_note,omitempty" validate:"omitempty,max=1000"`
}

// StatusUpdate is the admin request body for a status transition.
type StatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}
