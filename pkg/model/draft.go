package model

import "time"

// Draft is the single mutable scratch record of an in-progress booking.
// At most one exists per user; SaveDraft upserts by UserID and Finalize
// deletes it. Every selection field is optional until finalize time.
type Draft struct {
	ID                 string      `json:"id,omitempty" bson:"_id,omitempty"`
	UserID             string      `json:"user_id" bson:"user_id" validate:"required"`
	Location           string      `json:"location,omitempty" bson:"location,omitempty" validate:"omitempty,oneof=juodkrante nida klaipeda palanga svencele other"`
	Date               time.Time   `json:"date,omitzero" bson:"date,omitempty"`
	Time               string      `json:"time,omitempty" bson:"time,omitempty" validate:"omitempty,oneof=10:00 14:00 18:00"`
	Theme              string      `json:"theme,omitempty" bson:"theme,omitempty" validate:"omitempty,oneof=undiniu feju laumiu disco"`
	GuestCount         int         `json:"guest_count,omitempty" bson:"guest_count,omitempty" validate:"omitempty,min=2,max=14"`
	AdditionalServices []string    `json:"additional_services,omitempty" bson:"additional_services,omitempty" validate:"omitempty,unique,dive,min=1"`
	BasePrice          int         `json:"base_price,omitempty" bson:"base_price,omitempty" validate:"omitempty,min=0"`
	AdditionalPrice    int         `json:"additional_price,omitempty" bson:"additional_price,omitempty" validate:"omitempty,min=0"`
	TotalPrice         int         `json:"total_price,omitempty" bson:"total_price,omitempty" validate:"omitempty,min=0"`
	ContactInfo        DraftContact `json:"contact_info,omitzero" bson:"contact_info,omitempty"`
	UserEmail          string      `json:"user_email,omitempty" bson:"user_email,omitempty" validate:"omitempty,email"`
	SpecialRequests    string      `json:"special_requests,omitempty" bson:"special_requests,omitempty" validate:"omitempty,max=1000"`
	IsDraft            bool        `json:"is_draft" bson:"is_draft"`
	CreatedAt          time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at" bson:"updated_at"`
}

// DraftContact mirrors ContactInfo with every field optional.
type DraftContact struct {
	Name  string `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email string `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,lt_phone"`
}
