package model

import "time"

// SlotLock is an advisory lock keyed by the deterministic slot identifier,
// taken for the duration of a finalize call so two concurrent requests for
// the same (location, date, time) cannot both pass the availability check.
// A TTL index on expires_at reaps locks leaked by crashed requests.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
