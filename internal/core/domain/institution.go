package domain

import "time"

// Institution is a tenant microfinance institution managed from the
// super-admin console.
type Institution struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Code      string    `json:"code" bson:"code"`
	City      string    `json:"city" bson:"city"`
	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
