package models

import (
	"time"
)

// ReservationClient links a client to a reservation with a role tag.
// A client appears at most once per reservation (unique constraint).
type ReservationClient struct {
	ID            int64        `json:"id" bun:",pk,autoincrement"`
	ReservationID int64        `json:"reservation_id" bun:",notnull"`
	Reservation   *Reservation `json:"-" bun:"rel:belongs-to,join:reservation_id=id"`
	ClientID      int64        `json:"client_id" bun:",notnull"`
	Client        *Client      `json:"client,omitempty" bun:"rel:belongs-to,join:client_id=id"`
	Role          string       `json:"role" bun:",notnull,default:'companion'"`
	CreatedAt     time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
