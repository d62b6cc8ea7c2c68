package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Document : attachment metadata for a reservation (the file itself lives
// in external storage, only the path is recorded here).
type Document struct {
	ID            int64        `json:"id" bun:",pk,autoincrement"`
	ReservationID int64        `json:"reservation_id" bun:",notnull"`
	Reservation   *Reservation `json:"-" bun:"rel:belongs-to,join:reservation_id=id"`
	Type          string       `json:"type" bun:",notnull,default:'other'"`
	Filename      string       `json:"filename" bun:",notnull"`
	MimeType      string       `json:"mime_type" bun:",nullzero"`
	SizeBytes     int64        `json:"size_bytes" bun:",nullzero"`
	StoragePath   string       `json:"storage_path" bun:",notnull"`
	CreatedAt     time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	DeletedAt     bun.NullTime `json:"-"`
}
