package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is one persisted chat exchange: the donor's message, the
// composed reply and the intent it was classified into. Rows are written
// once and never updated.
type Conversation struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Message   string    `db:"message"`
	Response  string    `db:"response"`
	Intent    string    `db:"intent"`
	CreatedAt time.Time `db:"created_at"`
}

// IntentDailyCount is one (day, intent) bucket of the analytics rollup.
type IntentDailyCount struct {
	Date   string `db:"day"`
	Intent string `db:"intent"`
	Count  int64  `db:"count"`
}

// IntentCount is an overall per-intent total.
type IntentCount struct {
	Intent string `db:"intent"`
	Count  int64  `db:"count"`
}
