package domain

import (
	"errors"
	"time"
)

var ErrMessageNotFound = errors.New("message not found")

// Message is a plain text board entry. Listing order follows creation time.
type Message struct {
	ID        string    `bson:"_id" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"-"`
	Text      string    `bson:"text" json:"text"`
}
