package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FormSummary is the compact list-view projection of a Form. Begin, End and
// Name are only present for form types that define them.
type FormSummary struct {
	ID         primitive.ObjectID `json:"id"`
	Type       string             `json:"type"`
	Tag        string             `json:"tag"`
	LastEdit   time.Time          `json:"lastEdit"`
	Begin      *string            `json:"begin,omitempty"`
	End        *string            `json:"end,omitempty"`
	Name       *string            `json:"name,omitempty"`
	IsComplete bool               `json:"isComplete"`
}
