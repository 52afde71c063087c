package repo

import (
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the createdAt format: UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// NewID returns a time-ordered unique record id.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Timestamp formats t as a createdAt value.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Now returns the current createdAt value.
func Now() string {
	return Timestamp(time.Now())
}

// Reversed returns a copy of records, newest first.
func Reversed[T any](records []T) []T {
	out := make([]T, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r
	}
	return out
}
