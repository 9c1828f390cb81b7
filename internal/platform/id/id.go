package id

import "github.com/google/uuid"

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// TimeOrdered yields UUIDv7 values: they sort by creation time and stay unique
// when two items are created within the same millisecond.
type TimeOrdered struct{}

func (TimeOrdered) New() string {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v.String()
}
