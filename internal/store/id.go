package store

import (
	"crypto/rand"
	"time"

	"github.com/google/uuid"
)

// NewID returns a UUIDv7 identifier whose timestamp field carries the
// given instant at second resolution. Identifiers created at later
// instants sort after earlier ones, in byte order and in canonical
// string form alike; the 74 random bits keep any two calls from ever
// returning equal values.
func NewID(t time.Time) ID {
	var u uuid.UUID
	if _, err := rand.Read(u[6:]); err != nil {
		panic(err) // crypto/rand does not fail on supported platforms
	}
	ms := uint64(t.UTC().Truncate(time.Second).UnixMilli())
	u[0] = byte(ms >> 40)
	u[1] = byte(ms >> 32)
	u[2] = byte(ms >> 24)
	u[3] = byte(ms >> 16)
	u[4] = byte(ms >> 8)
	u[5] = byte(ms)
	u[6] = (u[6] & 0x0f) | 0x70 // version 7
	u[8] = (u[8] & 0x3f) | 0x80 // RFC 4122 variant
	return u
}
