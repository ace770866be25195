package domain

import "github.com/oklog/ulid/v2"

// newID returns a process-unique opaque identifier for accounts and
// customers. ULIDs are collision resistant without shared state and sort
// lexicographically by creation time.
func newID() string {
	return ulid.Make().String()
}
