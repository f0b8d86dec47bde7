package logging

import "github.com/oklog/ulid/v2"

// GenerateRunID generates a new ULID for run identification. ULIDs sort by
// creation time, which keeps audit records ordered when aggregated.
func GenerateRunID() string {
	return ulid.Make().String()
}
