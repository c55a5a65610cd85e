package internal

import (
	"github.com/google/uuid"
)

// GenerateRunID returns the unique id stamped on published outcomes and
// audit rows for a single engine pass.
func GenerateRunID() string {
	return uuid.New().String()
}
