package common

import (
	"log"
	"os"
	"time"

	"github.com/itbasis/go-clock"
)

// Clock is the single time source for deadline checks and pick timestamps.
// Tests swap in clock.NewMock so deadlines are deterministic.
var Clock clock.Clock = clock.New()

const defaultPoolTimezone = "America/Chicago"

// PoolLocation returns the pool's display timezone. Deadlines are stored UTC;
// everything shown to users is rendered in this location.
func PoolLocation() *time.Location {
	name := os.Getenv("POOL_TIMEZONE")
	if name == "" {
		name = defaultPoolTimezone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Invalid POOL_TIMEZONE %q, falling back to %s", name, defaultPoolTimezone)
		loc, _ = time.LoadLocation(defaultPoolTimezone)
	}
	return loc
}

// DeadlinePassed reports whether the week's deadline is in the past.
func DeadlinePassed(deadline time.Time) bool {
	return Clock.Now().After(deadline)
}
