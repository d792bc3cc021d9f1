package adapter

import "time"

// Clock is the time source for auction deadlines, head-cache freshness and block timestamps
//
//go:generate mockgen -source=clock.go -destination=../mocks/clock.go -package=mocks -mock_names=Clock=MockClock
type Clock interface {
	// Now returns the current wall time
	Now() time.Time

	// Unix converts a block header timestamp to a UTC time
	Unix(sec int64, nsec int64) time.Time
}

type systemClock struct{}

// NewClock returns the system clock
func NewClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Unix(sec int64, nsec int64) time.Time {
	return time.Unix(sec, nsec).UTC()
}
