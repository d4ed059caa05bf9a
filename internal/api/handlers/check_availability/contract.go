package check_availability

import (
	"context"
	"time"
)

type AvailabilityChecker interface {
	Validate(ctx context.Context, spaceID int64, date time.Time, excludeID *int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
