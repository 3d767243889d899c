package completion

import (
	"context"
	"time"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	CompletePast(ctx context.Context, now time.Time) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
