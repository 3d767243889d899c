package completion

import (
	"context"
	"time"
)

// Job фоновый джоб завершения броней
// Переводит подтверждённые брони с истёкшим интервалом в completed -
// это единственный путь получения статуса completed
type Job struct {
	reservationRepo ReservationRepository
	interval        time.Duration
	now             func() time.Time // Подменяется в тестах
	logger          Logger
}

// NewJob создает новый джоб завершения броней
func NewJob(reservationRepo ReservationRepository, interval time.Duration, logger Logger) *Job {
	return &Job{
		reservationRepo: reservationRepo,
		interval:        interval,
		now:             time.Now,
		logger:          logger,
	}
}

// Run запускает цикл завершения броней до отмены контекста
// Первый проход выполняется сразу, далее по тикеру
func (j *Job) Run(ctx context.Context) {
	j.logger.Info("completion job: started, interval=%s", j.interval)

	j.sweep(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("completion job: stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

// sweep выполняет один проход завершения
func (j *Job) sweep(ctx context.Context) {
	completed, err := j.reservationRepo.CompletePast(ctx, j.now())
	if err != nil {
		j.logger.Error("completion job: sweep failed: %v", err)
		return
	}

	if completed > 0 {
		j.logger.Info("completion job: completed %d reservations", completed)
	}
}
