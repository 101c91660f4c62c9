// Package promo считает обратный отсчет до конца акции
package promo

import (
	"context"
	"time"

	"perfume-store/internal/models"
)

// Remaining раскладывает время до endsAt на дни, часы, минуты и секунды.
// После окончания акции все значения нулевые.
func Remaining(endsAt, now time.Time) models.Countdown {
	c := models.Countdown{EndsAt: endsAt}
	distance := endsAt.Sub(now)
	if distance < 0 {
		c.Expired = true
		return c
	}

	c.Days = int(distance / (24 * time.Hour))
	c.Hours = int(distance % (24 * time.Hour) / time.Hour)
	c.Minutes = int(distance % time.Hour / time.Minute)
	c.Seconds = int(distance % time.Minute / time.Second)
	return c
}

// Timer отправляет отсчет с фиксированным интервалом
type Timer struct {
	endsAt   time.Time
	interval time.Duration
	now      func() time.Time
}

// NewTimer создает новый экземпляр Timer
func NewTimer(endsAt time.Time, interval time.Duration) *Timer {
	if interval <= 0 {
		interval = time.Second
	}
	return &Timer{endsAt: endsAt, interval: interval, now: time.Now}
}

// Remaining возвращает текущий отсчет
func (t *Timer) Remaining() models.Countdown {
	return Remaining(t.endsAt, t.now())
}

// Run вызывает emit сразу и затем на каждом тике. Завершается, когда
// акция закончилась, отменен ctx или emit вернул ошибку. Тикер всегда
// останавливается.
func (t *Timer) Run(ctx context.Context, emit func(models.Countdown) error) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		c := t.Remaining()
		if err := emit(c); err != nil {
			return err
		}
		if c.Expired {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}
}
