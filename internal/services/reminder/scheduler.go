// Package services содержит напоминания пациентам о незаполненном дневнике:
// планировщик находит пациентов без записи за сегодня и публикует задания
// в очередь, отправитель шлет письма.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/serenecare/internal/lib/sl"
	"github.com/magabrotheeeer/serenecare/internal/models"
	"github.com/magabrotheeeer/serenecare/internal/rabbitmq"
)

// ReminderRepository определяет методы поиска пациентов для напоминаний.
type ReminderRepository interface {
	FindPatientsWithoutLogToday(ctx context.Context) ([]*models.ReminderInfo, error)
}

// SchedulerService периодически находит пациентов без записи в дневнике
// за сегодня и ставит напоминания в очередь.
type SchedulerService struct {
	repo ReminderRepository
	log  *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo ReminderRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		log:  log,
	}
}

// FindPatientsWithoutDailyLog запускает цикл планировщика. Первый проход
// выполняется сразу, дальше раз в 24 часа, пока контекст не отменен.
func (s *SchedulerService) FindPatientsWithoutDailyLog(ctx context.Context, channel *amqp.Channel) {
	s.runFindPatientsWithoutDailyLog(ctx, channel)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runFindPatientsWithoutDailyLog(ctx, channel)
		case <-ctx.Done():
			return
		}
	}
}

func (s *SchedulerService) runFindPatientsWithoutDailyLog(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting service to find patients without a daily log")
	patients, err := s.repo.FindPatientsWithoutLogToday(ctx)
	if err != nil {
		s.log.Error("failed to find patients", sl.Err(err))
		return
	}
	if len(patients) == 0 {
		s.log.Info("all patients have filled in their daily log")
		return
	}
	s.log.Info("found patients without a daily log", "count", len(patients))
	for _, patient := range patients {
		err = rabbitmq.PublishMessage(channel, rabbitmq.NotificationsExchange, rabbitmq.DailyReminderKey, patient)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
