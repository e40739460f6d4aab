package scheduler

import (
	"context"
	"fmt"

	"skywrench/internal/domain/maintenance"
	"skywrench/internal/shared/biztime"
	"skywrench/internal/shared/logger"
)

// MaintenanceNotifier sends the due reminder email.
type MaintenanceNotifier interface {
	NotifyMaintenanceDue(s *maintenance.Schedule)
}

// MaintenanceReminderJob finds schedules past their next due date and sends a
// single reminder per schedule, flagging it so the next scan skips it.
type MaintenanceReminderJob struct {
	repo     maintenance.Repository
	notifier MaintenanceNotifier
	logger   logger.Interface
}

func NewMaintenanceReminderJob(repo maintenance.Repository, notifier MaintenanceNotifier, lg logger.Interface) *MaintenanceReminderJob {
	return &MaintenanceReminderJob{
		repo:     repo,
		notifier: notifier,
		logger:   lg,
	}
}

func (j *MaintenanceReminderJob) Execute(ctx context.Context) (int, error) {
	due, err := j.repo.ListDue(ctx, biztime.NowUTC())
	if err != nil {
		return 0, fmt.Errorf("failed to list due schedules: %w", err)
	}

	notified := 0
	for _, s := range due {
		if s.NotificationSent() {
			continue
		}

		j.notifier.NotifyMaintenanceDue(s)
		s.MarkNotified()

		if err := j.repo.Update(ctx, s); err != nil {
			j.logger.Errorw("failed to flag maintenance reminder",
				"schedule_id", s.ID(),
				"error", err,
			)
			continue
		}
		notified++
	}

	return notified, nil
}
