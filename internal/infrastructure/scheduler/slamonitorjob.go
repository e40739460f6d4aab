package scheduler

import (
	"context"
	"fmt"
	"sync"

	"skywrench/internal/domain/incident"
	"skywrench/internal/domain/incident/valueobjects"
	"skywrench/internal/shared/biztime"
	"skywrench/internal/shared/logger"
)

// SLANotifier delivers the escalation email.
type SLANotifier interface {
	NotifySLAWarning(inc *incident.Incident, health string)
}

// slaRank orders health bands so escalations fire only when an incident
// moves into a worse band.
var slaRank = map[valueobjects.SLAStatus]int{
	valueobjects.SLAOnTrack:  0,
	valueobjects.SLAWarning:  1,
	valueobjects.SLACritical: 2,
	valueobjects.SLABreached: 3,
}

// SLAMonitorJob sweeps open incidents and escalates those whose resolution
// budget is in the WARNING band or worse. Notified levels are tracked in
// memory per incident, so a restart re-sends at most one email per incident.
type SLAMonitorJob struct {
	repo       incident.Repository
	notifier   SLANotifier
	thresholds valueobjects.SLAThresholds
	logger     logger.Interface

	mu       sync.Mutex
	notified map[uint]valueobjects.SLAStatus
}

func NewSLAMonitorJob(repo incident.Repository, notifier SLANotifier, thresholds valueobjects.SLAThresholds, lg logger.Interface) *SLAMonitorJob {
	return &SLAMonitorJob{
		repo:       repo,
		notifier:   notifier,
		thresholds: thresholds,
		logger:     lg,
		notified:   make(map[uint]valueobjects.SLAStatus),
	}
}

func (j *SLAMonitorJob) Execute(ctx context.Context) (int, error) {
	now := biztime.NowUTC()
	escalated := 0

	const pageSize = 200
	offset := 0
	for {
		incidents, total, err := j.repo.List(ctx, incident.ListFilter{}, offset, pageSize, "raised_at")
		if err != nil {
			return escalated, fmt.Errorf("failed to list incidents: %w", err)
		}

		for _, inc := range incidents {
			if inc.Status() == valueobjects.StatusClosed {
				j.forget(inc.ID())
				continue
			}

			health := inc.SLAStatus(now, j.thresholds)
			if slaRank[health] < slaRank[valueobjects.SLAWarning] {
				continue
			}
			if !j.shouldEscalate(inc.ID(), health) {
				continue
			}

			j.notifier.NotifySLAWarning(inc, string(health))
			j.logger.Infow("sla escalation sent",
				"incident_number", inc.Number(),
				"sla_health", health,
			)
			escalated++
		}

		offset += pageSize
		if int64(offset) >= total {
			break
		}
	}

	return escalated, nil
}

func (j *SLAMonitorJob) shouldEscalate(id uint, health valueobjects.SLAStatus) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if prev, ok := j.notified[id]; ok && slaRank[health] <= slaRank[prev] {
		return false
	}
	j.notified[id] = health
	return true
}

func (j *SLAMonitorJob) forget(id uint) {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.notified, id)
}
