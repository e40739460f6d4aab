package mailroom

import (
	"context"
	"time"

	usecases "skywrench/internal/application/mailroom/usecases"
	domain "skywrench/internal/domain/mailroom"
	"skywrench/internal/shared/goroutine"
	"skywrench/internal/shared/logger"
)

const fetchBatchLimit = 50

// BatchProcessor runs a fetched batch through the intake rules.
type BatchProcessor interface {
	ProcessBatch(ctx context.Context, msgs []domain.Message) []usecases.ProcessResult
}

// Poller drives the inbound mailbox on a fixed interval from a single owned
// goroutine. The sleep between polls is sliced into one-second ticks so Stop
// takes effect quickly even with long intervals.
type Poller struct {
	client    Client
	processor BatchProcessor
	interval  time.Duration
	logger    logger.Interface

	stopCh chan struct{}
	doneCh chan struct{}
}

func NewPoller(client Client, processor BatchProcessor, interval time.Duration, lg logger.Interface) *Poller {
	return &Poller{
		client:    client,
		processor: processor,
		interval:  interval,
		logger:    lg,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

func (p *Poller) Start() {
	goroutine.SafeGo(p.logger, "mailroom-poller", p.run)
	p.logger.Infow("mailroom poller started", "interval", p.interval)
}

func (p *Poller) run() {
	defer close(p.doneCh)

	for {
		p.pollOnce()

		if !p.sleep(p.interval) {
			return
		}
	}
}

func (p *Poller) pollOnce() {
	msgs, err := p.client.FetchUnseen(fetchBatchLimit)
	if err != nil {
		p.logger.Errorw("failed to fetch inbound email", "error", err)
		return
	}
	if len(msgs) == 0 {
		p.logger.Debugw("no new inbound email")
		return
	}

	results := p.processor.ProcessBatch(context.Background(), msgs)

	created := 0
	for _, r := range results {
		if r.IncidentID != nil {
			created++
		}
	}
	p.logger.Infow("inbound email batch processed",
		"fetched", len(msgs),
		"incidents_created", created,
	)
}

// sleep waits for d, checking the stop channel once per second. It returns
// false when the poller has been stopped.
func (p *Poller) sleep(d time.Duration) bool {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		select {
		case <-p.stopCh:
			return false
		case <-time.After(time.Second):
		}
	}
	return true
}

// Stop signals the poll loop and waits up to timeout for it to exit.
func (p *Poller) Stop(timeout time.Duration) {
	close(p.stopCh)

	select {
	case <-p.doneCh:
		p.logger.Infow("mailroom poller stopped")
	case <-time.After(timeout):
		p.logger.Warnw("mailroom poller did not stop in time", "timeout", timeout)
	}
}
