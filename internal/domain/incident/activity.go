package incident

import (
	"strings"
	"time"

	"skywrench/internal/shared/biztime"
	"skywrench/internal/shared/errors"
)

// Activity is a single append-only log entry on an incident's timeline.
type Activity struct {
	id              uint
	incidentID      uint
	actorID         *uint
	action          string
	detail          string
	customerVisible bool
	createdAt       time.Time
}

// NewActivity records an action on an incident. actorID is nil for system
// generated entries; customerVisible controls whether the entry appears on
// the customer timeline.
func NewActivity(incidentID uint, actorID *uint, action, detail string, customerVisible bool) (*Activity, error) {
	if incidentID == 0 {
		return nil, errors.NewValidationError("incident is required")
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return nil, errors.NewValidationError("action is required")
	}
	return &Activity{
		incidentID:      incidentID,
		actorID:         actorID,
		action:          action,
		detail:          strings.TrimSpace(detail),
		customerVisible: customerVisible,
		createdAt:       biztime.NowUTC(),
	}, nil
}

// ReconstructActivity rebuilds an activity from persistence.
func ReconstructActivity(id, incidentID uint, actorID *uint, action, detail string, customerVisible bool, createdAt time.Time) *Activity {
	return &Activity{
		id:              id,
		incidentID:      incidentID,
		actorID:         actorID,
		action:          action,
		detail:          detail,
		customerVisible: customerVisible,
		createdAt:       createdAt,
	}
}

func (a *Activity) ID() uint              { return a.id }
func (a *Activity) IncidentID() uint      { return a.incidentID }
func (a *Activity) ActorID() *uint        { return a.actorID }
func (a *Activity) Action() string        { return a.action }
func (a *Activity) Detail() string        { return a.detail }
func (a *Activity) CustomerVisible() bool { return a.customerVisible }
func (a *Activity) CreatedAt() time.Time  { return a.createdAt }

func (a *Activity) SetID(id uint) error {
	if a.id != 0 {
		return errors.NewInternalError("activity ID already set")
	}
	a.id = id
	return nil
}
