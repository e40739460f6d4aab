package mailroom

import (
	"strings"
	"time"

	"skywrench/internal/domain/incident/valueobjects"
	"skywrench/internal/shared/biztime"
	"skywrench/internal/shared/errors"
)

// Message is the parsed shape of one inbound email handed to the intake
// pipeline by the poller.
type Message struct {
	UID             uint32
	MessageID       string
	From            string
	To              string
	Subject         string
	Body            string
	HasAttachments  bool
	AttachmentCount int
	ReceivedAt      time.Time
}

// InboundRule converts matching inbound emails into incidents. Rules are
// evaluated in ascending priority order; the first match wins.
type InboundRule struct {
	id                 uint
	name               string
	priority           int
	active             bool
	fromPattern        string
	toPattern          string
	subjectPattern     string
	bodyKeywords       string
	requireAttachment  bool
	defaultPriority    valueobjects.Priority
	defaultCategory    valueobjects.ServiceCategory
	defaultSLACategory valueobjects.SLACategory
	autoAssignUserID   *uint

	emailsProcessed  int
	incidentsCreated int
	lastProcessedAt  *time.Time

	createdAt time.Time
	updatedAt time.Time
}

// NewInboundRuleParams carries the attributes of a new intake rule.
type NewInboundRuleParams struct {
	Name               string
	Priority           int
	FromPattern        string
	ToPattern          string
	SubjectPattern     string
	BodyKeywords       string
	RequireAttachment  bool
	DefaultPriority    valueobjects.Priority
	DefaultCategory    valueobjects.ServiceCategory
	DefaultSLACategory valueobjects.SLACategory
	AutoAssignUserID   *uint
}

func NewInboundRule(p NewInboundRuleParams) (*InboundRule, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, errors.NewValidationError("rule name is required")
	}
	defPriority := p.DefaultPriority
	if defPriority == "" {
		defPriority = valueobjects.PriorityMedium
	}
	if !defPriority.IsValid() {
		return nil, errors.NewValidationError("invalid default priority")
	}
	defCategory := p.DefaultCategory
	if defCategory == "" {
		defCategory = valueobjects.CategoryOther
	}
	if !defCategory.IsValid() {
		return nil, errors.NewValidationError("invalid default category")
	}
	defSLA := p.DefaultSLACategory
	if defSLA == "" {
		defSLA = valueobjects.SLAStandard
	}
	if !defSLA.IsValid() {
		return nil, errors.NewValidationError("invalid default SLA category")
	}

	now := biztime.NowUTC()
	return &InboundRule{
		name:               name,
		priority:           p.Priority,
		active:             true,
		fromPattern:        strings.TrimSpace(p.FromPattern),
		toPattern:          strings.TrimSpace(p.ToPattern),
		subjectPattern:     strings.TrimSpace(p.SubjectPattern),
		bodyKeywords:       strings.TrimSpace(p.BodyKeywords),
		requireAttachment:  p.RequireAttachment,
		defaultPriority:    defPriority,
		defaultCategory:    defCategory,
		defaultSLACategory: defSLA,
		autoAssignUserID:   p.AutoAssignUserID,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// ReconstructedInboundRule carries every persisted field.
type ReconstructedInboundRule struct {
	ID                 uint
	Name               string
	Priority           int
	Active             bool
	FromPattern        string
	ToPattern          string
	SubjectPattern     string
	BodyKeywords       string
	RequireAttachment  bool
	DefaultPriority    valueobjects.Priority
	DefaultCategory    valueobjects.ServiceCategory
	DefaultSLACategory valueobjects.SLACategory
	AutoAssignUserID   *uint
	EmailsProcessed    int
	IncidentsCreated   int
	LastProcessedAt    *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func ReconstructInboundRule(r ReconstructedInboundRule) *InboundRule {
	return &InboundRule{
		id:                 r.ID,
		name:               r.Name,
		priority:           r.Priority,
		active:             r.Active,
		fromPattern:        r.FromPattern,
		toPattern:          r.ToPattern,
		subjectPattern:     r.SubjectPattern,
		bodyKeywords:       r.BodyKeywords,
		requireAttachment:  r.RequireAttachment,
		defaultPriority:    r.DefaultPriority,
		defaultCategory:    r.DefaultCategory,
		defaultSLACategory: r.DefaultSLACategory,
		autoAssignUserID:   r.AutoAssignUserID,
		emailsProcessed:    r.EmailsProcessed,
		incidentsCreated:   r.IncidentsCreated,
		lastProcessedAt:    r.LastProcessedAt,
		createdAt:          r.CreatedAt,
		updatedAt:          r.UpdatedAt,
	}
}

func (r *InboundRule) ID() uint                                          { return r.id }
func (r *InboundRule) Name() string                                      { return r.name }
func (r *InboundRule) Priority() int                                     { return r.priority }
func (r *InboundRule) IsActive() bool                                    { return r.active }
func (r *InboundRule) FromPattern() string                               { return r.fromPattern }
func (r *InboundRule) ToPattern() string                                 { return r.toPattern }
func (r *InboundRule) SubjectPattern() string                            { return r.subjectPattern }
func (r *InboundRule) BodyKeywords() string                              { return r.bodyKeywords }
func (r *InboundRule) RequiresAttachment() bool                          { return r.requireAttachment }
func (r *InboundRule) DefaultPriority() valueobjects.Priority            { return r.defaultPriority }
func (r *InboundRule) DefaultCategory() valueobjects.ServiceCategory     { return r.defaultCategory }
func (r *InboundRule) DefaultSLACategory() valueobjects.SLACategory      { return r.defaultSLACategory }
func (r *InboundRule) AutoAssignUserID() *uint                           { return r.autoAssignUserID }
func (r *InboundRule) EmailsProcessed() int                              { return r.emailsProcessed }
func (r *InboundRule) IncidentsCreated() int                             { return r.incidentsCreated }
func (r *InboundRule) LastProcessedAt() *time.Time                       { return r.lastProcessedAt }
func (r *InboundRule) CreatedAt() time.Time                              { return r.createdAt }
func (r *InboundRule) UpdatedAt() time.Time                              { return r.updatedAt }

func (r *InboundRule) SetID(id uint) error {
	if r.id != 0 {
		return errors.NewInternalError("rule ID already set")
	}
	r.id = id
	return nil
}

func (r *InboundRule) Activate() {
	r.active = true
	r.updatedAt = biztime.NowUTC()
}

func (r *InboundRule) Deactivate() {
	r.active = false
	r.updatedAt = biztime.NowUTC()
}

// Matches reports whether the message satisfies every condition on the rule.
func (r *InboundRule) Matches(msg Message) bool {
	if !PatternMatches(r.fromPattern, msg.From) {
		return false
	}
	if !PatternMatches(r.toPattern, msg.To) {
		return false
	}
	if !PatternMatches(r.subjectPattern, msg.Subject) {
		return false
	}
	if !KeywordsMatch(r.bodyKeywords, msg.Body) {
		return false
	}
	if r.requireAttachment && !msg.HasAttachments {
		return false
	}
	return true
}

// RecordProcessed bumps the processed counter; incidentCreated also bumps
// the created counter.
func (r *InboundRule) RecordProcessed(incidentCreated bool) {
	now := biztime.NowUTC()
	r.emailsProcessed++
	if incidentCreated {
		r.incidentsCreated++
	}
	r.lastProcessedAt = &now
	r.updatedAt = now
}
