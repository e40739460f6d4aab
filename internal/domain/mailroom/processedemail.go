package mailroom

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"skywrench/internal/shared/biztime"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/utils"
)

// Outcome is the result of running one inbound email through the intake
// pipeline.
type Outcome string

const (
	OutcomeProcessed     Outcome = "processed"
	OutcomeNoRuleMatched Outcome = "no_rule_matched"
	OutcomeFailed        Outcome = "failed"
	OutcomeError         Outcome = "error"
)

const bodyPreviewLimit = 500

// ProcessedEmail is the append-only intake log keyed by message id. Its
// presence makes reprocessing of the same message a no-op.
type ProcessedEmail struct {
	id              uint
	messageID       string
	from            string
	to              string
	subject         string
	bodyPreview     string
	attachmentCount int
	ruleID          *uint
	outcome         Outcome
	errorDetail     string
	incidentID      *uint
	createdAt       time.Time
}

// NewProcessedEmail logs one intake attempt. ruleID and incidentID are nil
// when no rule matched or no incident was created.
func NewProcessedEmail(msg Message, ruleID *uint, outcome Outcome, errorDetail string, incidentID *uint) (*ProcessedEmail, error) {
	messageID := strings.TrimSpace(msg.MessageID)
	if messageID == "" {
		return nil, errors.NewValidationError("message id is required")
	}
	preview := utils.TruncateRunes(msg.Body, bodyPreviewLimit)
	return &ProcessedEmail{
		messageID:       messageID,
		from:            msg.From,
		to:              msg.To,
		subject:         msg.Subject,
		bodyPreview:     preview,
		attachmentCount: msg.AttachmentCount,
		ruleID:          ruleID,
		outcome:         outcome,
		errorDetail:     errorDetail,
		incidentID:      incidentID,
		createdAt:       biztime.NowUTC(),
	}, nil
}

// SyntheticMessageID builds a deterministic id for emails that arrive
// without a Message-ID header, so the intake log can still key and
// deduplicate them.
func SyntheticMessageID(msg Message) string {
	sum := sha256.Sum256([]byte(msg.From + "\x00" + msg.Subject + "\x00" + msg.ReceivedAt.UTC().Format(time.RFC3339)))
	return "<" + hex.EncodeToString(sum[:16]) + "@mailroom.skywrench.local>"
}

// ReconstructProcessedEmail rebuilds a log row from persistence.
func ReconstructProcessedEmail(id uint, messageID, from, to, subject, bodyPreview string, attachmentCount int, ruleID *uint, outcome Outcome, errorDetail string, incidentID *uint, createdAt time.Time) *ProcessedEmail {
	return &ProcessedEmail{
		id:              id,
		messageID:       messageID,
		from:            from,
		to:              to,
		subject:         subject,
		bodyPreview:     bodyPreview,
		attachmentCount: attachmentCount,
		ruleID:          ruleID,
		outcome:         outcome,
		errorDetail:     errorDetail,
		incidentID:      incidentID,
		createdAt:       createdAt,
	}
}

func (p *ProcessedEmail) ID() uint             { return p.id }
func (p *ProcessedEmail) MessageID() string    { return p.messageID }
func (p *ProcessedEmail) From() string         { return p.from }
func (p *ProcessedEmail) To() string           { return p.to }
func (p *ProcessedEmail) Subject() string      { return p.subject }
func (p *ProcessedEmail) BodyPreview() string  { return p.bodyPreview }
func (p *ProcessedEmail) AttachmentCount() int { return p.attachmentCount }
func (p *ProcessedEmail) RuleID() *uint        { return p.ruleID }
func (p *ProcessedEmail) Outcome() Outcome     { return p.outcome }
func (p *ProcessedEmail) ErrorDetail() string  { return p.errorDetail }
func (p *ProcessedEmail) IncidentID() *uint    { return p.incidentID }
func (p *ProcessedEmail) CreatedAt() time.Time { return p.createdAt }

func (p *ProcessedEmail) SetID(id uint) error {
	if p.id != 0 {
		return errors.NewInternalError("processed email ID already set")
	}
	p.id = id
	return nil
}
