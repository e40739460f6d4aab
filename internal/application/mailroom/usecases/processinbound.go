package usecases

import (
	"context"
	"sort"
	"strings"

	incidentuc "skywrench/internal/application/incident/usecases"
	"skywrench/internal/domain/mailroom"
	"skywrench/internal/shared/logger"
	"skywrench/internal/shared/utils"
)

// IncidentRaiser is the regular incident intake path. Emails go through
// the same pipeline as the API, assignment rules included.
type IncidentRaiser interface {
	Execute(ctx context.Context, cmd incidentuc.RaiseIncidentCommand) (*incidentuc.RaiseIncidentResult, error)
}

// TechnicianAssigner assigns a technician to an incident, used when a
// matching rule carries an auto-assign user.
type TechnicianAssigner interface {
	Execute(ctx context.Context, cmd incidentuc.AssignTechnicianCommand) (*incidentuc.AssignTechnicianResult, error)
}

// CustomerDirectory maps a sender address onto a customer account,
// creating one when the address is unknown.
type CustomerDirectory interface {
	EnsureCustomer(ctx context.Context, email, displayName string) (uint, error)
}

type ProcessResult struct {
	MessageID  string
	Outcome    mailroom.Outcome
	RuleID     *uint
	IncidentID *uint
	Skipped    bool
}

// ProcessInboundUseCase runs inbound emails through the intake rules.
// Every non-skipped message leaves a ProcessedEmail row; failures are
// logged per message and never abort the batch.
type ProcessInboundUseCase struct {
	ruleRepo      mailroom.RuleRepository
	processedRepo mailroom.ProcessedEmailRepository
	raiser        IncidentRaiser
	assigner      TechnicianAssigner
	customers     CustomerDirectory
	logger        logger.Interface
}

func NewProcessInboundUseCase(
	ruleRepo mailroom.RuleRepository,
	processedRepo mailroom.ProcessedEmailRepository,
	raiser IncidentRaiser,
	assigner TechnicianAssigner,
	customers CustomerDirectory,
	logger logger.Interface,
) *ProcessInboundUseCase {
	return &ProcessInboundUseCase{
		ruleRepo:      ruleRepo,
		processedRepo: processedRepo,
		raiser:        raiser,
		assigner:      assigner,
		customers:     customers,
		logger:        logger,
	}
}

// ProcessBatch runs each fetched message through the rules. The returned
// slice has one entry per message, in order.
func (uc *ProcessInboundUseCase) ProcessBatch(ctx context.Context, msgs []mailroom.Message) []ProcessResult {
	results := make([]ProcessResult, 0, len(msgs))
	for _, msg := range msgs {
		result, err := uc.ProcessMessage(ctx, msg)
		if err != nil {
			uc.logger.Errorw("failed to process inbound email",
				"message_id", msg.MessageID, "from", msg.From, "error", err)
			results = append(results, ProcessResult{MessageID: msg.MessageID, Outcome: mailroom.OutcomeError})
			continue
		}
		results = append(results, *result)
	}
	return results
}

// ProcessMessage handles one email. A message id already present in the
// intake log is skipped without touching the rules.
func (uc *ProcessInboundUseCase) ProcessMessage(ctx context.Context, msg mailroom.Message) (*ProcessResult, error) {
	msg.MessageID = strings.TrimSpace(msg.MessageID)
	if msg.MessageID == "" {
		// Some senders omit the Message-ID header. A deterministic synthetic
		// id keeps the intake log complete and the dedupe check meaningful.
		msg.MessageID = mailroom.SyntheticMessageID(msg)
	}

	exists, err := uc.processedRepo.ExistsByMessageID(ctx, msg.MessageID)
	if err != nil {
		return nil, err
	}
	if exists {
		uc.logger.Debugw("email already processed", "message_id", msg.MessageID)
		return &ProcessResult{MessageID: msg.MessageID, Skipped: true}, nil
	}

	rule, err := uc.matchRule(ctx, msg)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		if err := uc.logOutcome(ctx, msg, nil, mailroom.OutcomeNoRuleMatched, "", nil); err != nil {
			return nil, err
		}
		return &ProcessResult{MessageID: msg.MessageID, Outcome: mailroom.OutcomeNoRuleMatched}, nil
	}

	ruleID := rule.ID()
	incidentID, raiseErr := uc.raiseFromEmail(ctx, msg, rule)

	rule.RecordProcessed(raiseErr == nil)
	if err := uc.ruleRepo.Update(ctx, rule); err != nil {
		uc.logger.Errorw("failed to update intake rule counters", "rule_id", ruleID, "error", err)
	}

	if raiseErr != nil {
		if err := uc.logOutcome(ctx, msg, &ruleID, mailroom.OutcomeFailed, raiseErr.Error(), nil); err != nil {
			return nil, err
		}
		uc.logger.Errorw("failed to create incident from email",
			"message_id", msg.MessageID, "rule_id", ruleID, "error", raiseErr)
		return &ProcessResult{MessageID: msg.MessageID, Outcome: mailroom.OutcomeFailed, RuleID: &ruleID}, nil
	}

	if err := uc.logOutcome(ctx, msg, &ruleID, mailroom.OutcomeProcessed, "", &incidentID); err != nil {
		return nil, err
	}
	uc.logger.Infow("incident created from email",
		"message_id", msg.MessageID, "rule_id", ruleID, "incident_id", incidentID)
	return &ProcessResult{
		MessageID:  msg.MessageID,
		Outcome:    mailroom.OutcomeProcessed,
		RuleID:     &ruleID,
		IncidentID: &incidentID,
	}, nil
}

func (uc *ProcessInboundUseCase) matchRule(ctx context.Context, msg mailroom.Message) (*mailroom.InboundRule, error) {
	rules, err := uc.ruleRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority() < rules[j].Priority()
	})
	for _, rule := range rules {
		if rule.Matches(msg) {
			return rule, nil
		}
	}
	return nil, nil
}

func (uc *ProcessInboundUseCase) raiseFromEmail(ctx context.Context, msg mailroom.Message, rule *mailroom.InboundRule) (uint, error) {
	customerID, err := uc.customers.EnsureCustomer(ctx, msg.From, senderDisplayName(msg.From))
	if err != nil {
		return 0, err
	}

	title := strings.TrimSpace(msg.Subject)
	if title == "" {
		title = "Email from " + msg.From
	}
	title = utils.TruncateRunes(title, 200)

	result, err := uc.raiser.Execute(ctx, incidentuc.RaiseIncidentCommand{
		Title:       title,
		Description: msg.Body,
		Category:    string(rule.DefaultCategory()),
		Priority:    string(rule.DefaultPriority()),
		SLACategory: string(rule.DefaultSLACategory()),
		CustomerID:  customerID,
	})
	if err != nil {
		return 0, err
	}

	if userID := rule.AutoAssignUserID(); userID != nil && result.TechnicianID == nil {
		if _, err := uc.assigner.Execute(ctx, incidentuc.AssignTechnicianCommand{
			IncidentID:   result.IncidentID,
			TechnicianID: *userID,
			ActorID:      *userID,
		}); err != nil {
			uc.logger.Errorw("failed to auto-assign emailed incident",
				"incident_id", result.IncidentID, "user_id", *userID, "error", err)
		}
	}
	return result.IncidentID, nil
}

func (uc *ProcessInboundUseCase) logOutcome(ctx context.Context, msg mailroom.Message, ruleID *uint, outcome mailroom.Outcome, errorDetail string, incidentID *uint) error {
	entry, err := mailroom.NewProcessedEmail(msg, ruleID, outcome, errorDetail, incidentID)
	if err != nil {
		return err
	}
	return uc.processedRepo.Save(ctx, entry)
}

// senderDisplayName derives a readable name from the address local part:
// "jane.doe@acme.com" becomes "Jane Doe".
func senderDisplayName(addr string) string {
	local := addr
	if at := strings.Index(addr, "@"); at > 0 {
		local = addr[:at]
	}
	words := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	if len(words) == 0 {
		return addr
	}
	return strings.Join(words, " ")
}
