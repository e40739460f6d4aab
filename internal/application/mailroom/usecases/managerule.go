package usecases

import (
	"context"
	"time"

	vo "skywrench/internal/domain/incident/valueobjects"
	"skywrench/internal/domain/mailroom"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
	"skywrench/internal/shared/utils"
)

type CreateInboundRuleCommand struct {
	Name               string
	Priority           int
	FromPattern        string
	ToPattern          string
	SubjectPattern     string
	BodyKeywords       string
	RequireAttachment  bool
	DefaultPriority    string
	DefaultCategory    string
	DefaultSLACategory string
	AutoAssignUserID   *uint
}

type InboundRuleResult struct {
	ID                 uint
	Name               string
	Priority           int
	Active             bool
	FromPattern        string
	ToPattern          string
	SubjectPattern     string
	BodyKeywords       string
	RequireAttachment  bool
	DefaultPriority    string
	DefaultCategory    string
	DefaultSLACategory string
	AutoAssignUserID   *uint
	EmailsProcessed    int
	IncidentsCreated   int
	LastProcessedAt    *time.Time
}

type CreateInboundRuleUseCase struct {
	ruleRepo mailroom.RuleRepository
	logger   logger.Interface
}

func NewCreateInboundRuleUseCase(ruleRepo mailroom.RuleRepository, logger logger.Interface) *CreateInboundRuleUseCase {
	return &CreateInboundRuleUseCase{ruleRepo: ruleRepo, logger: logger}
}

func (uc *CreateInboundRuleUseCase) Execute(ctx context.Context, cmd CreateInboundRuleCommand) (*InboundRuleResult, error) {
	rule, err := mailroom.NewInboundRule(mailroom.NewInboundRuleParams{
		Name:               cmd.Name,
		Priority:           cmd.Priority,
		FromPattern:        cmd.FromPattern,
		ToPattern:          cmd.ToPattern,
		SubjectPattern:     cmd.SubjectPattern,
		BodyKeywords:       cmd.BodyKeywords,
		RequireAttachment:  cmd.RequireAttachment,
		DefaultPriority:    vo.Priority(cmd.DefaultPriority),
		DefaultCategory:    vo.ServiceCategory(cmd.DefaultCategory),
		DefaultSLACategory: vo.SLACategory(cmd.DefaultSLACategory),
		AutoAssignUserID:   cmd.AutoAssignUserID,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.ruleRepo.Save(ctx, rule); err != nil {
		uc.logger.Errorw("failed to save intake rule", "name", cmd.Name, "error", err)
		return nil, err
	}

	uc.logger.Infow("intake rule created", "rule_id", rule.ID(), "name", rule.Name())
	return inboundRuleToResult(rule), nil
}

type SetRuleActiveUseCase struct {
	ruleRepo mailroom.RuleRepository
	logger   logger.Interface
}

func NewSetRuleActiveUseCase(ruleRepo mailroom.RuleRepository, logger logger.Interface) *SetRuleActiveUseCase {
	return &SetRuleActiveUseCase{ruleRepo: ruleRepo, logger: logger}
}

func (uc *SetRuleActiveUseCase) Execute(ctx context.Context, ruleID uint, active bool) (*InboundRuleResult, error) {
	if ruleID == 0 {
		return nil, errors.NewValidationError("rule ID is required")
	}
	rule, err := uc.ruleRepo.FindByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if active {
		rule.Activate()
	} else {
		rule.Deactivate()
	}
	if err := uc.ruleRepo.Update(ctx, rule); err != nil {
		return nil, err
	}
	return inboundRuleToResult(rule), nil
}

type DeleteInboundRuleUseCase struct {
	ruleRepo mailroom.RuleRepository
	logger   logger.Interface
}

func NewDeleteInboundRuleUseCase(ruleRepo mailroom.RuleRepository, logger logger.Interface) *DeleteInboundRuleUseCase {
	return &DeleteInboundRuleUseCase{ruleRepo: ruleRepo, logger: logger}
}

func (uc *DeleteInboundRuleUseCase) Execute(ctx context.Context, ruleID uint) error {
	if ruleID == 0 {
		return errors.NewValidationError("rule ID is required")
	}
	if _, err := uc.ruleRepo.FindByID(ctx, ruleID); err != nil {
		return err
	}
	if err := uc.ruleRepo.Delete(ctx, ruleID); err != nil {
		uc.logger.Errorw("failed to delete intake rule", "rule_id", ruleID, "error", err)
		return err
	}
	uc.logger.Infow("intake rule deleted", "rule_id", ruleID)
	return nil
}

type ListInboundRulesQuery struct {
	Pagination utils.Pagination
}

type ListInboundRulesResult struct {
	Rules []InboundRuleResult
	Total int64
}

type ListInboundRulesUseCase struct {
	ruleRepo mailroom.RuleRepository
	logger   logger.Interface
}

func NewListInboundRulesUseCase(ruleRepo mailroom.RuleRepository, logger logger.Interface) *ListInboundRulesUseCase {
	return &ListInboundRulesUseCase{ruleRepo: ruleRepo, logger: logger}
}

func (uc *ListInboundRulesUseCase) Execute(ctx context.Context, q ListInboundRulesQuery) (*ListInboundRulesResult, error) {
	p := utils.ValidatePagination(q.Pagination.Page, q.Pagination.PageSize)

	rules, total, err := uc.ruleRepo.List(ctx, p.Offset(), p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list intake rules", "error", err)
		return nil, err
	}

	out := make([]InboundRuleResult, 0, len(rules))
	for _, rule := range rules {
		out = append(out, *inboundRuleToResult(rule))
	}
	return &ListInboundRulesResult{Rules: out, Total: total}, nil
}

type ListProcessedEmailsQuery struct {
	Outcome    string
	Pagination utils.Pagination
}

type ProcessedEmailEntry struct {
	ID              uint
	MessageID       string
	From            string
	To              string
	Subject         string
	BodyPreview     string
	AttachmentCount int
	RuleID          *uint
	Outcome         string
	ErrorDetail     string
	IncidentID      *uint
	CreatedAt       time.Time
}

type ListProcessedEmailsResult struct {
	Emails []ProcessedEmailEntry
	Total  int64
}

type ListProcessedEmailsUseCase struct {
	processedRepo mailroom.ProcessedEmailRepository
	logger        logger.Interface
}

func NewListProcessedEmailsUseCase(processedRepo mailroom.ProcessedEmailRepository, logger logger.Interface) *ListProcessedEmailsUseCase {
	return &ListProcessedEmailsUseCase{processedRepo: processedRepo, logger: logger}
}

func (uc *ListProcessedEmailsUseCase) Execute(ctx context.Context, q ListProcessedEmailsQuery) (*ListProcessedEmailsResult, error) {
	p := utils.ValidatePagination(q.Pagination.Page, q.Pagination.PageSize)

	emails, total, err := uc.processedRepo.List(ctx, mailroom.Outcome(q.Outcome), p.Offset(), p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list processed emails", "error", err)
		return nil, err
	}

	out := make([]ProcessedEmailEntry, 0, len(emails))
	for _, e := range emails {
		out = append(out, ProcessedEmailEntry{
			ID:              e.ID(),
			MessageID:       e.MessageID(),
			From:            e.From(),
			To:              e.To(),
			Subject:         e.Subject(),
			BodyPreview:     e.BodyPreview(),
			AttachmentCount: e.AttachmentCount(),
			RuleID:          e.RuleID(),
			Outcome:         string(e.Outcome()),
			ErrorDetail:     e.ErrorDetail(),
			IncidentID:      e.IncidentID(),
			CreatedAt:       e.CreatedAt(),
		})
	}
	return &ListProcessedEmailsResult{Emails: out, Total: total}, nil
}

func inboundRuleToResult(rule *mailroom.InboundRule) *InboundRuleResult {
	return &InboundRuleResult{
		ID:                 rule.ID(),
		Name:               rule.Name(),
		Priority:           rule.Priority(),
		Active:             rule.IsActive(),
		FromPattern:        rule.FromPattern(),
		ToPattern:          rule.ToPattern(),
		SubjectPattern:     rule.SubjectPattern(),
		BodyKeywords:       rule.BodyKeywords(),
		RequireAttachment:  rule.RequiresAttachment(),
		DefaultPriority:    string(rule.DefaultPriority()),
		DefaultCategory:    string(rule.DefaultCategory()),
		DefaultSLACategory: string(rule.DefaultSLACategory()),
		AutoAssignUserID:   rule.AutoAssignUserID(),
		EmailsProcessed:    rule.EmailsProcessed(),
		IncidentsCreated:   rule.IncidentsCreated(),
		LastProcessedAt:    rule.LastProcessedAt(),
	}
}
