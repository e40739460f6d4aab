package mappers

import (
	vo "skywrench/internal/domain/incident/valueobjects"
	"skywrench/internal/domain/mailroom"
	"skywrench/internal/infrastructure/persistence/models"
)

type MailroomMapper interface {
	RuleToModel(r *mailroom.InboundRule) *models.InboundRuleModel
	RuleToDomain(model *models.InboundRuleModel) *mailroom.InboundRule
	ProcessedToModel(p *mailroom.ProcessedEmail) *models.ProcessedEmailModel
	ProcessedToDomain(model *models.ProcessedEmailModel) *mailroom.ProcessedEmail
}

type MailroomMapperImpl struct{}

func NewMailroomMapper() MailroomMapper {
	return &MailroomMapperImpl{}
}

func (m *MailroomMapperImpl) RuleToModel(r *mailroom.InboundRule) *models.InboundRuleModel {
	return &models.InboundRuleModel{
		ID:                 r.ID(),
		Name:               r.Name(),
		Priority:           r.Priority(),
		Active:             r.IsActive(),
		FromPattern:        r.FromPattern(),
		ToPattern:          r.ToPattern(),
		SubjectPattern:     r.SubjectPattern(),
		BodyKeywords:       r.BodyKeywords(),
		RequireAttachment:  r.RequiresAttachment(),
		DefaultPriority:    r.DefaultPriority().String(),
		DefaultCategory:    r.DefaultCategory().String(),
		DefaultSLACategory: r.DefaultSLACategory().String(),
		AutoAssignUserID:   r.AutoAssignUserID(),
		EmailsProcessed:    r.EmailsProcessed(),
		IncidentsCreated:   r.IncidentsCreated(),
		LastProcessedAt:    timePtrToMillis(r.LastProcessedAt()),
		CreatedAt:          r.CreatedAt().UnixMilli(),
		UpdatedAt:          r.UpdatedAt().UnixMilli(),
	}
}

func (m *MailroomMapperImpl) RuleToDomain(model *models.InboundRuleModel) *mailroom.InboundRule {
	return mailroom.ReconstructInboundRule(mailroom.ReconstructedInboundRule{
		ID:                 model.ID,
		Name:               model.Name,
		Priority:           model.Priority,
		Active:             model.Active,
		FromPattern:        model.FromPattern,
		ToPattern:          model.ToPattern,
		SubjectPattern:     model.SubjectPattern,
		BodyKeywords:       model.BodyKeywords,
		RequireAttachment:  model.RequireAttachment,
		DefaultPriority:    vo.Priority(model.DefaultPriority),
		DefaultCategory:    vo.ServiceCategory(model.DefaultCategory),
		DefaultSLACategory: vo.SLACategory(model.DefaultSLACategory),
		AutoAssignUserID:   model.AutoAssignUserID,
		EmailsProcessed:    model.EmailsProcessed,
		IncidentsCreated:   model.IncidentsCreated,
		LastProcessedAt:    millisPtrToTime(model.LastProcessedAt),
		CreatedAt:          millisToTime(model.CreatedAt),
		UpdatedAt:          millisToTime(model.UpdatedAt),
	})
}

func (m *MailroomMapperImpl) ProcessedToModel(p *mailroom.ProcessedEmail) *models.ProcessedEmailModel {
	return &models.ProcessedEmailModel{
		ID:              p.ID(),
		MessageID:       p.MessageID(),
		FromAddress:     p.From(),
		ToAddress:       p.To(),
		Subject:         p.Subject(),
		BodyPreview:     p.BodyPreview(),
		AttachmentCount: p.AttachmentCount(),
		RuleID:          p.RuleID(),
		Outcome:         string(p.Outcome()),
		ErrorDetail:     p.ErrorDetail(),
		IncidentID:      p.IncidentID(),
		CreatedAt:       p.CreatedAt().UnixMilli(),
	}
}

func (m *MailroomMapperImpl) ProcessedToDomain(model *models.ProcessedEmailModel) *mailroom.ProcessedEmail {
	return mailroom.ReconstructProcessedEmail(
		model.ID,
		model.MessageID,
		model.FromAddress,
		model.ToAddress,
		model.Subject,
		model.BodyPreview,
		model.AttachmentCount,
		model.RuleID,
		mailroom.Outcome(model.Outcome),
		model.ErrorDetail,
		model.IncidentID,
		millisToTime(model.CreatedAt),
	)
}
