package usecases

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	incidentuc "skywrench/internal/application/incident/usecases"
	"skywrench/internal/domain/mailroom"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type mockInboundRuleRepo struct {
	rules   []*mailroom.InboundRule
	updated []*mailroom.InboundRule
}

func (m *mockInboundRuleRepo) Save(ctx context.Context, r *mailroom.InboundRule) error {
	return r.SetID(uint(len(m.rules) + 1))
}

func (m *mockInboundRuleRepo) Update(ctx context.Context, r *mailroom.InboundRule) error {
	m.updated = append(m.updated, r)
	return nil
}

func (m *mockInboundRuleRepo) Delete(ctx context.Context, id uint) error { return nil }

func (m *mockInboundRuleRepo) FindByID(ctx context.Context, id uint) (*mailroom.InboundRule, error) {
	for _, r := range m.rules {
		if r.ID() == id {
			return r, nil
		}
	}
	return nil, errors.NewNotFoundError("rule not found")
}

func (m *mockInboundRuleRepo) ListActive(ctx context.Context) ([]*mailroom.InboundRule, error) {
	var out []*mailroom.InboundRule
	for _, r := range m.rules {
		if r.IsActive() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockInboundRuleRepo) List(ctx context.Context, offset, limit int) ([]*mailroom.InboundRule, int64, error) {
	return m.rules, int64(len(m.rules)), nil
}

type mockProcessedRepo struct {
	saved map[string]*mailroom.ProcessedEmail
}

func newMockProcessedRepo() *mockProcessedRepo {
	return &mockProcessedRepo{saved: make(map[string]*mailroom.ProcessedEmail)}
}

func (m *mockProcessedRepo) Save(ctx context.Context, p *mailroom.ProcessedEmail) error {
	m.saved[p.MessageID()] = p
	return nil
}

func (m *mockProcessedRepo) ExistsByMessageID(ctx context.Context, messageID string) (bool, error) {
	_, ok := m.saved[messageID]
	return ok, nil
}

func (m *mockProcessedRepo) List(ctx context.Context, outcome mailroom.Outcome, offset, limit int) ([]*mailroom.ProcessedEmail, int64, error) {
	var out []*mailroom.ProcessedEmail
	for _, p := range m.saved {
		if outcome == "" || p.Outcome() == outcome {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

type mockRaiser struct {
	commands []incidentuc.RaiseIncidentCommand
	err      error
	nextID   uint
}

func (m *mockRaiser) Execute(ctx context.Context, cmd incidentuc.RaiseIncidentCommand) (*incidentuc.RaiseIncidentResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.commands = append(m.commands, cmd)
	m.nextID++
	return &incidentuc.RaiseIncidentResult{IncidentID: m.nextID, Number: "UAV-2026-0001"}, nil
}

type mockAssigner struct {
	commands []incidentuc.AssignTechnicianCommand
}

func (m *mockAssigner) Execute(ctx context.Context, cmd incidentuc.AssignTechnicianCommand) (*incidentuc.AssignTechnicianResult, error) {
	m.commands = append(m.commands, cmd)
	return &incidentuc.AssignTechnicianResult{IncidentID: cmd.IncidentID, TechnicianID: cmd.TechnicianID}, nil
}

type mockCustomers struct {
	ensured []string
}

func (m *mockCustomers) EnsureCustomer(ctx context.Context, email, displayName string) (uint, error) {
	m.ensured = append(m.ensured, email)
	return 42, nil
}

func intakeRule(t *testing.T, id uint, name string, priority int, p mailroom.NewInboundRuleParams) *mailroom.InboundRule {
	t.Helper()
	p.Name = name
	p.Priority = priority
	rule, err := mailroom.NewInboundRule(p)
	require.NoError(t, err)
	require.NoError(t, rule.SetID(id))
	return rule
}

func supportMessage(messageID string) mailroom.Message {
	return mailroom.Message{
		UID:       100,
		MessageID: messageID,
		From:      "jane.doe@acme.com",
		To:        "support@skywrench.example",
		Subject:   "Drone crashed on landing",
		Body:      "The left rear arm snapped after a hard landing.",
	}
}

func TestProcessInboundUseCase_ProcessMessage(t *testing.T) {
	t.Run("creates an incident from the first matching rule", func(t *testing.T) {
		ruleRepo := &mockInboundRuleRepo{rules: []*mailroom.InboundRule{
			intakeRule(t, 1, "crash reports", 1, mailroom.NewInboundRuleParams{
				SubjectPattern:  "crash",
				DefaultCategory: "CRASH_REPAIR",
				DefaultPriority: "HIGH",
			}),
		}}
		processed := newMockProcessedRepo()
		raiser := &mockRaiser{}
		customers := &mockCustomers{}
		uc := NewProcessInboundUseCase(ruleRepo, processed, raiser, &mockAssigner{}, customers, logger.NewLogger())

		result, err := uc.ProcessMessage(context.Background(), supportMessage("<m1@acme>"))

		require.NoError(t, err)
		assert.Equal(t, mailroom.OutcomeProcessed, result.Outcome)
		require.NotNil(t, result.IncidentID)

		require.Len(t, raiser.commands, 1)
		cmd := raiser.commands[0]
		assert.Equal(t, "Drone crashed on landing", cmd.Title)
		assert.Equal(t, "CRASH_REPAIR", cmd.Category)
		assert.Equal(t, "HIGH", cmd.Priority)
		assert.Equal(t, uint(42), cmd.CustomerID)
		assert.Equal(t, []string{"jane.doe@acme.com"}, customers.ensured)

		entry := processed.saved["<m1@acme>"]
		require.NotNil(t, entry)
		assert.Equal(t, mailroom.OutcomeProcessed, entry.Outcome())

		require.Len(t, ruleRepo.updated, 1)
		assert.Equal(t, 1, ruleRepo.updated[0].EmailsProcessed())
		assert.Equal(t, 1, ruleRepo.updated[0].IncidentsCreated())
	})

	t.Run("skips a message id already in the log", func(t *testing.T) {
		processed := newMockProcessedRepo()
		entry, err := mailroom.NewProcessedEmail(supportMessage("<m1@acme>"), nil, mailroom.OutcomeProcessed, "", nil)
		require.NoError(t, err)
		require.NoError(t, processed.Save(context.Background(), entry))

		raiser := &mockRaiser{}
		uc := NewProcessInboundUseCase(&mockInboundRuleRepo{}, processed, raiser, &mockAssigner{}, &mockCustomers{}, logger.NewLogger())

		result, err := uc.ProcessMessage(context.Background(), supportMessage("<m1@acme>"))

		require.NoError(t, err)
		assert.True(t, result.Skipped)
		assert.Empty(t, raiser.commands)
	})

	t.Run("logs no_rule_matched when nothing fires", func(t *testing.T) {
		ruleRepo := &mockInboundRuleRepo{rules: []*mailroom.InboundRule{
			intakeRule(t, 1, "billing", 1, mailroom.NewInboundRuleParams{SubjectPattern: "invoice"}),
		}}
		processed := newMockProcessedRepo()
		uc := NewProcessInboundUseCase(ruleRepo, processed, &mockRaiser{}, &mockAssigner{}, &mockCustomers{}, logger.NewLogger())

		result, err := uc.ProcessMessage(context.Background(), supportMessage("<m2@acme>"))

		require.NoError(t, err)
		assert.Equal(t, mailroom.OutcomeNoRuleMatched, result.Outcome)
		entry := processed.saved["<m2@acme>"]
		require.NotNil(t, entry)
		assert.Equal(t, mailroom.OutcomeNoRuleMatched, entry.Outcome())
	})

	t.Run("auto-assign rule routes the new incident to its user", func(t *testing.T) {
		techID := uint(11)
		ruleRepo := &mockInboundRuleRepo{rules: []*mailroom.InboundRule{
			intakeRule(t, 1, "crash reports", 1, mailroom.NewInboundRuleParams{
				SubjectPattern:   "crash",
				AutoAssignUserID: &techID,
			}),
		}}
		assigner := &mockAssigner{}
		uc := NewProcessInboundUseCase(ruleRepo, newMockProcessedRepo(), &mockRaiser{}, assigner, &mockCustomers{}, logger.NewLogger())

		_, err := uc.ProcessMessage(context.Background(), supportMessage("<m3@acme>"))

		require.NoError(t, err)
		require.Len(t, assigner.commands, 1)
		assert.Equal(t, techID, assigner.commands[0].TechnicianID)
	})

	t.Run("missing message id gets a synthetic one and still logs", func(t *testing.T) {
		ruleRepo := &mockInboundRuleRepo{rules: []*mailroom.InboundRule{
			intakeRule(t, 1, "crash reports", 1, mailroom.NewInboundRuleParams{SubjectPattern: "crash"}),
		}}
		processed := newMockProcessedRepo()
		raiser := &mockRaiser{}
		uc := NewProcessInboundUseCase(ruleRepo, processed, raiser, &mockAssigner{}, &mockCustomers{}, logger.NewLogger())

		result, err := uc.ProcessMessage(context.Background(), supportMessage(""))

		require.NoError(t, err)
		assert.Equal(t, mailroom.OutcomeProcessed, result.Outcome)
		assert.NotEmpty(t, result.MessageID)
		require.Len(t, raiser.commands, 1)
		entry := processed.saved[result.MessageID]
		require.NotNil(t, entry)
		assert.Equal(t, mailroom.OutcomeProcessed, entry.Outcome())

		// The same headerless message arriving again is a duplicate.
		again, err := uc.ProcessMessage(context.Background(), supportMessage(""))
		require.NoError(t, err)
		assert.True(t, again.Skipped)
		assert.Len(t, raiser.commands, 1)
	})

	t.Run("long multi-byte subject truncates on a rune boundary", func(t *testing.T) {
		ruleRepo := &mockInboundRuleRepo{rules: []*mailroom.InboundRule{
			intakeRule(t, 1, "crash reports", 1, mailroom.NewInboundRuleParams{SubjectPattern: "crash"}),
		}}
		raiser := &mockRaiser{}
		uc := NewProcessInboundUseCase(ruleRepo, newMockProcessedRepo(), raiser, &mockAssigner{}, &mockCustomers{}, logger.NewLogger())

		msg := supportMessage("<m5@acme>")
		msg.Subject = "crash " + strings.Repeat("机", 250)

		_, err := uc.ProcessMessage(context.Background(), msg)

		require.NoError(t, err)
		require.Len(t, raiser.commands, 1)
		title := raiser.commands[0].Title
		assert.Equal(t, 200, utf8.RuneCountInString(title))
		assert.True(t, utf8.ValidString(title))
	})

	t.Run("incident failure still writes the log row", func(t *testing.T) {
		ruleRepo := &mockInboundRuleRepo{rules: []*mailroom.InboundRule{
			intakeRule(t, 1, "crash reports", 1, mailroom.NewInboundRuleParams{SubjectPattern: "crash"}),
		}}
		processed := newMockProcessedRepo()
		raiser := &mockRaiser{err: errors.NewInternalError("database down")}
		uc := NewProcessInboundUseCase(ruleRepo, processed, raiser, &mockAssigner{}, &mockCustomers{}, logger.NewLogger())

		result, err := uc.ProcessMessage(context.Background(), supportMessage("<m4@acme>"))

		require.NoError(t, err)
		assert.Equal(t, mailroom.OutcomeFailed, result.Outcome)
		entry := processed.saved["<m4@acme>"]
		require.NotNil(t, entry)
		assert.Equal(t, mailroom.OutcomeFailed, entry.Outcome())
		assert.Contains(t, entry.ErrorDetail(), "database down")
	})
}

func TestProcessInboundUseCase_ProcessBatch(t *testing.T) {
	ruleRepo := &mockInboundRuleRepo{rules: []*mailroom.InboundRule{
		intakeRule(t, 1, "crash reports", 1, mailroom.NewInboundRuleParams{SubjectPattern: "crash"}),
	}}
	uc := NewProcessInboundUseCase(ruleRepo, newMockProcessedRepo(), &mockRaiser{}, &mockAssigner{}, &mockCustomers{}, logger.NewLogger())

	results := uc.ProcessBatch(context.Background(), []mailroom.Message{
		supportMessage("<b1@acme>"),
		supportMessage("<b2@acme>"),
	})

	require.Len(t, results, 2)
	assert.Equal(t, mailroom.OutcomeProcessed, results[0].Outcome)
	assert.Equal(t, mailroom.OutcomeProcessed, results[1].Outcome)
}

func TestSenderDisplayName(t *testing.T) {
	assert.Equal(t, "Jane Doe", senderDisplayName("jane.doe@acme.com"))
	assert.Equal(t, "Ops", senderDisplayName("ops@acme.com"))
	assert.Equal(t, "Jane Doe", senderDisplayName("jane_doe@acme.com"))
}
