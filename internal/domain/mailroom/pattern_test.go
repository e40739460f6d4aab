package mailroom

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestPatternMatches(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		value   string
		want    bool
	}{
		{"empty pattern matches all", "", "anyone@example.com", true},
		{"glob domain", "*@fleet.example.com", "pilot@fleet.example.com", true},
		{"glob no match", "*@fleet.example.com", "pilot@other.example.com", false},
		{"exact", "support@example.com", "support@example.com", true},
		{"exact case-insensitive", "Support@Example.com", "support@example.com", true},
		{"substring", "example.com", "pilot@example.com", true},
		{"substring no match", "drone", "a plain subject", false},
		{"regex fallback", "^uav-[0-9]+@", "uav-42@example.com", true},
		{"regex no match", "^uav-[0-9]+@", "pilot@example.com", false},
		{"invalid regex falls through to false", "([", "anything", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PatternMatches(tt.pattern, tt.value))
		})
	}
}

func TestKeywordsMatch(t *testing.T) {
	tests := []struct {
		name     string
		keywords string
		body     string
		want     bool
	}{
		{"empty keywords match all", "", "whatever", true},
		{"single hit", "crash", "the drone CRASHED on landing", true},
		{"any of several", "battery, crash, gimbal", "gimbal drift observed", true},
		{"no hit", "battery, crash", "routine checkup please", false},
		{"whitespace tolerated", "  battery ,  crash ", "battery swollen", true},
		{"blank entries ignored", ",,", "anything", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeywordsMatch(tt.keywords, tt.body))
		})
	}
}

func TestInboundRule_Matches(t *testing.T) {
	rule, err := NewInboundRule(NewInboundRuleParams{
		Name:           "fleet crashes",
		Priority:       1,
		FromPattern:    "*@fleet.example.com",
		SubjectPattern: "crash",
		BodyKeywords:   "crashed, impact",
	})
	assert.NoError(t, err)

	msg := Message{
		From:    "pilot@fleet.example.com",
		Subject: "Crash report AX4-00931",
		Body:    "the aircraft crashed during survey",
	}
	assert.True(t, rule.Matches(msg))

	msg.From = "pilot@other.example.com"
	assert.False(t, rule.Matches(msg))
}

func TestInboundRule_AttachmentRequired(t *testing.T) {
	rule, err := NewInboundRule(NewInboundRuleParams{
		Name:              "with logs",
		RequireAttachment: true,
	})
	assert.NoError(t, err)

	assert.False(t, rule.Matches(Message{Subject: "no logs"}))
	assert.True(t, rule.Matches(Message{Subject: "logs", HasAttachments: true}))
}

func TestInboundRule_Counters(t *testing.T) {
	rule, err := NewInboundRule(NewInboundRuleParams{Name: "n"})
	assert.NoError(t, err)

	rule.RecordProcessed(true)
	rule.RecordProcessed(false)
	assert.Equal(t, 2, rule.EmailsProcessed())
	assert.Equal(t, 1, rule.IncidentsCreated())
	assert.NotNil(t, rule.LastProcessedAt())
}

func TestNewProcessedEmail(t *testing.T) {
	long := make([]byte, 600)
	for i := range long {
		long[i] = 'x'
	}
	p, err := NewProcessedEmail(Message{MessageID: "<abc@mail>", Body: string(long)}, nil, OutcomeNoRuleMatched, "", nil)
	assert.NoError(t, err)
	assert.Len(t, p.BodyPreview(), 500)

	multiByte := strings.Repeat("机", 600)
	p, err = NewProcessedEmail(Message{MessageID: "<def@mail>", Body: multiByte}, nil, OutcomeNoRuleMatched, "", nil)
	assert.NoError(t, err)
	assert.Equal(t, 500, utf8.RuneCountInString(p.BodyPreview()))
	assert.True(t, utf8.ValidString(p.BodyPreview()))

	_, err = NewProcessedEmail(Message{}, nil, OutcomeProcessed, "", nil)
	assert.Error(t, err, "message id required")
}

func TestSyntheticMessageID(t *testing.T) {
	received := time.Date(2026, 8, 12, 9, 30, 0, 0, time.UTC)
	msg := Message{From: "jane.doe@acme.com", Subject: "Drone crashed", ReceivedAt: received}

	first := SyntheticMessageID(msg)
	second := SyntheticMessageID(msg)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)

	other := msg
	other.Subject = "Battery swollen"
	assert.NotEqual(t, first, SyntheticMessageID(other))
}
