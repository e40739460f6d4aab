package assignment

import (
	"sort"

	"skywrench/internal/domain/incident/valueobjects"
)

// Target is the routing outcome produced by a matched rule. TechnicianID is
// nil for plain group assignment, where the incident lands in the group's
// queue unassigned.
type Target struct {
	RuleID       uint
	RuleName     string
	Action       ActionType
	TechnicianID *uint
	GroupID      *uint
}

// MatchInput carries the incident attributes the rules condition on.
type MatchInput struct {
	Category   valueobjects.ServiceCategory
	Priority   valueobjects.Priority
	Department string
}

// Matcher evaluates rules against incident attributes. Rules fire in
// ascending priority order and the first resolvable match wins.
type Matcher struct{}

func NewMatcher() *Matcher {
	return &Matcher{}
}

// OrderedMatches returns every active matching rule in evaluation order.
// Callers walk the list until one rule's action resolves; a rule whose
// target user or group turns out inactive does not stop the scan.
func (m *Matcher) OrderedMatches(rules []*Rule, in MatchInput) []*Rule {
	ordered := make([]*Rule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority() < ordered[j].Priority()
	})

	var out []*Rule
	for _, r := range ordered {
		if !r.IsActive() {
			continue
		}
		if r.Matches(in.Category, in.Priority, in.Department) {
			out = append(out, r)
		}
	}
	return out
}

// Match returns the first active matching rule, or nil. Callers record the
// trigger on the returned rule after its action resolves.
func (m *Matcher) Match(rules []*Rule, in MatchInput) *Rule {
	matches := m.OrderedMatches(rules, in)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}
