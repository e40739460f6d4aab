package assignment

import (
	"strings"
	"time"

	"skywrench/internal/shared/biztime"
	"skywrench/internal/shared/errors"
)

// Group is a pool of technicians that incidents can be routed to. The
// round robin cursor remembers which member index was served last.
type Group struct {
	id          uint
	code        string
	name        string
	description string
	active      bool
	memberIDs   []uint
	rrCursor    int
	createdAt   time.Time
	updatedAt   time.Time
}

func NewGroup(code, name, description string, memberIDs []uint) (*Group, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return nil, errors.NewValidationError("group code is required")
	}
	if name == "" {
		return nil, errors.NewValidationError("group name is required")
	}
	now := biztime.NowUTC()
	return &Group{
		code:        strings.ToLower(code),
		name:        name,
		description: strings.TrimSpace(description),
		active:      true,
		memberIDs:   dedupe(memberIDs),
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructGroup rebuilds a group from persistence.
func ReconstructGroup(id uint, code, name, description string, active bool, memberIDs []uint, rrCursor int, createdAt, updatedAt time.Time) *Group {
	return &Group{
		id:          id,
		code:        code,
		name:        name,
		description: description,
		active:      active,
		memberIDs:   memberIDs,
		rrCursor:    rrCursor,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (g *Group) ID() uint              { return g.id }
func (g *Group) Code() string          { return g.code }
func (g *Group) Name() string          { return g.name }
func (g *Group) Description() string   { return g.description }
func (g *Group) IsActive() bool        { return g.active }
func (g *Group) MemberIDs() []uint     { return g.memberIDs }
func (g *Group) RoundRobinCursor() int { return g.rrCursor }
func (g *Group) CreatedAt() time.Time  { return g.createdAt }
func (g *Group) UpdatedAt() time.Time  { return g.updatedAt }

func (g *Group) SetID(id uint) error {
	if g.id != 0 {
		return errors.NewInternalError("group ID already set")
	}
	g.id = id
	return nil
}

func (g *Group) Activate() {
	g.active = true
	g.updatedAt = biztime.NowUTC()
}

func (g *Group) Deactivate() {
	g.active = false
	g.updatedAt = biztime.NowUTC()
}

func (g *Group) AddMember(userID uint) error {
	if userID == 0 {
		return errors.NewValidationError("member is required")
	}
	for _, m := range g.memberIDs {
		if m == userID {
			return errors.NewConflictError("user is already a member")
		}
	}
	g.memberIDs = append(g.memberIDs, userID)
	g.updatedAt = biztime.NowUTC()
	return nil
}

func (g *Group) RemoveMember(userID uint) error {
	for idx, m := range g.memberIDs {
		if m == userID {
			g.memberIDs = append(g.memberIDs[:idx], g.memberIDs[idx+1:]...)
			if g.rrCursor >= len(g.memberIDs) {
				g.rrCursor = 0
			}
			g.updatedAt = biztime.NowUTC()
			return nil
		}
	}
	return errors.NewNotFoundError("user is not a member")
}

// FirstMember returns the first member for direct group assignment.
func (g *Group) FirstMember() (uint, error) {
	if len(g.memberIDs) == 0 {
		return 0, errors.NewConflictError("group has no members")
	}
	return g.memberIDs[0], nil
}

// NextRoundRobinMember advances the cursor and returns the next member in
// rotation.
func (g *Group) NextRoundRobinMember() (uint, error) {
	if len(g.memberIDs) == 0 {
		return 0, errors.NewConflictError("group has no members")
	}
	g.rrCursor = (g.rrCursor + 1) % len(g.memberIDs)
	g.updatedAt = biztime.NowUTC()
	return g.memberIDs[g.rrCursor], nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
