package battle

import (
	"fmt"

	"github.com/udisondev/nucleotide/internal/model"
)

// Roster is the ordered list of combatants in one battle. The order is fixed
// for the battle and defines both turn rotation and targeting.
// Defeated combatants stay in the roster but are skipped by Next and NextOpponent.
type Roster struct {
	members []*model.Combatant
	index   map[uint32]int
}

// NewRoster builds a roster in the given order. Handles must be unique.
func NewRoster(members ...*model.Combatant) (*Roster, error) {
	if len(members) == 0 {
		return nil, ErrEmptyRoster
	}
	r := &Roster{
		members: make([]*model.Combatant, 0, len(members)),
		index:   make(map[uint32]int, len(members)),
	}
	for _, c := range members {
		if c == nil {
			return nil, fmt.Errorf("%w: nil combatant", ErrEmptyRoster)
		}
		if _, dup := r.index[c.ID()]; dup {
			return nil, fmt.Errorf("duplicate combatant handle %d", c.ID())
		}
		r.index[c.ID()] = len(r.members)
		r.members = append(r.members, c)
	}
	return r, nil
}

// Get returns the combatant by handle, or nil if the handle is unknown.
func (r *Roster) Get(id uint32) *model.Combatant {
	if r == nil {
		return nil
	}
	i, ok := r.index[id]
	if !ok {
		return nil
	}
	return r.members[i]
}

// RoleOf returns the role of the combatant with the given handle.
func (r *Roster) RoleOf(id uint32) (model.Role, bool) {
	c := r.Get(id)
	if c == nil {
		return model.Role{}, false
	}
	return c.Role(), true
}

// All returns every combatant in roster order, defeated ones included.
func (r *Roster) All() []*model.Combatant {
	if r == nil {
		return nil
	}
	out := make([]*model.Combatant, len(r.members))
	copy(out, r.members)
	return out
}

// Living returns the combatants still in the fight, in roster order.
func (r *Roster) Living() []*model.Combatant {
	if r == nil {
		return nil
	}
	out := make([]*model.Combatant, 0, len(r.members))
	for _, c := range r.members {
		if !c.IsDefeated() {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the roster size.
func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.members)
}

// Next returns the living combatant after id in rotation order, wrapping
// around. If id is the only living member it is returned itself.
// Returns nil when id is unknown or nobody is alive.
func (r *Roster) Next(id uint32) *model.Combatant {
	return r.after(id, func(*model.Combatant) bool { return true })
}

// NextOpponent returns the first living combatant after id, in rotation order,
// whose role opposes the role of id. Returns nil if there is none.
func (r *Roster) NextOpponent(id uint32) *model.Combatant {
	self := r.Get(id)
	if self == nil {
		return nil
	}
	c := r.after(id, func(c *model.Combatant) bool { return c.Role().Opposes(self.Role()) })
	if c == nil || c.ID() == id {
		return nil
	}
	return c
}

func (r *Roster) after(id uint32, match func(*model.Combatant) bool) *model.Combatant {
	if r == nil {
		return nil
	}
	start, ok := r.index[id]
	if !ok {
		return nil
	}
	n := len(r.members)
	for step := 1; step <= n; step++ {
		c := r.members[(start+step)%n]
		if !c.IsDefeated() && match(c) {
			return c
		}
	}
	return nil
}

// Player returns the player combatant, or nil if the roster has none.
func (r *Roster) Player() *model.Combatant {
	if r == nil {
		return nil
	}
	for _, c := range r.members {
		if c.Role().IsPlayer() {
			return c
		}
	}
	return nil
}

// Enemies returns every enemy in roster order, defeated ones included.
func (r *Roster) Enemies() []*model.Combatant {
	if r == nil {
		return nil
	}
	var out []*model.Combatant
	for _, c := range r.members {
		if c.Role().IsEnemy() {
			out = append(out, c)
		}
	}
	return out
}

// enemiesRemaining counts enemies that are still in the fight.
func (r *Roster) enemiesRemaining() int {
	n := 0
	for _, c := range r.Enemies() {
		if !c.IsDefeated() {
			n++
		}
	}
	return n
}
