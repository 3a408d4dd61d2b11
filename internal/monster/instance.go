// Package monster wraps creature instances with their species data and
// generates new instances.
package monster

import "github.com/vovakirdan/tui-monsters/internal/dex"

// Instance limits.
const (
	MaxMoveSlots = 4
	MaxIV        = 31
)

// MoveSlot is a learned move with its remaining PP.
type MoveSlot struct {
	MoveID string `json:"move_id"`
	PP     int    `json:"pp"`
}

// Instance is the mutable runtime state of one creature. It is owned by
// whichever team currently holds it.
type Instance struct {
	SpeciesID int              `json:"species_id"`
	Nickname  string           `json:"nickname,omitempty"`
	Level     int              `json:"level"`
	Exp       int              `json:"exp"`
	CurrentHP int              `json:"current_hp"`
	Moves     []MoveSlot       `json:"moves"`
	IVs       dex.Stats        `json:"ivs"`
	EVs       dex.Stats        `json:"evs"`
	Nature    dex.Nature       `json:"nature"`
	Status    dex.StatusEffect `json:"status"`
	Shiny     bool             `json:"shiny,omitempty"`
}

// Clone returns a deep copy.
func (i Instance) Clone() Instance {
	c := i
	c.Moves = append([]MoveSlot(nil), i.Moves...)
	return c
}

// CloneTeam deep-copies a team.
func CloneTeam(team []Instance) []Instance {
	out := make([]Instance, len(team))
	for i := range team {
		out[i] = team[i].Clone()
	}
	return out
}
