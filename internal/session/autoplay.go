package session

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-monsters/internal/battle"
	"github.com/vovakirdan/tui-monsters/internal/core"
	"github.com/vovakirdan/tui-monsters/internal/monster"
)

// ErrUnfinished is returned when an automatic battle hits its turn limit.
var ErrUnfinished = errors.New("session: battle unfinished")

// AutoMove picks a move slot for m: a random usable damaging move, else any
// usable move, else slot 0.
func AutoMove(m *monster.Monster, rng core.Rand) int {
	var damaging []int
	usable := m.UsableMoves()
	for _, i := range usable {
		if mv, ok := m.Move(i); ok && mv.Power > 0 {
			damaging = append(damaging, i)
		}
	}
	switch {
	case len(damaging) > 0:
		return damaging[rng.Intn(len(damaging))]
	case len(usable) > 0:
		return usable[rng.Intn(len(usable))]
	}
	return 0
}

// AutoPlay fights m to the end with AutoMove choices, discarding the
// narration. It gives up after maxTurns turns.
func AutoPlay(m *battle.Manager, rng core.Rand, maxTurns int) error {
	m.Start()
	m.Drain()
	for !m.State().IsOver() {
		if m.Turn() >= maxTurns {
			return fmt.Errorf("%w after %d turns", ErrUnfinished, m.Turn())
		}
		m.SelectPlayerAction(battle.Fight(AutoMove(m.ActivePlayer(), rng)))
		m.Drain()
	}
	return nil
}

// AutoBattle walks into the next encounter, plays it automatically and
// copies the result back into the team.
func (s *Session) AutoBattle(maxSteps, maxTurns int) (*battle.Manager, error) {
	m, err := s.NextEncounter(maxSteps)
	if err != nil {
		return nil, err
	}
	if err := AutoPlay(m, s.rng, maxTurns); err != nil {
		return m, err
	}
	s.Finish(m)
	s.log.Debug("auto battle finished", "battle", m.ID(), "result", m.Result(), "turns", m.Turn())
	return m, nil
}
