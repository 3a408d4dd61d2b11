// Package session keeps one player's team between battles and builds the
// wild battles the player walks into.
package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-monsters/internal/battle"
	"github.com/vovakirdan/tui-monsters/internal/config"
	"github.com/vovakirdan/tui-monsters/internal/core"
	"github.com/vovakirdan/tui-monsters/internal/dex"
	"github.com/vovakirdan/tui-monsters/internal/encounter"
	"github.com/vovakirdan/tui-monsters/internal/monster"
)

var (
	// ErrNoStarter is returned when a battle is requested before a starter
	// was chosen.
	ErrNoStarter = errors.New("session: no starter chosen")
	// ErrNoZone is returned when walking before entering a zone.
	ErrNoZone = errors.New("session: no zone entered")
	// ErrNoEncounter is returned when a walk ends without a wild monster.
	ErrNoEncounter = errors.New("session: no encounter")
)

// MaxTeam is the largest team a session holds.
const MaxTeam = 6

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger handed to encounters and battles.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithSaver records every finished battle.
func WithSaver(saver battle.SummarySaver) Option {
	return func(s *Session) { s.saver = saver }
}

// Session owns the persistent player team. Battles get a copy of it and
// their final team state is copied back by Finish.
type Session struct {
	dex     *dex.Dex
	cfg     config.EngineConfig
	rng     core.Rand
	factory *monster.Factory
	log     *log.Logger
	saver   battle.SummarySaver

	team   []monster.Instance
	zone   *encounter.System
	walker *encounter.Walker
}

// New creates a session. Every roll in it draws from rng.
func New(d *dex.Dex, cfg config.EngineConfig, rng core.Rand, opts ...Option) *Session {
	s := &Session{
		dex:     d,
		cfg:     cfg,
		rng:     rng,
		factory: monster.NewFactory(d, rng, cfg.Monster),
		log:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dex returns the static tables the session was built with.
func (s *Session) Dex() *dex.Dex { return s.dex }

// ChooseStarter replaces the team with a single starter. A level below 1
// uses the configured starter level.
func (s *Session) ChooseStarter(speciesID, level int) error {
	if level < 1 {
		level = s.cfg.Monster.StarterLevel
	}
	m, err := s.factory.Starter(speciesID, level)
	if err != nil {
		return fmt.Errorf("session: starter: %w", err)
	}
	s.team = []monster.Instance{m.Instance().Clone()}
	s.log.Info("starter chosen", "species", m.Name(), "level", level, "nature", m.Instance().Nature, "shiny", m.Shiny())
	return nil
}

// Recruit adds a rolled monster to the team, up to six members.
func (s *Session) Recruit(speciesID, level int) error {
	if len(s.team) >= MaxTeam {
		return fmt.Errorf("session: team is full")
	}
	m, err := s.factory.Wild(speciesID, level)
	if err != nil {
		return fmt.Errorf("session: recruit: %w", err)
	}
	s.team = append(s.team, m.Instance().Clone())
	return nil
}

// Team returns a copy of the persistent team.
func (s *Session) Team() []monster.Instance {
	return monster.CloneTeam(s.team)
}

// EnterZone moves the player into an encounter zone.
func (s *Session) EnterZone(id string) error {
	zone, err := s.dex.Zone(id)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s.zone = encounter.New(zone, s.factory, s.rng, s.cfg.Encounter, encounter.WithLogger(s.log))
	s.walker = encounter.NewWalker(s.zone, s.rng)
	return nil
}

// Zone returns the current zone, or nil before EnterZone.
func (s *Session) Zone() *dex.Zone {
	if s.zone == nil {
		return nil
	}
	return s.zone.Zone()
}

// Walk steps through the current zone until a wild monster appears or
// maxSteps is reached. It returns the monster (nil if none) and the
// number of steps taken.
func (s *Session) Walk(maxSteps int) (*monster.Instance, int, error) {
	if s.walker == nil {
		return nil, 0, ErrNoZone
	}
	for step := 1; step <= maxSteps; step++ {
		wild, err := s.walker.Step()
		if err != nil {
			return nil, step, err
		}
		if wild != nil {
			return wild, step, nil
		}
	}
	return nil, maxSteps, nil
}

// WildBattle starts a battle between the team and wild.
func (s *Session) WildBattle(wild monster.Instance, opts ...battle.Option) (*battle.Manager, error) {
	if len(s.team) == 0 {
		return nil, ErrNoStarter
	}
	base := []battle.Option{
		battle.WithRand(s.rng),
		battle.WithLogger(s.log),
		battle.WithTuning(s.cfg.Battle),
	}
	if s.saver != nil {
		base = append(base, battle.WithSaver(s.saver))
	}
	return battle.New(s.dex, battle.WildConfig(s.team, wild), append(base, opts...)...)
}

// NextEncounter walks until a wild monster appears and starts the battle.
func (s *Session) NextEncounter(maxSteps int, opts ...battle.Option) (*battle.Manager, error) {
	if len(s.team) == 0 {
		return nil, ErrNoStarter
	}
	wild, steps, err := s.Walk(maxSteps)
	if err != nil {
		return nil, err
	}
	if wild == nil {
		return nil, fmt.Errorf("%w after %d steps", ErrNoEncounter, steps)
	}
	return s.WildBattle(*wild, opts...)
}

// Finish copies the battle's final player team back into the session. A
// wiped-out team is restored so play can continue.
func (s *Session) Finish(m *battle.Manager) {
	s.team = m.PlayerTeamData()
	if m.Result() == battle.ResultDefeat {
		s.log.Info("team wiped out, restoring")
		s.Heal()
	}
}

// Heal restores every team member.
func (s *Session) Heal() {
	for i := range s.team {
		mon, err := monster.New(s.dex, &s.team[i])
		if err != nil {
			s.log.Warn("cannot restore team member", "slot", i, "err", err)
			continue
		}
		mon.Restore()
	}
}
