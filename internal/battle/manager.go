package battle

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-monsters/internal/config"
	"github.com/vovakirdan/tui-monsters/internal/core"
	"github.com/vovakirdan/tui-monsters/internal/dex"
	"github.com/vovakirdan/tui-monsters/internal/monster"
)

var (
	// ErrEmptyTeam is returned when either team has no members.
	ErrEmptyTeam = errors.New("battle: empty team")
	// ErrNoLivingMember is returned when every member of a team has fainted.
	ErrNoLivingMember = errors.New("battle: no living member")
)

// SummarySaver persists finished battles. Implemented by the storage layer.
type SummarySaver interface {
	SaveBattle(s Summary) error
}

// Option configures a Manager.
type Option func(*Manager)

// WithRand sets the randomness source for every roll in the battle.
func WithRand(r core.Rand) Option {
	return func(m *Manager) { m.rng = r }
}

// WithLogger sets the logger used for turn resolution traces.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithObserver registers a callback invoked as each event is queued.
func WithObserver(fn func(Event)) Option {
	return func(m *Manager) { m.observer = fn }
}

// WithTuning overrides the damage and escape tunables.
func WithTuning(cfg config.BattleConfig) Option {
	return func(m *Manager) { m.tuning = cfg }
}

// WithSaver saves the battle summary when the battle ends.
func WithSaver(s SummarySaver) Option {
	return func(m *Manager) { m.saver = s }
}

// Manager owns one battle. It is not safe for concurrent use.
//
// Every step resolves eagerly and appends events to a FIFO queue. The
// presentation layer reads the head with Next and dismisses it with Ack;
// while any event is pending, player input is ignored.
type Manager struct {
	id       string
	cfg      Config
	tuning   config.BattleConfig
	rng      core.Rand
	calc     *Calculator
	log      *log.Logger
	observer func(Event)
	saver    SummarySaver

	state  State
	result Result
	turn   int

	player       []*monster.Monster
	enemy        []*monster.Monster
	playerActive int
	enemyActive  int

	queue []Event
}

// New wraps both teams and selects the first living member of each side.
// Unknown species or move ids, empty teams and fully fainted teams fail.
func New(d *dex.Dex, cfg Config, opts ...Option) (*Manager, error) {
	m := &Manager{
		id:     uuid.NewString(),
		tuning: config.DefaultEngineConfig().Battle,
		log:    log.New(io.Discard),
		state:  StateInitializing,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = log.New(io.Discard)
	}
	if m.rng == nil {
		seed, err := core.ResolveSeed(0)
		if err != nil {
			seed = time.Now().UnixNano()
		}
		m.rng = core.NewRand(seed)
	}
	m.calc = NewCalculator(d.Chart(), m.rng, m.tuning)

	m.cfg = cfg
	m.cfg.PlayerTeam = monster.CloneTeam(cfg.PlayerTeam)
	m.cfg.EnemyTeam = monster.CloneTeam(cfg.EnemyTeam)

	var err error
	if m.player, err = wrapTeam(d, m.cfg.PlayerTeam, SidePlayer); err != nil {
		return nil, err
	}
	if m.enemy, err = wrapTeam(d, m.cfg.EnemyTeam, SideEnemy); err != nil {
		return nil, err
	}

	m.playerActive = firstLiving(m.player)
	m.enemyActive = firstLiving(m.enemy)
	if m.playerActive < 0 {
		return nil, fmt.Errorf("%w: %s team", ErrNoLivingMember, SidePlayer)
	}
	if m.enemyActive < 0 {
		return nil, fmt.Errorf("%w: %s team", ErrNoLivingMember, SideEnemy)
	}

	m.state = StateIntro
	m.log.Debug("battle created", "id", m.id, "kind", cfg.Kind,
		"player", m.player[m.playerActive].Name(), "enemy", m.enemy[m.enemyActive].Name())
	return m, nil
}

func wrapTeam(d *dex.Dex, team []monster.Instance, side Side) ([]*monster.Monster, error) {
	if len(team) == 0 {
		return nil, fmt.Errorf("%w: %s team", ErrEmptyTeam, side)
	}
	out := make([]*monster.Monster, len(team))
	for i := range team {
		mon, err := monster.New(d, &team[i])
		if err != nil {
			return nil, fmt.Errorf("battle: %s team slot %d: %w", side, i, err)
		}
		out[i] = mon
	}
	return out, nil
}

func firstLiving(team []*monster.Monster) int {
	for i, mon := range team {
		if !mon.IsFainted() {
			return i
		}
	}
	return -1
}

// Start emits the intro narration and opens action selection.
func (m *Manager) Start() {
	if m.state != StateIntro || m.Pending() > 0 {
		return
	}
	enemy := m.ActiveEnemy()
	if m.cfg.Kind == KindTrainer {
		m.say("%s wants to battle!", m.trainerName())
		m.say("%s sent out %s!", m.trainerName(), enemy.Name())
	} else {
		m.say("A wild %s appeared!", enemy.Name())
	}
	m.say("Go! %s!", m.ActivePlayer().Name())
	m.setState(StateSelectAction)
}

// EnterActionSelect returns to the action menu.
func (m *Manager) EnterActionSelect() {
	if !m.state.acceptsInput() || m.Pending() > 0 {
		return
	}
	m.setState(StateSelectAction)
}

// EnterMoveSelect opens the move menu.
func (m *Manager) EnterMoveSelect() {
	if !m.state.acceptsInput() || m.Pending() > 0 {
		return
	}
	m.setState(StateSelectMove)
}

// SelectPlayerAction submits the player's action and resolves the turn.
// It reports whether the action was accepted; selections outside the
// selection states, while events are pending, or switching to an
// ineligible member are ignored.
func (m *Manager) SelectPlayerAction(a Action) bool {
	if !m.state.acceptsInput() || m.Pending() > 0 {
		return false
	}
	a.Side = SidePlayer

	switch a.Kind {
	case ActionRun:
		m.handleRun()
		return true
	case ActionSwitch:
		if !m.canSwitchTo(SidePlayer, a.SwitchTo) {
			return false
		}
	}

	m.fillOrdering(&a)
	actions := []Action{a, m.enemyAction()}
	orderActions(actions, m.rng)

	m.setState(StateExecuteTurn)
	m.executeTurn(actions)
	return true
}

// enemyAction picks uniformly among slots with PP left, slot 0 if none.
func (m *Manager) enemyAction() Action {
	a := Action{Kind: ActionFight, Side: SideEnemy}
	if usable := m.ActiveEnemy().UsableMoves(); len(usable) > 0 {
		a.MoveIndex = usable[m.rng.Intn(len(usable))]
	}
	m.fillOrdering(&a)
	return a
}

func (m *Manager) fillOrdering(a *Action) {
	actor := m.active(a.Side)
	if actor != nil {
		a.Speed = actor.Stats().Speed
	}
	switch a.Kind {
	case ActionFight:
		a.Priority = 0
		if actor != nil {
			if mv, ok := actor.Move(a.MoveIndex); ok {
				a.Priority = mv.Priority
			}
		}
	case ActionSwitch:
		a.Priority = m.tuning.SwitchPriority
	case ActionItem:
		a.Priority = m.tuning.ItemPriority
	case ActionRun:
		a.Priority = m.tuning.RunPriority
	}
}

func (m *Manager) executeTurn(actions []Action) {
	m.turn++
	m.log.Debug("turn start", "id", m.id, "turn", m.turn, "actions", len(actions))

	for _, a := range actions {
		actor := m.active(a.Side)
		if actor == nil || actor.IsFainted() {
			continue
		}
		m.executeAction(a)
		if m.checkBattleEnd() {
			return
		}
	}

	m.replaceFainted(SidePlayer)
	m.replaceFainted(SideEnemy)
	m.setState(StateSelectAction)
}

func (m *Manager) executeAction(a Action) {
	attacker := m.active(a.Side)
	defender := m.active(a.Side.Opponent())
	if attacker == nil || defender == nil {
		return
	}

	switch a.Kind {
	case ActionFight:
		m.executeMove(attacker, defender, a)
	case ActionSwitch:
		m.executeSwitch(a.Side, a.SwitchTo)
	case ActionItem:
		m.executeItem(a.ItemID)
	case ActionRun:
		// Escape attempts never enter the turn queue
	}
}

func (m *Manager) executeMove(attacker, defender *monster.Monster, a Action) {
	move, ok := attacker.Move(a.MoveIndex)
	if !ok {
		return
	}
	target := a.Side.Opponent()

	m.say("%s used %s!", attacker.Name(), move.Name)
	attacker.UsePP(a.MoveIndex)

	if !m.calc.CheckHit(move, 1) {
		m.say("But it missed!")
		return
	}

	res := m.calc.Calculate(attacker, defender, move)
	for _, msg := range res.Messages {
		m.say("%s", msg)
	}

	if res.Damage > 0 {
		defender.TakeDamage(res.Damage)
		m.push(DamageEvent{Side: target, Damage: res.Damage, HP: defender.HP(), MaxHP: defender.MaxHP()})
	}
	m.log.Debug("move resolved", "turn", m.turn, "attacker", attacker.Name(), "move", move.ID,
		"damage", res.Damage, "eff", res.Effectiveness, "crit", res.Critical)

	if defender.IsFainted() {
		m.say("%s fainted!", defender.Name())
		m.push(FaintEvent{Side: target})
		return
	}

	if res.Effectiveness > 0 && defender.Status() == dex.StatusNone && m.calc.CheckStatusEffect(move) {
		defender.SetStatus(move.Effect)
		m.say("%s %s!", defender.Name(), move.Effect.Verb())
		m.push(StatusAppliedEvent{Side: target, Status: move.Effect})
	}
}

func (m *Manager) executeSwitch(side Side, to int) {
	if !m.canSwitchTo(side, to) {
		return
	}
	outgoing := m.active(side)
	m.say("%s, come back!", outgoing.Name())
	m.setActive(side, to)
	m.say("Go! %s!", m.active(side).Name())
	m.push(SwitchEvent{Side: side, Index: to})
}

func (m *Manager) executeItem(itemID string) {
	name := itemID
	if name == "" {
		name = "an item"
	}
	m.say("You used %s. It had no effect.", name)
}

// handleRun resolves an escape attempt. A failed attempt costs the turn.
func (m *Manager) handleRun() {
	if !m.cfg.CanEscape {
		m.say("Can't escape!")
		m.setState(StateSelectAction)
		return
	}

	if core.Chance(m.rng, m.tuning.EscapeChance) {
		m.say("Got away safely!")
		m.finish(StateEscape, ResultEscape)
		return
	}

	m.say("Couldn't get away!")
	m.setState(StateExecuteTurn)
	m.executeTurn([]Action{m.enemyAction()})
}

// checkBattleEnd finishes the battle when a side is fully fainted. Enemy
// wipe-out is checked first so the outcomes stay exclusive.
func (m *Manager) checkBattleEnd() bool {
	if allFainted(m.enemy) {
		m.finish(StateVictory, ResultVictory)
		return true
	}
	if allFainted(m.player) {
		m.finish(StateDefeat, ResultDefeat)
		return true
	}
	return false
}

func allFainted(team []*monster.Monster) bool {
	for _, mon := range team {
		if !mon.IsFainted() {
			return false
		}
	}
	return true
}

func (m *Manager) finish(state State, result Result) {
	m.result = result
	m.setState(state)
	m.push(BattleEndEvent{Result: result})
	m.log.Debug("battle finished", "id", m.id, "result", result, "turns", m.turn)

	if m.saver != nil {
		if err := m.saver.SaveBattle(m.Summary()); err != nil {
			m.log.Warn("failed to save battle", "id", m.id, "err", err)
		}
	}
}

// replaceFainted sends out the next living member when a side's active
// monster fainted during the turn.
func (m *Manager) replaceFainted(side Side) {
	active := m.active(side)
	if active == nil || !active.IsFainted() {
		return
	}
	next := firstLiving(m.team(side))
	if next < 0 {
		return
	}
	m.setActive(side, next)
	incoming := m.active(side)

	switch {
	case side == SidePlayer:
		m.say("Go! %s!", incoming.Name())
	case m.cfg.Kind == KindTrainer:
		m.say("%s sent out %s!", m.trainerName(), incoming.Name())
	default:
		m.say("A wild %s appeared!", incoming.Name())
	}
	m.push(SwitchEvent{Side: side, Index: next})
}

func (m *Manager) canSwitchTo(side Side, to int) bool {
	team := m.team(side)
	if to < 0 || to >= len(team) {
		return false
	}
	return to != m.activeIndex(side) && !team[to].IsFainted()
}

func (m *Manager) trainerName() string {
	if m.cfg.TrainerName == "" {
		return "Trainer"
	}
	return m.cfg.TrainerName
}

func (m *Manager) team(side Side) []*monster.Monster {
	if side == SidePlayer {
		return m.player
	}
	return m.enemy
}

func (m *Manager) activeIndex(side Side) int {
	if side == SidePlayer {
		return m.playerActive
	}
	return m.enemyActive
}

func (m *Manager) setActive(side Side, i int) {
	if side == SidePlayer {
		m.playerActive = i
	} else {
		m.enemyActive = i
	}
}

func (m *Manager) active(side Side) *monster.Monster {
	team, i := m.team(side), m.activeIndex(side)
	if i < 0 || i >= len(team) {
		return nil
	}
	return team[i]
}

func (m *Manager) setState(s State) {
	m.state = s
	m.push(StateChangedEvent{State: s})
}

func (m *Manager) say(format string, args ...any) {
	m.push(MessageEvent{Text: fmt.Sprintf(format, args...)})
}

func (m *Manager) push(e Event) {
	m.queue = append(m.queue, e)
	if m.observer != nil {
		m.observer(e)
	}
}

// Next returns the oldest unacknowledged event without removing it.
func (m *Manager) Next() (Event, bool) {
	if len(m.queue) == 0 {
		return nil, false
	}
	return m.queue[0], true
}

// Ack dismisses the event returned by Next.
func (m *Manager) Ack() {
	if len(m.queue) > 0 {
		m.queue[0] = nil
		m.queue = m.queue[1:]
	}
}

// Drain acknowledges and returns every pending event.
func (m *Manager) Drain() []Event {
	out := m.queue
	m.queue = nil
	return out
}

// Pending returns the number of unacknowledged events.
func (m *Manager) Pending() int { return len(m.queue) }

func (m *Manager) ID() string { return m.id }

func (m *Manager) State() State { return m.state }

func (m *Manager) Result() Result { return m.result }

func (m *Manager) Turn() int { return m.turn }

func (m *Manager) Kind() Kind { return m.cfg.Kind }

func (m *Manager) CanEscape() bool { return m.cfg.CanEscape }

// ActivePlayer returns the player's active monster.
func (m *Manager) ActivePlayer() *monster.Monster { return m.active(SidePlayer) }

// ActiveEnemy returns the enemy's active monster.
func (m *Manager) ActiveEnemy() *monster.Monster { return m.active(SideEnemy) }

// PlayerTeam returns the battle-scoped player monsters.
func (m *Manager) PlayerTeam() []*monster.Monster {
	return append([]*monster.Monster(nil), m.player...)
}

// SwitchTargets returns the player team indices eligible for a switch.
func (m *Manager) SwitchTargets() []int {
	var out []int
	for i := range m.player {
		if m.canSwitchTo(SidePlayer, i) {
			out = append(out, i)
		}
	}
	return out
}

// PlayerTeamData returns copies of the player's instances in their current
// state, for the caller to write back to its persistent team.
func (m *Manager) PlayerTeamData() []monster.Instance {
	return monster.CloneTeam(m.cfg.PlayerTeam)
}
