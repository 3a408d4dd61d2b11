package battle

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-monsters/internal/config"
	"github.com/vovakirdan/tui-monsters/internal/core"
	"github.com/vovakirdan/tui-monsters/internal/core/coretest"
	"github.com/vovakirdan/tui-monsters/internal/dex"
	"github.com/vovakirdan/tui-monsters/internal/monster"
)

// startedBattle creates a battle, plays the intro and dismisses it.
func startedBattle(t *testing.T, d *dex.Dex, cfg Config, rng core.Rand, opts ...Option) *Manager {
	t.Helper()
	opts = append([]Option{WithRand(rng)}, opts...)
	m, err := New(d, cfg, opts...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	m.Start()
	m.Drain()
	return m
}

func wild(player []monster.Instance, enemy monster.Instance) Config {
	return WildConfig(player, enemy)
}

func TestNewErrors(t *testing.T) {
	d := testDex(t)
	flamelet := newInstance(t, d, 1, 5, "scratch")
	fainted := flamelet.Clone()
	fainted.CurrentHP = 0

	unknownSpecies := flamelet.Clone()
	unknownSpecies.SpeciesID = 404
	unknownMove := flamelet.Clone()
	unknownMove.Moves[0].MoveID = "teleport"

	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"empty player team", Config{EnemyTeam: []monster.Instance{flamelet}}, ErrEmptyTeam},
		{"empty enemy team", Config{PlayerTeam: []monster.Instance{flamelet}}, ErrEmptyTeam},
		{"fainted player team", wild([]monster.Instance{fainted}, flamelet), ErrNoLivingMember},
		{"fainted enemy team", wild([]monster.Instance{flamelet}, fainted), ErrNoLivingMember},
		{"unknown species", wild([]monster.Instance{unknownSpecies}, flamelet), dex.ErrUnknownSpecies},
		{"unknown move", wild([]monster.Instance{flamelet}, unknownMove), dex.ErrUnknownMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(d, tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("New() err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFirstLivingMemberLeads(t *testing.T) {
	d := testDex(t)
	first := newInstance(t, d, 4, 5, "thunder-shock")
	first.CurrentHP = 0
	second := newInstance(t, d, 1, 5, "scratch")

	m, err := New(d, wild([]monster.Instance{first, second}, newInstance(t, d, 5, 3, "scratch")))
	if err != nil {
		t.Fatal(err)
	}
	if m.ActivePlayer().Name() != "Flamelet" {
		t.Errorf("active = %s, want Flamelet", m.ActivePlayer().Name())
	}
	if m.State() != StateIntro {
		t.Errorf("state = %s, want intro", m.State())
	}
}

func TestIntroWild(t *testing.T) {
	d := testDex(t)
	m, err := New(d, wild([]monster.Instance{newInstance(t, d, 1, 5, "scratch")}, newInstance(t, d, 4, 3, "thunder-shock")))
	if err != nil {
		t.Fatal(err)
	}
	m.Start()

	events := m.Drain()
	want := []Event{
		MessageEvent{Text: "A wild Voltmouse appeared!"},
		MessageEvent{Text: "Go! Flamelet!"},
		StateChangedEvent{State: StateSelectAction},
	}
	if len(events) != len(want) {
		t.Fatalf("events = %+v, want %+v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, events[i], want[i])
		}
	}
}

func TestIntroTrainer(t *testing.T) {
	d := testDex(t)
	cfg := Config{
		Kind:        KindTrainer,
		TrainerName: "Rival",
		PlayerTeam:  []monster.Instance{newInstance(t, d, 1, 5, "scratch")},
		EnemyTeam:   []monster.Instance{newInstance(t, d, 2, 5, "tackle")},
	}
	m, err := New(d, cfg)
	if err != nil {
		t.Fatal(err)
	}
	m.Start()

	got := messages(m.Drain())
	want := []string{"Rival wants to battle!", "Rival sent out Droplet!", "Go! Flamelet!"}
	if len(got) != len(want) {
		t.Fatalf("messages = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestQueueGatesInput(t *testing.T) {
	d := testDex(t)
	m, err := New(d, wild([]monster.Instance{newInstance(t, d, 1, 5, "scratch")}, newInstance(t, d, 4, 3, "thunder-shock")),
		WithRand(&coretest.Rand{DefaultFloat: 0.99}))
	if err != nil {
		t.Fatal(err)
	}

	if m.SelectPlayerAction(Fight(0)) {
		t.Fatal("selection before Start should be ignored")
	}
	m.Start()

	if m.SelectPlayerAction(Fight(0)) {
		t.Fatal("selection with pending messages should be ignored")
	}
	m.EnterMoveSelect()
	if m.State() != StateSelectAction {
		t.Fatalf("state changed while events pending: %s", m.State())
	}

	first, ok := m.Next()
	if !ok {
		t.Fatal("expected a pending event")
	}
	again, _ := m.Next()
	if first != again {
		t.Error("Next should not advance without Ack")
	}
	m.Ack()
	second, _ := m.Next()
	if second != (MessageEvent{Text: "Go! Flamelet!"}) {
		t.Errorf("second event = %+v", second)
	}
	m.Ack()
	m.Ack()

	if m.Pending() != 0 {
		t.Fatalf("pending = %d after acking everything", m.Pending())
	}
	if !m.SelectPlayerAction(Fight(0)) {
		t.Fatal("selection should be accepted once the queue is empty")
	}
	if m.Turn() != 1 {
		t.Errorf("turn = %d, want 1", m.Turn())
	}
}

func TestMenuTransitions(t *testing.T) {
	d := testDex(t)
	m := startedBattle(t, d, wild([]monster.Instance{newInstance(t, d, 1, 5, "scratch")}, newInstance(t, d, 4, 3, "growl")), core.NewRand(1))

	m.EnterMoveSelect()
	if m.State() != StateSelectMove {
		t.Fatalf("state = %s, want select_move", m.State())
	}
	events := m.Drain()
	if len(events) != 1 || events[0] != (StateChangedEvent{State: StateSelectMove}) {
		t.Errorf("events = %+v", events)
	}

	m.EnterActionSelect()
	m.Drain()
	if m.State() != StateSelectAction {
		t.Errorf("state = %s, want select_action", m.State())
	}
}

func TestVictory(t *testing.T) {
	d := testDex(t)
	m := startedBattle(t, d,
		wild([]monster.Instance{newInstance(t, d, 1, 50, "scratch")}, newInstance(t, d, 4, 2, "thunder-shock", "growl")),
		&coretest.Rand{DefaultFloat: 0.5})

	if !m.SelectPlayerAction(Fight(0)) {
		t.Fatal("fight rejected")
	}
	events := m.Drain()

	if m.State() != StateVictory || m.Result() != ResultVictory {
		t.Fatalf("state %s result %s, want victory", m.State(), m.Result())
	}
	if containsMessage(events, "Voltmouse used Thunder Shock!") || containsMessage(events, "Voltmouse used Growl!") {
		t.Error("fainted enemy should not act")
	}
	if !containsMessage(events, "Voltmouse fainted!") {
		t.Error("missing faint message")
	}
	if countEvents[FaintEvent](events) != 1 || countEvents[BattleEndEvent](events) != 1 {
		t.Errorf("faint/end events = %d/%d, want 1/1", countEvents[FaintEvent](events), countEvents[BattleEndEvent](events))
	}
	last := events[len(events)-1]
	if last != (BattleEndEvent{Result: ResultVictory}) {
		t.Errorf("last event = %+v, want victory end", last)
	}
	if m.SelectPlayerAction(Fight(0)) {
		t.Error("input accepted after battle end")
	}
}

func TestDefeat(t *testing.T) {
	d := testDex(t)
	m := startedBattle(t, d,
		wild([]monster.Instance{newInstance(t, d, 4, 2, "thunder-shock")}, newInstance(t, d, 1, 50, "scratch")),
		&coretest.Rand{DefaultFloat: 0.5})

	m.SelectPlayerAction(Fight(0))
	events := m.Drain()

	if m.State() != StateDefeat || m.Result() != ResultDefeat {
		t.Fatalf("state %s result %s, want defeat", m.State(), m.Result())
	}
	if containsMessage(events, "Voltmouse used Thunder Shock!") {
		t.Error("fainted player should not act")
	}
	if countEvents[BattleEndEvent](events) != 1 {
		t.Error("want exactly one battle end event")
	}
	for _, e := range events {
		if f, ok := e.(FaintEvent); ok && f.Side != SidePlayer {
			t.Errorf("faint side = %s, want player", f.Side)
		}
	}
}

func TestReplacementAfterFaint(t *testing.T) {
	d := testDex(t)
	player := []monster.Instance{newInstance(t, d, 4, 2, "thunder-shock"), newInstance(t, d, 1, 50, "scratch")}
	m := startedBattle(t, d, wild(player, newInstance(t, d, 1, 40, "scratch")), &coretest.Rand{DefaultFloat: 0.5})

	m.SelectPlayerAction(Fight(0))
	events := m.Drain()

	if m.State() != StateSelectAction || m.Result() != ResultNone {
		t.Fatalf("state %s result %s, want battle to continue", m.State(), m.Result())
	}
	if m.ActivePlayer().Name() != "Flamelet" {
		t.Errorf("active = %s, want Flamelet", m.ActivePlayer().Name())
	}
	if !containsMessage(events, "Go! Flamelet!") {
		t.Error("missing send-out message")
	}
	if countEvents[SwitchEvent](events) != 1 {
		t.Error("want one switch event")
	}
}

func TestSwitchResolvesFirst(t *testing.T) {
	d := testDex(t)
	player := []monster.Instance{newInstance(t, d, 1, 5, "scratch"), newInstance(t, d, 2, 5, "tackle")}
	m := startedBattle(t, d, wild(player, newInstance(t, d, 4, 3, "thunder-shock", "growl")), &coretest.Rand{DefaultFloat: 0.99})

	if m.SelectPlayerAction(SwitchTo(0)) {
		t.Error("switch to the active member should be rejected")
	}
	if m.SelectPlayerAction(SwitchTo(7)) {
		t.Error("switch out of range should be rejected")
	}
	if m.Pending() != 0 || m.Turn() != 0 {
		t.Fatal("rejected switch produced events")
	}

	if !m.SelectPlayerAction(SwitchTo(1)) {
		t.Fatal("valid switch rejected")
	}
	events := m.Drain()
	got := messages(events)
	want := []string{"Flamelet, come back!", "Go! Droplet!", "Voltmouse used Thunder Shock!"}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("messages = %v, want prefix %v", got, want)
		}
	}

	droplet := m.ActivePlayer()
	if droplet.Name() != "Droplet" {
		t.Fatalf("active = %s, want Droplet", droplet.Name())
	}
	for _, e := range events {
		if dmg, ok := e.(DamageEvent); ok {
			if dmg.Side != SidePlayer || dmg.MaxHP != droplet.MaxHP() || dmg.HP != droplet.HP() {
				t.Errorf("damage event %+v does not describe Droplet", dmg)
			}
		}
	}
	if got := m.SwitchTargets(); len(got) != 1 || got[0] != 0 {
		t.Errorf("SwitchTargets() = %v, want [0]", got)
	}
}

func TestItemHasNoEffect(t *testing.T) {
	d := testDex(t)
	m := startedBattle(t, d, wild([]monster.Instance{newInstance(t, d, 1, 5, "scratch")}, newInstance(t, d, 4, 3, "thunder-shock")),
		&coretest.Rand{DefaultFloat: 0.99})

	m.SelectPlayerAction(UseItem("potion"))
	got := messages(m.Drain())
	if len(got) < 2 || got[0] != "You used potion. It had no effect." || got[1] != "Voltmouse used Thunder Shock!" {
		t.Errorf("messages = %v", got)
	}
}

func TestMissingMoveSlotIsSkipped(t *testing.T) {
	d := testDex(t)
	m := startedBattle(t, d, wild([]monster.Instance{newInstance(t, d, 1, 5, "scratch")}, newInstance(t, d, 4, 3, "thunder-shock")),
		&coretest.Rand{DefaultFloat: 0.99})

	if !m.SelectPlayerAction(Fight(3)) {
		t.Fatal("fight with missing slot should still consume the turn")
	}
	got := messages(m.Drain())
	if len(got) != 1 || got[0] != "Voltmouse used Thunder Shock!" {
		t.Errorf("messages = %v, want only the enemy move", got)
	}
	if m.Turn() != 1 || m.State() != StateSelectAction {
		t.Errorf("turn %d state %s", m.Turn(), m.State())
	}
}

func TestMissConsumesPP(t *testing.T) {
	d := testDex(t)
	m := startedBattle(t, d,
		wild([]monster.Instance{newInstance(t, d, 3, 12, "razor-leaf")}, newInstance(t, d, 5, 2, "scratch", "sand-attack")),
		&coretest.Rand{Floats: []float64{0.96}, DefaultFloat: 0.99})

	m.SelectPlayerAction(Fight(0))
	got := messages(m.Drain())
	if len(got) < 2 || got[0] != "Sproutling used Razor Leaf!" || got[1] != "But it missed!" {
		t.Fatalf("messages = %v", got)
	}
	if pp := m.PlayerTeamData()[0].Moves[0].PP; pp != 24 {
		t.Errorf("razor-leaf PP = %d, want 24", pp)
	}
}

func TestStatusApplied(t *testing.T) {
	d := testDex(t)
	rng := &coretest.Rand{Floats: []float64{0.0, 0.5, 0.0, 0.05}, DefaultFloat: 0.99}
	m := startedBattle(t, d,
		wild([]monster.Instance{newInstance(t, d, 1, 5, "ember")}, newInstance(t, d, 3, 5, "tackle", "growl", "vine-whip")),
		rng)

	m.SelectPlayerAction(Fight(0))
	events := m.Drain()

	want := []string{"Flamelet used Ember!", "It's super effective!", "Sproutling was burned!"}
	got := messages(events)
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("messages = %v, want prefix %v", got, want)
		}
	}
	enemy := m.ActiveEnemy()
	if enemy.Status() != dex.StatusBurn {
		t.Errorf("status = %s, want burn", enemy.Status())
	}
	if enemy.HP() != 7 {
		t.Errorf("enemy hp = %d, want 7", enemy.HP())
	}
	if countEvents[StatusAppliedEvent](events) != 1 {
		t.Error("want one status event")
	}
}

func TestCannotEscape(t *testing.T) {
	d := testDex(t)
	cfg := Config{
		Kind:        KindTrainer,
		TrainerName: "Rival",
		PlayerTeam:  []monster.Instance{newInstance(t, d, 1, 5, "scratch")},
		EnemyTeam:   []monster.Instance{newInstance(t, d, 2, 5, "tackle")},
	}
	m := startedBattle(t, d, cfg, core.NewRand(1))
	hp := m.ActivePlayer().HP()

	m.SelectPlayerAction(Run())
	events := m.Drain()

	if len(events) != 2 || events[0] != (MessageEvent{Text: "Can't escape!"}) || events[1] != (StateChangedEvent{State: StateSelectAction}) {
		t.Errorf("events = %+v", events)
	}
	if m.Turn() != 0 || m.ActivePlayer().HP() != hp {
		t.Error("forbidden escape should not cost a turn")
	}
}

func TestEscapeSuccess(t *testing.T) {
	d := testDex(t)
	m := startedBattle(t, d, wild([]monster.Instance{newInstance(t, d, 1, 5, "scratch")}, newInstance(t, d, 4, 3, "thunder-shock")),
		&coretest.Rand{Floats: []float64{0.5}})

	m.SelectPlayerAction(Run())
	events := m.Drain()
	want := []Event{
		MessageEvent{Text: "Got away safely!"},
		StateChangedEvent{State: StateEscape},
		BattleEndEvent{Result: ResultEscape},
	}
	if len(events) != len(want) {
		t.Fatalf("events = %+v", events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, events[i], want[i])
		}
	}
}

func TestEscapeFailureEnemyActs(t *testing.T) {
	d := testDex(t)
	m := startedBattle(t, d, wild([]monster.Instance{newInstance(t, d, 1, 5, "scratch")}, newInstance(t, d, 4, 3, "thunder-shock", "growl")),
		&coretest.Rand{Floats: []float64{0.9}, DefaultFloat: 0.99})
	hp := m.ActivePlayer().HP()

	m.SelectPlayerAction(Run())
	got := messages(m.Drain())

	if len(got) < 2 || got[0] != "Couldn't get away!" || got[1] != "Voltmouse used Thunder Shock!" {
		t.Fatalf("messages = %v", got)
	}
	for _, msg := range got {
		if msg == "Flamelet used Scratch!" {
			t.Error("player should not act after a failed escape")
		}
	}
	if m.ActivePlayer().HP() >= hp {
		t.Error("enemy attack did not land")
	}
	if m.Turn() != 1 || m.State() != StateSelectAction {
		t.Errorf("turn %d state %s", m.Turn(), m.State())
	}
}

func TestEscapeRate(t *testing.T) {
	d := testDex(t)
	player := []monster.Instance{newInstance(t, d, 1, 5, "scratch")}
	enemy := newInstance(t, d, 4, 3, "growl")
	rng := core.NewRand(2024)

	const trials = 4000
	escaped := 0
	for i := 0; i < trials; i++ {
		m := startedBattle(t, d, wild(player, enemy), rng)
		m.SelectPlayerAction(Run())
		m.Drain()
		if m.Result() == ResultEscape {
			escaped++
		}
	}

	rate := float64(escaped) / trials
	if rate < 0.77 || rate > 0.83 {
		t.Errorf("escape rate %.3f, want about 0.80", rate)
	}
}

func TestEnemyChoosesMovesWithPP(t *testing.T) {
	d := testDex(t)
	enemy := newInstance(t, d, 4, 3, "thunder-shock", "growl")
	enemy.Moves[0].PP = 0
	m := startedBattle(t, d, wild([]monster.Instance{newInstance(t, d, 1, 60, "growl")}, enemy), core.NewRand(5))

	for turn := 0; turn < 20; turn++ {
		m.SelectPlayerAction(Fight(0))
		for _, msg := range messages(m.Drain()) {
			if msg == "Voltmouse used Thunder Shock!" {
				t.Fatalf("turn %d: enemy used a move without PP", turn)
			}
		}
	}
}

func TestEnemyWithoutPPUsesFirstSlot(t *testing.T) {
	d := testDex(t)
	enemy := newInstance(t, d, 4, 3, "thunder-shock", "growl")
	enemy.Moves[0].PP = 0
	enemy.Moves[1].PP = 0
	m := startedBattle(t, d, wild([]monster.Instance{newInstance(t, d, 1, 60, "growl")}, enemy),
		&coretest.Rand{DefaultFloat: 0.99})

	m.SelectPlayerAction(Fight(0))
	if !containsMessage(m.Drain(), "Voltmouse used Thunder Shock!") {
		t.Error("enemy without PP should fall back to slot 0")
	}
}

func TestObserverSeesQueueOrder(t *testing.T) {
	d := testDex(t)
	var observed []Event
	m := startedBattle(t, d,
		wild([]monster.Instance{newInstance(t, d, 1, 5, "scratch")}, newInstance(t, d, 4, 3, "thunder-shock")),
		core.NewRand(9), WithObserver(func(e Event) { observed = append(observed, e) }))
	observed = nil

	m.SelectPlayerAction(Fight(0))
	drained := m.Drain()
	if len(observed) != len(drained) {
		t.Fatalf("observed %d events, queued %d", len(observed), len(drained))
	}
	for i := range drained {
		if observed[i] != drained[i] {
			t.Errorf("event %d: observed %+v, queued %+v", i, observed[i], drained[i])
		}
	}
}

func TestPlayerTeamDataIsCopied(t *testing.T) {
	d := testDex(t)
	player := []monster.Instance{newInstance(t, d, 1, 5, "scratch")}
	startHP := player[0].CurrentHP
	m := startedBattle(t, d, wild(player, newInstance(t, d, 4, 3, "thunder-shock")), &coretest.Rand{DefaultFloat: 0.99})

	m.SelectPlayerAction(Fight(0))
	m.Drain()

	if player[0].CurrentHP != startHP || player[0].Moves[0].PP != 35 {
		t.Error("caller's team was mutated")
	}
	data := m.PlayerTeamData()
	if data[0].CurrentHP >= startHP {
		t.Errorf("team data hp %d, want below %d", data[0].CurrentHP, startHP)
	}
	if data[0].Moves[0].PP != 34 {
		t.Errorf("team data PP = %d, want 34", data[0].Moves[0].PP)
	}
	data[0].CurrentHP = 1
	if m.ActivePlayer().HP() == 1 {
		t.Error("PlayerTeamData aliases battle state")
	}
}

type recordingSaver struct {
	saved []Summary
}

func (r *recordingSaver) SaveBattle(s Summary) error {
	r.saved = append(r.saved, s)
	return nil
}

func TestSaverReceivesSummary(t *testing.T) {
	d := testDex(t)
	saver := &recordingSaver{}
	m := startedBattle(t, d,
		wild([]monster.Instance{newInstance(t, d, 1, 50, "scratch")}, newInstance(t, d, 4, 2, "thunder-shock")),
		&coretest.Rand{DefaultFloat: 0.5}, WithSaver(saver))

	m.SelectPlayerAction(Fight(0))
	m.Drain()

	if len(saver.saved) != 1 {
		t.Fatalf("saved %d summaries, want 1", len(saver.saved))
	}
	s := saver.saved[0]
	if s.ID != m.ID() || s.Result != ResultVictory || s.Turns != 1 || s.Kind != KindWild {
		t.Errorf("summary = %+v", s)
	}
	if s.PlayerLead != "Flamelet" || s.EnemyLead != "Voltmouse" || s.EnemyLevel != 2 || s.EnemyRemaining != 0 {
		t.Errorf("summary = %+v", s)
	}
}

// playOut drives a battle with random fight choices until it ends.
func playOut(t *testing.T, m *Manager, choices core.Rand, maxTurns int) []Event {
	t.Helper()
	var events []Event
	for turn := 0; turn < maxTurns && !m.State().IsOver(); turn++ {
		n := len(m.ActivePlayer().Moves())
		m.SelectPlayerAction(Fight(choices.Intn(n)))
		events = append(events, m.Drain()...)
	}
	return events
}

func TestVictoryDefeatExclusive(t *testing.T) {
	d := testDex(t)
	rng := core.NewRand(314)
	factory := monster.NewFactory(d, rng, config.DefaultEngineConfig().Monster)

	team := func() []monster.Instance {
		var out []monster.Instance
		size := 1 + rng.Intn(3)
		for i := 0; i < size; i++ {
			mon, err := factory.Wild(1+rng.Intn(5), 1+rng.Intn(20))
			if err != nil {
				t.Fatal(err)
			}
			out = append(out, *mon.Instance())
		}
		return out
	}

	for i := 0; i < 150; i++ {
		cfg := Config{Kind: KindTrainer, PlayerTeam: team(), EnemyTeam: team()}
		m := startedBattle(t, d, cfg, rng)
		events := playOut(t, m, rng, 500)
		if !m.State().IsOver() {
			continue
		}

		if n := countEvents[BattleEndEvent](events); n != 1 {
			t.Fatalf("battle %d: %d end events", i, n)
		}
		playerWiped := allFainted(m.player)
		enemyWiped := allFainted(m.enemy)
		switch m.Result() {
		case ResultVictory:
			if !enemyWiped || playerWiped {
				t.Fatalf("battle %d: victory with player wiped %v enemy wiped %v", i, playerWiped, enemyWiped)
			}
		case ResultDefeat:
			if !playerWiped || enemyWiped {
				t.Fatalf("battle %d: defeat with player wiped %v enemy wiped %v", i, playerWiped, enemyWiped)
			}
		default:
			t.Fatalf("battle %d: unexpected result %s", i, m.Result())
		}
	}
}

func TestBattleDeterminism(t *testing.T) {
	d := testDex(t)
	run := func() (Snapshot, []Event) {
		rng := core.NewRand(77)
		factory := monster.NewFactory(d, rng, config.DefaultEngineConfig().Monster)
		p, err := factory.Starter(1, 8)
		if err != nil {
			t.Fatal(err)
		}
		e, err := factory.Wild(4, 6)
		if err != nil {
			t.Fatal(err)
		}
		m := startedBattle(t, d, wild([]monster.Instance{*p.Instance()}, *e.Instance()), rng)
		events := playOut(t, m, rng, 100)
		return m.Snapshot(), events
	}

	s1, e1 := run()
	s2, e2 := run()
	if !s1.Equal(s2) {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
	if len(e1) != len(e2) {
		t.Fatalf("event counts differ: %d vs %d", len(e1), len(e2))
	}
	for i := range e1 {
		if e1[i] != e2[i] {
			t.Fatalf("event %d differs: %+v vs %+v", i, e1[i], e2[i])
		}
	}
}
