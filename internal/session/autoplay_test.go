package session

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-monsters/internal/battle"
	"github.com/vovakirdan/tui-monsters/internal/core/coretest"
	"github.com/vovakirdan/tui-monsters/internal/dex"
	"github.com/vovakirdan/tui-monsters/internal/monster"
)

func monsterWith(t *testing.T, d *dex.Dex, species, level int, slots ...monster.MoveSlot) *monster.Monster {
	t.Helper()
	inst := monster.Instance{SpeciesID: species, Level: level, Nature: dex.NatureHardy, Moves: slots}
	m, err := monster.New(d, &inst)
	if err != nil {
		t.Fatalf("monster.New: %v", err)
	}
	m.SetHP(m.MaxHP())
	return m
}

func TestAutoMove(t *testing.T) {
	s := newSession(t, 1)
	d := s.Dex()

	tests := []struct {
		name  string
		slots []monster.MoveSlot
		want  int
	}{
		{"prefers damaging", []monster.MoveSlot{{MoveID: "growl", PP: 40}, {MoveID: "ember", PP: 25}}, 1},
		{"status when no damaging pp", []monster.MoveSlot{{MoveID: "growl", PP: 40}, {MoveID: "ember", PP: 0}}, 0},
		{"slot 0 when nothing usable", []monster.MoveSlot{{MoveID: "growl", PP: 0}, {MoveID: "ember", PP: 0}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := monsterWith(t, d, 1, 10, tt.slots...)
			if got := AutoMove(m, &coretest.Rand{}); got != tt.want {
				t.Errorf("AutoMove() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAutoBattle(t *testing.T) {
	var saved []battle.Summary
	s := newSession(t, 11, WithSaver(saverFunc(func(sum battle.Summary) error {
		saved = append(saved, sum)
		return nil
	})))
	if err := s.ChooseStarter(1, 30); err != nil {
		t.Fatal(err)
	}
	if err := s.EnterZone("grass-area"); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		m, err := s.AutoBattle(1000, 200)
		if err != nil {
			t.Fatalf("AutoBattle() failed: %v", err)
		}
		if !m.State().IsOver() {
			t.Fatalf("battle %d not over: %s", i, m.State())
		}
	}
	if len(saved) != 3 {
		t.Errorf("saved %d battles, want 3", len(saved))
	}
}

func TestAutoBattleTurnLimit(t *testing.T) {
	s := newSession(t, 3)
	if err := s.ChooseStarter(1, 5); err != nil {
		t.Fatal(err)
	}
	if err := s.EnterZone("grass-area"); err != nil {
		t.Fatal(err)
	}

	before := s.Team()
	m, err := s.AutoBattle(1000, 0)
	if !errors.Is(err, ErrUnfinished) {
		t.Fatalf("err = %v, want ErrUnfinished", err)
	}
	if m == nil || m.State().IsOver() {
		t.Fatal("expected the unfinished battle back")
	}
	if totalPP(s.Team()[0]) != totalPP(before[0]) {
		t.Error("an unfinished battle should not touch the team")
	}
}

func TestAutoBattleNeedsStarter(t *testing.T) {
	s := newSession(t, 1)
	if _, err := s.AutoBattle(10, 10); !errors.Is(err, ErrNoStarter) {
		t.Errorf("err = %v, want ErrNoStarter", err)
	}
}
