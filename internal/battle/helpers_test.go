package battle

import (
	"testing"

	"github.com/vovakirdan/tui-monsters/internal/dex"
	"github.com/vovakirdan/tui-monsters/internal/monster"
)

func testDex(t *testing.T) *dex.Dex {
	t.Helper()
	d, err := dex.Default()
	if err != nil {
		t.Fatalf("dex.Default() failed: %v", err)
	}
	return d
}

// newInstance builds a zero-IV hardy instance at full HP.
func newInstance(t *testing.T, d *dex.Dex, species, level int, moves ...string) monster.Instance {
	t.Helper()
	inst := monster.Instance{SpeciesID: species, Level: level, Nature: dex.NatureHardy}
	for _, id := range moves {
		mv, err := d.Move(id)
		if err != nil {
			t.Fatalf("move %s: %v", id, err)
		}
		inst.Moves = append(inst.Moves, monster.MoveSlot{MoveID: id, PP: mv.PP})
	}
	m, err := monster.New(d, &inst)
	if err != nil {
		t.Fatalf("monster.New: %v", err)
	}
	m.SetHP(m.MaxHP())
	return inst
}

func newMonster(t *testing.T, d *dex.Dex, species, level int, moves ...string) *monster.Monster {
	t.Helper()
	inst := newInstance(t, d, species, level, moves...)
	m, err := monster.New(d, &inst)
	if err != nil {
		t.Fatalf("monster.New: %v", err)
	}
	return m
}

func messages(events []Event) []string {
	var out []string
	for _, e := range events {
		if msg, ok := e.(MessageEvent); ok {
			out = append(out, msg.Text)
		}
	}
	return out
}

func containsMessage(events []Event, text string) bool {
	for _, m := range messages(events) {
		if m == text {
			return true
		}
	}
	return false
}

func countEvents[T Event](events []Event) int {
	n := 0
	for _, e := range events {
		if _, ok := e.(T); ok {
			n++
		}
	}
	return n
}
