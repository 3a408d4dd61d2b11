package monster

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-monsters/internal/config"
	"github.com/vovakirdan/tui-monsters/internal/core"
	"github.com/vovakirdan/tui-monsters/internal/core/coretest"
	"github.com/vovakirdan/tui-monsters/internal/dex"
)

func defaultMonsterConfig() config.MonsterConfig {
	return config.DefaultEngineConfig().Monster
}

func moveIDs(m *Monster) []string {
	var ids []string
	for _, s := range m.Moves() {
		ids = append(ids, s.MoveID)
	}
	return ids
}

func TestWildMovesByLevel(t *testing.T) {
	f := NewFactory(testDex(t), core.NewRand(1), defaultMonsterConfig())

	tests := []struct {
		species int
		level   int
		want    []string
	}{
		{1, 1, []string{"scratch", "growl"}},
		{1, 5, []string{"scratch", "growl", "ember"}},
		{1, 12, []string{"growl", "ember", "leer", "quick-attack"}},
		{4, 9, []string{"thunder-shock", "growl", "quick-attack"}},
		{5, 50, []string{"scratch", "sand-attack", "mud-slap", "dig"}},
	}

	for _, tt := range tests {
		m, err := f.Wild(tt.species, tt.level)
		if err != nil {
			t.Fatalf("Wild(%d, %d) failed: %v", tt.species, tt.level, err)
		}
		got := moveIDs(m)
		if len(got) != len(tt.want) {
			t.Fatalf("Wild(%d, %d) moves = %v, want %v", tt.species, tt.level, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Wild(%d, %d) moves = %v, want %v", tt.species, tt.level, got, tt.want)
				break
			}
		}
	}
}

func TestWildFallsBackToFirstMove(t *testing.T) {
	natures := make(map[dex.Nature]dex.NatureModifier)
	for _, n := range dex.AllNatures() {
		natures[n] = dex.NeutralModifier()
	}
	d, err := dex.New(dex.Tables{
		Species: []dex.Species{{
			ID: 1, Name: "Late", Types: [2]dex.ElementType{dex.TypeNormal},
			BaseStats: dex.Stats{HP: 40, Attack: 40, Defense: 40, SpAttack: 40, SpDefense: 40, Speed: 40},
			Learnset:  []dex.LearnsetEntry{{Level: 10, MoveID: "slam"}, {Level: 20, MoveID: "bash"}},
		}},
		Moves: []dex.Move{
			{ID: "slam", Type: dex.TypeNormal, Power: 80, Accuracy: 75, PP: 20},
			{ID: "bash", Type: dex.TypeNormal, Power: 90, Accuracy: 100, PP: 15},
		},
		Natures: natures,
	})
	if err != nil {
		t.Fatal(err)
	}

	m, err := NewFactory(d, core.NewRand(1), defaultMonsterConfig()).Wild(1, 3)
	if err != nil {
		t.Fatalf("Wild() failed: %v", err)
	}
	slots := m.Moves()
	if len(slots) != 1 || slots[0].MoveID != "slam" || slots[0].PP != 20 {
		t.Errorf("moves = %+v, want [slam 20]", slots)
	}
}

func TestWildScriptedRolls(t *testing.T) {
	rng := &coretest.Rand{Ints: []int{1, 2, 3, 4, 5, 6, int(dex.NatureAdamant)}, DefaultFloat: 0.99}
	m, err := NewFactory(testDex(t), rng, defaultMonsterConfig()).Wild(4, 5)
	if err != nil {
		t.Fatal(err)
	}
	inst := m.Instance()

	want := dex.Stats{HP: 1, Attack: 2, Defense: 3, SpAttack: 4, SpDefense: 5, Speed: 6}
	if inst.IVs != want {
		t.Errorf("IVs = %+v, want %+v", inst.IVs, want)
	}
	if inst.Nature != dex.NatureAdamant {
		t.Errorf("Nature = %s, want adamant", inst.Nature)
	}
	if inst.EVs != (dex.Stats{}) {
		t.Errorf("EVs = %+v, want zero", inst.EVs)
	}
	if inst.Shiny {
		t.Error("should not be shiny")
	}
	if m.HP() != m.MaxHP() {
		t.Errorf("HP %d, want full %d", m.HP(), m.MaxHP())
	}
	for _, s := range inst.Moves {
		mv, _ := testDex(t).Move(s.MoveID)
		if s.PP != mv.PP {
			t.Errorf("%s PP = %d, want %d", s.MoveID, s.PP, mv.PP)
		}
	}
}

func TestWildIVRange(t *testing.T) {
	f := NewFactory(testDex(t), core.NewRand(3), defaultMonsterConfig())
	for i := 0; i < 200; i++ {
		m, err := f.Wild(5, 4)
		if err != nil {
			t.Fatal(err)
		}
		for _, iv := range m.Instance().IVs.Values() {
			if iv < 0 || iv > MaxIV {
				t.Fatalf("iv %d out of range", iv)
			}
		}
	}
}

func TestStarterIVFloor(t *testing.T) {
	cfg := defaultMonsterConfig()
	f := NewFactory(testDex(t), core.NewRand(11), cfg)

	for i := 0; i < 200; i++ {
		m, err := f.Starter(1+i%3, 5)
		if err != nil {
			t.Fatal(err)
		}
		for _, iv := range m.Instance().IVs.Values() {
			if iv < cfg.StarterIVFloor || iv > MaxIV {
				t.Fatalf("starter iv %d outside [%d,%d]", iv, cfg.StarterIVFloor, MaxIV)
			}
		}
		if m.HP() != m.MaxHP() {
			t.Fatalf("starter hp %d, want %d", m.HP(), m.MaxHP())
		}
	}
}

func TestShinyOdds(t *testing.T) {
	always := defaultMonsterConfig()
	always.ShinyOdds = 1
	m, err := NewFactory(testDex(t), core.NewRand(5), always).Wild(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Shiny() {
		t.Error("odds 1 should always be shiny")
	}

	never := defaultMonsterConfig()
	never.ShinyOdds = 0
	m, err = NewFactory(testDex(t), &coretest.Rand{}, never).Wild(4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if m.Shiny() {
		t.Error("odds 0 should never be shiny")
	}
}

func TestFactoryErrors(t *testing.T) {
	f := NewFactory(testDex(t), core.NewRand(1), defaultMonsterConfig())
	if _, err := f.Wild(42, 5); !errors.Is(err, dex.ErrUnknownSpecies) {
		t.Errorf("Wild(42) err = %v", err)
	}
	if _, err := f.Starter(1, 0); !errors.Is(err, ErrInvalidInstance) {
		t.Errorf("Starter(level 0) err = %v", err)
	}
}

func TestFactoryDeterminism(t *testing.T) {
	roll := func() []Instance {
		f := NewFactory(testDex(t), core.NewRand(99), defaultMonsterConfig())
		var out []Instance
		for i := 0; i < 20; i++ {
			m, err := f.Wild(1+i%5, 3+i%7)
			if err != nil {
				t.Fatal(err)
			}
			out = append(out, m.Instance().Clone())
		}
		return out
	}

	a, b := roll(), roll()
	for i := range a {
		if a[i].IVs != b[i].IVs || a[i].Nature != b[i].Nature || a[i].Shiny != b[i].Shiny {
			t.Fatalf("roll %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
