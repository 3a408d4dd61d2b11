package battle

import (
	"math"
	"slices"

	"github.com/vovakirdan/tui-monsters/internal/config"
	"github.com/vovakirdan/tui-monsters/internal/core"
	"github.com/vovakirdan/tui-monsters/internal/dex"
	"github.com/vovakirdan/tui-monsters/internal/monster"
)

// DamageResult is the outcome of one move use.
type DamageResult struct {
	Damage        int
	Effectiveness float64
	Critical      bool
	Messages      []string
}

// Calculator computes hit, critical and damage rolls.
type Calculator struct {
	chart dex.TypeChart
	rng   core.Rand
	cfg   config.BattleConfig
}

// NewCalculator creates a calculator drawing from rng.
func NewCalculator(chart dex.TypeChart, rng core.Rand, cfg config.BattleConfig) *Calculator {
	return &Calculator{chart: chart, rng: rng, cfg: cfg}
}

// Calculate computes the damage move deals from attacker to defender.
//
//	base  = floor(((2*level/5 + 2) * power * atk / def) / 50 + 2)
//	final = floor(base * stab * effectiveness * crit * spread), at least 1
//
// Status moves and zero-power moves deal nothing and draw no randomness.
func (c *Calculator) Calculate(attacker, defender *monster.Monster, move *dex.Move) DamageResult {
	if move.Category == dex.CategoryStatus || move.Power == 0 {
		return DamageResult{Effectiveness: 1}
	}

	eff := c.chart.Effectiveness(move.Type, defender.Types()...)
	efficacy := dex.Classify(eff)
	if efficacy == dex.NoEffect {
		return DamageResult{Effectiveness: 0, Messages: []string{efficacy.Message()}}
	}

	var messages []string
	if msg := efficacy.Message(); msg != "" {
		messages = append(messages, msg)
	}

	critical := core.Chance(c.rng, c.cfg.CritChance)
	critMult := 1.0
	if critical {
		critMult = c.cfg.CritMultiplier
		messages = append(messages, "A critical hit!")
	}

	stab := 1.0
	if slices.Contains(attacker.Types(), move.Type) {
		stab = c.cfg.STABMultiplier
	}

	spread := c.cfg.SpreadMin + c.rng.Float64()*(c.cfg.SpreadMax-c.cfg.SpreadMin)

	atkStats, defStats := attacker.Stats(), defender.Stats()
	atk, def := atkStats.Attack, defStats.Defense
	if move.Category == dex.CategorySpecial {
		atk, def = atkStats.SpAttack, defStats.SpDefense
	}

	base := BaseDamage(attacker.Level(), move.Power, atk, def)
	damage := int(math.Floor(float64(base) * stab * eff * critMult * spread))

	return DamageResult{
		Damage:        max(1, damage),
		Effectiveness: eff,
		Critical:      critical,
		Messages:      messages,
	}
}

// BaseDamage is the level/power/stat part of the damage formula.
func BaseDamage(level, power, atk, def int) int {
	def = max(1, def)
	return int(math.Floor((((2*float64(level)/5)+2)*float64(power)*float64(atk)/float64(def))/50 + 2))
}

// CheckHit rolls accuracy: success with probability accuracy/100 * modifier.
func (c *Calculator) CheckHit(move *dex.Move, accuracyModifier float64) bool {
	return core.Chance(c.rng, float64(move.Accuracy)/100*accuracyModifier)
}

// CheckStatusEffect rolls the move's status chance. Moves without an
// effect never succeed and draw no randomness.
func (c *Calculator) CheckStatusEffect(move *dex.Move) bool {
	if !move.HasEffect() {
		return false
	}
	return c.rng.Float64()*100 < float64(move.EffectChance)
}
