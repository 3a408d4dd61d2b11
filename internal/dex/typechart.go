package dex

// TypeChart maps attack type -> defense type -> damage multiplier.
// Pairs that are absent are neutral.
type TypeChart map[ElementType]map[ElementType]float64

// Multiplier returns the single-type multiplier for (atk, def).
func (c TypeChart) Multiplier(atk, def ElementType) float64 {
	if row, ok := c[atk]; ok {
		if m, ok := row[def]; ok {
			return m
		}
	}
	return 1
}

// Effectiveness multiplies the chart entries across the defender's types.
// TypeNone entries are skipped.
func (c TypeChart) Effectiveness(atk ElementType, defs ...ElementType) float64 {
	mult := 1.0
	for _, def := range defs {
		if def == TypeNone {
			continue
		}
		mult *= c.Multiplier(atk, def)
	}
	return mult
}

// Efficacy classifies a combined multiplier for narration.
type Efficacy int

const (
	Neutral Efficacy = iota
	NoEffect
	NotVeryEffective
	SuperEffective
)

// Classify buckets a multiplier.
func Classify(mult float64) Efficacy {
	switch {
	case mult == 0:
		return NoEffect
	case mult >= 2:
		return SuperEffective
	case mult > 0 && mult < 1:
		return NotVeryEffective
	default:
		return Neutral
	}
}

// Message returns the narration line, or "" when nothing is said.
func (e Efficacy) Message() string {
	switch e {
	case NoEffect:
		return "It had no effect..."
	case NotVeryEffective:
		return "It's not very effective..."
	case SuperEffective:
		return "It's super effective!"
	default:
		return ""
	}
}

// String returns a short identifier.
func (e Efficacy) String() string {
	switch e {
	case Neutral:
		return "neutral"
	case NoEffect:
		return "no_effect"
	case NotVeryEffective:
		return "not_very_effective"
	case SuperEffective:
		return "super_effective"
	default:
		return "unknown"
	}
}
