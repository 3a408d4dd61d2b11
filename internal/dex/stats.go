package dex

import "math"

// ComputeStats derives the six combat stats of an individual.
//
//	HP:    floor((2*base + iv + floor(ev/4)) * level/100) + level + 10
//	other: floor((floor((2*base + iv + floor(ev/4)) * level/100) + 5) * nature)
//
// The function is pure. Negative levels or stats are a caller error.
func ComputeStats(base, iv, ev Stats, mod NatureModifier, level int) Stats {
	return Stats{
		HP:        hpStat(base.HP, iv.HP, ev.HP, level),
		Attack:    otherStat(base.Attack, iv.Attack, ev.Attack, mod.Attack, level),
		Defense:   otherStat(base.Defense, iv.Defense, ev.Defense, mod.Defense, level),
		SpAttack:  otherStat(base.SpAttack, iv.SpAttack, ev.SpAttack, mod.SpAttack, level),
		SpDefense: otherStat(base.SpDefense, iv.SpDefense, ev.SpDefense, mod.SpDefense, level),
		Speed:     otherStat(base.Speed, iv.Speed, ev.Speed, mod.Speed, level),
	}
}

// MaxHP is ComputeStats restricted to HP.
func MaxHP(baseHP, ivHP, evHP, level int) int {
	return hpStat(baseHP, ivHP, evHP, level)
}

func scaled(base, iv, ev, level int) int {
	return (2*base + iv + ev/4) * level / 100
}

func hpStat(base, iv, ev, level int) int {
	return scaled(base, iv, ev, level) + level + 10
}

func otherStat(base, iv, ev int, nature float64, level int) int {
	return int(math.Floor(float64(scaled(base, iv, ev, level)+5) * nature))
}
