package dex

// Nature is one of the 25 personality categories.
type Nature int

const (
	NatureHardy Nature = iota
	NatureLonely
	NatureBrave
	NatureAdamant
	NatureNaughty
	NatureBold
	NatureDocile
	NatureRelaxed
	NatureImpish
	NatureLax
	NatureTimid
	NatureHasty
	NatureSerious
	NatureJolly
	NatureNaive
	NatureModest
	NatureMild
	NatureQuiet
	NatureBashful
	NatureRash
	NatureCalm
	NatureGentle
	NatureSassy
	NatureCareful
	NatureQuirky

	natureCount
)

var natureNames = [natureCount]string{
	"hardy", "lonely", "brave", "adamant", "naughty",
	"bold", "docile", "relaxed", "impish", "lax",
	"timid", "hasty", "serious", "jolly", "naive",
	"modest", "mild", "quiet", "bashful", "rash",
	"calm", "gentle", "sassy", "careful", "quirky",
}

// NatureCount is the number of natures.
const NatureCount = int(natureCount)

// String returns the data-file identifier.
func (n Nature) String() string {
	if n < 0 || n >= natureCount {
		return "unknown"
	}
	return natureNames[n]
}

// ParseNature resolves a data-file identifier.
func ParseNature(s string) (Nature, bool) {
	for i, name := range natureNames {
		if name == s {
			return Nature(i), true
		}
	}
	return NatureHardy, false
}

// AllNatures returns every nature in declaration order.
func AllNatures() []Nature {
	all := make([]Nature, NatureCount)
	for i := range all {
		all[i] = Nature(i)
	}
	return all
}

// NatureModifier holds the multiplicative coefficients a nature applies to
// the five non-HP stats.
type NatureModifier struct {
	Attack    float64
	Defense   float64
	SpAttack  float64
	SpDefense float64
	Speed     float64
}

// NeutralModifier returns the all-ones modifier.
func NeutralModifier() NatureModifier {
	return NatureModifier{Attack: 1, Defense: 1, SpAttack: 1, SpDefense: 1, Speed: 1}
}
