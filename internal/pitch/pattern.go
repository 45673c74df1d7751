package pitch

// UnknownDownstep marks a word whose accent position could not be resolved.
const UnknownDownstep = -1

// Pattern names the traditional accent shape classes.
type Pattern string

const (
	// PatternHeiban is the flat pattern with no downstep.
	PatternHeiban Pattern = "heiban"
	// PatternAtamadaka drops after the first mora.
	PatternAtamadaka Pattern = "atamadaka"
	// PatternNakadaka drops mid-word.
	PatternNakadaka Pattern = "nakadaka"
	// PatternOdaka drops after the final mora, on the following particle.
	PatternOdaka Pattern = "odaka"
	// PatternUnknown is the unresolved class.
	PatternUnknown Pattern = "unknown"
)

// Classify maps a downstep position and mora count to a pattern class.
func Classify(downstep, moraCount int) Pattern {
	switch {
	case moraCount == 0 || downstep < 0 || downstep > moraCount:
		return PatternUnknown
	case downstep == 0:
		return PatternHeiban
	case downstep == 1:
		return PatternAtamadaka
	case downstep == moraCount:
		return PatternOdaka
	default:
		return PatternNakadaka
	}
}

// Level is the pitch height of one mora.
type Level int

const (
	// Low is the lower pitch register.
	Low Level = iota
	// High is the upper pitch register.
	High
)

// Heights computes the per-mora pitch levels for a word of n morae with the
// given downstep position. An unknown downstep renders every mora high, the
// flat line readers recognize as "no data".
func Heights(downstep, n int) []Level {
	if n <= 0 {
		return nil
	}
	levels := make([]Level, n)
	switch {
	case downstep < 0 || downstep > n:
		for i := range levels {
			levels[i] = High
		}
	case downstep == 0:
		for i := 1; i < n; i++ {
			levels[i] = High
		}
	case downstep == 1:
		levels[0] = High
	default:
		for i := 1; i < downstep; i++ {
			levels[i] = High
		}
	}
	return levels
}

// ParticleLevel returns the pitch of a particle following the word, which is
// what visually separates heiban from odaka.
func ParticleLevel(downstep int) Level {
	if downstep == 0 {
		return High
	}
	return Low
}
