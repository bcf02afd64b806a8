package matching

// Detailed policy weights.
const (
	DetailedSlotPoints   = 5
	DetailedOverlapCap   = 50
	DetailedAgePoints    = 20
	DetailedIntentPoints = 10
	DetailedThreshold    = 30
	DetailedMax          = DetailedOverlapCap + DetailedAgePoints + DetailedIntentPoints
)

// Coarse policy weights.
const (
	CoarseCategoryPoints = 40
	CoarseRangePoints    = 30
	CoarseIntentPoints   = 30
	CoarseThreshold      = 60
	CoarseMax            = CoarseCategoryPoints + CoarseRangePoints + CoarseIntentPoints
)

// Score is a policy's verdict on a profile pair.
type Score struct {
	Value uint8
	Match bool
}

// Scorer is a compatibility policy. Implementations must be symmetric.
type Scorer func(a, b PreferenceProfile) Score

// DetailedScore awards DetailedSlotPoints for every (i, j) where slot i of a
// is non-empty and equals slot j of b. Duplicate values are counted once per
// pair and are not deduplicated, so repeats inflate the overlap. Mutual age
// containment and equal intent add their points on top.
//
// The overlap contribution saturates at DetailedOverlapCap. This departs from
// the uncapped matching circuit this policy is modeled on: without the cap,
// ten equal slots on both sides would contribute 500 points and wrap the
// one-byte score. With it the total stays within [0, DetailedMax], and
// duplicates still inflate any score below the cap.
func DetailedScore(a, b PreferenceProfile) Score {
	overlap := 0
	for _, x := range a.Interests {
		if x == 0 {
			continue
		}
		for _, y := range b.Interests {
			if x == y {
				overlap += DetailedSlotPoints
			}
		}
	}
	overlap = min(overlap, DetailedOverlapCap)

	total := overlap
	if inRange(a.Age, b.AgeMin, b.AgeMax) && inRange(b.Age, a.AgeMin, a.AgeMax) {
		total += DetailedAgePoints
	}
	if a.Intent == b.Intent {
		total += DetailedIntentPoints
	}
	return Score{Value: uint8(total), Match: total >= DetailedThreshold}
}

// CoarseScore compares the single interest category, the declared age ranges
// for overlap, and intent.
func CoarseScore(a, b PreferenceProfile) Score {
	total := 0
	if a.Category == b.Category {
		total += CoarseCategoryPoints
	}
	if a.AgeMin <= b.AgeMax && b.AgeMin <= a.AgeMax {
		total += CoarseRangePoints
	}
	if a.Intent == b.Intent {
		total += CoarseIntentPoints
	}
	return Score{Value: uint8(total), Match: total >= CoarseThreshold}
}

func inRange(v, lo, hi uint8) bool {
	return v >= lo && v <= hi
}
