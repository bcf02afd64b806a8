package matching

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func profile(interests []uint8, age, lo, hi, intent uint8) PreferenceProfile {
	p := PreferenceProfile{Age: age, AgeMin: lo, AgeMax: hi, Intent: intent}
	copy(p.Interests[:], interests)
	return p
}

func randomProfile(r *rand.Rand) PreferenceProfile {
	var p PreferenceProfile
	p.UserID = r.Uint64()
	for i := range p.Interests {
		// Small alphabet so overlaps and duplicates are common.
		p.Interests[i] = uint8(r.IntN(6))
	}
	p.Category = uint8(r.IntN(4))
	p.Age = uint8(18 + r.IntN(40))
	p.AgeMin = uint8(18 + r.IntN(30))
	p.AgeMax = p.AgeMin + uint8(r.IntN(25))
	p.Intent = uint8(r.IntN(3))
	p.Premium = r.IntN(2) == 1
	return p
}

func TestDetailedScoreExactMatchScenario(t *testing.T) {
	a := profile([]uint8{1, 2}, 25, 20, 30, 1)
	b := profile([]uint8{1, 2}, 27, 22, 28, 1)

	for _, got := range []Score{DetailedScore(a, b), DetailedScore(b, a)} {
		require.Equal(t, Score{Value: 40, Match: true}, got)
	}
}

func TestDetailedScoreNoOverlapScenario(t *testing.T) {
	a := profile([]uint8{1, 2, 3}, 25, 20, 30, 1)
	b := profile([]uint8{4, 5, 6}, 50, 45, 60, 2)

	require.Equal(t, Score{}, DetailedScore(a, b))
}

func TestDetailedScoreComponents(t *testing.T) {
	var ones [InterestSlots]uint8
	for i := range ones {
		ones[i] = 1
	}

	tests := []struct {
		name string
		a, b PreferenceProfile
		want uint8
	}{
		{"empty slots never match", profile(nil, 30, 0, 0, 1), profile(nil, 40, 0, 0, 2), 0},
		{"intent only", profile(nil, 30, 0, 0, 3), profile(nil, 40, 0, 0, 3), 10},
		{"one-way age is not enough", profile(nil, 25, 20, 30, 1), profile(nil, 35, 20, 30, 2), 0},
		{"mutual age", profile(nil, 25, 20, 30, 1), profile(nil, 28, 20, 30, 2), 20},
		{"range bounds inclusive", profile(nil, 20, 30, 30, 1), profile(nil, 30, 20, 20, 2), 20},
		{"single shared slot", profile([]uint8{7}, 30, 0, 0, 1), profile([]uint8{9, 7}, 40, 0, 0, 2), 5},
		{"duplicates inflate", profile([]uint8{7, 7}, 30, 0, 0, 1), profile([]uint8{7, 7, 7}, 40, 0, 0, 2), 30},
		{"overlap capped", profile([]uint8{7, 7, 7, 7}, 30, 0, 0, 1), profile([]uint8{7, 7, 7, 7}, 40, 0, 0, 2), 50},
		{"all slots equal saturate", profile(ones[:], 30, 0, 0, 1), profile(ones[:], 40, 0, 0, 2), DetailedOverlapCap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetailedScore(tt.a, tt.b)
			require.Equal(t, tt.want, got.Value)
			require.Equal(t, tt.want >= DetailedThreshold, got.Match)
		})
	}
}

func TestDetailedScoreMaximum(t *testing.T) {
	var all [InterestSlots]uint8
	for i := range all {
		all[i] = 1
	}
	a := PreferenceProfile{Interests: all, Age: 30, AgeMin: 0, AgeMax: 255, Intent: 1}
	require.Equal(t, Score{Value: DetailedMax, Match: true}, DetailedScore(a, a))
}

func TestCoarseScoreComponents(t *testing.T) {
	base := PreferenceProfile{Category: 1, AgeMin: 20, AgeMax: 30, Intent: 1}

	tests := []struct {
		name   string
		mutate func(p *PreferenceProfile)
		want   uint8
	}{
		{"identical", func(p *PreferenceProfile) {}, 100},
		{"category differs", func(p *PreferenceProfile) { p.Category = 2 }, 60},
		{"intent differs", func(p *PreferenceProfile) { p.Intent = 2 }, 70},
		{"ranges touch", func(p *PreferenceProfile) { p.AgeMin, p.AgeMax = 30, 40 }, 100},
		{"ranges disjoint", func(p *PreferenceProfile) { p.AgeMin, p.AgeMax = 31, 40 }, 70},
		{"only range", func(p *PreferenceProfile) { p.Category, p.Intent = 9, 9 }, 30},
		{"nothing", func(p *PreferenceProfile) { p.Category, p.Intent, p.AgeMin, p.AgeMax = 9, 9, 50, 60 }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := base
			tt.mutate(&b)
			got := CoarseScore(base, b)
			require.Equal(t, tt.want, got.Value)
			require.Equal(t, tt.want >= CoarseThreshold, got.Match)
		})
	}
}

func TestScorersSymmetricAndBounded(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	policies := []struct {
		name      string
		score     Scorer
		max       uint8
		threshold uint8
	}{
		{"detailed", DetailedScore, DetailedMax, DetailedThreshold},
		{"coarse", CoarseScore, CoarseMax, CoarseThreshold},
	}

	for _, pol := range policies {
		t.Run(pol.name, func(t *testing.T) {
			for i := 0; i < 5000; i++ {
				a, b := randomProfile(r), randomProfile(r)
				ab, ba := pol.score(a, b), pol.score(b, a)
				require.Equal(t, ab, ba, "a=%+v b=%+v", a, b)
				require.LessOrEqual(t, ab.Value, pol.max)
				require.Equal(t, ab.Value >= pol.threshold, ab.Match)
			}
		})
	}
}

func TestProfileEncodingRejectsBadPremium(t *testing.T) {
	buf := make([]byte, profileSize)
	PreferenceProfile{UserID: 3, Premium: true}.MarshalFixed(buf)

	var p PreferenceProfile
	require.NoError(t, p.UnmarshalFixed(buf))
	require.True(t, p.Premium)
	require.Equal(t, uint64(3), p.UserID)

	buf[profileSize-1] = 7
	require.Error(t, p.UnmarshalFixed(buf), "non-boolean premium byte")
}
