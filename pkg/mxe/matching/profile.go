package matching

import (
	"encoding/binary"
	"fmt"

	"github.com/hsiuhsiu/mxe-go/pkg/mxe/gateway"
)

// InterestSlots is the fixed size of a profile's interest set.
const InterestSlots = 10

// PreferenceProfile is one party's private matching input. A zero interest
// slot is empty.
type PreferenceProfile struct {
	UserID    uint64
	Interests [InterestSlots]uint8
	// Category is the single interest category compared by the coarse policy.
	Category uint8
	Age      uint8
	AgeMin   uint8
	AgeMax   uint8
	Intent   uint8
	Premium  bool
}

const profileSize = 8 + InterestSlots + 6

func (PreferenceProfile) PlaintextTag() string { return "matching/preference-profile/v1" }
func (PreferenceProfile) FixedSize() int       { return profileSize }

func (p PreferenceProfile) MarshalFixed(dst []byte) {
	binary.BigEndian.PutUint64(dst[0:8], p.UserID)
	copy(dst[8:8+InterestSlots], p.Interests[:])
	off := 8 + InterestSlots
	dst[off] = p.Category
	dst[off+1] = p.Age
	dst[off+2] = p.AgeMin
	dst[off+3] = p.AgeMax
	dst[off+4] = p.Intent
	dst[off+5] = gateway.EncodeBool(p.Premium)
}

func (p *PreferenceProfile) UnmarshalFixed(src []byte) error {
	if len(src) != profileSize {
		return fmt.Errorf("preference profile: want %d bytes, got %d", profileSize, len(src))
	}
	premium, err := gateway.DecodeBool(src[profileSize-1])
	if err != nil {
		return fmt.Errorf("preference profile: premium: %w", err)
	}
	p.UserID = binary.BigEndian.Uint64(src[0:8])
	copy(p.Interests[:], src[8:8+InterestSlots])
	off := 8 + InterestSlots
	p.Category = src[off]
	p.Age = src[off+1]
	p.AgeMin = src[off+2]
	p.AgeMax = src[off+3]
	p.Intent = src[off+4]
	p.Premium = premium
	return nil
}

// MatchResult is what each party learns: the shared decision and score, and
// the identifier of the other party.
type MatchResult struct {
	Match  bool
	Score  uint8
	PeerID uint64
}

const resultSize = 1 + 1 + 8

func (MatchResult) PlaintextTag() string { return "matching/match-result/v1" }
func (MatchResult) FixedSize() int       { return resultSize }

func (r MatchResult) MarshalFixed(dst []byte) {
	dst[0] = gateway.EncodeBool(r.Match)
	dst[1] = r.Score
	binary.BigEndian.PutUint64(dst[2:10], r.PeerID)
}

func (r *MatchResult) UnmarshalFixed(src []byte) error {
	if len(src) != resultSize {
		return fmt.Errorf("match result: want %d bytes, got %d", resultSize, len(src))
	}
	match, err := gateway.DecodeBool(src[0])
	if err != nil {
		return fmt.Errorf("match result: match: %w", err)
	}
	r.Match = match
	r.Score = src[1]
	r.PeerID = binary.BigEndian.Uint64(src[2:10])
	return nil
}
