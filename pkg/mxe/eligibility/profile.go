package eligibility

import (
	"encoding/binary"
	"fmt"

	"github.com/hsiuhsiu/mxe-go/pkg/mxe/gateway"
)

// MemberProfile is a member's private standing. It is supplied fresh for every
// check and never stored.
type MemberProfile struct {
	MemberID   uint64
	Tier       uint8
	Reputation uint8
	Active     bool
}

const profileSize = 8 + 3

func (MemberProfile) PlaintextTag() string { return "eligibility/member-profile/v1" }
func (MemberProfile) FixedSize() int       { return profileSize }

func (p MemberProfile) MarshalFixed(dst []byte) {
	binary.BigEndian.PutUint64(dst[0:8], p.MemberID)
	dst[8] = p.Tier
	dst[9] = p.Reputation
	dst[10] = gateway.EncodeBool(p.Active)
}

func (p *MemberProfile) UnmarshalFixed(src []byte) error {
	if len(src) != profileSize {
		return fmt.Errorf("member profile: want %d bytes, got %d", profileSize, len(src))
	}
	active, err := gateway.DecodeBool(src[10])
	if err != nil {
		return fmt.Errorf("member profile: active: %w", err)
	}
	p.MemberID = binary.BigEndian.Uint64(src[0:8])
	p.Tier = src[8]
	p.Reputation = src[9]
	p.Active = active
	return nil
}
