package confession

import (
	"encoding/binary"
	"fmt"

	"github.com/hsiuhsiu/mxe-go/pkg/mxe/gateway"
)

// DigestSize is the size of a submission's content digest.
const DigestSize = 32

// Submission is the transient record a submitter encrypts. The engine never
// persists it.
type Submission struct {
	ContentDigest [DigestSize]byte
	Category      uint8
	Timestamp     uint64
	Premium       bool
}

const submissionSize = DigestSize + 1 + 8 + 1

func (Submission) PlaintextTag() string { return "confession/submission/v1" }
func (Submission) FixedSize() int       { return submissionSize }

func (s Submission) MarshalFixed(dst []byte) {
	copy(dst[:DigestSize], s.ContentDigest[:])
	dst[DigestSize] = s.Category
	binary.BigEndian.PutUint64(dst[DigestSize+1:DigestSize+9], s.Timestamp)
	dst[DigestSize+9] = gateway.EncodeBool(s.Premium)
}

func (s *Submission) UnmarshalFixed(src []byte) error {
	if len(src) != submissionSize {
		return fmt.Errorf("submission: want %d bytes, got %d", submissionSize, len(src))
	}
	premium, err := gateway.DecodeBool(src[DigestSize+9])
	if err != nil {
		return fmt.Errorf("submission: premium: %w", err)
	}
	copy(s.ContentDigest[:], src[:DigestSize])
	s.Category = src[DigestSize]
	s.Timestamp = binary.BigEndian.Uint64(src[DigestSize+1 : DigestSize+9])
	s.Premium = premium
	return nil
}

// Receipt is returned to the submitter.
type Receipt struct {
	Success bool
	ID      uint64
}

const receiptSize = 1 + 8

func (Receipt) PlaintextTag() string { return "confession/receipt/v1" }
func (Receipt) FixedSize() int       { return receiptSize }

func (r Receipt) MarshalFixed(dst []byte) {
	dst[0] = gateway.EncodeBool(r.Success)
	binary.BigEndian.PutUint64(dst[1:9], r.ID)
}

func (r *Receipt) UnmarshalFixed(src []byte) error {
	if len(src) != receiptSize {
		return fmt.Errorf("receipt: want %d bytes, got %d", receiptSize, len(src))
	}
	ok, err := gateway.DecodeBool(src[0])
	if err != nil {
		return fmt.Errorf("receipt: success: %w", err)
	}
	r.Success = ok
	r.ID = binary.BigEndian.Uint64(src[1:9])
	return nil
}
