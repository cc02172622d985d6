package domain

import (
	"fmt"
	"strconv"
)

// Verification is the email verification state of a user. The backend sends
// either a boolean or the numeric state 0 (unverified), 1 (pending), 2 (verified).
type Verification int

const (
	Unverified Verification = iota
	VerificationPending
	Verified
)

func (v Verification) String() string {
	switch v {
	case VerificationPending:
		return "pending"
	case Verified:
		return "verified"
	default:
		return "unverified"
	}
}

func (v Verification) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(v))), nil
}

func (v *Verification) UnmarshalJSON(b []byte) error {
	switch s := string(b); s {
	case "true":
		*v = Verified
	case "false", "null":
		*v = Unverified
	default:
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > 2 {
			return fmt.Errorf("invalid verification state %s", s)
		}
		*v = Verification(n)
	}
	return nil
}
