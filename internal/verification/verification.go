// Package verification implements the approval workflow shared by KYC
// documents and bank accounts.
package verification

import (
	"errors"
	"fmt"
)

// Status is the verification state of a document or account.
type Status string

const (
	NotVerified Status = "Not Verified"
	Pending     Status = "Pending"
	Verified    Status = "Verified"
	Rejected    Status = "Rejected"
)

// Event is something that moves a verification along.
type Event string

const (
	// Submit is a document (re)upload by the owner.
	Submit Event = "submit"
	// Approve and Reject are admin review decisions.
	Approve Event = "approve"
	Reject  Event = "reject"
	// Amend is an edit of the verified details themselves, e.g. new bank
	// account details. It always sends the item back for review.
	Amend Event = "amend"
)

var ErrIllegalTransition = errors.New("illegal verification transition")

// ParseStatus accepts the display names of the statuses.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case NotVerified, Pending, Verified, Rejected:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown verification status %q", s)
}

// ParseDecision maps an admin review decision onto its event.
func ParseDecision(s string) (Event, error) {
	switch s {
	case "approve", "Verified":
		return Approve, nil
	case "reject", "Rejected":
		return Reject, nil
	}
	return "", fmt.Errorf("unknown review decision %q", s)
}

// Transition returns the state reached by applying ev to from.
func Transition(from Status, ev Event) (Status, error) {
	switch from {
	case NotVerified:
		switch ev {
		case Submit, Amend:
			return Pending, nil
		}
	case Pending:
		switch ev {
		case Approve:
			return Verified, nil
		case Reject:
			return Rejected, nil
		case Amend:
			return Pending, nil
		}
	case Rejected:
		switch ev {
		case Submit, Amend:
			return Pending, nil
		}
	case Verified:
		if ev == Amend {
			return Pending, nil
		}
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrIllegalTransition, from)
	}
	return "", fmt.Errorf("%w: %s on %q", ErrIllegalTransition, ev, from)
}

// Reviewable reports whether an admin decision can be taken.
func (s Status) Reviewable() bool { return s == Pending }
