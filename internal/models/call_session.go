package models

import "time"

// CallStatus is the lifecycle state of a call session.
type CallStatus string

const (
	CallStatusInitiated CallStatus = "INITIATED"
	CallStatusRinging   CallStatus = "RINGING"
	CallStatusAccepted  CallStatus = "ACCEPTED"
	CallStatusEnded     CallStatus = "ENDED"
	CallStatusFailed    CallStatus = "FAILED"
)

// Valid reports whether s is one of the known call statuses.
func (s CallStatus) Valid() bool {
	switch s {
	case CallStatusInitiated, CallStatusRinging, CallStatusAccepted,
		CallStatusEnded, CallStatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s CallStatus) IsTerminal() bool {
	return s == CallStatusEnded || s == CallStatusFailed
}

// CallSession is billing metadata for one call attempt between two
// users. Timestamps are set at most once; ENDED and FAILED are
// terminal. Media negotiation happens elsewhere.
type CallSession struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	CallerID   uint       `gorm:"index;not null" json:"caller_id"`
	CalleeID   uint       `gorm:"index;not null" json:"callee_id"`
	Status     CallStatus `gorm:"not null;default:'INITIATED'" json:"status"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// IsParty reports whether userID is the caller or the callee.
func (c *CallSession) IsParty(userID uint) bool {
	return c.CallerID == userID || c.CalleeID == userID
}
