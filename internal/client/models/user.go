// Package models defines client-side data models used by the CampusHub client.
package models

import (
	"time"
)

// User is the identity record of the signed-in student. It is the only value
// persisted by the session layer and deliberately has no password field.
type User struct {
	// UserID is chosen at signup and never changes afterwards.
	UserID string `json:"userId"`

	// CollegeName and CollegeCode identify the campus; both are fixed after
	// the account is created.
	CollegeName string `json:"collegeName"`
	CollegeCode string `json:"collegeCode"`

	FullName string `json:"fullName,omitempty"`

	// DOB is an ISO-8601 timestamp, see FormatDOB.
	DOB string `json:"dob,omitempty"`

	Place string `json:"place,omitempty"`
}

// Credentials is the login form payload. Password is transient input and
// must not outlive the call it is passed to.
type Credentials struct {
	UserID      string
	CollegeName string
	CollegeCode string
	Password    []byte
}

// SignupRequest carries a complete User plus the transient password chosen
// in the signup wizard.
type SignupRequest struct {
	User     User
	Password []byte
}

// ProfileUpdate is a partial User. A nil field keeps the current value.
// Identity fields are intentionally absent.
type ProfileUpdate struct {
	FullName *string
	DOB      *string
	Place    *string
}

// Apply returns a copy of u with the non-nil fields of p merged in.
func (p ProfileUpdate) Apply(u User) User {
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.DOB != nil {
		u.DOB = *p.DOB
	}
	if p.Place != nil {
		u.Place = *p.Place
	}
	return u
}

// IsEmpty reports whether the update carries no fields at all.
func (p ProfileUpdate) IsEmpty() bool {
	return p.FullName == nil && p.DOB == nil && p.Place == nil
}

// DisplayName is the name used in greetings: the full name when set.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.UserID
}

// dobLayout matches the output of JavaScript's Date.prototype.toISOString,
// which is what records written by the mobile client contain.
const dobLayout = "2006-01-02T15:04:05.000Z"

// FormatDOB renders t as an ISO-8601 UTC timestamp with millisecond precision.
func FormatDOB(t time.Time) string {
	return t.UTC().Format(dobLayout)
}

// ParseDOB parses an ISO-8601 timestamp or a bare YYYY-MM-DD date.
func ParseDOB(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}

// StringPtr is a convenience for building ProfileUpdate values.
func StringPtr(s string) *string {
	return &s
}
