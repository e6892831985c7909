package constants

import (
	"database/sql/driver"
	"fmt"
)

// Role mirrors the Postgres ENUM 'profile_role'
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Stringer ­– convenient for fmt / logs
func (r Role) String() string { return string(r) }

/* ---------- DB adapters so sqlx (or database/sql) scans/values cleanly ---------- */

// Scan implements the sql.Scanner interface
func (r *Role) Scan(src interface{}) error {
	if src == nil {
		*r = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = Role(v)
	case []byte:
		*r = Role(v)
	default:
		return fmt.Errorf("unsupported Scan type for Role: %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

// ProfileStatus mirrors the Postgres ENUM 'profile_status'
type ProfileStatus string

const (
	ProfileActive  ProfileStatus = "active"
	ProfileBlocked ProfileStatus = "blocked"
)

func (s ProfileStatus) String() string { return string(s) }

func (s *ProfileStatus) Scan(src interface{}) error {
	if src == nil {
		*s = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = ProfileStatus(v)
	case []byte:
		*s = ProfileStatus(v)
	default:
		return fmt.Errorf("unsupported Scan type for ProfileStatus: %T", src)
	}
	return nil
}

func (s ProfileStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// GuideStatus is the moderation state of a submitted guide
type GuideStatus string

const (
	GuidePending  GuideStatus = "pending"
	GuideApproved GuideStatus = "approved"
	GuideRejected GuideStatus = "rejected"
)

func (s GuideStatus) String() string { return string(s) }

func (s *GuideStatus) Scan(src interface{}) error {
	if src == nil {
		*s = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = GuideStatus(v)
	case []byte:
		*s = GuideStatus(v)
	default:
		return fmt.Errorf("unsupported Scan type for GuideStatus: %T", src)
	}
	return nil
}

func (s GuideStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// VerificationStatus is a per-user fact-check vote on a post
type VerificationStatus string

const (
	VerificationTrue         VerificationStatus = "true"
	VerificationQuestionable VerificationStatus = "questionable"
)

func (s VerificationStatus) String() string { return string(s) }

func (s *VerificationStatus) Scan(src interface{}) error {
	if src == nil {
		*s = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = VerificationStatus(v)
	case []byte:
		*s = VerificationStatus(v)
	default:
		return fmt.Errorf("unsupported Scan type for VerificationStatus: %T", src)
	}
	return nil
}

func (s VerificationStatus) Value() (driver.Value, error) {
	return string(s), nil
}
