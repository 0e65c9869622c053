package member

import "errors"

var (
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidStanding = errors.New("invalid membership standing")
)

type Role string

const (
	RoleMember Role = "member"
	RoleStaff  Role = "staff"
	RoleAdmin  Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RoleStaff, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanManageOthers reports whether the role may act on reservations and
// waitlist entries it does not own.
func (r Role) CanManageOthers() bool {
	return r == RoleStaff || r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Standing is the membership state maintained by the external membership
// system; we only read it for the eligibility gate.
type Standing string

const (
	StandingActive    Standing = "active"
	StandingSuspended Standing = "suspended"
	StandingLapsed    Standing = "lapsed"
)

func (s Standing) String() string {
	return string(s)
}

func (s Standing) IsValid() bool {
	switch s {
	case StandingActive, StandingSuspended, StandingLapsed:
		return true
	default:
		return false
	}
}

func NewStanding(s string) (Standing, error) {
	standing := Standing(s)
	if !standing.IsValid() {
		return "", ErrInvalidStanding
	}
	return standing, nil
}

// CanBook reports whether the member clears the eligibility gate.
func (s Standing) CanBook() bool {
	return s == StandingActive
}
