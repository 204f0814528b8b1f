package model

// Principal is the opaque identity of a caller as presented by the upstream
// identity provider. It is never parsed or derived from, only compared.
type Principal string

// IsZero reports whether the principal is absent.
func (p Principal) IsZero() bool {
	return p == ""
}

func (p Principal) String() string {
	return string(p)
}

// UserRole is a coarse platform role. Admins may perform moderation actions.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// ValidRoles are the assignable role values.
var ValidRoles = map[UserRole]bool{
	RoleAdmin: true,
	RoleUser:  true,
}
