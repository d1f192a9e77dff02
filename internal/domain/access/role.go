package access

import "strings"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cashier"
	RoleWaiter  Role = "waiter"
	RoleClient  Role = "client"
)

var legacyRoles = map[string]Role{
	"administrador": RoleAdmin,
	"cajero":        RoleCashier,
	"mesero":        RoleWaiter,
	"cliente":       RoleClient,
}

// ParseRole normalizes a stored role string. Unknown values report false.
func ParseRole(s string) (Role, bool) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch r := Role(s); r {
	case RoleAdmin, RoleCashier, RoleWaiter, RoleClient:
		return r, true
	}
	if r, ok := legacyRoles[s]; ok {
		return r, true
	}
	return "", false
}

func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleCashier || r == RoleWaiter
}
