package auth

import "strings"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleApp    Role = "app"
)

// Client types requests get tagged with. The mobile app reads public data;
// the dashboard is the editorial surface.
const (
	ClientTypeApp       = "app"
	ClientTypeDashboard = "dashboard"
)

func NormalizeRole(role string) Role {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleEditor):
		return RoleEditor
	default:
		return RoleApp
	}
}

func NormalizeClientType(clientType string) string {
	if strings.EqualFold(strings.TrimSpace(clientType), ClientTypeDashboard) {
		return ClientTypeDashboard
	}
	return ClientTypeApp
}

func HasRole(role string, allowed ...Role) bool {
	if len(allowed) == 0 {
		return false
	}
	current := NormalizeRole(role)
	for _, candidate := range allowed {
		if current == candidate {
			return true
		}
	}
	return false
}

func IsAdmin(role string) bool {
	return NormalizeRole(role) == RoleAdmin
}
