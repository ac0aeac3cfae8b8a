// Package guard decides whether a session may enter a route.
package guard

import "github.com/99minutos/ebanking-console/internal/core/domain"

// Route targets used for redirects.
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
	AdminHome     = "/admin"
	AgentHome     = "/agent"
	ClientHome    = "/client"
)

// Decision is the outcome of a guard. When Allow is false, Redirect names
// where the user should be sent instead.
type Decision struct {
	Allow    bool
	Redirect string
}

// Check is a guard: a pure function of the session.
type Check func(domain.Session) Decision

// Require builds the guard for role r.
func Require(r domain.Role) Check {
	return func(s domain.Session) Decision {
		if !s.Authenticated() {
			return Decision{Redirect: LoginPath}
		}
		if s.HasRole(r) {
			return Decision{Allow: true}
		}
		return Decision{Redirect: Fallback(s)}
	}
}

var (
	RequireAdmin  = Require(domain.RoleAdmin)
	RequireAgent  = Require(domain.RoleAgent)
	RequireClient = Require(domain.RoleClient)
)

// RequireAuthenticated admits any signed-in user.
func RequireAuthenticated(s domain.Session) Decision {
	if !s.Authenticated() {
		return Decision{Redirect: LoginPath}
	}
	return Decision{Allow: true}
}

// Fallback is where a signed-in user lands after being refused a route:
// the admin home for admins, the generic dashboard for everyone else.
func Fallback(s domain.Session) string {
	if s.HasRole(domain.RoleAdmin) {
		return AdminHome
	}
	return DashboardPath
}

// Home resolves the landing screen of a session, by role precedence.
func Home(s domain.Session) string {
	switch {
	case !s.Authenticated():
		return LoginPath
	case s.HasRole(domain.RoleAdmin):
		return AdminHome
	case s.HasRole(domain.RoleAgent):
		return AgentHome
	case s.HasRole(domain.RoleClient):
		return ClientHome
	default:
		return LoginPath
	}
}
