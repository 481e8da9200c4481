package auth

// Capability is the permission level a resource requires.
type Capability int

const (
	// CapabilityPublic needs no session (login page, static assets, ops endpoints).
	CapabilityPublic Capability = iota
	// CapabilityAuthenticated needs any valid session.
	CapabilityAuthenticated
	// CapabilityAdminOnly needs a session whose role is Administrator.
	CapabilityAdminOnly
)

func (c Capability) String() string {
	switch c {
	case CapabilityPublic:
		return "public"
	case CapabilityAuthenticated:
		return "authenticated"
	case CapabilityAdminOnly:
		return "admin_only"
	}
	return "unknown"
}

type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
	RedirectToHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_login"
	case RedirectToHome:
		return "redirect_home"
	}
	return "unknown"
}

// Authorize decides access for a resolved session, nil meaning anonymous.
// An authenticated non-administrator on an admin resource is sent home, not
// shown an error.
func Authorize(session *Session, required Capability) Decision {
	if required == CapabilityPublic {
		return Allow
	}
	if session == nil {
		return RedirectToLogin
	}
	if required == CapabilityAdminOnly && !session.IsAdministrator() {
		return RedirectToHome
	}
	return Allow
}
