package session

// Routes the gate redirects to.
const (
	HomeRoute  = "/"
	LoginRoute = "/login"
)

// Outcome is what a gated view should do.
type Outcome int

const (
	RenderProtected Outcome = iota
	RenderLoading
	Redirect
)

func (o Outcome) String() string {
	switch o {
	case RenderProtected:
		return "render"
	case RenderLoading:
		return "loading"
	case Redirect:
		return "redirect"
	}
	return "unknown"
}

// Policy selects which sessions may see a view.
type Policy int

const (
	// RequireLogin admits any logged-in session and sends others to the login route.
	RequireLogin Policy = iota
	// RequireAdmin admits admin sessions and sends everyone else to the home route.
	RequireAdmin
)

// Decision is the gate's verdict. Target is set for Redirect.
type Decision struct {
	Outcome Outcome
	Target  string
}

// Decide applies policy to sess. A nil sess covers both "no session" and "the
// session lookup failed".
func Decide(sess *Session, loading bool, policy Policy) Decision {
	if loading {
		return Decision{Outcome: RenderLoading}
	}
	switch policy {
	case RequireAdmin:
		if !sess.IsAdmin() {
			return Decision{Outcome: Redirect, Target: HomeRoute}
		}
	default:
		if sess == nil || !sess.LoggedIn {
			return Decision{Outcome: Redirect, Target: LoginRoute}
		}
	}
	return Decision{Outcome: RenderProtected}
}
