package shortlink

// Outcome is the result of resolving a short identifier. It is a closed set:
// Redirect, NotFound, or PasswordRequired. Callers switch exhaustively on the
// concrete type.
type Outcome interface {
	isOutcome()
}

// Redirect means the link is active and the visitor should be sent to the
// destination URL.
type Redirect struct {
	Destination string
}

// NotFound covers both unknown identifiers and expired links. The two are
// intentionally indistinguishable to visitors so that expired links do not
// leak their own history.
type NotFound struct{}

// PasswordRequired means the link exists and is not expired, but a password
// must be verified before the destination is revealed. It carries only the
// identifier, never the stored hash.
type PasswordRequired struct {
	ID string
}

func (Redirect) isOutcome()         {}
func (NotFound) isOutcome()         {}
func (PasswordRequired) isOutcome() {}
