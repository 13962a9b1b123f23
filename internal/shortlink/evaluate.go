package shortlink

import "time"

// Evaluate classifies a record at the given instant. Rules apply in order,
// first match wins:
//
//  1. missing record -> NotFound
//  2. self-destruct timestamp reached -> NotFound
//  3. page-hit ceiling reached -> NotFound
//  4. password set -> PasswordRequired
//  5. otherwise -> Redirect
//
// Expiry is checked before gating on purpose: an expired link must never
// prompt for a password, since the prompt itself would reveal that the link
// once existed. Evaluate performs no I/O and is deterministic for fixed
// inputs.
func Evaluate(rec *Record, now time.Time) Outcome {
	if rec == nil {
		return NotFound{}
	}

	if Expired(rec, now) {
		return NotFound{}
	}

	if rec.Gated() {
		return PasswordRequired{ID: rec.ID}
	}

	return Redirect{Destination: rec.Destination}
}

// Expired reports whether the record is past its self-destruct timestamp or
// has exhausted its page-hit allowance. A MaxPageHits of zero means the link
// has no usage limit.
//
// The hit count checked here is the value fetched before the current visit is
// reported, so concurrent requests at the limit boundary can each succeed.
// That soft limit is accepted; the backend owns the authoritative count.
func Expired(rec *Record, now time.Time) bool {
	if rec.SelfDestruct != nil && !rec.SelfDestruct.After(now) {
		return true
	}

	if rec.MaxPageHits > 0 && rec.PageHits >= rec.MaxPageHits {
		return true
	}

	return false
}
