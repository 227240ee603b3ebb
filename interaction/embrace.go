// interaction/embrace.go
package interaction

import (
	"errors"
	"math"
	"time"
)

var (
	ErrAlreadyEmbracing = errors.New("player is already hugging")
	ErrNoPartner        = errors.New("no other player to hug")
	ErrPartnerBusy      = errors.New("the other player is already hugging")
	ErrTooFar           = errors.New("too far away to hug")
)

// Embrace is the timed paired state. Both participants carry identical
// end times; expiry is detected centrally by the tick scheduler.
type Embrace struct {
	Active bool
	EndsAt time.Time
}

// Expired reports whether an active embrace has run out at the given time.
func (e *Embrace) Expired(now time.Time) bool {
	return e.Active && !now.Before(e.EndsAt)
}

// End returns the embrace to idle.
func (e *Embrace) End() {
	e.Active = false
	e.EndsAt = time.Time{}
}

// StartEmbrace transitions both participants Idle→Embracing. The caller has
// already established that b is the only other connected player. Positions
// are the participants' coordinates, used for the proximity guard.
func StartEmbrace(a, b *Embrace, ax, ay, bx, by, maxDistance float64, now time.Time, duration time.Duration) error {
	if a.Active {
		return ErrAlreadyEmbracing
	}
	if b == nil {
		return ErrNoPartner
	}
	if b.Active {
		return ErrPartnerBusy
	}
	if math.Hypot(bx-ax, by-ay) > maxDistance {
		return ErrTooFar
	}

	endsAt := now.Add(duration)
	a.Active = true
	a.EndsAt = endsAt
	b.Active = true
	b.EndsAt = endsAt
	return nil
}
