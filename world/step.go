// world/step.go
package world

// Step advances the simulation one fixed tick. Invoked at the nominal rate
// by the run loop; the elapsed delta is clamped to [interval, 4×interval]
// to absorb scheduling jitter without unbounded jumps.
func (w *World) Step() {
	now := w.now()

	delta := now.Sub(w.lastStep)
	if delta < TickInterval {
		delta = TickInterval
	}
	if delta > MaxDelta {
		delta = MaxDelta
	}
	w.lastStep = now
	dt := delta.Seconds()

	// (a) expire timed-out embraces, one hug_ended per expiring player.
	for _, id := range w.playerOrder {
		p := w.players[id]
		if p.Embrace.Expired(now) {
			w.endEmbrace(p)
		}
	}

	// (b) apply buffered input. Hugging or seated players hold still and
	// do not consume input.
	for _, id := range w.playerOrder {
		p := w.players[id]
		if !p.Connected {
			continue
		}
		if p.Embrace.Active || w.bench.SeatOf(p.ID) >= 0 {
			p.VX, p.VY = 0, 0
			continue
		}
		p.VX, p.VY = p.desiredVelocity()
		w.moveWithCollisions(p, dt)
	}

	// (c) followers trail their targets, ignoring collisions.
	w.advanceFollowers(dt)

	// (d) count the tick and publish a full snapshot.
	w.tick++
	w.broadcastSnapshot()
	w.metrics.ObserveTickDuration(w.now().Sub(now))
}

// Tick returns the current tick counter.
func (w *World) Tick() uint64 {
	return w.tick
}
