package hal

import "time"

// TickDuration is the wall time of one host tick.
const TickDuration = time.Millisecond

// hostTime emits one sequence number per elapsed TickDuration, counted from the first
// advance. Ticks are dropped when the channel is full.
type hostTime struct {
	ch    chan uint64
	now   func() time.Time
	start time.Time
	seq   uint64
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024), now: time.Now}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// advance emits every tick that has come due. The first call starts the clock at tick 1.
func (t *hostTime) advance() {
	now := t.now()
	if t.start.IsZero() {
		t.start = now
	}
	due := uint64(now.Sub(t.start)/TickDuration) + 1
	for t.seq < due {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
