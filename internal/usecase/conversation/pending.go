package conversation

import (
	"sync"
	"time"

	"kuponbot/internal/usecase/broadcast"
)

type pendingBroadcast struct {
	ref       broadcast.MediaRef
	expiresAt time.Time
}

// pendingSlots holds at most one staged media broadcast per operator.
type pendingSlots struct {
	mu    sync.Mutex
	ttl   time.Duration
	slots map[int64]pendingBroadcast
}

func newPendingSlots(ttl time.Duration) *pendingSlots {
	return &pendingSlots{ttl: ttl, slots: make(map[int64]pendingBroadcast)}
}

func (p *pendingSlots) stage(operator int64, ref broadcast.MediaRef, now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.slots[operator] = pendingBroadcast{ref: ref, expiresAt: now.Add(p.ttl)}
}

// take removes and returns the operator's slot if it has not expired.
func (p *pendingSlots) take(operator int64, now time.Time) (broadcast.MediaRef, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	slot, ok := p.slots[operator]
	delete(p.slots, operator)
	if !ok || now.After(slot.expiresAt) {
		return broadcast.MediaRef{}, false
	}
	return slot.ref, true
}

func (p *pendingSlots) drop(operator int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.slots[operator]
	delete(p.slots, operator)
	return ok
}
