package thicket

// Ledger is the set of running animations and tasks owned by one widget.
// There is no global animation manager; each widget advances its own ledger
// from Update.
type Ledger struct {
	items []scheduled
}

// Len returns the number of animations and tasks still scheduled.
func (l *Ledger) Len() int { return len(l.items) }

// add schedules an animation or task. Any running animation that drives one
// of the same properties is aborted first, so the newest writer wins.
func (l *Ledger) add(s scheduled) {
	if ks := s.keys(); len(ks) > 0 {
		for _, other := range l.snapshot() {
			if overlaps(ks, other.keys()) {
				other.Abort()
			}
		}
	}
	s.setLedger(l)
	l.items = append(l.items, s)
}

// AddAnimation schedules a.
func (l *Ledger) AddAnimation(a *Animation) *Animation {
	l.add(a)
	return a
}

// AddTask schedules t.
func (l *Ledger) AddTask(t *Task) *Task {
	l.add(t)
	return t
}

// Update advances every item scheduled before the call by dt seconds and
// drops the ones that finished. Items added by callbacks during the update
// are first advanced on the next call.
func (l *Ledger) Update(dt float64) {
	if len(l.items) == 0 {
		return
	}
	for _, s := range l.snapshot() {
		if s.advance(dt) {
			l.remove(s)
		}
	}
}

// RemoveAnimationsOf aborts every animation driving a property of target.
func (l *Ledger) RemoveAnimationsOf(target any) {
	for _, s := range l.snapshot() {
		for _, k := range s.keys() {
			if k.target == target {
				s.Abort()
				break
			}
		}
	}
}

// AbortAll aborts everything in the ledger.
func (l *Ledger) AbortAll() {
	for _, s := range l.snapshot() {
		s.Abort()
	}
	l.items = l.items[:0]
}

func (l *Ledger) snapshot() []scheduled {
	return append([]scheduled(nil), l.items...)
}

// remove drops s from the item list. Uses copy+nil like the widget child list.
func (l *Ledger) remove(s scheduled) {
	for i, it := range l.items {
		if it == s {
			copy(l.items[i:], l.items[i+1:])
			l.items[len(l.items)-1] = nil
			l.items = l.items[:len(l.items)-1]
			return
		}
	}
}

func overlaps(a, b []propKey) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
