package thicket

// RepeatForever makes a Task fire until it is aborted.
const RepeatForever = -1

// Task calls a function after a delay, optionally repeating at a fixed
// interval. It shares the Ledger with animations but drives no property.
type Task struct {
	fn       func()
	delay    float64
	interval float64
	times    int // remaining firings; RepeatForever never runs out
	timer    float64
	fired    int
	state    AnimState
	ledger   *Ledger

	// OnComplete runs once after the last scheduled firing.
	OnComplete func()
}

// NewTask creates a task that first fires after interval seconds and then
// every interval seconds until it has fired times times. times <= 0 other
// than RepeatForever is treated as 1.
func NewTask(fn func(), interval float64, times int) *Task {
	if times == 0 || times < RepeatForever {
		times = 1
	}
	return &Task{fn: fn, delay: interval, interval: interval, times: times}
}

// WithDelay sets a first-firing delay that differs from the interval.
func (t *Task) WithDelay(delay float64) *Task {
	t.delay = delay
	return t
}

// State returns the current lifecycle state.
func (t *Task) State() AnimState { return t.state }

// Fired returns how many times the callback has run.
func (t *Task) Fired() int { return t.fired }

// Abort cancels the task without running OnComplete.
func (t *Task) Abort() {
	if t.state == StateFinished || t.state == StateAborted {
		return
	}
	t.state = StateAborted
	if t.ledger != nil {
		t.ledger.remove(t)
	}
}

func (t *Task) setLedger(l *Ledger) { t.ledger = l }

func (t *Task) keys() []propKey { return nil }

func (t *Task) advance(dt float64) bool {
	switch t.state {
	case StateFinished, StateAborted:
		return true
	case StatePending:
		t.state = StateRunning
	}

	t.timer += dt
	wait := t.delay
	if t.fired > 0 {
		wait = t.interval
	}
	for t.timer >= wait {
		t.timer -= wait
		t.fired++
		if t.times != RepeatForever {
			t.times--
		}
		if t.fn != nil {
			t.fn()
		}
		// The callback may abort the task, e.g. a key release stopping repeat.
		if t.state == StateAborted {
			return true
		}
		if t.times == 0 {
			t.state = StateFinished
			if t.OnComplete != nil {
				t.OnComplete()
			}
			return true
		}
		wait = t.interval
		// A zero interval fires at most once per update.
		if wait <= 0 {
			t.timer = 0
			break
		}
	}
	return false
}
