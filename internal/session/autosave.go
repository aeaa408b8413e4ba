package session

import (
	"sync"
	"time"
)

// AutoSaver fires a save after a quiet interval with no keystrokes. Every
// Touch restarts the countdown, so the save lands only when the user
// pauses.
type AutoSaver struct {
	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
	save     func()
}

func NewAutoSaver(interval time.Duration, save func()) *AutoSaver {
	return &AutoSaver{interval: interval, save: save}
}

// Touch restarts the idle countdown.
func (a *AutoSaver) Touch() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.interval <= 0 {
		return
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.interval, a.save)
}

// SetInterval changes the quiet interval; the countdown restarts on the
// next Touch.
func (a *AutoSaver) SetInterval(interval time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.interval = interval
}

// Stop cancels any pending save.
func (a *AutoSaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}
