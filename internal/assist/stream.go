package assist

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jvgags/Poe-Write/internal/domain"
	"github.com/jvgags/Poe-Write/internal/markup"
)

// Streaming cadence: chunks of ~20 characters at a frame-rate interval
// reads as fast but visibly progressive typing.
const (
	StreamChunkSize       = 20
	DefaultStreamInterval = 16 * time.Millisecond
)

// Inserter streams generated text into the editing surface chunk by
// chunk. One stream runs at a time; when it finishes or is cancelled the
// inserted range stays pending until the user accepts or rejects it.
// Reject deletes exactly the inserted range, including a partial one left
// by cancel.
type Inserter struct {
	mu       sync.Mutex
	surface  markup.Surface
	logger   *slog.Logger
	interval time.Duration

	streaming bool
	stop      chan struct{}
	done      chan struct{}

	pending  bool
	start    int
	inserted int
}

func NewInserter(surface markup.Surface, logger *slog.Logger) *Inserter {
	return &Inserter{surface: surface, logger: logger, interval: DefaultStreamInterval}
}

// SetInterval overrides the chunk cadence (tests run at zero delay).
func (i *Inserter) SetInterval(d time.Duration) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.interval = d
}

// Stream begins inserting text at startIndex. Starting a stream discards
// any previous pending region and fails if one is already running.
func (i *Inserter) Stream(text string, startIndex int) error {
	i.mu.Lock()
	if i.streaming {
		i.mu.Unlock()
		return &domain.ValidationError{Message: "a generation is already streaming"}
	}
	i.streaming = true
	i.pending = false
	i.start = startIndex
	i.inserted = 0
	i.stop = make(chan struct{})
	i.done = make(chan struct{})
	stop, done, interval := i.stop, i.done, i.interval
	i.mu.Unlock()

	go i.run(text, startIndex, interval, stop, done)
	return nil
}

func (i *Inserter) run(text string, startIndex int, interval time.Duration, stop, done chan struct{}) {
	defer close(done)
	var ticker *time.Ticker
	if interval > 0 {
		ticker = time.NewTicker(interval)
		defer ticker.Stop()
	}

	offset := 0
	for offset < len(text) {
		if ticker != nil {
			select {
			case <-stop:
				i.finish(offset)
				return
			case <-ticker.C:
			}
		} else {
			select {
			case <-stop:
				i.finish(offset)
				return
			default:
			}
		}

		end := offset + StreamChunkSize
		if end > len(text) {
			end = len(text)
		}
		pos := startIndex + offset
		i.surface.ReplaceRange(pos, pos, text[offset:end])
		offset = end
	}
	i.finish(offset)
}

// finish closes out the stream, leaving the inserted range pending when
// anything was written.
func (i *Inserter) finish(inserted int) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.streaming = false
	i.inserted = inserted
	i.pending = inserted > 0
}

// Streaming reports whether a stream is running.
func (i *Inserter) Streaming() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.streaming
}

// Wait blocks until the current stream finishes.
func (i *Inserter) Wait() {
	i.mu.Lock()
	done := i.done
	i.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Cancel stops the stream mid-flight. Text already inserted stays in the
// surface as the pending region.
func (i *Inserter) Cancel() {
	i.mu.Lock()
	if !i.streaming {
		i.mu.Unlock()
		return
	}
	stop, done := i.stop, i.done
	i.mu.Unlock()

	close(stop)
	<-done
	i.logger.Info("generation stopped")
}

// Pending returns the accepted-or-rejected-to-be region.
func (i *Inserter) Pending() (start, length int, ok bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.start, i.inserted, i.pending
}

// Accept keeps the inserted text and clears the pending region.
func (i *Inserter) Accept() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.pending {
		return false
	}
	i.pending = false
	i.inserted = 0
	return true
}

// Reject deletes the inserted range from the surface and clears the
// pending region.
func (i *Inserter) Reject() bool {
	i.mu.Lock()
	if !i.pending {
		i.mu.Unlock()
		return false
	}
	start, length := i.start, i.inserted
	i.pending = false
	i.inserted = 0
	i.mu.Unlock()

	i.surface.ReplaceRange(start, start+length, "")
	return true
}
