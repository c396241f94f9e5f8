package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a one-line status message on stderr while a render runs.
// It stops drawing on its own when the parent context is cancelled.
type Spinner struct {
	message string
	w       io.Writer
	parent  context.Context

	quit  chan struct{}
	start sync.Once
	stop  sync.Once
	wg    sync.WaitGroup
	mu    sync.Mutex // guards writes to w
}

func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	return &Spinner{message: message, w: os.Stderr, parent: ctx, quit: make(chan struct{})}
}

// Start begins drawing. Later calls do nothing.
func (s *Spinner) Start() {
	s.start.Do(func() {
		s.wg.Add(1)
		go s.run()
	})
}

func (s *Spinner) run() {
	defer s.wg.Done()
	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.quit:
			return
		case <-s.parent.Done():
			s.clear()
			return
		case <-tick.C:
			s.draw(spinnerFrames[frame%len(spinnerFrames)])
		}
	}
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
}

func (s *Spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// Stop waits for the animation to end and clears the line. It may be called
// any number of times, with or without Start.
func (s *Spinner) Stop() {
	s.stop.Do(func() {
		close(s.quit)
		s.wg.Wait()
		s.clear()
	})
}

// Cancelled reports whether the parent context was cancelled, which tells a
// caller that an error from the guarded work came from the interrupt.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
