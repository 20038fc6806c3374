package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a one-line progress message on statusOut until stopped
// or until its context ends.
type spinner struct {
	w       io.Writer
	message string
	ctx     context.Context
	cancel  context.CancelFunc
	exited  chan struct{}
	once    sync.Once
}

// startSpinner begins animating message right away.
func startSpinner(ctx context.Context, message string) *spinner {
	return startSpinnerTo(ctx, statusOut, message)
}

func startSpinnerTo(ctx context.Context, w io.Writer, message string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{
		w:       w,
		message: message,
		ctx:     ctx,
		cancel:  cancel,
		exited:  make(chan struct{}),
	}
	go s.run()
	return s
}

// run owns all writes to w.
func (s *spinner) run() {
	defer close(s.exited)
	tick := time.NewTicker(80 * time.Millisecond)
	defer tick.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
			return
		case <-tick.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			fmt.Fprintf(s.w, "\r%s %s", styleSpinner.Render(frame), StyleDim.Render(s.message))
		}
	}
}

// stop halts the animation and clears the line. It may be called more
// than once.
func (s *spinner) stop() {
	s.once.Do(s.cancel)
	<-s.exited
}

// fail stops the spinner and leaves an error line in its place.
func (s *spinner) fail(format string, args ...any) {
	s.stop()
	printError(format, args...)
}
