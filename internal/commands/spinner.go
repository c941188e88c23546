package commands

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Gradient colors for animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#52ffa8"), // Green
	lipgloss.Color("#48dbfb"), // Cyan
	lipgloss.Color("#54a0ff"), // Blue
	lipgloss.Color("#ff9ff3"), // Pink
	lipgloss.Color("#feca57"), // Yellow
}

var (
	colorText     = lipgloss.Color("#cee3e9")
	colorTextDim  = lipgloss.Color("#4e5d73")
	colorTextMute = lipgloss.Color("#313a48")
	colorSuccess  = lipgloss.Color("#52ffa8")
	colorWarning  = lipgloss.Color("#f7768e")
)

// diceFaces cycle while a roll is in flight
var diceFaces = []string{"⚀", "⚁", "⚂", "⚃", "⚄", "⚅"}

// spinner handles the animated loading indicator
type spinner struct {
	out     io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool // Flag to prevent double-close
}

// newSpinner creates a new animated spinner writing to out
func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:     out,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *spinner) render() {
	face := diceFaces[s.frame%len(diceFaces)]
	faceColor := gradientColors[s.frame%len(gradientColors)]
	dice := lipgloss.NewStyle().Foreground(faceColor).Bold(true).Render(face)

	var dots strings.Builder
	numDots := (s.frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextDim).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	msg := lipgloss.NewStyle().Foreground(colorText).Render(s.message)
	fmt.Fprintf(s.out, "\r\033[K%s %s %s", dice, msg, dots.String())
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// finish stops the spinner and waits for the line to be cleared
func (s *spinner) finish() {
	s.stopOnce()
	<-s.done
}
