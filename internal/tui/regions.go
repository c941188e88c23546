package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// regionKind identifies one of the two display regions
type regionKind int

const (
	regionID regionKind = iota
	regionAdvice
)

// regionTextMsg carries a region write into the program
type regionTextMsg struct {
	region regionKind
	text   string
}

// sender is the part of *tea.Program the regions need
type sender interface {
	Send(msg tea.Msg)
}

// programSender forwards to a program attached after construction
type programSender struct {
	mu sync.RWMutex
	p  sender
}

func (s *programSender) attach(p sender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p = p
}

// Send drops messages until a program is attached
func (s *programSender) Send(msg tea.Msg) {
	s.mu.RLock()
	p := s.p
	s.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// programRegion is a display region backed by the running program.
// Writes arrive in Update as regionTextMsg.
type programRegion struct {
	kind regionKind
	out  sender
}

func (r programRegion) SetText(text string) {
	r.out.Send(regionTextMsg{region: r.kind, text: text})
}
