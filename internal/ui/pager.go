package ui

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
	"github.com/pkg/errors"
)

// copyToClipboard is swapped out in tests
var copyToClipboard = clipboard.WriteAll

// PagerOps shows long text (help, certificate details) in ov
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager instance
func NewPagerOps() *PagerOps {
	return &PagerOps{}
}

// SetProgram sets the program reference for terminal management
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// Available reports whether the pager can take over the terminal
func (p *PagerOps) Available() bool {
	return p != nil && p.program != nil
}

// Show pages content with ov, handing the terminal back afterwards
func (p *PagerOps) Show(content string) error {
	if !p.Available() {
		return errors.New("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return errors.Wrap(err, "release terminal")
	}
	defer func() {
		// Give ov time to leave the alternate screen before we take it back
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return errors.Wrap(err, "open pager")
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// pagerCmd pauses rendering, runs the pager and reports the outcome
func (m *Model) pagerCmd(content string) tea.Cmd {
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.pager.Show(content)
		m.program.Send(resumeRenderingMsg{})
		return pagerMsg{content: content, err: err}
	}
}
