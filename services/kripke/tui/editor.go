// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// maxHistory bounds the command history kept by the editor.
const maxHistory = 100

// EditorConfig configures the full-screen editor.
type EditorConfig struct {
	// Path is the model file to load on start and save to. Empty starts
	// with a fresh model.
	Path string

	// Width overrides terminal width (0 = auto-detect).
	Width int

	// Height overrides terminal height (0 = auto-detect).
	Height int
}

// Editor is the bubbletea model for the interactive model editor. The
// top pane shows the current model, the middle pane scrolls command
// output, and the bottom line takes commands.
type Editor struct {
	session *Session

	input    textinput.Model
	viewport viewport.Model

	history      []string
	historyIndex int
	currentInput string

	log []string

	width  int
	height int
	ready  bool

	status   string
	quitting bool
}

// NewEditor creates an editor over the given session.
func NewEditor(session *Session, config EditorConfig) Editor {
	if session == nil {
		session = NewSession(nil, config.Path)
	}
	if config.Path != "" {
		session.Path = config.Path
	}

	ti := textinput.New()
	ti.Prompt = "kripke> "
	ti.Focus()
	ti.CharLimit = 512

	return Editor{
		session:      session,
		input:        ti,
		historyIndex: -1,
		width:        config.Width,
		height:       config.Height,
		status:       "type 'help' for commands",
	}
}

// Session returns the underlying session after the editor exits.
func (e Editor) Session() *Session {
	return e.session
}

// Init implements tea.Model.
func (e Editor) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (e Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.width = msg.Width
		e.height = msg.Height

		headerHeight := lipgloss.Height(e.renderModelPane())
		footerHeight := 2
		viewportHeight := e.height - headerHeight - footerHeight
		if viewportHeight < 3 {
			viewportHeight = 3
		}

		if !e.ready {
			e.viewport = viewport.New(e.width, viewportHeight)
			e.ready = true
		} else {
			e.viewport.Width = e.width
			e.viewport.Height = viewportHeight
		}
		e.refreshLog()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			e.quitting = true
			return e, tea.Quit

		case tea.KeyCtrlS:
			out, err := e.session.Execute("save")
			if err != nil {
				e.status = errorStyle.Render(err.Error())
			} else {
				e.status = statusStyle.Render(out)
			}
			return e, nil

		case tea.KeyUp:
			if len(e.history) > 0 {
				if e.historyIndex == -1 {
					e.currentInput = e.input.Value()
					e.historyIndex = len(e.history) - 1
				} else if e.historyIndex > 0 {
					e.historyIndex--
				}
				e.input.SetValue(e.history[e.historyIndex])
				e.input.CursorEnd()
			}
			return e, nil

		case tea.KeyDown:
			if e.historyIndex != -1 {
				if e.historyIndex < len(e.history)-1 {
					e.historyIndex++
					e.input.SetValue(e.history[e.historyIndex])
				} else {
					e.historyIndex = -1
					e.input.SetValue(e.currentInput)
				}
				e.input.CursorEnd()
			}
			return e, nil

		case tea.KeyEnter:
			line := strings.TrimSpace(e.input.Value())
			e.input.SetValue("")
			e.historyIndex = -1
			if line == "" {
				return e, nil
			}
			e.addHistory(line)
			return e.execute(line)

		case tea.KeyPgUp:
			e.viewport.HalfViewUp()
			return e, nil

		case tea.KeyPgDown:
			e.viewport.HalfViewDown()
			return e, nil
		}
	}

	e.input, cmd = e.input.Update(msg)
	cmds = append(cmds, cmd)

	e.viewport, cmd = e.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return e, tea.Batch(cmds...)
}

func (e Editor) execute(line string) (Editor, tea.Cmd) {
	out, err := e.session.Execute(line)
	switch {
	case errors.Is(err, ErrQuit):
		e.quitting = true
		return e, tea.Quit
	case err != nil:
		e.appendLog(promptStyle.Render("> "+line), errorStyle.Render("error: "+err.Error()))
		e.status = errorStyle.Render(err.Error())
	default:
		e.appendLog(promptStyle.Render("> " + line))
		if out != "" {
			e.appendLog(out)
		}
		e.status = e.renderStatus()
	}
	return e, nil
}

func (e *Editor) addHistory(line string) {
	if len(e.history) > 0 && e.history[len(e.history)-1] == line {
		return
	}
	e.history = append(e.history, line)
	if len(e.history) > maxHistory {
		e.history = e.history[1:]
	}
}

func (e *Editor) appendLog(lines ...string) {
	e.log = append(e.log, lines...)
	e.refreshLog()
}

func (e *Editor) refreshLog() {
	if !e.ready {
		return
	}
	e.viewport.SetContent(strings.Join(e.log, "\n"))
	e.viewport.GotoBottom()
}

func (e Editor) renderStatus() string {
	m := e.session.Model()
	dirty := ""
	if e.session.Dirty {
		dirty = dirtyStyle.Render(" [unsaved]")
	}
	return statusStyle.Render(fmt.Sprintf("%d worlds, %d relations",
		m.WorldCount(), m.RelationCount())) + dirty
}

func (e Editor) renderModelPane() string {
	return modelPaneStyle.Render(e.session.Model().String())
}

// View implements tea.Model.
func (e Editor) View() string {
	if e.quitting {
		return ""
	}
	if !e.ready {
		return "Loading...\n"
	}

	var b strings.Builder
	b.WriteString(e.renderModelPane())
	b.WriteString("\n")
	b.WriteString(e.viewport.View())
	b.WriteString("\n")
	b.WriteString(e.status)
	b.WriteString("\n")
	b.WriteString(e.input.View())
	return b.String()
}

var (
	modelPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	dirtyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)
