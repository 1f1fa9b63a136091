package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"ai_text_improver/editor"
	"ai_text_improver/revision"
	"ai_text_improver/settings"
)

const (
	defaultWidth   = 60
	editorHeight   = 8
	defaultTimeout = 60 * time.Second

	editorPlaceholder = "Enter your text here..."
	keyPlaceholder    = "sk-..."
)

// Config wires runtime options into the TUI program.
type Config struct {
	Reviser   *revision.Reviser
	Store     settings.Store
	Clipboard editor.Clipboard
	Timeout   time.Duration
	Log       zerolog.Logger
}

// revisedMsg carries a finished request back to the update loop, tagged with
// the buffer epoch it was issued against.
type revisedMsg struct {
	epoch uint64
	text  string
	err   error
}

// Model is the popup: controls, the revision buffer, and the settings dialog.
type Model struct {
	cfg Config

	buf      *editor.Buffer
	area     textarea.Model
	keyInput textinput.Model
	spinner  spinner.Model
	help     help.Model
	keys     keyMap
	dkeys    dialogKeyMap

	tone       revision.Tone
	improve    bool
	apiKey     string
	dialog     settings.Dialog
	generating bool

	errMsg  string
	infoMsg string
	width   int
}

func New(cfg Config) *Model {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Clipboard == nil {
		cfg.Clipboard = editor.SystemClipboard{}
	}

	area := textarea.New()
	area.Placeholder = editorPlaceholder
	area.ShowLineNumbers = false
	area.CharLimit = 0
	area.MaxHeight = 0
	area.SetHeight(editorHeight)
	area.SetWidth(defaultWidth)
	area.Focus()

	keyInput := textinput.New()
	keyInput.Placeholder = keyPlaceholder
	keyInput.EchoMode = textinput.EchoPassword
	keyInput.EchoCharacter = '•'
	keyInput.Width = defaultWidth - 4

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := &Model{
		cfg:      cfg,
		buf:      editor.New(),
		area:     area,
		keyInput: keyInput,
		spinner:  spin,
		help:     help.New(),
		keys:     defaultKeyMap(),
		dkeys:    defaultDialogKeyMap(),
		tone:     revision.ToneOriginal,
		width:    defaultWidth,
	}

	if cfg.Store != nil {
		m.apiKey = settings.APIKey(cfg.Store)
	}
	if m.apiKey == "" {
		m.openDialog()
	}
	m.refreshBindings()
	return m
}

func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width)
	case spinner.TickMsg:
		if m.generating {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	case revisedMsg:
		m.finishGeneration(msg)
	case tea.KeyMsg:
		if m.dialog.IsOpen() {
			cmd = m.updateDialog(msg)
		} else {
			cmd = m.updateEditor(msg)
		}
	default:
		if m.dialog.IsOpen() {
			m.keyInput, cmd = m.keyInput.Update(msg)
		} else {
			m.area, cmd = m.area.Update(msg)
		}
	}
	m.refreshBindings()
	return m, cmd
}

func (m *Model) updateEditor(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Generate):
		return m.generate()
	case key.Matches(msg, m.keys.Clear):
		if m.buf.CanClear() {
			m.buf.Clear()
			m.errMsg, m.infoMsg = "", ""
			m.syncArea()
		}
		return nil
	case key.Matches(msg, m.keys.Copy):
		m.copy()
		return nil
	case key.Matches(msg, m.keys.Compare):
		m.buf.ToggleCompare()
		m.syncArea()
		return nil
	case key.Matches(msg, m.keys.Tone):
		m.tone = m.tone.Next()
		return nil
	case key.Matches(msg, m.keys.Readability):
		m.improve = !m.improve
		return nil
	case key.Matches(msg, m.keys.Settings):
		m.openDialog()
		return nil
	}

	// compare mode is read-only
	if m.buf.ReadOnly() {
		return nil
	}
	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	if v := m.area.Value(); v != m.buf.Display() {
		m.buf.Edit(v)
	}
	return cmd
}

// generate issues one revision request. It is a no-op without a key, without
// source text, or while a request is already outstanding.
func (m *Model) generate() tea.Cmd {
	if m.generating || m.apiKey == "" || m.buf.Source() == "" {
		return nil
	}
	m.generating = true
	m.errMsg, m.infoMsg = "", ""

	epoch := m.buf.Epoch()
	req := revision.Request{
		Text:       m.buf.Source(),
		Config:     revision.Config{Tone: m.tone, ImproveReadability: m.improve},
		Credential: m.apiKey,
	}
	reviser, timeout := m.cfg.Reviser, m.cfg.Timeout

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		text, err := reviser.Revise(ctx, req)
		return revisedMsg{epoch: epoch, text: text, err: err}
	})
}

func (m *Model) finishGeneration(msg revisedMsg) {
	m.generating = false
	if msg.epoch != m.buf.Epoch() {
		m.cfg.Log.Debug().Uint64("epoch", msg.epoch).Msg("dropping stale revision")
		return
	}
	if msg.err != nil {
		m.errMsg = msg.err.Error()
		m.buf.SetOutput("")
	} else {
		m.errMsg = ""
		m.buf.SetOutput(msg.text)
	}
	m.syncArea()
}

func (m *Model) copy() {
	if !m.buf.CanCopy() {
		return
	}
	if err := m.buf.Copy(m.cfg.Clipboard); err != nil {
		m.infoMsg = ""
		m.errMsg = fmt.Sprintf("Clipboard copy failed: %v", err)
		return
	}
	m.infoMsg = "Copied to clipboard."
}

func (m *Model) openDialog() {
	m.dialog.Open(m.apiKey)
	m.keyInput.SetValue(m.apiKey)
	m.keyInput.EchoMode = textinput.EchoPassword
	m.keyInput.Focus()
	m.area.Blur()
}

func (m *Model) closeDialog() {
	m.keyInput.Blur()
	m.syncArea()
}

func (m *Model) updateDialog(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.String() == "ctrl+c":
		return tea.Quit
	case key.Matches(msg, m.dkeys.Save):
		apiKey, ok := m.dialog.Save()
		if !ok {
			return nil
		}
		if m.cfg.Store != nil {
			if err := settings.SaveAPIKey(m.cfg.Store, apiKey); err != nil {
				m.errMsg = err.Error()
			}
		}
		m.apiKey = apiKey
		m.closeDialog()
		return nil
	case key.Matches(msg, m.dkeys.Cancel):
		if _, ok := m.dialog.Cancel(); ok {
			m.closeDialog()
		}
		return nil
	case key.Matches(msg, m.dkeys.Reveal):
		m.dialog.ToggleVisibility()
		if m.dialog.Visible() {
			m.keyInput.EchoMode = textinput.EchoNormal
		} else {
			m.keyInput.EchoMode = textinput.EchoPassword
		}
		return nil
	}

	var cmd tea.Cmd
	m.keyInput, cmd = m.keyInput.Update(msg)
	m.dialog.SetInput(m.keyInput.Value())
	return cmd
}

// syncArea pushes the buffer's display text into the textarea and toggles
// focus for read-only compare mode.
func (m *Model) syncArea() {
	if v := m.buf.Display(); m.area.Value() != v {
		m.area.SetValue(v)
	}
	if m.buf.ReadOnly() || m.dialog.IsOpen() {
		m.area.Blur()
		return
	}
	m.area.Focus()
}

func (m *Model) refreshBindings() {
	m.keys.Generate.SetEnabled(!m.generating && m.apiKey != "" && m.buf.Source() != "")
	m.keys.Clear.SetEnabled(m.buf.CanClear())
	m.keys.Copy.SetEnabled(m.buf.CanCopy())
	m.keys.Compare.SetEnabled(m.buf.CanCompare())
	m.keys.Compare.SetHelp("ctrl+o", m.buf.CompareTooltip())

	m.dkeys.Save.SetEnabled(m.dialog.CanSave())
	m.dkeys.Cancel.SetEnabled(m.dialog.CanClose())
	m.dkeys.Reveal.SetHelp("tab", m.dialog.VisibilityLabel())
}

func (m *Model) resize(width int) {
	if width <= 0 {
		return
	}
	m.width = width
	inner := width - 4
	if inner < 20 {
		inner = 20
	}
	m.area.SetWidth(inner)
	m.keyInput.Width = inner - 4
	m.help.Width = inner
}
