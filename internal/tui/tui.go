// Package tui provides a Bubble Tea terminal user interface for looking up
// Bandcamp track metadata.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"

	"github.com/handiism/bandcamp-track-extractor/internal/audio"
	"github.com/handiism/bandcamp-track-extractor/internal/config"
	ioutils "github.com/handiism/bandcamp-track-extractor/internal/io"
	"github.com/handiism/bandcamp-track-extractor/internal/lookup"
	"github.com/handiism/bandcamp-track-extractor/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	trackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

var errCancelled = errors.New("cancelled by user")

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateLookingUp
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   lookup.ProgressLevel
}

// Options configures a Model.
type Options struct {
	Settings  *config.Settings
	Client    lookup.Client
	OutputDir string // where metadata files and playlists are written
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	opts      Options
	logs      []LogEntry
	results   []lookup.Result
	written   []string
	err       error

	ctx    context.Context
	cancel context.CancelFunc

	manager *lookup.Manager
	events  chan lookup.ProgressEvent

	done  int32
	total int32

	// Toggles
	savePlaylist bool
	saveMetadata bool
	verbose      bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(opts Options) Model {
	if opts.Settings == nil {
		opts.Settings = config.DefaultSettings()
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}

	ti := textinput.New()
	ti.Placeholder = "https://artist.bandcamp.com/track/name ..."
	ti.Focus()
	ti.CharLimit = 2000
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		opts:      opts,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent for every lookup progress event.
	ProgressMsg struct {
		Event lookup.ProgressEvent
	}

	// LookupDoneMsg is sent when every URL has been looked up.
	LookupDoneMsg struct {
		Results []lookup.Result
		Written []string
		Err     error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateLookingUp {
				m.cancel()
				m.state = StateError
				m.err = errCancelled
			}

		case "enter":
			if m.state == StateInput {
				urls := lookup.ParseInputURLs(m.textInput.Value())
				if len(urls) == 0 {
					m.err = errors.New("no http(s) URL in input")
					return m, nil
				}
				m.err = nil
				m.state = StateLookingUp
				m.total = int32(len(urls))
				m.events = make(chan lookup.ProgressEvent, 64)
				m.manager = lookup.NewManager(m.opts.Settings, m.opts.Client, m.forward)
				return m, tea.Batch(m.startLookup(urls), m.waitForEvent(), m.tickProgress(), m.spinner.Tick)
			}

		case "ctrl+p":
			if m.state == StateInput {
				m.savePlaylist = !m.savePlaylist
			}

		case "ctrl+s":
			if m.state == StateInput {
				m.saveMetadata = !m.saveMetadata
			}

		case "ctrl+g":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m.reset()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if m.state == StateLookingUp {
			cmds = append(cmds, m.waitForEvent())
		}
		if msg.Event.Level == lookup.LevelVerbose && !m.verbose {
			break
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		// Keep only last 10 logs
		if len(m.logs) > 10 {
			m.logs = m.logs[len(m.logs)-10:]
		}

	case LookupDoneMsg:
		if m.state != StateLookingUp {
			break
		}
		m.results = msg.Results
		m.written = msg.Written
		m.done = int32(len(msg.Results))
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = errCancelled
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateLookingUp {
			m.done, m.total = m.manager.GetProgress()
			var percent float64
			if m.total > 0 {
				percent = float64(m.done) / float64(m.total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) reset() {
	m.state = StateInput
	m.logs = nil
	m.results = nil
	m.written = nil
	m.err = nil
	m.done = 0
	m.total = 0
	m.manager = nil
	m.events = nil
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.textInput.SetValue("")
	m.textInput.Focus()
}

// forward hands progress events to the UI without blocking the lookup.
func (m Model) forward(event lookup.ProgressEvent) {
	select {
	case m.events <- event:
	default:
	}
}

func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// startLookup runs the lookup in the background and writes the requested
// output files once it finishes.
func (m Model) startLookup(urls []string) tea.Cmd {
	ctx, manager, events := m.ctx, m.manager, m.events
	savePlaylist, saveMetadata := m.savePlaylist, m.saveMetadata
	opts := m.opts

	return func() tea.Msg {
		defer close(events)

		results, err := manager.Lookup(ctx, urls)
		if err != nil {
			return LookupDoneMsg{Results: results, Err: err}
		}

		written, err := writeOutputs(ctx, opts, results, saveMetadata, savePlaylist)
		return LookupDoneMsg{Results: results, Written: written, Err: err}
	}
}

func writeOutputs(ctx context.Context, opts Options, results []lookup.Result, saveMetadata, savePlaylist bool) ([]string, error) {
	tracks := lookup.Succeeded(results)
	var written []string

	if saveMetadata {
		for _, meta := range tracks {
			path := meta.FilePath(opts.OutputDir, opts.Settings.ToFileNameConfig())
			if err := ioutils.WriteMetadata(ctx, path, meta, opts.Settings.OutputFormat); err != nil {
				return written, err
			}
			written = append(written, path)
		}
	}

	if savePlaylist && len(tracks) > 0 {
		format := opts.Settings.ToPlaylistFormat()
		content := audio.NewPlaylistCreator(format, opts.Settings.M3UExtended).CreatePlaylist("Bandcamp tracks", tracks)
		path := filepath.Join(opts.OutputDir, "bandcamp-tracks"+format.Extension())
		if err := ioutils.WriteFile(ctx, path, []byte(content)); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	return written, nil
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🎵 Bandcamp Track Lookup"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Extract metadata from Bandcamp track pages"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateLookingUp:
		b.WriteString(m.viewLookingUp())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpText()))

	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[×]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter one or more Bandcamp track URLs:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s Write metadata files (ctrl+s)\n", checkbox(m.saveMetadata))
	fmt.Fprintf(&b, "  %s Create playlist (ctrl+p)\n", checkbox(m.savePlaylist))
	fmt.Fprintf(&b, "  %s Verbose output (ctrl+g)\n", checkbox(m.verbose))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Output directory: %s", m.opts.OutputDir)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewLookingUp() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Fetching track info..."))
	b.WriteString("\n\n")

	var percent float64
	if m.total > 0 {
		percent = float64(m.done) / float64(m.total)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Pages: %d/%d", m.done, m.total)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	tracks := lookup.Succeeded(m.results)
	b.WriteString(boxStyle.Render(fmt.Sprintf(
		"✨ Lookup Complete!\n\nTracks: %d\nFailed: %d\nFiles written: %d",
		len(tracks), len(m.results)-len(tracks), len(m.written),
	)))
	b.WriteString("\n\n")

	for _, r := range m.results {
		if r.Err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s: %v", r.URL, r.Err)))
			b.WriteString("\n")
			continue
		}
		b.WriteString(renderTrack(r.Metadata))
	}

	return b.String()
}

func renderTrack(meta *model.TrackMetadata) string {
	var b strings.Builder

	b.WriteString(trackStyle.Render(fmt.Sprintf("♪ %s - %s", meta.UploaderName, meta.Name)))
	b.WriteString("\n")
	details := []string{meta.Category, meta.License}
	if meta.TextualUploadDate != "" {
		details = append(details, meta.TextualUploadDate)
	}
	if meta.Duration > 0 {
		details = append(details, (time.Duration(meta.Duration) * time.Second).String())
	}
	b.WriteString(dimStyle.Render("  " + strings.Join(details, " · ")))
	b.WriteString("\n")
	if len(meta.RelatedItems) > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %d related item(s)", len(meta.RelatedItems))))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		fmt.Fprintf(&b, "  %s", m.err.Error())
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case lookup.LevelError:
			style = errorStyle
			prefix = "✗"
		case lookup.LevelWarning:
			style = warningStyle
			prefix = "!"
		case lookup.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case lookup.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) helpText() string {
	switch m.state {
	case StateInput:
		return "enter: look up • ctrl+s: metadata • ctrl+p: playlist • ctrl+g: verbose • esc: quit"
	case StateLookingUp:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new lookup • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
