// Package tui provides the Bubble Tea terminal browser for the pictree
// library: album navigation, create/delete, imports, and the built-in
// image viewer.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pictree/pictree/internal/config"
	"github.com/pictree/pictree/internal/importer"
	"github.com/pictree/pictree/internal/library"
	"github.com/pictree/pictree/internal/model"
	"github.com/pictree/pictree/internal/store"
	"github.com/pictree/pictree/internal/tree"
	"github.com/pictree/pictree/internal/viewer"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500")).
			MarginBottom(1)

	breadcrumbStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	albumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))

	imageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#3A506B"))

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
)

// State represents the current UI state.
type State int

const (
	StateLoading State = iota
	StateBrowse
	StateNameInput
	StateImportInput
	StateViewer
	StateDegraded
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   library.EventLevel
}

// row is one selectable line of the browse list: a sub-album or an image
// of the open album.
type row struct {
	album      *model.Album
	image      model.Image
	imageIndex int
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	settings  *config.Settings
	manager   *library.Manager
	events    <-chan library.Event
	textInput textinput.Model
	spinner   spinner.Model

	path   []string
	cursor int
	nav    viewer.Navigator

	logs    []LogEntry
	verbose bool
	err     error

	width  int
	height int
}

// NewModel creates a new TUI model around a library manager. The events
// channel carries the manager's progress events into the log tail.
func NewModel(settings *config.Settings, manager *library.Manager, events <-chan library.Event) Model {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#F8B500"))

	return Model{
		state:     StateLoading,
		settings:  settings,
		manager:   manager,
		events:    events,
		textInput: ti,
		spinner:   sp,
		logs:      make([]LogEntry, 0),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadLibrary(), m.listenEvents())
}

// Message types
type (
	// LoadDoneMsg is sent when the initial library load completes.
	LoadDoneMsg struct {
		Err error
	}

	// EventMsg carries one library progress event.
	EventMsg library.Event

	// ImportDoneMsg is sent when a manual import completes.
	ImportDoneMsg struct {
		Err error
	}

	// InboxChangedMsg is sent by the inbox watcher when files land in
	// the watched inbox directory.
	InboxChangedMsg struct{}

	// InboxDoneMsg is sent when an inbox sweep completes.
	InboxDoneMsg struct {
		Imported int
		Err      error
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case LoadDoneMsg:
		if msg.Err != nil {
			m.state = StateDegraded
			m.err = msg.Err
		} else {
			m.state = StateBrowse
			m.err = nil
			if m.settings.InboxPath != "" {
				cmds = append(cmds, m.sweepInbox())
			}
		}

	case EventMsg:
		if msg.Level != library.LevelVerbose || m.verbose {
			m.logs = append(m.logs, LogEntry{Message: msg.Message, Level: msg.Level})
			if len(m.logs) > 6 {
				m.logs = m.logs[len(m.logs)-6:]
			}
		}
		cmds = append(cmds, m.listenEvents())

	case ImportDoneMsg:
		// Outcome details already arrived as events; nothing to do
		// beyond re-rendering.

	case InboxChangedMsg:
		if m.state == StateBrowse || m.state == StateViewer {
			cmds = append(cmds, m.sweepInbox())
		}

	case InboxDoneMsg:
		m.reconcileViewer()
	}

	if m.state == StateNameInput || m.state == StateImportInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// updateKeys dispatches key presses by UI state.
func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.state {
	case StateBrowse:
		return m.browseKeys(msg)
	case StateNameInput, StateImportInput:
		return m.inputKeys(msg)
	case StateViewer:
		return m.viewerKeys(msg)
	case StateDegraded:
		switch msg.String() {
		case "r":
			m.state = StateLoading
			return m, tea.Batch(m.loadLibrary(), m.spinner.Tick)
		case "q", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) browseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows, _ := m.currentRows()

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}

	case "enter", "right", "l":
		if m.cursor >= len(rows) {
			break
		}
		r := rows[m.cursor]
		if r.album != nil {
			m.path = append(m.path, r.album.ID)
			m.cursor = 0
			break
		}
		_, images := m.openAlbum()
		m.nav.Open(r.imageIndex, len(images))
		if m.nav.IsOpen() {
			m.state = StateViewer
		}

	case "backspace", "left", "h":
		if len(m.path) > 0 {
			m.path = m.path[:len(m.path)-1]
			m.cursor = 0
		}

	case "n":
		m.state = StateNameInput
		m.textInput.Placeholder = "Album name"
		m.textInput.SetValue("")
		m.textInput.Focus()
		return m, textinput.Blink

	case "i":
		m.state = StateImportInput
		m.textInput.Placeholder = "Path to file or directory"
		m.textInput.SetValue("")
		m.textInput.Focus()
		return m, textinput.Blink

	case "d":
		if m.cursor >= len(rows) {
			break
		}
		r := rows[m.cursor]
		if r.album != nil {
			m.manager.DeleteAlbum(r.album.ID)
		} else {
			m.manager.DeleteImage(r.image.ID)
		}
		m.clampCursor()

	case "v":
		m.verbose = !m.verbose
	}

	return m, nil
}

func (m Model) inputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = StateBrowse
		m.textInput.Blur()
		return m, nil

	case "enter":
		value := m.textInput.Value()
		wasImport := m.state == StateImportInput
		m.state = StateBrowse
		m.textInput.Blur()
		if wasImport {
			return m, m.importPath(value)
		}
		m.manager.CreateAlbum(m.path, value)
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m Model) viewerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	_, images := m.openAlbum()

	switch msg.String() {
	case "esc", "q":
		m.nav.Close()
		m.state = StateBrowse

	case "right", "l", " ":
		m.nav.Next(len(images))

	case "left", "h":
		m.nav.Prev(len(images))

	case "d", "x":
		if len(images) == 0 {
			break
		}
		m.manager.DeleteImage(images[m.nav.Index()].ID)
		m.reconcileViewer()
	}

	return m, nil
}

// reconcileViewer repairs the viewer index after the open album's photo
// sequence changed underneath it, closing the viewer when it emptied.
func (m *Model) reconcileViewer() {
	if !m.nav.IsOpen() {
		return
	}
	_, images := m.openAlbum()
	m.nav.Reconcile(len(images))
	if !m.nav.IsOpen() {
		m.state = StateBrowse
	}
	m.clampCursor()
}

// currentRows derives the browse list from the authoritative forest,
// repairing a stale path first. It is recomputed on every use, never
// cached: each mutation replaces the forest wholesale.
func (m *Model) currentRows() ([]row, *model.Album) {
	forest := m.manager.Forest()
	m.path = tree.TruncatePath(forest, m.path)
	res, _ := tree.Resolve(forest, m.path)

	rows := make([]row, 0, len(res.Siblings))
	for _, album := range res.Siblings {
		rows = append(rows, row{album: album})
	}
	if res.Node != nil {
		for i, img := range res.Node.Images {
			rows = append(rows, row{image: img, imageIndex: i})
		}
	}
	return rows, res.Node
}

// openAlbum returns the currently open album and its photo sequence.
func (m *Model) openAlbum() (*model.Album, []model.Image) {
	forest := m.manager.Forest()
	m.path = tree.TruncatePath(forest, m.path)
	res, _ := tree.Resolve(forest, m.path)
	if res.Node == nil {
		return nil, nil
	}
	return res.Node, res.Node.Images
}

func (m *Model) clampCursor() {
	rows, _ := m.currentRows()
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("pictree"))
	if m.manager.Syncing() {
		b.WriteString("  " + m.spinner.View() + dimStyle.Render("syncing"))
	}
	b.WriteString("\n")

	switch m.state {
	case StateLoading:
		b.WriteString(m.viewLoading())
	case StateBrowse, StateNameInput, StateImportInput:
		b.WriteString(m.viewBrowse())
	case StateViewer:
		b.WriteString(m.viewViewer())
	case StateDegraded:
		b.WriteString(m.viewDegraded())
	}

	b.WriteString("\n")
	b.WriteString(m.renderLogs())
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewLoading() string {
	return m.spinner.View() + " " + breadcrumbStyle.Render("Loading library...") + "\n"
}

func (m Model) viewBrowse() string {
	var b strings.Builder

	b.WriteString(breadcrumbStyle.Render(m.breadcrumb()))
	b.WriteString("\n\n")

	rows, _ := m.currentRows()
	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("  (empty)"))
		b.WriteString("\n")
	}

	for i, r := range rows {
		line := m.renderRow(r)
		if i == m.cursor && m.state == StateBrowse {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.state == StateNameInput {
		b.WriteString("\n")
		b.WriteString(infoStyle.Render("New album: "))
		b.WriteString(m.textInput.View())
		b.WriteString("\n")
	}
	if m.state == StateImportInput {
		b.WriteString("\n")
		b.WriteString(infoStyle.Render("Import: "))
		b.WriteString(m.textInput.View())
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderRow(r row) string {
	if r.album != nil {
		label := fmt.Sprintf("  %s", r.album.Name)
		if !r.album.IsEmpty() {
			label += dimStyle.Render(fmt.Sprintf("  (%d albums, %d images)",
				len(r.album.SubAlbums), len(r.album.Images)))
		}
		return albumStyle.Render("▸") + label
	}
	return imageStyle.Render("•") + fmt.Sprintf("  %s  ", r.image.Name) + dimStyle.Render(r.image.SizeLabel)
}

func (m Model) viewViewer() string {
	album, images := m.openAlbum()
	if album == nil || !m.nav.IsOpen() || len(images) == 0 {
		return dimStyle.Render("Nothing to view") + "\n"
	}

	img := images[m.nav.Index()]
	body := fmt.Sprintf(
		"%s\n\n%s\n%s\n\n%s",
		img.Name,
		dimStyle.Render(img.SizeLabel),
		dimStyle.Render(img.URL),
		infoStyle.Render(fmt.Sprintf("%d / %d in %s", m.nav.Index()+1, len(images), album.Name)),
	)
	return boxStyle.Render(body) + "\n"
}

func (m Model) viewDegraded() string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("Could not load the library"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString("  " + m.err.Error() + "\n")
	}
	b.WriteString(dimStyle.Render("\nEditing is blocked until the library loads."))
	b.WriteString("\n")
	return b.String()
}

// breadcrumb renders the open path as album names.
func (m Model) breadcrumb() string {
	forest := m.manager.Forest()
	parts := []string{"library"}
	level := []*model.Album(forest)
	for _, pathID := range m.path {
		for _, a := range level {
			if a.ID == pathID {
				parts = append(parts, a.Name)
				level = a.SubAlbums
				break
			}
		}
	}
	return strings.Join(parts, " / ")
}

func (m Model) renderLogs() string {
	var b strings.Builder
	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case library.LevelError:
			style = errorStyle
			prefix = "✗"
		case library.LevelWarning:
			style = warningStyle
			prefix = "!"
		case library.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case library.LevelInfo:
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

func (m Model) getHelpText() string {
	switch m.state {
	case StateBrowse:
		return "enter: open • n: new album • i: import • d: delete • v: verbose • q: quit"
	case StateNameInput, StateImportInput:
		return "enter: confirm • esc: cancel"
	case StateViewer:
		return "←/→: navigate • d: delete • esc: back"
	case StateDegraded:
		return "r: retry • q: quit"
	}
	return ""
}

// loadLibrary performs the initial load in the background.
func (m Model) loadLibrary() tea.Cmd {
	manager := m.manager
	return func() tea.Msg {
		return LoadDoneMsg{Err: manager.Load(context.Background())}
	}
}

// listenEvents waits for the next library event.
func (m Model) listenEvents() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return EventMsg(<-events)
	}
}

// importPath imports a file or directory from disk into the open album.
func (m Model) importPath(path string) tea.Cmd {
	manager := m.manager
	target := append([]string(nil), m.path...)
	return func() tea.Msg {
		if strings.TrimSpace(path) == "" {
			return ImportDoneMsg{}
		}
		entry, err := importer.NewDirEntry(path)
		if err != nil {
			return ImportDoneMsg{Err: err}
		}
		_, err = manager.Import(context.Background(), target, []importer.Entry{entry})
		return ImportDoneMsg{Err: err}
	}
}

// sweepInbox imports whatever landed in the inbox directory into the open
// album, removing each entry that was actually ingested. Files the
// reducer passed over (non-images) stay put.
func (m Model) sweepInbox() tea.Cmd {
	manager := m.manager
	inbox := m.settings.InboxPath
	target := append([]string(nil), m.path...)
	return func() tea.Msg {
		entries, err := os.ReadDir(inbox)
		if err != nil {
			return InboxDoneMsg{Err: err}
		}

		imported := 0
		for _, de := range entries {
			if strings.HasPrefix(de.Name(), ".") {
				continue
			}
			full := filepath.Join(inbox, de.Name())
			entry, err := importer.NewDirEntry(full)
			if err != nil {
				continue
			}
			changed, err := manager.Import(context.Background(), target, []importer.Entry{entry})
			if err != nil {
				return InboxDoneMsg{Imported: imported, Err: err}
			}
			if changed {
				os.RemoveAll(full)
				imported++
			}
		}
		return InboxDoneMsg{Imported: imported}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	events := make(chan library.Event, 64)
	client := store.NewClient(settings.ServerURL, settings.Resource, settings.Timeout())
	manager := library.NewManager(client, settings, func(e library.Event) {
		select {
		case events <- e:
		default: // never block a mutation on a slow UI
		}
	})

	p := tea.NewProgram(NewModel(settings, manager, events), tea.WithAltScreen())

	var stopWatcher func()
	if settings.InboxPath != "" {
		if err := os.MkdirAll(settings.InboxPath, 0755); err == nil {
			if stop, err := StartInboxWatcher(settings.InboxPath, p); err == nil {
				stopWatcher = stop
			}
		}
	}

	_, err := p.Run()
	if stopWatcher != nil {
		stopWatcher()
	}
	manager.Wait()
	return err
}
