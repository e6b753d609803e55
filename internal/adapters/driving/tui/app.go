package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docsift/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docsift/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docsift/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docsift/internal/adapters/driving/tui/views/doccontent"
	"github.com/custodia-labs/docsift/internal/adapters/driving/tui/views/library"
	"github.com/custodia-labs/docsift/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/docsift/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/docsift/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/docsift/internal/adapters/driving/tui/views/upload"
	"github.com/custodia-labs/docsift/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView       *menu.View
	searchView     *search.View
	libraryView    *library.View
	docContentView *doccontent.View
	uploadView     *upload.View
	settingsView   *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports, opts Options) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		keymap:         km,
		menuView:       menu.NewView(s),
		searchView:     search.NewView(s, km, ports.Search),
		libraryView:    library.NewView(s, km, ports.Library, opts.Locale, opts.Sort).WithClock(opts.Now),
		docContentView: doccontent.NewView(s),
		uploadView:     upload.NewView(s, ports.Upload),
		settingsView:   settings.NewView(s, ports.Settings),
		currentView:    messages.ViewMenu, // Start with menu
	}
	a.refreshDocumentCount()

	return a, nil
}

// WithContext sets the context for the app and every view that calls a service.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.libraryView.WithContext(ctx)
	a.uploadView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("docsift - Document Search"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.updateCurrent(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.DocumentSelected:
		a.docContentView.SetDocument(msg.Document, msg.Query, msg.From)
		a.currentView = messages.ViewDocContent
		return a, nil

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.DocumentsLoaded, messages.DocumentRemoved:
		a.libraryView, cmd = a.libraryView.Update(msg)
		a.refreshDocumentCount()
		return a, cmd

	case messages.LibraryChanged:
		a.refreshDocumentCount()
		a.libraryView, cmd = a.libraryView.Update(msg)
		return a, cmd

	case messages.UploadProgressed, messages.UploadFinished:
		// The upload view drives its own batch even when not visible.
		a.uploadView, cmd = a.uploadView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewSearch {
			a.searchView, cmd = a.searchView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	return a, a.updateCurrent(msg)
}

// updateCurrent forwards msg to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewLibrary:
		a.libraryView, cmd = a.libraryView.Update(msg)
	case messages.ViewDocContent:
		a.docContentView, cmd = a.docContentView.Update(msg)
	case messages.ViewUpload:
		a.uploadView, cmd = a.uploadView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Esc from help goes to menu
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
		}
	}

	return cmd
}

// switchTo makes view active and initialises it. Returning from a
// document keeps the search as it was.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	prev := a.currentView
	a.currentView = view

	switch view {
	case messages.ViewMenu:
		a.refreshDocumentCount()
	case messages.ViewSearch:
		if prev == messages.ViewDocContent {
			return nil
		}
		a.searchView.Reset()
		return a.searchView.Init()
	case messages.ViewLibrary:
		return a.libraryView.Init()
	case messages.ViewUpload:
		a.uploadView.Reset()
		return a.uploadView.Init()
	case messages.ViewSettings:
		return a.settingsView.Init()
	case messages.ViewDocContent, messages.ViewHelp:
		// Other views don't need special initialisation
	}
	return nil
}

func (a *App) refreshDocumentCount() {
	a.menuView.SetDocumentCount(a.ports.Library.Count(a.ctx))
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewLibrary:
		return a.libraryView.View()
	case messages.ViewDocContent:
		return a.docContentView.View()
	case messages.ViewUpload:
		return a.uploadView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(`Navigation:
  esc         Back
  ctrl+c      Quit

Search:
  (type)      Enter search query
  enter       Submit search
  j/k, ↑/↓    Navigate results
  enter       Open document
  t           Cycle document type
  n           New search

Library:
  enter       Open document
  s           Cycle sort order
  t           Cycle document type
  d           Remove document
  a           Add files
  r           Reload

Document:
  n/N         Next/previous match
  g/G         Top/bottom
`)
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render(keymap.HelpLine(a.keymap.ShortHelp()...)))

	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Query returns the current search query.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Results returns the current search results.
func (a *App) Results() []domain.SearchResult {
	return a.searchView.Results()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.libraryView.SetDimensions(width, height)
	a.docContentView.SetDimensions(width, height)
	a.uploadView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
