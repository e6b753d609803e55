// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/docsift/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docsift/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driving"
)

// Field identifies an editable setting.
type Field int

const (
	FieldSort Field = iota
	FieldBackend
	FieldLiteralHighlight
	FieldContextRadius
	FieldMaxFileSize
	FieldSearchDelay
	fieldCount
)

// Step sizes for numeric fields.
const (
	radiusStep  = 10
	maxSizeStep = 1024 * 1024
	delayStep   = 50 * time.Millisecond
	minMaxSize  = maxSizeStep
	maxMaxSize  = 100 * maxSizeStep
	maxRadius   = 500
	maxDelay    = 2 * time.Second
)

// View shows the settings and edits a draft copy until it is saved.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	draft    *domain.Settings
	dirty    bool
	selected Field
	notice   string
	err      error

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:          s,
		settingsService: settingsService,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

func (v *View) saveSettings() tea.Cmd {
	if v.draft == nil {
		return nil
	}
	draft := *v.draft
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: ErrNoSettingsService}
		}
		if err := v.settingsService.Save(&draft); err != nil {
			return messages.SettingsSaved{Err: err}
		}
		return messages.SettingsSaved{Err: v.settingsService.Validate()}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.draft = msg.Settings
			v.dirty = false
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.notice = "Saved. Changes apply the next time docsift starts."
		// Reload settings after save
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < fieldCount-1 {
			v.selected++
		}
	case "right", "l", "enter", " ":
		v.adjust(1)
	case "left", "h":
		v.adjust(-1)
	case "s":
		if v.dirty {
			return v, v.saveSettings()
		}
	case "r":
		v.notice = ""
		return v, v.loadSettings()
	}
	return v, nil
}

// adjust changes the selected field by one step in direction dir.
func (v *View) adjust(dir int) {
	if v.draft == nil {
		return
	}
	d := v.draft
	v.notice = ""

	switch v.selected {
	case FieldSort:
		keys := domain.AllSortKeys()
		d.Library.Sort = keys[cycle(indexOf(keys, d.Library.Sort), dir, len(keys))]
	case FieldBackend:
		backends := []domain.StorageBackend{domain.StorageSQLite, domain.StorageJSON, domain.StorageMemory}
		d.Storage.Backend = backends[cycle(indexOf(backends, d.Storage.Backend), dir, len(backends))]
	case FieldLiteralHighlight:
		d.Search.LiteralHighlight = !d.Search.LiteralHighlight
	case FieldContextRadius:
		d.Search.ContextRadius = clamp(d.Search.ContextRadius+dir*radiusStep, 0, maxRadius)
	case FieldMaxFileSize:
		d.Upload.MaxFileSize = clamp(d.Upload.MaxFileSize+int64(dir)*maxSizeStep, minMaxSize, maxMaxSize)
	case FieldSearchDelay:
		d.Search.Delay = clamp(d.Search.Delay+time.Duration(dir)*delayStep, 0, maxDelay)
	default:
		return
	}
	v.dirty = true
}

func indexOf[T comparable](items []T, item T) int {
	for i, it := range items {
		if it == item {
			return i
		}
	}
	return 0
}

func cycle(i, dir, n int) int {
	return ((i+dir)%n + n) % n
}

func clamp[T int | int64 | time.Duration](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if v.draft == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] back"))
		return b.String()
	}

	for f := Field(0); f < fieldCount; f++ {
		line := fmt.Sprintf("%-20s %s", fieldLabel(f), v.fieldValue(f))
		if f == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.dirty {
		b.WriteString(v.styles.Warning.Render("Unsaved changes"))
		b.WriteString("\n")
	}
	if v.notice != "" {
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Help.Render("[↑/↓] select  [←/→] change  [s] save  [r] revert  [esc] back"))

	return b.String()
}

func fieldLabel(f Field) string {
	switch f {
	case FieldSort:
		return "Library sort"
	case FieldBackend:
		return "Storage"
	case FieldLiteralHighlight:
		return "Literal highlight"
	case FieldContextRadius:
		return "Snippet context"
	case FieldMaxFileSize:
		return "Max file size"
	case FieldSearchDelay:
		return "Search delay"
	default:
		return ""
	}
}

func (v *View) fieldValue(f Field) string {
	d := v.draft
	switch f {
	case FieldSort:
		return d.Library.Sort.String()
	case FieldBackend:
		return d.Storage.Backend.String()
	case FieldLiteralHighlight:
		if d.Search.LiteralHighlight {
			return "on"
		}
		return "off"
	case FieldContextRadius:
		return fmt.Sprintf("%d characters", d.Search.ContextRadius)
	case FieldMaxFileSize:
		return humanize.IBytes(uint64(d.Upload.MaxFileSize))
	case FieldSearchDelay:
		return d.Search.Delay.String()
	default:
		return ""
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Settings returns the draft settings.
func (v *View) Settings() *domain.Settings {
	return v.draft
}

// Dirty reports whether the draft has unsaved changes.
func (v *View) Dirty() bool {
	return v.dirty
}

// Selected returns the selected field.
func (v *View) Selected() Field {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
