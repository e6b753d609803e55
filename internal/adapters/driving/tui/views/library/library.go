// Package library provides the TUI view listing library documents.
package library

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/docsift/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docsift/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docsift/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driving"
	"github.com/custodia-labs/docsift/internal/core/services"
)

// View lists documents with sorting, type filtering and removal.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	library driving.LibraryService
	sorter  *services.DocumentSorter
	now     func() time.Time
	ctx     context.Context

	docs       []domain.Document // as loaded
	visible    []domain.Document // filtered and sorted
	sortKey    domain.SortKey
	typeFilter string

	selected     int
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
	confirming   bool
	notice       string
}

// NewView creates a library view. Names are collated for locale.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	library driving.LibraryService,
	locale string,
	sortKey domain.SortKey,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if !sortKey.IsValid() {
		sortKey = domain.SortByDate
	}

	return &View{
		styles:     s,
		keymap:     km,
		library:    library,
		sorter:     services.NewDocumentSorter(locale),
		now:        time.Now,
		ctx:        context.Background(),
		sortKey:    sortKey,
		typeFilter: domain.TypeAll,
		width:      80,
		height:     24,
	}
}

// WithContext sets the context for library calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithClock sets the time source for relative upload dates.
func (v *View) WithClock(now func() time.Time) *View {
	if now != nil {
		v.now = now
	}
	return v
}

// Init loads the documents.
func (v *View) Init() tea.Cmd {
	return v.loadDocuments()
}

func (v *View) loadDocuments() tea.Cmd {
	ctx := v.ctx
	return func() tea.Msg {
		if v.library == nil {
			return messages.DocumentsLoaded{Err: ErrNoLibraryService}
		}
		docs, err := v.library.List(ctx)
		return messages.DocumentsLoaded{Documents: docs, Err: err}
	}
}

func (v *View) removeDocument(doc domain.Document) tea.Cmd {
	ctx := v.ctx
	return func() tea.Msg {
		if v.library == nil {
			return messages.DocumentRemoved{ID: doc.ID, Err: ErrNoLibraryService}
		}
		return messages.DocumentRemoved{ID: doc.ID, Err: v.library.Remove(ctx, doc.ID)}
	}
}

// Update handles messages for the library view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.DocumentsLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.docs = msg.Documents
			v.refresh()
		}
		return v, nil

	case messages.DocumentRemoved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		return v, tea.Batch(v.loadDocuments(), func() tea.Msg { return messages.LibraryChanged{} })

	case messages.LibraryChanged:
		return v, v.loadDocuments()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	if v.confirming {
		v.confirming = false
		if keyStr == "y" || keyStr == "Y" {
			if doc := v.SelectedDocument(); doc != nil {
				v.notice = "Removed " + doc.Name
				return v, v.removeDocument(*doc)
			}
		}
		v.notice = ""
		return v, nil
	}

	v.notice = ""

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	case keymap.Matches(keyStr, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case keymap.Matches(keyStr, v.keymap.Down):
		if v.selected < len(v.visible)-1 {
			v.selected++
			v.adjustScroll()
		}
	case keymap.Matches(keyStr, v.keymap.Select):
		if doc := v.SelectedDocument(); doc != nil {
			selected := *doc
			return v, func() tea.Msg {
				return messages.DocumentSelected{Document: selected, From: messages.ViewLibrary}
			}
		}
	case keymap.Matches(keyStr, v.keymap.Sort):
		v.sortKey = nextSortKey(v.sortKey)
		v.refresh()
	case keymap.Matches(keyStr, v.keymap.Filter):
		v.typeFilter = services.NextTypeFilter(v.typeFilter)
		v.refresh()
	case keymap.Matches(keyStr, v.keymap.Remove):
		if doc := v.SelectedDocument(); doc != nil {
			v.confirming = true
			v.notice = fmt.Sprintf("Remove %s? [y/N]", doc.Name)
		}
	case keymap.Matches(keyStr, v.keymap.Reload):
		return v, v.loadDocuments()
	case keymap.Matches(keyStr, v.keymap.Add):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewUpload} }
	}

	return v, nil
}

// refresh rebuilds the visible list, keeping the selection in range.
func (v *View) refresh() {
	v.visible = v.sorter.Sort(services.FilterDocuments(v.docs, v.typeFilter), v.sortKey)
	if v.selected >= len(v.visible) {
		v.selected = max(len(v.visible)-1, 0)
	}
	v.adjustScroll()
}

func nextSortKey(current domain.SortKey) domain.SortKey {
	keys := domain.AllSortKeys()
	for i, k := range keys {
		if k == current {
			return keys[(i+1)%len(keys)]
		}
	}
	return keys[0]
}

// visibleItemCount returns how many rows fit on screen.
func (v *View) visibleItemCount() int {
	// title, filter line, blank, header, blank, notice, help
	return max(v.height-8, 1)
}

func (v *View) adjustScroll() {
	visible := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	}
	if v.selected >= v.scrollOffset+visible {
		v.scrollOffset = v.selected - visible + 1
	}
	if v.scrollOffset < 0 {
		v.scrollOffset = 0
	}
}

// View renders the library view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Library"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%d of %d documents  sort: %s  type: %s",
		len(v.visible), len(v.docs), v.sortKey, domain.TypeLabel(v.typeFilter))))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if len(v.visible) == 0 {
		if len(v.docs) == 0 {
			b.WriteString(v.styles.Muted.Render("No documents. Press a to add files."))
		} else {
			b.WriteString(v.styles.Muted.Render("No documents of this type."))
		}
		b.WriteString("\n")
	} else {
		nameWidth := max(v.width-40, 12)
		header := fmt.Sprintf("  %-*s %-5s %9s  %s", nameWidth, "NAME", "TYPE", "SIZE", "ADDED")
		b.WriteString(v.styles.Subtitle.Render(header))
		b.WriteString("\n")

		end := min(v.scrollOffset+v.visibleItemCount(), len(v.visible))
		for i := v.scrollOffset; i < end; i++ {
			b.WriteString(v.renderRow(i, nameWidth))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if v.notice != "" {
		b.WriteString(v.styles.Warning.Render(v.notice))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Help.Render(keymap.HelpLine(v.keymap.LibraryHelp()...)))

	return b.String()
}

func (v *View) renderRow(i, nameWidth int) string {
	doc := &v.visible[i]

	name := []rune(doc.Name)
	if len(name) > nameWidth {
		name = append(name[:nameWidth-3], []rune("...")...)
	}

	row := fmt.Sprintf("%-*s %-5s %9s  %s",
		nameWidth, string(name),
		domain.TypeLabel(doc.Type),
		humanize.IBytes(uint64(doc.Size)),
		humanize.RelTime(doc.UploadDate, v.now(), "ago", "from now"),
	)

	if i == v.selected {
		return v.styles.Selected.Render("> " + row)
	}
	return v.styles.Normal.Render("  " + row)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.adjustScroll()
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Documents returns the documents currently listed, in display order.
func (v *View) Documents() []domain.Document {
	return v.visible
}

// SelectedDocument returns the highlighted document, or nil.
func (v *View) SelectedDocument() *domain.Document {
	if v.selected < 0 || v.selected >= len(v.visible) {
		return nil
	}
	return &v.visible[v.selected]
}

// SortKey returns the active sort key.
func (v *View) SortKey() domain.SortKey {
	return v.sortKey
}

// TypeFilter returns the active type filter.
func (v *View) TypeFilter() string {
	return v.typeFilter
}

// Confirming reports whether a removal is awaiting confirmation.
func (v *View) Confirming() bool {
	return v.confirming
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
