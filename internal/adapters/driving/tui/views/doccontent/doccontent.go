// Package doccontent provides the document content view component for the TUI.
package doccontent

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/docsift/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docsift/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/services"
)

// View shows a document's extracted text with query matches highlighted.
type View struct {
	styles *styles.Styles

	document     *domain.Document
	query        string
	from         messages.ViewType
	lines        []string
	matchLines   []int // indices into lines containing the query
	matchCount   int
	scrollOffset int
	width        int
	height       int
	ready        bool
}

// NewView creates a new document content view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		from:   messages.ViewLibrary,
		width:  80,
		height: 24,
	}
}

// SetDocument shows doc, highlighting query. Escape returns to from.
func (v *View) SetDocument(doc domain.Document, query string, from messages.ViewType) {
	v.document = &doc
	v.query = strings.TrimSpace(query)
	v.from = from
	v.scrollOffset = 0
	v.matchCount = 0
	if v.query != "" {
		v.matchCount = services.CountMatches(doc.Content, v.query)
	}
	v.wrapContent()

	// Open at the first match.
	if len(v.matchLines) > 0 {
		v.scrollTo(v.matchLines[0])
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the document content view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.DocumentSelected:
		v.SetDocument(msg.Document, msg.Query, msg.From)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup", "ctrl+u":
		v.scrollOffset = max(v.scrollOffset-v.visibleLines(), 0)
	case "pgdown", "ctrl+d":
		v.scrollOffset = min(v.scrollOffset+v.visibleLines(), v.maxScrollOffset())
	case "home", "g":
		v.scrollOffset = 0
	case "end", "G":
		v.scrollOffset = v.maxScrollOffset()
	case "n":
		v.jumpMatch(1)
	case "N":
		v.jumpMatch(-1)
	case "esc":
		from := v.from
		return v, func() tea.Msg {
			return messages.ViewChanged{View: from}
		}
	}

	return v, nil
}

// jumpMatch scrolls to the next (dir > 0) or previous match line, wrapping.
func (v *View) jumpMatch(dir int) {
	if len(v.matchLines) == 0 {
		return
	}
	if dir > 0 {
		for _, line := range v.matchLines {
			if line > v.scrollOffset {
				v.scrollTo(line)
				return
			}
		}
		v.scrollTo(v.matchLines[0])
		return
	}
	for i := len(v.matchLines) - 1; i >= 0; i-- {
		if v.matchLines[i] < v.scrollOffset {
			v.scrollTo(v.matchLines[i])
			return
		}
	}
	v.scrollTo(v.matchLines[len(v.matchLines)-1])
}

func (v *View) scrollTo(line int) {
	v.scrollOffset = min(max(line, 0), v.maxScrollOffset())
}

// wrapContent wraps the content to fit the view width.
func (v *View) wrapContent() {
	v.lines = nil
	v.matchLines = nil
	if v.document == nil || v.document.Content == "" {
		return
	}

	// Calculate available width (accounting for padding)
	contentWidth := max(v.width-4, 20)

	rawLines := strings.Split(v.document.Content, "\n")
	v.lines = make([]string, 0, len(rawLines))

	for _, line := range rawLines {
		runes := []rune(strings.TrimRight(line, "\r"))
		for len(runes) > contentWidth {
			v.lines = append(v.lines, string(runes[:contentWidth]))
			runes = runes[contentWidth:]
		}
		v.lines = append(v.lines, string(runes))
	}

	if v.query == "" {
		return
	}
	folded := strings.ToLower(v.query)
	for i, line := range v.lines {
		if strings.Contains(strings.ToLower(line), folded) {
			v.matchLines = append(v.matchLines, i)
		}
	}
}

// visibleLines returns the number of lines that can be displayed.
func (v *View) visibleLines() int {
	// title, metadata, separator, blank, position, blank, help
	return max(v.height-7, 1)
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the document content view.
func (v *View) View() string {
	var b strings.Builder

	title := "Document"
	if v.document != nil {
		title = v.document.Name
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	if v.document != nil {
		b.WriteString(v.styles.Muted.Render(v.metadata()))
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("─", min(v.width-4, 60)))
	b.WriteString("\n\n")

	if len(v.lines) == 0 {
		b.WriteString(v.styles.Muted.Render("(No content)"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visibleLines := v.visibleLines()
	for i := v.scrollOffset; i < len(v.lines) && i < v.scrollOffset+visibleLines; i++ {
		line := v.lines[i]
		if v.query != "" {
			line = services.HighlightMatches(line, v.query, v.styles.Highlight)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(v.lines) > visibleLines {
		b.WriteString("\n")
		percentage := 0
		if v.maxScrollOffset() > 0 {
			percentage = v.scrollOffset * 100 / v.maxScrollOffset()
		}
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d%%] Line %d-%d of %d",
			percentage,
			v.scrollOffset+1,
			min(v.scrollOffset+visibleLines, len(v.lines)),
			len(v.lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) metadata() string {
	doc := v.document
	parts := []string{domain.TypeLabel(doc.Type), humanize.IBytes(uint64(doc.Size))}
	if doc.HasPageCount() {
		parts = append(parts, fmt.Sprintf("%d pages", *doc.PageCount))
	}
	if v.query != "" {
		noun := "matches"
		if v.matchCount == 1 {
			noun = "match"
		}
		parts = append(parts, fmt.Sprintf("%d %s for %q", v.matchCount, noun, v.query))
	}
	return strings.Join(parts, " · ")
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	if v.query != "" {
		return v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [n/N] next/prev match  [esc] back")
	}
	return v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.wrapContent()
	v.scrollOffset = min(v.scrollOffset, v.maxScrollOffset())
}

// Document returns the current document.
func (v *View) Document() *domain.Document {
	return v.document
}

// Query returns the highlighted query.
func (v *View) Query() string {
	return v.query
}

// ScrollOffset returns the first visible line.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}

// LineCount returns the number of wrapped lines.
func (v *View) LineCount() int {
	return len(v.lines)
}

// MatchCount returns the number of query matches in the document.
func (v *View) MatchCount() int {
	return v.matchCount
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}
