// Package upload provides the TUI view for adding files to the library.
package upload

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docsift/internal/adapters/driving/localfile"
	"github.com/custodia-labs/docsift/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docsift/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docsift/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/ports/driving"
)

// View takes file paths, uploads them and shows per-file progress.
type View struct {
	styles  *styles.Styles
	input   *input.TextInput
	bar     progress.Model
	service driving.UploadService
	ctx     context.Context

	statuses []domain.UploadProgress
	updates  chan tea.Msg
	running  bool
	err      error
	width    int
	height   int
	ready    bool
}

// NewView creates a new upload view.
func NewView(s *styles.Styles, service driving.UploadService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	theme := s.Theme()

	return &View{
		styles:  s,
		input:   input.NewPathInput(s),
		bar:     progress.New(progress.WithSolidFill(string(theme.Primary)), progress.WithoutPercentage()),
		service: service,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context uploads run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init focuses the path input.
func (v *View) Init() tea.Cmd {
	return v.input.Focus()
}

// Update handles messages for the upload view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.UploadProgressed:
		v.apply(msg.Progress)
		return v, v.waitForUpdate()

	case messages.UploadFinished:
		v.running = false
		v.updates = nil
		if len(msg.Statuses) > 0 {
			v.statuses = msg.Statuses
		}
		v.err = msg.Err
		return v, func() tea.Msg { return messages.LibraryChanged{} }

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if v.running {
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewLibrary}
		}
	case tea.KeyEnter:
		if v.running {
			return v, nil
		}
		return v, v.start()
	}

	if v.running {
		return v, nil
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// start expands the typed paths and uploads them in the background.
// Progress flows back through updates one message at a time.
func (v *View) start() tea.Cmd {
	patterns := strings.Fields(v.input.Value())
	if len(patterns) == 0 {
		return nil
	}
	if v.service == nil {
		v.err = ErrNoUploadService
		return nil
	}

	files := localfile.FromPaths(localfile.Expand(patterns))

	v.statuses = make([]domain.UploadProgress, len(files))
	for i := range files {
		v.statuses[i] = domain.UploadProgress{FileName: files[i].Name, Status: domain.UploadStatusUploading}
	}
	v.err = nil
	v.running = true
	v.input.Reset()

	updates := make(chan tea.Msg, len(files)*3+1)
	v.updates = updates
	service, ctx := v.service, v.ctx

	go func() {
		statuses, err := service.Process(ctx, files, func(p domain.UploadProgress) {
			updates <- messages.UploadProgressed{Progress: p}
		})
		updates <- messages.UploadFinished{Statuses: statuses, Err: err}
		close(updates)
	}()

	return v.waitForUpdate()
}

func (v *View) waitForUpdate() tea.Cmd {
	updates := v.updates
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-updates
		if !ok {
			return nil
		}
		return msg
	}
}

// apply records p against the first unfinished file of the same name.
// Files are processed in order, so that is always the file p describes.
func (v *View) apply(p domain.UploadProgress) {
	for i := range v.statuses {
		if v.statuses[i].FileName == p.FileName && !v.statuses[i].Status.IsTerminal() {
			v.statuses[i] = p
			return
		}
	}
}

// Percent returns overall batch progress in [0, 1].
func (v *View) Percent() float64 {
	if len(v.statuses) == 0 {
		return 0
	}
	total := 0
	for i := range v.statuses {
		if v.statuses[i].Status.IsTerminal() {
			total += 100
		} else {
			total += v.statuses[i].Progress
		}
	}
	return float64(total) / float64(100*len(v.statuses))
}

// View renders the upload view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Add Files"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("PDF, DOCX and plain text. Separate paths with spaces; globs are expanded."))
	b.WriteString("\n\n")

	b.WriteString(v.input.View())
	b.WriteString("\n\n")

	if len(v.statuses) > 0 {
		b.WriteString(v.bar.ViewAs(v.Percent()))
		b.WriteString("\n\n")
		for i := range v.statuses {
			b.WriteString(v.renderStatus(&v.statuses[i]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if v.err != nil && !v.running {
		b.WriteString(v.styles.Error.Render(v.summary()))
		b.WriteString("\n\n")
	}

	if v.running {
		b.WriteString(v.styles.Help.Render("Processing..."))
	} else {
		b.WriteString(v.styles.Help.Render("[enter] add  [esc] back"))
	}

	return b.String()
}

func (v *View) renderStatus(p *domain.UploadProgress) string {
	switch p.Status {
	case domain.UploadStatusCompleted:
		return v.styles.Success.Render("✓ " + p.FileName)
	case domain.UploadStatusError:
		return v.styles.Error.Render(fmt.Sprintf("✗ %s: %s", p.FileName, p.Error))
	case domain.UploadStatusProcessing:
		return v.styles.Normal.Render("… " + p.FileName + " extracting text")
	default:
		return v.styles.Muted.Render("  " + p.FileName)
	}
}

// summary describes a batch that had failures.
func (v *View) summary() string {
	if errors.Is(v.err, ErrNoUploadService) {
		return "Error: " + v.err.Error()
	}
	failed := 0
	for i := range v.statuses {
		if v.statuses[i].Status == domain.UploadStatusError {
			failed++
		}
	}
	return fmt.Sprintf("%d of %d files could not be added", failed, len(v.statuses))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
	v.bar.Width = max(min(width-4, 60), 10)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Running reports whether a batch is being processed.
func (v *View) Running() bool {
	return v.running
}

// Statuses returns the latest state of each file in the batch.
func (v *View) Statuses() []domain.UploadProgress {
	return v.statuses
}

// SetPaths fills the path input.
func (v *View) SetPaths(paths string) {
	v.input.SetValue(paths)
}

// Err returns the aggregated error of the last batch.
func (v *View) Err() error {
	return v.err
}

// Reset clears the last batch.
func (v *View) Reset() {
	if v.running {
		return
	}
	v.statuses = nil
	v.err = nil
	v.input.Reset()
}
