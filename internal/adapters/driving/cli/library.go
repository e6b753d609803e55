package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsift/internal/core/domain"
	"github.com/custodia-labs/docsift/internal/core/services"
)

var (
	listSort string
	listType string
	listJSON bool
	showJSON bool
	clearYes bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List library documents",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a document's extracted text",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var removeCmd = &cobra.Command{
	Use:     "remove [id...]",
	Aliases: []string{"rm"},
	Short:   "Remove documents from the library",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runRemove,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every document from the library",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	listCmd.Flags().StringVarP(&listSort, "sort", "s", "", "sort by name, date or size (default from config)")
	listCmd.Flags().StringVarP(&listType, "type", "t", domain.TypeAll, "show only one type (pdf, docx, txt)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output documents as JSON")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output the document as JSON")
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "do not ask for confirmation")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(clearCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}

	key := defaultSort
	if listSort != "" {
		parsed, err := services.ParseSortKey(listSort)
		if err != nil {
			return err
		}
		key = parsed
	}
	docType, err := services.ParseTypeFilter(listType)
	if err != nil {
		return err
	}

	docs, err := libraryService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}
	docs = services.NewDocumentSorter(libraryLocale).Sort(services.FilterDocuments(docs, docType), key)

	if listJSON {
		return printJSON(cmd, docs)
	}

	if len(docs) == 0 {
		cmd.Println("No documents. Add some with: docsift add FILE...")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tSIZE\tPAGES\tADDED")
	for i := range docs {
		d := &docs[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(d.ID), d.Name, domain.TypeLabel(d.Type), formatSize(d.Size),
			formatPages(d), humanize.Time(d.UploadDate))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	cmd.Printf("\n%d of %d documents\n", len(docs), libraryService.Count(cmd.Context()))
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}

	doc, err := findDocument(cmd, args[0])
	if err != nil {
		return err
	}

	if showJSON {
		return printJSON(cmd, doc)
	}

	cmd.Printf("%s (%s, %s", doc.Name, domain.TypeLabel(doc.Type), formatSize(doc.Size))
	if doc.HasPageCount() {
		cmd.Printf(", %s", formatPages(doc))
	}
	cmd.Printf(")\nAdded %s\n\n", doc.UploadDate.Local().Format("2006-01-02 15:04"))
	cmd.Println(doc.Content)
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}

	// Unknown IDs are reported and skipped; ambiguous prefixes and store
	// errors fail the command once every argument has been tried.
	var errs *multierror.Error
	for _, id := range args {
		doc, err := findDocument(cmd, id)
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Printf("No document %s\n", id)
			continue
		}
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		if err := libraryService.Remove(cmd.Context(), doc.ID); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("failed to remove %s: %w", doc.Name, err))
			continue
		}
		cmd.Printf("Removed %s\n", doc.Name)
	}
	return errs.ErrorOrNil()
}

func runClear(cmd *cobra.Command, _ []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}

	count := libraryService.Count(cmd.Context())
	if count == 0 {
		cmd.Println("Library is already empty.")
		return nil
	}

	if !clearYes {
		if !isTerminal(cmd.InOrStdin()) {
			return errors.New("refusing to clear the library without --yes")
		}
		cmd.Printf("Remove all %d documents? [y/N] ", count)
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	if err := libraryService.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear library: %w", err)
	}
	cmd.Printf("Removed %d documents.\n", count)
	return nil
}

// findDocument resolves a full ID or a unique ID prefix as shown by list.
func findDocument(cmd *cobra.Command, id string) (*domain.Document, error) {
	doc, err := libraryService.Get(cmd.Context(), id)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	docs, err := libraryService.List(cmd.Context())
	if err != nil {
		return nil, err
	}
	var match *domain.Document
	for i := range docs {
		if strings.HasPrefix(docs[i].ID, id) {
			if match != nil {
				return nil, fmt.Errorf("%w: id prefix %q is ambiguous", domain.ErrInvalidInput, id)
			}
			match = &docs[i]
		}
	}
	if match == nil || id == "" {
		return nil, fmt.Errorf("document %q: %w", id, domain.ErrNotFound)
	}
	return match, nil
}
