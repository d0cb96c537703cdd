package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/moheuddin/itms/internal/app"
	"github.com/moheuddin/itms/internal/domain"
	"github.com/moheuddin/itms/internal/searchui"
)

func newSuggestCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest TERM",
		Short: "Suggest article titles containing TERM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, b Backend) error {
				titles, err := b.Suggest(ctx, args[0])
				if err != nil {
					return err
				}
				return opts.writeList(cmd.OutOrStdout(), titles)
			})
		},
	}
}

func newSectionsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List the sections of a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, b Backend) error {
				sections, err := b.Sections(ctx, opts.category)
				if err != nil {
					return err
				}
				return opts.writeList(cmd.OutOrStdout(), sections)
			})
		},
	}
}

func newTitlesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "titles",
		Short: "List every title of a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, b Backend) error {
				titles, err := b.Titles(ctx, opts.category)
				if err != nil {
					return err
				}
				return opts.writeList(cmd.OutOrStdout(), titles)
			})
		},
	}
}

func newFacetsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "facets SECTION",
		Short: "List the assessment years and titles under a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, b Backend) error {
				facets, err := b.Facets(ctx, args[0], opts.category)
				if err != nil {
					return err
				}

				w := cmd.OutOrStdout()
				if opts.jsonOut {
					return writeJSON(w, map[string][]string{"years": facets.Years, "titles": facets.Titles})
				}

				t := newTable("KIND", "VALUE")
				for _, y := range facets.Years {
					t.addRow("year", y)
				}
				for _, title := range facets.Titles {
					t.addRow("title", title)
				}
				return t.render(w)
			})
		},
	}
}

func newSearchCmd(opts *options) *cobra.Command {
	var q domain.SearchQuery

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run a composite search",
		Long: `Run a composite search over section, assessment year, title and content.
At least one filter is required.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query := q
			query.Category = opts.category
			query = query.Normalize()
			if query.IsEmpty() {
				return fmt.Errorf("type something or select filters to search: pass --section, --year, --title or --content")
			}

			return opts.run(cmd, func(ctx context.Context, b Backend) error {
				results, err := b.Search(ctx, query)
				if err != nil {
					return err
				}
				return writeResults(cmd, opts, results)
			})
		},
	}

	cmd.Flags().StringVar(&q.Section, "section", "", "section number")
	cmd.Flags().StringVar(&q.Year, "year", "", "assessment year, exact")
	cmd.Flags().StringVar(&q.Title, "title", "", "title, exact")
	cmd.Flags().StringVar(&q.Content, "content", "", "text the content must contain")
	return cmd
}

type resultJSON struct {
	ID             int64  `json:"id"`
	Section        string `json:"section"`
	OldSection     string `json:"old_section"`
	AssessmentYear string `json:"assessment_year"`
	Title          string `json:"title"`
	Content        string `json:"content"`
}

func writeResults(cmd *cobra.Command, opts *options, results []domain.Article) error {
	w := cmd.OutOrStdout()

	if opts.jsonOut {
		out := make([]resultJSON, len(results))
		for i, a := range results {
			out[i] = resultJSON{
				ID:             a.ID,
				Section:        a.Section,
				OldSection:     a.OldSection,
				AssessmentYear: a.AssessmentYear,
				Title:          a.Title,
				Content:        a.Content,
			}
		}
		return writeJSON(w, out)
	}

	if len(results) == 0 {
		_, err := fmt.Fprintln(w, searchui.MsgNoArticles)
		return err
	}

	t := newTable("ID", "SECTION", "OLD", "YEAR", "TITLE")
	for _, a := range results {
		t.addRow(strconv.FormatInt(a.ID, 10), a.Section, a.OldSection, a.AssessmentYear, a.Title)
	}
	return t.render(w)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
			return err
		},
	}
}
