package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
	"github.com/openfun/joanie-sub003/internal/pkg/queryfilter"
	"github.com/openfun/joanie-sub003/internal/resource"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
var footerStyle = lipgloss.NewStyle().Faint(true)

func newListCommand(flags *rootFlags) *cobra.Command {
	var (
		page     int
		pageSize int
		search   string
		filters  []string
	)

	cmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "Fetch one page of a resource",
		Long: "Fetch one page of a resource and print it as a table.\n\nResources: " +
			strings.Join(resourceNames(), ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bind, ok := bindings[args[0]]
			if !ok {
				return fmt.Errorf("unknown resource %q (expected one of: %s)", args[0], strings.Join(resourceNames(), ", "))
			}

			container, err := buildContainer(flags)
			if err != nil {
				return err
			}
			defer container.Close()

			query, err := parseFilters(filters)
			if err != nil {
				return err
			}

			source := bind.source(container)
			result, err := source.List(cmd.Context(), resource.ListParams{
				Page:     page - 1,
				PageSize: pageSize,
				Search:   search,
				Query:    query,
			})
			if err != nil {
				return fmt.Errorf("%s", apperror.Localize(container.Translator, err))
			}

			out := cmd.OutOrStdout()
			header := make([]string, len(bind.columns))
			for i, col := range bind.columns {
				header[i] = pad(col.Title, col.Width)
			}
			fmt.Fprintln(out, headerStyle.Render(strings.Join(header, "  ")))
			for _, r := range result.Results {
				cells := make([]string, len(bind.columns))
				for i, col := range bind.columns {
					cell := ""
					if i < len(r.cells) {
						cell = r.cells[i]
					}
					cells[i] = pad(cell, col.Width)
				}
				fmt.Fprintln(out, strings.Join(cells, "  "))
			}
			fmt.Fprintln(out, footerStyle.Render(
				fmt.Sprintf("page %d/%d, %d %s", page, result.TotalPages(effectivePageSize(pageSize, container.Config.PageSize)), result.Count, bind.name),
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "items per page")
	cmd.Flags().StringVar(&search, "search", "", "free-text search")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "structured filter, key=value (repeatable)")
	return cmd
}

// parseFilters turns repeated key=value flags into a filter query.
// Repeating a key accumulates its values.
func parseFilters(pairs []string) (*queryfilter.Query, error) {
	query := queryfilter.New()
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --filter %q, expected key=value", pair)
		}
		if existing, ok := query.Get(key); ok {
			switch v := existing.(type) {
			case string:
				query.Set(key, []string{v, value})
			case []string:
				query.Set(key, append(v, value))
			}
			continue
		}
		query.Set(key, value)
	}
	return query, nil
}

func effectivePageSize(requested, configured int) int {
	if requested > 0 {
		return requested
	}
	return configured
}

func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		if width <= 1 {
			return string(runes[:width])
		}
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}
