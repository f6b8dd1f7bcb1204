package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Werneck0live/company-directory/internal/browse"
	"github.com/Werneck0live/company-directory/internal/config"
	"github.com/Werneck0live/company-directory/internal/models"
	"github.com/Werneck0live/company-directory/internal/query"
	"github.com/Werneck0live/company-directory/internal/tui"
)

type listOptions struct {
	filters query.Filters
	sort    string
	order   string
	page    int
	json    bool
}

type listOutput struct {
	Items      []models.Company `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
}

func newListCmd(cfg *config.DirectoryConfig) *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of companies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, cfg, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.filters.Search, "search", "", "name contains (case-insensitive)")
	f.StringVar(&opts.filters.Industry, "industry", "", "industry contains")
	f.StringVar(&opts.filters.Location, "location", "", "location contains")
	f.StringVar(&opts.sort, "sort", string(query.DefaultSort.Field), "sort field: name | employee_count | founded_year | none")
	f.StringVar(&opts.order, "order", string(query.Asc), "asc | desc")
	f.IntVar(&opts.page, "page", 1, "page number (9 per page)")
	f.BoolVar(&opts.json, "json", false, "print JSON instead of a table")
	return cmd
}

func parseSort(field, order string) (query.Sort, error) {
	var s query.Sort
	switch query.Order(order) {
	case query.Asc, query.Desc:
		s.Order = query.Order(order)
	default:
		return s, fmt.Errorf("invalid --order %q (want asc or desc)", order)
	}
	if field == "" || field == "none" {
		return s, nil
	}
	if !slices.Contains(query.SortFields, query.Field(field)) {
		return s, fmt.Errorf("invalid --sort %q", field)
	}
	s.Field = query.Field(field)
	return s, nil
}

func runList(cmd *cobra.Command, cfg *config.DirectoryConfig, opts listOptions) error {
	sort, err := parseSort(opts.sort, opts.order)
	if err != nil {
		return err
	}
	if opts.page < 1 {
		return fmt.Errorf("invalid --page %d", opts.page)
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}

	// mesmo caminho da TUI: critérios -> página -> busca
	ctrl := browse.NewController(s)
	ctrl.SetFilters(opts.filters)
	ctrl.SetSort(sort)
	req := ctrl.SetPage(opts.page)
	ctrl.Apply(ctrl.Fetch(cmd.Context(), req))
	if ctrl.State() == browse.Errored {
		return errors.New(ctrl.ErrorMessage())
	}

	out := listOutput{
		Items:      ctrl.Items(),
		Total:      ctrl.Total(),
		Page:       ctrl.Page(),
		TotalPages: ctrl.TotalPages(),
	}
	if opts.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	return printTable(cmd.OutOrStdout(), out)
}

func printTable(w io.Writer, out listOutput) error {
	rows := make([][]string, 0, len(out.Items))
	for _, c := range out.Items {
		emp, founded := "N/A", "N/A"
		if c.EmployeeCount != nil {
			emp = tui.FormatNumber(*c.EmployeeCount)
		}
		if c.FoundedYear != nil {
			founded = strconv.Itoa(*c.FoundedYear)
		}
		rows = append(rows, []string{c.Name, c.Industry, c.Location, emp, founded})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "INDUSTRY", "LOCATION", "EMPLOYEES", "FOUNDED").
		Rows(rows...)

	noun := "companies"
	if out.Total == 1 {
		noun = "company"
	}
	_, err := fmt.Fprintf(w, "%s\n%d %s found (page %d of %d)\n", t.String(), out.Total, noun, out.Page, max(out.TotalPages, 1))
	return err
}
