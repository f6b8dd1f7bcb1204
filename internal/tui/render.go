package tui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/Werneck0live/company-directory/internal/models"
	"github.com/Werneck0live/company-directory/internal/query"
)

const (
	skeletonCards   = 6
	descriptionRows = 2
	allIndustries   = "All Industries"
	notAvailable    = "N/A"
)

// Columns: 3 em telas largas, 2 em médias, 1 em estreitas.
func Columns(width int) int {
	switch {
	case width >= 120:
		return 3
	case width >= 80:
		return 2
	default:
		return 1
	}
}

// largura externa de cada card para a grade caber na tela
func cardWidth(width int) int {
	cols := Columns(width)
	w := (width - (cols - 1)) / cols
	return max(w, 24)
}

// FormatNumber usa vírgula como separador de milhar (1250 -> 1,250).
func FormatNumber(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}

func employeesText(c models.Company) string {
	if c.EmployeeCount == nil {
		return notAvailable
	}
	return FormatNumber(*c.EmployeeCount)
}

func foundedText(c models.Company) string {
	if c.FoundedYear == nil {
		return notAvailable
	}
	return fmt.Sprintf("Founded %d", *c.FoundedYear)
}

// clamp corta o texto em n linhas de largura w, com reticências no fim.
func clamp(text string, w, n int) string {
	if text == "" || w <= 0 {
		return ""
	}
	wrapped := lipgloss.NewStyle().Width(w).Render(text)
	lines := strings.Split(wrapped, "\n")
	if len(lines) <= n {
		return strings.Join(trimRight(lines), "\n")
	}
	lines = trimRight(lines[:n])
	last := []rune(lines[n-1])
	if len(last) >= w {
		last = last[:w-1]
	}
	lines[n-1] = string(last) + "…"
	return strings.Join(lines, "\n")
}

func trimRight(lines []string) []string {
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return lines
}

// RenderCard desenha um card de empresa com largura externa width.
func RenderCard(st Styles, c models.Company, width int) string {
	inner := max(width-4, 10) // borda + padding

	head := lipgloss.JoinHorizontal(lipgloss.Top,
		st.Badge.Render(initial(c.Name)), " ",
		st.Name.Render(truncate(c.Name, inner-4)),
	)
	lines := []string{head}
	if c.Industry != "" {
		lines = append(lines, st.Pill.Render(truncate(c.Industry, inner-2)))
	}
	if d := clamp(c.Description, inner, descriptionRows); d != "" {
		lines = append(lines, st.Muted.Render(d))
	}
	lines = append(lines,
		"📍 "+truncate(orNA(c.Location), inner-3),
		"👥 "+employeesText(c),
		"📅 "+foundedText(c),
	)
	if c.Website != "" {
		lines = append(lines, st.Link.Render("↗ "+truncate(c.Website, inner-2)))
	}
	return st.Card.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func truncate(s string, w int) string {
	if w <= 1 {
		return ""
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	return string(r[:w-1]) + "…"
}

// RenderGrid distribui os cards em linhas de Columns(width).
func RenderGrid(st Styles, items []models.Company, width int) string {
	cols := Columns(width)
	cw := cardWidth(width)
	var rows []string
	for i := 0; i < len(items); i += cols {
		end := min(i+cols, len(items))
		var cells []string
		for j, c := range items[i:end] {
			if j > 0 {
				cells = append(cells, " ")
			}
			cells = append(cells, RenderCard(st, c, cw))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func RenderHeader(st Styles, total int) string {
	noun := "companies"
	if total == 1 {
		noun = "company"
	}
	return st.Subtitle.Render(fmt.Sprintf("%s %s found", FormatNumber(total), noun))
}

func RenderEmpty(st Styles) string {
	return lipgloss.JoinVertical(lipgloss.Center,
		"",
		st.Name.Render("No companies found"),
		st.Muted.Render("Try adjusting your search or filter criteria"),
		"",
	)
}

// RenderLoading mostra seis cards-esqueleto e o spinner.
func RenderLoading(st Styles, spinner string, width int) string {
	cols := Columns(width)
	cw := cardWidth(width)
	n := max(cw-6, 4)
	bar, half := strings.Repeat("░", n), strings.Repeat("░", n/2)
	card := st.Skeleton.Width(cw - 2).Render(strings.Join([]string{bar, half, "", bar}, "\n"))

	var rows []string
	for i := 0; i < skeletonCards; i += cols {
		var cells []string
		for j := i; j < min(i+cols, skeletonCards); j++ {
			if j > i {
				cells = append(cells, " ")
			}
			cells = append(cells, card)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return spinner + " Loading companies...\n" + strings.Join(rows, "\n")
}

func RenderError(st Styles, msg string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		st.Error.Render("Something went wrong"),
		msg,
		st.Help.Render("Press r to try again"),
		"",
	)
}

// RenderPagination some quando há uma página ou menos.
func RenderPagination(st Styles, current, totalPages int) string {
	if totalPages <= 1 {
		return ""
	}
	prev := st.Page.Render("‹ Prev")
	if current <= 1 {
		prev = st.Disabled.Render("‹ Prev")
	}
	next := st.Page.Render("Next ›")
	if current >= totalPages {
		next = st.Disabled.Render("Next ›")
	}

	parts := []string{prev}
	for _, p := range query.PageNumbers(current, totalPages) {
		switch {
		case p == query.Ellipsis:
			parts = append(parts, st.Page.Render("…"))
		case p == current:
			parts = append(parts, st.PageActive.Render(strconv.Itoa(p)))
		default:
			parts = append(parts, st.Page.Render(strconv.Itoa(p)))
		}
	}
	parts = append(parts, next)
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// FilterBar é o que a barra precisa para ser desenhada.
type FilterBar struct {
	Search   string // view do textinput
	Industry string // vazio = todas
	Location string
	Sort     query.Sort
	Focus    Focus
}

func RenderFilterBar(st Styles, fb FilterBar) string {
	field := func(f Focus, label, body string) string {
		s := st.Field
		if fb.Focus == f {
			s = st.FieldFocus
		}
		return lipgloss.JoinVertical(lipgloss.Left, st.Label.Render(label), s.Render(body))
	}

	industry := fb.Industry
	if industry == "" {
		industry = allIndustries
	}
	arrow := "↑"
	if fb.Sort.Order == query.Desc {
		arrow = "↓"
	}
	sortLabel := fb.Sort.Field.Label()
	if fb.Sort.Field == "" {
		sortLabel = "None"
	}

	return lipgloss.JoinHorizontal(lipgloss.Bottom,
		field(FocusSearch, "Search", fb.Search), " ",
		field(FocusIndustry, "Industry", "‹ "+industry+" ›"), " ",
		field(FocusLocation, "Location", fb.Location), " ",
		field(FocusSort, "Sort by", "‹ "+sortLabel+" › "+arrow),
	)
}
