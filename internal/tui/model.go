package tui

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Werneck0live/company-directory/internal/browse"
	"github.com/Werneck0live/company-directory/internal/models"
	"github.com/Werneck0live/company-directory/internal/query"
	"github.com/Werneck0live/company-directory/internal/store"
)

type Focus int

const (
	FocusSearch Focus = iota
	FocusIndustry
	FocusLocation
	FocusSort
	FocusResults
	focusCount
)

const defaultWidth = 100

type (
	fetchedMsg    struct{ res browse.Result }
	industriesMsg []string
	changeMsg     models.CompanyEvent
)

type Options struct {
	Store   store.Store
	Log     *slog.Logger
	Timeout time.Duration

	// Events recebe alterações vindas do websocket; nil desliga o refresh ao vivo.
	Events <-chan models.CompanyEvent
}

type Model struct {
	ctrl    *browse.Controller
	store   store.Store
	log     *slog.Logger
	timeout time.Duration
	events  <-chan models.CompanyEvent

	search     textinput.Model
	location   textinput.Model
	spinner    spinner.Model
	industries []string
	industry   int // 0 = todas; i>0 = industries[i-1]
	focus      Focus

	width  int
	styles Styles
}

func New(opts Options) Model {
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	search := textinput.New()
	search.Placeholder = "Search companies..."
	search.Prompt = "🔍 "
	search.CharLimit = 100
	search.Width = 24
	search.Focus()

	location := textinput.New()
	location.Placeholder = "Filter by location..."
	location.Prompt = ""
	location.CharLimit = 100
	location.Width = 20

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return Model{
		ctrl:     browse.NewController(opts.Store),
		store:    opts.Store,
		log:      opts.Log,
		timeout:  opts.Timeout,
		events:   opts.Events,
		search:   search,
		location: location,
		spinner:  sp,
		focus:    FocusSearch,
		width:    defaultWidth,
		styles:   DefaultStyles(),
	}
}

func (m Model) Controller() *browse.Controller { return m.ctrl }
func (m Model) Focus() Focus                   { return m.focus }

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetch(m.ctrl.Start()),
		m.loadIndustries(),
		m.spinner.Tick,
		textinput.Blink,
		m.waitEvent(),
	)
}

// fetch devolve o comando que roda a busca fora do loop do bubbletea.
func (m Model) fetch(req browse.Request) tea.Cmd {
	ctrl, timeout := m.ctrl, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return fetchedMsg{res: ctrl.Fetch(ctx, req)}
	}
}

func (m Model) loadIndustries() tea.Cmd {
	s, log, timeout := m.store, m.log, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return industriesMsg(browse.LoadIndustries(ctx, s, log))
	}
}

func (m Model) waitEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	ch := m.events
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return changeMsg(ev)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case fetchedMsg:
		if !m.ctrl.Apply(msg.res) {
			m.log.Debug("stale_result_dropped", "id", msg.res.ID, "latest", m.ctrl.LatestID())
		} else if msg.res.Err != nil {
			m.log.Warn("companies_load_failed", "err", msg.res.Err)
		}
		return m, nil

	case industriesMsg:
		prev := m.selectedIndustry()
		m.industries = []string(msg)
		m.industry = 0
		if prev == "" {
			return m, nil
		}
		if i := slices.Index(m.industries, prev); i >= 0 {
			m.industry = i + 1
			return m, nil
		}
		// o setor escolhido sumiu: volta para todas e refaz a busca
		return m, m.fetch(m.ctrl.SetFilters(m.filters()))

	case changeMsg:
		m.log.Info("company_event_received", "action", msg.Action, "company_id", msg.CompanyID)
		cmds := []tea.Cmd{m.fetch(m.ctrl.Refresh()), m.waitEvent()}
		if msg.Action != models.ActionUpdated {
			cmds = append(cmds, m.loadIndustries())
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m Model) typing() bool {
	return m.focus == FocusSearch || m.focus == FocusLocation
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		return m.setFocus((m.focus + 1) % focusCount), nil
	case "shift+tab":
		return m.setFocus((m.focus + focusCount - 1) % focusCount), nil
	case "pgup":
		return m.gotoPage(m.ctrl.Page() - 1)
	case "pgdown":
		return m.gotoPage(m.ctrl.Page() + 1)
	}

	if !m.typing() {
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "o":
			return m, m.fetch(m.ctrl.ToggleOrder())
		case "r":
			if m.ctrl.State() == browse.Errored {
				return m, m.fetch(m.ctrl.Retry())
			}
			return m, nil
		}
	}

	switch m.focus {
	case FocusIndustry:
		switch msg.String() {
		case "left", "h":
			return m.cycleIndustry(-1)
		case "right", "l":
			return m.cycleIndustry(1)
		}
	case FocusSort:
		switch msg.String() {
		case "left", "h":
			return m.cycleSort(-1)
		case "right", "l":
			return m.cycleSort(1)
		case "enter", " ":
			return m, m.fetch(m.ctrl.ToggleOrder())
		}
	case FocusResults:
		switch msg.String() {
		case "left", "h":
			return m.gotoPage(m.ctrl.Page() - 1)
		case "right", "l":
			return m.gotoPage(m.ctrl.Page() + 1)
		case "home":
			return m.gotoPage(1)
		case "end":
			return m.gotoPage(m.ctrl.TotalPages())
		}
	}

	return m.updateInputs(msg)
}

func (m Model) setFocus(f Focus) Model {
	m.focus = f
	m.search.Blur()
	m.location.Blur()
	switch f {
	case FocusSearch:
		m.search.Focus()
	case FocusLocation:
		m.location.Focus()
	}
	return m
}

// gotoPage ignora páginas fora do intervalo [1, total].
func (m Model) gotoPage(n int) (tea.Model, tea.Cmd) {
	if n < 1 || n > m.ctrl.TotalPages() || n == m.ctrl.Page() {
		return m, nil
	}
	return m, m.fetch(m.ctrl.SetPage(n))
}

func (m Model) cycleIndustry(delta int) (tea.Model, tea.Cmd) {
	n := len(m.industries) + 1
	m.industry = ((m.industry+delta)%n + n) % n
	return m, m.fetch(m.ctrl.SetFilters(m.filters()))
}

func (m Model) cycleSort(delta int) (tea.Model, tea.Cmd) {
	fields := query.SortFields
	idx := 0
	for i, f := range fields {
		if f == m.ctrl.Sort().Field {
			idx = i
		}
	}
	n := len(fields)
	next := fields[((idx+delta)%n+n)%n]
	return m, m.fetch(m.ctrl.SelectSortField(next))
}

func (m Model) selectedIndustry() string {
	if m.industry <= 0 || m.industry > len(m.industries) {
		return ""
	}
	return m.industries[m.industry-1]
}

func (m Model) filters() query.Filters {
	return query.Filters{
		Search:   strings.TrimSpace(m.search.Value()),
		Industry: m.selectedIndustry(),
		Location: strings.TrimSpace(m.location.Value()),
	}
}

// updateInputs repassa a mensagem ao campo focado e busca de novo se o texto mudou.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.filters()

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	cmds = append(cmds, cmd)
	m.location, cmd = m.location.Update(msg)
	cmds = append(cmds, cmd)

	if m.filters() != before {
		cmds = append(cmds, m.fetch(m.ctrl.SetFilters(m.filters())))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	st := m.styles
	var b strings.Builder

	b.WriteString(st.Title.Render("Company Directory"))
	b.WriteString("\n")
	b.WriteString(st.Subtitle.Render("Browse and discover companies"))
	b.WriteString("\n\n")

	b.WriteString(RenderFilterBar(st, FilterBar{
		Search:   m.search.View(),
		Industry: m.selectedIndustry(),
		Location: m.location.View(),
		Sort:     m.ctrl.Sort(),
		Focus:    m.focus,
	}))
	b.WriteString("\n\n")

	switch m.ctrl.State() {
	case browse.Idle, browse.Loading:
		b.WriteString(RenderLoading(st, m.spinner.View(), m.width))
	case browse.Errored:
		b.WriteString(RenderError(st, m.ctrl.ErrorMessage()))
	default:
		b.WriteString(RenderHeader(st, m.ctrl.Total()))
		b.WriteString("\n")
		if len(m.ctrl.Items()) == 0 {
			b.WriteString(RenderEmpty(st))
		} else {
			b.WriteString(RenderGrid(st, m.ctrl.Items(), m.width))
		}
		if p := RenderPagination(st, m.ctrl.Page(), m.ctrl.TotalPages()); p != "" {
			b.WriteString("\n")
			pager := p
			if m.focus == FocusResults {
				pager = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(colorFocus).Render(p)
			}
			b.WriteString(pager)
		}
	}

	b.WriteString("\n")
	b.WriteString(st.Help.Render("tab/shift+tab: focus • ←/→: change • o: order • pgup/pgdn: page • r: retry • q: quit"))
	return b.String()
}
