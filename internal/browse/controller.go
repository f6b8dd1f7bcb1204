// Package browse guarda o estado da tela de listagem: critérios, ordenação,
// página e o resultado da última busca.
package browse

import (
	"context"

	"github.com/Werneck0live/company-directory/internal/models"
	"github.com/Werneck0live/company-directory/internal/query"
	"github.com/Werneck0live/company-directory/internal/store"
)

type State int

const (
	Idle State = iota
	Loading
	Ready
	Errored
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Errored:
		return "errored"
	default:
		return "idle"
	}
}

// Request descreve uma busca emitida pelo controller. ID cresce a cada emissão.
type Request struct {
	ID    uint64
	Query query.Query
	Page  int
}

type Result struct {
	ID    uint64
	Items []models.Company
	Total int
	Err   error
}

// Controller não é seguro para uso concorrente: o dono (loop da TUI) chama
// as operações; só Fetch pode rodar em outra goroutine.
type Controller struct {
	store store.Store

	filters query.Filters
	sort    query.Sort
	page    int

	state  State
	items  []models.Company
	total  int
	errMsg string

	latest uint64
}

func NewController(s store.Store) *Controller {
	return &Controller{
		store: s,
		sort:  query.DefaultSort,
		page:  1,
		state: Idle,
	}
}

func (c *Controller) issue() Request {
	c.latest++
	c.state = Loading
	return Request{
		ID:    c.latest,
		Query: query.Build(c.filters, c.sort),
		Page:  c.page,
	}
}

// Start dispara o primeiro ciclo com os critérios iniciais.
func (c *Controller) Start() Request { return c.issue() }

// SetFilters troca os critérios e volta para a página 1.
func (c *Controller) SetFilters(f query.Filters) Request {
	c.filters = f
	c.page = 1
	return c.issue()
}

// SetSort troca a ordenação e volta para a página 1.
func (c *Controller) SetSort(s query.Sort) Request {
	if s.Order != query.Desc {
		s.Order = query.Asc
	}
	c.sort = s
	c.page = 1
	return c.issue()
}

func (c *Controller) ToggleOrder() Request {
	return c.SetSort(query.Sort{Field: c.sort.Field, Order: c.sort.Order.Toggle()})
}

// SelectSortField: mesmo campo inverte a direção, campo novo começa em asc.
func (c *Controller) SelectSortField(f query.Field) Request {
	if f == c.sort.Field {
		return c.ToggleOrder()
	}
	return c.SetSort(query.Sort{Field: f, Order: query.Asc})
}

// SetPage mantém os critérios; páginas < 1 viram 1.
func (c *Controller) SetPage(n int) Request {
	c.page = max(n, 1)
	return c.issue()
}

// Retry repete a última busca sem mexer nos critérios.
func (c *Controller) Retry() Request { return c.issue() }

// Refresh repete a busca atual (ex.: evento de alteração recebido).
func (c *Controller) Refresh() Request { return c.issue() }

// Fetch executa a busca no store. Não toca no estado do controller.
func (c *Controller) Fetch(ctx context.Context, req Request) Result {
	list, err := c.store.List(ctx, req.Query)
	if err != nil {
		return Result{ID: req.ID, Err: store.Unavailable("browse.fetch", err)}
	}
	return Result{
		ID:    req.ID,
		Items: query.Paginate(list, req.Page, query.PageSize),
		Total: len(list),
	}
}

// Apply aplica o resultado se ele for da última busca emitida. Devolve false
// para respostas antigas, que são descartadas.
func (c *Controller) Apply(res Result) bool {
	if res.ID != c.latest {
		return false
	}
	if res.Err != nil {
		c.state = Errored
		c.items = nil
		c.total = 0
		c.errMsg = store.DisplayMessage(res.Err)
		return true
	}
	c.state = Ready
	c.items = res.Items
	c.total = res.Total
	c.errMsg = ""
	return true
}

func (c *Controller) State() State            { return c.state }
func (c *Controller) Items() []models.Company { return c.items }
func (c *Controller) Total() int              { return c.total }
func (c *Controller) Page() int               { return c.page }
func (c *Controller) Filters() query.Filters  { return c.filters }
func (c *Controller) Sort() query.Sort        { return c.sort }
func (c *Controller) ErrorMessage() string    { return c.errMsg }
func (c *Controller) LatestID() uint64        { return c.latest }

func (c *Controller) TotalPages() int {
	return query.TotalPages(c.total, query.PageSize)
}
