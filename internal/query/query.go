// Package query monta o descritor de consulta a partir dos critérios da tela
// e aplica filtro, ordenação e paginação sobre a lista de empresas.
package query

import (
	"net/url"
	"strings"
)

// tamanho fixo da página na listagem
const PageSize = 9

type Field string

const (
	FieldName          Field = "name"
	FieldIndustry      Field = "industry"
	FieldLocation      Field = "location"
	FieldEmployeeCount Field = "employee_count"
	FieldFoundedYear   Field = "founded_year"
)

type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Critérios escolhidos pelo usuário. String vazia = sem restrição.
type Filters struct {
	Search   string
	Industry string
	Location string
}

type Sort struct {
	Field Field
	Order Order
}

// ordenação inicial da tela
var DefaultSort = Sort{Field: FieldName, Order: Asc}

// SortFields lista os campos ordenáveis, na ordem em que aparecem no seletor.
var SortFields = []Field{FieldName, FieldEmployeeCount, FieldFoundedYear}

func (f Field) Sortable() bool {
	for _, s := range SortFields {
		if s == f {
			return true
		}
	}
	return false
}

func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldEmployeeCount:
		return "Employees"
	case FieldFoundedYear:
		return "Founded Year"
	default:
		return string(f)
	}
}

func (o Order) Toggle() Order {
	if o == Desc {
		return Asc
	}
	return Desc
}

type Criterion struct {
	Field Field
	Value string
}

// Query é o descritor enviado ao store: filtros (AND) e no máximo uma ordenação.
type Query struct {
	Eq    []Criterion
	Order *Sort
}

// Build traduz filtros + ordenação em Query; campos vazios são omitidos.
func Build(f Filters, s Sort) Query {
	var q Query
	if f.Search != "" {
		q.Eq = append(q.Eq, Criterion{Field: FieldName, Value: f.Search})
	}
	if f.Industry != "" {
		q.Eq = append(q.Eq, Criterion{Field: FieldIndustry, Value: f.Industry})
	}
	if f.Location != "" {
		q.Eq = append(q.Eq, Criterion{Field: FieldLocation, Value: f.Location})
	}
	if s.Field != "" {
		order := s.Order
		if order != Desc {
			order = Asc
		}
		q.Order = &Sort{Field: s.Field, Order: order}
	}
	return q
}

func (q Query) IsZero() bool {
	return len(q.Eq) == 0 && q.Order == nil
}

// Value devolve o valor do critério para o campo, se existir.
func (q Query) Value(f Field) (string, bool) {
	for _, c := range q.Eq {
		if c.Field == f {
			return c.Value, true
		}
	}
	return "", false
}

// Values codifica a Query como query string (search, industry, location, sort, order).
func (q Query) Values() url.Values {
	v := url.Values{}
	for _, c := range q.Eq {
		switch c.Field {
		case FieldName:
			v.Set("search", c.Value)
		default:
			v.Set(string(c.Field), c.Value)
		}
	}
	if q.Order != nil {
		v.Set("sort", string(q.Order.Field))
		v.Set("order", string(q.Order.Order))
	}
	return v
}

// FromValues é o inverso de Values. Parâmetros desconhecidos são ignorados.
func FromValues(v url.Values) Query {
	f := Filters{
		Search:   strings.TrimSpace(v.Get("search")),
		Industry: strings.TrimSpace(v.Get("industry")),
		Location: strings.TrimSpace(v.Get("location")),
	}
	var s Sort
	if field := Field(strings.TrimSpace(v.Get("sort"))); field.Sortable() {
		s = Sort{Field: field, Order: Order(strings.ToLower(v.Get("order")))}
	}
	q := Build(f, s)
	// filtros numéricos exatos (employee_count / founded_year)
	for _, nf := range []Field{FieldEmployeeCount, FieldFoundedYear} {
		if val := strings.TrimSpace(v.Get(string(nf))); val != "" {
			q.Eq = append(q.Eq, Criterion{Field: nf, Value: val})
		}
	}
	return q
}
