package query

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/Werneck0live/company-directory/internal/models"
)

// Page é uma fatia paginada + total de registros que casaram com o filtro.
type Page struct {
	Items []models.Company
	Total int
}

// Process aplica filtro, ordenação e paginação. Função pura: não altera all.
func Process(all []models.Company, q Query, page, size int) Page {
	matched := Apply(all, q)
	return Page{
		Items: Paginate(matched, page, size),
		Total: len(matched),
	}
}

// Apply filtra e ordena, devolvendo sempre um slice novo.
func Apply(all []models.Company, q Query) []models.Company {
	out := make([]models.Company, 0, len(all))
	for _, c := range all {
		if Matches(c, q) {
			out = append(out, c)
		}
	}
	if q.Order != nil {
		SortCompanies(out, *q.Order)
	}
	return out
}

// Matches: todos os critérios precisam casar (AND).
func Matches(c models.Company, q Query) bool {
	for _, cr := range q.Eq {
		if !matchCriterion(c, cr) {
			return false
		}
	}
	return true
}

func matchCriterion(c models.Company, cr Criterion) bool {
	if s, ok := stringField(c, cr.Field); ok {
		if s == "" {
			return false
		}
		return strings.Contains(strings.ToLower(s), strings.ToLower(cr.Value))
	}
	if n, ok := intField(c, cr.Field); ok {
		if n == nil {
			return false
		}
		want, err := strconv.Atoi(strings.TrimSpace(cr.Value))
		if err != nil {
			return false
		}
		return *n == want
	}
	// campo desconhecido nunca casa
	return false
}

func stringField(c models.Company, f Field) (string, bool) {
	switch f {
	case FieldName:
		return c.Name, true
	case FieldIndustry:
		return c.Industry, true
	case FieldLocation:
		return c.Location, true
	case "description":
		return c.Description, true
	case "website":
		return c.Website, true
	case "id":
		return c.ID, true
	}
	return "", false
}

func intField(c models.Company, f Field) (*int, bool) {
	switch f {
	case FieldEmployeeCount:
		return c.EmployeeCount, true
	case FieldFoundedYear:
		return c.FoundedYear, true
	}
	return nil, false
}

// SortCompanies ordena in-place (estável). Valores ausentes vão sempre para o
// fim, tanto em asc quanto em desc.
func SortCompanies(list []models.Company, s Sort) {
	desc := s.Order == Desc
	slices.SortStableFunc(list, func(a, b models.Company) int {
		switch s.Field {
		case FieldEmployeeCount, FieldFoundedYear:
			av, _ := intField(a, s.Field)
			bv, _ := intField(b, s.Field)
			switch {
			case av == nil && bv == nil:
				return 0
			case av == nil:
				return 1
			case bv == nil:
				return -1
			}
			return direction(cmp.Compare(*av, *bv), desc)
		default:
			as, _ := stringField(a, s.Field)
			bs, _ := stringField(b, s.Field)
			switch {
			case as == "" && bs == "":
				return 0
			case as == "":
				return 1
			case bs == "":
				return -1
			}
			return direction(compareText(as, bs), desc)
		}
	})
}

func compareText(a, b string) int {
	if r := strings.Compare(strings.ToLower(a), strings.ToLower(b)); r != 0 {
		return r
	}
	return strings.Compare(a, b)
}

func direction(r int, desc bool) int {
	if desc {
		return -r
	}
	return r
}

// Paginate devolve [(page-1)*size, page*size). Página fora do intervalo = vazio.
func Paginate(list []models.Company, page, size int) []models.Company {
	if page < 1 || size < 1 {
		return []models.Company{}
	}
	from := (page - 1) * size
	if from >= len(list) {
		return []models.Company{}
	}
	to := min(from+size, len(list))
	out := make([]models.Company, to-from)
	copy(out, list[from:to])
	return out
}

// Industries: setores distintos, não vazios, em ordem lexicográfica.
func Industries(all []models.Company) []string {
	seen := make(map[string]struct{}, len(all))
	out := []string{}
	for _, c := range all {
		if c.Industry == "" {
			continue
		}
		if _, ok := seen[c.Industry]; ok {
			continue
		}
		seen[c.Industry] = struct{}{}
		out = append(out, c.Industry)
	}
	slices.Sort(out)
	return out
}
