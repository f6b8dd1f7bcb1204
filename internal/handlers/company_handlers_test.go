package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Werneck0live/company-directory/internal/models"
	"github.com/Werneck0live/company-directory/internal/query"
	"github.com/Werneck0live/company-directory/internal/store"
)

const companyID = "c-001"

/*
RODAR TODOS OS TESTES:

go test -run 'TestCompanies_List_|TestCompanyByID_Get_|TestCompanies_Create_|TestCompanyByID_Put_|TestCompanyByID_Patch_|TestCompanyByID_Delete_' -v ./internal/handlers -count=1

*/

func serve(t *testing.T, h *CompanyHandler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	NewRouter(h).ServeHTTP(rr, req)
	return rr
}

func notFound(_ context.Context, _ string) (*models.Company, error) {
	return nil, store.Unavailable("mock.get", store.ErrNotFound)
}

func acme(id string) *models.Company {
	return &models.Company{ID: id, Name: "Acme", Industry: "Technology", Location: "Austin, TX", EmployeeCount: models.IntPtr(10)}
}

// 1)  GET (List) - go test -run 'TestCompanies_List_' -v ./internal/handlers -count=1

func TestCompanies_List_PassesQuery(t *testing.T) {
	sm := &storeMock{
		ListFn: func(_ context.Context, q query.Query) ([]models.Company, error) {
			want := query.Build(
				query.Filters{Search: "ac", Industry: "Tech"},
				query.Sort{Field: query.FieldFoundedYear, Order: query.Desc},
			)
			if diff := cmp.Diff(want, q); diff != "" {
				t.Fatalf("query (-want +got):\n%s", diff)
			}
			return []models.Company{*acme("1")}, nil
		},
	}
	h := &CompanyHandler{Store: sm}

	rr := serve(t, h, http.MethodGet, "/companies?search=ac&industry=Tech&sort=founded_year&order=desc", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d; body=%s", rr.Code, http.StatusOK, rr.Body.String())
	}
	var got []models.Company
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v\nbody=%s", err, rr.Body.String())
	}
	if len(got) != 1 || got[0].Name != "Acme" {
		t.Fatalf("unexpected payload: %#v", got)
	}
	if rr.Header().Get("X-Total-Count") != "" {
		t.Fatal("X-Total-Count só com paginação")
	}
}

// sem resultados → [] (nunca null)
func TestCompanies_List_EmptyIsArray(t *testing.T) {
	sm := &storeMock{
		ListFn: func(_ context.Context, _ query.Query) ([]models.Company, error) { return []models.Company{}, nil },
	}
	rr := serve(t, &CompanyHandler{Store: sm}, http.MethodGet, "/companies", "")
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Fatalf("body=%q want []", rr.Body.String())
	}
}

func TestCompanies_List_Paginated(t *testing.T) {
	var all []models.Company
	for i := 0; i < 20; i++ {
		all = append(all, models.Company{ID: string(rune('a' + i)), Name: "n"})
	}
	sm := &storeMock{
		ListFn: func(_ context.Context, _ query.Query) ([]models.Company, error) { return all, nil },
	}
	h := &CompanyHandler{Store: sm}

	cases := []struct {
		target string
		want   int
	}{
		{"/companies?page=1", 9},
		{"/companies?page=3", 2},
		{"/companies?page=4", 0},
		{"/companies?page=2&limit=5", 5},
	}
	for _, tc := range cases {
		rr := serve(t, h, http.MethodGet, tc.target, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: status=%d", tc.target, rr.Code)
		}
		if rr.Header().Get("X-Total-Count") != "20" {
			t.Fatalf("%s: X-Total-Count=%q", tc.target, rr.Header().Get("X-Total-Count"))
		}
		var got []models.Company
		_ = json.Unmarshal(rr.Body.Bytes(), &got)
		if len(got) != tc.want {
			t.Fatalf("%s: len=%d want=%d", tc.target, len(got), tc.want)
		}
	}
}

func TestCompanies_List_BadPaging(t *testing.T) {
	h := &CompanyHandler{Store: &storeMock{}}
	for _, target := range []string{"/companies?page=x", "/companies?page=1&limit=0", "/companies?page=1&limit=1000"} {
		if rr := serve(t, h, http.MethodGet, target, ""); rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: status=%d want=400", target, rr.Code)
		}
	}
}

// Erro do store → 500
func TestCompanies_List_StoreError(t *testing.T) {
	sm := &storeMock{
		ListFn: func(_ context.Context, _ query.Query) ([]models.Company, error) {
			return nil, store.Unavailable("mock.list", errors.New("boom"))
		},
	}
	rr := serve(t, &CompanyHandler{Store: sm}, http.MethodGet, "/companies", "")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d want=%d body=%s", rr.Code, http.StatusInternalServerError, rr.Body.String())
	}
}

// Method Not Allowed (405)
func TestCompanies_MethodNotAllowed(t *testing.T) {
	rr := serve(t, &CompanyHandler{Store: &storeMock{}}, http.MethodDelete, "/companies", "")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status=%d want=%d", rr.Code, http.StatusMethodNotAllowed)
	}
}

// 2) GET (ById{id}) - go test -run 'TestCompanyByID_Get_' -v ./internal/handlers -count=1

func TestCompanyByID_Get_Found(t *testing.T) {
	sm := &storeMock{
		GetFn: func(_ context.Context, id string) (*models.Company, error) {
			if id != companyID {
				t.Fatalf("id inesperado: got=%s want=%s", id, companyID)
			}
			return acme(id), nil
		},
	}
	rr := serve(t, &CompanyHandler{Store: sm}, http.MethodGet, "/companies/"+companyID, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want=%d body=%s", rr.Code, http.StatusOK, rr.Body.String())
	}
	var got models.Company
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("json inválido: %v (body=%s)", err, rr.Body.String())
	}
	if got.ID != companyID || got.Name != "Acme" {
		t.Fatalf("payload inesperado: %#v", got)
	}
}

func TestCompanyByID_Get_NotFound(t *testing.T) {
	rr := serve(t, &CompanyHandler{Store: &storeMock{GetFn: notFound}}, http.MethodGet, "/companies/"+companyID, "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d want=%d body=%s", rr.Code, http.StatusNotFound, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"error":"not found"`) {
		t.Fatalf("body=%s", rr.Body.String())
	}
}

// 3) POST - go test -run 'TestCompanies_Create_' -v ./internal/handlers -count=1

func TestCompanies_Create_Valid(t *testing.T) {
	sm := &storeMock{
		CreateFn: func(_ context.Context, c *models.Company) (*models.Company, error) {
			if c.Name != "Acme" || c.EmployeeCount == nil || *c.EmployeeCount != 10 {
				t.Fatalf("modelo inesperado: %#v", c)
			}
			out := *c
			out.ID = "generated"
			return &out, nil
		},
	}
	pm := &pubMock{}
	h := &CompanyHandler{Store: sm, Pub: pm}

	rr := serve(t, h, http.MethodPost, "/companies", `{"name":"Acme","industry":"Technology","employee_count":10}`)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status=%d want=%d body=%s", rr.Code, http.StatusCreated, rr.Body.String())
	}
	if len(pm.events) != 1 || pm.events[0].Action != models.ActionCreated || pm.events[0].CompanyID != "generated" {
		t.Fatalf("evento inesperado: %#v", pm.events)
	}
}

func TestCompanies_Create_KeepsCreatedAt(t *testing.T) {
	var got time.Time
	sm := &storeMock{
		CreateFn: func(_ context.Context, c *models.Company) (*models.Company, error) {
			got = c.CreatedAt
			out := *c
			return &out, nil
		},
	}
	body := `{"id":"c-900","name":"Acme","created_at":"2024-01-15T10:30:00Z"}`
	rr := serve(t, &CompanyHandler{Store: sm, Pub: &pubMock{}}, http.MethodPost, "/companies", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status=%d want=%d body=%s", rr.Code, http.StatusCreated, rr.Body.String())
	}
	want := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("created_at=%v want=%v", got, want)
	}
}

func TestCompanyByID_Put_IgnoresCreatedAt(t *testing.T) {
	sm := &storeMock{
		ReplaceFn: func(_ context.Context, id string, c *models.Company) (*models.Company, error) {
			out := *c
			out.ID = id
			return &out, nil
		},
	}
	body := `{"name":"Acme","created_at":"2024-01-15T10:30:00Z"}`
	rr := serve(t, &CompanyHandler{Store: sm, Pub: &pubMock{}}, http.MethodPut, "/companies/c-1", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want=%d body=%s", rr.Code, http.StatusOK, rr.Body.String())
	}
}

func TestCompanies_Create_InvalidJSON(t *testing.T) {
	h := &CompanyHandler{Store: &storeMock{}}
	for _, body := range []string{`{"name":`, `{"name":"A","foo":1}`, `{"name":"A"}{"name":"B"}`} {
		if rr := serve(t, h, http.MethodPost, "/companies", body); rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: status=%d want=400", body, rr.Code)
		}
	}
}

func TestCompanies_Create_ValidationErrors(t *testing.T) {
	h := &CompanyHandler{Store: &storeMock{}}
	cases := []string{
		`{"name":""}`,
		`{"name":"A","employee_count":-1}`,
		`{"name":"A","founded_year":0}`,
		`{"name":"A","website":"ftp://x"}`,
	}
	for _, body := range cases {
		if rr := serve(t, h, http.MethodPost, "/companies", body); rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: status=%d want=400", body, rr.Code)
		}
	}
}

func TestCompanies_Create_DuplicateID(t *testing.T) {
	sm := &storeMock{
		CreateFn: func(_ context.Context, _ *models.Company) (*models.Company, error) {
			return nil, store.Unavailable("mock.create", store.ErrDuplicateID)
		},
	}
	pm := &pubMock{}
	rr := serve(t, &CompanyHandler{Store: sm, Pub: pm}, http.MethodPost, "/companies", `{"id":"x","name":"A"}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("status=%d want=%d", rr.Code, http.StatusConflict)
	}
	if len(pm.events) != 0 {
		t.Fatal("falha não publica evento")
	}
}

// 4) PUT - go test -run 'TestCompanyByID_Put_' -v ./internal/handlers -count=1

func TestCompanyByID_Put_Replace_OK(t *testing.T) {
	sm := &storeMock{
		ReplaceFn: func(_ context.Context, id string, c *models.Company) (*models.Company, error) {
			if id != companyID || c.ID != companyID || c.Name != "Acme 2" || c.Location != "" {
				t.Fatalf("replace inesperado: id=%s doc=%#v", id, c)
			}
			return c, nil
		},
	}
	pm := &pubMock{}
	rr := serve(t, &CompanyHandler{Store: sm, Pub: pm}, http.MethodPut, "/companies/"+companyID, `{"name":"Acme 2"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	if len(pm.events) != 1 || pm.events[0].Action != models.ActionUpdated {
		t.Fatalf("evento inesperado: %#v", pm.events)
	}
}

func TestCompanyByID_Put_IDMismatch(t *testing.T) {
	rr := serve(t, &CompanyHandler{Store: &storeMock{}}, http.MethodPut, "/companies/"+companyID, `{"id":"other","name":"A"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want=400", rr.Code)
	}
}

func TestCompanyByID_Put_NotFound(t *testing.T) {
	sm := &storeMock{
		ReplaceFn: func(_ context.Context, _ string, _ *models.Company) (*models.Company, error) {
			return nil, store.Unavailable("mock.replace", store.ErrNotFound)
		},
	}
	rr := serve(t, &CompanyHandler{Store: sm}, http.MethodPut, "/companies/"+companyID, `{"name":"A"}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d want=404", rr.Code)
	}
}

// 5) PATCH - go test -run 'TestCompanyByID_Patch_' -v ./internal/handlers -count=1

func TestCompanyByID_Patch_OK(t *testing.T) {
	sm := &storeMock{
		UpdateFn: func(_ context.Context, id string, p models.CompanyPatch) (*models.Company, error) {
			if p.Location == nil || *p.Location != "Dallas, TX" || p.Name != nil {
				t.Fatalf("patch inesperado: %#v", p)
			}
			c := acme(id).Merge(p)
			return &c, nil
		},
	}
	rr := serve(t, &CompanyHandler{Store: sm}, http.MethodPatch, "/companies/"+companyID, `{"location":"Dallas, TX"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	var got models.Company
	_ = json.Unmarshal(rr.Body.Bytes(), &got)
	if got.Location != "Dallas, TX" || got.Name != "Acme" {
		t.Fatalf("payload inesperado: %#v", got)
	}
}

func TestCompanyByID_Patch_InvalidJSON(t *testing.T) {
	rr := serve(t, &CompanyHandler{Store: &storeMock{}}, http.MethodPatch, "/companies/"+companyID, `{"nome":"x"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want=400", rr.Code)
	}
}

func TestCompanyByID_Patch_NegativeEmployees(t *testing.T) {
	rr := serve(t, &CompanyHandler{Store: &storeMock{}}, http.MethodPatch, "/companies/"+companyID, `{"employee_count":-5}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want=400", rr.Code)
	}
}

// 6) DELETE - go test -run 'TestCompanyByID_Delete_' -v ./internal/handlers -count=1

func TestCompanyByID_Delete_OK(t *testing.T) {
	deleted := ""
	sm := &storeMock{
		GetFn:    func(_ context.Context, id string) (*models.Company, error) { return acme(id), nil },
		DeleteFn: func(_ context.Context, id string) error { deleted = id; return nil },
	}
	pm := &pubMock{}
	rr := serve(t, &CompanyHandler{Store: sm, Pub: pm}, http.MethodDelete, "/companies/"+companyID, "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status=%d want=204", rr.Code)
	}
	if deleted != companyID {
		t.Fatalf("deleted=%q", deleted)
	}
	if len(pm.events) != 1 || pm.events[0].Action != models.ActionDeleted || pm.events[0].Name != "Acme" {
		t.Fatalf("evento inesperado: %#v", pm.events)
	}
}

func TestCompanyByID_Delete_NotFound(t *testing.T) {
	rr := serve(t, &CompanyHandler{Store: &storeMock{GetFn: notFound}}, http.MethodDelete, "/companies/"+companyID, "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d want=404", rr.Code)
	}
}

func TestCompanyByID_Delete_StoreError(t *testing.T) {
	sm := &storeMock{
		GetFn:    func(_ context.Context, id string) (*models.Company, error) { return acme(id), nil },
		DeleteFn: func(_ context.Context, _ string) error { return store.Unavailable("mock.delete", errors.New("boom")) },
	}
	rr := serve(t, &CompanyHandler{Store: sm}, http.MethodDelete, "/companies/"+companyID, "")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d want=500", rr.Code)
	}
}

// publicação com falha não derruba a requisição
func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	sm := &storeMock{
		CreateFn: func(_ context.Context, c *models.Company) (*models.Company, error) { return c, nil },
	}
	pm := &pubMock{PublishEventFn: func(context.Context, models.CompanyEvent) error { return errors.New("rabbit down") }}
	rr := serve(t, &CompanyHandler{Store: sm, Pub: pm}, http.MethodPost, "/companies", `{"name":"A"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status=%d want=201", rr.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	h := &CompanyHandler{Store: &storeMock{}}
	if rr := serve(t, h, http.MethodGet, "/healthz", ""); rr.Code != http.StatusOK {
		t.Fatalf("healthz status=%d", rr.Code)
	}
	rr := serve(t, h, http.MethodGet, "/metrics", "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "directory_http_requests_total") {
		t.Fatalf("metrics status=%d", rr.Code)
	}
}
