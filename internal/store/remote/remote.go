// Package remote fala com a API REST do diretório (GET /companies etc).
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Werneck0live/company-directory/internal/models"
	"github.com/Werneck0live/company-directory/internal/query"
	"github.com/Werneck0live/company-directory/internal/store"
)

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	RatePerSec float64
	Burst      int
	HTTPClient *http.Client
	// ServerFilter manda os critérios como query string (só para a API de
	// cmd/api). Desligado, busca /companies sem parâmetros, como qualquer
	// servidor REST genérico espera.
	ServerFilter bool
}

type Store struct {
	base    *url.URL
	client  *http.Client
	timeout time.Duration
	limiter *rate.Limiter
	filter  bool
}

var _ store.Store = (*Store)(nil)

func New(opts Options) (*Store, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", opts.BaseURL)
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	lim := rate.NewLimiter(rate.Inf, 0)
	if opts.RatePerSec > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Limit(opts.RatePerSec), burst)
	}
	return &Store{base: base, client: client, timeout: timeout, limiter: lim, filter: opts.ServerFilter}, nil
}

// List busca as empresas na API e aplica o processamento local, para que o
// resultado seja idêntico ao do modo snapshot.
func (s *Store) List(ctx context.Context, q query.Query) ([]models.Company, error) {
	var params url.Values
	if s.filter {
		params = q.Values()
	}
	var list []models.Company
	if err := s.do(ctx, http.MethodGet, "/companies", params, nil, &list); err != nil {
		return nil, store.Unavailable("remote.list", err)
	}
	return query.Apply(list, q), nil
}

func (s *Store) Get(ctx context.Context, id string) (*models.Company, error) {
	var c models.Company
	if err := s.do(ctx, http.MethodGet, companyPath(id), nil, nil, &c); err != nil {
		return nil, store.Unavailable("remote.get", err)
	}
	return &c, nil
}

func (s *Store) Create(ctx context.Context, c *models.Company) (*models.Company, error) {
	var out models.Company
	if err := s.do(ctx, http.MethodPost, "/companies", nil, writable(c), &out); err != nil {
		return nil, store.Unavailable("remote.create", err)
	}
	return &out, nil
}

func (s *Store) Update(ctx context.Context, id string, p models.CompanyPatch) (*models.Company, error) {
	var out models.Company
	if err := s.do(ctx, http.MethodPatch, companyPath(id), nil, p, &out); err != nil {
		return nil, store.Unavailable("remote.update", err)
	}
	return &out, nil
}

func (s *Store) Replace(ctx context.Context, id string, c *models.Company) (*models.Company, error) {
	var out models.Company
	body := writable(c)
	body.ID = ""
	if err := s.do(ctx, http.MethodPut, companyPath(id), nil, body, &out); err != nil {
		return nil, store.Unavailable("remote.replace", err)
	}
	return &out, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.do(ctx, http.MethodDelete, companyPath(id), nil, nil, nil); err != nil {
		return store.Unavailable("remote.delete", err)
	}
	return nil
}

// corpo aceito pela API; created_at é sempre do servidor
type companyBody struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	Industry      string `json:"industry"`
	Location      string `json:"location"`
	EmployeeCount *int   `json:"employee_count,omitempty"`
	FoundedYear   *int   `json:"founded_year,omitempty"`
	Description   string `json:"description"`
	Website       string `json:"website,omitempty"`
}

func writable(c *models.Company) companyBody {
	return companyBody{
		ID:            c.ID,
		Name:          c.Name,
		Industry:      c.Industry,
		Location:      c.Location,
		EmployeeCount: c.EmployeeCount,
		FoundedYear:   c.FoundedYear,
		Description:   c.Description,
		Website:       c.Website,
	}
}

func companyPath(id string) string {
	return "/companies/" + url.PathEscape(id)
}

func (s *Store) do(ctx context.Context, method, path string, params url.Values, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	u := s.base.JoinPath(path)
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return statusError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusNotFound:
		return store.ErrNotFound
	case http.StatusConflict:
		return store.ErrDuplicateID
	}
	var body struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		return fmt.Errorf("api returned %d: %s", resp.StatusCode, body.Error)
	}
	return errors.New("api returned " + resp.Status)
}
