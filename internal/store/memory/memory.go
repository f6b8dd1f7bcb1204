// Package memory guarda as empresas em memória. É o backend do modo snapshot
// e também serve de fake nos testes.
package memory

import (
	"context"
	"sync"

	"github.com/Werneck0live/company-directory/internal/models"
	"github.com/Werneck0live/company-directory/internal/query"
	"github.com/Werneck0live/company-directory/internal/store"
)

type Store struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]models.Company
}

var _ store.Store = (*Store)(nil)

// Tudo que entra ou sai do mapa passa por Clone: quem chama nunca
// compartilha ponteiros com o store.

// New copia a lista recebida; ids repetidos ficam com a última ocorrência.
func New(companies []models.Company) *Store {
	s := &Store{byID: make(map[string]models.Company, len(companies))}
	for _, c := range companies {
		if _, ok := s.byID[c.ID]; !ok {
			s.order = append(s.order, c.ID)
		}
		s.byID[c.ID] = c.Clone()
	}
	return s
}

func (s *Store) List(ctx context.Context, q query.Query) ([]models.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Unavailable("memory.list", err)
	}
	return query.Apply(s.snapshot(), q), nil
}

func (s *Store) snapshot() []models.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]models.Company, 0, len(s.order))
	for _, id := range s.order {
		all = append(all, s.byID[id].Clone())
	}
	return all
}

func (s *Store) Get(ctx context.Context, id string) (*models.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Unavailable("memory.get", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[id]
	if !ok {
		return nil, store.Unavailable("memory.get", store.ErrNotFound)
	}
	out := c.Clone()
	return &out, nil
}

func (s *Store) Create(ctx context.Context, c *models.Company) (*models.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Unavailable("memory.create", err)
	}
	nc := store.PrepareCreate(c.Clone())

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[nc.ID]; exists {
		return nil, store.Unavailable("memory.create", store.ErrDuplicateID)
	}
	s.byID[nc.ID] = nc
	s.order = append(s.order, nc.ID)
	out := nc.Clone()
	return &out, nil
}

func (s *Store) Update(ctx context.Context, id string, p models.CompanyPatch) (*models.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Unavailable("memory.update", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.byID[id]
	if !ok {
		return nil, store.Unavailable("memory.update", store.ErrNotFound)
	}
	next := cur.Merge(p)
	s.byID[id] = next
	out := next.Clone()
	return &out, nil
}

func (s *Store) Replace(ctx context.Context, id string, c *models.Company) (*models.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Unavailable("memory.replace", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.byID[id]
	if !ok {
		return nil, store.Unavailable("memory.replace", store.ErrNotFound)
	}
	next := store.PrepareReplace(&cur, c.Clone())
	s.byID[id] = next
	out := next.Clone()
	return &out, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return store.Unavailable("memory.delete", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return store.Unavailable("memory.delete", store.ErrNotFound)
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
