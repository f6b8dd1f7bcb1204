// Package store define o contrato único de acesso às empresas. As variantes
// (remote, memory, mongo, sqlite) ficam em subpacotes.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Werneck0live/company-directory/internal/models"
	"github.com/Werneck0live/company-directory/internal/query"
)

var (
	ErrNotFound    = errors.New("company not found")
	ErrDuplicateID = errors.New("company id already exists")
)

// Store é o adaptador de registros. List sempre devolve a lista já filtrada e
// ordenada pelo query.Apply, seja qual for o backend.
type Store interface {
	List(ctx context.Context, q query.Query) ([]models.Company, error)
	Get(ctx context.Context, id string) (*models.Company, error)
	Create(ctx context.Context, c *models.Company) (*models.Company, error)
	Update(ctx context.Context, id string, p models.CompanyPatch) (*models.Company, error)
	Replace(ctx context.Context, id string, c *models.Company) (*models.Company, error)
	Delete(ctx context.Context, id string) error
}

// UnavailableError é o único tipo de falha exposto pelos stores (DataUnavailable).
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Message devolve o texto exibido no painel de erro.
func (e *UnavailableError) Message() string {
	switch {
	case errors.Is(e.Err, ErrNotFound):
		return "Company not found"
	case errors.Is(e.Err, ErrDuplicateID):
		return "A company with this id already exists"
	case errors.Is(e.Err, context.DeadlineExceeded):
		return "The data source took too long to respond"
	default:
		return "Failed to load companies: " + e.Err.Error()
	}
}

// Unavailable embrulha err como DataUnavailable (nil continua nil).
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	var ue *UnavailableError
	if errors.As(err, &ue) {
		return err
	}
	return &UnavailableError{Op: op, Err: err}
}

// DisplayMessage converte qualquer erro em texto para a tela.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}
	var ue *UnavailableError
	if errors.As(err, &ue) {
		return ue.Message()
	}
	return "An error occurred"
}

// PrepareCreate completa id (UUID) e created_at antes de gravar.
func PrepareCreate(c models.Company) models.Company {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	return c
}

// PrepareReplace preserva id e created_at do documento atual (PUT = replace).
func PrepareReplace(current *models.Company, next models.Company) models.Company {
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	return next
}
