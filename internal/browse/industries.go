package browse

import (
	"context"
	"log/slog"

	"github.com/Werneck0live/company-directory/internal/query"
	"github.com/Werneck0live/company-directory/internal/store"
)

// LoadIndustries busca todas as empresas (sem filtro) e devolve os setores.
// Falha só é logada; a lista fica vazia.
func LoadIndustries(ctx context.Context, s store.Store, log *slog.Logger) []string {
	if log == nil {
		log = slog.Default()
	}
	all, err := s.List(ctx, query.Query{})
	if err != nil {
		log.Warn("industries_load_failed", "err", err)
		return []string{}
	}
	return query.Industries(all)
}
