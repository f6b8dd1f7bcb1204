package admin

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Werneck0live/company-directory/internal/models"
	"github.com/Werneck0live/company-directory/internal/store"
)

type SeedResult struct {
	Created int
	Skipped int
}

// SeedCompanies grava as empresas no store.
// Idempotente: cria se não existir; se já existir (mesmo id), ignora.
func SeedCompanies(ctx context.Context, s store.Store, companies []models.Company, log *slog.Logger) (SeedResult, error) {
	if log == nil {
		log = slog.Default()
	}
	var res SeedResult
	for _, c := range companies {
		// timeout curto por item pra não travar
		ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
		_, err := s.Create(ictx, &c)
		cancel()

		if err != nil {
			if errors.Is(err, store.ErrDuplicateID) {
				res.Skipped++
				log.Info("seed_company_exists", "id", c.ID)
				continue
			}
			return res, err
		}
		res.Created++
		log.Info("seed_company_created", "id", c.ID, "name", c.Name)
	}

	log.Info("seed_companies_done", "count", len(companies), "created", res.Created, "skipped", res.Skipped)
	return res, nil
}
