// Package snapshot carrega o conjunto embarcado de empresas (ou um arquivo
// externo JSON/YAML com o mesmo formato).
package snapshot

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Werneck0live/company-directory/internal/models"
)

//go:embed data/companies.json
var bundled []byte

var (
	once     sync.Once
	cached   []models.Company
	cacheErr error
)

// Bundled devolve uma cópia das empresas embarcadas no binário.
func Bundled() ([]models.Company, error) {
	once.Do(func() {
		cached, cacheErr = Parse(bundled, FormatJSON)
	})
	if cacheErr != nil {
		return nil, cacheErr
	}
	out := make([]models.Company, len(cached))
	copy(out, cached)
	return out, nil
}

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor escolhe o formato pela extensão (.yaml/.yml => YAML; resto JSON).
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func LoadFile(path string) ([]models.Company, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	list, err := Parse(b, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}

// Parse decodifica { "companies": [...] } e valida ids e nomes.
func Parse(b []byte, f Format) ([]models.Company, error) {
	var doc models.Snapshot
	var err error
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(b, &doc)
	default:
		err = json.Unmarshal(b, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := validate(doc.Companies); err != nil {
		return nil, err
	}
	if doc.Companies == nil {
		doc.Companies = []models.Company{}
	}
	return doc.Companies, nil
}

func validate(list []models.Company) error {
	seen := make(map[string]struct{}, len(list))
	var errs []error
	for i, c := range list {
		if strings.TrimSpace(c.ID) == "" {
			errs = append(errs, fmt.Errorf("companies[%d]: id is required", i))
			continue
		}
		if strings.TrimSpace(c.Name) == "" {
			errs = append(errs, fmt.Errorf("companies[%d] (%s): name is required", i, c.ID))
		}
		if _, dup := seen[c.ID]; dup {
			errs = append(errs, fmt.Errorf("companies[%d]: duplicate id %q", i, c.ID))
		}
		seen[c.ID] = struct{}{}
	}
	return errors.Join(errs...)
}
