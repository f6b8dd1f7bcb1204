// Package sqlite é o backend local da API (arquivo único, sem servidor).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	_ "modernc.org/sqlite"

	"github.com/Werneck0live/company-directory/internal/models"
	"github.com/Werneck0live/company-directory/internal/query"
	"github.com/Werneck0live/company-directory/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS companies (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	industry       TEXT NOT NULL DEFAULT '',
	location       TEXT NOT NULL DEFAULT '',
	employee_count INTEGER,
	founded_year   INTEGER,
	description    TEXT NOT NULL DEFAULT '',
	website        TEXT NOT NULL DEFAULT '',
	created_at     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_companies_industry ON companies(industry);
`

const columns = `id, name, industry, location, employee_count, founded_year, description, website, created_at`

type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

// Open abre (ou cria) o arquivo e aplica o schema.
func Open(ctx context.Context, path string) (*Store, error) {
	// modernc sqlite usa DSN do tipo: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite: um escritor só
	db.SetConnMaxLifetime(5 * time.Minute)

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) List(ctx context.Context, q query.Query) ([]models.Company, error) {
	where, args := whereFor(q)
	rows, err := s.db.QueryContext(ctx, `SELECT `+columns+` FROM companies`+where+` ORDER BY rowid`, args...)
	if err != nil {
		return nil, store.Unavailable("sqlite.list", err)
	}
	defer rows.Close()

	list := []models.Company{}
	for rows.Next() {
		c, err := scan(rows)
		if err != nil {
			return nil, store.Unavailable("sqlite.list", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Unavailable("sqlite.list", err)
	}
	return query.Apply(list, q), nil
}

// LIKE do sqlite só ignora caixa em ASCII: valores com outros caracteres
// ficam de fora do WHERE e Apply filtra sozinho.
func whereFor(q query.Query) (string, []any) {
	var conds []string
	var args []any
	for _, cr := range q.Eq {
		switch cr.Field {
		case query.FieldName, query.FieldIndustry, query.FieldLocation:
			if !isASCII(cr.Value) {
				continue
			}
			conds = append(conds, string(cr.Field)+` LIKE ? ESCAPE '\'`)
			args = append(args, "%"+escapeLike(cr.Value)+"%")
		case query.FieldEmployeeCount, query.FieldFoundedYear:
			if n, err := strconv.Atoi(cr.Value); err == nil {
				conds = append(conds, string(cr.Field)+` = ?`)
				args = append(args, n)
			}
		}
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(r scanner) (models.Company, error) {
	var (
		c         models.Company
		employees sql.NullInt64
		founded   sql.NullInt64
		created   string
	)
	if err := r.Scan(&c.ID, &c.Name, &c.Industry, &c.Location, &employees, &founded, &c.Description, &c.Website, &created); err != nil {
		return c, err
	}
	if employees.Valid {
		c.EmployeeCount = models.IntPtr(int(employees.Int64))
	}
	if founded.Valid {
		c.FoundedYear = models.IntPtr(int(founded.Int64))
	}
	if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
		c.CreatedAt = t
	}
	return c, nil
}

func nullable(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func (s *Store) Get(ctx context.Context, id string) (*models.Company, error) {
	c, err := s.get(ctx, id)
	if err != nil {
		return nil, store.Unavailable("sqlite.get", err)
	}
	return c, nil
}

func (s *Store) get(ctx context.Context, id string) (*models.Company, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+columns+` FROM companies WHERE id = ?`, id)
	c, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) Create(ctx context.Context, c *models.Company) (*models.Company, error) {
	nc := store.PrepareCreate(*c)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO companies (`+columns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nc.ID, nc.Name, nc.Industry, nc.Location,
		nullable(nc.EmployeeCount), nullable(nc.FoundedYear),
		nc.Description, nc.Website, nc.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueViolation(err) {
			err = store.ErrDuplicateID
		}
		return nil, store.Unavailable("sqlite.create", err)
	}
	return &nc, nil
}

func (s *Store) Update(ctx context.Context, id string, p models.CompanyPatch) (*models.Company, error) {
	cur, err := s.get(ctx, id)
	if err != nil {
		return nil, store.Unavailable("sqlite.update", err)
	}
	next := cur.Merge(p)
	if err := s.write(ctx, next); err != nil {
		return nil, store.Unavailable("sqlite.update", err)
	}
	return &next, nil
}

func (s *Store) Replace(ctx context.Context, id string, c *models.Company) (*models.Company, error) {
	cur, err := s.get(ctx, id)
	if err != nil {
		return nil, store.Unavailable("sqlite.replace", err)
	}
	next := store.PrepareReplace(cur, *c)
	if err := s.write(ctx, next); err != nil {
		return nil, store.Unavailable("sqlite.replace", err)
	}
	return &next, nil
}

func (s *Store) write(ctx context.Context, c models.Company) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE companies SET name = ?, industry = ?, location = ?, employee_count = ?, founded_year = ?,
		 description = ?, website = ? WHERE id = ?`,
		c.Name, c.Industry, c.Location, nullable(c.EmployeeCount), nullable(c.FoundedYear),
		c.Description, c.Website, c.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM companies WHERE id = ?`, id)
	if err != nil {
		return store.Unavailable("sqlite.delete", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.Unavailable("sqlite.delete", store.ErrNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "constraint failed: companies.id")
}
