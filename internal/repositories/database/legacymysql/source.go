// Package legacymysql reads menu data out of the legacy MySQL point-of-sale database.
package legacymysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portsrepo "github.com/SscSPs/cherry_dining/internal/core/ports/repositories"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
)

const connectTimeout = 10 * time.Second

// Source is a read-only connection to the legacy POS.
type Source struct {
	db     *sql.DB
	target string
}

var _ portsrepo.LegacySource = (*Source)(nil)

// Open satisfies portsrepo.LegacySourceOpener. dsn is a go-sql-driver DSN such as
// "user:pass@tcp(host:3306)/pos".
func Open(ctx context.Context, dsn string) (portsrepo.LegacySource, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid legacy DSN: %w", err)
	}
	cfg.ParseTime = true
	if cfg.Timeout == 0 {
		cfg.Timeout = connectTimeout
	}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to configure legacy connection: %w", err)
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(2)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach legacy database: %w", err)
	}
	return &Source{db: db, target: target(cfg)}, nil
}

// Target is the host and database the source reads from.
func (s *Source) Target() string {
	return s.target
}

// target renders cfg as "addr/dbname", leaving out credentials.
func target(cfg *mysql.Config) string {
	return cfg.Addr + "/" + cfg.DBName
}

func (s *Source) ListLegacyCategories(ctx context.Context) ([]domain.LegacyCategory, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT CAST(id AS CHAR), name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query legacy categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.LegacyCategory{}
	for rows.Next() {
		var c domain.LegacyCategory
		if err := rows.Scan(&c.LegacyID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan legacy category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating legacy categories: %w", err)
	}
	return categories, nil
}

func (s *Source) ListLegacyItems(ctx context.Context) ([]domain.LegacyItem, error) {
	query := `SELECT CAST(id AS CHAR), CAST(category_id AS CHAR), name, CAST(price AS CHAR) FROM items ORDER BY id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query legacy items: %w", err)
	}
	defer rows.Close()

	items := []domain.LegacyItem{}
	for rows.Next() {
		var it domain.LegacyItem
		var categoryID sql.NullString
		var price sql.NullString
		if err := rows.Scan(&it.LegacyID, &categoryID, &it.Name, &price); err != nil {
			return nil, fmt.Errorf("failed to scan legacy item: %w", err)
		}
		if categoryID.Valid {
			it.LegacyCategoryID = &categoryID.String
		}
		it.Price, err = parsePrice(price)
		if err != nil {
			return nil, fmt.Errorf("legacy item %s: %w", it.LegacyID, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating legacy items: %w", err)
	}
	return items, nil
}

func (s *Source) Close() error {
	return s.db.Close()
}

// parsePrice treats a NULL price as zero.
func parsePrice(raw sql.NullString) (decimal.Decimal, error) {
	if !raw.Valid || raw.String == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw.String)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q", raw.String)
	}
	return d, nil
}
