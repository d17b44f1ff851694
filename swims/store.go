package swims

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"github.com/ldmxd/oceanswimmer/models"
)

// Store runs search and race-listing queries against the results view.
// It holds no per-request state and is safe for concurrent use.
type Store struct {
	db   *bun.DB
	view string
}

// NewStore returns a Store reading from the named view.
func NewStore(db *bun.DB, view string) *Store {
	return &Store{db: db, view: view}
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Search returns one page of results matching every filter in c.
// One pooled connection is held for the duration of the query.
func (s *Store) Search(ctx context.Context, c Criteria) (*SearchPage, error) {
	f := c.Normalize()

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	rows, err := s.searchQuery(conn.NewSelect(), f).Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("search swims: %w", err)
	}
	defer rows.Close()

	// One look-ahead row beyond the page decides HasMore.
	results := make([]Result, 0, min(f.PageSize, 256))
	hasMore := false
	for rows.Next() {
		if len(results) == f.PageSize {
			hasMore = true
			break
		}
		var row models.ResultRow
		if err := s.db.ScanRow(ctx, rows, &row); err != nil {
			return nil, fmt.Errorf("scan swim result: %w", err)
		}
		results = append(results, ProjectResult(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read swim results: %w", err)
	}

	return &SearchPage{
		Page:     f.Page,
		PageSize: f.PageSize,
		Count:    len(results),
		HasMore:  hasMore,
		Results:  results,
	}, nil
}

// Races lists every race whose name contains text (case-sensitive), newest
// first, with its result count. An empty text lists all races.
func (s *Store) Races(ctx context.Context, text string) ([]Race, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	rows, err := s.racesQuery(conn.NewSelect(), text).Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("list races: %w", err)
	}
	defer rows.Close()

	races := []Race{}
	for rows.Next() {
		var row models.RaceRow
		if err := s.db.ScanRow(ctx, rows, &row); err != nil {
			return nil, fmt.Errorf("scan race: %w", err)
		}
		races = append(races, ProjectRace(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read races: %w", err)
	}

	return races, nil
}

func (s *Store) searchQuery(q *bun.SelectQuery, f Filter) *bun.SelectQuery {
	q = q.TableExpr("?", bun.Ident(s.view)).
		Column(models.ResultColumns...)

	like := s.likeOperator()
	if f.SurnamePattern != nil {
		q = q.Where("surname_search "+like+" ?", *f.SurnamePattern)
	}
	if f.ForenamePattern != nil {
		q = q.Where("forename_search "+like+" ?", *f.ForenamePattern)
	}
	if f.RaceID != nil {
		q = q.Where("race_id = ?", *f.RaceID)
	}
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.Gender != nil {
		q = q.Where("gender = ?", *f.Gender)
	}

	return q.OrderExpr("race_name ASC, overall_position ASC").
		Limit(f.PageSize + 1).
		Offset(f.Offset)
}

func (s *Store) racesQuery(q *bun.SelectQuery, text string) *bun.SelectQuery {
	q = q.TableExpr("?", bun.Ident(s.view)).
		Column("race_id", "race_name", "race_date", "distance").
		ColumnExpr("COUNT(*) AS result_count")

	if text != "" {
		q = q.Where(s.containsExpr("race_name"), text)
	}

	return q.Group("race_id", "race_name", "race_date", "distance").
		OrderExpr("race_date DESC, race_name ASC")
}

// likeOperator is the case-insensitive LIKE for the active dialect.
// SQLite's LIKE already ignores ASCII case.
func (s *Store) likeOperator() string {
	if s.db.Dialect().Name() == dialect.PG {
		return "ILIKE"
	}
	return "LIKE"
}

// containsExpr is a case-sensitive substring test on column with one
// placeholder for the needle. LIKE wildcards in the needle are not special.
func (s *Store) containsExpr(column string) string {
	if s.db.Dialect().Name() == dialect.PG {
		return "strpos(" + column + ", ?) > 0"
	}
	return "instr(" + column + ", ?) > 0"
}
