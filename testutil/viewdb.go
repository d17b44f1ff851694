// Package testutil provides an in-memory SQLite stand-in for the results view.
package testutil

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"
)

// queryTimeout bounds each test's queries against the view.
const queryTimeout = 5 * time.Second

// View is the table name tests seed; it matches the default configured view.
const View = "vw_oceanswims_search"

// ViewRow is one row of the results view including the search-only columns.
type ViewRow struct {
	bun.BaseModel `bun:"table:vw_oceanswims_search"`

	RaceID         int      `bun:"race_id,notnull"`
	RaceName       *string  `bun:"race_name"`
	RaceDate       *string  `bun:"race_date,type:text"`
	Distance       *float64 `bun:"distance"`
	RaceTime       *string  `bun:"race_time"`
	Category       *string  `bun:"category"`
	Gender         *string  `bun:"gender"`
	Forename       *string  `bun:"forename"`
	Surname        *string  `bun:"surname"`
	FullName       *string  `bun:"full_name"`
	ForenameSearch *string  `bun:"forename_search"`
	SurnameSearch  *string  `bun:"surname_search"`

	OverallPosition     *int     `bun:"overall_position"`
	OverallCompetitors  *int     `bun:"overall_competitors"`
	OverallPercentile   *float64 `bun:"overall_percentile"`
	GenderPosition      *int     `bun:"gender_position"`
	GenderCompetitors   *int     `bun:"gender_competitors"`
	GenderPercentile    *float64 `bun:"gender_percentile"`
	CategoryPosition    *int     `bun:"category_position"`
	CategoryCompetitors *int     `bun:"category_competitors"`
	CategoryPercentile  *float64 `bun:"category_percentile"`
}

// NewViewDB opens an in-memory SQLite database with an empty results view table.
func NewViewDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.NewCreateTable().Model((*ViewRow)(nil)).Exec(NewTestContext(t))
	require.NoError(t, err)

	return db
}

// Seed inserts rows into the view table.
func Seed(t *testing.T, db *bun.DB, rows ...ViewRow) {
	t.Helper()

	if len(rows) == 0 {
		return
	}
	_, err := db.NewInsert().Model(&rows).Exec(NewTestContext(t))
	require.NoError(t, err)
}

// Swim builds a fully populated male open-category result. The search
// columns are upper-cased the way the upstream view maintains them.
func Swim(raceID int, race, date, forename, surname string, overall int) ViewRow {
	return ViewRow{
		RaceID:             raceID,
		RaceName:           Str(race),
		RaceDate:           Str(date),
		Distance:           Float(1.0),
		RaceTime:           Str("00:21:34"),
		Category:           Str("Open"),
		Gender:             Str("M"),
		Forename:           Str(forename),
		Surname:            Str(surname),
		FullName:           Str(forename + " " + surname),
		ForenameSearch:     Str(strings.ToUpper(forename)),
		SurnameSearch:      Str(strings.ToUpper(surname)),
		OverallPosition:    Int(overall),
		OverallCompetitors: Int(100),
		OverallPercentile:  Float(float64(overall)),
	}
}

// Str returns a pointer to s.
func Str(s string) *string { return &s }

// Int returns a pointer to i.
func Int(i int) *int { return &i }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }

// NewTestContext is scoped to t and gives up on queries after queryTimeout.
func NewTestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(t.Context(), queryTimeout)
	t.Cleanup(cancel)
	return ctx
}
