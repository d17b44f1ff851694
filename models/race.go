package models

import "time"

// RaceRow is one race aggregated from the results view.
type RaceRow struct {
	RaceID      int        `bun:"race_id"`
	RaceName    *string    `bun:"race_name"`
	RaceDate    *time.Time `bun:"race_date"`
	Distance    *float64   `bun:"distance"`
	ResultCount int        `bun:"result_count"`
}
