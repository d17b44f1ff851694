package models

import "time"

// ResultRow is the flat scan target for one row of the results view.
// Every column other than race_id is nullable upstream.
type ResultRow struct {
	RaceID   int        `bun:"race_id"`
	RaceName *string    `bun:"race_name"`
	RaceDate *time.Time `bun:"race_date"`
	Distance *float64   `bun:"distance"`
	RaceTime *string    `bun:"race_time"`
	Category *string    `bun:"category"`
	Gender   *string    `bun:"gender"`
	Forename *string    `bun:"forename"`
	Surname  *string    `bun:"surname"`
	FullName *string    `bun:"full_name"`

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

// ResultColumns lists the view columns selected into a ResultRow, in scan order.
var ResultColumns = []string{
	"race_id", "race_name", "race_date", "distance", "race_time",
	"category", "gender", "forename", "surname", "full_name",
	"overall_position", "overall_competitors", "overall_percentile",
	"gender_position", "gender_competitors", "gender_percentile",
	"category_position", "category_competitors", "category_percentile",
}
