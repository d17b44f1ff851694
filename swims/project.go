package swims

import (
	"strings"
	"time"

	"github.com/ldmxd/oceanswimmer/models"
)

// RaceDateLayout renders dates as e.g. "05-Jan-2024" regardless of server locale.
const RaceDateLayout = "02-Jan-2006"

// Result is one swimmer's result as returned by the search endpoint.
// Nil fields are serialized as JSON null.
type Result struct {
	RaceID   int      `json:"raceId"`
	RaceName *string  `json:"raceName"`
	RaceDate *string  `json:"raceDate"`
	Distance *float64 `json:"distance"`
	RaceTime *string  `json:"raceTime"`
	Category *string  `json:"category"`
	Gender   *string  `json:"gender"`
	Forename *string  `json:"forename"`
	Surname  *string  `json:"surname"`
	FullName *string  `json:"fullName"`

	OverallPosition     *int     `json:"overallPosition"`
	OverallCompetitors  *int     `json:"overallCompetitors"`
	OverallPercentile   *float64 `json:"overallPercentile"`
	GenderPosition      *int     `json:"genderPosition"`
	GenderCompetitors   *int     `json:"genderCompetitors"`
	GenderPercentile    *float64 `json:"genderPercentile"`
	CategoryPosition    *int     `json:"categoryPosition"`
	CategoryCompetitors *int     `json:"categoryCompetitors"`
	CategoryPercentile  *float64 `json:"categoryPercentile"`
}

// Race is one race with the number of results recorded for it.
type Race struct {
	RaceID      int      `json:"raceId"`
	RaceName    *string  `json:"raceName"`
	RaceDate    *string  `json:"raceDate"`
	Distance    *float64 `json:"distance"`
	ResultCount int      `json:"resultCount"`
}

// SearchPage is the search response envelope. Count is always len(Results);
// HasMore reports whether the next page has at least one row.
type SearchPage struct {
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
	Count    int      `json:"count"`
	HasMore  bool     `json:"hasMore"`
	Results  []Result `json:"results"`
}

// ProjectResult maps a scanned view row to its API record.
func ProjectResult(row *models.ResultRow) Result {
	return Result{
		RaceID:              row.RaceID,
		RaceName:            row.RaceName,
		RaceDate:            FormatRaceDate(row.RaceDate),
		Distance:            row.Distance,
		RaceTime:            row.RaceTime,
		Category:            row.Category,
		Gender:              NormalizeGender(row.Gender),
		Forename:            row.Forename,
		Surname:             row.Surname,
		FullName:            row.FullName,
		OverallPosition:     row.OverallPosition,
		OverallCompetitors:  row.OverallCompetitors,
		OverallPercentile:   row.OverallPercentile,
		GenderPosition:      row.GenderPosition,
		GenderCompetitors:   row.GenderCompetitors,
		GenderPercentile:    row.GenderPercentile,
		CategoryPosition:    row.CategoryPosition,
		CategoryCompetitors: row.CategoryCompetitors,
		CategoryPercentile:  row.CategoryPercentile,
	}
}

// ProjectRace maps an aggregated race row to its API record.
func ProjectRace(row *models.RaceRow) Race {
	return Race{
		RaceID:      row.RaceID,
		RaceName:    row.RaceName,
		RaceDate:    FormatRaceDate(row.RaceDate),
		Distance:    row.Distance,
		ResultCount: row.ResultCount,
	}
}

// NormalizeGender expands gender codes by case-insensitive prefix: M… is
// "Male", F… is "Female". Other values pass through; nil stays nil.
func NormalizeGender(g *string) *string {
	if g == nil {
		return nil
	}

	var out string
	switch {
	case strings.HasPrefix(strings.ToUpper(*g), "M"):
		out = "Male"
	case strings.HasPrefix(strings.ToUpper(*g), "F"):
		out = "Female"
	default:
		out = *g
	}
	return &out
}

// FormatRaceDate renders t with RaceDateLayout; nil stays nil.
func FormatRaceDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(RaceDateLayout)
	return &s
}
