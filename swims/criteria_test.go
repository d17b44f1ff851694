package swims

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestCriteriaNormalize_Pagination(t *testing.T) {
	tests := []struct {
		name         string
		criteria     Criteria
		wantPage     int
		wantPageSize int
		wantOffset   int
	}{
		{
			name:         "defaults",
			criteria:     Criteria{Page: 1, PageSize: DefaultPageSize},
			wantPage:     1,
			wantPageSize: 250,
			wantOffset:   0,
		},
		{
			name:         "zero page clamps to one",
			criteria:     Criteria{Page: 0, PageSize: 10},
			wantPage:     1,
			wantPageSize: 10,
			wantOffset:   0,
		},
		{
			name:         "negative page clamps to one",
			criteria:     Criteria{Page: -7, PageSize: 10},
			wantPage:     1,
			wantPageSize: 10,
			wantOffset:   0,
		},
		{
			name:         "offset follows page and size",
			criteria:     Criteria{Page: 3, PageSize: 20},
			wantPage:     3,
			wantPageSize: 20,
			wantOffset:   40,
		},
		{
			name:         "name search caps at 250",
			criteria:     Criteria{Page: 2, PageSize: 5000},
			wantPage:     2,
			wantPageSize: 250,
			wantOffset:   250,
		},
		{
			name:         "negative page size clamps to one",
			criteria:     Criteria{Page: 4, PageSize: -100},
			wantPage:     4,
			wantPageSize: 1,
			wantOffset:   3,
		},
		{
			name:         "race search allows large pages",
			criteria:     Criteria{RaceID: intPtr(7), Page: 1, PageSize: 5000},
			wantPage:     1,
			wantPageSize: 5000,
			wantOffset:   0,
		},
		{
			name:         "race search caps at 10000",
			criteria:     Criteria{RaceID: intPtr(7), Page: 1, PageSize: 20000},
			wantPage:     1,
			wantPageSize: 10000,
			wantOffset:   0,
		},
		{
			name:         "race search zero page size clamps to one",
			criteria:     Criteria{RaceID: intPtr(7), Page: 2, PageSize: 0},
			wantPage:     2,
			wantPageSize: 1,
			wantOffset:   1,
		},
		{
			name:         "huge page is capped before the offset overflows",
			criteria:     Criteria{Page: math.MaxInt, PageSize: 250},
			wantPage:     math.MaxInt / 250,
			wantPageSize: 250,
			wantOffset:   (math.MaxInt/250 - 1) * 250,
		},
		{
			name:         "huge page with page size one",
			criteria:     Criteria{Page: math.MaxInt, PageSize: 1},
			wantPage:     math.MaxInt,
			wantPageSize: 1,
			wantOffset:   math.MaxInt - 1,
		},
		{
			name:         "huge race scoped page",
			criteria:     Criteria{RaceID: intPtr(7), Page: math.MaxInt - 1, PageSize: 10000},
			wantPage:     math.MaxInt / 10000,
			wantPageSize: 10000,
			wantOffset:   (math.MaxInt/10000 - 1) * 10000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.criteria.Normalize()

			assert.GreaterOrEqual(t, f.Offset, 0)

			assert.Equal(t, tt.wantPage, f.Page)
			assert.Equal(t, tt.wantPageSize, f.PageSize)
			assert.Equal(t, tt.wantOffset, f.Offset)
			assert.Equal(t, (f.Page-1)*f.PageSize, f.Offset)
		})
	}
}

func TestCriteriaNormalize_BlankFiltersAreOmitted(t *testing.T) {
	for _, blank := range []string{"", " ", "\t\n "} {
		f := Criteria{
			Forename: blank,
			Surname:  blank,
			Category: blank,
			Gender:   blank,
			Page:     1,
			PageSize: 10,
		}.Normalize()

		assert.Nil(t, f.SurnamePattern, "surname %q", blank)
		assert.Nil(t, f.ForenamePattern, "forename %q", blank)
		assert.Nil(t, f.Category, "category %q", blank)
		assert.Nil(t, f.Gender, "gender %q", blank)
		assert.Nil(t, f.RaceID)
	}
}

func TestCriteriaNormalize_NamePatterns(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "trimmed and upper-cased", input: "  smith ", expected: "%SMITH%"},
		{name: "already upper", input: "SMITH", expected: "%SMITH%"},
		{name: "accents folded", input: "Ó Súilleabháin", expected: "%O SUILLEABHAIN%"},
		{name: "inner spaces kept", input: "van der berg", expected: "%VAN DER BERG%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Criteria{Surname: tt.input, Forename: tt.input, Page: 1, PageSize: 1}.Normalize()

			require.NotNil(t, f.SurnamePattern)
			require.NotNil(t, f.ForenamePattern)
			assert.Equal(t, tt.expected, *f.SurnamePattern)
			assert.Equal(t, tt.expected, *f.ForenamePattern)
		})
	}
}

func TestCriteriaNormalize_ExactFilters(t *testing.T) {
	f := Criteria{Category: " 40-49 ", Gender: "F", RaceID: intPtr(12), Page: 1, PageSize: 1}.Normalize()

	require.NotNil(t, f.Category)
	require.NotNil(t, f.Gender)
	require.NotNil(t, f.RaceID)
	assert.Equal(t, "40-49", *f.Category)
	assert.Equal(t, "F", *f.Gender)
	assert.Equal(t, 12, *f.RaceID)
}

func TestCriteriaNormalize_RaceParamIgnored(t *testing.T) {
	with := Criteria{Race: "Bondi", Page: 1, PageSize: 10}.Normalize()
	without := Criteria{Page: 1, PageSize: 10}.Normalize()

	assert.Equal(t, without, with)
}

func TestFoldAccents(t *testing.T) {
	assert.Equal(t, "Zoe", FoldAccents("Zoë"))
	assert.Equal(t, "Francois", FoldAccents("François"))
	assert.Equal(t, "plain", FoldAccents("plain"))
}
