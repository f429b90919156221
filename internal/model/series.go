package model

// Series field names below are the wire contract with the chart renderer.
// The JSON keys — year, county, ADU, NON_ADU, POTENTIAL_ADU_CONVERSION,
// aduPercentage, avgValue, count, total, aduJobValuePercentage — must stay
// exactly as they are for drop-in compatibility.

// YearlyUnits counts permits per classification for one year.
type YearlyUnits struct {
	Year         int `json:"year"`
	ADU          int `json:"ADU"`
	NonADU       int `json:"NON_ADU"`
	PotentialADU int `json:"POTENTIAL_ADU_CONVERSION"`
}

// Total is the number of recognized-classification permits in the year.
func (u YearlyUnits) Total() int { return u.ADU + u.NonADU + u.PotentialADU }

// YearlyAduShare is the ADU share of recognized permits for one year.
type YearlyAduShare struct {
	Year          int `json:"year"`
	AduPercentage int `json:"aduPercentage"`
}

// JurisdictionUnits counts permits per classification for one county.
// Total counts every permit in the county, recognized classification or not.
type JurisdictionUnits struct {
	County       string `json:"county"`
	ADU          int    `json:"ADU"`
	NonADU       int    `json:"NON_ADU"`
	PotentialADU int    `json:"POTENTIAL_ADU_CONVERSION"`
	Total        int    `json:"total"`
}

// YearlyJobValue is the average job value (in thousands) per classification
// for one year. A nil field means the classification never contributed in
// any year, so its key is left off the wire entirely; a classification that
// contributed elsewhere but not in this year is reported as 0.
type YearlyJobValue struct {
	Year         int  `json:"year"`
	ADU          *int `json:"ADU,omitempty"`
	NonADU       *int `json:"NON_ADU,omitempty"`
	PotentialADU *int `json:"POTENTIAL_ADU_CONVERSION,omitempty"`
}

// CountyJobValue is the average job value (in thousands) for one county.
type CountyJobValue struct {
	County   string `json:"county"`
	AvgValue int    `json:"avgValue"`
	Count    int    `json:"count"`
}

// YearlyAduJobValue is the average ADU job value (in thousands) for one year.
type YearlyAduJobValue struct {
	Year     int `json:"year"`
	AvgValue int `json:"avgValue"`
	Count    int `json:"count"`
}

// YearlyAduValueShare is the ADU share of total job value for one year.
type YearlyAduValueShare struct {
	Year                  int `json:"year"`
	AduJobValuePercentage int `json:"aduJobValuePercentage"`
}

// TrendSummary is the overview figure derived from any per-year series:
// the latest value, and its delta against the second-to-latest point.
type TrendSummary struct {
	Latest float64 `json:"latest"`
	Trend  float64 `json:"trend"`
}

// JurisdictionSortKey selects the descending sort column for
// jurisdiction-keyed series.
type JurisdictionSortKey string

const (
	SortByTotal    JurisdictionSortKey = "total"
	SortByAduCount JurisdictionSortKey = "aduCount"
)

// JurisdictionOptions parameterizes UnitsByJurisdiction.
// The dashboard presets are {total, 15} and {aduCount, 8}.
type JurisdictionOptions struct {
	SortKey JurisdictionSortKey `json:"sortKey"`
	Limit   int                 `json:"limit"`
}

// CountyValueOptions parameterizes JobValueByCounty.
// The dashboard presets are all-classifications/15 and ADU-only/8.
type CountyValueOptions struct {
	AduOnly bool `json:"aduOnly"`
	Limit   int  `json:"limit"`
}

// DashboardSummary carries just the overview trend figures.
type DashboardSummary struct {
	AduUnitsTrend    TrendSummary `json:"aduUnitsTrend"`
	AduShareTrend    TrendSummary `json:"aduShareTrend"`
	AduJobValueTrend TrendSummary `json:"aduJobValueTrend"`
}

// Dashboard is the full set of derived series plus their overview trends,
// produced fresh on every computation. Last write wins.
type Dashboard struct {
	UnitsByYear              []YearlyUnits         `json:"unitsByYear"`
	AduPercentageByYear      []YearlyAduShare      `json:"aduPercentageByYear"`
	UnitsByJurisdiction      []JurisdictionUnits   `json:"unitsByJurisdiction"`
	TopAduJurisdictions      []JurisdictionUnits   `json:"topAduJurisdictions"`
	JobValueByYear           []YearlyJobValue      `json:"jobValueByYear"`
	JobValueByCounty         []CountyJobValue      `json:"jobValueByCounty"`
	AduJobValueByCounty      []CountyJobValue      `json:"aduJobValueByCounty"`
	AverageAduJobValueByYear []YearlyAduJobValue   `json:"averageAduJobValueByYear"`
	AduJobValueShareByYear   []YearlyAduValueShare `json:"aduJobValueShareByYear"`

	AduUnitsTrend    TrendSummary `json:"aduUnitsTrend"`
	AduShareTrend    TrendSummary `json:"aduShareTrend"`
	AduJobValueTrend TrendSummary `json:"aduJobValueTrend"`
}
