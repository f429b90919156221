package permits

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"permit-dashboard/internal/model"
)

func rec(year int, county string, class model.Classification, jobValue float64) model.PermitRecord {
	return model.PermitRecord{Year: year, County: county, Classification: class, JobValue: jobValue}
}

func TestUnitsByYear(t *testing.T) {
	records := []model.PermitRecord{
		rec(2021, "Alameda", model.ClassificationNonADU, 0),
		rec(2020, "Alameda", model.ClassificationADU, 200000),
		rec(2020, "Orange", model.ClassificationADU, 150000),
		rec(2020, "Orange", model.ClassificationPotentialADU, 0),
		rec(2021, "Orange", model.ClassificationADU, 90000),
	}

	series := UnitsByYear(records)

	require.Len(t, series, 2)
	assert.Equal(t, model.YearlyUnits{Year: 2020, ADU: 2, NonADU: 0, PotentialADU: 1}, series[0])
	assert.Equal(t, model.YearlyUnits{Year: 2021, ADU: 1, NonADU: 1, PotentialADU: 0}, series[1])
}

func TestUnitsByYearOrdersYearsNumerically(t *testing.T) {
	records := []model.PermitRecord{
		rec(2023, "Alameda", model.ClassificationADU, 0),
		rec(2009, "Alameda", model.ClassificationADU, 0),
		rec(2021, "Alameda", model.ClassificationADU, 0),
	}

	series := UnitsByYear(records)

	require.Len(t, series, 3)
	assert.Equal(t, []int{2009, 2021, 2023}, []int{series[0].Year, series[1].Year, series[2].Year})
}

func TestUnitsByYearExcludesMalformedRecords(t *testing.T) {
	records := []model.PermitRecord{
		rec(0, "Alameda", model.ClassificationADU, 100000),       // no year
		rec(2020, "Alameda", model.ClassificationUnknown, 50000), // unrecognized classification
		rec(2020, "Alameda", model.ClassificationADU, 100000),
	}

	series := UnitsByYear(records)

	require.Len(t, series, 1)
	assert.Equal(t, model.YearlyUnits{Year: 2020, ADU: 1}, series[0])
}

func TestUnitsByYearDropsYearsWithOnlyUnrecognizedClassifications(t *testing.T) {
	records := []model.PermitRecord{
		rec(2019, "Alameda", model.ClassificationUnknown, 100000),
	}

	assert.Empty(t, UnitsByYear(records))
}

func TestUnitsByYearCountsMatchRecognizedRecords(t *testing.T) {
	records := SampleRecords()

	perYear := make(map[int]int)
	for _, r := range records {
		if r.HasYear() && r.Classification.Recognized() {
			perYear[r.Year]++
		}
	}

	for _, u := range UnitsByYear(records) {
		assert.Equal(t, perYear[u.Year], u.Total(), "year %d", u.Year)
	}
}

func TestAduPercentageByYear(t *testing.T) {
	records := []model.PermitRecord{
		rec(2020, "Alameda", model.ClassificationADU, 0),
		rec(2020, "Alameda", model.ClassificationNonADU, 0),
		rec(2020, "Alameda", model.ClassificationNonADU, 0),
		rec(2021, "Alameda", model.ClassificationADU, 0),
	}

	series := AduPercentageByYear(records)

	require.Len(t, series, 2)
	assert.Equal(t, model.YearlyAduShare{Year: 2020, AduPercentage: 33}, series[0])
	assert.Equal(t, model.YearlyAduShare{Year: 2021, AduPercentage: 100}, series[1])
}

func TestUnitsByJurisdictionSortedByTotal(t *testing.T) {
	records := []model.PermitRecord{
		rec(2020, "Alameda", model.ClassificationADU, 0),
		rec(2020, "Alameda", model.ClassificationNonADU, 0),
		rec(2020, "Alameda", model.ClassificationUnknown, 0), // counts toward total only
		rec(2020, "Orange", model.ClassificationADU, 0),
		rec(2020, "Orange", model.ClassificationADU, 0),
	}

	series := UnitsByJurisdiction(records, model.JurisdictionOptions{SortKey: model.SortByTotal, Limit: 15})

	require.Len(t, series, 2)
	assert.Equal(t, model.JurisdictionUnits{County: "Alameda", ADU: 1, NonADU: 1, Total: 3}, series[0])
	assert.Equal(t, model.JurisdictionUnits{County: "Orange", ADU: 2, Total: 2}, series[1])
}

func TestUnitsByJurisdictionSortedByAduCount(t *testing.T) {
	records := []model.PermitRecord{
		rec(2020, "Alameda", model.ClassificationNonADU, 0),
		rec(2020, "Alameda", model.ClassificationNonADU, 0),
		rec(2020, "Alameda", model.ClassificationNonADU, 0),
		rec(2020, "Orange", model.ClassificationADU, 0),
	}

	series := UnitsByJurisdiction(records, model.JurisdictionOptions{SortKey: model.SortByAduCount, Limit: 8})

	require.Len(t, series, 2)
	assert.Equal(t, "Orange", series[0].County)
	assert.Equal(t, "Alameda", series[1].County)
}

func TestUnitsByJurisdictionLimitAndOrdering(t *testing.T) {
	records := SampleRecords()

	for _, tc := range []struct {
		opts model.JurisdictionOptions
	}{
		{model.JurisdictionOptions{SortKey: model.SortByTotal, Limit: 15}},
		{model.JurisdictionOptions{SortKey: model.SortByAduCount, Limit: 8}},
	} {
		series := UnitsByJurisdiction(records, tc.opts)
		assert.LessOrEqual(t, len(series), tc.opts.Limit)

		key := func(u model.JurisdictionUnits) int {
			if tc.opts.SortKey == model.SortByAduCount {
				return u.ADU
			}
			return u.Total
		}
		for i := 1; i < len(series); i++ {
			assert.GreaterOrEqual(t, key(series[i-1]), key(series[i]))
		}
	}
}

func TestUnitsByJurisdictionExcludesMissingCounty(t *testing.T) {
	records := []model.PermitRecord{
		rec(2020, "", model.ClassificationADU, 100000),
	}

	assert.Empty(t, UnitsByJurisdiction(records, model.JurisdictionOptions{}))
}

func TestJobValueByYear(t *testing.T) {
	records := []model.PermitRecord{
		rec(2020, "Alameda", model.ClassificationADU, 200000),
		rec(2020, "Alameda", model.ClassificationADU, 100000),
		rec(2020, "Alameda", model.ClassificationNonADU, 500000),
		rec(2021, "Alameda", model.ClassificationNonADU, 300000),
	}

	series := JobValueByYear(records)

	require.Len(t, series, 2)

	require.NotNil(t, series[0].ADU)
	assert.Equal(t, 150, *series[0].ADU) // (200000+100000)/2/1000
	require.NotNil(t, series[0].NonADU)
	assert.Equal(t, 500, *series[0].NonADU)
	// POTENTIAL_ADU_CONVERSION never contributed, so the key is absent.
	assert.Nil(t, series[0].PotentialADU)

	// ADU contributed in 2020 but not 2021: reported as 0, not omitted.
	require.NotNil(t, series[1].ADU)
	assert.Equal(t, 0, *series[1].ADU)
	require.NotNil(t, series[1].NonADU)
	assert.Equal(t, 300, *series[1].NonADU)
}

func TestJobValueByYearWireShape(t *testing.T) {
	records := []model.PermitRecord{
		rec(2020, "Alameda", model.ClassificationADU, 200000),
	}

	data, err := json.Marshal(JobValueByYear(records))
	require.NoError(t, err)

	assert.JSONEq(t, `[{"year":2020,"ADU":200}]`, string(data))
}

func TestJobValueByYearSkipsYearsWithoutContributingValues(t *testing.T) {
	records := []model.PermitRecord{
		rec(2019, "Alameda", model.ClassificationADU, 0), // truthiness rule: zero never contributes
		rec(2020, "Alameda", model.ClassificationADU, 80000),
	}

	series := JobValueByYear(records)

	require.Len(t, series, 1)
	assert.Equal(t, 2020, series[0].Year)
}

func TestJobValueByCounty(t *testing.T) {
	records := []model.PermitRecord{
		rec(2020, "Alameda", model.ClassificationADU, 100000),
		rec(2020, "Alameda", model.ClassificationNonADU, 500000),
		rec(2020, "Orange", model.ClassificationNonADU, 900000),
	}

	series := JobValueByCounty(records, model.CountyValueOptions{Limit: 15})

	require.Len(t, series, 2)
	assert.Equal(t, model.CountyJobValue{County: "Orange", AvgValue: 900, Count: 1}, series[0])
	assert.Equal(t, model.CountyJobValue{County: "Alameda", AvgValue: 300, Count: 2}, series[1])
}

func TestJobValueByCountyAduOnly(t *testing.T) {
	records := []model.PermitRecord{
		rec(2020, "Alameda", model.ClassificationADU, 100000),
		rec(2020, "Alameda", model.ClassificationNonADU, 900000),
		rec(2020, "Orange", model.ClassificationNonADU, 900000), // no ADU permits at all
	}

	series := JobValueByCounty(records, model.CountyValueOptions{AduOnly: true, Limit: 8})

	require.Len(t, series, 1)
	assert.Equal(t, model.CountyJobValue{County: "Alameda", AvgValue: 100, Count: 1}, series[0])
}

func TestJobValueByCountyExcludesZeroJobValues(t *testing.T) {
	records := []model.PermitRecord{
		rec(2020, "Alameda", model.ClassificationADU, 0), // dropped from sum and count
		rec(2020, "Alameda", model.ClassificationADU, 100000),
	}

	series := JobValueByCounty(records, model.CountyValueOptions{AduOnly: true})

	require.Len(t, series, 1)
	assert.Equal(t, 100, series[0].AvgValue)
	assert.Equal(t, 1, series[0].Count)
}

func TestAverageAduJobValueByYear(t *testing.T) {
	records := []model.PermitRecord{
		rec(2020, "Alameda", model.ClassificationADU, 200000),
		rec(2020, "Orange", model.ClassificationADU, 100000),
		rec(2021, "Alameda", model.ClassificationADU, 0),       // excluded from sum and count
		rec(2021, "Alameda", model.ClassificationNonADU, 5000), // not ADU
	}

	series := AverageAduJobValueByYear(records)

	require.Len(t, series, 1)
	assert.Equal(t, model.YearlyAduJobValue{Year: 2020, AvgValue: 150, Count: 2}, series[0])
}

func TestAduJobValuePercentageByYear(t *testing.T) {
	records := []model.PermitRecord{
		rec(2020, "Alameda", model.ClassificationADU, 200000),
		rec(2020, "Alameda", model.ClassificationNonADU, 100000),
		rec(2021, "Alameda", model.ClassificationNonADU, 0), // zero denominator
	}

	series := AduJobValuePercentageByYear(records)

	require.Len(t, series, 2)
	assert.Equal(t, model.YearlyAduValueShare{Year: 2020, AduJobValuePercentage: 67}, series[0])
	assert.Equal(t, model.YearlyAduValueShare{Year: 2021, AduJobValuePercentage: 0}, series[1])
}

func TestTrendOf(t *testing.T) {
	for _, tc := range []struct {
		name   string
		values []float64
		want   model.TrendSummary
	}{
		{"empty", nil, model.TrendSummary{}},
		{"single point", []float64{42}, model.TrendSummary{Latest: 42, Trend: 0}},
		{"rising", []float64{10, 25}, model.TrendSummary{Latest: 25, Trend: 15}},
		{"falling", []float64{10, 25, 18}, model.TrendSummary{Latest: 18, Trend: -7}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TrendOf(tc.values))
		})
	}
}

// The worked dashboard scenario: two Alameda permits in 2020.
func TestDashboardScenario(t *testing.T) {
	records := []model.PermitRecord{
		rec(2020, "Alameda", model.ClassificationADU, 200000),
		rec(2020, "Alameda", model.ClassificationNonADU, 100000),
	}

	units := UnitsByYear(records)
	require.Len(t, units, 1)
	assert.Equal(t, model.YearlyUnits{Year: 2020, ADU: 1, NonADU: 1, PotentialADU: 0}, units[0])

	share := AduPercentageByYear(records)
	require.Len(t, share, 1)
	assert.Equal(t, model.YearlyAduShare{Year: 2020, AduPercentage: 50}, share[0])

	values := JobValueByYear(records)
	require.Len(t, values, 1)
	require.NotNil(t, values[0].ADU)
	assert.Equal(t, 200, *values[0].ADU)

	valueShare := AduJobValuePercentageByYear(records)
	require.Len(t, valueShare, 1)
	assert.Equal(t, 67, valueShare[0].AduJobValuePercentage) // 200000/300000*100 rounded
}

func TestEmptyInputProducesEmptySeries(t *testing.T) {
	var records []model.PermitRecord

	assert.Empty(t, UnitsByYear(records))
	assert.Empty(t, AduPercentageByYear(records))
	assert.Empty(t, UnitsByJurisdiction(records, model.JurisdictionOptions{}))
	assert.Empty(t, JobValueByYear(records))
	assert.Empty(t, JobValueByCounty(records, model.CountyValueOptions{}))
	assert.Empty(t, AverageAduJobValueByYear(records))
	assert.Empty(t, AduJobValuePercentageByYear(records))
	assert.Equal(t, model.TrendSummary{}, TrendOf(nil))
}

// Two invocations over the same snapshot must serialize byte-for-byte
// identically: ordering is always explicit, never map iteration order.
func TestSeriesIdempotence(t *testing.T) {
	records := SampleRecords()

	marshal := func() []byte {
		d, _ := BuildDashboard(records, Options{})
		data, err := json.Marshal(d)
		require.NoError(t, err)
		return data
	}

	assert.Equal(t, marshal(), marshal())
}
