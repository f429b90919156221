package permits

import (
	"sort"

	"permit-dashboard/internal/model"
	"permit-dashboard/pkg/utils"
)

// ------------------- Derived Series -------------------
// Each operation is a pure, total function over an immutable snapshot:
// malformed records are excluded per-field rather than rejected, and an
// empty snapshot produces an empty series, never an error.

// UnitsByYear counts permits per classification for each year that has at
// least one record carrying both a year and a recognized classification.
// Years ascend numerically.
func UnitsByYear(records []model.PermitRecord) []model.YearlyUnits {
	groups := groupBy(records, func(r model.PermitRecord) (int, bool) {
		return r.Year, r.HasYear() && r.Classification.Recognized()
	})

	series := make([]model.YearlyUnits, 0, len(groups))
	for _, year := range sortedKeys(groups) {
		b := groups[year]
		series = append(series, model.YearlyUnits{
			Year:         year,
			ADU:          b.count(model.ClassificationADU),
			NonADU:       b.count(model.ClassificationNonADU),
			PotentialADU: b.count(model.ClassificationPotentialADU),
		})
	}
	return series
}

// AduPercentageByYear derives the ADU share of recognized permits per year.
func AduPercentageByYear(records []model.PermitRecord) []model.YearlyAduShare {
	units := UnitsByYear(records)

	series := make([]model.YearlyAduShare, 0, len(units))
	for _, u := range units {
		series = append(series, model.YearlyAduShare{
			Year:          u.Year,
			AduPercentage: percent(float64(u.ADU), float64(u.Total())),
		})
	}
	return series
}

// UnitsByJurisdiction counts permits per county, sorted descending by the
// configured key and truncated to the configured limit. Total counts every
// record in the county; the classification columns count only recognized
// ones.
func UnitsByJurisdiction(records []model.PermitRecord, opts model.JurisdictionOptions) []model.JurisdictionUnits {
	groups := groupBy(records, byCounty)

	series := make([]model.JurisdictionUnits, 0, len(groups))
	for _, county := range sortedKeys(groups) {
		b := groups[county]
		series = append(series, model.JurisdictionUnits{
			County:       county,
			ADU:          b.count(model.ClassificationADU),
			NonADU:       b.count(model.ClassificationNonADU),
			PotentialADU: b.count(model.ClassificationPotentialADU),
			Total:        b.total,
		})
	}

	key := func(u model.JurisdictionUnits) int { return u.Total }
	if opts.SortKey == model.SortByAduCount {
		key = func(u model.JurisdictionUnits) int { return u.ADU }
	}
	sort.Slice(series, func(i, j int) bool {
		if key(series[i]) != key(series[j]) {
			return key(series[i]) > key(series[j])
		}
		return series[i].County < series[j].County // deterministic tie-break
	})

	return truncate(series, opts.Limit)
}

// JobValueByYear reports the average job value per (year, classification)
// pair, in thousands. A year appears once any classification contributed in
// it; a classification column appears once it contributed in any year, and
// reads 0 for years where only the other classifications had data.
func JobValueByYear(records []model.PermitRecord) []model.YearlyJobValue {
	groups := groupBy(records, byYear)

	classes := []model.Classification{
		model.ClassificationADU,
		model.ClassificationNonADU,
		model.ClassificationPotentialADU,
	}

	// Which classifications contributed anywhere at all.
	seen := make(map[model.Classification]bool)
	for _, b := range groups {
		for _, c := range classes {
			if b.valueCounts[c] > 0 {
				seen[c] = true
			}
		}
	}

	series := make([]model.YearlyJobValue, 0, len(groups))
	for _, year := range sortedKeys(groups) {
		b := groups[year]
		if b.valueCounts[model.ClassificationADU]+
			b.valueCounts[model.ClassificationNonADU]+
			b.valueCounts[model.ClassificationPotentialADU] == 0 {
			continue
		}

		row := model.YearlyJobValue{Year: year}
		for _, c := range classes {
			if !seen[c] {
				continue
			}
			avg, _ := b.avgThousands(c) // 0 when the year has no data for c
			v := avg
			switch c {
			case model.ClassificationADU:
				row.ADU = &v
			case model.ClassificationNonADU:
				row.NonADU = &v
			case model.ClassificationPotentialADU:
				row.PotentialADU = &v
			}
		}
		series = append(series, row)
	}
	return series
}

// JobValueByCounty reports the average job value per county in thousands,
// optionally restricted to ADU permits, sorted descending by average and
// truncated. Counties with no contributing records are excluded.
func JobValueByCounty(records []model.PermitRecord, opts model.CountyValueOptions) []model.CountyJobValue {
	groups := groupBy(records, byCounty)

	series := make([]model.CountyJobValue, 0, len(groups))
	for _, county := range sortedKeys(groups) {
		b := groups[county]

		var avg, count int
		if opts.AduOnly {
			v, ok := b.avgThousands(model.ClassificationADU)
			if !ok {
				continue
			}
			avg, count = v, b.valueCounts[model.ClassificationADU]
		} else {
			v, n, ok := b.avgThousandsAll()
			if !ok {
				continue
			}
			avg, count = v, n
		}

		series = append(series, model.CountyJobValue{County: county, AvgValue: avg, Count: count})
	}

	sort.Slice(series, func(i, j int) bool {
		if series[i].AvgValue != series[j].AvgValue {
			return series[i].AvgValue > series[j].AvgValue
		}
		return series[i].County < series[j].County
	})

	return truncate(series, opts.Limit)
}

// AverageAduJobValueByYear reports the average ADU job value per year in
// thousands, with the count of contributing permits. Ascending year order.
func AverageAduJobValueByYear(records []model.PermitRecord) []model.YearlyAduJobValue {
	groups := groupBy(records, byYear)

	series := make([]model.YearlyAduJobValue, 0, len(groups))
	for _, year := range sortedKeys(groups) {
		b := groups[year]
		avg, ok := b.avgThousands(model.ClassificationADU)
		if !ok {
			continue
		}
		series = append(series, model.YearlyAduJobValue{
			Year:     year,
			AvgValue: avg,
			Count:    b.valueCounts[model.ClassificationADU],
		})
	}
	return series
}

// AduJobValuePercentageByYear reports, per year, the ADU share of the total
// job value across all classifications. Years with no job value at all read
// 0 rather than dividing by zero.
func AduJobValuePercentageByYear(records []model.PermitRecord) []model.YearlyAduValueShare {
	groups := groupBy(records, byYear)

	series := make([]model.YearlyAduValueShare, 0, len(groups))
	for _, year := range sortedKeys(groups) {
		b := groups[year]
		series = append(series, model.YearlyAduValueShare{
			Year:                  year,
			AduJobValuePercentage: percent(b.sums[model.ClassificationADU], b.sumAll),
		})
	}
	return series
}

// TrendOf summarizes any ordered per-year series: the latest value, and the
// difference between the last two points. Series shorter than two points
// have a trend of 0; an empty series reads 0 for both.
func TrendOf(values []float64) model.TrendSummary {
	s := model.TrendSummary{}
	if len(values) == 0 {
		return s
	}
	s.Latest = values[len(values)-1]
	if len(values) >= 2 {
		s.Trend = values[len(values)-1] - values[len(values)-2]
	}
	return s
}

func percent(part, whole float64) int {
	if whole == 0 {
		return 0
	}
	return utils.RoundInt(part / whole * 100)
}

func truncate[T any](series []T, limit int) []T {
	if limit > 0 && len(series) > limit {
		return series[:limit]
	}
	return series
}
