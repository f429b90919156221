package permits

import (
	"fmt"
	"time"

	"permit-dashboard/internal/model"
)

// ------------------- Dashboard Builder -------------------

// Options carries the dashboard's truncation presets.
type Options struct {
	JurisdictionLimit int // counties kept in the full breakdown and value charts
	TopAduLimit       int // counties kept in the ADU leaderboards
}

// DefaultOptions are the limits the rendering layer was built against.
func DefaultOptions() Options {
	return Options{JurisdictionLimit: 15, TopAduLimit: 8}
}

func (o Options) normalize() Options {
	d := DefaultOptions()
	if o.JurisdictionLimit <= 0 {
		o.JurisdictionLimit = d.JurisdictionLimit
	}
	if o.TopAduLimit <= 0 {
		o.TopAduLimit = d.TopAduLimit
	}
	return o
}

// BuildDashboard computes every derived series plus the trend overviews in
// one pass over the snapshot. The output is fresh on every call; a caller
// that recomputes simply replaces the previous dashboard wholesale.
func BuildDashboard(records []model.PermitRecord, opts Options) (model.Dashboard, model.ComputeMetrics) {
	start := time.Now()
	opts = opts.normalize()

	d := model.Dashboard{
		UnitsByYear:         UnitsByYear(records),
		AduPercentageByYear: AduPercentageByYear(records),
		UnitsByJurisdiction: UnitsByJurisdiction(records, model.JurisdictionOptions{
			SortKey: model.SortByTotal,
			Limit:   opts.JurisdictionLimit,
		}),
		TopAduJurisdictions: UnitsByJurisdiction(records, model.JurisdictionOptions{
			SortKey: model.SortByAduCount,
			Limit:   opts.TopAduLimit,
		}),
		JobValueByYear: JobValueByYear(records),
		JobValueByCounty: JobValueByCounty(records, model.CountyValueOptions{
			AduOnly: false,
			Limit:   opts.JurisdictionLimit,
		}),
		AduJobValueByCounty: JobValueByCounty(records, model.CountyValueOptions{
			AduOnly: true,
			Limit:   opts.TopAduLimit,
		}),
		AverageAduJobValueByYear: AverageAduJobValueByYear(records),
		AduJobValueShareByYear:   AduJobValuePercentageByYear(records),
	}

	d.AduUnitsTrend = TrendOf(yearlyValues(d.UnitsByYear, func(u model.YearlyUnits) float64 {
		return float64(u.ADU)
	}))
	d.AduShareTrend = TrendOf(yearlyValues(d.AduPercentageByYear, func(s model.YearlyAduShare) float64 {
		return float64(s.AduPercentage)
	}))
	d.AduJobValueTrend = TrendOf(yearlyValues(d.AverageAduJobValueByYear, func(v model.YearlyAduJobValue) float64 {
		return float64(v.AvgValue)
	}))

	metrics := snapshotMetrics(records)
	metrics.SeriesRowCounts = map[string]int{
		"unitsByYear":              len(d.UnitsByYear),
		"aduPercentageByYear":      len(d.AduPercentageByYear),
		"unitsByJurisdiction":      len(d.UnitsByJurisdiction),
		"topAduJurisdictions":      len(d.TopAduJurisdictions),
		"jobValueByYear":           len(d.JobValueByYear),
		"jobValueByCounty":         len(d.JobValueByCounty),
		"aduJobValueByCounty":      len(d.AduJobValueByCounty),
		"averageAduJobValueByYear": len(d.AverageAduJobValueByYear),
		"aduJobValueShareByYear":   len(d.AduJobValueShareByYear),
	}
	metrics.Duration = time.Since(start)
	metrics.ComputedAt = time.Now().UTC()

	fmt.Printf("📊 Dashboard built: %d records, %d years, %d counties in %v\n",
		metrics.TotalRecords, len(d.UnitsByYear), len(d.UnitsByJurisdiction), metrics.Duration)

	return d, metrics
}

func yearlyValues[T any](series []T, value func(T) float64) []float64 {
	values := make([]float64, 0, len(series))
	for _, s := range series {
		values = append(values, value(s))
	}
	return values
}

func snapshotMetrics(records []model.PermitRecord) model.ComputeMetrics {
	m := model.ComputeMetrics{TotalRecords: len(records)}
	for _, r := range records {
		if !r.HasYear() {
			m.MissingYear++
		}
		if !r.HasCounty() {
			m.MissingCounty++
		}
		if !r.Classification.Recognized() {
			m.Unclassified++
		}
		if !r.HasJobValue() {
			m.WithoutJobValue++
		}
	}
	return m
}
