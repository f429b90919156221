package permits

import (
	"context"
	"fmt"
	"time"

	"permit-dashboard/internal/model"
	"permit-dashboard/internal/store"
	"permit-dashboard/pkg/utils"
)

// ------------------- Computation Runner -------------------

// Run computes the dashboard for one dataset snapshot and persists the
// results: one JSON snapshot per series, the overview summary, compute
// metrics, and the export files. Snapshots replace whatever the previous
// computation stored — last write wins, no partial merges.
func Run(ctx context.Context, datasetID string, records []model.PermitRecord, opts Options, om *utils.OutputManager) (err error) {
	start := time.Now()
	fmt.Printf("🚀 Starting dashboard computation for dataset: %s\n", datasetID)

	store.UpdateDatasetStatus(datasetID, "computing")
	defer func() {
		if err != nil {
			store.UpdateDatasetStatus(datasetID, "failed")
			store.SaveDatasetError(datasetID, err)
		}
	}()

	if err = ctx.Err(); err != nil {
		return err
	}

	dashboard, metrics := BuildDashboard(records, opts)
	metrics.DatasetID = datasetID

	snapshots := []struct {
		name    string
		payload interface{}
	}{
		{"dashboard", dashboard},
		{"unitsByYear", dashboard.UnitsByYear},
		{"aduPercentageByYear", dashboard.AduPercentageByYear},
		{"unitsByJurisdiction", dashboard.UnitsByJurisdiction},
		{"topAduJurisdictions", dashboard.TopAduJurisdictions},
		{"jobValueByYear", dashboard.JobValueByYear},
		{"jobValueByCounty", dashboard.JobValueByCounty},
		{"aduJobValueByCounty", dashboard.AduJobValueByCounty},
		{"averageAduJobValueByYear", dashboard.AverageAduJobValueByYear},
		{"aduJobValueShareByYear", dashboard.AduJobValueShareByYear},
		{"summary", model.DashboardSummary{
			AduUnitsTrend:    dashboard.AduUnitsTrend,
			AduShareTrend:    dashboard.AduShareTrend,
			AduJobValueTrend: dashboard.AduJobValueTrend,
		}},
	}
	for _, s := range snapshots {
		if err = store.SaveSnapshot(datasetID, s.name, s.payload); err != nil {
			return fmt.Errorf("failed to save %s snapshot: %w", s.name, err)
		}
	}

	if err = store.SaveComputeMetrics(metrics); err != nil {
		return fmt.Errorf("failed to save compute metrics: %w", err)
	}

	if om != nil {
		ExportDashboard(datasetID, dashboard, om)
	}

	store.UpdateDatasetStatus(datasetID, "ready")
	fmt.Printf("🏁 Dashboard ready for dataset %s in %v\n", datasetID, time.Since(start))
	return nil
}

// SeriesNames lists the snapshot names Run persists, in storage order.
func SeriesNames() []string {
	return []string{
		"dashboard",
		"unitsByYear",
		"aduPercentageByYear",
		"unitsByJurisdiction",
		"topAduJurisdictions",
		"jobValueByYear",
		"jobValueByCounty",
		"aduJobValueByCounty",
		"averageAduJobValueByYear",
		"aduJobValueShareByYear",
		"summary",
	}
}
