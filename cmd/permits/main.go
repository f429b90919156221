package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"permit-dashboard/internal/config"
	"permit-dashboard/internal/model"
	"permit-dashboard/internal/permits"
	"permit-dashboard/pkg/utils"
)

// Loads a permit CSV (sample data when unavailable), builds the dashboard,
// prints the overview, and writes the export files.
func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	path := cfg.DataPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	records, source := permits.LoadOrSample(context.Background(), path)

	dashboard, metrics := permits.BuildDashboard(records, permits.Options{
		JurisdictionLimit: cfg.JurisdictionLimit,
		TopAduLimit:       cfg.TopAduLimit,
	})

	fmt.Printf("\n📈 Permit dashboard for %s (%d records)\n", source, metrics.TotalRecords)
	printYearOverview(dashboard)
	printTrend("ADU permits", dashboard.AduUnitsTrend)
	printTrend("ADU share (%)", dashboard.AduShareTrend)
	printTrend("ADU job value (k)", dashboard.AduJobValueTrend)

	om := utils.NewOutputManager(cfg.OutputDir)
	results := permits.ExportDashboard(uuid.New().String(), dashboard, om)
	for _, r := range results {
		if !r.Success {
			fmt.Printf("❌ Export failed (%s): %s\n", r.Type, r.Error)
		}
	}
}

func printYearOverview(d model.Dashboard) {
	fmt.Println("\nYear    ADU  NON_ADU  POTENTIAL  ADU%")
	for i, u := range d.UnitsByYear {
		share := 0
		if i < len(d.AduPercentageByYear) {
			share = d.AduPercentageByYear[i].AduPercentage
		}
		fmt.Printf("%d  %5d  %7d  %9d  %3d%%\n", u.Year, u.ADU, u.NonADU, u.PotentialADU, share)
	}
}

func printTrend(label string, t model.TrendSummary) {
	arrow := "→"
	if t.Trend > 0 {
		arrow = "↑"
	} else if t.Trend < 0 {
		arrow = "↓"
	}
	fmt.Printf("%-18s latest %.0f, trend %s %+.0f\n", label, t.Latest, arrow, t.Trend)
}
