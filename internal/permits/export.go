package permits

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"permit-dashboard/internal/model"
	"permit-dashboard/pkg/utils"
)

// ------------------- Export -------------------
// Computed series can be written out as renderer-ready JSON and as flat CSV
// files under outputs/<dataset-id>/ for download.

// ExportDashboard writes the full dashboard JSON plus one CSV per chartable
// series. Failures are reported per-file, not fatal.
func ExportDashboard(datasetID string, d model.Dashboard, om *utils.OutputManager) []model.ExportResult {
	var results []model.ExportResult

	results = append(results, exportJSON(datasetID, "dashboard.json", d, om))

	csvExports := []struct {
		file    string
		headers []string
		rows    [][]string
	}{
		{"units_by_year.csv",
			[]string{"year", "ADU", "NON_ADU", "POTENTIAL_ADU_CONVERSION"},
			unitsByYearRows(d.UnitsByYear)},
		{"units_by_jurisdiction.csv",
			[]string{"county", "ADU", "NON_ADU", "POTENTIAL_ADU_CONVERSION", "total"},
			jurisdictionRows(d.UnitsByJurisdiction)},
		{"job_value_by_county.csv",
			[]string{"county", "avgValue", "count"},
			countyValueRows(d.JobValueByCounty)},
		{"average_adu_job_value_by_year.csv",
			[]string{"year", "avgValue", "count"},
			aduValueRows(d.AverageAduJobValueByYear)},
	}

	for _, e := range csvExports {
		results = append(results, exportCSV(datasetID, e.file, e.headers, e.rows, om))
	}

	exported := 0
	for _, r := range results {
		if r.Success {
			exported++
		}
	}
	fmt.Printf("💾 Export Summary: %d/%d files written for dataset %s\n", exported, len(results), datasetID)

	return results
}

func exportJSON(datasetID, fileName string, payload interface{}, om *utils.OutputManager) model.ExportResult {
	result := model.ExportResult{Type: "json", ExportedAt: time.Now().UTC()}

	path, err := om.GetOutputFilePath(datasetID, fileName)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Path = path

	file, err := os.Create(path)
	if err != nil {
		result.Error = fmt.Sprintf("failed to create JSON export: %v", err)
		return result
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		result.Error = fmt.Sprintf("failed to write JSON export: %v", err)
		return result
	}

	result.Success = true
	return result
}

func exportCSV(datasetID, fileName string, headers []string, rows [][]string, om *utils.OutputManager) model.ExportResult {
	result := model.ExportResult{Type: "csv", RecordCount: len(rows), ExportedAt: time.Now().UTC()}

	path, err := om.GetOutputFilePath(datasetID, fileName)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Path = path

	file, err := os.Create(path)
	if err != nil {
		result.Error = fmt.Sprintf("failed to create CSV export: %v", err)
		return result
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		result.Error = fmt.Sprintf("failed to write CSV header: %v", err)
		return result
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			result.Error = fmt.Sprintf("failed to write CSV row: %v", err)
			return result
		}
	}

	result.Success = true
	return result
}

func unitsByYearRows(series []model.YearlyUnits) [][]string {
	rows := make([][]string, 0, len(series))
	for _, u := range series {
		rows = append(rows, []string{
			strconv.Itoa(u.Year), strconv.Itoa(u.ADU),
			strconv.Itoa(u.NonADU), strconv.Itoa(u.PotentialADU),
		})
	}
	return rows
}

func jurisdictionRows(series []model.JurisdictionUnits) [][]string {
	rows := make([][]string, 0, len(series))
	for _, u := range series {
		rows = append(rows, []string{
			u.County, strconv.Itoa(u.ADU), strconv.Itoa(u.NonADU),
			strconv.Itoa(u.PotentialADU), strconv.Itoa(u.Total),
		})
	}
	return rows
}

func countyValueRows(series []model.CountyJobValue) [][]string {
	rows := make([][]string, 0, len(series))
	for _, v := range series {
		rows = append(rows, []string{v.County, strconv.Itoa(v.AvgValue), strconv.Itoa(v.Count)})
	}
	return rows
}

func aduValueRows(series []model.YearlyAduJobValue) [][]string {
	rows := make([][]string, 0, len(series))
	for _, v := range series {
		rows = append(rows, []string{strconv.Itoa(v.Year), strconv.Itoa(v.AvgValue), strconv.Itoa(v.Count)})
	}
	return rows
}
