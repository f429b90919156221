package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"permit-dashboard/internal/model"
	"permit-dashboard/internal/permits"
	"permit-dashboard/internal/store"
	"permit-dashboard/pkg/utils"
)

var (
	outputMgr   *utils.OutputManager
	defaultOpts permits.Options
	dataPath    string
)

// Configure wires the handler package with runtime settings.
func Configure(outputDir, fixedDataPath string, opts permits.Options) {
	outputMgr = utils.NewOutputManager(outputDir)
	defaultOpts = opts
	dataPath = fixedDataPath
}

// CreateDataset ingests an uploaded permit dataset and computes its dashboard
// @Summary Upload a permit dataset
// @Description Accepts a raw CSV body (or a JSON array of row objects) of permit records, registers a dataset, and computes all derived series
// @Tags datasets
// @Accept text/csv
// @Produce json
// @Param name query string false "Dataset name"
// @Success 200 {object} map[string]interface{} "Dataset created"
// @Failure 400 {object} map[string]interface{} "Unreadable payload"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /datasets [post]
func CreateDataset(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var rows []model.GenericRecord
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		rows, err = permits.ReadJSONRows(body)
	} else {
		rows, err = permits.ReadCSV(r.Context(), strings.NewReader(string(body)))
	}
	if err != nil {
		http.Error(w, "Unreadable dataset payload", http.StatusBadRequest)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "upload"
	}

	startDataset(w, name, "upload", permits.CoerceRecords(rows))
}

// LoadDataset loads the fixed-path CSV, falling back to sample data
// @Summary Load the configured permit dataset
// @Description Loads the configured fixed-path CSV (or an explicit ?path=), falling back to generated sample data when unavailable
// @Tags datasets
// @Produce json
// @Param path query string false "CSV path or URL override"
// @Success 200 {object} map[string]interface{} "Dataset created"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /datasets/load [post]
func LoadDataset(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		path = dataPath
	}

	records, source := permits.LoadOrSample(r.Context(), path)
	startDataset(w, filepath.Base(source), source, records)
}

func startDataset(w http.ResponseWriter, name, source string, records []model.PermitRecord) {
	datasetID := uuid.New().String()

	if err := store.SaveDataset(datasetID, name, source, len(records)); err != nil {
		http.Error(w, "Failed to save dataset", http.StatusInternalServerError)
		return
	}
	if err := store.SaveRecords(datasetID, records); err != nil {
		http.Error(w, "Failed to save records", http.StatusInternalServerError)
		return
	}

	go func() {
		if err := permits.Run(context.Background(), datasetID, records, defaultOpts, outputMgr); err != nil {
			fmt.Printf("❌ Computation failed for dataset %s: %v\n", datasetID, err)
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":     "Dataset created successfully!",
		"datasetID":   datasetID,
		"recordCount": len(records),
		"status":      "pending",
		"createdAt":   time.Now().UTC(),
	})
}

// ListDatasets retrieves all datasets
// @Summary List datasets
// @Description Get all datasets with their current status
// @Tags datasets
// @Produce json
// @Success 200 {array} model.Dataset "List of datasets"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /datasets [get]
func ListDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := store.ListDatasets()
	if err != nil {
		http.Error(w, "Failed to fetch datasets", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(datasets)
}

// GetDataset retrieves one dataset
// @Summary Get dataset
// @Tags datasets
// @Produce json
// @Param id path string true "Dataset ID"
// @Success 200 {object} model.Dataset "Dataset"
// @Failure 404 {object} map[string]interface{} "Dataset not found"
// @Router /datasets/{id} [get]
func GetDataset(w http.ResponseWriter, r *http.Request) {
	datasetID := pathSegment(r, 3)
	if datasetID == "" {
		http.Error(w, "Dataset ID is required", http.StatusBadRequest)
		return
	}

	dataset, err := store.GetDataset(datasetID)
	if err != nil {
		http.Error(w, "Dataset not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dataset)
}

// GetDatasetSeries retrieves one derived series for a dataset
// @Summary Get derived series
// @Description Returns a stored series snapshot; limit/sort/aduOnly query options recompute the parameterized series on the fly
// @Tags series
// @Produce json
// @Param id path string true "Dataset ID"
// @Param name path string true "Series name"
// @Param limit query int false "Truncation limit"
// @Param sort query string false "Jurisdiction sort key: total or aduCount"
// @Param aduOnly query bool false "Restrict county values to ADU permits"
// @Success 200 {object} map[string]interface{} "Series data"
// @Failure 404 {object} map[string]interface{} "Unknown dataset or series"
// @Router /datasets/{id}/series/{name} [get]
func GetDatasetSeries(w http.ResponseWriter, r *http.Request) {
	datasetID := pathSegment(r, 3)
	name := pathSegment(r, 5)
	if datasetID == "" || name == "" {
		http.Error(w, "Dataset ID and series name are required", http.StatusBadRequest)
		return
	}
	if !knownSeries(name) {
		http.Error(w, "Unknown series", http.StatusNotFound)
		return
	}

	data, err := seriesPayload(datasetID, name, r)
	if err != nil {
		http.Error(w, "Failed to retrieve series", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"dataset_id": datasetID,
		"series":     name,
		"data":       data,
	})
}

// seriesPayload returns the stored snapshot, or recomputes the
// parameterized series when query options are present.
func seriesPayload(datasetID, name string, r *http.Request) (interface{}, error) {
	q := r.URL.Query()
	if q.Get("limit") == "" && q.Get("sort") == "" && q.Get("aduOnly") == "" {
		return store.GetSnapshot(datasetID, name)
	}

	records, err := store.GetRecords(datasetID)
	if err != nil {
		return nil, err
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	switch name {
	case "unitsByJurisdiction", "topAduJurisdictions":
		sortKey := model.SortByTotal
		if q.Get("sort") == string(model.SortByAduCount) || name == "topAduJurisdictions" {
			sortKey = model.SortByAduCount
		}
		if limit <= 0 {
			limit = defaultOpts.JurisdictionLimit
		}
		return permits.UnitsByJurisdiction(records, model.JurisdictionOptions{SortKey: sortKey, Limit: limit}), nil
	case "jobValueByCounty", "aduJobValueByCounty":
		aduOnly := q.Get("aduOnly") == "true" || name == "aduJobValueByCounty"
		if limit <= 0 {
			limit = defaultOpts.JurisdictionLimit
		}
		return permits.JobValueByCounty(records, model.CountyValueOptions{AduOnly: aduOnly, Limit: limit}), nil
	default:
		// The remaining series take no options; serve the snapshot.
		return store.GetSnapshot(datasetID, name)
	}
}

// GetDatasetSummary retrieves the trend overview for a dataset
// @Summary Get dashboard summary
// @Tags series
// @Produce json
// @Param id path string true "Dataset ID"
// @Success 200 {object} model.DashboardSummary "Trend overview"
// @Failure 404 {object} map[string]interface{} "Dataset not found"
// @Router /datasets/{id}/summary [get]
func GetDatasetSummary(w http.ResponseWriter, r *http.Request) {
	datasetID := pathSegment(r, 3)
	if datasetID == "" {
		http.Error(w, "Dataset ID is required", http.StatusBadRequest)
		return
	}

	summary, err := store.GetSnapshot(datasetID, "summary")
	if err != nil {
		http.Error(w, "Summary not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(summary)
}

// GetDatasetMetrics retrieves the latest compute metrics for a dataset
// @Summary Get compute metrics
// @Tags datasets
// @Produce json
// @Param id path string true "Dataset ID"
// @Success 200 {object} model.ComputeMetrics "Compute metrics"
// @Failure 404 {object} map[string]interface{} "Metrics not found"
// @Router /datasets/{id}/metrics [get]
func GetDatasetMetrics(w http.ResponseWriter, r *http.Request) {
	datasetID := pathSegment(r, 3)
	if datasetID == "" {
		http.Error(w, "Dataset ID is required", http.StatusBadRequest)
		return
	}

	metrics, err := store.GetComputeMetrics(datasetID)
	if err != nil {
		http.Error(w, "Metrics not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(metrics)
}

// GetDatasetErrors retrieves errors recorded for a dataset
// @Summary Get dataset errors
// @Tags datasets
// @Produce json
// @Param id path string true "Dataset ID"
// @Success 200 {object} map[string]interface{} "Dataset errors"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /datasets/{id}/errors [get]
func GetDatasetErrors(w http.ResponseWriter, r *http.Request) {
	datasetID := pathSegment(r, 3)
	if datasetID == "" {
		http.Error(w, "Dataset ID is required", http.StatusBadRequest)
		return
	}

	errors, err := store.GetDatasetErrors(datasetID)
	if err != nil {
		http.Error(w, "Failed to retrieve errors", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"dataset_id": datasetID,
		"errors":     errors,
		"count":      len(errors),
	})
}

// RecomputeDataset re-runs the aggregation over the stored records
// @Summary Recompute dashboard
// @Description Re-runs all aggregations over the dataset's stored records; the new snapshots replace the old ones wholesale
// @Tags datasets
// @Produce json
// @Param id path string true "Dataset ID"
// @Success 200 {object} map[string]interface{} "Recompute initiated"
// @Failure 404 {object} map[string]interface{} "Dataset not found"
// @Router /datasets/{id}/recompute [post]
func RecomputeDataset(w http.ResponseWriter, r *http.Request) {
	datasetID := pathSegment(r, 3)
	if datasetID == "" {
		http.Error(w, "Dataset ID is required", http.StatusBadRequest)
		return
	}

	if _, err := store.GetDataset(datasetID); err != nil {
		http.Error(w, "Dataset not found", http.StatusNotFound)
		return
	}

	records, err := store.GetRecords(datasetID)
	if err != nil {
		http.Error(w, "Failed to load records", http.StatusInternalServerError)
		return
	}

	go func() {
		if err := permits.Run(context.Background(), datasetID, records, defaultOpts, outputMgr); err != nil {
			fmt.Printf("❌ Recompute failed for dataset %s: %v\n", datasetID, err)
		} else {
			fmt.Printf("✅ Recompute successful for dataset %s\n", datasetID)
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":    "Recompute initiated",
		"dataset_id": datasetID,
		"status":     "computing",
	})
}

// DeleteDataset deletes a dataset and its artifacts
// @Summary Delete dataset
// @Tags datasets
// @Produce json
// @Param id path string true "Dataset ID"
// @Success 200 {object} map[string]interface{} "Dataset deleted"
// @Failure 404 {object} map[string]interface{} "Dataset not found"
// @Router /datasets/{id} [delete]
func DeleteDataset(w http.ResponseWriter, r *http.Request) {
	datasetID := pathSegment(r, 3)
	if datasetID == "" {
		http.Error(w, "Dataset ID is required", http.StatusBadRequest)
		return
	}

	if _, err := store.GetDataset(datasetID); err != nil {
		http.Error(w, "Dataset not found", http.StatusNotFound)
		return
	}

	if outputMgr != nil {
		outputDir := filepath.Join(outputMgr.BaseOutputDir, datasetID)
		if err := os.RemoveAll(outputDir); err != nil {
			fmt.Printf("⚠️ Failed to delete export directory %s: %v\n", outputDir, err)
		}
	}

	if err := store.DeleteDataset(datasetID); err != nil {
		http.Error(w, "Failed to delete dataset", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":    "Dataset and artifacts deleted successfully",
		"dataset_id": datasetID,
	})
}

// DownloadFile serves an export file for download
// @Summary Download export file
// @Tags files
// @Produce application/octet-stream
// @Param datasetID path string true "Dataset ID"
// @Param filename path string true "File name"
// @Success 200 {file} file "File download"
// @Failure 404 {object} map[string]interface{} "File not found"
// @Router /download/{datasetID}/{filename} [get]
func DownloadFile(w http.ResponseWriter, r *http.Request) {
	datasetID := pathSegment(r, 3)
	fileName := pathSegment(r, 4)
	if datasetID == "" || fileName == "" {
		http.Error(w, "Invalid URL format", http.StatusBadRequest)
		return
	}

	filePath := filepath.Join(outputMgr.BaseOutputDir, datasetID, filepath.Base(fileName))
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(fileName)))
	w.Header().Set("Content-Type", "application/octet-stream")
	http.ServeFile(w, r, filePath)
}

// pathSegment returns the nth zero-based segment of the request path.
func pathSegment(r *http.Request, n int) string {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if n < 0 || n >= len(segments) {
		return ""
	}
	return segments[n]
}

func knownSeries(name string) bool {
	for _, s := range permits.SeriesNames() {
		if s == name {
			return true
		}
	}
	return false
}
