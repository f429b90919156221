package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputManager handles output file organization and path management
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager
func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{
		BaseOutputDir: baseOutputDir,
	}
}

// CreateDatasetOutputDir creates a UUID-based directory for a dataset's exports
func (om *OutputManager) CreateDatasetOutputDir(datasetID string) (string, error) {
	dir := filepath.Join(om.BaseOutputDir, datasetID)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create dataset output directory: %w", err)
	}

	return dir, nil
}

// GetOutputFilePath generates a full path for an export file
func (om *OutputManager) GetOutputFilePath(datasetID, fileName string) (string, error) {
	dir, err := om.CreateDatasetOutputDir(datasetID)
	if err != nil {
		return "", err
	}

	// Strip any path separators smuggled in with the filename
	return filepath.Join(dir, filepath.Base(fileName)), nil
}

// GetDownloadURL generates a download URL for an export file
func (om *OutputManager) GetDownloadURL(datasetID, fileName string) string {
	return fmt.Sprintf("/api/v1/download/%s/%s", datasetID, filepath.Base(fileName))
}

// GetFileType determines the export type based on extension
func (om *OutputManager) GetFileType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return "csv"
	case ".json":
		return "json"
	default:
		return "unknown"
	}
}

// GetFileSize returns the size of a file in bytes
func (om *OutputManager) GetFileSize(filePath string) (int64, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return 0, err
	}
	return fileInfo.Size(), nil
}
