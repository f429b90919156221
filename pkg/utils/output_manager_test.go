package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputManagerPaths(t *testing.T) {
	om := NewOutputManager(t.TempDir())

	path, err := om.GetOutputFilePath("ds-1", "dashboard.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(om.BaseOutputDir, "ds-1", "dashboard.json"), path)
	assert.DirExists(t, filepath.Dir(path))
}

func TestGetOutputFilePathStripsTraversal(t *testing.T) {
	om := NewOutputManager(t.TempDir())

	path, err := om.GetOutputFilePath("ds-1", "../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(om.BaseOutputDir, "ds-1", "passwd"), path)
}

func TestGetDownloadURL(t *testing.T) {
	om := NewOutputManager("outputs")
	assert.Equal(t, "/api/v1/download/ds-1/units_by_year.csv", om.GetDownloadURL("ds-1", "units_by_year.csv"))
}

func TestGetFileType(t *testing.T) {
	om := NewOutputManager("outputs")
	assert.Equal(t, "csv", om.GetFileType("units_by_year.csv"))
	assert.Equal(t, "json", om.GetFileType("dashboard.JSON"))
	assert.Equal(t, "unknown", om.GetFileType("notes.txt"))
}

func TestGetFileSize(t *testing.T) {
	om := NewOutputManager(t.TempDir())
	path := filepath.Join(om.BaseOutputDir, "f.csv")
	require.NoError(t, os.WriteFile(path, []byte("abcde"), 0o644))

	size, err := om.GetFileSize(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)

	_, err = om.GetFileSize(filepath.Join(om.BaseOutputDir, "missing"))
	assert.Error(t, err)
}
