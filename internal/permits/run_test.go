package permits

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"permit-dashboard/internal/model"
	"permit-dashboard/internal/store"
	"permit-dashboard/pkg/utils"
)

func TestRunPersistsSnapshotsAndExports(t *testing.T) {
	require.NoError(t, store.InitDB(filepath.Join(t.TempDir(), "test.db")))

	id := uuid.New().String()
	records := SampleRecords()
	require.NoError(t, store.SaveDataset(id, "sample", "sample", len(records)))
	require.NoError(t, store.SaveRecords(id, records))

	om := utils.NewOutputManager(t.TempDir())
	require.NoError(t, Run(context.Background(), id, records, Options{}, om))

	d, err := store.GetDataset(id)
	require.NoError(t, err)
	assert.Equal(t, "ready", d.Status)

	for _, name := range SeriesNames() {
		payload, err := store.GetSnapshot(id, name)
		require.NoError(t, err, "snapshot %s", name)
		assert.NotEmpty(t, payload)
	}

	metrics, err := store.GetComputeMetrics(id)
	require.NoError(t, err)
	var m model.ComputeMetrics
	require.NoError(t, json.Unmarshal(metrics, &m))
	assert.Equal(t, id, m.DatasetID)
	assert.Equal(t, len(records), m.TotalRecords)
}

func TestRunCancelledContextFailsDataset(t *testing.T) {
	require.NoError(t, store.InitDB(filepath.Join(t.TempDir(), "test.db")))

	id := uuid.New().String()
	require.NoError(t, store.SaveDataset(id, "sample", "sample", 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, id, nil, Options{}, nil)
	assert.ErrorIs(t, err, context.Canceled)

	d, getErr := store.GetDataset(id)
	require.NoError(t, getErr)
	assert.Equal(t, "failed", d.Status)

	errs, getErr := store.GetDatasetErrors(id)
	require.NoError(t, getErr)
	assert.NotEmpty(t, errs)
}
