package snapshot

import (
	"testing"

	"github.com/penwyp/cydconf/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSaveLoad(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSnapshot)

	p := model.DefaultProject("laundry")
	report := &model.Report{Findings: []model.Finding{{Rule: "location", Severity: model.SeverityWarning}}}
	require.NoError(t, store.Save("project.yaml", p, report))

	snap, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "project.yaml", snap.Source)
	assert.Equal(t, 1, snap.Warnings)
	assert.Equal(t, p, snap.Project)
	assert.False(t, snap.SavedAt.IsZero())
}

func TestStoreRefusesReportsWithErrors(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	report := &model.Report{Findings: []model.Finding{{Rule: "hysteresis-gap", Severity: model.SeverityError}}}
	assert.Error(t, store.Save("project.yaml", model.DefaultProject("x"), report))

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestStoreClear(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save("p.yaml", model.DefaultProject("x"), nil))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSnapshot)
}
