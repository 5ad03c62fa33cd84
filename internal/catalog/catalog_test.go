package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/dailydle/internal/catalog"
	"github.com/vytor/dailydle/internal/daykey"
	"github.com/vytor/dailydle/internal/models"
)

func TestEmbedded_IsValid(t *testing.T) {
	c, err := catalog.Embedded()
	require.NoError(t, err)
	assert.Greater(t, c.Len(), 10)

	royal, ok := c.ByID(3)
	require.True(t, ok)
	assert.Equal(t, daykey.Key("2024-6-1"), royal.AvailableFrom, "availability is normalized")
}

func TestNew_RejectsBadRecords(t *testing.T) {
	_, err := catalog.New(nil)
	assert.Error(t, err)

	_, err = catalog.New([]models.Monster{
		{ID: 1, Name: "Tofu", LevelMin: 1, LevelMax: 5},
		{ID: 1, Name: "tofu", LevelMin: 9, LevelMax: 2},
		{ID: 3, Name: " ", AvailableFrom: "2025-2-30"},
		{ID: 0, Name: "Larve Bleue"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")
	assert.Contains(t, err.Error(), "duplicate name")
	assert.Contains(t, err.Error(), "level range")
	assert.Contains(t, err.Error(), "empty name")
	assert.Contains(t, err.Error(), "not a calendar date")
	assert.Contains(t, err.Error(), "monster 0: id must be positive")

	_, err = catalog.New([]models.Monster{{ID: -4, Name: "Arakne"}})
	assert.ErrorContains(t, err, "id must be positive")
}

func TestNew_CopiesInput(t *testing.T) {
	in := []models.Monster{{ID: 1, Name: "Tofu"}}
	c, err := catalog.New(in)
	require.NoError(t, err)

	in[0].Name = "Changed"
	got, ok := c.ByID(1)
	require.True(t, ok)
	assert.Equal(t, "Tofu", got.Name)

	all := c.All()
	all[0].Name = "Changed again"
	got, _ = c.ByID(1)
	assert.Equal(t, "Tofu", got.Name)
}

func TestByName_IgnoresCaseAndAccents(t *testing.T) {
	c, err := catalog.Embedded()
	require.NoError(t, err)

	for _, q := range []string{"Tofu Maléfique", "tofu malefique", "  TOFU   MALEFIQUE "} {
		m, ok := c.ByName(q)
		require.True(t, ok, "query %q", q)
		assert.Equal(t, int64(5), m.ID)
	}

	_, ok := c.ByName("Wabbit")
	assert.False(t, ok)
}

func TestSearch_PrefixFirstAndExclusions(t *testing.T) {
	c, err := catalog.Embedded()
	require.NoError(t, err)

	got := c.Search("bouftou", nil, 0)
	require.Len(t, got, 3)
	assert.Equal(t, "Bouftou", got[0].Name)
	assert.Equal(t, "Bouftou Royal", got[1].Name)
	assert.Equal(t, "Chef de Guerre Bouftou", got[2].Name)

	got = c.Search("bouftou", map[int64]bool{1: true}, 1)
	require.Len(t, got, 1)
	assert.Equal(t, "Bouftou Royal", got[0].Name)

	assert.Empty(t, c.Search("   ", nil, 0))
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monsters.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": 7, "name": "Wabbit", "available_from": "2025-01-05"}]`), 0o600))

	c, err := catalog.Load(path)
	require.NoError(t, err)
	m, ok := c.ByName("wabbit")
	require.True(t, ok)
	assert.Equal(t, daykey.Key("2025-1-5"), m.AvailableFrom)

	_, err = catalog.Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "gelee bleue", catalog.Normalize(" Gelée  Bleue "))
}
