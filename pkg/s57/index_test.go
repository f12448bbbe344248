package s57

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMetadata(t *testing.T) {
	path := writeTestCell(t, t.TempDir(), "US5MA22M", 25000, 0)

	meta, err := ExtractMetadata(path)
	require.NoError(t, err)

	assert.Equal(t, "US5MA22M", meta.Name)
	assert.Equal(t, 25000, meta.CompilationScale)
	assert.Equal(t, 3, meta.Edition)
	assert.Equal(t, 0, meta.UpdateNumber)
	assert.Equal(t, UsageBandHarbour, meta.UsageBand)
	assert.Positive(t, meta.FileSize)

	// Bounds come from raw vector coordinates, dangling references and
	// all.
	assert.InDelta(t, -71.05, meta.Bounds.MinLon, 1e-9)
	assert.InDelta(t, 43.0, meta.Bounds.MaxLat, 1e-9)
}

func TestExtractMetadataFromDir(t *testing.T) {
	dir := t.TempDir()
	writeTestCell(t, dir, "US5MA22M", 25000, 0)
	writeTestCell(t, dir, "US5MA23M", 50000, 20000000)
	require.NoError(t, writeFile(dir, "garbage.000", []byte("not a chart")))
	require.NoError(t, writeFile(dir, "README.txt", []byte("ignored")))

	charts, errs := ExtractMetadataFromDir(dir)
	assert.Len(t, charts, 2)
	assert.Len(t, errs, 1, "the corrupt cell is reported, not fatal")
}

func TestChartIndexQuery(t *testing.T) {
	dir := t.TempDir()
	// Two cells two degrees apart in longitude.
	writeTestCell(t, dir, "US5MA22M", 25000, 0)
	writeTestCell(t, dir, "US5MA23M", 100000, 20000000)

	idx, errs := BuildIndexFromDir(dir)
	require.Empty(t, errs)
	require.Equal(t, 2, idx.Len())

	// A box over the first cell only.
	west := idx.Query(Bounds{MinLon: -71.2, MaxLon: -70.9, MinLat: 41.8, MaxLat: 43.1}, QueryOptions{})
	require.Len(t, west, 1)
	assert.Equal(t, "US5MA22M", west[0].Name)

	// A box spanning both, detailed charts first.
	all := idx.Query(Bounds{MinLon: -72, MaxLon: -67, MinLat: 41, MaxLat: 44}, QueryOptions{})
	require.Len(t, all, 2)
	assert.Equal(t, "US5MA22M", all[0].Name)
	assert.Equal(t, "US5MA23M", all[1].Name)

	// Scale filters.
	detailed := idx.Query(Bounds{MinLon: -72, MaxLon: -67, MinLat: 41, MaxLat: 44},
		QueryOptions{MinScale: 50000})
	require.Len(t, detailed, 1)
	assert.Equal(t, "US5MA22M", detailed[0].Name)

	// Usage band filter: both test cells are Harbour band.
	none := idx.Query(Bounds{MinLon: -72, MaxLon: -67, MinLat: 41, MaxLat: 44},
		QueryOptions{UsageBands: []UsageBand{UsageBandOverview}})
	assert.Empty(t, none)
}
