package catalog

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"loadsim/internal/engine"
	"loadsim/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteProfilesCSV_HeaderAndRowShape(t *testing.T) {
	var day0, day1 [model.MinutesPerDay]float64
	day0[0] = 10
	day1[1439] = 20

	result := &engine.Result{Profiles: [][model.MinutesPerDay]float64{day0, day1}}

	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.csv")
	require.NoError(t, WriteProfilesCSV(path, result))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 days

	assert.Equal(t, "day", records[0][0])
	assert.Equal(t, "minute_0", records[0][1])
	assert.Equal(t, "minute_1439", records[0][model.MinutesPerDay])

	assert.Equal(t, "0", records[1][0])
	assert.Equal(t, "10.000000", records[1][1])
	assert.Equal(t, "1", records[2][0])
	assert.Equal(t, "20.000000", records[2][model.MinutesPerDay])
}
