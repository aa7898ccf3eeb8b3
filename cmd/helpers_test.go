package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sells-group/asselect/internal/config"
)

const testDatasetJSON = `{
  "airspace": [
    {
      "id": "bigtown",
      "name": "BIGTOWN",
      "type": "CTR",
      "class": "D",
      "geometry": [
        {
          "id": "bigtown-1",
          "lower": "SFC",
          "upper": "3500 ft",
          "boundary": [{"line": ["510000N 0010000W", "510000N 0000000E", "503000N 0000000E"]}]
        }
      ]
    },
    {
      "name": "HILLTOP",
      "type": "OTHER",
      "localtype": "GLIDER",
      "geometry": [{"lower": "SFC", "upper": "2000 ft", "boundary": [{"circle": {"radius": "2 nm", "centre": "520000N 0010000W"}}]}]
    },
    {
      "name": "ASTON DOWN",
      "type": "OTHER",
      "localtype": "GLIDER",
      "geometry": [{"lower": "SFC", "upper": "2000 ft", "boundary": [{"circle": {"radius": "2 nm", "centre": "514000N 0020800W"}}]}]
    }
  ],
  "rat": [
    {
      "name": "AIRSHOW",
      "type": "OTHER",
      "localtype": "RAT",
      "geometry": [{"lower": "SFC", "upper": "FL60", "boundary": [{"circle": {"radius": "3 nm", "centre": "510000N 0010000W"}}]}]
    }
  ],
  "loa": [{"name": "BIGTOWN LOA", "areas": []}],
  "release": {"airac_date": "2026-10-01T00:00:00Z"}
}`

// testEnv returns a config rooted in a temp directory holding a dataset.
func testEnv(t *testing.T) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()

	dataset := filepath.Join(dir, "yaixm.json")
	require.NoError(t, os.WriteFile(dataset, []byte(testDatasetJSON), 0o644))

	c := &config.Config{
		Dataset:  config.DatasetConfig{Source: dataset, TimeoutSecs: 5, MaxRetries: 1, UserAgent: "test"},
		Settings: config.SettingsConfig{Path: filepath.Join(dir, "settings.yaml")},
		Output:   config.OutputConfig{Path: filepath.Join(dir, "openair.txt")},
		Store:    config.StoreConfig{Driver: "sqlite", DatabaseURL: filepath.Join(dir, "asselect.db")},
	}
	return c, dir
}
