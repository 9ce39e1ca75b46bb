package reporter

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenilsonani/reclaim/internal/scanner"
)

func sampleResults() *scanner.Results {
	return &scanner.Results{
		Items: []scanner.Item{
			{ID: "1", Name: "pip", Path: "/home/u/.cache/pip", Size: 2048, Kind: "directory", Category: "package_cache"},
			{ID: "2", Name: "huge.log", Path: "/home/u/logs/huge.log", Size: 1024, Kind: "file", Category: "logs", RiskLevel: 1},
		},
		TotalSize:  3072,
		TotalItems: 2,
		ElapsedMS:  1500,
	}
}

func TestReportSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatSummary).Report(sampleResults()))

	out := buf.String()
	assert.Contains(t, out, "Items: 2")
	assert.Contains(t, out, "3.00 KB")
	assert.Contains(t, out, "package_cache")
	assert.Contains(t, out, "logs")
}

func TestReportSummaryShowsFailedCategories(t *testing.T) {
	results := sampleResults()
	results.FailedCategories = []scanner.FailedCategory{{Category: "logs", Error: "permission denied"}}

	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatSummary).Report(results))
	assert.Contains(t, buf.String(), "permission denied")
}

func TestReportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatJSON).Report(sampleResults()))

	var decoded struct {
		TotalItems int            `json:"total_items"`
		TotalSize  int64          `json:"total_size"`
		ScanTimeMS int64          `json:"scan_time_ms"`
		Items      []scanner.Item `json:"items"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, 2, decoded.TotalItems)
	assert.Equal(t, int64(3072), decoded.TotalSize)
	assert.Equal(t, int64(1500), decoded.ScanTimeMS)
	require.Len(t, decoded.Items, 2)
	assert.Equal(t, "package_cache", decoded.Items[0].Category)
}

func TestReportTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatTable).Report(sampleResults()))

	out := buf.String()
	assert.Contains(t, out, "/home/u/.cache/pip")
	assert.Contains(t, out, "Total: 2 items")
}

func TestReportUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := New(&buf, OutputFormat("csv")).Report(sampleResults())
	assert.Error(t, err)
}
