// Package reporter renders scan results for terminal and machine
// consumption.
package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/fenilsonani/reclaim/internal/scanner"
	"github.com/fenilsonani/reclaim/pkg/utils"
)

// OutputFormat selects a report rendering.
type OutputFormat string

const (
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatSummary OutputFormat = "summary"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	totalStyle  = lipgloss.NewStyle().Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Reporter writes scan results in one of the supported formats.
type Reporter struct {
	writer io.Writer
	format OutputFormat
}

// New creates a Reporter.
func New(writer io.Writer, format OutputFormat) *Reporter {
	return &Reporter{writer: writer, format: format}
}

// Report renders scan results.
func (r *Reporter) Report(results *scanner.Results) error {
	switch r.format {
	case FormatTable:
		return r.reportTable(results)
	case FormatJSON:
		return r.reportJSON(results)
	case FormatYAML:
		return r.reportYAML(results)
	case FormatSummary:
		return r.reportSummary(results)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

func (r *Reporter) reportSummary(results *scanner.Results) error {
	fmt.Fprintln(r.writer, headerStyle.Render("Reclaimable Space"))
	fmt.Fprintf(r.writer, "Items: %d\n", results.TotalItems)
	fmt.Fprintf(r.writer, "Size:  %s\n", utils.FormatBytes(results.TotalSize))

	byCategory := make(map[string]int64)
	counts := make(map[string]int)
	for _, item := range results.Items {
		byCategory[item.Category] += item.Size
		counts[item.Category]++
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return byCategory[categories[i]] > byCategory[categories[j]] })

	if len(categories) > 0 {
		fmt.Fprintln(r.writer, "\nBy category:")
		for _, c := range categories {
			fmt.Fprintf(r.writer, "  %-18s %4d items  %s\n", c, counts[c], utils.FormatBytes(byCategory[c]))
		}
	}

	for _, failed := range results.FailedCategories {
		fmt.Fprintln(r.writer, warnStyle.Render(fmt.Sprintf("  %s scan failed: %s", failed.Category, failed.Error)))
	}

	fmt.Fprintf(r.writer, "\nScan took %s\n", utils.FormatDuration(time.Duration(results.ElapsedMS)*time.Millisecond))
	return nil
}

func (r *Reporter) reportTable(results *scanner.Results) error {
	fmt.Fprintf(r.writer, "%-60s | %-10s | %-18s | %s\n", "Path", "Size", "Category", "Risk")
	fmt.Fprintln(r.writer, strings.Repeat("-", 100))

	for _, item := range results.Items {
		path := item.Path
		if len(path) > 60 {
			path = "..." + path[len(path)-57:]
		}
		fmt.Fprintf(r.writer, "%-60s | %-10s | %-18s | %d\n",
			path, utils.FormatBytes(item.Size), item.Category, item.RiskLevel)
	}

	fmt.Fprintln(r.writer, strings.Repeat("-", 100))
	fmt.Fprintln(r.writer, totalStyle.Render(
		fmt.Sprintf("Total: %d items, %s", results.TotalItems, utils.FormatBytes(results.TotalSize))))
	return nil
}

type report struct {
	Timestamp          string                   `json:"timestamp" yaml:"timestamp"`
	TotalItems         int                      `json:"total_items" yaml:"total_items"`
	TotalSize          int64                    `json:"total_size" yaml:"total_size"`
	TotalSizeFormatted string                   `json:"total_size_formatted" yaml:"total_size_formatted"`
	ScanTimeMS         int64                    `json:"scan_time_ms" yaml:"scan_time_ms"`
	Items              []scanner.Item           `json:"items" yaml:"items"`
	FailedCategories   []scanner.FailedCategory `json:"failed_categories,omitempty" yaml:"failed_categories,omitempty"`
}

func buildReport(results *scanner.Results) report {
	return report{
		Timestamp:          time.Now().Format(time.RFC3339),
		TotalItems:         results.TotalItems,
		TotalSize:          results.TotalSize,
		TotalSizeFormatted: utils.FormatBytes(results.TotalSize),
		ScanTimeMS:         results.ElapsedMS,
		Items:              results.Items,
		FailedCategories:   results.FailedCategories,
	}
}

func (r *Reporter) reportJSON(results *scanner.Results) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildReport(results))
}

func (r *Reporter) reportYAML(results *scanner.Results) error {
	return yaml.NewEncoder(r.writer).Encode(buildReport(results))
}
