package aggregate

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/feedscope/pkg/feedback"
)

// dateLayouts are the calendar date formats accepted for month keys.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-1-2",
	"2006/1/2",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01",
	"2006/01",
}

// MonthKey returns the YYYY-MM key of a calendar date string. The year and
// month are taken as written, with no time zone conversion.
func MonthKey(date string) (string, bool) {
	date = strings.TrimSpace(date)
	if date == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, date)
		if err != nil {
			continue
		}
		return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month())), true
	}
	return "", false
}

// MonthBucket holds the record counts of one month.
type MonthBucket struct {
	Month   string       `json:"month"`
	Devices []LabelCount `json:"devices"`
	Total   int          `json:"total"`
}

// TrendResult is the monthly trend by device.
type TrendResult struct {
	Months []MonthBucket `json:"months"`
	// Skipped is the number of records whose date could not be parsed.
	Skipped int `json:"skipped,omitempty"`
}

// Devices returns every device label seen in the trend, in first-seen order
// across months.
func (t TrendResult) Devices() []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range t.Months {
		for _, d := range m.Devices {
			if !seen[d.Label] {
				seen[d.Label] = true
				out = append(out, d.Label)
			}
		}
	}
	return out
}

// MonthlyDeviceTrend groups records by month and then by device.
// Months are returned in ascending key order, which for zero-padded YYYY-MM
// keys is chronological. Within a month, devices keep first-seen order.
// Records with an unparseable date are excluded and counted in Skipped.
func MonthlyDeviceTrend(records []feedback.Record) TrendResult {
	months := make(map[string]*counter)
	skipped := 0
	for _, r := range records {
		key, ok := MonthKey(r.Date)
		if !ok {
			skipped++
			continue
		}
		c, ok := months[key]
		if !ok {
			c = newCounter()
			months[key] = c
		}
		c.add(r.Device)
	}

	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]MonthBucket, 0, len(keys))
	for _, k := range keys {
		devices := months[k].result()
		out = append(out, MonthBucket{Month: k, Devices: devices, Total: Sum(devices)})
	}
	return TrendResult{Months: out, Skipped: skipped}
}
