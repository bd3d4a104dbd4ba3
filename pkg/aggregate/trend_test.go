package aggregate

import (
	"slices"
	"testing"

	"github.com/matzehuels/feedscope/pkg/feedback"
)

func TestMonthKey(t *testing.T) {
	tests := []struct {
		date   string
		want   string
		wantOK bool
	}{
		{"2024-03-15", "2024-03", true},
		{"2024/03/15", "2024-03", true},
		{"2024-3-5", "2024-03", true},
		{"2024/3/5", "2024-03", true},
		{"2024-12-31 23:59:59", "2024-12", true},
		{"2024-12-31T23:30:00-08:00", "2024-12", true},
		{"2024-01-01T00:30:00+09:00", "2024-01", true},
		{"2024-07", "2024-07", true},
		{" 2024-07-01 ", "2024-07", true},

		{"", "", false},
		{"yesterday", "", false},
		{"2024-13-01", "", false},
		{"15/03/2024", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got, ok := MonthKey(tt.date)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("MonthKey(%q) = %q, %v; want %q, %v", tt.date, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMonthlyDeviceTrend(t *testing.T) {
	input := []feedback.Record{
		{Date: "2024-02-10", Device: "Android"},
		{Date: "2023-12-01", Device: "iOS"},
		{Date: "2024-02-11", Device: "iOS"},
		{Date: "garbage", Device: "iOS"},
		{Date: "2024-02-28", Device: "Android"},
		{Date: "2024-01-05", Device: "unknown"},
	}

	got := MonthlyDeviceTrend(input)

	if got.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", got.Skipped)
	}

	months := make([]string, len(got.Months))
	for i, m := range got.Months {
		months[i] = m.Month
	}
	if want := []string{"2023-12", "2024-01", "2024-02"}; !slices.Equal(months, want) {
		t.Fatalf("months = %v, want %v", months, want)
	}

	feb := got.Months[2]
	if want := []LabelCount{{"Android", 2}, {"iOS", 1}}; !slices.Equal(feb.Devices, want) {
		t.Errorf("2024-02 devices = %v, want %v", feb.Devices, want)
	}
	if feb.Total != 3 {
		t.Errorf("2024-02 total = %d, want 3", feb.Total)
	}

	if want := []string{"iOS", "unknown", "Android"}; !slices.Equal(got.Devices(), want) {
		t.Errorf("Devices() = %v, want %v", got.Devices(), want)
	}
}

func TestMonthlyDeviceTrendProperties(t *testing.T) {
	input := []feedback.Record{
		{Date: "2022-05-01", Device: "a"},
		{Date: "2021-05-01", Device: "b"},
		{Date: "2022-05-02", Device: "a"},
		{Date: "2022-1-9", Device: "c"},
		{Date: "??", Device: "c"},
	}

	got := MonthlyDeviceTrend(input)

	total := 0
	for i, m := range got.Months {
		if i > 0 && m.Month <= got.Months[i-1].Month {
			t.Errorf("months not strictly ascending at %d: %s <= %s", i, m.Month, got.Months[i-1].Month)
		}
		if Sum(m.Devices) != m.Total {
			t.Errorf("%s: device sum %d != total %d", m.Month, Sum(m.Devices), m.Total)
		}
		total += m.Total
	}
	if total+got.Skipped != len(input) {
		t.Errorf("total %d + skipped %d != %d", total, got.Skipped, len(input))
	}
}
