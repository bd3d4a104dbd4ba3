package aggregate

import (
	"math"
	"testing"

	"github.com/matzehuels/feedscope/pkg/feedback"
)

func TestStarBucket(t *testing.T) {
	tests := []struct {
		rating      float64
		wantStar    int
		wantClamped bool
		wantOK      bool
	}{
		{1, 1, false, true},
		{1.9, 1, false, true},
		{3.5, 3, false, true},
		{5, 5, false, true},
		{6.2, 5, true, true},
		{5.5, 5, true, true},
		{0.5, 1, true, true},
		{-2, 1, true, true},
		{math.NaN(), 0, false, false},
		{math.Inf(-1), 0, false, false},
	}

	for _, tt := range tests {
		star, clamped, ok := StarBucket(tt.rating)
		if star != tt.wantStar || clamped != tt.wantClamped || ok != tt.wantOK {
			t.Errorf("StarBucket(%v) = %d, %v, %v; want %d, %v, %v",
				tt.rating, star, clamped, ok, tt.wantStar, tt.wantClamped, tt.wantOK)
		}
	}
}

func TestRatingDistributionByDevice(t *testing.T) {
	input := []feedback.Record{
		{Device: "iOS", Rating: 5},
		{Device: "Android", Rating: 2.7},
		{Device: "iOS", Rating: 6.2},
		{Device: "iOS", Rating: 1},
	}

	got := RatingDistributionByDevice(input)

	if got.Total != 4 {
		t.Errorf("Total = %d, want 4", got.Total)
	}
	if got.Clamped != 1 {
		t.Errorf("Clamped = %d, want 1", got.Clamped)
	}
	if len(got.Devices) != 2 || got.Devices[0].Device != "iOS" || got.Devices[1].Device != "Android" {
		t.Fatalf("Devices = %+v, want iOS then Android", got.Devices)
	}

	ios := got.Devices[0]
	if ios.Stars.Get(5) != 2 || ios.Stars.Get(1) != 1 || ios.Total != 3 {
		t.Errorf("iOS = %+v", ios)
	}
	if got.Devices[1].Stars.Get(2) != 1 {
		t.Errorf("Android = %+v", got.Devices[1])
	}
}

func TestRatingClampReported(t *testing.T) {
	got := RatingDistributionByDevice([]feedback.Record{{Device: "iOS", Rating: 6.2}})

	d, ok := got.Device("iOS")
	if !ok {
		t.Fatal("Device(iOS) not found")
	}
	if d.Stars.Get(5) != 1 {
		t.Errorf("6.2 should land in bucket 5, got %+v", d.Stars)
	}
	if got.Clamped != 1 {
		t.Errorf("Clamped = %d, want 1", got.Clamped)
	}
}

func TestRatingPercentUsesOverallTotal(t *testing.T) {
	input := []feedback.Record{
		{Device: "iOS", Rating: 5},
		{Device: "iOS", Rating: 5},
		{Device: "Android", Rating: 4},
		{Device: "Android", Rating: 3},
	}

	got := RatingDistributionByDevice(input)

	// 2 of 4 records overall, even though both iOS records are 5 stars.
	if p := got.Percent("iOS", 5); p != 50 {
		t.Errorf("Percent(iOS, 5) = %v, want 50", p)
	}
	if p := got.Percent("Android", 4); p != 25 {
		t.Errorf("Percent(Android, 4) = %v, want 25", p)
	}
	if p := got.Percent("web", 4); p != 0 {
		t.Errorf("Percent(unknown device) = %v, want 0", p)
	}
	if p := (RatingResult{}).Percent("iOS", 5); p != 0 {
		t.Errorf("Percent on empty result = %v, want 0", p)
	}
}

func TestRatingSkipsNonFinite(t *testing.T) {
	got := RatingDistributionByDevice([]feedback.Record{{Device: "x", Rating: math.NaN()}, {Device: "x", Rating: 3}})
	if got.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", got.Skipped)
	}
	if d, _ := got.Device("x"); d.Total != 1 {
		t.Errorf("device total = %d, want 1", d.Total)
	}
}
