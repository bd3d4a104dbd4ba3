package feedback

import (
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/feedscope/pkg/errors"
)

func TestRecordCategories(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     []string
	}{
		{"single", "Bug", []string{"Bug"}},
		{"half-width comma", "UI,Performance", []string{"UI", "Performance"}},
		{"full-width comma", "介面，效能", []string{"介面", "效能"}},
		{"mixed with spaces", " UI , 效能，Bug ", []string{"UI", "效能", "Bug"}},
		{"empty tokens dropped", "UI,,  ,Bug,", []string{"UI", "Bug"}},
		{"empty", "", nil},
		{"only separators", ",，,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Record{Category: tt.category}.Categories()
			if !slices.Equal(got, tt.want) {
				t.Errorf("Categories() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDatasetNormalize(t *testing.T) {
	d := Dataset{
		Feedbacks: []Record{
			{Date: "2024-01-05", Rating: 4, Device: "  ", Sentiment: " 正面 "},
			{Date: "not a date", Rating: 6.2, Device: "iOS"},
		},
		Keywords: []Keyword{{Word: "crash", Count: 3}},
	}

	if err := d.Normalize(); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if d.Feedbacks[0].Device != UnknownDevice {
		t.Errorf("Device = %q, want %q", d.Feedbacks[0].Device, UnknownDevice)
	}
	if d.Feedbacks[0].Sentiment != "正面" {
		t.Errorf("Sentiment = %q, want trimmed", d.Feedbacks[0].Sentiment)
	}
	// Semantic anomalies are left for the engines.
	if d.Feedbacks[1].Rating != 6.2 || d.Feedbacks[1].Date != "not a date" {
		t.Errorf("Normalize() should not touch date or rating range: %+v", d.Feedbacks[1])
	}
}

func TestDatasetNormalizeRejects(t *testing.T) {
	tests := []struct {
		name string
		data Dataset
	}{
		{"NaN rating", Dataset{Feedbacks: []Record{{Rating: math.NaN()}}}},
		{"infinite rating", Dataset{Feedbacks: []Record{{Rating: math.Inf(1)}}}},
		{"control char device", Dataset{Feedbacks: []Record{{Rating: 3, Device: "i\x01OS"}}}},
		{"negative count", Dataset{Keywords: []Keyword{{Word: "a", Count: -1}}}},
		{"empty word", Dataset{Keywords: []Keyword{{Word: " ", Count: 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Normalize()
			if err == nil {
				t.Fatal("Normalize() error = nil, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateKeywords(t *testing.T) {
	if err := ValidateKeywords([]Keyword{{"a", 0}, {"b", 10}}); err != nil {
		t.Errorf("valid keywords should pass: %v", err)
	}
	if err := ValidateKeywords(nil); err != nil {
		t.Errorf("empty keywords should pass: %v", err)
	}
	if err := ValidateKeywords([]Keyword{{"a", 1}, {"b", -2}}); err == nil {
		t.Error("negative count should fail")
	}
}
