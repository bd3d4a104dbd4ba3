package feedback

import (
	"math"
	"strings"

	"github.com/matzehuels/feedscope/pkg/errors"
)

// UnknownDevice is the device label assigned to records that arrive without one.
const UnknownDevice = "unknown"

// Record is one classified unit of user feedback.
type Record struct {
	Date      string   `json:"date"`
	Rating    float64  `json:"rating"`
	Device    string   `json:"device"`
	Category  string   `json:"category"`
	Sentiment string   `json:"sentiment"`
	Keywords  []string `json:"keywords"`
}

// Categories splits the raw category field on half-width and full-width
// commas, trims whitespace and drops empty tokens. Order follows the field.
func (r Record) Categories() []string {
	if r.Category == "" {
		return nil
	}
	parts := strings.FieldsFunc(r.Category, func(c rune) bool {
		return c == ',' || c == '，'
	})
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Keyword is a weighted term: a word and how often it was extracted.
type Keyword struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Dataset is one analyzed batch of feedback plus its merged keyword list.
type Dataset struct {
	Feedbacks []Record  `json:"feedbacks"`
	Keywords  []Keyword `json:"keywords,omitempty"`
}

// Normalize validates the dataset in place and fills defaults.
// It returns an INVALID_INPUT error naming the first offending entry.
func (d *Dataset) Normalize() error {
	for i := range d.Feedbacks {
		if err := d.Feedbacks[i].normalize(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "feedback %d", i)
		}
	}
	for i, k := range d.Keywords {
		if err := ValidateKeyword(k); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "keyword %d", i)
		}
	}
	return nil
}

func (r *Record) normalize() error {
	if math.IsNaN(r.Rating) || math.IsInf(r.Rating, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "rating must be a finite number")
	}
	r.Device = strings.TrimSpace(r.Device)
	if r.Device == "" {
		r.Device = UnknownDevice
	}
	r.Sentiment = strings.TrimSpace(r.Sentiment)
	for _, f := range []struct{ kind, v string }{
		{"device", r.Device},
		{"sentiment", r.Sentiment},
	} {
		if err := errors.ValidateLabel(f.kind, f.v); err != nil {
			return err
		}
	}
	return nil
}

// ValidateKeyword checks one keyword entry.
func ValidateKeyword(k Keyword) error {
	if strings.TrimSpace(k.Word) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "keyword word cannot be empty")
	}
	if k.Count < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "keyword %q has negative count %d", k.Word, k.Count)
	}
	return errors.ValidateLabel("keyword", k.Word)
}

// ValidateKeywords checks every entry of a keyword list.
func ValidateKeywords(keywords []Keyword) error {
	for i, k := range keywords {
		if err := ValidateKeyword(k); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "keyword %d", i)
		}
	}
	return nil
}
