package aggregate

import (
	"math"

	"github.com/matzehuels/feedscope/pkg/feedback"
)

// Star bucket bounds.
const (
	MinStars = 1
	MaxStars = 5
)

// StarBucket maps a rating to its 1–5 star bucket by flooring. Ratings
// outside [1,5] are clamped to the nearest bucket and reported with
// clamped = true. Non-finite ratings have no bucket and return ok = false.
func StarBucket(rating float64) (star int, clamped, ok bool) {
	if math.IsNaN(rating) || math.IsInf(rating, 0) {
		return 0, false, false
	}
	if rating < MinStars {
		return MinStars, true, true
	}
	if rating > MaxStars {
		return MaxStars, true, true
	}
	return int(math.Floor(rating)), false, true
}

// Stars is a histogram over the five star buckets; index 0 is one star.
type Stars [MaxStars]int

// Get returns the count of the given star bucket, or 0 outside 1–5.
func (s Stars) Get(star int) int {
	if star < MinStars || star > MaxStars {
		return 0
	}
	return s[star-1]
}

// DeviceRatings is the star histogram of one device.
type DeviceRatings struct {
	Device string `json:"device"`
	Stars  Stars  `json:"stars"`
	Total  int    `json:"total"`
}

// RatingResult is the rating distribution by device.
type RatingResult struct {
	Devices []DeviceRatings `json:"devices"`
	// Total is the number of records considered, across all devices.
	Total int `json:"total"`
	// Clamped counts ratings outside 1–5 that were moved to bucket 1 or 5.
	Clamped int `json:"clamped,omitempty"`
	// Skipped counts ratings with no bucket (NaN or infinite).
	Skipped int `json:"skipped,omitempty"`
}

// Device returns the histogram of one device.
func (r RatingResult) Device(name string) (DeviceRatings, bool) {
	for _, d := range r.Devices {
		if d.Device == name {
			return d, true
		}
	}
	return DeviceRatings{}, false
}

// Percent returns the share of all records that are from device and in the
// given star bucket, in percent. The denominator is the overall record total,
// not the device subtotal, so the percentages of one device do not sum to 100.
func (r RatingResult) Percent(device string, star int) float64 {
	if r.Total == 0 {
		return 0
	}
	d, ok := r.Device(device)
	if !ok {
		return 0
	}
	return float64(d.Stars.Get(star)) / float64(r.Total) * 100
}

// RatingDistributionByDevice buckets records by device, then by floored star
// rating. Devices appear in first-seen order.
func RatingDistributionByDevice(records []feedback.Record) RatingResult {
	index := make(map[string]int)
	res := RatingResult{Devices: []DeviceRatings{}, Total: len(records)}
	for _, r := range records {
		star, clamped, ok := StarBucket(r.Rating)
		if !ok {
			res.Skipped++
			continue
		}
		if clamped {
			res.Clamped++
		}
		i, seen := index[r.Device]
		if !seen {
			i = len(res.Devices)
			index[r.Device] = i
			res.Devices = append(res.Devices, DeviceRatings{Device: r.Device})
		}
		res.Devices[i].Stars[star-1]++
		res.Devices[i].Total++
	}
	return res
}
