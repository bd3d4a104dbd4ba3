package aggregate

// LabelCount is one entry of an ordered label → count mapping.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// counter counts labels while remembering first-seen order.
type counter struct {
	index   map[string]int
	entries []LabelCount
}

func newCounter() *counter {
	return &counter{index: make(map[string]int)}
}

func (c *counter) add(label string) {
	if i, ok := c.index[label]; ok {
		c.entries[i].Count++
		return
	}
	c.index[label] = len(c.entries)
	c.entries = append(c.entries, LabelCount{Label: label, Count: 1})
}

func (c *counter) result() []LabelCount {
	if len(c.entries) == 0 {
		return []LabelCount{}
	}
	return c.entries
}

// Counts converts an ordered count list into a plain map.
func Counts(entries []LabelCount) map[string]int {
	m := make(map[string]int, len(entries))
	for _, e := range entries {
		m[e.Label] += e.Count
	}
	return m
}

// Sum returns the total of all counts.
func Sum(entries []LabelCount) int {
	n := 0
	for _, e := range entries {
		n += e.Count
	}
	return n
}
