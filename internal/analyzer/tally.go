package analyzer

import "sort"

// tally counts keys while remembering first-seen order, so rankings break
// count ties by encounter order.
type tally[K comparable] struct {
	order  []K
	counts map[K]int
}

func newTally[K comparable]() *tally[K] {
	return &tally[K]{counts: make(map[K]int)}
}

func (t *tally[K]) Add(key K) {
	if _, seen := t.counts[key]; !seen {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

type keyCount[K comparable] struct {
	Key   K
	Count int
}

// Ranked returns every entry sorted by count descending; equal counts keep
// first-seen order.
func (t *tally[K]) Ranked() []keyCount[K] {
	ranked := make([]keyCount[K], 0, len(t.order))
	for _, k := range t.order {
		ranked = append(ranked, keyCount[K]{Key: k, Count: t.counts[k]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

func topN[K comparable](entries []keyCount[K], n int) []keyCount[K] {
	if len(entries) > n {
		return entries[:n]
	}
	return entries
}
