// Package stats accumulates per-file record length statistics.
package stats

import "sort"

// Summary describes one input file.
type Summary struct {
	Path        string
	Format      string
	Compression string
	Records     int
	Bases       int64
	MinLen      int
	MaxLen      int
	N50         int
	SizeBytes   int64 // on-disk size; 0 when unknown (stdin)
}

func (s Summary) MeanLen() float64 {
	if s.Records == 0 {
		return 0
	}
	return float64(s.Bases) / float64(s.Records)
}

// Accumulator collects record lengths as a histogram, so memory grows with
// the number of distinct lengths, not records. The zero value is ready to use.
type Accumulator struct {
	hist    map[int]int64
	records int
	bases   int64
	min     int
	max     int
}

func (a *Accumulator) Add(n int) {
	if a.hist == nil {
		a.hist = make(map[int]int64)
	}
	if a.records == 0 || n < a.min {
		a.min = n
	}
	if n > a.max {
		a.max = n
	}
	a.records++
	a.bases += int64(n)
	a.hist[n]++
}

// Summary fills the length fields of a Summary.
func (a *Accumulator) Summary() Summary {
	return Summary{
		Records: a.records,
		Bases:   a.bases,
		MinLen:  a.min,
		MaxLen:  a.max,
		N50:     n50(a.hist, a.bases),
	}
}

// N50 is the length L such that records of length >= L hold at least half
// of all bases.
func N50(lengths []int) int {
	var a Accumulator
	for _, n := range lengths {
		a.Add(n)
	}
	return a.Summary().N50
}

func n50(hist map[int]int64, total int64) int {
	if total == 0 {
		return 0
	}
	distinct := make([]int, 0, len(hist))
	for n := range hist {
		distinct = append(distinct, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(distinct)))
	var run int64
	for _, n := range distinct {
		run += int64(n) * hist[n]
		if 2*run >= total {
			return n
		}
	}
	return 0
}
