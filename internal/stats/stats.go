// Package stats keeps a rolling window of compliance scores.
package stats

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp time.Time
	score     int
	compliant bool
}

// Snapshot is a point-in-time aggregate of recorded compliance results.
type Snapshot struct {
	Count         int     `json:"count"`
	Compliant     int     `json:"compliant"`
	CompliantRate float64 `json:"compliant_rate"`
	MinScore      int     `json:"min_score"`
	MaxScore      int     `json:"max_score"`
	AvgScore      float64 `json:"avg_score"`
	P50Score      float64 `json:"p50_score"`
	P95Score      float64 `json:"p95_score"`
}

// Compliance tracks recent document scores within a rolling window.
// Safe for concurrent use.
type Compliance struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
	now     func() time.Time
}

func NewCompliance(maxAge time.Duration) *Compliance {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Compliance{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
		now:     time.Now,
	}
}

func (c *Compliance) Record(score int, compliant bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.pruneLocked(now)
	c.samples = append(c.samples, sample{
		timestamp: now,
		score:     score,
		compliant: compliant,
	})
}

func (c *Compliance) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pruneLocked(c.now())
	if len(c.samples) == 0 {
		return Snapshot{}
	}

	values := make([]int, 0, len(c.samples))
	var sum, compliant int
	for _, s := range c.samples {
		values = append(values, s.score)
		sum += s.score
		if s.compliant {
			compliant++
		}
	}
	sort.Ints(values)

	n := len(values)
	return Snapshot{
		Count:         n,
		Compliant:     compliant,
		CompliantRate: float64(compliant) / float64(n),
		MinScore:      values[0],
		MaxScore:      values[n-1],
		AvgScore:      float64(sum) / float64(n),
		P50Score:      percentile(values, 50),
		P95Score:      percentile(values, 95),
	}
}

func (c *Compliance) pruneLocked(now time.Time) {
	cutoff := now.Add(-c.maxAge)
	writeIdx := 0
	for _, s := range c.samples {
		if !s.timestamp.Before(cutoff) {
			c.samples[writeIdx] = s
			writeIdx++
		}
	}
	c.samples = c.samples[:writeIdx]
}

// percentile interpolates linearly between the closest ranks of sorted.
func percentile(sorted []int, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sorted[0])
	}
	if pct >= 100 {
		return float64(sorted[len(sorted)-1])
	}

	index := (float64(len(sorted)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return float64(sorted[lower])
	}
	weight := index - float64(lower)
	lo := float64(sorted[lower])
	hi := float64(sorted[upper])
	return lo + (hi-lo)*weight
}
