// Package temporal converts a date range, frequency, trend rate, and spike
// overrides into a per-period row-count schedule, and drives table
// generation once per period.
package temporal

import (
	"fmt"
	"math"
	"time"
)

type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

const dateLayout = "2006-01-02"

// Trend rates outside this band compound into useless volumes fast.
const (
	MinTrendRate = -0.20
	MaxTrendRate = 0.20
)

// Policy describes a temporal volume pattern. Spikes map ISO dates to
// multiplicative overrides; a spike applies to the period whose window
// contains its date.
type Policy struct {
	Start     time.Time
	End       time.Time
	Frequency Frequency
	BaseCount int
	TrendRate float64
	Spikes    map[string]float64
}

func (p Policy) Validate() error {
	if p.End.Before(p.Start) {
		return fmt.Errorf("end date %s is before start date %s",
			p.End.Format(dateLayout), p.Start.Format(dateLayout))
	}
	switch p.Frequency {
	case Daily, Weekly, Monthly:
	default:
		return fmt.Errorf("unknown frequency %q", p.Frequency)
	}
	if p.BaseCount < 0 {
		return fmt.Errorf("negative base count %d", p.BaseCount)
	}
	if p.TrendRate < MinTrendRate || p.TrendRate > MaxTrendRate {
		return fmt.Errorf("trend rate %.2f outside [%.2f, %.2f]", p.TrendRate, MinTrendRate, MaxTrendRate)
	}
	for key := range p.Spikes {
		if _, err := time.Parse(dateLayout, key); err != nil {
			return fmt.Errorf("invalid spike date %q: %w", key, err)
		}
	}
	return nil
}

// Period is one scheduled generation window. Start is inclusive, End
// exclusive; Label is the ISO date of Start and doubles as the partition
// value for downstream output.
type Period struct {
	Label string
	Start time.Time
	End   time.Time
	Count int
}

// Schedule enumerates periods chronologically from Start to End inclusive,
// aligned to Start (weekly periods begin on Start's weekday, monthly on
// its day of month). Period i carries round(base * (1+trend)^i) rows,
// floored at zero, multiplied by every spike whose date falls inside the
// period window. This is also the volume preview: it reports counts
// without generating any data.
func Schedule(p Policy) ([]Period, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var periods []Period
	for i, cur := 0, p.Start; !cur.After(p.End); i++ {
		next := advance(cur, p.Frequency)
		count := int(math.Round(float64(p.BaseCount) * math.Pow(1+p.TrendRate, float64(i))))
		if count < 0 {
			count = 0
		}
		count = int(float64(count) * spikeFactor(p.Spikes, cur, next))

		periods = append(periods, Period{
			Label: cur.Format(dateLayout),
			Start: cur,
			End:   next,
			Count: count,
		})
		cur = next
	}
	return periods, nil
}

func advance(t time.Time, freq Frequency) time.Time {
	switch freq {
	case Daily:
		return t.AddDate(0, 0, 1)
	case Weekly:
		return t.AddDate(0, 0, 7)
	default:
		return t.AddDate(0, 1, 0)
	}
}

// spikeFactor composes every spike falling inside [start, end)
// multiplicatively; no match means factor 1.
func spikeFactor(spikes map[string]float64, start, end time.Time) float64 {
	factor := 1.0
	for key, mult := range spikes {
		date, err := time.Parse(dateLayout, key)
		if err != nil {
			continue
		}
		if !date.Before(start) && date.Before(end) {
			factor *= mult
		}
	}
	return factor
}
