package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestScheduleWeeklyTrendAndSpike(t *testing.T) {
	policy := Policy{
		Start:     date(2024, 1, 1),
		End:       date(2024, 1, 22),
		Frequency: Weekly,
		BaseCount: 100,
		TrendRate: 0.10,
		Spikes:    map[string]float64{"2024-01-15": 3.0},
	}

	periods, err := Schedule(policy)
	require.NoError(t, err)
	require.Len(t, periods, 4)

	labels := []string{"2024-01-01", "2024-01-08", "2024-01-15", "2024-01-22"}
	counts := []int{100, 110, 363, 133}
	for i, p := range periods {
		assert.Equal(t, labels[i], p.Label)
		assert.Equal(t, counts[i], p.Count, "period %s", p.Label)
	}
}

func TestScheduleDaily(t *testing.T) {
	policy := Policy{
		Start:     date(2024, 3, 1),
		End:       date(2024, 3, 5),
		Frequency: Daily,
		BaseCount: 10,
	}
	periods, err := Schedule(policy)
	require.NoError(t, err)
	require.Len(t, periods, 5)
	for _, p := range periods {
		assert.Equal(t, 10, p.Count)
	}
}

func TestScheduleMonthlyAlignment(t *testing.T) {
	policy := Policy{
		Start:     date(2024, 1, 15),
		End:       date(2024, 4, 15),
		Frequency: Monthly,
		BaseCount: 50,
	}
	periods, err := Schedule(policy)
	require.NoError(t, err)
	require.Len(t, periods, 4)
	assert.Equal(t, "2024-02-15", periods[1].Label)
	assert.Equal(t, "2024-04-15", periods[3].Label)
}

func TestScheduleNegativeTrendFloorsAtZero(t *testing.T) {
	policy := Policy{
		Start:     date(2024, 1, 1),
		End:       date(2024, 3, 1),
		Frequency: Daily,
		BaseCount: 1,
		TrendRate: -0.20,
	}
	periods, err := Schedule(policy)
	require.NoError(t, err)
	last := periods[len(periods)-1]
	assert.Equal(t, 0, last.Count, "compounding decline must floor at zero, not go negative")
}

func TestScheduleSpikesCompose(t *testing.T) {
	policy := Policy{
		Start:     date(2024, 1, 1),
		End:       date(2024, 1, 7),
		Frequency: Weekly,
		BaseCount: 100,
		// Two spikes inside the same weekly window multiply together.
		Spikes: map[string]float64{"2024-01-02": 2.0, "2024-01-03": 1.5},
	}
	periods, err := Schedule(policy)
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.Equal(t, 300, periods[0].Count)
}

func TestScheduleDeterministic(t *testing.T) {
	policy := Policy{
		Start:     date(2024, 1, 1),
		End:       date(2024, 6, 1),
		Frequency: Weekly,
		BaseCount: 100,
		TrendRate: 0.05,
		Spikes:    map[string]float64{"2024-02-05": 2.0, "2024-03-04": 0.5},
	}
	a, err := Schedule(policy)
	require.NoError(t, err)
	b, err := Schedule(policy)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPolicyValidation(t *testing.T) {
	base := Policy{
		Start:     date(2024, 1, 1),
		End:       date(2024, 2, 1),
		Frequency: Daily,
		BaseCount: 10,
	}

	bad := base
	bad.End = date(2023, 1, 1)
	_, err := Schedule(bad)
	assert.Error(t, err, "end before start")

	bad = base
	bad.Frequency = "hourly"
	_, err = Schedule(bad)
	assert.Error(t, err, "unknown frequency")

	bad = base
	bad.TrendRate = 0.25
	_, err = Schedule(bad)
	assert.Error(t, err, "trend rate above bound")

	bad = base
	bad.Spikes = map[string]float64{"January 5": 2.0}
	_, err = Schedule(bad)
	assert.Error(t, err, "unparseable spike date")
}
