package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alonkrifcher/aura-insight-whisperer/internal/oura"
)

func iptr(v int) *int         { return &v }
func fptr(v float64) *float64 { return &v }
func sptr(v string) *string   { return &v }

func TestMergeCreatesOneRecordPerDay(t *testing.T) {
	res := &oura.ResultSet{
		DailySleep: []oura.DailySleep{
			{Day: "2025-06-02", Score: iptr(81)},
			{Day: "2025-06-01", Score: iptr(77)},
		},
		Activity: []oura.DailyActivity{
			{Day: "2025-06-01", Score: iptr(90), Steps: iptr(10400)},
		},
	}

	out := MergeDailyMetrics("u1", res)
	require.Len(t, out.Records, 2)
	assert.Equal(t, 0, out.Skipped)

	// Sorted by date ascending.
	assert.Equal(t, "2025-06-01", out.Records[0].Date)
	assert.Equal(t, "2025-06-02", out.Records[1].Date)

	first := out.Records[0]
	assert.Equal(t, "u1", first.UserID)
	require.NotNil(t, first.SleepScore)
	assert.Equal(t, 77, *first.SleepScore)
	require.NotNil(t, first.ActivityScore)
	assert.Equal(t, 90, *first.ActivityScore)
	require.NotNil(t, first.Steps)
	assert.Equal(t, 10400, *first.Steps)
}

func TestMergeIdempotence(t *testing.T) {
	res := &oura.ResultSet{
		DailySleep: []oura.DailySleep{{Day: "2025-06-01", Score: iptr(85)}},
		SleepPeriods: []oura.SleepPeriod{
			{Day: "2025-06-01", TotalSleepDuration: iptr(27000), Efficiency: iptr(93)},
		},
		HeartRate: []oura.HeartRateSample{
			{BPM: 58, Timestamp: "2025-06-01T03:00:00Z"},
		},
	}

	once := MergeDailyMetrics("u1", res)
	twice := MergeDailyMetrics("u1", res)
	assert.Equal(t, once, twice)
}

func TestMergeRestingHeartRatePrecedence(t *testing.T) {
	// The activity endpoint's resting heart rate wins over the sample mean.
	res := &oura.ResultSet{
		Activity: []oura.DailyActivity{
			{Day: "2025-06-01", RestingHeartRate: fptr(58)},
		},
		HeartRate: []oura.HeartRateSample{
			{BPM: 60, Timestamp: "2025-06-01T02:00:00Z"},
			{BPM: 62, Timestamp: "2025-06-01T04:00:00Z"},
		},
	}

	out := MergeDailyMetrics("u1", res)
	require.Len(t, out.Records, 1)
	require.NotNil(t, out.Records[0].RestingHeartRate)
	assert.Equal(t, 58.0, *out.Records[0].RestingHeartRate)
}

func TestMergeHeartRateFillsUnsetRestingHeartRate(t *testing.T) {
	res := &oura.ResultSet{
		HeartRate: []oura.HeartRateSample{
			{BPM: 60, Timestamp: "2025-06-01T02:00:00Z"},
			{BPM: 62, Timestamp: "2025-06-01T04:00:00Z"},
		},
	}

	out := MergeDailyMetrics("u1", res)
	require.Len(t, out.Records, 1)
	require.NotNil(t, out.Records[0].RestingHeartRate)
	assert.Equal(t, 61.0, *out.Records[0].RestingHeartRate)
}

func TestMergeDetailedSleepEfficiencyWins(t *testing.T) {
	res := &oura.ResultSet{
		DailySleep: []oura.DailySleep{
			{Day: "2025-06-01", Score: iptr(80), Contributors: oura.SleepContributors{Efficiency: iptr(75)}},
		},
		SleepPeriods: []oura.SleepPeriod{
			{Day: "2025-06-01", Efficiency: iptr(92)},
		},
	}

	out := MergeDailyMetrics("u1", res)
	require.Len(t, out.Records, 1)
	require.NotNil(t, out.Records[0].SleepEfficiency)
	assert.Equal(t, 92, *out.Records[0].SleepEfficiency)
}

func TestMergeAbsentFieldsStayAbsent(t *testing.T) {
	res := &oura.ResultSet{
		DailySleep: []oura.DailySleep{{Day: "2025-06-01", Score: iptr(84)}},
	}

	out := MergeDailyMetrics("u1", res)
	require.Len(t, out.Records, 1)
	r := out.Records[0]
	assert.Nil(t, r.Steps)
	assert.Nil(t, r.ActivityScore)
	assert.Nil(t, r.ReadinessScore)
	assert.Nil(t, r.TotalSleepDuration)
	assert.Nil(t, r.RestingHeartRate)
	assert.Nil(t, r.TemperatureDeviation)
}

func TestMergeSkipsMalformedDayKeys(t *testing.T) {
	res := &oura.ResultSet{
		DailySleep: []oura.DailySleep{
			{Day: "2025-06-01", Score: iptr(84)},
			{Day: "", Score: iptr(70)},
			{Day: "06/02/2025", Score: iptr(71)},
		},
	}

	out := MergeDailyMetrics("u1", res)
	assert.Len(t, out.Records, 1)
	assert.Equal(t, 2, out.Skipped)
}

func TestMergeSkipsMalformedSampleTimestamps(t *testing.T) {
	res := &oura.ResultSet{
		HeartRate: []oura.HeartRateSample{
			{BPM: 60, Timestamp: "not-a-timestamp"},
		},
	}

	out := MergeDailyMetrics("u1", res)
	assert.Empty(t, out.Records)
	assert.Equal(t, 1, out.Skipped)
}

func TestMergeEmptyResultSet(t *testing.T) {
	out := MergeDailyMetrics("u1", &oura.ResultSet{})
	assert.Empty(t, out.Records)
	assert.Equal(t, 0, out.Skipped)
}

func TestMergeReadinessContributors(t *testing.T) {
	res := &oura.ResultSet{
		Readiness: []oura.DailyReadiness{{
			Day:                  "2025-06-01",
			Score:                iptr(72),
			TemperatureDeviation: fptr(-0.2),
			Contributors: oura.ReadinessContributors{
				HRVBalance:       iptr(65),
				RecoveryIndex:    iptr(80),
				RestingHeartRate: iptr(88),
			},
		}},
	}

	out := MergeDailyMetrics("u1", res)
	require.Len(t, out.Records, 1)
	r := out.Records[0]
	require.NotNil(t, r.ReadinessScore)
	assert.Equal(t, 72, *r.ReadinessScore)
	require.NotNil(t, r.HRVBalance)
	assert.Equal(t, 65, *r.HRVBalance)
	require.NotNil(t, r.RestingHeartRateContrib)
	assert.Equal(t, 88, *r.RestingHeartRateContrib)
	assert.Nil(t, r.ActivityBalance)
}
