package service

import (
	"sort"
	"time"

	"github.com/alonkrifcher/aura-insight-whisperer/internal"
	"github.com/alonkrifcher/aura-insight-whisperer/internal/oura"
)

const dateFormat = "2006-01-02"

// MergeResult is the output of folding one fetch into per-day records.
type MergeResult struct {
	Records []internal.DailyMetric // sorted by date ascending
	Skipped int                    // payloads dropped for a missing or malformed day key
}

// merger accumulates one day entry per valid date. Entries are created
// lazily on first touch and carry (user_id, date) from creation.
type merger struct {
	userID  string
	days    map[string]*internal.DailyMetric
	skipped int
}

// mergeStep binds an endpoint to the application of its field set. The slice
// below is the documented precedence order: when two endpoints write the same
// field, the later step wins. This order is deliberate, not an accident of
// map iteration.
type mergeStep struct {
	endpoint oura.Endpoint
	apply    func(m *merger, res *oura.ResultSet)
}

var mergeSteps = []mergeStep{
	{oura.EndpointDailySleep, (*merger).applyDailySleep},
	{oura.EndpointSleepPeriods, (*merger).applySleepPeriods},
	{oura.EndpointDailyActivity, (*merger).applyDailyActivity},
	{oura.EndpointDailyReadiness, (*merger).applyDailyReadiness},
}

// MergeDailyMetrics folds every endpoint's per-day payloads into one record
// per calendar date. It runs two phases: the structured endpoints in their
// precedence order, then the heart-rate sample aggregate, which only fills
// fields still unset. Pure; a sparse result set (failed endpoints) simply
// contributes fewer fields.
func MergeDailyMetrics(userID string, res *oura.ResultSet) MergeResult {
	m := &merger{userID: userID, days: make(map[string]*internal.DailyMetric)}

	for _, step := range mergeSteps {
		step.apply(m, res)
	}
	m.applyHeartRateSamples(res.HeartRate)

	records := make([]internal.DailyMetric, 0, len(m.days))
	for _, d := range m.days {
		records = append(records, *d)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date < records[j].Date
	})

	return MergeResult{Records: records, Skipped: m.skipped}
}

// entry returns the record for a day, creating it on first touch. A missing
// or malformed day key returns nil and counts the payload as skipped.
func (m *merger) entry(day string) *internal.DailyMetric {
	if _, err := time.Parse(dateFormat, day); err != nil {
		m.skipped++
		return nil
	}
	if d, ok := m.days[day]; ok {
		return d
	}
	d := &internal.DailyMetric{UserID: m.userID, Date: day}
	m.days[day] = d
	return d
}

func (m *merger) applyDailySleep(res *oura.ResultSet) {
	for _, s := range res.DailySleep {
		d := m.entry(s.Day)
		if d == nil {
			continue
		}
		if s.Score != nil {
			d.SleepScore = s.Score
		}
		if s.Contributors.Efficiency != nil {
			d.SleepEfficiency = s.Contributors.Efficiency
		}
	}
}

func (m *merger) applySleepPeriods(res *oura.ResultSet) {
	for _, p := range res.SleepPeriods {
		d := m.entry(p.Day)
		if d == nil {
			continue
		}
		if p.TotalSleepDuration != nil {
			d.TotalSleepDuration = p.TotalSleepDuration
		}
		if p.DeepSleepDuration != nil {
			d.DeepSleepDuration = p.DeepSleepDuration
		}
		if p.RemSleepDuration != nil {
			d.RemSleepDuration = p.RemSleepDuration
		}
		if p.LightSleepDuration != nil {
			d.LightSleepDuration = p.LightSleepDuration
		}
		if p.AwakeTime != nil {
			d.AwakeTime = p.AwakeTime
		}
		// Overwrites the daily_sleep contributor efficiency on purpose: the
		// detailed sleep endpoint is later in the precedence order.
		if p.Efficiency != nil {
			d.SleepEfficiency = p.Efficiency
		}
		if p.Latency != nil {
			d.SleepLatency = p.Latency
		}
		if p.BedtimeStart != nil {
			d.BedtimeStart = p.BedtimeStart
		}
		if p.BedtimeEnd != nil {
			d.BedtimeEnd = p.BedtimeEnd
		}
		if p.AverageBreath != nil {
			d.AverageBreath = p.AverageBreath
		}
		if p.AverageHeartRate != nil {
			d.AverageHeartRate = p.AverageHeartRate
		}
		if p.AverageHRV != nil {
			d.AverageHRV = p.AverageHRV
		}
		if p.LowestHeartRate != nil {
			d.LowestHeartRate = p.LowestHeartRate
		}
		if p.RestlessPeriods != nil {
			d.RestlessPeriods = p.RestlessPeriods
		}
		if p.TimeInBed != nil {
			d.TimeInBed = p.TimeInBed
		}
	}
}

func (m *merger) applyDailyActivity(res *oura.ResultSet) {
	for _, a := range res.Activity {
		d := m.entry(a.Day)
		if d == nil {
			continue
		}
		if a.Score != nil {
			d.ActivityScore = a.Score
		}
		if a.TotalCalories != nil {
			d.TotalCalories = a.TotalCalories
		}
		if a.ActiveCalories != nil {
			d.ActiveCalories = a.ActiveCalories
		}
		if a.Steps != nil {
			d.Steps = a.Steps
		}
		if a.EquivalentWalkingDistance != nil {
			d.EquivalentWalkingDistance = a.EquivalentWalkingDistance
		}
		if a.HighActivityTime != nil {
			d.HighActivityTime = a.HighActivityTime
		}
		if a.MediumActivityTime != nil {
			d.MediumActivityTime = a.MediumActivityTime
		}
		if a.LowActivityTime != nil {
			d.LowActivityTime = a.LowActivityTime
		}
		if a.NonWearTime != nil {
			d.NonWearTime = a.NonWearTime
		}
		if a.RestingHeartRate != nil {
			d.RestingHeartRate = a.RestingHeartRate
		}
	}
}

func (m *merger) applyDailyReadiness(res *oura.ResultSet) {
	for _, r := range res.Readiness {
		d := m.entry(r.Day)
		if d == nil {
			continue
		}
		if r.Score != nil {
			d.ReadinessScore = r.Score
		}
		if r.TemperatureDeviation != nil {
			d.TemperatureDeviation = r.TemperatureDeviation
		}
		if r.TemperatureTrendDeviation != nil {
			d.TemperatureTrendDeviation = r.TemperatureTrendDeviation
		}
		c := r.Contributors
		if c.ActivityBalance != nil {
			d.ActivityBalance = c.ActivityBalance
		}
		if c.BodyTemperature != nil {
			d.BodyTemperature = c.BodyTemperature
		}
		if c.HRVBalance != nil {
			d.HRVBalance = c.HRVBalance
		}
		if c.PreviousDayActivity != nil {
			d.PreviousDayActivity = c.PreviousDayActivity
		}
		if c.PreviousNight != nil {
			d.PreviousNight = c.PreviousNight
		}
		if c.RecoveryIndex != nil {
			d.RecoveryIndex = c.RecoveryIndex
		}
		if c.RestingHeartRate != nil {
			d.RestingHeartRateContrib = c.RestingHeartRate
		}
		if c.SleepBalance != nil {
			d.SleepBalance = c.SleepBalance
		}
	}
}

// applyHeartRateSamples is the second merge phase: the per-day mean of raw
// heart-rate samples fills resting_heart_rate only where the activity
// endpoint did not already supply it.
func (m *merger) applyHeartRateSamples(samples []oura.HeartRateSample) {
	type acc struct {
		sum   int
		count int
	}
	byDay := make(map[string]*acc)

	for _, s := range samples {
		ts, err := time.Parse(time.RFC3339, s.Timestamp)
		if err != nil {
			m.skipped++
			continue
		}
		day := ts.Format(dateFormat)
		a := byDay[day]
		if a == nil {
			a = &acc{}
			byDay[day] = a
		}
		a.sum += s.BPM
		a.count++
	}

	for day, a := range byDay {
		if a.count == 0 {
			continue
		}
		d := m.entry(day)
		if d == nil {
			continue
		}
		if d.RestingHeartRate == nil {
			avg := float64(a.sum) / float64(a.count)
			d.RestingHeartRate = &avg
		}
	}
}
