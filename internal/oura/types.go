package oura

// Endpoint names one upstream Oura API collection.
type Endpoint string

const (
	EndpointDailySleep     Endpoint = "daily_sleep"
	EndpointSleepPeriods   Endpoint = "sleep"
	EndpointDailyActivity  Endpoint = "daily_activity"
	EndpointDailyReadiness Endpoint = "daily_readiness"
	EndpointHeartRate      Endpoint = "heartrate"
)

// Endpoints lists every collection in discovery order. The merge step relies
// on this order, not on completion order of the fetches.
var Endpoints = []Endpoint{
	EndpointDailySleep,
	EndpointSleepPeriods,
	EndpointDailyActivity,
	EndpointDailyReadiness,
	EndpointHeartRate,
}

// Every field below is a pointer: the API omits fields freely and an absent
// value must stay absent through the pipeline.

type DailySleep struct {
	Day          string            `json:"day"`
	Score        *int              `json:"score"`
	Contributors SleepContributors `json:"contributors"`
}

type SleepContributors struct {
	Efficiency *int `json:"efficiency"`
}

// SleepPeriod is one detailed sleep session from the `sleep` collection.
type SleepPeriod struct {
	Day                string   `json:"day"`
	TotalSleepDuration *int     `json:"total_sleep_duration"`
	DeepSleepDuration  *int     `json:"deep_sleep_duration"`
	RemSleepDuration   *int     `json:"rem_sleep_duration"`
	LightSleepDuration *int     `json:"light_sleep_duration"`
	AwakeTime          *int     `json:"awake_time"`
	Efficiency         *int     `json:"efficiency"`
	Latency            *int     `json:"latency"`
	BedtimeStart       *string  `json:"bedtime_start"`
	BedtimeEnd         *string  `json:"bedtime_end"`
	AverageBreath      *float64 `json:"average_breath"`
	AverageHeartRate   *float64 `json:"average_heart_rate"`
	AverageHRV         *float64 `json:"average_hrv"`
	LowestHeartRate    *float64 `json:"lowest_heart_rate"`
	RestlessPeriods    *int     `json:"restless_periods"`
	TimeInBed          *int     `json:"time_in_bed"`
}

type DailyActivity struct {
	Day                       string   `json:"day"`
	Score                     *int     `json:"score"`
	TotalCalories             *int     `json:"total_calories"`
	ActiveCalories            *int     `json:"active_calories"`
	Steps                     *int     `json:"steps"`
	EquivalentWalkingDistance *int     `json:"equivalent_walking_distance"`
	HighActivityTime          *int     `json:"high_activity_time"`
	MediumActivityTime        *int     `json:"medium_activity_time"`
	LowActivityTime           *int     `json:"low_activity_time"`
	NonWearTime               *int     `json:"non_wear_time"`
	RestingHeartRate          *float64 `json:"resting_heart_rate"`
}

type DailyReadiness struct {
	Day                       string                `json:"day"`
	Score                     *int                  `json:"score"`
	TemperatureDeviation      *float64              `json:"temperature_deviation"`
	TemperatureTrendDeviation *float64              `json:"temperature_trend_deviation"`
	Contributors              ReadinessContributors `json:"contributors"`
}

type ReadinessContributors struct {
	ActivityBalance     *int `json:"activity_balance"`
	BodyTemperature     *int `json:"body_temperature"`
	HRVBalance          *int `json:"hrv_balance"`
	PreviousDayActivity *int `json:"previous_day_activity"`
	PreviousNight       *int `json:"previous_night"`
	RecoveryIndex       *int `json:"recovery_index"`
	RestingHeartRate    *int `json:"resting_heart_rate"`
	SleepBalance        *int `json:"sleep_balance"`
}

type HeartRateSample struct {
	BPM       int    `json:"bpm"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"` // RFC3339
}

// ResultSet holds the outcome of fetching every endpoint for one date range.
// A failed endpoint leaves its data slice empty and records the failure in
// Errors; the rest of the set stays usable.
type ResultSet struct {
	DailySleep   []DailySleep
	SleepPeriods []SleepPeriod
	Activity     []DailyActivity
	Readiness    []DailyReadiness
	HeartRate    []HeartRateSample

	Errors map[Endpoint]error
}

// AllFailed reports whether no endpoint returned data. This is the only
// condition that fails a sync outright.
func (r *ResultSet) AllFailed() bool {
	return len(r.Errors) == len(Endpoints)
}

// FailedEndpoints returns the names of endpoints that failed, in discovery
// order.
func (r *ResultSet) FailedEndpoints() []string {
	var failed []string
	for _, e := range Endpoints {
		if _, ok := r.Errors[e]; ok {
			failed = append(failed, string(e))
		}
	}
	return failed
}
