package internal

import "time"

type User struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
}

// DailyMetric is one merged day of wearable data for a user. Fields are
// pointers because the upstream endpoints are partial: a nil field means the
// value is unknown, never zero.
type DailyMetric struct {
	UserID string `json:"user_id"`
	Date   string `json:"date"` // YYYY-MM-DD

	// Top-line scores, 0-100, passed through verbatim from their endpoint.
	SleepScore     *int `json:"sleep_score,omitempty"`
	ActivityScore  *int `json:"activity_score,omitempty"`
	ReadinessScore *int `json:"readiness_score,omitempty"`

	// Sleep (durations in seconds)
	TotalSleepDuration *int     `json:"total_sleep_duration,omitempty"`
	DeepSleepDuration  *int     `json:"deep_sleep_duration,omitempty"`
	RemSleepDuration   *int     `json:"rem_sleep_duration,omitempty"`
	LightSleepDuration *int     `json:"light_sleep_duration,omitempty"`
	AwakeTime          *int     `json:"awake_time,omitempty"`
	SleepEfficiency    *int     `json:"sleep_efficiency,omitempty"` // 0-100
	SleepLatency       *int     `json:"sleep_latency,omitempty"`
	BedtimeStart       *string  `json:"bedtime_start,omitempty"` // ISO timestamp
	BedtimeEnd         *string  `json:"bedtime_end,omitempty"`
	AverageBreath      *float64 `json:"average_breath,omitempty"`
	AverageHeartRate   *float64 `json:"average_heart_rate,omitempty"`
	AverageHRV         *float64 `json:"average_hrv,omitempty"`
	LowestHeartRate    *float64 `json:"lowest_heart_rate,omitempty"`
	RestlessPeriods    *int     `json:"restless_periods,omitempty"`
	TimeInBed          *int     `json:"time_in_bed,omitempty"`

	// Activity (times in seconds, distance in meters)
	TotalCalories             *int     `json:"total_calories,omitempty"`
	ActiveCalories            *int     `json:"active_calories,omitempty"`
	Steps                     *int     `json:"steps,omitempty"`
	EquivalentWalkingDistance *int     `json:"equivalent_walking_distance,omitempty"`
	HighActivityTime          *int     `json:"high_activity_time,omitempty"`
	MediumActivityTime        *int     `json:"medium_activity_time,omitempty"`
	LowActivityTime           *int     `json:"low_activity_time,omitempty"`
	NonWearTime               *int     `json:"non_wear_time,omitempty"`
	RestingHeartRate          *float64 `json:"resting_heart_rate,omitempty"`

	// Readiness
	TemperatureDeviation      *float64 `json:"temperature_deviation,omitempty"` // celsius
	TemperatureTrendDeviation *float64 `json:"temperature_trend_deviation,omitempty"`

	// Readiness contributor scores, each 0-100.
	ActivityBalance         *int `json:"activity_balance,omitempty"`
	BodyTemperature         *int `json:"body_temperature_contrib,omitempty"`
	HRVBalance              *int `json:"hrv_balance,omitempty"`
	PreviousDayActivity     *int `json:"previous_day_activity,omitempty"`
	PreviousNight           *int `json:"previous_night,omitempty"`
	RecoveryIndex           *int `json:"recovery_index,omitempty"`
	RestingHeartRateContrib *int `json:"resting_heart_rate_contrib,omitempty"`
	SleepBalance            *int `json:"sleep_balance,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
}

// LifestyleEntry is one day of self-reported lifestyle data.
type LifestyleEntry struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	Date               string    `json:"date"` // YYYY-MM-DD
	CaffeineServings   *int      `json:"caffeine_servings,omitempty"`
	AlcoholServings    *int      `json:"alcohol_servings,omitempty"`
	LastAlcoholicDrink *string   `json:"last_alcoholic_drink,omitempty"` // HH:MM
	ScreentimeEnd      *string   `json:"screentime_end,omitempty"`       // HH:MM
	LastFood           *string   `json:"last_food,omitempty"`            // HH:MM
	SleepAids          []string  `json:"sleep_aids,omitempty"`
	StressLevel        *int      `json:"stress_level,omitempty"` // 1-10
	CreatedAt          time.Time `json:"created_at,omitempty"`
}

// Insight categories, closed set.
const (
	InsightSleepConsistency = "sleep-consistency"
	InsightCaffeineImpact   = "caffeine-impact"
	InsightAlcoholImpact    = "alcohol-impact"
	InsightStressLevel      = "stress-level"
	InsightScreenTime       = "screen-time"
	InsightSleepAidUsage    = "sleep-aid-usage"
	InsightInsufficientData = "insufficient-data"
)

// Insight types, mirroring how they are presented to the user.
const (
	InsightTypePositive   = "positive"
	InsightTypeWarning    = "warning"
	InsightTypeSuggestion = "suggestion"
)

// Insight severities.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Insight is produced fresh on every analysis pass; it has no identity and is
// never persisted.
type Insight struct {
	Category  string `json:"category"`
	Type      string `json:"type"`
	Severity  string `json:"severity"`
	Narrative string `json:"narrative"`
}

// MergeDailyMetric copies every non-nil field of src into dst. Absent fields
// of src never erase a value already present in dst. Identity fields are left
// untouched.
func MergeDailyMetric(dst, src *DailyMetric) {
	if src.SleepScore != nil {
		dst.SleepScore = src.SleepScore
	}
	if src.ActivityScore != nil {
		dst.ActivityScore = src.ActivityScore
	}
	if src.ReadinessScore != nil {
		dst.ReadinessScore = src.ReadinessScore
	}
	if src.TotalSleepDuration != nil {
		dst.TotalSleepDuration = src.TotalSleepDuration
	}
	if src.DeepSleepDuration != nil {
		dst.DeepSleepDuration = src.DeepSleepDuration
	}
	if src.RemSleepDuration != nil {
		dst.RemSleepDuration = src.RemSleepDuration
	}
	if src.LightSleepDuration != nil {
		dst.LightSleepDuration = src.LightSleepDuration
	}
	if src.AwakeTime != nil {
		dst.AwakeTime = src.AwakeTime
	}
	if src.SleepEfficiency != nil {
		dst.SleepEfficiency = src.SleepEfficiency
	}
	if src.SleepLatency != nil {
		dst.SleepLatency = src.SleepLatency
	}
	if src.BedtimeStart != nil {
		dst.BedtimeStart = src.BedtimeStart
	}
	if src.BedtimeEnd != nil {
		dst.BedtimeEnd = src.BedtimeEnd
	}
	if src.AverageBreath != nil {
		dst.AverageBreath = src.AverageBreath
	}
	if src.AverageHeartRate != nil {
		dst.AverageHeartRate = src.AverageHeartRate
	}
	if src.AverageHRV != nil {
		dst.AverageHRV = src.AverageHRV
	}
	if src.LowestHeartRate != nil {
		dst.LowestHeartRate = src.LowestHeartRate
	}
	if src.RestlessPeriods != nil {
		dst.RestlessPeriods = src.RestlessPeriods
	}
	if src.TimeInBed != nil {
		dst.TimeInBed = src.TimeInBed
	}
	if src.TotalCalories != nil {
		dst.TotalCalories = src.TotalCalories
	}
	if src.ActiveCalories != nil {
		dst.ActiveCalories = src.ActiveCalories
	}
	if src.Steps != nil {
		dst.Steps = src.Steps
	}
	if src.EquivalentWalkingDistance != nil {
		dst.EquivalentWalkingDistance = src.EquivalentWalkingDistance
	}
	if src.HighActivityTime != nil {
		dst.HighActivityTime = src.HighActivityTime
	}
	if src.MediumActivityTime != nil {
		dst.MediumActivityTime = src.MediumActivityTime
	}
	if src.LowActivityTime != nil {
		dst.LowActivityTime = src.LowActivityTime
	}
	if src.NonWearTime != nil {
		dst.NonWearTime = src.NonWearTime
	}
	if src.RestingHeartRate != nil {
		dst.RestingHeartRate = src.RestingHeartRate
	}
	if src.TemperatureDeviation != nil {
		dst.TemperatureDeviation = src.TemperatureDeviation
	}
	if src.TemperatureTrendDeviation != nil {
		dst.TemperatureTrendDeviation = src.TemperatureTrendDeviation
	}
	if src.ActivityBalance != nil {
		dst.ActivityBalance = src.ActivityBalance
	}
	if src.BodyTemperature != nil {
		dst.BodyTemperature = src.BodyTemperature
	}
	if src.HRVBalance != nil {
		dst.HRVBalance = src.HRVBalance
	}
	if src.PreviousDayActivity != nil {
		dst.PreviousDayActivity = src.PreviousDayActivity
	}
	if src.PreviousNight != nil {
		dst.PreviousNight = src.PreviousNight
	}
	if src.RecoveryIndex != nil {
		dst.RecoveryIndex = src.RecoveryIndex
	}
	if src.RestingHeartRateContrib != nil {
		dst.RestingHeartRateContrib = src.RestingHeartRateContrib
	}
	if src.SleepBalance != nil {
		dst.SleepBalance = src.SleepBalance
	}
}

// MergeLifestyleEntry applies src over dst with the same field-level rules
// as DailyMetric: non-nil incoming fields win, absent fields never erase.
func MergeLifestyleEntry(dst, src *LifestyleEntry) {
	if src.CaffeineServings != nil {
		dst.CaffeineServings = src.CaffeineServings
	}
	if src.AlcoholServings != nil {
		dst.AlcoholServings = src.AlcoholServings
	}
	if src.LastAlcoholicDrink != nil {
		dst.LastAlcoholicDrink = src.LastAlcoholicDrink
	}
	if src.ScreentimeEnd != nil {
		dst.ScreentimeEnd = src.ScreentimeEnd
	}
	if src.LastFood != nil {
		dst.LastFood = src.LastFood
	}
	if src.SleepAids != nil {
		dst.SleepAids = src.SleepAids
	}
	if src.StressLevel != nil {
		dst.StressLevel = src.StressLevel
	}
}
