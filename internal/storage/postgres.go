package storage

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alonkrifcher/aura-insight-whisperer/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	s := &PostgresStorage{pool: pool, logger: logger}
	if err := s.ensureSchema(ctx); err != nil {
		logger.Errorf("failed to ensure schema: %v", err)
		return nil, err
	}
	return s, nil
}

func (p *PostgresStorage) ensureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS users (
	id    TEXT PRIMARY KEY,
	token TEXT UNIQUE NOT NULL,
	name  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS daily_metrics (
	user_id TEXT NOT NULL,
	date    TEXT NOT NULL,
	sleep_score INT,
	activity_score INT,
	readiness_score INT,
	total_sleep_duration INT,
	deep_sleep_duration INT,
	rem_sleep_duration INT,
	light_sleep_duration INT,
	awake_time INT,
	sleep_efficiency INT,
	sleep_latency INT,
	bedtime_start TEXT,
	bedtime_end TEXT,
	average_breath DOUBLE PRECISION,
	average_heart_rate DOUBLE PRECISION,
	average_hrv DOUBLE PRECISION,
	lowest_heart_rate DOUBLE PRECISION,
	restless_periods INT,
	time_in_bed INT,
	total_calories INT,
	active_calories INT,
	steps INT,
	equivalent_walking_distance INT,
	high_activity_time INT,
	medium_activity_time INT,
	low_activity_time INT,
	non_wear_time INT,
	resting_heart_rate DOUBLE PRECISION,
	temperature_deviation DOUBLE PRECISION,
	temperature_trend_deviation DOUBLE PRECISION,
	activity_balance INT,
	body_temperature_contrib INT,
	hrv_balance INT,
	previous_day_activity INT,
	previous_night INT,
	recovery_index INT,
	resting_heart_rate_contrib INT,
	sleep_balance INT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, date)
);
CREATE TABLE IF NOT EXISTS lifestyle_entries (
	id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	date TEXT NOT NULL,
	caffeine_servings INT,
	alcohol_servings INT,
	last_alcoholic_drink TEXT,
	screentime_end TEXT,
	last_food TEXT,
	sleep_aids TEXT[],
	stress_level INT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, date)
);`)
	return err
}

const dailyMetricColumns = `user_id, date, sleep_score, activity_score, readiness_score,
	total_sleep_duration, deep_sleep_duration, rem_sleep_duration, light_sleep_duration,
	awake_time, sleep_efficiency, sleep_latency, bedtime_start, bedtime_end,
	average_breath, average_heart_rate, average_hrv, lowest_heart_rate,
	restless_periods, time_in_bed, total_calories, active_calories, steps,
	equivalent_walking_distance, high_activity_time, medium_activity_time,
	low_activity_time, non_wear_time, resting_heart_rate, temperature_deviation,
	temperature_trend_deviation, activity_balance, body_temperature_contrib,
	hrv_balance, previous_day_activity, previous_night, recovery_index,
	resting_heart_rate_contrib, sleep_balance`

// The conflict target is the natural key; every non-key column merges with
// COALESCE so an absent incoming field never erases a stored value.
const upsertDailyMetricSQL = `INSERT INTO daily_metrics (` + dailyMetricColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
	$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31,
	$32, $33, $34, $35, $36, $37, $38, $39)
ON CONFLICT (user_id, date) DO UPDATE SET
	sleep_score = COALESCE(EXCLUDED.sleep_score, daily_metrics.sleep_score),
	activity_score = COALESCE(EXCLUDED.activity_score, daily_metrics.activity_score),
	readiness_score = COALESCE(EXCLUDED.readiness_score, daily_metrics.readiness_score),
	total_sleep_duration = COALESCE(EXCLUDED.total_sleep_duration, daily_metrics.total_sleep_duration),
	deep_sleep_duration = COALESCE(EXCLUDED.deep_sleep_duration, daily_metrics.deep_sleep_duration),
	rem_sleep_duration = COALESCE(EXCLUDED.rem_sleep_duration, daily_metrics.rem_sleep_duration),
	light_sleep_duration = COALESCE(EXCLUDED.light_sleep_duration, daily_metrics.light_sleep_duration),
	awake_time = COALESCE(EXCLUDED.awake_time, daily_metrics.awake_time),
	sleep_efficiency = COALESCE(EXCLUDED.sleep_efficiency, daily_metrics.sleep_efficiency),
	sleep_latency = COALESCE(EXCLUDED.sleep_latency, daily_metrics.sleep_latency),
	bedtime_start = COALESCE(EXCLUDED.bedtime_start, daily_metrics.bedtime_start),
	bedtime_end = COALESCE(EXCLUDED.bedtime_end, daily_metrics.bedtime_end),
	average_breath = COALESCE(EXCLUDED.average_breath, daily_metrics.average_breath),
	average_heart_rate = COALESCE(EXCLUDED.average_heart_rate, daily_metrics.average_heart_rate),
	average_hrv = COALESCE(EXCLUDED.average_hrv, daily_metrics.average_hrv),
	lowest_heart_rate = COALESCE(EXCLUDED.lowest_heart_rate, daily_metrics.lowest_heart_rate),
	restless_periods = COALESCE(EXCLUDED.restless_periods, daily_metrics.restless_periods),
	time_in_bed = COALESCE(EXCLUDED.time_in_bed, daily_metrics.time_in_bed),
	total_calories = COALESCE(EXCLUDED.total_calories, daily_metrics.total_calories),
	active_calories = COALESCE(EXCLUDED.active_calories, daily_metrics.active_calories),
	steps = COALESCE(EXCLUDED.steps, daily_metrics.steps),
	equivalent_walking_distance = COALESCE(EXCLUDED.equivalent_walking_distance, daily_metrics.equivalent_walking_distance),
	high_activity_time = COALESCE(EXCLUDED.high_activity_time, daily_metrics.high_activity_time),
	medium_activity_time = COALESCE(EXCLUDED.medium_activity_time, daily_metrics.medium_activity_time),
	low_activity_time = COALESCE(EXCLUDED.low_activity_time, daily_metrics.low_activity_time),
	non_wear_time = COALESCE(EXCLUDED.non_wear_time, daily_metrics.non_wear_time),
	resting_heart_rate = COALESCE(EXCLUDED.resting_heart_rate, daily_metrics.resting_heart_rate),
	temperature_deviation = COALESCE(EXCLUDED.temperature_deviation, daily_metrics.temperature_deviation),
	temperature_trend_deviation = COALESCE(EXCLUDED.temperature_trend_deviation, daily_metrics.temperature_trend_deviation),
	activity_balance = COALESCE(EXCLUDED.activity_balance, daily_metrics.activity_balance),
	body_temperature_contrib = COALESCE(EXCLUDED.body_temperature_contrib, daily_metrics.body_temperature_contrib),
	hrv_balance = COALESCE(EXCLUDED.hrv_balance, daily_metrics.hrv_balance),
	previous_day_activity = COALESCE(EXCLUDED.previous_day_activity, daily_metrics.previous_day_activity),
	previous_night = COALESCE(EXCLUDED.previous_night, daily_metrics.previous_night),
	recovery_index = COALESCE(EXCLUDED.recovery_index, daily_metrics.recovery_index),
	resting_heart_rate_contrib = COALESCE(EXCLUDED.resting_heart_rate_contrib, daily_metrics.resting_heart_rate_contrib),
	sleep_balance = COALESCE(EXCLUDED.sleep_balance, daily_metrics.sleep_balance)`

// --- DailyMetricRepository ---

func (p *PostgresStorage) UpsertDailyMetrics(ctx context.Context, records []internal.DailyMetric) (int, error) {
	committed := 0
	for i := range records {
		r := &records[i]
		_, err := p.pool.Exec(ctx, upsertDailyMetricSQL,
			r.UserID, r.Date, r.SleepScore, r.ActivityScore, r.ReadinessScore,
			r.TotalSleepDuration, r.DeepSleepDuration, r.RemSleepDuration, r.LightSleepDuration,
			r.AwakeTime, r.SleepEfficiency, r.SleepLatency, r.BedtimeStart, r.BedtimeEnd,
			r.AverageBreath, r.AverageHeartRate, r.AverageHRV, r.LowestHeartRate,
			r.RestlessPeriods, r.TimeInBed, r.TotalCalories, r.ActiveCalories, r.Steps,
			r.EquivalentWalkingDistance, r.HighActivityTime, r.MediumActivityTime,
			r.LowActivityTime, r.NonWearTime, r.RestingHeartRate, r.TemperatureDeviation,
			r.TemperatureTrendDeviation, r.ActivityBalance, r.BodyTemperature,
			r.HRVBalance, r.PreviousDayActivity, r.PreviousNight, r.RecoveryIndex,
			r.RestingHeartRateContrib, r.SleepBalance,
		)
		if err != nil {
			p.logger.Errorf("failed to upsert daily metric %s/%s: %v", r.UserID, r.Date, err)
			return committed, err
		}
		committed++
	}
	return committed, nil
}

func (p *PostgresStorage) ListDailyMetrics(ctx context.Context, userID string, limit int) ([]internal.DailyMetric, error) {
	rows, err := p.pool.Query(ctx, `SELECT `+dailyMetricColumns+`, created_at
		FROM daily_metrics WHERE user_id = $1
		ORDER BY date DESC LIMIT NULLIF($2, 0)`, userID, limit)
	if err != nil {
		p.logger.Errorf("failed to query daily metrics: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []internal.DailyMetric
	for rows.Next() {
		var r internal.DailyMetric
		err := rows.Scan(&r.UserID, &r.Date, &r.SleepScore, &r.ActivityScore, &r.ReadinessScore,
			&r.TotalSleepDuration, &r.DeepSleepDuration, &r.RemSleepDuration, &r.LightSleepDuration,
			&r.AwakeTime, &r.SleepEfficiency, &r.SleepLatency, &r.BedtimeStart, &r.BedtimeEnd,
			&r.AverageBreath, &r.AverageHeartRate, &r.AverageHRV, &r.LowestHeartRate,
			&r.RestlessPeriods, &r.TimeInBed, &r.TotalCalories, &r.ActiveCalories, &r.Steps,
			&r.EquivalentWalkingDistance, &r.HighActivityTime, &r.MediumActivityTime,
			&r.LowActivityTime, &r.NonWearTime, &r.RestingHeartRate, &r.TemperatureDeviation,
			&r.TemperatureTrendDeviation, &r.ActivityBalance, &r.BodyTemperature,
			&r.HRVBalance, &r.PreviousDayActivity, &r.PreviousNight, &r.RecoveryIndex,
			&r.RestingHeartRateContrib, &r.SleepBalance, &r.CreatedAt)
		if err != nil {
			p.logger.Errorf("failed to scan daily metric: %v", err)
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// --- LifestyleRepository ---

func (p *PostgresStorage) UpsertLifestyleEntry(ctx context.Context, e *internal.LifestyleEntry) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO lifestyle_entries
	(id, user_id, date, caffeine_servings, alcohol_servings, last_alcoholic_drink,
	 screentime_end, last_food, sleep_aids, stress_level, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (user_id, date) DO UPDATE SET
	caffeine_servings = COALESCE(EXCLUDED.caffeine_servings, lifestyle_entries.caffeine_servings),
	alcohol_servings = COALESCE(EXCLUDED.alcohol_servings, lifestyle_entries.alcohol_servings),
	last_alcoholic_drink = COALESCE(EXCLUDED.last_alcoholic_drink, lifestyle_entries.last_alcoholic_drink),
	screentime_end = COALESCE(EXCLUDED.screentime_end, lifestyle_entries.screentime_end),
	last_food = COALESCE(EXCLUDED.last_food, lifestyle_entries.last_food),
	sleep_aids = COALESCE(EXCLUDED.sleep_aids, lifestyle_entries.sleep_aids),
	stress_level = COALESCE(EXCLUDED.stress_level, lifestyle_entries.stress_level)`,
		e.ID, e.UserID, e.Date, e.CaffeineServings, e.AlcoholServings, e.LastAlcoholicDrink,
		e.ScreentimeEnd, e.LastFood, e.SleepAids, e.StressLevel, e.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to upsert lifestyle entry %s/%s: %v", e.UserID, e.Date, err)
	}
	return err
}

func (p *PostgresStorage) ListLifestyleEntries(ctx context.Context, userID string, limit int) ([]internal.LifestyleEntry, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, user_id, date, caffeine_servings,
		alcohol_servings, last_alcoholic_drink, screentime_end, last_food,
		sleep_aids, stress_level, created_at
		FROM lifestyle_entries WHERE user_id = $1
		ORDER BY date DESC LIMIT NULLIF($2, 0)`, userID, limit)
	if err != nil {
		p.logger.Errorf("failed to query lifestyle entries: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []internal.LifestyleEntry
	for rows.Next() {
		var e internal.LifestyleEntry
		err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.CaffeineServings,
			&e.AlcoholServings, &e.LastAlcoholicDrink, &e.ScreentimeEnd, &e.LastFood,
			&e.SleepAids, &e.StressLevel, &e.CreatedAt)
		if err != nil {
			p.logger.Errorf("failed to scan lifestyle entry: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// --- UserRepository ---

func (p *PostgresStorage) GetUserByToken(ctx context.Context, token string) (*internal.User, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, token, name FROM users WHERE token = $1`, token)
	var u internal.User
	if err := row.Scan(&u.ID, &u.Token, &u.Name); err != nil {
		p.logger.Errorf("user not found: %v", err)
		return nil, err
	}
	return &u, nil
}

func (p *PostgresStorage) Close() {
	p.pool.Close()
}

// --- Compile-time assertions ---
var _ DailyMetricRepository = (*PostgresStorage)(nil)
var _ LifestyleRepository = (*PostgresStorage)(nil)
var _ UserRepository = (*PostgresStorage)(nil)
