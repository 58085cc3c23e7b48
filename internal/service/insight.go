package service

import (
	"fmt"
	"sort"

	"github.com/alonkrifcher/aura-insight-whisperer/internal"
)

// DefaultInsightWindow is the number of recent days analyzed when the caller
// does not override it.
const DefaultInsightWindow = 7

// minDataPoints is the number of usable days below which the fallback
// insight mentions data scarcity.
const minDataPoints = 3

// dayFact joins the wearable record and the lifestyle entry for one date.
// Either side may be nil.
type dayFact struct {
	date   string
	metric *internal.DailyMetric
	life   *internal.LifestyleEntry
}

// insightRule evaluates one independent pattern over the window and returns
// nil when it has nothing to say. Rules never suppress each other and run in
// declaration order, which is also the output order.
type insightRule struct {
	category string
	eval     func(window []dayFact) *internal.Insight
}

var insightRules = []insightRule{
	{internal.InsightSleepConsistency, evalSleepConsistency},
	{internal.InsightCaffeineImpact, evalCaffeineImpact},
	{internal.InsightAlcoholImpact, evalAlcoholImpact},
	{internal.InsightStressLevel, evalStressLevel},
	{internal.InsightScreenTime, evalScreenTime},
	{internal.InsightSleepAidUsage, evalSleepAidUsage},
}

// GenerateInsights evaluates every rule over the most recent `window` days
// of data. If no rule fires it emits exactly one insufficient-data insight.
func GenerateInsights(metrics []internal.DailyMetric, lifestyle []internal.LifestyleEntry, window int) []internal.Insight {
	if window <= 0 {
		window = DefaultInsightWindow
	}
	facts := buildWindow(metrics, lifestyle, window)

	var insights []internal.Insight
	for _, rule := range insightRules {
		if ins := rule.eval(facts); ins != nil {
			insights = append(insights, *ins)
		}
	}

	if len(insights) == 0 {
		insights = append(insights, fallbackInsight(facts))
	}
	return insights
}

// buildWindow joins both record types by date and keeps the most recent
// `window` distinct dates, oldest first.
func buildWindow(metrics []internal.DailyMetric, lifestyle []internal.LifestyleEntry, window int) []dayFact {
	byDate := make(map[string]*dayFact)
	touch := func(date string) *dayFact {
		if f, ok := byDate[date]; ok {
			return f
		}
		f := &dayFact{date: date}
		byDate[date] = f
		return f
	}

	for i := range metrics {
		if metrics[i].Date == "" {
			continue
		}
		touch(metrics[i].Date).metric = &metrics[i]
	}
	for i := range lifestyle {
		if lifestyle[i].Date == "" {
			continue
		}
		touch(lifestyle[i].Date).life = &lifestyle[i]
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	if len(dates) > window {
		dates = dates[:window]
	}
	sort.Strings(dates)

	facts := make([]dayFact, 0, len(dates))
	for _, d := range dates {
		facts = append(facts, *byDate[d])
	}
	return facts
}

func evalSleepConsistency(window []dayFact) *internal.Insight {
	var scores []float64
	for _, f := range window {
		if f.metric != nil && f.metric.SleepScore != nil {
			scores = append(scores, float64(*f.metric.SleepScore))
		}
	}
	if len(scores) == 0 {
		return nil
	}

	m := mean(scores)
	lo, hi := scores[0], scores[0]
	for _, s := range scores {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	spread := hi - lo

	if m >= 85 {
		return &internal.Insight{
			Category:  internal.InsightSleepConsistency,
			Type:      internal.InsightTypePositive,
			Severity:  internal.SeverityLow,
			Narrative: fmt.Sprintf("Excellent sleep consistency: your sleep score averaged %.0f over the last %d nights.", m, len(scores)),
		}
	}
	if spread > 20 {
		return &internal.Insight{
			Category:  internal.InsightSleepConsistency,
			Type:      internal.InsightTypeWarning,
			Severity:  internal.SeverityMedium,
			Narrative: fmt.Sprintf("Your sleep scores varied by %.0f points over the last %d nights. A steadier schedule usually narrows that range.", spread, len(scores)),
		}
	}
	return nil
}

func evalCaffeineImpact(window []dayFact) *internal.Insight {
	var lowDays, highDays []float64
	total := 0
	for _, f := range window {
		if f.life == nil || f.life.CaffeineServings == nil || f.metric == nil || f.metric.SleepScore == nil {
			continue
		}
		total++
		score := float64(*f.metric.SleepScore)
		switch servings := *f.life.CaffeineServings; {
		case servings >= 3:
			highDays = append(highDays, score)
		case servings <= 1:
			lowDays = append(lowDays, score)
		}
	}
	if total < 3 || len(lowDays) == 0 || len(highDays) == 0 {
		return nil
	}

	delta := mean(lowDays) - mean(highDays)
	if delta <= 5 {
		return nil
	}
	return &internal.Insight{
		Category:  internal.InsightCaffeineImpact,
		Type:      internal.InsightTypeWarning,
		Severity:  internal.SeverityMedium,
		Narrative: fmt.Sprintf("High-caffeine days (3+ servings) score %.0f points lower on sleep than low-caffeine days. Consider cutting off caffeine earlier.", delta),
	}
}

func evalAlcoholImpact(window []dayFact) *internal.Insight {
	var withAlcohol, withoutAlcohol []float64
	for _, f := range window {
		if f.life == nil || f.life.AlcoholServings == nil || f.metric == nil || f.metric.SleepEfficiency == nil {
			continue
		}
		eff := float64(*f.metric.SleepEfficiency)
		if *f.life.AlcoholServings > 0 {
			withAlcohol = append(withAlcohol, eff)
		} else {
			withoutAlcohol = append(withoutAlcohol, eff)
		}
	}
	if len(withAlcohol) == 0 || len(withoutAlcohol) == 0 {
		return nil
	}

	delta := mean(withoutAlcohol) - mean(withAlcohol)
	if delta <= 5 {
		return nil
	}
	return &internal.Insight{
		Category:  internal.InsightAlcoholImpact,
		Type:      internal.InsightTypeWarning,
		Severity:  internal.SeverityMedium,
		Narrative: fmt.Sprintf("Sleep efficiency drops %.0f%% on days with alcohol compared to alcohol-free days.", delta),
	}
}

func evalStressLevel(window []dayFact) *internal.Insight {
	var levels []float64
	for _, f := range window {
		if f.life != nil && f.life.StressLevel != nil {
			levels = append(levels, float64(*f.life.StressLevel))
		}
	}
	if len(levels) == 0 {
		return nil
	}

	m := mean(levels)
	if m >= 7 {
		return &internal.Insight{
			Category:  internal.InsightStressLevel,
			Type:      internal.InsightTypeWarning,
			Severity:  internal.SeverityMedium,
			Narrative: fmt.Sprintf("Your stress level averaged %.1f/10 this week. Deep breathing or meditation on high-stress days may help your recovery.", m),
		}
	}
	if m <= 3 {
		return &internal.Insight{
			Category:  internal.InsightStressLevel,
			Type:      internal.InsightTypePositive,
			Severity:  internal.SeverityLow,
			Narrative: fmt.Sprintf("Stress levels stayed low this week, averaging %.1f/10. Keep it up.", m),
		}
	}
	return nil
}

func evalScreenTime(window []dayFact) *internal.Insight {
	tracked := 0
	for _, f := range window {
		if f.life != nil && f.life.ScreentimeEnd != nil {
			tracked++
		}
	}
	if tracked < 2 {
		return nil
	}
	return &internal.Insight{
		Category:  internal.InsightScreenTime,
		Type:      internal.InsightTypeSuggestion,
		Severity:  internal.SeverityLow,
		Narrative: fmt.Sprintf("You tracked screen-time cutoff on %d days. Ending screen use 2+ hours before bed tends to improve sleep quality.", tracked),
	}
}

func evalSleepAidUsage(window []dayFact) *internal.Insight {
	used := 0
	for _, f := range window {
		if f.life != nil && len(f.life.SleepAids) > 0 {
			used++
		}
	}
	if used == 0 {
		return nil
	}
	return &internal.Insight{
		Category:  internal.InsightSleepAidUsage,
		Type:      internal.InsightTypeSuggestion,
		Severity:  internal.SeverityLow,
		Narrative: fmt.Sprintf("You used sleep aids on %d of the last %d days. Worth watching whether scores differ on those nights.", used, len(window)),
	}
}

func fallbackInsight(window []dayFact) internal.Insight {
	usable := 0
	for _, f := range window {
		if f.metric != nil || f.life != nil {
			usable++
		}
	}
	narrative := "No notable patterns detected this week. Keep logging to sharpen the analysis."
	if usable < minDataPoints {
		narrative = "Not enough data yet for meaningful insights. Sync your ring and log lifestyle entries for a few more days."
	}
	return internal.Insight{
		Category:  internal.InsightInsufficientData,
		Type:      internal.InsightTypeSuggestion,
		Severity:  internal.SeverityLow,
		Narrative: narrative,
	}
}

// mean is the arithmetic mean over defined values only; callers must not
// pass an empty slice.
func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
