package core

import (
	"sync"
	"time"
)

// successfulCategories are the categories counted as successful
// classifications when computing the rolling model confidence
var successfulCategories = []Category{
	CategoryEventInvite,
	CategoryInterview,
	CategoryTechTest,
	CategoryApplication,
}

// LearningTracker accumulates per-company and per-category counters
// across a process lifetime. Best-effort statistics; loss on restart
// is acceptable. Safe for concurrent use.
type LearningTracker struct {
	mu         sync.RWMutex
	companies  map[string]*CompanyStats
	emailTypes map[Category]int
	now        func() time.Time
}

// NewLearningTracker creates an empty tracker
func NewLearningTracker() *LearningTracker {
	return &LearningTracker{
		companies:  make(map[string]*CompanyStats),
		emailTypes: make(map[Category]int),
		now:        time.Now,
	}
}

// Update increments the counters for a finalized record
func (t *LearningTracker) Update(record *ApplicationRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if record.CompanyName != "" && record.CompanyName != SentinelCompany && record.CompanyName != StatusUnknown {
		stats, ok := t.companies[record.CompanyName]
		if !ok {
			stats = &CompanyStats{FirstSeen: t.now()}
			t.companies[record.CompanyName] = stats
		}
		stats.ApplicationCount++
		stats.StageHistory = append(stats.StageHistory, record.Status)
	}

	if record.Category != "" {
		t.emailTypes[record.Category]++
	}
}

// KnowsCompany reports whether the company has been seen before
func (t *LearningTracker) KnowsCompany(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.companies[name]
	return ok
}

// HasSeenType reports whether the category has been observed before
func (t *LearningTracker) HasSeenType(category Category) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.emailTypes[category] > 0
}

// Confidence returns the share of observations landing in a successful
// category, defaulting to 0.5 with no observations
func (t *LearningTracker) Confidence() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	total := 0
	for _, count := range t.emailTypes {
		total += count
	}
	if total == 0 {
		return 0.5
	}

	successful := 0
	for _, category := range successfulCategories {
		successful += t.emailTypes[category]
	}
	return float64(successful) / float64(total)
}

// Insights summarizes the accumulated state
func (t *LearningTracker) Insights() *LearningInsights {
	t.mu.RLock()
	defer t.mu.RUnlock()

	insights := &LearningInsights{
		TotalCompanies:        len(t.companies),
		TotalEmailTypes:       len(t.emailTypes),
		EmailTypeDistribution: make(map[Category]int, len(t.emailTypes)),
		CompanyActivity:       make(map[string]int, len(t.companies)),
	}

	best := 0
	for category, count := range t.emailTypes {
		insights.EmailTypeDistribution[category] = count
		if count > best {
			best = count
			insights.MostCommonEmailType = category
		}
	}

	best = 0
	for company, stats := range t.companies {
		insights.CompanyActivity[company] = stats.ApplicationCount
		if stats.ApplicationCount > best {
			best = stats.ApplicationCount
			insights.MostActiveCompany = company
		}
	}

	total := 0
	for _, count := range t.emailTypes {
		total += count
	}
	if total == 0 {
		insights.ModelConfidence = 0.5
	} else {
		successful := 0
		for _, category := range successfulCategories {
			successful += t.emailTypes[category]
		}
		insights.ModelConfidence = float64(successful) / float64(total)
	}

	return insights
}
