package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackerDefaultConfidence(t *testing.T) {
	tracker := NewLearningTracker()
	assert.Equal(t, 0.5, tracker.Confidence())
}

func TestTrackerConfidenceRatio(t *testing.T) {
	tracker := NewLearningTracker()
	tracker.Update(&ApplicationRecord{CompanyName: "Acme", Category: CategoryInterview, Status: "Mülakat Daveti"})
	tracker.Update(&ApplicationRecord{CompanyName: "Acme", Category: CategoryApplication, Status: "Başvuru Onayı"})
	tracker.Update(&ApplicationRecord{CompanyName: "Other", Category: CategoryGeneral, Status: StatusUnknown})
	tracker.Update(&ApplicationRecord{CompanyName: "Other", Category: CategorySpam, Status: StatusUnknown})

	assert.Equal(t, 0.5, tracker.Confidence())

	tracker.Update(&ApplicationRecord{CompanyName: "Acme", Category: CategoryTechTest, Status: "Teknik Test"})
	assert.Equal(t, 0.6, tracker.Confidence())
}

func TestTrackerSkipsSentinelCompanies(t *testing.T) {
	tracker := NewLearningTracker()
	tracker.Update(&ApplicationRecord{CompanyName: SentinelCompany, Category: CategoryGeneral})
	tracker.Update(&ApplicationRecord{CompanyName: StatusUnknown, Category: CategoryGeneral})
	tracker.Update(&ApplicationRecord{CompanyName: "", Category: CategoryGeneral})

	assert.False(t, tracker.KnowsCompany(SentinelCompany))
	assert.False(t, tracker.KnowsCompany(""))
	assert.Equal(t, 0, tracker.Insights().TotalCompanies)
	assert.True(t, tracker.HasSeenType(CategoryGeneral))
}

func TestTrackerInsights(t *testing.T) {
	tracker := NewLearningTracker()
	tracker.Update(&ApplicationRecord{CompanyName: "Acme", Category: CategoryInterview, Status: "Mülakat Daveti"})
	tracker.Update(&ApplicationRecord{CompanyName: "Acme", Category: CategoryInterview, Status: "Mülakat Daveti"})
	tracker.Update(&ApplicationRecord{CompanyName: "Globex", Category: CategoryRejection, Status: "Red Bildirimi"})

	insights := tracker.Insights()

	assert.Equal(t, 2, insights.TotalCompanies)
	assert.Equal(t, CategoryInterview, insights.MostCommonEmailType)
	assert.Equal(t, "Acme", insights.MostActiveCompany)
	assert.Equal(t, 2, insights.EmailTypeDistribution[CategoryInterview])
	assert.InDelta(t, 2.0/3.0, insights.ModelConfidence, 1e-9)
}
