package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestRules() *RuleEngine {
	return NewRuleEngine(zap.NewNop())
}

func TestClassifyPositiveKeyword(t *testing.T) {
	rules := newTestRules()

	result := rules.Classify("Başvurunuz alındı", "Değerlendirme sürecine geçtik.")
	assert.True(t, result.IsApplication)
	assert.False(t, result.Spam)
}

func TestClassifyUppercaseTurkish(t *testing.T) {
	rules := newTestRules()

	// Dotless I must survive lowering: ALINDI matches alındı
	result := rules.Classify("BAŞVURUNUZ ALINDI", "TEŞEKKÜRLER.")
	assert.True(t, result.IsApplication)
	assert.False(t, result.Spam)
}

func TestClassifySpamVeto(t *testing.T) {
	rules := newTestRules()

	// Spam keywords win even when a positive lifecycle phrase is present
	result := rules.Classify("Başvurunuz alındı", "Click unsubscribe to stop receiving these emails.")
	assert.False(t, result.IsApplication)
	assert.True(t, result.Spam)
}

func TestClassifySuppressiveGroupsYieldToPositive(t *testing.T) {
	rules := newTestRules()

	// Event wording alone rejects, but a positive keyword overrides it
	result := rules.Classify("Hackathon etkinlik daveti", "Yarışmaya başvurunuz alındı, detaylar ektedir.")
	assert.True(t, result.IsApplication)

	result = rules.Classify("Hackathon etkinlik daveti", "Katılımınızı bekliyoruz.")
	assert.False(t, result.IsApplication)
	assert.False(t, result.Spam)
}

func TestClassifyJobPostingRejected(t *testing.T) {
	rules := newTestRules()

	result := rules.Classify("We're hiring!", "A new career opportunity awaits you.")
	assert.False(t, result.IsApplication)
	assert.False(t, result.Spam)
}

func TestClassifyAdvancedPattern(t *testing.T) {
	rules := newTestRules()

	// No keyword from the lists, but the lifecycle regex catches it
	result := rules.Classify("Bilgilendirme", "özgeçmiş gönderildi ve inceleniyor")
	assert.True(t, result.IsApplication)
}

func TestClassifyNoMatch(t *testing.T) {
	rules := newTestRules()

	result := rules.Classify("Merhaba", "Bu hafta sonu pikniğe gidiyoruz.")
	assert.False(t, result.IsApplication)
	assert.Equal(t, "no pattern matched", result.Reason)
}

func TestCategorizeByRules(t *testing.T) {
	rules := newTestRules()

	tests := []struct {
		text     string
		category Category
		score    float64
	}{
		{"Hackathon yarışmasına davetlisiniz", CategoryEventInvite, 0.85},
		{"Mülakat planlandı", CategoryInterview, 0.80},
		{"Assessment linki gönderildi", CategoryTechTest, 0.75},
		{"Başvurunuz alındı", CategoryApplication, 0.90},
		{"Haftalık newsletter aboneliğiniz", CategorySpam, 0.70},
		{"Sıradan bir bilgilendirme", CategoryGeneral, 0.60},
	}

	for _, tc := range tests {
		category, score := rules.CategorizeByRules(tc.text)
		assert.Equal(t, tc.category, category, tc.text)
		assert.Equal(t, tc.score, score, tc.text)
	}
}

func TestManualFallback(t *testing.T) {
	rules := newTestRules()

	judgment, ok := rules.ManualFallback("Mülakat daveti", "Sizi görüşmeye bekliyoruz")
	assert.True(t, ok)
	assert.True(t, judgment.IsJobApplication)
	assert.Equal(t, 50, judgment.Confidence)
	assert.Equal(t, "Interview", judgment.Status)

	_, ok = rules.ManualFallback("Merhaba", "Nasılsın?")
	assert.False(t, ok)
}

func TestManualFallbackUppercaseTurkish(t *testing.T) {
	rules := newTestRules()

	judgment, ok := rules.ManualFallback("MÜLAKAT DAVETİ", "GÖRÜŞME DETAYLARI EKTE.")
	assert.True(t, ok)
	assert.Equal(t, "Interview", judgment.Status)
}

func TestGuessStatus(t *testing.T) {
	assert.Equal(t, "Interview", GuessStatus("mülakat daveti"))
	assert.Equal(t, "Accepted", GuessStatus("we have an offer for you"))
	assert.Equal(t, "Rejected", GuessStatus("your application was rejected"))
	assert.Equal(t, "Technical Test", GuessStatus("online test link"))
	assert.Equal(t, "Applied", GuessStatus("başvuru durumu"))
	assert.Equal(t, "Applied", GuessStatus("BAŞVURUNUZ ALINDI"))
	assert.Equal(t, "Unknown", GuessStatus("hello there"))
}
