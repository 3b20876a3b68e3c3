package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jobsy/jobmail-analyzer/internal/utils"
	"github.com/jobsy/jobmail-analyzer/internal/whitelist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeStore records saves and deduplicates on email ID
type fakeStore struct {
	saved   []*ApplicationRecord
	seen    map[string]bool
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{seen: make(map[string]bool)}
}

func (f *fakeStore) Save(_ context.Context, _ string, record *ApplicationRecord) (bool, error) {
	if f.saveErr != nil {
		return false, f.saveErr
	}
	if f.seen[record.EmailID] {
		return false, nil
	}
	f.seen[record.EmailID] = true
	f.saved = append(f.saved, record)
	return true, nil
}

func (f *fakeStore) List(_ context.Context, _ string) ([]*ApplicationRecord, error) {
	return f.saved, nil
}

func (f *fakeStore) Get(_ context.Context, _ string, _ string) (*ApplicationRecord, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStore) UpdateStatus(_ context.Context, _ string, _ string, _ string) error {
	return nil
}

func (f *fakeStore) Delete(_ context.Context, _ string, _ string) error {
	return nil
}

// fakeLLM returns a scripted judgment and counts invocations
type fakeLLM struct {
	judgment *LLMJudgment
	err      error
	calls    int
}

func (f *fakeLLM) JudgeEmail(_ context.Context, _ *RawEmail) (*LLMJudgment, error) {
	f.calls++
	return f.judgment, f.err
}

func newTestService(store ApplicationStore, llm LLMClient) *AnalyzerService {
	logger := zap.NewNop()
	rules := NewRuleEngine(logger)
	return NewAnalyzerService(
		rules,
		NewModelClassifier(nil, nil, rules, nil, time.Second, logger),
		NewExtractor(whitelist.NewChecker(nil, logger), logger),
		NewEnricher(logger),
		NewLearningTracker(),
		llm,
		store,
		nil,
		utils.NewTextProcessor(logger),
		0.1,
		4096,
		logger,
	)
}

func TestAnalyzeBatchEmpty(t *testing.T) {
	svc := newTestService(newFakeStore(), nil)

	_, err := svc.AnalyzeBatch(context.Background(), "user", nil)
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func TestAnalyzeBatchAcceptsApplication(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil)

	emails := []*RawEmail{{
		ID:      "msg-1",
		Subject: "Başvurunuz alındı",
		Sender:  "hr@acme.com",
		Body:    "Süreç hakkında sizi bilgilendireceğiz, teşekkürler.",
	}}

	result, err := svc.AnalyzeBatch(context.Background(), "user", emails)
	require.NoError(t, err)
	require.Equal(t, 1, result.TotalFound)
	assert.Equal(t, "1 adet başvuru e-postası bulundu", result.Message)

	record := result.Applications[0]
	assert.Equal(t, "msg-1", record.EmailID)
	assert.Equal(t, CategoryApplication, record.Category)
	assert.Equal(t, "Başvuru Onayı", record.Status)
	assert.Equal(t, SourceRule, record.Source)
	assert.Equal(t, "Acme", record.CompanyName)
	assert.Equal(t, "tr", record.Language)
	assert.Equal(t, "job", record.ApplicationType)

	require.Len(t, store.saved, 1)
	assert.Equal(t, "msg-1", store.saved[0].EmailID)
}

func TestAnalyzeBatchRejectsSpamWithoutSecondChance(t *testing.T) {
	store := newFakeStore()
	llm := &fakeLLM{judgment: &LLMJudgment{IsJobApplication: true}}
	svc := newTestService(store, llm)

	emails := []*RawEmail{{
		ID:      "spam-1",
		Subject: "Müthiş kampanya",
		Sender:  "promo@shop.com",
		Body:    "Bu fırsatı kaçırmayın, unsubscribe linki aşağıda.",
	}}

	result, err := svc.AnalyzeBatch(context.Background(), "user", emails)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalFound)
	assert.Empty(t, store.saved)
	assert.Equal(t, 0, llm.calls)
}

func TestAnalyzeBatchLLMSecondChance(t *testing.T) {
	store := newFakeStore()
	llm := &fakeLLM{judgment: &LLMJudgment{
		IsJobApplication: true,
		CompanyName:      "Globex",
		Position:         "Intern",
		Status:           "Interview",
		Confidence:       90,
	}}
	svc := newTestService(store, llm)

	emails := []*RawEmail{{
		ID:      "msg-2",
		Subject: "Update on your candidacy",
		Sender:  "noreply@globex.com",
		Body:    "We will contact you soon with next steps.",
	}}

	result, err := svc.AnalyzeBatch(context.Background(), "user", emails)
	require.NoError(t, err)
	require.Equal(t, 1, result.TotalFound)
	assert.Equal(t, 1, llm.calls)

	record := result.Applications[0]
	assert.Equal(t, "Globex", record.CompanyName)
	assert.Equal(t, "Intern", record.Position)
	assert.Equal(t, "Interview", record.Status)
	assert.Equal(t, "internship", record.ApplicationType)
}

func TestAnalyzeBatchManualFallbackWhenLLMFails(t *testing.T) {
	store := newFakeStore()
	llm := &fakeLLM{err: errors.New("quota exceeded")}
	svc := newTestService(store, llm)

	// Rules reject this phrasing but the narrow fallback list accepts it
	emails := []*RawEmail{{
		ID:      "msg-3",
		Subject: "Staj programı hakkında",
		Sender:  "ik@acme.com",
		Body:    "Staj programı değerlendirmeniz sürüyor.",
	}}

	result, err := svc.AnalyzeBatch(context.Background(), "user", emails)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalFound)
	assert.Equal(t, 1, llm.calls)
}

func TestAnalyzeBatchInterviewPipeline(t *testing.T) {
	logger := zap.NewNop()
	rules := NewRuleEngine(logger)
	primary := &stubClassifier{name: "primary", prediction: &ModelPrediction{Label: "mulakat_daveti", Score: 0.93}}
	store := newFakeStore()
	svc := NewAnalyzerService(
		rules,
		NewModelClassifier(primary, nil, rules, nil, time.Second, logger),
		NewExtractor(whitelist.NewChecker(nil, logger), logger),
		NewEnricher(logger),
		NewLearningTracker(),
		nil,
		store,
		nil,
		utils.NewTextProcessor(logger),
		0.1,
		4096,
		logger,
	)

	emails := []*RawEmail{{
		ID:      "msg-5",
		Subject: "Mülakat Daveti - Backend Engineer",
		Sender:  "hr@acme.com",
		Body:    "Merhaba,\nTarih: 20.11.2025\nSaat: 15:30\nPlatform: Zoom\nGörüşmek üzere.",
	}}

	result, err := svc.AnalyzeBatch(context.Background(), "user", emails)
	require.NoError(t, err)
	require.Equal(t, 1, result.TotalFound)

	record := result.Applications[0]
	assert.Equal(t, CategoryInterview, record.Category)
	assert.Equal(t, SourceModel, record.Source)
	assert.Equal(t, "Mülakat Daveti", record.Status)
	assert.Equal(t, "Acme", record.CompanyName)

	assert.Equal(t, "20.11.2025", record.Extracted.Date)
	assert.Equal(t, "15:30", record.Extracted.Time)
	assert.Equal(t, "Zoom", record.Extracted.Platform)
	assert.Equal(t, "2025-11-20", record.Extracted.StandardDate)
	assert.NotNil(t, record.Extracted.Calendar)

	require.NotNil(t, record.Context)
	require.NotNil(t, record.Context.Platform)
	assert.True(t, record.Context.Platform.SetupRequired)

	types := make([]string, 0, len(record.Extracted.ActionItems))
	for _, item := range record.Extracted.ActionItems {
		types = append(types, item.Type)
	}
	assert.Contains(t, types, "platform_setup")
	assert.Contains(t, types, "interview_prep")

	// date (+2), platform setup (+1), base urgency (+1)
	assert.Equal(t, "high", record.Extracted.PriorityLevel)

	require.Len(t, store.saved, 1)
}

func TestAnalyzeBatchPreservesOrder(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil)

	emails := []*RawEmail{
		{ID: "a", Subject: "Başvurunuz alındı", Sender: "hr@acme.com", Body: "Teşekkürler."},
		{ID: "skip", Subject: "Hafta sonu planı", Sender: "friend@gmail.com", Body: "Pikniğe gidelim mi?"},
		{ID: "b", Subject: "Mülakat daveti", Sender: "hr@globex.com", Body: "Sizi görüşmeye davet ediyoruz."},
	}

	result, err := svc.AnalyzeBatch(context.Background(), "user", emails)
	require.NoError(t, err)
	require.Equal(t, 2, result.TotalFound)
	assert.Equal(t, "a", result.Applications[0].EmailID)
	assert.Equal(t, "b", result.Applications[1].EmailID)
}

func TestAnalyzeBatchStoreErrorDoesNotFailBatch(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("disk full")
	svc := newTestService(store, nil)

	emails := []*RawEmail{{
		ID:      "msg-4",
		Subject: "Başvurunuz alındı",
		Sender:  "hr@acme.com",
		Body:    "Teşekkürler.",
	}}

	result, err := svc.AnalyzeBatch(context.Background(), "user", emails)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalFound)
}
