package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// stubClassifier is a scripted TextClassifier backend
type stubClassifier struct {
	name       string
	prediction *ModelPrediction
	err        error
}

func (s *stubClassifier) ClassifyText(_ context.Context, _ string) (*ModelPrediction, error) {
	return s.prediction, s.err
}

func (s *stubClassifier) ModelName() string { return s.name }

func TestClassifyUsesPrimaryModel(t *testing.T) {
	primary := &stubClassifier{name: "primary", prediction: &ModelPrediction{Label: "LABEL_1", Score: 0.92}}
	mc := NewModelClassifier(primary, nil, newTestRules(), nil, time.Second, zap.NewNop())

	verdict := mc.Classify(context.Background(), "mülakat daveti")

	assert.Equal(t, CategoryInterview, verdict.Category)
	assert.Equal(t, 0.92, verdict.Confidence)
	assert.Equal(t, SourceModel, verdict.Source)
	assert.NotEmpty(t, verdict.Reasoning)
}

func TestClassifyFallsBackToSecondModel(t *testing.T) {
	primary := &stubClassifier{name: "primary", err: errors.New("model loading")}
	fallback := &stubClassifier{name: "fallback", prediction: &ModelPrediction{Label: "basvuru_onayi", Score: 0.7}}
	mc := NewModelClassifier(primary, fallback, newTestRules(), nil, time.Second, zap.NewNop())

	verdict := mc.Classify(context.Background(), "başvurunuz alındı")

	assert.Equal(t, CategoryApplication, verdict.Category)
	assert.Equal(t, SourceFallback, verdict.Source)
}

func TestClassifyDegradesToRules(t *testing.T) {
	primary := &stubClassifier{name: "primary", err: errors.New("timeout")}
	fallback := &stubClassifier{name: "fallback", err: errors.New("timeout")}
	mc := NewModelClassifier(primary, fallback, newTestRules(), nil, time.Second, zap.NewNop())

	verdict := mc.Classify(context.Background(), "başvurunuz alındı, teşekkürler")

	assert.Equal(t, CategoryApplication, verdict.Category)
	assert.Equal(t, 0.90, verdict.Confidence)
	assert.Equal(t, SourceRule, verdict.Source)
	assert.Equal(t, "rule-based categorization", verdict.Reasoning)
}

func TestClassifyUnmappableLabelDegrades(t *testing.T) {
	primary := &stubClassifier{name: "primary", prediction: &ModelPrediction{Label: "LABEL_99", Score: 0.99}}
	mc := NewModelClassifier(primary, nil, newTestRules(), nil, time.Second, zap.NewNop())

	verdict := mc.Classify(context.Background(), "sıradan bir e-posta")

	assert.Equal(t, CategoryGeneral, verdict.Category)
	assert.Equal(t, SourceRule, verdict.Source)
}

func TestClassifyWithoutModels(t *testing.T) {
	mc := NewModelClassifier(nil, nil, newTestRules(), nil, time.Second, zap.NewNop())

	verdict := mc.Classify(context.Background(), "hackathon daveti")

	assert.Equal(t, CategoryEventInvite, verdict.Category)
	assert.Equal(t, SourceRule, verdict.Source)
}

func TestMapLabelCustomTable(t *testing.T) {
	labels := []Category{CategorySpam, CategoryGeneral}
	mc := NewModelClassifier(nil, nil, newTestRules(), labels, time.Second, zap.NewNop())

	category, ok := mc.mapLabel("LABEL_0")
	assert.True(t, ok)
	assert.Equal(t, CategorySpam, category)

	_, ok = mc.mapLabel("LABEL_2")
	assert.False(t, ok)

	category, ok = mc.mapLabel("genel_bilgilendirme")
	assert.True(t, ok)
	assert.Equal(t, CategoryGeneral, category)

	_, ok = mc.mapLabel("unrelated")
	assert.False(t, ok)
}
