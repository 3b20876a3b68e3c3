package core

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ModelClassifier runs the classification degradation ladder: primary
// transformer model, then a fallback model, then the rule-based
// categorizer. It always produces a verdict and never returns an error.
type ModelClassifier struct {
	attempts []attempt
	labels   []Category
	timeout  time.Duration
	logger   *zap.Logger
}

type attempt struct {
	name string
	run  func(ctx context.Context, text string) (*ClassificationVerdict, bool)
}

// NewModelClassifier builds the ladder from the given backends. Either
// backend may be nil; the rule categorizer tail is always present.
// The labels table maps model output indexes (LABEL_0..N) to categories.
func NewModelClassifier(
	primary TextClassifier,
	fallback TextClassifier,
	rules *RuleEngine,
	labels []Category,
	timeout time.Duration,
	logger *zap.Logger,
) *ModelClassifier {
	if len(labels) == 0 {
		labels = Categories
	}
	mc := &ModelClassifier{
		labels:  labels,
		timeout: timeout,
		logger:  logger,
	}

	// Verdict source tags which rung produced the result: the primary
	// model, the fallback model, or the rule categorizer tail.
	sources := []string{SourceModel, SourceFallback}
	for i, backend := range []TextClassifier{primary, fallback} {
		if backend == nil {
			continue
		}
		b, source := backend, sources[i]
		mc.attempts = append(mc.attempts, attempt{
			name: b.ModelName(),
			run: func(ctx context.Context, text string) (*ClassificationVerdict, bool) {
				return mc.classifyWithModel(ctx, b, source, text)
			},
		})
	}

	mc.attempts = append(mc.attempts, attempt{
		name: "rules",
		run: func(_ context.Context, text string) (*ClassificationVerdict, bool) {
			category, score := rules.CategorizeByRules(text)
			return &ClassificationVerdict{
				Category:   category,
				Confidence: score,
				Reasoning:  "rule-based categorization",
				Source:     SourceRule,
			}, true
		},
	})

	return mc
}

// Classify iterates the ladder until an attempt produces a verdict.
// The rule tail guarantees one.
func (mc *ModelClassifier) Classify(ctx context.Context, text string) *ClassificationVerdict {
	for _, a := range mc.attempts {
		if verdict, ok := a.run(ctx, text); ok {
			if verdict.Reasoning == "" {
				verdict.Reasoning = GenerateReasoning(verdict)
			}
			return verdict
		}
		mc.logger.Warn("Classification attempt failed, degrading",
			zap.String("attempt", a.name))
	}

	// Unreachable with the rule tail in place
	return &ClassificationVerdict{
		Category:   CategoryGeneral,
		Confidence: 0.5,
		Reasoning:  "default classification",
		Source:     SourceRule,
	}
}

func (mc *ModelClassifier) classifyWithModel(ctx context.Context, backend TextClassifier, source string, text string) (*ClassificationVerdict, bool) {
	callCtx, cancel := context.WithTimeout(ctx, mc.timeout)
	defer cancel()

	prediction, err := backend.ClassifyText(callCtx, text)
	if err != nil {
		mc.logger.Warn("Model classification failed",
			zap.String("model", backend.ModelName()),
			zap.Error(err))
		return nil, false
	}

	category, ok := mc.mapLabel(prediction.Label)
	if !ok {
		mc.logger.Warn("Model returned an unmappable label",
			zap.String("model", backend.ModelName()),
			zap.String("label", prediction.Label))
		return nil, false
	}

	return &ClassificationVerdict{
		Category:   category,
		Confidence: prediction.Score,
		Source:     source,
	}, true
}

// mapLabel resolves a backend label to a category. Models trained with
// generic heads report LABEL_N; the index maps through the configured
// label table. Named labels are matched against the category set.
func (mc *ModelClassifier) mapLabel(label string) (Category, bool) {
	if rest, found := strings.CutPrefix(label, "LABEL_"); found {
		idx, err := strconv.Atoi(rest)
		if err != nil || idx < 0 || idx >= len(mc.labels) {
			return "", false
		}
		return mc.labels[idx], true
	}

	for _, c := range mc.labels {
		if string(c) == label {
			return c, true
		}
	}
	return "", false
}

// GenerateReasoning produces a human-readable explanation for a verdict
func GenerateReasoning(verdict *ClassificationVerdict) string {
	switch verdict.Category {
	case CategoryEventInvite:
		return "Davet, katılım ve etkinlik ifadeleri üzerinden etkinlik daveti olarak sınıflandırıldı."
	case CategoryInterview:
		return "Mülakat, görüşme ve davet ifadeleri üzerinden mülakat daveti olarak sınıflandırıldı."
	case CategoryTechTest:
		return "Teknik test, coding challenge ve assessment ifadeleri üzerinden teknik test daveti olarak sınıflandırıldı."
	case CategoryApplication:
		return "Başvuru alındı/iletildi ifadeleri üzerinden başvuru onayı olarak sınıflandırıldı."
	default:
		return fmt.Sprintf("E-posta içeriği %s kategorisine sınıflandırıldı. Güven skoru: %.2f", verdict.Category, verdict.Confidence)
	}
}
