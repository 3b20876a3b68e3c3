package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jobsy/jobmail-analyzer/internal/utils"
	"go.uber.org/zap"
)

// ErrEmptyBatch is returned when a batch request carries no emails
var ErrEmptyBatch = errors.New("no emails to analyze")

// AnalyzerService runs the full analysis pipeline over email batches
type AnalyzerService struct {
	rules           *RuleEngine
	classifier      *ModelClassifier
	extractor       *Extractor
	enricher        *Enricher
	tracker         *LearningTracker
	llm             LLMClient
	store           ApplicationStore
	index           SimilarityIndex
	textProcessor   *utils.TextProcessor
	confidenceFloor float64
	maxTextSize     int
	logger          *zap.Logger
}

// NewAnalyzerService creates the analyzer. The LLM client and the
// similarity index are optional; pass nil to disable those paths.
func NewAnalyzerService(
	rules *RuleEngine,
	classifier *ModelClassifier,
	extractor *Extractor,
	enricher *Enricher,
	tracker *LearningTracker,
	llm LLMClient,
	store ApplicationStore,
	index SimilarityIndex,
	textProcessor *utils.TextProcessor,
	confidenceFloor float64,
	maxTextSize int,
	logger *zap.Logger,
) *AnalyzerService {
	return &AnalyzerService{
		rules:           rules,
		classifier:      classifier,
		extractor:       extractor,
		enricher:        enricher,
		tracker:         tracker,
		llm:             llm,
		store:           store,
		index:           index,
		textProcessor:   textProcessor,
		confidenceFloor: confidenceFloor,
		maxTextSize:     maxTextSize,
		logger:          logger,
	}
}

// AnalyzeBatch processes each email sequentially and returns the
// accepted application records in input order. An empty batch is an
// input error; nothing else fails the batch.
func (s *AnalyzerService) AnalyzeBatch(ctx context.Context, userID string, emails []*RawEmail) (*BatchResult, error) {
	if len(emails) == 0 {
		return nil, ErrEmptyBatch
	}

	records := make([]*ApplicationRecord, 0, len(emails))
	for _, email := range emails {
		record := s.analyzeOne(ctx, userID, email)
		if record == nil {
			continue
		}
		records = append(records, record)

		s.tracker.Update(record)

		if s.index != nil {
			if err := s.index.Index(ctx, userID, record); err != nil {
				s.logger.Warn("Failed to index record for similarity search",
					zap.String("email_id", record.EmailID),
					zap.Error(err))
			}
		}
	}

	return &BatchResult{
		Applications:    records,
		TotalFound:      len(records),
		Message:         fmt.Sprintf("%d adet başvuru e-postası bulundu", len(records)),
		ModelConfidence: s.tracker.Confidence(),
	}, nil
}

// analyzeOne runs the per-email pipeline. A nil return means the email
// was rejected as not application-related.
func (s *AnalyzerService) analyzeOne(ctx context.Context, userID string, email *RawEmail) *ApplicationRecord {
	text := s.textProcessor.ProcessText(email.Subject+" "+email.Body, s.maxTextSize)

	var judgment *LLMJudgment

	ruleResult := s.rules.Classify(email.Subject, email.Body)
	if !ruleResult.IsApplication {
		// Spam is an absolute veto, no second chances
		if ruleResult.Spam {
			s.logger.Debug("Rejected as spam",
				zap.String("email_id", email.ID),
				zap.String("reason", ruleResult.Reason))
			return nil
		}

		judgment = s.secondChance(ctx, email)
		if judgment == nil {
			s.logger.Debug("Rejected by rules",
				zap.String("email_id", email.ID),
				zap.String("reason", ruleResult.Reason))
			return nil
		}
	}

	verdict := s.classifier.Classify(ctx, text)
	if verdict.Confidence <= s.confidenceFloor {
		s.logger.Debug("Verdict below confidence floor",
			zap.String("email_id", email.ID),
			zap.Float64("confidence", verdict.Confidence))
		return nil
	}

	info := s.extractor.Extract(email.Subject+" "+email.Body, email.Sender)
	contextAnalysis := s.enricher.AnalyzeContext(verdict.Category, info, email, s.tracker)
	enriched := s.enricher.Enrich(info, contextAnalysis)

	record := s.buildRecord(email, verdict, enriched, contextAnalysis, judgment)

	if s.store != nil {
		saved, err := s.store.Save(ctx, userID, record)
		if err != nil {
			s.logger.Error("Failed to persist application record",
				zap.String("email_id", record.EmailID),
				zap.Error(err))
		} else if !saved {
			s.logger.Debug("Duplicate record skipped by store",
				zap.String("email_id", record.EmailID))
		}
	}

	return record
}

// secondChance runs the LLM judgment and then the manual keyword
// fallback for emails the rule engine did not accept
func (s *AnalyzerService) secondChance(ctx context.Context, email *RawEmail) *LLMJudgment {
	if s.llm != nil {
		judgment, err := s.llm.JudgeEmail(ctx, email)
		if err != nil {
			s.logger.Warn("LLM judgment failed",
				zap.String("email_id", email.ID),
				zap.Error(err))
		} else if judgment != nil && judgment.IsJobApplication {
			return judgment
		}
	}

	if judgment, ok := s.rules.ManualFallback(email.Subject, email.Body); ok {
		return judgment
	}
	return nil
}

func (s *AnalyzerService) buildRecord(
	email *RawEmail,
	verdict *ClassificationVerdict,
	enriched *EnrichedInfo,
	contextAnalysis *ContextAnalysis,
	judgment *LLMJudgment,
) *ApplicationRecord {
	now := time.Now()

	company := enriched.Company
	if !enriched.HasCompany() {
		company = StatusUnknown
	}
	if judgment != nil && judgment.CompanyName != "" {
		company = judgment.CompanyName
	}

	position := enriched.Position
	if judgment != nil && judgment.Position != "" {
		position = judgment.Position
	}

	status := MapCategoryToStatus(verdict.Category)
	if status == StatusUnknown && judgment != nil && judgment.Status != "" {
		status = judgment.Status
	}

	return &ApplicationRecord{
		EmailID:         email.ID,
		EmailSubject:    email.Subject,
		EmailSender:     email.Sender,
		EmailDate:       email.Date,
		EmailContent:    email.Body,
		HTMLBody:        email.HTMLBody,
		CompanyName:     company,
		Position:        position,
		Status:          status,
		ApplicationType: applicationType(position),
		Category:        verdict.Category,
		Confidence:      verdict.Confidence,
		Reasoning:       verdict.Reasoning,
		Source:          verdict.Source,
		Language:        utils.DetectLanguage(email.Subject + " " + email.Body),
		Extracted:       enriched,
		Context:         contextAnalysis,
		AnalyzedAt:      now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Insights exposes the tracker's accumulated learning state
func (s *AnalyzerService) Insights() *LearningInsights {
	return s.tracker.Insights()
}

func applicationType(position string) string {
	p := strings.ToLower(position)
	if strings.Contains(p, "internship") || strings.Contains(p, "intern") || strings.Contains(p, "staj") {
		return "internship"
	}
	return "job"
}
