package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jobsy/jobmail-analyzer/internal/utils"
	"go.uber.org/zap"
)

// Keyword groups for the rule engine. Matching is done with plain
// substring search on normalized text; Go's \b is ASCII-only and breaks
// on Turkish characters, so word boundaries are not used here.
var (
	positiveKeywords = []string{
		// Application lifecycle responses
		"başvurunuz alındı", "application received", "your application",
		"başvurunuz iletildi", "application submitted", "başvurun başarılı",
		"başvurunuz başarılı", "application successful", "başvuru formu",
		"application under review", "başvuru değerlendirme",

		// Program application responses
		"program başvurusu alındı", "program application received",
		"yetenek programı başvurusu", "talent program application",
		"kariyer programı başvurusu", "career program application",
		"staj programı başvurusu", "internship program application",
		"eğitim programı başvurusu", "training program application",

		// Interview invitations
		"mülakat daveti", "interview invitation", "görüşme daveti",
		"mülakat planlandı", "interview scheduled", "meeting invitation",
		"teknik mülakat", "technical interview", "final interview",

		// Test invitations
		"teknik test", "technical test", "coding challenge",
		"kodlama testi", "assessment invitation", "değerlendirme daveti",
		"test link", "test invitation",

		// Offers and outcomes
		"iş teklifi", "job offer", "offer letter", "teklif mektubu",
		"congratulations", "tebrikler", "unfortunately", "maalesef",
	}

	negativeKeywords = []string{
		"newsletter", "bülten", "duyuru", "promosyon", "kampanya",
		"indirim", "satış", "fatura", "ödeme", "payment",
		"abone", "unsubscribe", "follow us", "like & share",
		"etkinlik daveti", "webinar", "conference invitation",
		"coursera", "udemy", "edx", "skillshare", "pluralsight",
		"linkedin learning",
		"scam", "dolandırıcılık", "fraud", "sahtecilik",
		"new job opportunity", "we're hiring", "apply now",
		"career opportunity", "yeni pozisyon", "açık pozisyon",
		"iş ilanı", "job posting", "başvuru dönemi", "application period",
		"recruitment", "işe alım",
		"glassdoor community", "social media", "sosyal medya",
		"click here", "tıklayın", "register now", "şimdi kayıt ol",
		"limited time", "sınırlı süre", "act now", "şimdi harekete geç",
	}

	spamKeywords = []string{
		"newsletter", "bülten", "promosyon", "kampanya", "indirim",
		"satış", "abone", "unsubscribe", "follow us", "like & share",
		"click here", "tıklayın", "register now", "şimdi kayıt ol",
		"limited time", "sınırlı süre", "act now", "şimdi harekete geç",
	}

	eventKeywords = []string{
		"tanıtım", "davet", "etkinlik", "webinar", "canlı yayın",
		"buluşma", "toplantı", "workshop", "çekiliş", "hediye",
	}

	jobPostingKeywords = []string{
		"new job opportunity", "we're hiring", "apply now",
		"career opportunity", "yeni pozisyon", "açık pozisyon",
		"iş ilanı", "job posting", "başvuru dönemi", "application period",
		"recruitment", "işe alım",
	}
)

// advancedPatterns catch lifecycle phrasings the keyword lists miss
var advancedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:başvurunuz|your application|application)\s+(?:alınmıştır|received|submitted|under review)`),
	regexp.MustCompile(`(?:başvurun|başvurunuz)\s+(?:başarılı|successful|iletildi|submitted)`),
	regexp.MustCompile(`(?:program|yetenek|kariyer|staj)\s+(?:başvurusu|application)\s+(?:alındı|received)`),
	regexp.MustCompile(`(?:mülakat|interview)\s+(?:daveti|invitation|scheduled|planlandı)`),
	regexp.MustCompile(`(?:teknik|technical)\s+(?:test|interview|assessment|değerlendirme)`),
	regexp.MustCompile(`(?:iş|job)\s+(?:teklifi|offer|proposal)`),
	regexp.MustCompile(`(?:cv|resume|özgeçmiş)\s+(?:gönderildi|received|submitted)`),
}

// RuleResult is the accept/reject verdict of the rule engine
type RuleResult struct {
	IsApplication bool
	Reason        string
	Spam          bool
}

// RuleEngine applies the ordered keyword/regex decision process
type RuleEngine struct {
	logger *zap.Logger
}

// NewRuleEngine creates a new rule engine
func NewRuleEngine(logger *zap.Logger) *RuleEngine {
	return &RuleEngine{logger: logger}
}

// Classify runs the ordered rule pipeline over a subject and body.
// Suppressive groups (spam, job posting, event, negative) only win when
// no positive lifecycle keyword is present, except spam which is an
// absolute veto.
func (r *RuleEngine) Classify(subject, body string) RuleResult {
	fullText := utils.Normalize(subject) + " " + utils.Normalize(body)

	hasPositive := containsAny(fullText, positiveKeywords)
	hasNegative := containsAny(fullText, negativeKeywords)
	hasSpam := containsAny(fullText, spamKeywords)
	hasEvent := containsAny(fullText, eventKeywords)
	hasJobPosting := containsAny(fullText, jobPostingKeywords)

	switch {
	case hasSpam:
		return RuleResult{IsApplication: false, Spam: true, Reason: "spam/advertisement keywords detected"}
	case hasJobPosting && !hasPositive:
		return RuleResult{IsApplication: false, Reason: "job posting without positive application keywords"}
	case hasEvent && !hasPositive:
		return RuleResult{IsApplication: false, Reason: "event-related mail without positive application keywords"}
	case hasNegative && !hasPositive:
		return RuleResult{IsApplication: false, Reason: "negative keywords matched without positive keywords"}
	case hasPositive:
		return RuleResult{IsApplication: true, Reason: "positive keyword matched"}
	}

	for _, pattern := range advancedPatterns {
		if pattern.MatchString(fullText) {
			r.logger.Debug("Advanced lifecycle pattern matched",
				zap.String("pattern", pattern.String()))
			return RuleResult{IsApplication: true, Reason: fmt.Sprintf("lifecycle pattern matched: %s", pattern.String())}
		}
	}

	return RuleResult{IsApplication: false, Reason: "no pattern matched"}
}

// Rule-based category keyword groups, used as the tail of the
// classification ladder.
var (
	categoryEventWords = []string{
		"ideathon", "hackathon", "case study", "workshop", "webinar",
		"seminer", "konferans", "buluşma", "toplantı",
		"davet", "invitation", "katılım", "participation", "etkinlik",
		"yarışma", "competition", "challenge", "müsabaka", "contest",
	}
	categoryInterviewWords = []string{
		"mülakat", "interview", "görüşme", "söyleşi",
	}
	categoryTestWords = []string{
		"teknik test", "technical test", "coding challenge",
		"kodlama testi", "assessment", "değerlendirme", "test link",
	}
	categoryApplicationWords = []string{
		"başvurunuz alındı", "application received", "your application",
		"başvuru başarılı", "application successful", "başvuru iletildi",
	}
	categorySpamWords = []string{
		"newsletter", "bülten", "promosyon", "kampanya", "indirim",
		"satış", "unsubscribe", "abone", "follow us", "like & share",
	}
)

// CategorizeByRules assigns a category with a fixed moderate confidence.
// It never fails; unmatched text lands in the general category.
func (r *RuleEngine) CategorizeByRules(text string) (Category, float64) {
	lower := utils.Normalize(text)

	switch {
	case containsAny(lower, categoryEventWords):
		return CategoryEventInvite, 0.85
	case containsAny(lower, categoryInterviewWords):
		return CategoryInterview, 0.80
	case containsAny(lower, categoryTestWords):
		return CategoryTechTest, 0.75
	case containsAny(lower, categoryApplicationWords):
		return CategoryApplication, 0.90
	case containsAny(lower, categorySpamWords):
		return CategorySpam, 0.70
	default:
		return CategoryGeneral, 0.60
	}
}

// manualFallbackKeywords is a narrower acceptance list used as the very
// last acceptance chance after rules and LLM judgment both pass
var manualFallbackKeywords = []string{
	"başvurunuz alındı", "application received", "your application",
	"mülakat daveti", "interview invitation", "job offer",
	"teknik test", "technical test",
	"başvurun başarılı", "başvurunuz başarılı", "application successful",
	"başvuru iletildi", "application submitted", "program başvurusu",
	"yetenek programı", "kariyer programı", "staj programı",
}

// ManualFallback checks the narrow acceptance list. Returns a judgment
// with a fixed 0.5 confidence when it matches.
func (r *RuleEngine) ManualFallback(subject, body string) (*LLMJudgment, bool) {
	text := utils.Normalize(subject + " " + body)
	if !containsAny(text, manualFallbackKeywords) {
		return nil, false
	}
	return &LLMJudgment{
		IsJobApplication: true,
		Status:           GuessStatus(text),
		Confidence:       50,
	}, true
}

// GuessStatus estimates an application status from keyword presence
func GuessStatus(text string) string {
	t := utils.Normalize(text)
	switch {
	case strings.Contains(t, "mülakat") || strings.Contains(t, "interview"):
		return "Interview"
	case strings.Contains(t, "offer") || strings.Contains(t, "accepted") || strings.Contains(t, "teklif"):
		return "Accepted"
	case strings.Contains(t, "rejected") || strings.Contains(t, "red"):
		return "Rejected"
	case strings.Contains(t, "test"):
		return "Technical Test"
	case strings.Contains(t, "application") || strings.Contains(t, "başvuru"):
		return "Applied"
	default:
		return "Unknown"
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
