package core

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jobsy/jobmail-analyzer/internal/utils"
	"go.uber.org/zap"
)

var categoryStatusTable = map[Category]string{
	CategoryEventInvite: "Etkinlik Daveti",
	CategoryInterview:   "Mülakat Daveti",
	CategoryTechTest:    "Teknik Test",
	CategoryApplication: "Başvuru Onayı",
	CategoryJobOffer:    "İş Teklifi",
	CategoryRejection:   "Red Bildirimi",
}

// MapCategoryToStatus translates a category into the human status label
func MapCategoryToStatus(category Category) string {
	if status, ok := categoryStatusTable[category]; ok {
		return status
	}
	return StatusUnknown
}

var categoryStageTable = map[Category]string{
	CategoryEventInvite: "etkinlik",
	CategoryInterview:   "mulakat",
	CategoryTechTest:    "teknik_test",
	CategoryApplication: "basvuru_onaylandi",
	CategoryJobOffer:    "is_teklifi",
	CategoryRejection:   "reddedildi",
}

var urgencyKeywords = []string{
	"acil", "urgent", "hemen", "immediately",
	"bugün", "today", "yarın", "tomorrow",
}

var platformSetupRequired = []string{
	"zoom", "teams", "discord", "slack", "webex",
}

var (
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	dmyDatePattern = regexp.MustCompile(`^\d{1,2}[./-]\d{1,2}[./-]\d{2,4}$`)
	dmySeparator   = regexp.MustCompile(`[./-]`)
)

// Enricher derives context, calendar payloads, action items and a
// priority level from classification and extraction output. Every
// sub-step degrades to a default on failure; enrichment never aborts.
type Enricher struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewEnricher creates a new enricher using the wall clock
func NewEnricher(logger *zap.Logger) *Enricher {
	return &Enricher{logger: logger, now: time.Now}
}

// NewEnricherAt creates an enricher with an injected clock
func NewEnricherAt(logger *zap.Logger, now func() time.Time) *Enricher {
	return &Enricher{logger: logger, now: now}
}

// AnalyzeContext assesses one email against the accumulated learning
// state and derives urgency, deadline and platform details
func (e *Enricher) AnalyzeContext(category Category, info *ExtractedInfo, email *RawEmail, tracker *LearningTracker) *ContextAnalysis {
	ctx := &ContextAnalysis{
		ApplicationStage:   "unknown",
		CompanyFamiliarity: "new",
		EmailTypeFrequency: "rare",
		UrgencyLevel:       "normal",
	}

	if stage, ok := categoryStageTable[category]; ok {
		ctx.ApplicationStage = stage
	}

	if tracker != nil {
		if info.HasCompany() && tracker.KnowsCompany(info.Company) {
			ctx.CompanyFamiliarity = "familiar"
		}
		if tracker.HasSeenType(category) {
			ctx.EmailTypeFrequency = "common"
		}
	}

	text := utils.Normalize(email.Subject + " " + email.Body)
	for _, kw := range urgencyKeywords {
		if strings.Contains(text, kw) {
			ctx.UrgencyLevel = "high"
			ctx.ActionRequired = true
			break
		}
	}

	if info.HasDeadline() {
		ctx.Deadline = &DeadlineInfo{
			Raw:          info.Deadline,
			Standardized: StandardizeDate(info.Deadline),
			Urgency:      e.DeadlineUrgency(StandardizeDate(info.Deadline)),
		}
		ctx.ActionRequired = true
	}

	if info.HasPlatform() {
		ctx.Platform = &PlatformDetails{
			Name:          info.Platform,
			Type:          categorizePlatform(info.Platform),
			SetupRequired: platformNeedsSetup(info.Platform),
		}
	}

	return ctx
}

// Enrich combines extraction output and context into the final
// enriched record fields
func (e *Enricher) Enrich(info *ExtractedInfo, ctx *ContextAnalysis) *EnrichedInfo {
	enriched := &EnrichedInfo{
		ExtractedInfo: *info,
		ActionItems:   []ActionItem{},
		PriorityLevel: "medium",
	}

	if info.HasDate() {
		enriched.StandardDate = StandardizeDate(info.Date)
		enriched.Calendar = e.buildCalendar(info, enriched.StandardDate)
	}

	if ctx != nil {
		enriched.ActionItems = e.buildActionItems(info, ctx)
		enriched.PriorityLevel = e.priorityLevel(enriched, ctx)
	}

	return enriched
}

// StandardizeDate converts D.M.Y style dates to Y-M-D. Two-digit years
// are assumed to be in this century. Anything else passes through.
func StandardizeDate(date string) string {
	if !dmyDatePattern.MatchString(date) {
		return date
	}
	parts := dmySeparator.Split(date, -1)
	if len(parts) != 3 {
		return date
	}
	day, month, year := parts[0], parts[1], parts[2]
	if len(year) == 2 {
		year = "20" + year
	}
	if len(month) == 1 {
		month = "0" + month
	}
	if len(day) == 1 {
		day = "0" + day
	}
	return fmt.Sprintf("%s-%s-%s", year, month, day)
}

// DeadlineUrgency buckets a standardized date by its distance from
// today. Dates are compared at day granularity so a deadline today is
// critical, not expired.
func (e *Enricher) DeadlineUrgency(standardized string) string {
	if !isoDatePattern.MatchString(standardized) {
		return UrgencyUnknown
	}
	deadline, err := time.Parse("2006-01-02", standardized[:10])
	if err != nil {
		return UrgencyUnknown
	}

	now := e.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(deadline.Sub(today).Hours() / 24)

	switch {
	case days < 0:
		return UrgencyExpired
	case days <= 1:
		return UrgencyCritical
	case days <= 3:
		return UrgencyUrgent
	case days <= 7:
		return UrgencyHigh
	case days <= 14:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

func (e *Enricher) buildCalendar(info *ExtractedInfo, standardDate string) *CalendarEvent {
	event := &CalendarEvent{
		StartDate: standardDate,
		EndDate:   standardDate,
		Reminders: []CalendarReminder{
			{Minutes: 15, Type: "popup"},
			{Minutes: 60, Type: "email"},
		},
	}

	switch {
	case info.HasEventName():
		event.Title = info.EventName
	case info.HasPosition():
		company := info.Company
		if !info.HasCompany() {
			company = "Şirket"
		}
		event.Title = fmt.Sprintf("%s - %s", company, info.Position)
	}

	var description []string
	if info.HasCompany() {
		description = append(description, "Şirket: "+info.Company)
	}
	if info.HasPlatform() {
		description = append(description, "Platform: "+info.Platform)
		event.Location = info.Platform
	}
	if info.GeneralInfo != "" && info.GeneralInfo != SentinelInfo {
		description = append(description, "Detay: "+info.GeneralInfo)
	}
	event.Description = strings.Join(description, "\n")

	return event
}

func (e *Enricher) buildActionItems(info *ExtractedInfo, ctx *ContextAnalysis) []ActionItem {
	items := []ActionItem{}

	if ctx.Platform != nil && ctx.Platform.SetupRequired {
		items = append(items, ActionItem{
			Type:          "platform_setup",
			Title:         fmt.Sprintf("%s Kurulumu", info.Platform),
			Description:   fmt.Sprintf("%s platformunda hesap oluştur ve test et", info.Platform),
			Priority:      "high",
			EstimatedTime: "15-30 dakika",
		})
	}

	if info.HasPosition() {
		items = append(items, ActionItem{
			Type:          "cv_update",
			Title:         "CV Güncellemesi",
			Description:   fmt.Sprintf("%s pozisyonu için CV'yi güncelle", info.Position),
			Priority:      "medium",
			EstimatedTime: "1-2 saat",
		})
	}

	switch ctx.ApplicationStage {
	case "mulakat", "final_mulakat":
		items = append(items, ActionItem{
			Type:          "interview_prep",
			Title:         "Mülakat Hazırlığı",
			Description:   "Şirket araştırması yap ve mülakat sorularını hazırla",
			Priority:      "high",
			EstimatedTime: "2-4 saat",
		})
	case "teknik_test":
		items = append(items, ActionItem{
			Type:          "technical_prep",
			Title:         "Teknik Test Hazırlığı",
			Description:   "Algoritma ve kodlama pratiği yap",
			Priority:      "high",
			EstimatedTime: "3-5 saat",
		})
	}

	return items
}

// priorityLevel computes the additive priority score and buckets it
func (e *Enricher) priorityLevel(enriched *EnrichedInfo, ctx *ContextAnalysis) string {
	score := 0

	switch ctx.UrgencyLevel {
	case "high":
		score += 3
	case "medium":
		score += 2
	default:
		score++
	}

	if ctx.ActionRequired {
		score += 2
	}
	if enriched.StandardDate != "" {
		score += 2
	}
	if ctx.Platform != nil && ctx.Platform.SetupRequired {
		score++
	}

	switch {
	case score >= 6:
		return "critical"
	case score >= 4:
		return "high"
	case score >= 2:
		return "medium"
	default:
		return "low"
	}
}

func categorizePlatform(platform string) string {
	p := strings.ToLower(platform)
	switch {
	case containsAny(p, []string{"zoom", "teams", "meet", "skype", "webex"}):
		return "video_conference"
	case containsAny(p, []string{"discord", "slack"}):
		return "communication"
	case containsAny(p, []string{"online", "çevrimiçi", "uzaktan", "remote"}):
		return "online"
	default:
		return "unknown"
	}
}

func platformNeedsSetup(platform string) bool {
	return containsAny(strings.ToLower(platform), platformSetupRequired)
}
