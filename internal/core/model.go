package core

import (
	"time"
)

// RawEmail represents an inbound email as delivered by the mail source.
// The body is expected to be plain text; HTMLBody is kept for display.
type RawEmail struct {
	ID       string
	Subject  string
	Sender   string
	Date     string
	Body     string
	HTMLBody string
}

// Category is the classification label assigned to an email
type Category string

const (
	CategoryEventInvite Category = "etkinlik_daveti"
	CategoryInterview   Category = "mulakat_daveti"
	CategoryTechTest    Category = "teknik_test"
	CategoryApplication Category = "basvuru_onayi"
	CategoryJobOffer    Category = "is_teklifi"
	CategoryRejection   Category = "red_bildirimi"
	CategoryGeneral     Category = "genel_bilgilendirme"
	CategorySpam        Category = "spam_reklam"
)

// Categories lists every known category in model label order
var Categories = []Category{
	CategoryEventInvite,
	CategoryInterview,
	CategoryTechTest,
	CategoryApplication,
	CategoryJobOffer,
	CategoryRejection,
	CategoryGeneral,
	CategorySpam,
}

// Verdict sources
const (
	SourceRule     = "rule"
	SourceModel    = "model"
	SourceFallback = "fallback"
)

// ClassificationVerdict is the final category call for one email.
// Created once, never mutated.
type ClassificationVerdict struct {
	Category   Category
	Confidence float64
	Reasoning  string
	Source     string
}

// ModelPrediction is the raw output of a text-classification backend
type ModelPrediction struct {
	Label string
	Score float64
}

// LLMJudgment is the parsed response of the free-form LLM check
type LLMJudgment struct {
	IsJobApplication bool   `json:"is_job_application"`
	CompanyName      string `json:"company_name"`
	Position         string `json:"position"`
	Status           string `json:"status"`
	Confidence       int    `json:"confidence"`
}

// Sentinel values used when a field cannot be extracted. They are
// distinguishable from the empty string on purpose.
const (
	SentinelCompany   = "Şirket Adı Belirlenemedi"
	SentinelEventName = "Etkinlik Adı Belirlenemedi"
	SentinelDate      = "Tarih Belirlenemedi"
	SentinelTime      = "Saat Belirlenemedi"
	SentinelPlatform  = "Platform Belirlenemedi"
	SentinelEventType = "Etkinlik Türü Belirlenemedi"
	SentinelPosition  = "Pozisyon Belirlenemedi"
	SentinelDeadline  = "Son Tarih Belirlenemedi"
	SentinelInfo      = "Detaylı bilgi bulunamadı"
	StatusUnknown     = "Bilinmeyen"
)

// ExtractedInfo holds the structured fields pulled out of an email.
// Every field is always populated, with its sentinel when extraction
// found nothing.
type ExtractedInfo struct {
	Company     string `json:"sirket"`
	EventName   string `json:"etkinlik_adi"`
	Date        string `json:"tarih"`
	Time        string `json:"saat"`
	Platform    string `json:"platform"`
	EventType   string `json:"etkinlik_turu"`
	Position    string `json:"pozisyon"`
	Deadline    string `json:"son_tarih"`
	GeneralInfo string `json:"bilgi"`
}

// NewExtractedInfo returns an ExtractedInfo with every field set to its
// sentinel value
func NewExtractedInfo() *ExtractedInfo {
	return &ExtractedInfo{
		Company:     SentinelCompany,
		EventName:   SentinelEventName,
		Date:        SentinelDate,
		Time:        SentinelTime,
		Platform:    SentinelPlatform,
		EventType:   SentinelEventType,
		Position:    SentinelPosition,
		Deadline:    SentinelDeadline,
		GeneralInfo: SentinelInfo,
	}
}

func (e *ExtractedInfo) HasCompany() bool   { return e.Company != "" && e.Company != SentinelCompany }
func (e *ExtractedInfo) HasEventName() bool { return e.EventName != "" && e.EventName != SentinelEventName }
func (e *ExtractedInfo) HasDate() bool      { return e.Date != "" && e.Date != SentinelDate }
func (e *ExtractedInfo) HasTime() bool      { return e.Time != "" && e.Time != SentinelTime }
func (e *ExtractedInfo) HasPlatform() bool  { return e.Platform != "" && e.Platform != SentinelPlatform }
func (e *ExtractedInfo) HasPosition() bool  { return e.Position != "" && e.Position != SentinelPosition }
func (e *ExtractedInfo) HasDeadline() bool  { return e.Deadline != "" && e.Deadline != SentinelDeadline }

// Deadline urgency buckets
const (
	UrgencyExpired  = "expired"
	UrgencyCritical = "critical"
	UrgencyUrgent   = "urgent"
	UrgencyHigh     = "high"
	UrgencyMedium   = "medium"
	UrgencyLow      = "low"
	UrgencyUnknown  = "unknown"
)

// DeadlineInfo describes an extracted deadline and how pressing it is
type DeadlineInfo struct {
	Raw          string `json:"date"`
	Standardized string `json:"standardized_date"`
	Urgency      string `json:"urgency"`
}

// PlatformDetails describes the meeting platform referenced by an email
type PlatformDetails struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	SetupRequired bool   `json:"setup_required"`
}

// ContextAnalysis is the situational assessment of one email against
// the accumulated learning state
type ContextAnalysis struct {
	ApplicationStage   string           `json:"application_stage"`
	CompanyFamiliarity string           `json:"company_familiarity"`
	EmailTypeFrequency string           `json:"email_type_frequency"`
	UrgencyLevel       string           `json:"urgency_level"`
	ActionRequired     bool             `json:"action_required"`
	Deadline           *DeadlineInfo    `json:"deadline_info,omitempty"`
	Platform           *PlatformDetails `json:"platform_details,omitempty"`
}

// CalendarReminder is a single reminder attached to a calendar event
type CalendarReminder struct {
	Minutes int    `json:"minutes"`
	Type    string `json:"type"`
}

// CalendarEvent is the payload handed to a calendar integration
type CalendarEvent struct {
	Title       string             `json:"title"`
	StartDate   string             `json:"start_date"`
	EndDate     string             `json:"end_date"`
	Description string             `json:"description"`
	Location    string             `json:"location"`
	Reminders   []CalendarReminder `json:"reminders"`
}

// ActionItem is a derived follow-up task for the applicant
type ActionItem struct {
	Type          string `json:"type"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Priority      string `json:"priority"`
	EstimatedTime string `json:"estimated_time"`
}

// EnrichedInfo is ExtractedInfo plus everything derived from it
type EnrichedInfo struct {
	ExtractedInfo
	StandardDate  string         `json:"tarih_standard,omitempty"`
	Calendar      *CalendarEvent `json:"takvim_entegrasyonu,omitempty"`
	ActionItems   []ActionItem   `json:"action_items"`
	PriorityLevel string         `json:"priority_level"`
}

// ApplicationRecord is the persisted artifact for one accepted email
type ApplicationRecord struct {
	EmailID         string           `json:"email_id"`
	EmailSubject    string           `json:"email_subject"`
	EmailSender     string           `json:"email_sender"`
	EmailDate       string           `json:"email_date"`
	EmailContent    string           `json:"email_content"`
	HTMLBody        string           `json:"html_body,omitempty"`
	CompanyName     string           `json:"company_name"`
	Position        string           `json:"position"`
	Status          string           `json:"status"`
	ApplicationType string           `json:"application_type"`
	Category        Category         `json:"category"`
	Confidence      float64          `json:"confidence"`
	Reasoning       string           `json:"reasoning"`
	Source          string           `json:"source"`
	Language        string           `json:"language"`
	Extracted       *EnrichedInfo    `json:"extracted_info"`
	Context         *ContextAnalysis `json:"context_analysis"`
	AnalyzedAt      time.Time        `json:"analyzed_at"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// BatchResult is the outcome of analyzing one batch of emails
type BatchResult struct {
	Applications    []*ApplicationRecord `json:"applications"`
	TotalFound      int                  `json:"totalFound"`
	Message         string               `json:"message"`
	ModelConfidence float64              `json:"model_confidence"`
}

// CompanyStats tracks per-company observations across a process lifetime
type CompanyStats struct {
	FirstSeen        time.Time
	ApplicationCount int
	StageHistory     []string
}

// LearningInsights summarizes the accumulated learning state
type LearningInsights struct {
	TotalCompanies        int              `json:"total_companies"`
	TotalEmailTypes       int              `json:"total_email_types"`
	MostCommonEmailType   Category         `json:"most_common_email_type"`
	MostActiveCompany     string           `json:"most_active_company"`
	ModelConfidence       float64          `json:"model_confidence"`
	EmailTypeDistribution map[Category]int `json:"email_type_distribution"`
	CompanyActivity       map[string]int   `json:"company_activity"`
}

// SimilarMatch is one hit from a similarity search over stored records
type SimilarMatch struct {
	Record *ApplicationRecord
	Score  float64
}
