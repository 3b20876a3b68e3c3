package core

import (
	"regexp"
	"strings"

	"github.com/jobsy/jobmail-analyzer/internal/whitelist"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d{1,2}[./-]\d{1,2}[./-]\d{2,4})`),
		regexp.MustCompile(`(\d{1,2}\s+(?:Ocak|Şubat|Mart|Nisan|Mayıs|Haziran|Temmuz|Ağustos|Eylül|Ekim|Kasım|Aralık)\s+\d{2,4})`),
		regexp.MustCompile(`(\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{2,4})`),
	}

	timePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d{1,2}:\d{2})\s*(?:AM|PM|am|pm)`),
		regexp.MustCompile(`(\d{1,2}:\d{2})`),
	}

	platformPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(Zoom|Teams|Meet|Skype|Discord|Slack|Webex|BlueJeans|GoToMeeting)`),
		regexp.MustCompile(`(?i)(online|çevrimiçi|uzaktan|remote)`),
	}

	eventTypePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(Ideathon|Hackathon|Case Study|Workshop|Webinar|Seminer|Konferans|Buluşma|Toplantı)`),
	}

	companyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`([A-ZÇĞİÖŞÜ][a-zçğıöşü]+(?:\s+[A-ZÇĞİÖŞÜ][a-zçğıöşü]+)*)\s+(?:Yazılım|Software|Teknoloji|Technology|Şirketi|Company|Ltd|Inc)`),
		regexp.MustCompile(`([A-ZÇĞİÖŞÜ][a-zçğıöşü]+(?:\s+[A-ZÇĞİÖŞÜ][a-zçğıöşü]+)*)\s+(?:Grup|Group|Holding|Corporation|Corp)`),
		regexp.MustCompile(`([A-ZÇĞİÖŞÜ][a-zçğıöşü]+(?:\s+[A-ZÇĞİÖŞÜ][a-zçğıöşü]+)*)\s+A\.Ş\.`),
	}

	footerLinePattern = regexp.MustCompile(`^[A-Z][a-zA-Z\s]+$`)

	positionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)((?:senior|junior|lead|principal|kıdemli|uzman)\s+)?(?:software|backend|frontend|full[ -]?stack|data|devops|mobile|web|ui|ux|qa|test|product|security|cloud|ai|ml|machine[ -]?learning)\s+(?:engineer|developer|architect|analyst|designer|scientist|specialist|manager|intern|mühendisi|geliştirici|geliştiricisi|stajyeri)`),
		regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:Developer|Engineer|Designer|Analyst|Manager|Specialist)`),
		regexp.MustCompile(`(?i)(?:pozisyonu|position|role)\s+(?:olarak|as|for|in)\s+([a-zA-ZçğıöşüÇĞİÖŞÜ\s]+)`),
		regexp.MustCompile(`(?i)(?:staj|intern|internship|trainee)\s+(?:pozisyonu|position|role|program|programı)`),
	}

	quotePatterns = []*regexp.Regexp{
		regexp.MustCompile(`"([^"]+)"`),
		regexp.MustCompile(`'([^']+)'`),
		regexp.MustCompile(`“([^”]+)”`),
	}

	eventTitlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`([A-Z][a-zA-Z\s]+(?:Ideathon|Hackathon|Case Study|Workshop|Webinar|Seminer|Konferans))`),
		regexp.MustCompile(`([A-Z][a-zA-Z\s]+(?:Yarışması|Competition|Challenge|Contest))`),
	}

	deadlinePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:son tarih|deadline|bitiş|end date|kapanış|closing)\s*:?\s*(\d{1,2}[./-]\d{1,2}[./-]\d{2,4})`),
		regexp.MustCompile(`(?i)(?:son tarih|deadline|bitiş|end date|kapanış|closing)\s*:?\s*(\d{1,2}\s+(?:Ocak|Şubat|Mart|Nisan|Mayıs|Haziran|Temmuz|Ağustos|Eylül|Ekim|Kasım|Aralık)\s+\d{2,4})`),
		regexp.MustCompile(`(?i)(?:son tarih|deadline|bitiş|end date|kapanış|closing)\s*:?\s*(\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{2,4})`),
	}

	sentenceSplitter = regexp.MustCompile(`[.!?]+`)

	generalInfoKeywords = []string{
		"davet", "invitation", "katılım", "participation",
		"yarışma", "competition", "ödül", "prize", "reward",
		"kazanan", "winner", "başarılı", "successful",
	}

	eventNameKeywords = []string{
		"ideathon", "hackathon", "workshop", "webinar", "seminer",
	}

	sanitizeStrip = regexp.MustCompile(`[^\pL\pN\s\-&,.:/]`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Extractor pulls structured fields out of email text. Each field tries
// an ordered pattern list and falls back to its sentinel.
type Extractor struct {
	freeMail *whitelist.Checker
	titler   cases.Caser
	logger   *zap.Logger
}

// NewExtractor creates a new field extractor
func NewExtractor(freeMail *whitelist.Checker, logger *zap.Logger) *Extractor {
	return &Extractor{
		freeMail: freeMail,
		titler:   cases.Title(language.Turkish),
		logger:   logger,
	}
}

// Extract populates every field of ExtractedInfo from the text and
// sender. Fields that cannot be determined keep their sentinel value.
func (x *Extractor) Extract(text, sender string) *ExtractedInfo {
	info := NewExtractedInfo()

	if v := x.extractCompany(sender, text); v != "" {
		info.Company = v
	}
	if v := x.extractEventName(text); v != "" {
		info.EventName = v
	}
	if v := firstMatch(text, datePatterns); v != "" {
		info.Date = v
	}
	if v := firstMatch(text, timePatterns); v != "" {
		info.Time = v
	}
	if v := firstMatch(text, platformPatterns); v != "" {
		info.Platform = v
	}
	if v := firstMatch(text, eventTypePatterns); v != "" {
		info.EventType = v
	}
	if v := x.extractPosition(text); v != "" {
		info.Position = v
	}
	if v := firstMatch(text, deadlinePatterns); v != "" {
		info.Deadline = v
	}
	if v := x.extractGeneralInfo(text); v != "" {
		info.GeneralInfo = v
	}

	return info
}

// extractCompany tries the sender domain, then corporate-suffix
// patterns, then a footer heuristic over the last lines of the body.
// The footer pass is best effort.
func (x *Extractor) extractCompany(sender, text string) string {
	if label := whitelist.DomainLabel(sender); label != "" && !x.freeMail.IsFreeMail(sender) {
		return x.titler.String(label)
	}

	for _, pattern := range companyPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			if v := sanitize(m[1]); v != "" {
				return v
			}
		}
	}

	lines := strings.Split(text, "\n")
	start := len(lines) - 10
	if start < 0 {
		start = 0
	}
	for _, line := range lines[start:] {
		line = strings.TrimSpace(line)
		if len(line) <= 3 || len(line) >= 50 {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(line, "@") ||
			strings.Contains(lower, "http") || strings.Contains(lower, "www") ||
			strings.Contains(lower, "tel") || strings.Contains(lower, "fax") {
			continue
		}
		if footerLinePattern.MatchString(line) {
			return line
		}
	}

	return ""
}

func (x *Extractor) extractEventName(text string) string {
	for _, pattern := range quotePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			name := m[1]
			lower := strings.ToLower(name)
			for _, kw := range eventNameKeywords {
				if strings.Contains(lower, kw) {
					return sanitize(name)
				}
			}
		}
	}

	for _, pattern := range eventTitlePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			if v := sanitize(m[1]); v != "" {
				return v
			}
		}
	}

	return ""
}

func (x *Extractor) extractPosition(text string) string {
	for _, pattern := range positionPatterns {
		if m := pattern.FindString(text); m != "" {
			if v := sanitize(m); v != "" {
				return x.titler.String(strings.ToLower(v))
			}
		}
	}
	return ""
}

// extractGeneralInfo returns the first sufficiently long sentence that
// mentions an anchor keyword, capped at 200 characters
func (x *Extractor) extractGeneralInfo(text string) string {
	sentences := sentenceSplitter.Split(text, -1)
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= 20 {
			continue
		}
		lower := strings.ToLower(sentence)
		for _, kw := range generalInfoKeywords {
			if strings.Contains(lower, kw) {
				if len(sentence) > 200 {
					return sentence[:200] + "..."
				}
				return sentence
			}
		}
	}
	return ""
}

// firstMatch returns the sanitized capture of the first pattern that
// matches, or an empty string
func firstMatch(text string, patterns []*regexp.Regexp) string {
	for _, pattern := range patterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			if v := sanitize(m[1]); v != "" {
				return v
			}
		}
	}
	return ""
}

// sanitize strips punctuation except date/time separators, collapses
// whitespace and rejects results shorter than 3 characters
func sanitize(s string) string {
	s = sanitizeStrip.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if len(s) < 3 {
		return ""
	}
	return s
}
