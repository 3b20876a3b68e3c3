package core

import (
	"testing"

	"github.com/jobsy/jobmail-analyzer/internal/whitelist"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestExtractor() *Extractor {
	return NewExtractor(whitelist.NewChecker(nil, zap.NewNop()), zap.NewNop())
}

func TestExtractEmptyInputKeepsSentinels(t *testing.T) {
	x := newTestExtractor()

	info := x.Extract("", "")

	assert.Equal(t, SentinelCompany, info.Company)
	assert.Equal(t, SentinelEventName, info.EventName)
	assert.Equal(t, SentinelDate, info.Date)
	assert.Equal(t, SentinelTime, info.Time)
	assert.Equal(t, SentinelPlatform, info.Platform)
	assert.Equal(t, SentinelEventType, info.EventType)
	assert.Equal(t, SentinelPosition, info.Position)
	assert.Equal(t, SentinelDeadline, info.Deadline)
	assert.Equal(t, SentinelInfo, info.GeneralInfo)
}

func TestExtractInterviewDetails(t *testing.T) {
	x := newTestExtractor()

	text := "Mülakatınız planlandı.\nTarih: 20.11.2025\nSaat: 15:30\nPlatform: Zoom\nGörüşmek üzere."
	info := x.Extract(text, "hr@acme.com")

	assert.Equal(t, "Acme", info.Company)
	assert.Equal(t, "20.11.2025", info.Date)
	assert.Equal(t, "15:30", info.Time)
	assert.Equal(t, "Zoom", info.Platform)
	assert.True(t, info.HasDate())
	assert.True(t, info.HasTime())
}

func TestExtractCompanyIgnoresFreeMail(t *testing.T) {
	x := newTestExtractor()

	// Free-mail sender domain is not a company; the corporate suffix
	// pattern in the body wins instead
	info := x.Extract("Acme Teknoloji ekibi olarak başvurunuzu aldık.", "ik@gmail.com")
	assert.Equal(t, "Acme", info.Company)

	// Nothing usable anywhere
	info = x.Extract("merhaba", "someone@gmail.com")
	assert.Equal(t, SentinelCompany, info.Company)
}

func TestExtractPosition(t *testing.T) {
	x := newTestExtractor()

	info := x.Extract("Senior Backend Developer pozisyonu için teşekkürler.", "")
	assert.Equal(t, "Senior Backend Developer", info.Position)
}

func TestExtractEventName(t *testing.T) {
	x := newTestExtractor()

	info := x.Extract(`"İstanbul Hackathon" etkinliğine davetlisiniz. Sizi bu özel etkinliğe davet etmekten mutluluk duyarız.`, "")
	assert.Equal(t, "İstanbul Hackathon", info.EventName)
	assert.NotEqual(t, SentinelInfo, info.GeneralInfo)
}

func TestExtractDeadline(t *testing.T) {
	x := newTestExtractor()

	info := x.Extract("Başvuru için son tarih: 01.12.2025 olarak belirlendi.", "")
	assert.Equal(t, "01.12.2025", info.Deadline)
	assert.True(t, info.HasDeadline())
}

func TestExtractTurkishMonthDate(t *testing.T) {
	x := newTestExtractor()

	info := x.Extract("Etkinlik 5 Aralık 2025 tarihinde yapılacaktır.", "")
	assert.Equal(t, "5 Aralık 2025", info.Date)
}

func TestSanitizeRejectsShortResults(t *testing.T) {
	assert.Equal(t, "", sanitize("a!"))
	assert.Equal(t, "15:30", sanitize("15:30"))
	assert.Equal(t, "20.11.2025", sanitize("20.11.2025"))
	assert.Equal(t, "Acme Grup", sanitize("Acme   Grup***"))
}
