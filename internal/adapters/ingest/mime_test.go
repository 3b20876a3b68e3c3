package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessagePlainText(t *testing.T) {
	raw := "From: HR <hr@acme.com>\r\n" +
		"Subject: Basvurunuz alindi\r\n" +
		"Message-Id: <abc@acme.com>\r\n" +
		"Date: Mon, 3 Nov 2025 10:00:00 +0300\r\n" +
		"\r\n" +
		"Tesekkurler, degerlendirme surecindeyiz.\r\n"

	email, err := ParseMessage(strings.NewReader(raw))
	require.NoError(t, err)

	assert.Equal(t, "abc@acme.com", email.ID)
	assert.Equal(t, "Basvurunuz alindi", email.Subject)
	assert.Contains(t, email.Sender, "hr@acme.com")
	assert.Contains(t, email.Body, "degerlendirme surecindeyiz")
	assert.Empty(t, email.HTMLBody)
}

func TestParseMessageEncodedSubject(t *testing.T) {
	raw := "From: hr@acme.com\r\n" +
		"Subject: =?UTF-8?B?QmHFn3Z1cnVudXogYWzEsW5kxLE=?=\r\n" +
		"\r\n" +
		"Merhaba.\r\n"

	email, err := ParseMessage(strings.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "Başvurunuz alındı", email.Subject)
	// No Message-Id, so the ID falls back to a content digest
	assert.NotEmpty(t, email.ID)
}

func TestParseMessageMultipart(t *testing.T) {
	raw := "From: hr@acme.com\r\n" +
		"Subject: Mulakat daveti\r\n" +
		"Content-Type: multipart/alternative; boundary=XYZ\r\n" +
		"\r\n" +
		"--XYZ\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"\r\n" +
		"Gorusme detaylari ekte.\r\n" +
		"--XYZ\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<html><body><p>Gorusme detaylari ekte.</p></body></html>\r\n" +
		"--XYZ--\r\n"

	email, err := ParseMessage(strings.NewReader(raw))
	require.NoError(t, err)
	assert.Contains(t, email.Body, "Gorusme detaylari ekte.")
	assert.Contains(t, email.HTMLBody, "<p>Gorusme detaylari ekte.</p>")
}

func TestParseMessageHTMLOnly(t *testing.T) {
	raw := "From: hr@acme.com\r\n" +
		"Subject: Davet\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<html><body><p>Sizi bekliyoruz.</p><script>var x=1;</script></body></html>\r\n"

	email, err := ParseMessage(strings.NewReader(raw))
	require.NoError(t, err)
	assert.Contains(t, email.Body, "Sizi bekliyoruz.")
	assert.NotContains(t, email.Body, "var x=1;")
	assert.Contains(t, email.HTMLBody, "<p>")
}

func TestStripHTML(t *testing.T) {
	text := StripHTML("<html><body><h1>Davet</h1><p>Katilim icin tiklayin.</p><style>p{}</style></body></html>")
	assert.Contains(t, text, "Davet")
	assert.Contains(t, text, "Katilim icin tiklayin.")
	assert.NotContains(t, text, "p{}")
}

func TestReadMbox(t *testing.T) {
	raw := "From hr@acme.com Mon Nov  3 10:00:00 2025\n" +
		"From: hr@acme.com\n" +
		"Subject: Birinci\n" +
		"\n" +
		"Ilk mesaj.\n" +
		"\n" +
		"From hr@globex.com Mon Nov  3 11:00:00 2025\n" +
		"From: hr@globex.com\n" +
		"Subject: Ikinci\n" +
		"\n" +
		"Ikinci mesaj.\n"

	emails, err := ReadMbox(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, emails, 2)
	assert.Equal(t, "Birinci", emails[0].Subject)
	assert.Equal(t, "Ikinci", emails[1].Subject)
}
