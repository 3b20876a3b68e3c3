package ingest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"

	"github.com/jobsy/jobmail-analyzer/internal/core"
)

// ParseMessage parses a raw RFC 5322 message into a RawEmail. The
// plain-text body is preferred for analysis; when only an HTML part
// exists, its stripped text becomes the body and the raw HTML is kept
// alongside it.
func ParseMessage(r io.Reader) (*core.RawEmail, error) {
	msg, err := mail.ReadMessage(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email message: %w", err)
	}

	plain, html, err := extractBodies(msg)
	if err != nil {
		return nil, err
	}

	body := plain
	if body == "" && html != "" {
		body = StripHTML(html)
	}

	email := &core.RawEmail{
		ID:       messageID(msg, body),
		Subject:  decodeHeader(msg.Header.Get("Subject")),
		Sender:   decodeHeader(msg.Header.Get("From")),
		Date:     msg.Header.Get("Date"),
		Body:     body,
		HTMLBody: html,
	}
	return email, nil
}

// messageID uses the Message-Id header when present, otherwise a
// content digest so that repeated deliveries still deduplicate
func messageID(msg *mail.Message, body string) string {
	if id := strings.Trim(msg.Header.Get("Message-Id"), "<> "); id != "" {
		return id
	}
	sum := sha256.Sum256([]byte(msg.Header.Get("From") + msg.Header.Get("Subject") + body))
	return hex.EncodeToString(sum[:16])
}

// decodeHeader decodes RFC 2047 encoded words, falling back to the
// raw value when decoding fails
func decodeHeader(value string) string {
	dec := new(mime.WordDecoder)
	decoded, err := dec.DecodeHeader(value)
	if err != nil {
		return value
	}
	return decoded
}

// extractBodies walks the message and collects text/plain and
// text/html content. Non-multipart messages yield their body as one
// or the other depending on the Content-Type.
func extractBodies(msg *mail.Message) (plain, html string, err error) {
	contentType := msg.Header.Get("Content-Type")

	mediaType, params, parseErr := mime.ParseMediaType(contentType)
	if parseErr != nil || !strings.HasPrefix(mediaType, "multipart/") {
		bodyBytes, readErr := io.ReadAll(msg.Body)
		if readErr != nil {
			return "", "", readErr
		}
		if strings.Contains(strings.ToLower(contentType), "text/html") {
			return "", string(bodyBytes), nil
		}
		return string(bodyBytes), "", nil
	}

	boundary, ok := params["boundary"]
	if !ok {
		bodyBytes, readErr := io.ReadAll(msg.Body)
		if readErr != nil {
			return "", "", readErr
		}
		return string(bodyBytes), "", nil
	}

	var plainBuf, htmlBuf bytes.Buffer
	collectParts(multipart.NewReader(msg.Body, boundary), &plainBuf, &htmlBuf, 0)
	return plainBuf.String(), htmlBuf.String(), nil
}

// collectParts reads multipart parts into the text buffers,
// recursing into nested multiparts up to a small depth limit
func collectParts(mr *multipart.Reader, plainBuf, htmlBuf *bytes.Buffer, depth int) {
	if depth > 3 {
		return
	}

	for {
		part, err := mr.NextPart()
		if err != nil {
			return
		}

		partType := part.Header.Get("Content-Type")
		mediaType, params, parseErr := mime.ParseMediaType(partType)
		if parseErr != nil {
			mediaType = strings.ToLower(partType)
		}

		switch {
		case strings.HasPrefix(mediaType, "text/plain"):
			if partBytes, readErr := io.ReadAll(part); readErr == nil {
				plainBuf.Write(partBytes)
				plainBuf.WriteString("\n")
			}
		case strings.HasPrefix(mediaType, "text/html"):
			if partBytes, readErr := io.ReadAll(part); readErr == nil {
				htmlBuf.Write(partBytes)
			}
		case strings.HasPrefix(mediaType, "multipart/"):
			if boundary, ok := params["boundary"]; ok {
				collectParts(multipart.NewReader(part, boundary), plainBuf, htmlBuf, depth+1)
			}
		}
	}
}
