package utils

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases text with Turkish casing rules and applies NFKC
// normalization so that keyword matching is stable across
// composed/decomposed forms. Turkish casing matters: locale-blind
// lowering maps I to i instead of ı. Empty input yields an empty string.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return cases.Lower(language.Turkish).String(norm.NFKC.String(text))
}

// StripCodeFences removes markdown code fences that LLMs tend to wrap
// JSON responses in
func StripCodeFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[len("```json"):]
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = cleaned[len("```"):]
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = cleaned[:len(cleaned)-len("```")]
	}
	return strings.TrimSpace(cleaned)
}

// ExtractJSONObject returns the first outermost JSON object embedded in
// the text, or an empty string when no braces are present
func ExtractJSONObject(text string) string {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start == -1 || end == -1 || start >= end {
		return ""
	}
	return text[start : end+1]
}

// DetectLanguage makes a rough Turkish/English call from character
// frequency. Only used as record metadata.
func DetectLanguage(text string) string {
	turkish := 0
	ascii := 0
	for _, r := range text {
		switch {
		case strings.ContainsRune("çğıöşüÇĞİÖŞÜ", r):
			turkish++
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			ascii++
		}
	}
	switch {
	case turkish > 0 && float64(turkish) > float64(ascii)*0.02:
		return "tr"
	case ascii > 0:
		return "en"
	default:
		return "unknown"
	}
}

// TextProcessor provides utilities for processing text
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{
		logger: logger,
	}
}

// TruncateText safely truncates text to the specified maximum size
// and ensures the result is valid UTF-8
func (tp *TextProcessor) TruncateText(text string, maxSize int) string {
	// If no limit or text is already within limits, return as is
	if maxSize <= 0 || len(text) <= maxSize {
		return text
	}

	// First truncate to the byte limit
	truncated := text[:maxSize]

	// Ensure the truncated text ends with a valid UTF-8 sequence
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		// Remove bytes until we have valid UTF-8
		truncated = truncated[:len(truncated)-1]
	}

	tp.logger.Debug("Text truncated",
		zap.Int("original_size", len(text)),
		zap.Int("truncated_size", len(truncated)),
		zap.Int("max_size", maxSize))

	return truncated
}

// SanitizeUTF8 ensures the string contains only valid UTF-8 characters
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(text[i:])
			if size == 1 {
				// Skip invalid UTF-8 sequences
				continue
			}
		}
		result = append(result, r)
	}

	tp.logger.Debug("Text sanitized",
		zap.Int("original_size", len(text)),
		zap.Int("sanitized_size", len(string(result))))

	return string(result)
}

// ProcessText truncates and sanitizes text in one operation
func (tp *TextProcessor) ProcessText(text string, maxSize int) string {
	return tp.SanitizeUTF8(tp.TruncateText(text, maxSize))
}
