package contentfilter

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/models"
)

const (
	MaxInputLength    = 2000
	MinInputLength    = 3
	MinResponseLength = 20
	MaxResponseLength = 5000
)

// suspiciousPatterns is the markup/script-injection denylist applied to raw
// input before anything else runs.
var suspiciousPatterns = []string{
	"<script",
	"javascript:",
	"onerror=",
	"onclick=",
}

var (
	tagPattern = regexp.MustCompile(`<[^>]*>`)
	// A run of 3+ alphabetic characters, Latin plus Portuguese diacritics.
	textRunPattern = regexp.MustCompile(`[a-zA-ZÀ-ÿ]{3}`)
)

// Filter runs cheap structural checks on raw input and output strings before
// any semantic processing. All methods are pure.
type Filter struct{}

func New() *Filter {
	return &Filter{}
}

// ValidateInput rejects empty, oversized, or suspicious input and warns on
// very short input.
func (f *Filter) ValidateInput(input string) models.ContentValidationResult {
	result := models.ContentValidationResult{Valid: true, Issues: []models.ValidationIssue{}}

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		result.Valid = false
		result.Issues = append(result.Issues, models.ValidationIssue{
			Flag:     "empty",
			Severity: models.SeverityCritical,
			Message:  "input is empty or whitespace only",
		})
		return result
	}

	// Length bounds count runes, not bytes; accented Portuguese text must get
	// the same budget as plain ASCII.
	if utf8.RuneCountInString(input) > MaxInputLength {
		result.Valid = false
		result.Issues = append(result.Issues, models.ValidationIssue{
			Flag:     "too_long",
			Severity: models.SeverityCritical,
			Message:  fmt.Sprintf("input exceeds %d characters", MaxInputLength),
		})
		return result
	}

	lower := strings.ToLower(input)
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(lower, pattern) {
			result.Valid = false
			result.Issues = append(result.Issues, models.ValidationIssue{
				Flag:     "suspicious_content",
				Severity: models.SeverityCritical,
				Message:  fmt.Sprintf("input matches denied pattern %q", pattern),
			})
			return result
		}
	}

	if utf8.RuneCountInString(trimmed) < MinInputLength {
		result.Issues = append(result.Issues, models.ValidationIssue{
			Flag:     "too_short",
			Severity: models.SeverityLow,
			Message:  "input is very short and may be incomplete",
		})
	}

	return result
}

// ValidateResponse rejects empty or purely non-textual model output and warns
// on suspiciously short or long responses.
func (f *Filter) ValidateResponse(response string) models.ContentValidationResult {
	result := models.ContentValidationResult{Valid: true, Issues: []models.ValidationIssue{}}

	trimmed := strings.TrimSpace(response)
	if trimmed == "" {
		result.Valid = false
		result.Issues = append(result.Issues, models.ValidationIssue{
			Flag:     "empty_response",
			Severity: models.SeverityCritical,
			Message:  "model returned an empty response",
		})
		return result
	}

	if !textRunPattern.MatchString(response) {
		result.Valid = false
		result.Issues = append(result.Issues, models.ValidationIssue{
			Flag:     "no_text",
			Severity: models.SeverityCritical,
			Message:  "response contains no readable text, only numbers or symbols",
		})
		return result
	}

	if utf8.RuneCountInString(trimmed) < MinResponseLength {
		result.Issues = append(result.Issues, models.ValidationIssue{
			Flag:     "too_short",
			Severity: models.SeverityLow,
			Message:  "response is very short and may be incomplete",
		})
	}

	if utf8.RuneCountInString(response) > MaxResponseLength {
		result.Issues = append(result.Issues, models.ValidationIssue{
			Flag:     "too_long",
			Severity: models.SeverityLow,
			Message:  fmt.Sprintf("response exceeds %d characters, consider splitting", MaxResponseLength),
		})
	}

	return result
}

// SanitizeInput strips tag-like substrings and control characters, caps the
// length, and trims whitespace. Idempotent.
func (f *Filter) SanitizeInput(input string) string {
	sanitized := tagPattern.ReplaceAllString(input, "")

	sanitized = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, sanitized)

	if utf8.RuneCountInString(sanitized) > MaxInputLength {
		// Cut on runes so the cap matches the validation bound and never
		// leaves a broken UTF-8 sequence behind.
		sanitized = string([]rune(sanitized)[:MaxInputLength])
	}

	return strings.TrimSpace(sanitized)
}
