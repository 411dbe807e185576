// Package resumeparse pulls contact fields out of plain text resumes.
// Other document formats are accepted but not parsed.
package resumeparse

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Result is the extracted field set. Parsed is false when the format is not
// supported, in which case every field is empty.
type Result struct {
	Parsed  bool   `json:"parsed"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message,omitempty"`
}

const unsupportedMessage = "only plain text resumes are parsed; fields for other formats are left empty"

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`(?:\+?\d{1,3}[\s.\-]?)?(?:\(\d{3}\)|\d{3})[\s.\-]?\d{3}[\s.\-]?\d{4}`)
	namePattern  = regexp.MustCompile(`^[\p{L}][\p{L}'.\-]*(?:\s+[\p{L}][\p{L}'.\-]*){1,3}$`)
)

// Parse dispatches on the sniffed MIME type of content.
func Parse(mimeType string, content []byte) Result {
	if !mimetype.EqualsAny(mimeType, "text/plain") {
		return Result{Message: unsupportedMessage}
	}
	return ParseText(string(content))
}

// ParseText extracts the first email, the first phone number, and a name
// taken from the first line that looks like one.
func ParseText(text string) Result {
	result := Result{
		Parsed: true,
		Email:  emailPattern.FindString(text),
		Phone:  strings.TrimSpace(phonePattern.FindString(text)),
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if namePattern.MatchString(line) {
			result.Name = line
		}
		// only the first non-empty line is considered
		break
	}

	return result
}
