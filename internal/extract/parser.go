package extract

import (
	"regexp"
	"strings"
	"time"

	"go-jobtracker-backend/internal/domain"

	"github.com/araddon/dateparse"
)

// Field extraction from raw job-posting text. Explicit "Label: value" lines
// win; heuristics fill the gaps.
var (
	companyRe  = regexp.MustCompile(`(?i)(?:Company|Employer)[:\-]?\s*(.+)`)
	positionRe = regexp.MustCompile(`(?i)(?:Job Title|Title|Position|Role)[:\-]?\s*(.+)`)
	locationRe = regexp.MustCompile(`(?i)(?:Location)[:\-]?\s*(.+)`)
	deadlineRe = regexp.MustCompile(`(?i)(?:Apply\s*by|Deadline)[:\-]?\s*([^\n]+)`)

	yearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// ParseText extracts a best-effort field mapping from posting text.
func ParseText(text string) domain.ExtractedFields {
	return domain.ExtractedFields{
		Company:  firstMatch(companyRe, text),
		Position: extractPosition(text),
		Location: firstMatch(locationRe, text),
		Deadline: extractDeadline(text),
	}
}

func firstMatch(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// extractPosition prefers an explicit title line and falls back to the first
// short line of the posting, which is the title on most job boards.
func extractPosition(text string) string {
	if v := firstMatch(positionRe, text); v != "" {
		return v
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) <= 80 {
			return line
		}
		break
	}
	return ""
}

// extractDeadline finds an "apply by"/"deadline" phrase and parses the date
// that follows. Dates written without a year are assumed to be upcoming: if
// the parse lands in the past, it rolls forward one year. An unparseable
// match is returned verbatim for the user to review.
func extractDeadline(text string) string {
	m := deadlineRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	raw := strings.TrimSpace(m[1])
	raw = strings.TrimRight(raw, ".")

	parsed, err := dateparse.ParseAny(raw)
	if err != nil {
		return raw
	}
	if !yearRe.MatchString(raw) && parsed.Before(time.Now()) {
		parsed = parsed.AddDate(1, 0, 0)
	}
	return parsed.Format("2006-01-02")
}
