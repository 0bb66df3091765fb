package usecase

import (
	"time"

	"go-jobtracker-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// NormalizeFields prepares a partial update or creation payload for the row
// store. The two date fields are the only ones touched: an empty string is
// never persisted and becomes an explicit nil, a YYYY-MM-DD string becomes a
// time value. Everything else, enums included, passes through unchanged;
// validation authority lives server-side and bad values come back as
// RemoteRejected.
func NormalizeFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for name, value := range fields {
		if domain.DateFields[name] {
			out[name] = normalizeDate(value)
			continue
		}
		out[name] = value
	}
	return out
}

// normalizeDate maps the blank representations to nil and parses plain date
// strings. An unparseable non-empty string is passed through as-is so the
// store can reject it.
func normalizeDate(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		if t, err := time.Parse(dateLayout, v); err == nil {
			return &t
		}
		return v
	case time.Time:
		if v.IsZero() {
			return nil
		}
		return &v
	case *time.Time:
		if v == nil || v.IsZero() {
			return nil
		}
		return v
	default:
		return value
	}
}

// fieldString renders a normalized value for in-memory application.
func fieldString(value any) (string, bool) {
	s, ok := value.(string)
	return s, ok
}

// fieldDate extracts a normalized date value. The bool reports whether the
// value is date-shaped (nil counts: it clears the field).
func fieldDate(value any) (*time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return nil, true
	case *time.Time:
		return v, true
	case time.Time:
		return &v, true
	default:
		return nil, false
	}
}

// applyFields copies normalized field values onto the in-memory record.
// Values the record cannot hold (e.g. an unparseable date headed for remote
// rejection) are skipped.
func applyFields(rec *domain.ApplicationRecord, fields map[string]any) {
	for name, value := range fields {
		switch name {
		case domain.FieldCompany:
			if s, ok := fieldString(value); ok {
				rec.Company = s
			}
		case domain.FieldPosition:
			if s, ok := fieldString(value); ok {
				rec.Position = s
			}
		case domain.FieldLocation:
			if s, ok := fieldString(value); ok {
				rec.Location = s
			}
		case domain.FieldJobType:
			if s, ok := fieldString(value); ok {
				rec.JobType = s
			}
		case domain.FieldStatus:
			if s, ok := fieldString(value); ok {
				rec.Status = s
			}
		case domain.FieldJobURL:
			if s, ok := fieldString(value); ok {
				rec.JobURL = s
			}
		case domain.FieldNotes:
			if s, ok := fieldString(value); ok {
				rec.Notes = s
			}
		case domain.FieldApplicationDate:
			if d, ok := fieldDate(value); ok {
				rec.ApplicationDate = d
			}
		case domain.FieldDeadline:
			if d, ok := fieldDate(value); ok {
				rec.Deadline = d
			}
		}
	}
}

// jsonFields renders normalized values back to wire-friendly shapes for the
// update-row delta (dates as YYYY-MM-DD strings or null).
func jsonFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for name, value := range fields {
		if t, ok := value.(*time.Time); ok {
			if t == nil {
				out[name] = nil
			} else {
				out[name] = t.Format(dateLayout)
			}
			continue
		}
		out[name] = value
	}
	return out
}

// recordFromFields builds a creation payload from reviewed extraction output,
// applying the creation defaults for anything missing.
func recordFromFields(userID string, fields map[string]any) *domain.ApplicationRecord {
	rec := &domain.ApplicationRecord{
		UserID: userID,
		Status: domain.StatusWishlist,
		State:  domain.StatePending,
	}
	applyFields(rec, fields)
	if rec.Status == "" {
		rec.Status = domain.StatusWishlist
	}
	return rec
}

// today returns the current date truncated to midnight UTC, the default
// application_date for blank rows.
func today() *time.Time {
	now := time.Now().UTC()
	t := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return &t
}

// formatDate is shared by export and delta rendering.
func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
