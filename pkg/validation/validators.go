package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators registers custom validators on the shared instance.
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("iso_date", ISODate)
}

// ISODate accepts an empty string or a YYYY-MM-DD date. Used on the
// request layer only; field-level enum validation stays server-side.
func ISODate(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", val)
	return err == nil
}

// FieldLabels maps struct field names to user-facing labels.
var FieldLabels = map[string]string{
	"URL":      "Job posting URL",
	"Text":     "Posting text",
	"Company":  "Company",
	"Position": "Position",
	"Location": "Location",
	"Deadline": "Deadline",
}

// FriendlyMessage renders validator errors as a single readable sentence.
func FriendlyMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		label := FieldLabels[fe.Field()]
		if label == "" {
			label = fe.Field()
		}
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", label))
		case "http_url", "url":
			parts = append(parts, fmt.Sprintf("%s must be a valid URL", label))
		case "iso_date":
			parts = append(parts, fmt.Sprintf("%s must be a YYYY-MM-DD date", label))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", label))
		}
	}
	return strings.Join(parts, "; ")
}
