package usecase

import (
	"context"
	"strings"

	"go-jobtracker-backend/internal/domain"
	"go-jobtracker-backend/internal/extract"
	"go-jobtracker-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type extractUsecase struct {
	scraper  *extract.Scraper
	validate *validator.Validate
}

// NewExtractUsecase creates the extraction service: URL or raw posting text
// in, best-effort field mapping out.
func NewExtractUsecase(scraper *extract.Scraper, validate *validator.Validate) domain.Extractor {
	return &extractUsecase{scraper: scraper, validate: validate}
}

// ExtractFromURL fetches the posting page, reads the fields the page
// structure exposes directly, and parses the description text for the rest.
func (uc *extractUsecase) ExtractFromURL(ctx context.Context, pageURL string) (*domain.ExtractedFields, error) {
	if err := uc.validate.Var(pageURL, "required,http_url"); err != nil {
		return nil, apperror.BadRequest("A valid job posting URL is required")
	}

	rawHTML, err := uc.scraper.Fetch(ctx, pageURL)
	if err != nil {
		return nil, apperror.New(422, "Could not fetch the job posting page", err)
	}

	text, meta := uc.scraper.ExtractText(rawHTML, pageURL)
	parsed := extract.ParseText(text)

	fields := meta.Merge(parsed)
	fields.JobURL = pageURL
	return &fields, nil
}

// ParseText extracts fields from posting text the user pasted directly.
func (uc *extractUsecase) ParseText(ctx context.Context, text string) (*domain.ExtractedFields, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.BadRequest("Missing 'text' field")
	}
	fields := extract.ParseText(text)
	return &fields, nil
}
