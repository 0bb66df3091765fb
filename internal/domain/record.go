package domain

import (
	"context"
	"time"
)

// Application status values. The remote store is the validation authority;
// these are defaults and documentation, not a local whitelist.
const (
	StatusApplied   = "Applied"
	StatusInterview = "Interview"
	StatusOffer     = "Offer"
	StatusRejected  = "Rejected"
	StatusWishlist  = "Wishlist" // default on creation
)

// Job type values.
const (
	JobTypeInternship = "Internship"
	JobTypeFullTime   = "Full-Time"
	JobTypeContract   = "Contract"
	JobTypePartTime   = "Part-Time"
)

// RecordState tracks a record's lifecycle between local creation intent and
// remote acknowledgement. Only Persisted records live in the collection.
type RecordState string

const (
	StatePending   RecordState = "pending"
	StatePersisted RecordState = "persisted"
)

// PendingIDPrefix marks placeholder identifiers handed out while an insert is
// in flight. A placeholder is never a valid mutation target.
const PendingIDPrefix = "pending-"

// Field names accepted in a partial update, matching the column names of the
// applications table.
const (
	FieldCompany         = "company"
	FieldPosition        = "position"
	FieldLocation        = "location"
	FieldJobType         = "job_type"
	FieldApplicationDate = "application_date"
	FieldDeadline        = "deadline"
	FieldStatus          = "status"
	FieldJobURL          = "job_url"
	FieldNotes           = "notes"
)

// DateFields are the fields that require empty-string normalization before
// any write.
var DateFields = map[string]bool{
	FieldApplicationDate: true,
	FieldDeadline:        true,
}

// ApplicationRecord is the unit of persistence: one tracked job application.
// ID is opaque, server-assigned and immutable once created.
type ApplicationRecord struct {
	ID              string      `json:"id"`
	UserID          string      `json:"-"`
	Company         string      `json:"company"`
	Position        string      `json:"position"`
	Location        string      `json:"location"`
	JobType         string      `json:"job_type"`
	ApplicationDate *time.Time  `json:"application_date"`
	Deadline        *time.Time  `json:"deadline"`
	Status          string      `json:"status"`
	JobURL          string      `json:"job_url"`
	Notes           string      `json:"notes"`
	State           RecordState `json:"-"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// ExtractedFields is the best-effort field mapping produced by the
// extraction service from a job-posting page or raw text.
type ExtractedFields struct {
	Company  string `json:"company"`
	Position string `json:"position"`
	Location string `json:"location"`
	Deadline string `json:"deadline"`
	JobURL   string `json:"job_url,omitempty"`
}

// Merge fills empty fields of e from other. Scraped metadata wins over
// text-level parsing.
func (e ExtractedFields) Merge(other ExtractedFields) ExtractedFields {
	if e.Company == "" {
		e.Company = other.Company
	}
	if e.Position == "" {
		e.Position = other.Position
	}
	if e.Location == "" {
		e.Location = other.Location
	}
	if e.Deadline == "" {
		e.Deadline = other.Deadline
	}
	return e
}

// PaginatedResult wraps a page of results with pagination metadata.
type PaginatedResult[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// RowStore is the remote persistence contract consumed by the sync engine.
// Every call is scoped to the authenticated identity's own rows.
type RowStore interface {
	// SelectAll returns the user's records ordered by application_date
	// descending with null dates last.
	SelectAll(ctx context.Context, userID string) ([]ApplicationRecord, error)
	// Insert persists a new record and fills in the server-assigned ID and
	// timestamps on the passed record.
	Insert(ctx context.Context, rec *ApplicationRecord) error
	// Update applies a partial, field-level update to the record with the
	// given id.
	Update(ctx context.Context, userID, id string, fields map[string]any) error
	// Delete removes the record with the given id.
	Delete(ctx context.Context, userID, id string) error
}

// GridListener receives the minimal presentation instructions emitted by the
// sync engine. ReplaceAll is only ever sent by LoadAll; every other mutation
// produces a single-row delta.
type GridListener interface {
	ReplaceAll(rows []ApplicationRecord)
	AddRow(row ApplicationRecord, atIndex int)
	UpdateRow(id string, fields map[string]any)
	RemoveRow(id string)
	ShowError(message string)
	ShowSuccess(message string)
}

// SyncEngine is the single source of truth for which records exist and their
// last-known field values. It mediates every mutation between the grid and
// the row store.
type SyncEngine interface {
	LoadAll(ctx context.Context) ([]ApplicationRecord, error)
	CreateBlank(ctx context.Context) (*ApplicationRecord, error)
	CreateFromReviewed(ctx context.Context, fields map[string]any) (*ApplicationRecord, error)
	UpdateField(ctx context.Context, id string, changedFields map[string]any) error
	DeleteRow(ctx context.Context, id string) error
	// Snapshot returns a read-only copy of the current collection in display
	// order, for projections such as export and pagination.
	Snapshot() []ApplicationRecord
}

// Extractor produces a best-effort field mapping for a job posting.
type Extractor interface {
	ExtractFromURL(ctx context.Context, url string) (*ExtractedFields, error)
	ParseText(ctx context.Context, text string) (*ExtractedFields, error)
}
