package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go-jobtracker-backend/internal/domain"
)

// syncEngine owns the authoritative in-memory collection for one signed-in
// user and mediates every mutation between the grid and the row store.
//
// The mutex guards the collection only; remote calls run outside the lock so
// independent rows can be mutated concurrently. Edits to
// the same record racing each other are resolved last-acknowledgement-wins,
// matching the grid's optimistic-edit contract.
type syncEngine struct {
	store      domain.RowStore
	listener   domain.GridListener
	userID     string
	credential string

	mu      sync.Mutex
	records []domain.ApplicationRecord
}

// NewSyncEngine creates the SyncState for a signed-in user. The credential is
// the opaque bearer token the session provider issued; an empty credential
// makes every operation fail Unauthenticated.
func NewSyncEngine(store domain.RowStore, listener domain.GridListener, userID, credential string) domain.SyncEngine {
	return &syncEngine{
		store:      store,
		listener:   listener,
		userID:     userID,
		credential: credential,
	}
}

// LoadAll replaces the whole collection from the store. This is the only
// full-reload path; every other operation emits a single-row delta. On any
// failure the previous collection is left untouched.
func (e *syncEngine) LoadAll(ctx context.Context) ([]domain.ApplicationRecord, error) {
	if err := e.authenticated(); err != nil {
		e.listener.ShowError("Sign in to load applications")
		return nil, err
	}

	rows, err := e.store.SelectAll(ctx, e.userID)
	if err != nil {
		e.listener.ShowError("Could not load applications")
		return nil, fmt.Errorf("load all: %w", err)
	}

	for i := range rows {
		rows[i].State = domain.StatePersisted
	}
	sortRecords(rows)

	e.mu.Lock()
	e.records = rows
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	e.listener.ReplaceAll(snapshot)
	return snapshot, nil
}

// CreateBlank inserts a row with the fixed default shape and adds it at the
// front of the collection once the store has assigned its identity. No
// unpersisted phantom row is ever added on failure.
func (e *syncEngine) CreateBlank(ctx context.Context) (*domain.ApplicationRecord, error) {
	rec := &domain.ApplicationRecord{
		UserID:          e.userID,
		Status:          domain.StatusWishlist,
		ApplicationDate: today(),
		State:           domain.StatePending,
	}
	return e.create(ctx, rec)
}

// CreateFromReviewed inserts a row populated from user-reviewed extraction
// output. Empty-string dates are normalized to no-value before submission. An
// unparseable date is rejected here with the same sentinel a store-side
// rejection carries: the insert payload is typed and cannot smuggle the raw
// string through for the store to refuse, and dropping the value silently is
// not an option.
func (e *syncEngine) CreateFromReviewed(ctx context.Context, fields map[string]any) (*domain.ApplicationRecord, error) {
	normalized := NormalizeFields(fields)
	for name := range domain.DateFields {
		if raw, ok := normalized[name].(string); ok {
			e.listener.ShowError("Could not add application")
			return nil, fmt.Errorf("create: invalid %s %q: %w", name, raw, domain.ErrRemoteRejected)
		}
	}
	rec := recordFromFields(e.userID, normalized)
	return e.create(ctx, rec)
}

func (e *syncEngine) create(ctx context.Context, rec *domain.ApplicationRecord) (*domain.ApplicationRecord, error) {
	if err := e.authenticated(); err != nil {
		e.listener.ShowError("Sign in to add applications")
		return nil, err
	}

	if err := e.store.Insert(ctx, rec); err != nil {
		e.listener.ShowError("Could not add application")
		return nil, fmt.Errorf("create: %w", err)
	}

	e.mu.Lock()
	rec.State = domain.StatePersisted
	e.records = append([]domain.ApplicationRecord{*rec}, e.records...)
	e.mu.Unlock()

	e.listener.AddRow(*rec, 0)
	e.listener.ShowSuccess("Application added")
	return rec, nil
}

// UpdateField applies one committed cell edit. The in-memory value is applied
// optimistically and is deliberately not rolled back when the remote write
// fails; the failure is surfaced and the next LoadAll reconciles. Callers
// needing strict consistency must re-fetch after an error.
func (e *syncEngine) UpdateField(ctx context.Context, id string, changedFields map[string]any) error {
	if err := e.authenticated(); err != nil {
		return err
	}
	if len(changedFields) == 0 {
		return fmt.Errorf("update %s: no fields: %w", id, domain.ErrRemoteRejected)
	}
	fields := NormalizeFields(changedFields)

	e.mu.Lock()
	if e.isPendingLocked(id) {
		e.mu.Unlock()
		return fmt.Errorf("update %s: %w", id, domain.ErrRowPending)
	}
	rec := e.findLocked(id)
	if rec == nil {
		e.mu.Unlock()
		e.listener.ShowError("Application no longer exists")
		return fmt.Errorf("update %s: %w", id, domain.ErrNotFound)
	}
	applyFields(rec, fields)
	e.mu.Unlock()

	if err := e.store.Update(ctx, e.userID, id, fields); err != nil {
		e.listener.ShowError("Could not save change")
		return fmt.Errorf("update %s: %w", id, err)
	}

	e.listener.UpdateRow(id, jsonFields(fields))
	e.listener.ShowSuccess("Saved")
	return nil
}

// DeleteRow removes the record remotely and locally. The caller owns the
// confirmation step; the engine performs none. On failure the record stays
// visible and untouched.
func (e *syncEngine) DeleteRow(ctx context.Context, id string) error {
	if err := e.authenticated(); err != nil {
		return err
	}

	e.mu.Lock()
	if e.isPendingLocked(id) {
		e.mu.Unlock()
		return fmt.Errorf("delete %s: %w", id, domain.ErrRowPending)
	}
	if e.findLocked(id) == nil {
		e.mu.Unlock()
		e.listener.ShowError("Application no longer exists")
		return fmt.Errorf("delete %s: %w", id, domain.ErrNotFound)
	}
	e.mu.Unlock()

	if err := e.store.Delete(ctx, e.userID, id); err != nil {
		e.listener.ShowError("Could not delete application")
		return fmt.Errorf("delete %s: %w", id, err)
	}

	e.mu.Lock()
	e.removeLocked(id)
	e.mu.Unlock()

	e.listener.RemoveRow(id)
	e.listener.ShowSuccess("Application deleted")
	return nil
}

// Snapshot returns a copy of the collection in display order.
func (e *syncEngine) Snapshot() []domain.ApplicationRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *syncEngine) authenticated() error {
	if e.credential == "" {
		return domain.ErrUnauthenticated
	}
	return nil
}

// isPendingLocked reports whether a mutation is addressed to a placeholder id
// the grid holds while an insert is still in flight. Such mutations are
// rejected, not queued: the real identity may never exist.
func (e *syncEngine) isPendingLocked(id string) bool {
	return strings.HasPrefix(id, domain.PendingIDPrefix)
}

func (e *syncEngine) findLocked(id string) *domain.ApplicationRecord {
	for i := range e.records {
		if e.records[i].ID == id {
			return &e.records[i]
		}
	}
	return nil
}

func (e *syncEngine) removeLocked(id string) {
	for i := range e.records {
		if e.records[i].ID == id {
			e.records = append(e.records[:i], e.records[i+1:]...)
			return
		}
	}
}

func (e *syncEngine) snapshotLocked() []domain.ApplicationRecord {
	out := make([]domain.ApplicationRecord, len(e.records))
	copy(out, e.records)
	return out
}

// sortRecords orders by application_date descending with null dates last.
// Ties fall back to created_at descending then id so the order is stable.
func sortRecords(rows []domain.ApplicationRecord) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].ApplicationDate, rows[j].ApplicationDate
		switch {
		case a == nil && b == nil:
			// fall through to tie-break
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.After(*b)
		}
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].ID < rows[j].ID
	})
}
