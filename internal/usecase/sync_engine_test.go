package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-jobtracker-backend/internal/domain"
	"go-jobtracker-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock row store
type MockRowStore struct {
	mock.Mock
}

func (m *MockRowStore) SelectAll(ctx context.Context, userID string) ([]domain.ApplicationRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApplicationRecord), args.Error(1)
}

func (m *MockRowStore) Insert(ctx context.Context, rec *domain.ApplicationRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *MockRowStore) Update(ctx context.Context, userID, id string, fields map[string]any) error {
	return m.Called(ctx, userID, id, fields).Error(0)
}

func (m *MockRowStore) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

// recordingListener captures the deltas the engine emits.
type recordingListener struct {
	replaceAll [][]domain.ApplicationRecord
	added      []domain.ApplicationRecord
	addedAt    []int
	updatedIDs []string
	updatedFld []map[string]any
	removedIDs []string
	errors     []string
	successes  []string
}

func (l *recordingListener) ReplaceAll(rows []domain.ApplicationRecord) {
	l.replaceAll = append(l.replaceAll, rows)
}
func (l *recordingListener) AddRow(row domain.ApplicationRecord, atIndex int) {
	l.added = append(l.added, row)
	l.addedAt = append(l.addedAt, atIndex)
}
func (l *recordingListener) UpdateRow(id string, fields map[string]any) {
	l.updatedIDs = append(l.updatedIDs, id)
	l.updatedFld = append(l.updatedFld, fields)
}
func (l *recordingListener) RemoveRow(id string) { l.removedIDs = append(l.removedIDs, id) }
func (l *recordingListener) ShowError(msg string) {
	l.errors = append(l.errors, msg)
}
func (l *recordingListener) ShowSuccess(msg string) {
	l.successes = append(l.successes, msg)
}

func date(s string) *time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return &t
}

func newEngine(store domain.RowStore) (domain.SyncEngine, *recordingListener) {
	listener := &recordingListener{}
	return usecase.NewSyncEngine(store, listener, "user1", "token"), listener
}

func TestLoadAll(t *testing.T) {
	ctx := context.Background()

	t.Run("Should order by application date descending with undated rows last", func(t *testing.T) {
		store := new(MockRowStore)
		engine, listener := newEngine(store)

		store.On("SelectAll", ctx, "user1").Return([]domain.ApplicationRecord{
			{ID: "a", ApplicationDate: date("2024-01-10")},
			{ID: "b", ApplicationDate: nil},
			{ID: "c", ApplicationDate: date("2024-03-01")},
		}, nil)

		rows, err := engine.LoadAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, rows, 3)
		assert.Equal(t, "c", rows[0].ID)
		assert.Equal(t, "a", rows[1].ID)
		assert.Equal(t, "b", rows[2].ID)
		assert.Len(t, listener.replaceAll, 1)
	})

	t.Run("Should fail without a credential and leave the grid untouched", func(t *testing.T) {
		store := new(MockRowStore)
		listener := &recordingListener{}
		engine := usecase.NewSyncEngine(store, listener, "user1", "")

		_, err := engine.LoadAll(ctx)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
		assert.Empty(t, listener.replaceAll)
		assert.Contains(t, listener.errors, "Sign in to load applications")
		store.AssertNotCalled(t, "SelectAll", mock.Anything, mock.Anything)
	})

	t.Run("Should keep the previous collection when the reload fails", func(t *testing.T) {
		store := new(MockRowStore)
		engine, listener := newEngine(store)

		store.On("SelectAll", ctx, "user1").Return([]domain.ApplicationRecord{
			{ID: "a", ApplicationDate: date("2024-01-10")},
		}, nil).Once()
		store.On("SelectAll", ctx, "user1").Return(nil, domain.ErrRemoteUnavailable).Once()

		_, err := engine.LoadAll(ctx)
		assert.NoError(t, err)

		_, err = engine.LoadAll(ctx)
		assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
		assert.Contains(t, listener.errors, "Could not load applications")

		snapshot := engine.Snapshot()
		assert.Len(t, snapshot, 1)
		assert.Equal(t, "a", snapshot[0].ID)
	})
}

func TestCreateBlank(t *testing.T) {
	ctx := context.Background()

	t.Run("Should insert defaults and add the acknowledged row at the top", func(t *testing.T) {
		store := new(MockRowStore)
		engine, listener := newEngine(store)

		store.On("Insert", ctx, mock.AnythingOfType("*domain.ApplicationRecord")).Return(nil).Run(func(args mock.Arguments) {
			rec := args.Get(1).(*domain.ApplicationRecord)
			assert.Equal(t, domain.StatusWishlist, rec.Status)
			assert.NotNil(t, rec.ApplicationDate)
			rec.ID = "srv-1"
		})

		rec, err := engine.CreateBlank(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "srv-1", rec.ID)
		assert.Equal(t, domain.StatePersisted, rec.State)
		assert.Len(t, engine.Snapshot(), 1)
		assert.Equal(t, []int{0}, listener.addedAt)
		assert.Contains(t, listener.successes, "Application added")
	})

	t.Run("Should not leave a phantom row when the insert fails", func(t *testing.T) {
		store := new(MockRowStore)
		engine, listener := newEngine(store)

		store.On("Insert", ctx, mock.Anything).Return(domain.ErrRemoteUnavailable)

		_, err := engine.CreateBlank(ctx)
		assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
		assert.Empty(t, engine.Snapshot())
		assert.Empty(t, listener.added)
		assert.Contains(t, listener.errors, "Could not add application")
	})

	t.Run("Should give each created row a distinct server id", func(t *testing.T) {
		store := new(MockRowStore)
		engine, _ := newEngine(store)

		n := 0
		store.On("Insert", ctx, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			n++
			args.Get(1).(*domain.ApplicationRecord).ID = "srv-" + string(rune('a'+n))
		})

		first, err := engine.CreateBlank(ctx)
		assert.NoError(t, err)
		second, err := engine.CreateBlank(ctx)
		assert.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
		assert.Len(t, engine.Snapshot(), 2)
	})
}

func TestCreateFromReviewed(t *testing.T) {
	ctx := context.Background()

	t.Run("Should normalize empty dates and carry reviewed values", func(t *testing.T) {
		store := new(MockRowStore)
		engine, _ := newEngine(store)

		store.On("Insert", ctx, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			rec := args.Get(1).(*domain.ApplicationRecord)
			assert.Equal(t, "Acme", rec.Company)
			assert.Equal(t, "Engineer", rec.Position)
			assert.Nil(t, rec.Deadline)
			assert.Equal(t, domain.StatusWishlist, rec.Status)
			rec.ID = "srv-9"
		})

		rec, err := engine.CreateFromReviewed(ctx, map[string]any{
			"company":  "Acme",
			"position": "Engineer",
			"deadline": "",
		})
		assert.NoError(t, err)
		assert.Equal(t, "srv-9", rec.ID)
	})

	t.Run("Should reject an unparseable date instead of dropping it", func(t *testing.T) {
		store := new(MockRowStore)
		engine, listener := newEngine(store)

		_, err := engine.CreateFromReviewed(ctx, map[string]any{
			"company":  "Acme",
			"deadline": "ASAP",
		})
		assert.ErrorIs(t, err, domain.ErrRemoteRejected)
		assert.Empty(t, engine.Snapshot())
		assert.Contains(t, listener.errors, "Could not add application")
		store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})
}

func TestUpdateField(t *testing.T) {
	ctx := context.Background()

	load := func(t *testing.T, store *MockRowStore, engine domain.SyncEngine) {
		t.Helper()
		store.On("SelectAll", ctx, "user1").Return([]domain.ApplicationRecord{
			{ID: "a", Company: "Old", ApplicationDate: date("2024-01-10")},
		}, nil).Once()
		_, err := engine.LoadAll(ctx)
		assert.NoError(t, err)
	}

	t.Run("Should persist the edit and emit a single-row delta", func(t *testing.T) {
		store := new(MockRowStore)
		engine, listener := newEngine(store)
		load(t, store, engine)

		store.On("Update", ctx, "user1", "a", map[string]any{"company": "New"}).Return(nil)

		err := engine.UpdateField(ctx, "a", map[string]any{"company": "New"})
		assert.NoError(t, err)
		assert.Equal(t, []string{"a"}, listener.updatedIDs)
		assert.Equal(t, "New", engine.Snapshot()[0].Company)
		assert.Contains(t, listener.successes, "Saved")
	})

	t.Run("Should keep the optimistic value when the remote write fails", func(t *testing.T) {
		store := new(MockRowStore)
		engine, listener := newEngine(store)
		load(t, store, engine)

		store.On("Update", ctx, "user1", "a", mock.Anything).Return(domain.ErrRemoteUnavailable)

		err := engine.UpdateField(ctx, "a", map[string]any{"company": "New"})
		assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
		// Displayed value stays; the next reload reconciles.
		assert.Equal(t, "New", engine.Snapshot()[0].Company)
		assert.Contains(t, listener.errors, "Could not save change")
		assert.Empty(t, listener.updatedIDs)
	})

	t.Run("Should clear a date via empty string", func(t *testing.T) {
		store := new(MockRowStore)
		engine, listener := newEngine(store)
		load(t, store, engine)

		store.On("Update", ctx, "user1", "a", map[string]any{"application_date": nil}).Return(nil)

		err := engine.UpdateField(ctx, "a", map[string]any{"application_date": ""})
		assert.NoError(t, err)
		assert.Nil(t, engine.Snapshot()[0].ApplicationDate)
		assert.Len(t, listener.updatedFld, 1)
		assert.Nil(t, listener.updatedFld[0]["application_date"])
	})

	t.Run("Should pass an unparseable date through for the store to reject", func(t *testing.T) {
		store := new(MockRowStore)
		engine, _ := newEngine(store)
		load(t, store, engine)

		store.On("Update", ctx, "user1", "a", map[string]any{"deadline": "ASAP"}).Return(domain.ErrRemoteRejected)

		err := engine.UpdateField(ctx, "a", map[string]any{"deadline": "ASAP"})
		assert.ErrorIs(t, err, domain.ErrRemoteRejected)
		store.AssertExpectations(t)
	})

	t.Run("Should agree with the store after the next reload", func(t *testing.T) {
		store := new(MockRowStore)
		engine, _ := newEngine(store)
		load(t, store, engine)

		store.On("Update", ctx, "user1", "a", map[string]any{"status": "Applied"}).Return(nil)
		err := engine.UpdateField(ctx, "a", map[string]any{"status": "Applied"})
		assert.NoError(t, err)

		store.On("SelectAll", ctx, "user1").Return([]domain.ApplicationRecord{
			{ID: "a", Company: "Old", Status: "Applied", ApplicationDate: date("2024-01-10")},
		}, nil).Once()
		rows, err := engine.LoadAll(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "Applied", rows[0].Status)
		assert.Equal(t, "Applied", engine.Snapshot()[0].Status)
	})

	t.Run("Should reject a mutation addressed to a pending placeholder", func(t *testing.T) {
		store := new(MockRowStore)
		engine, _ := newEngine(store)
		load(t, store, engine)

		err := engine.UpdateField(ctx, "pending-x", map[string]any{"company": "New"})
		assert.ErrorIs(t, err, domain.ErrRowPending)
		store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should report not found for an unknown id", func(t *testing.T) {
		store := new(MockRowStore)
		engine, listener := newEngine(store)
		load(t, store, engine)

		err := engine.UpdateField(ctx, "ghost", map[string]any{"company": "New"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, listener.errors, "Application no longer exists")
	})

	t.Run("Should reject an empty field set", func(t *testing.T) {
		store := new(MockRowStore)
		engine, _ := newEngine(store)
		load(t, store, engine)

		err := engine.UpdateField(ctx, "a", map[string]any{})
		assert.ErrorIs(t, err, domain.ErrRemoteRejected)
	})
}

func TestDeleteRow(t *testing.T) {
	ctx := context.Background()

	load := func(t *testing.T, store *MockRowStore, engine domain.SyncEngine) {
		t.Helper()
		store.On("SelectAll", ctx, "user1").Return([]domain.ApplicationRecord{
			{ID: "a", ApplicationDate: date("2024-01-10")},
			{ID: "b", ApplicationDate: date("2024-02-10")},
		}, nil).Once()
		_, err := engine.LoadAll(ctx)
		assert.NoError(t, err)
	}

	t.Run("Should remove the row remotely then locally", func(t *testing.T) {
		store := new(MockRowStore)
		engine, listener := newEngine(store)
		load(t, store, engine)

		store.On("Delete", ctx, "user1", "a").Return(nil)

		err := engine.DeleteRow(ctx, "a")
		assert.NoError(t, err)
		assert.Len(t, engine.Snapshot(), 1)
		assert.Equal(t, []string{"a"}, listener.removedIDs)
		assert.Contains(t, listener.successes, "Application deleted")
	})

	t.Run("Should leave the collection unchanged when the id is unknown", func(t *testing.T) {
		store := new(MockRowStore)
		engine, _ := newEngine(store)
		load(t, store, engine)

		err := engine.DeleteRow(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Len(t, engine.Snapshot(), 2)
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should keep the row visible when the remote delete fails", func(t *testing.T) {
		store := new(MockRowStore)
		engine, listener := newEngine(store)
		load(t, store, engine)

		store.On("Delete", ctx, "user1", "a").Return(domain.ErrRemoteUnavailable)

		err := engine.DeleteRow(ctx, "a")
		assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
		assert.Len(t, engine.Snapshot(), 2)
		assert.Empty(t, listener.removedIDs)
	})

	t.Run("Should reject deleting a pending placeholder", func(t *testing.T) {
		store := new(MockRowStore)
		engine, _ := newEngine(store)
		load(t, store, engine)

		err := engine.DeleteRow(ctx, "pending-x")
		assert.ErrorIs(t, err, domain.ErrRowPending)
		assert.Len(t, engine.Snapshot(), 2)
	})
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return a copy callers cannot mutate", func(t *testing.T) {
		store := new(MockRowStore)
		engine, _ := newEngine(store)

		store.On("SelectAll", ctx, "user1").Return([]domain.ApplicationRecord{
			{ID: "a", Company: "Acme", ApplicationDate: date("2024-01-10")},
		}, nil)
		_, err := engine.LoadAll(ctx)
		assert.NoError(t, err)

		snap := engine.Snapshot()
		snap[0].Company = "Mutated"
		assert.Equal(t, "Acme", engine.Snapshot()[0].Company)
	})
}
