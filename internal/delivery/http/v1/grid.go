package v1

import (
	"sync"

	"go-jobtracker-backend/internal/domain"
)

// Grid instruction operations, mirroring what the sync engine can ask the
// presentation layer to do.
const (
	OpReplaceAll  = "replace_all"
	OpAddRow      = "add_row"
	OpUpdateRow   = "update_row"
	OpRemoveRow   = "remove_row"
	OpShowError   = "show_error"
	OpShowSuccess = "show_success"
)

// GridInstruction is one minimal delta for the grid: a single-row add,
// update or remove, a full replace (LoadAll only), or a transient message.
type GridInstruction struct {
	Op      string                     `json:"op"`
	Rows    []domain.ApplicationRecord `json:"rows,omitempty"`
	Row     *domain.ApplicationRecord  `json:"row,omitempty"`
	AtIndex *int                       `json:"at_index,omitempty"`
	RowID   string                     `json:"row_id,omitempty"`
	Fields  map[string]any             `json:"fields,omitempty"`
	Message string                     `json:"message,omitempty"`
}

// gridBuffer queues the instructions the engine emits so the handler can
// return them with the operation's response. It is the GridListener half of
// the HTTP presentation layer.
type gridBuffer struct {
	mu           sync.Mutex
	instructions []GridInstruction
}

func newGridBuffer() *gridBuffer {
	return &gridBuffer{}
}

func (b *gridBuffer) append(in GridInstruction) {
	b.mu.Lock()
	b.instructions = append(b.instructions, in)
	b.mu.Unlock()
}

// Drain returns and clears the queued instructions.
func (b *gridBuffer) Drain() []GridInstruction {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.instructions
	b.instructions = nil
	return out
}

func (b *gridBuffer) ReplaceAll(rows []domain.ApplicationRecord) {
	b.append(GridInstruction{Op: OpReplaceAll, Rows: rows})
}

func (b *gridBuffer) AddRow(row domain.ApplicationRecord, atIndex int) {
	b.append(GridInstruction{Op: OpAddRow, Row: &row, AtIndex: &atIndex})
}

func (b *gridBuffer) UpdateRow(id string, fields map[string]any) {
	b.append(GridInstruction{Op: OpUpdateRow, RowID: id, Fields: fields})
}

func (b *gridBuffer) RemoveRow(id string) {
	b.append(GridInstruction{Op: OpRemoveRow, RowID: id})
}

func (b *gridBuffer) ShowError(message string) {
	b.append(GridInstruction{Op: OpShowError, Message: message})
}

func (b *gridBuffer) ShowSuccess(message string) {
	b.append(GridInstruction{Op: OpShowSuccess, Message: message})
}
