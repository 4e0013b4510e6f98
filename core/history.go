package core

// DefaultUndoLimit bounds the undo stack.
const DefaultUndoLimit = 100

// snapshot is a full copy of the buffer and cursor taken before an edit.
type snapshot struct {
	lines  [][]rune
	cursor Position
}

// undoStack is a bounded LIFO of snapshots. The oldest entry is evicted
// once the limit is exceeded.
type undoStack struct {
	entries []snapshot
	limit   int
}

func newUndoStack(limit int) *undoStack {
	if limit <= 0 {
		limit = DefaultUndoLimit
	}
	return &undoStack{limit: limit}
}

func (s *undoStack) push(snap snapshot) {
	s.entries = append(s.entries, snap)
	if len(s.entries) > s.limit {
		s.entries = s.entries[len(s.entries)-s.limit:]
	}
}

func (s *undoStack) pop() (snapshot, bool) {
	if len(s.entries) == 0 {
		return snapshot{}, false
	}
	last := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return last, true
}

func (s *undoStack) len() int {
	return len(s.entries)
}

func (s *undoStack) reset() {
	s.entries = nil
}

// saveUndo records the current buffer and cursor. Every destructive
// command calls it after its preconditions hold and before it mutates.
func (e *Engine) saveUndo() {
	e.undo.push(snapshot{
		lines:  e.buffer.copyLines(),
		cursor: e.cursor.Position,
	})
}

func (e *Engine) undoLast() error {
	snap, ok := e.undo.pop()
	if !ok {
		return ErrNothingToUndo
	}
	e.buffer.lines = snap.lines
	e.cursor.Position = snap.cursor
	e.cursor.clamp(e.buffer, e.mode)
	return nil
}
