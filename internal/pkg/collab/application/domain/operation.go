package collab

import (
	"fmt"
	"time"
)

// OpKind discriminates the edit operation union.
type OpKind string

const (
	OpInsert  OpKind = "insert"
	OpDelete  OpKind = "delete"
	OpReplace OpKind = "replace"
)

// Op is one variant of the edit operation union. Each variant carries only the
// fields its kind requires and knows how the edit changes buffer length.
type Op interface {
	Kind() OpKind
	Position() int
	// Delta is the signed length change the op applies to the buffer.
	Delta() int
	// WithPosition returns a copy of the op at the given position.
	WithPosition(pos int) Op
}

// Insert places content at a position.
type Insert struct {
	Pos     int
	Content string
}

func (op Insert) Kind() OpKind            { return OpInsert }
func (op Insert) Position() int           { return op.Pos }
func (op Insert) Delta() int              { return len(op.Content) }
func (op Insert) WithPosition(pos int) Op { op.Pos = pos; return op }

// Delete removes length characters starting at a position.
type Delete struct {
	Pos    int
	Length int
}

func (op Delete) Kind() OpKind            { return OpDelete }
func (op Delete) Position() int           { return op.Pos }
func (op Delete) Delta() int              { return -op.Length }
func (op Delete) WithPosition(pos int) Op { op.Pos = pos; return op }

// Replace swaps length characters at a position for new content.
type Replace struct {
	Pos     int
	Content string
	Length  int
}

func (op Replace) Kind() OpKind            { return OpReplace }
func (op Replace) Position() int           { return op.Pos }
func (op Replace) Delta() int              { return len(op.Content) - op.Length }
func (op Replace) WithPosition(pos int) Op { op.Pos = pos; return op }

// EditOperation is an immutable log entry in a session. Version is assigned by
// the operation log and is unique and strictly increasing per session.
type EditOperation struct {
	SessionID string
	UserID    string
	Op        Op
	Version   int64
	Timestamp time.Time
}

// OpEnvelope is the loose wire/storage shape of an operation before it has
// been validated into a typed variant.
type OpEnvelope struct {
	Kind     string  `json:"kind"`
	Position *int    `json:"position,omitempty"`
	Content  *string `json:"content,omitempty"`
	Length   *int    `json:"length,omitempty"`
}

// DecodeOp validates the envelope exhaustively for its kind and returns the
// typed variant. Every failure wraps ErrInvalidInput; nothing is mutated on
// failure.
func DecodeOp(e OpEnvelope) (Op, error) {
	if e.Position == nil {
		return nil, fmt.Errorf("%w: operation requires position", ErrInvalidInput)
	}
	if *e.Position < 0 {
		return nil, fmt.Errorf("%w: position must be non-negative", ErrInvalidInput)
	}
	switch OpKind(e.Kind) {
	case OpInsert:
		if e.Content == nil {
			return nil, fmt.Errorf("%w: insert requires content", ErrInvalidInput)
		}
		return Insert{Pos: *e.Position, Content: *e.Content}, nil
	case OpDelete:
		if e.Length == nil {
			return nil, fmt.Errorf("%w: delete requires length", ErrInvalidInput)
		}
		if *e.Length < 0 {
			return nil, fmt.Errorf("%w: length must be non-negative", ErrInvalidInput)
		}
		return Delete{Pos: *e.Position, Length: *e.Length}, nil
	case OpReplace:
		if e.Content == nil {
			return nil, fmt.Errorf("%w: replace requires content", ErrInvalidInput)
		}
		if e.Length == nil {
			return nil, fmt.Errorf("%w: replace requires length", ErrInvalidInput)
		}
		if *e.Length < 0 {
			return nil, fmt.Errorf("%w: length must be non-negative", ErrInvalidInput)
		}
		return Replace{Pos: *e.Position, Content: *e.Content, Length: *e.Length}, nil
	default:
		return nil, fmt.Errorf("%w: unknown operation kind %q", ErrInvalidInput, e.Kind)
	}
}

// EncodeOp converts a typed variant back to its wire/storage shape.
func EncodeOp(op Op) OpEnvelope {
	pos := op.Position()
	e := OpEnvelope{Kind: string(op.Kind()), Position: &pos}
	switch v := op.(type) {
	case Insert:
		e.Content = &v.Content
	case Delete:
		e.Length = &v.Length
	case Replace:
		e.Content = &v.Content
		e.Length = &v.Length
	}
	return e
}
