package terminal

import "github.com/huhlig/termionix/ansi"

// StyledChar is one character cell: the rune plus the SGR attributes in
// effect when it was written.
type StyledChar struct {
	Char  rune
	Style ansi.SGRRecord
}

// Position is a 1-based (row, col) cursor location, matching the CUP/HVP
// convention on the wire.
type Position struct {
	Row, Col int
}

// EraseMode mirrors the ED/EL mode parameter: 0 = cursor to end,
// 1 = start to cursor, 2 = entire display/line.
type EraseMode int

const (
	EraseToEnd EraseMode = iota
	EraseToStart
	EraseAll
)

// Buffer is the display-buffer collaborator terminal.Adapter drives: line
// accumulation, cursor tracking, and stripped-text queries, per spec.md
// §1/§4.E. Only the interface is specified there; DefaultBuffer below is a
// usable concrete implementation that tracks the current line plus a
// simple row counter rather than a full screen grid, since nothing in
// spec.md requires scrollback or a multi-line erase model.
type Buffer interface {
	AppendChar(c rune, style ansi.SGRRecord)
	Backspace()
	MoveCursorBy(drow, dcol int)
	SetCursor(row, col int)
	EraseDisplay(mode EraseMode)
	EraseLine(mode EraseMode)
	CompleteLine() []StyledChar
	Cursor() Position
	StrippedText() string
}

// DefaultBuffer is Buffer's reference implementation.
type DefaultBuffer struct {
	line   []StyledChar
	row    int
	col    int
}

// NewDefaultBuffer returns a buffer positioned at (1, 1).
func NewDefaultBuffer() *DefaultBuffer {
	return &DefaultBuffer{row: 1, col: 1}
}

func (b *DefaultBuffer) AppendChar(c rune, style ansi.SGRRecord) {
	if b.col-1 < len(b.line) {
		b.line[b.col-1] = StyledChar{Char: c, Style: style}
	} else {
		b.line = append(b.line, StyledChar{Char: c, Style: style})
	}
	b.col++
}

func (b *DefaultBuffer) Backspace() {
	if b.col > 1 {
		b.col--
	}
}

func (b *DefaultBuffer) MoveCursorBy(drow, dcol int) {
	b.row += drow
	if b.row < 1 {
		b.row = 1
	}
	b.col += dcol
	if b.col < 1 {
		b.col = 1
	}
}

func (b *DefaultBuffer) SetCursor(row, col int) {
	if row < 1 {
		row = 1
	}
	if col < 1 {
		col = 1
	}
	b.row, b.col = row, col
}

func (b *DefaultBuffer) EraseDisplay(mode EraseMode) {
	b.EraseLine(mode)
}

func (b *DefaultBuffer) EraseLine(mode EraseMode) {
	switch mode {
	case EraseToEnd:
		if b.col-1 < len(b.line) {
			b.line = b.line[:b.col-1]
		}
	case EraseToStart:
		for i := 0; i < b.col-1 && i < len(b.line); i++ {
			b.line[i] = StyledChar{Char: ' '}
		}
	case EraseAll:
		b.line = b.line[:0]
	}
}

func (b *DefaultBuffer) CompleteLine() []StyledChar {
	line := append([]StyledChar(nil), b.line...)
	b.line = b.line[:0]
	b.row++
	b.col = 1
	return line
}

func (b *DefaultBuffer) Cursor() Position {
	return Position{Row: b.row, Col: b.col}
}

func (b *DefaultBuffer) StrippedText() string {
	runes := make([]rune, len(b.line))
	for i, sc := range b.line {
		runes[i] = sc.Char
	}
	return string(runes)
}
