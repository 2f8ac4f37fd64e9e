package levels

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var (
	ErrEmpty           = errors.New("level has no rows")
	ErrRaggedRows      = errors.New("row length differs from the first row")
	ErrMissingStart    = errors.New("a level must have a starting point")
	ErrDuplicateStart  = errors.New("a level may only have one starting point")
	ErrMissingExit     = errors.New("a level must have an exit")
	ErrDuplicateExit   = errors.New("a level may only have one exit")
	ErrUnsupportedTile = errors.New("unsupported tile character")
)

type parseOptions struct {
	name   string
	strict bool
}

type Option func(*parseOptions)

// Strict rejects runes that do not name a tile instead of treating them as
// empty space.
func Strict() Option {
	return func(o *parseOptions) { o.strict = true }
}

// Named attaches a name to the parsed map and to its errors.
func Named(name string) Option {
	return func(o *parseOptions) { o.name = name }
}

func kindOf(r rune) (Kind, bool) {
	switch r {
	case '.':
		return Empty, true
	case 'o':
		return Block, true
	case '-':
		return Platform, true
	case '#':
		return Paintable, true
	case '1':
		return Start, true
	case 'x':
		return Exit, true
	case 'Q':
		return Enemy, true
	}
	return Empty, false
}

// Parse reads a level source. Any validation failure aborts the load; no
// partial map is returned.
func Parse(r io.Reader, opts ...Option) (*Map, error) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}

	m, err := parse(r, o)
	if err != nil {
		if o.name != "" {
			return nil, fmt.Errorf("level %s: %w", o.name, err)
		}
		return nil, err
	}
	return m, nil
}

// ParseString is Parse over an in-memory source.
func ParseString(src string, opts ...Option) (*Map, error) {
	return Parse(strings.NewReader(src), opts...)
}

func parse(r io.Reader, o parseOptions) (*Map, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}

	// trailing blank lines are editor noise, not rows
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, ErrEmpty
	}

	width := utf8.RuneCountInString(lines[0])
	if width == 0 {
		return nil, ErrEmpty
	}
	for i, line := range lines {
		if n := utf8.RuneCountInString(line); n != width {
			return nil, fmt.Errorf("line %d has %d tiles, want %d: %w", i+1, n, width, ErrRaggedRows)
		}
	}

	m := &Map{
		Name:   o.name,
		Width:  width,
		Height: len(lines),
		Cells:  make([]Kind, width*len(lines)),
	}

	hasStart, hasExit := false, false
	for y, line := range lines {
		x := 0
		for _, r := range line {
			kind, ok := kindOf(r)
			if !ok {
				if o.strict {
					return nil, fmt.Errorf("%q at %d, %d: %w", r, x, y, ErrUnsupportedTile)
				}
				m.Unknown++
			}

			switch kind {
			case Start:
				if hasStart {
					return nil, fmt.Errorf("start at %d, %d: %w", x, y, ErrDuplicateStart)
				}
				hasStart = true
				m.Start = Point{X: x, Y: y}
			case Exit:
				if hasExit {
					return nil, fmt.Errorf("exit at %d, %d: %w", x, y, ErrDuplicateExit)
				}
				hasExit = true
				m.Exit = Point{X: x, Y: y}
			case Enemy:
				m.Enemies = append(m.Enemies, Point{X: x, Y: y})
			}

			m.Cells[y*width+x] = kind
			x++
		}
	}

	if !hasStart {
		return nil, ErrMissingStart
	}
	if !hasExit {
		return nil, ErrMissingExit
	}
	return m, nil
}
