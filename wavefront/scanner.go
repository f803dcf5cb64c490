package wavefront

import (
	"fmt"
	"strconv"
	"strings"
)

// Scanner is a cursor over the text of an obj or mtl file. It splits lines
// into whitespace-delimited tokens and knows nothing about either grammar.
// Whitespace other than newlines is skipped between tokens.
type Scanner struct {
	source string
	pos    int

	// 1-based line the cursor is currently on.
	line int
}

// Create a new scanner for source.
func NewScanner(source string) *Scanner {
	return &Scanner{source: source, line: 1}
}

// Returns true while the cursor has not reached the end of the source.
func (s *Scanner) HasMoreInput() bool {
	return s.pos < len(s.source)
}

// Line returns the 1-based line number of the cursor.
func (s *Scanner) Line() int {
	return s.line
}

// Reset rewinds the cursor to the start of the source.
func (s *Scanner) Reset() {
	s.pos = 0
	s.line = 1
}

// ReadMarker consumes the keyword at the start of the current line. It
// returns false if the line is blank.
func (s *Scanner) ReadMarker() (string, bool) {
	return s.ReadToken()
}

// ReadToken consumes the next run of non-whitespace characters on the current line.
func (s *Scanner) ReadToken() (string, bool) {
	start, end := s.nextToken()
	s.pos = end
	return s.source[start:end], end > start
}

// PeekToken returns the next token on the current line without consuming it.
func (s *Scanner) PeekToken() (string, bool) {
	start, end := s.nextToken()
	return s.source[start:end], end > start
}

// ReadTokens consumes all remaining tokens on the current line.
func (s *Scanner) ReadTokens() []string {
	var tokens []string
	for {
		tok, ok := s.ReadToken()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// ReadLine consumes everything up to (not including) the next newline.
// Surrounding whitespace is trimmed; false is returned if nothing is left.
func (s *Scanner) ReadLine() (string, bool) {
	s.skipSpace()
	start := s.pos
	for s.pos < len(s.source) && s.source[s.pos] != '\n' {
		s.pos++
	}
	line := strings.TrimRight(s.source[start:s.pos], " \t\r\v\f")
	return line, line != ""
}

// MoveToNextLine skips the rest of the current line and any blank lines that
// follow it. The cursor ends up at the first token of the next non-empty line.
func (s *Scanner) MoveToNextLine() {
	for s.pos < len(s.source) && s.source[s.pos] != '\n' {
		s.pos++
	}
	for s.pos < len(s.source) && (isSpace(s.source[s.pos]) || s.source[s.pos] == '\n') {
		if s.source[s.pos] == '\n' {
			s.line++
		}
		s.pos++
	}
}

// ReadVertex reads 3 mandatory (x, y, z) and 1 optional (w) floats. The w
// component defaults to 1.0.
//
// Example:
//
//	19.2938 1.29019 0.2839
//	1.29349 -0.93829 1.28392 0.6
func (s *Scanner) ReadVertex() ([]float64, error) {
	v := []float64{0, 0, 0, 1.0}
	for i, component := range []string{"x", "y", "z"} {
		val, ok := s.scanFloat()
		if !ok {
			return nil, s.errorf(ErrUnreadableData, "unexpected vertex definition missing %s component", component)
		}
		v[i] = val
	}

	if w, ok := s.scanFloat(); ok {
		v[3] = w
	}
	return v, nil
}

// ReadTextureCoord reads 1 mandatory (u) and up to 2 optional (v, w) floats.
// Missing components default to 0.0. It returns false if u is missing.
func (s *Scanner) ReadTextureCoord() ([]float64, bool) {
	u, ok := s.scanFloat()
	if !ok {
		return nil, false
	}

	coord := []float64{u, 0, 0}
	if v, ok := s.scanFloat(); ok {
		coord[1] = v
		if w, ok := s.scanFloat(); ok {
			coord[2] = w
		}
	}
	return coord, true
}

// ReadColor reads 3 floats as r, g, b channels.
func (s *Scanner) ReadColor() (Color, error) {
	var rgb [3]float64
	for i, channel := range []string{"r", "g", "b"} {
		val, ok := s.scanFloat()
		if !ok {
			return Color{}, s.errorf(ErrInvalidData, "expected a floating point value for color channel %s", channel)
		}
		rgb[i] = val
	}
	return Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

// ReadInt reads an integer token.
func (s *Scanner) ReadInt() (int, error) {
	tok, _ := s.PeekToken()
	val, err := strconv.Atoi(tok)
	if err != nil {
		return 0, s.errorf(ErrInvalidData, "expected an integer value; got %q", tok)
	}
	s.ReadToken()
	return val, nil
}

// ReadDouble reads a floating point token.
func (s *Scanner) ReadDouble() (float64, error) {
	tok, _ := s.PeekToken()
	val, ok := s.scanFloat()
	if !ok {
		return 0, s.errorf(ErrInvalidData, "expected a floating point value; got %q", tok)
	}
	return val, nil
}

// ReadString reads either a double-quoted string, which may contain
// whitespace, or a bare token.
func (s *Scanner) ReadString() (string, error) {
	s.skipSpace()
	if s.pos < len(s.source) && s.source[s.pos] == '"' {
		end := s.pos + 1
		for end < len(s.source) && s.source[end] != '"' && s.source[end] != '\n' {
			end++
		}
		if end >= len(s.source) || s.source[end] != '"' {
			return "", s.errorf(ErrInvalidData, "unterminated quoted string")
		}
		str := s.source[s.pos+1 : end]
		s.pos = end + 1
		return str, nil
	}

	tok, ok := s.ReadToken()
	if !ok {
		return "", s.errorf(ErrInvalidData, "expected a string")
	}
	return tok, nil
}

// Consume the next token if it parses as a float.
func (s *Scanner) scanFloat() (float64, bool) {
	start, end := s.nextToken()
	if end == start {
		return 0, false
	}
	val, err := strconv.ParseFloat(s.source[start:end], 64)
	if err != nil {
		return 0, false
	}
	s.pos = end
	return val, true
}

// Skip whitespace and locate the bounds of the next token on this line.
func (s *Scanner) nextToken() (int, int) {
	s.skipSpace()
	end := s.pos
	for end < len(s.source) && !isSpace(s.source[end]) && s.source[end] != '\n' {
		end++
	}
	return s.pos, end
}

func (s *Scanner) skipSpace() {
	for s.pos < len(s.source) && isSpace(s.source[s.pos]) {
		s.pos++
	}
}

// Create a ParseError for the current line.
func (s *Scanner) errorf(kind ErrorKind, msgFormat string, args ...interface{}) *ParseError {
	return &ParseError{
		Kind: kind,
		Line: s.line,
		Msg:  fmt.Sprintf(msgFormat, args...),
	}
}

// Whitespace excluding newlines.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f'
}
