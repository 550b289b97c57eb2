package syntax

import "sort"

// Source is an analyzed source file: its path, full text, and a line
// offset index for position conversion. The text is immutable after
// construction; after a fix is applied the file is re-parsed into a
// fresh Source.
type Source struct {
	Path string
	Text string

	lineOffsets []int // byte offset of the start of each line
}

// NewSource builds a Source and its line index.
func NewSource(path, text string) *Source {
	offsets := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return &Source{Path: path, Text: text, lineOffsets: offsets}
}

// LineCol converts a byte offset to a 1-based line and column.
func (s *Source) LineCol(offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.Text) {
		offset = len(s.Text)
	}
	i := sort.Search(len(s.lineOffsets), func(i int) bool {
		return s.lineOffsets[i] > offset
	}) - 1
	return i + 1, offset - s.lineOffsets[i] + 1
}

// LineStart returns the byte offset of the start of a 1-based line.
func (s *Source) LineStart(line int) int {
	if line < 1 {
		line = 1
	}
	if line > len(s.lineOffsets) {
		line = len(s.lineOffsets)
	}
	return s.lineOffsets[line-1]
}

// LineCount returns the number of lines in the file.
func (s *Source) LineCount() int { return len(s.lineOffsets) }

// LineText returns the text of a 1-based line without its newline.
func (s *Source) LineText(line int) string {
	start := s.LineStart(line)
	end := len(s.Text)
	if line < len(s.lineOffsets) {
		end = s.lineOffsets[line] - 1
	}
	if end < start {
		end = start
	}
	return s.Text[start:end]
}
