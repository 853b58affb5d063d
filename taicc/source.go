package taicc

import (
	"sort"
	"strings"
)

type Source struct {
	Name    string
	Content string
	Lines   []string

	lineStarts []int
}

func NewSource(name string, content string) *Source {
	src := &Source{
		Name:       name,
		Content:    content,
		Lines:      strings.Split(content, "\n"),
		lineStarts: []int{0},
	}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			src.lineStarts = append(src.lineStarts, i+1)
		}
	}
	return src
}

// Position maps a byte offset to a 1-based line and byte column.
func (s *Source) Position(offset int) (line int, column int) {
	offset = max(0, min(offset, len(s.Content)))
	idx := sort.SearchInts(s.lineStarts, offset+1) - 1
	return idx + 1, offset - s.lineStarts[idx] + 1
}
