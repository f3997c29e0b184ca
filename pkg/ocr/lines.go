package ocr

import (
	"slices"
	"strings"
)

// Line is the words of one position key in recognition order.
type Line struct {
	Key   PositionKey
	Words []string
}

// Text joins the line's words with single spaces.
func (l Line) Text() string {
	return strings.Join(l.Words, " ")
}

// GroupLines groups tokens by position key. Tokens whose word is empty after
// trimming are dropped. Within a line, words keep the order in which they
// appear in tokens; lines are returned sorted by key.
func GroupLines(tokens []Token) []Line {
	index := make(map[PositionKey]int)
	var lines []Line

	for _, t := range tokens {
		word := strings.TrimSpace(t.Word)
		if word == "" {
			continue
		}
		i, ok := index[t.Key]
		if !ok {
			i = len(lines)
			index[t.Key] = i
			lines = append(lines, Line{Key: t.Key})
		}
		lines[i].Words = append(lines[i].Words, word)
	}

	slices.SortStableFunc(lines, func(a, b Line) int {
		return a.Key.Compare(b.Key)
	})
	return lines
}

// Texts returns the text of each line.
func Texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text()
	}
	return out
}
