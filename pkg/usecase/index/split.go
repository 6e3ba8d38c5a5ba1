package index

import (
	"regexp"
	"strings"
)

var paragraphSep = regexp.MustCompile(`\r?\n[ \t]*\r?\n`)

// SplitParagraphs breaks input text into paragraphs on blank-line
// boundaries. Paragraphs are trimmed; empty ones are dropped.
func SplitParagraphs(text string) []string {
	var paragraphs []string
	for _, block := range paragraphSep.Split(text, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		paragraphs = append(paragraphs, block)
	}
	return paragraphs
}
