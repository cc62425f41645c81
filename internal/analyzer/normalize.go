package analyzer

import (
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/zeebo/blake3"
)

var (
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRe  = regexp.MustCompile(`//[^\n]*`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// Normalize maps raw block text to its canonical form: block comments out,
// line comments out, every whitespace run collapsed to a single space, then
// trimmed. It is pure and never fails.
//
// Comment delimiters are stripped textually, including inside string and
// template literals. That can alter literal content before hashing; it is a
// known limitation of text-only scanning.
func Normalize(text string) string {
	s := blockCommentRe.ReplaceAllString(text, " ")
	s = lineCommentRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Fingerprint digests the normalized text. Equal fingerprints mean equal
// normalized text; they say nothing about run-time behavior.
func Fingerprint(text string) string {
	sum := blake3.Sum256([]byte(Normalize(text)))
	return hex.EncodeToString(sum[:])
}
