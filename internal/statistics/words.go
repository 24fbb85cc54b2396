package statistics

import (
	"strings"
	"unicode/utf8"
)

// DefaultStopWords are common Korean particles and conjunctions and English
// function words that carry no meaning on their own.
var DefaultStopWords = []string{
	"이", "그", "저", "것", "들", "는", "은", "을", "를", "에", "의", "가", "와", "과",
	"도", "만", "까지", "부터", "로", "으로", "에서", "에게", "한테", "하고", "그리고",
	"또", "또한", "그런데", "하지만", "그러나", "그래서", "따라서", "즉", "예를", "들어",
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "by",
}

// WordFilter decides which whitespace-separated tokens are counted as words.
type WordFilter struct {
	// MinLength is the minimum number of characters a token needs.
	MinLength int
	// StopWords holds lowercased words that are never counted.
	StopWords map[string]struct{}
	// ValidToken reports whether a lowercased token is made of acceptable characters.
	ValidToken func(token string) bool
}

// NewWordFilter creates a filter that drops tokens shorter than two
// characters, numbers, the given stop words, and tokens rejected by valid.
func NewWordFilter(stopWords []string, valid func(string) bool) WordFilter {
	set := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return WordFilter{
		MinLength:  2,
		StopWords:  set,
		ValidToken: valid,
	}
}

// DefaultWordFilter uses DefaultStopWords and IsWordOrHangul.
func DefaultWordFilter() WordFilter {
	return NewWordFilter(DefaultStopWords, IsWordOrHangul)
}

// Normalize returns the lowercased token and whether it should be counted.
func (f WordFilter) Normalize(token string) (string, bool) {
	if utf8.RuneCountInString(token) < f.MinLength {
		return "", false
	}
	word := strings.ToLower(token)
	if IsNumeric(word) {
		return "", false
	}
	if _, ok := f.StopWords[word]; ok {
		return "", false
	}
	if f.ValidToken != nil && !f.ValidToken(word) {
		return "", false
	}
	return word, true
}

// Tokenize splits the joined contents on whitespace runs.
func Tokenize(contents []string) []string {
	return strings.Fields(strings.Join(contents, " "))
}

// CountWords counts the tokens of contents that pass filter.
func CountWords(contents []string, filter WordFilter) map[string]int64 {
	counts := make(map[string]int64)
	for _, token := range Tokenize(contents) {
		word, ok := filter.Normalize(token)
		if !ok {
			continue
		}
		counts[word]++
	}
	return counts
}

// IsNumeric reports whether s consists only of ASCII digits.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsWordOrHangul reports whether every character of s is an ASCII letter,
// digit, underscore, or a precomposed Hangul syllable (U+AC00 to U+D7A3).
func IsWordOrHangul(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		case r >= 0xAC00 && r <= 0xD7A3:
		default:
			return false
		}
	}
	return true
}
