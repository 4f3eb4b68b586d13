package tfidf

import (
	_ "embed"
	"strings"
)

//go:embed stopwords_en.txt
var englishStopWords string

// EnglishStopWords returns the built-in English stop word list.
func EnglishStopWords() []string {
	var words []string
	for _, line := range strings.Split(englishStopWords, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words
}

// DefaultPunctuation is stripped from text before scoring.
var DefaultPunctuation = []string{
	".", ",", ":", ";", "!", "?", "(", ")", "[", "]", "{", "}", "\"", "'", "-",
	"’", "‘", "–",
}
