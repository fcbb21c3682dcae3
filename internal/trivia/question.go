// Package trivia supplies the questions that gate cluster removal.
// Questions come from an embedded YAML bank or an optional HTTP source,
// and the gate always falls back to the bank so a match can be resolved.
package trivia

import (
	"strings"
)

// Question is a single trivia prompt with one or more accepted answers.
type Question struct {
	ID       string   `yaml:"id" json:"id"`
	Category string   `yaml:"category" json:"category"`
	Prompt   string   `yaml:"prompt" json:"prompt"`
	Answers  []string `yaml:"answers" json:"answers"`
}

// Request describes the match a question is asked for.
type Request struct {
	Match       uint64
	Category    string // Preferred category; empty accepts any
	ClusterSize int
}

// Valid reports whether the question can be asked and answered.
func (q Question) Valid() bool {
	if strings.TrimSpace(q.Prompt) == "" {
		return false
	}
	for _, a := range q.Answers {
		if Normalize(a) != "" {
			return true
		}
	}
	return false
}

// Check reports whether answer matches any accepted answer after normalization.
func (q Question) Check(answer string) bool {
	given := Normalize(answer)
	if given == "" {
		return false
	}
	for _, a := range q.Answers {
		if Normalize(a) == given {
			return true
		}
	}
	return false
}

var punctuation = strings.NewReplacer(".", "", ",", "", "!", "")

// Normalize lower-cases s, strips periods, commas and exclamation marks,
// and trims surrounding whitespace.
func Normalize(s string) string {
	return strings.TrimSpace(punctuation.Replace(strings.ToLower(s)))
}
