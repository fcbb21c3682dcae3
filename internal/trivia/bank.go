package trivia

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/questions.yaml
var defaultQuestionsYAML []byte

// ErrEmptyBank is returned when a bank has no valid questions.
var ErrEmptyBank = errors.New("trivia: question bank is empty")

// fallbackQuestion is asked when every other source fails.
var fallbackQuestion = Question{
	ID:       "fallback",
	Category: "general",
	Prompt:   "How many sides does a hexagon have?",
	Answers:  []string{"6", "six"},
}

// bankFile is the on-disk layout of a question bank.
type bankFile struct {
	Questions []Question `yaml:"questions"`
}

// Bank is an in-memory question set. It is safe for concurrent use.
type Bank struct {
	mu         sync.Mutex
	questions  []Question
	byCategory map[string][]int
	rng        *rand.Rand
}

// ParseBank decodes a YAML bank. Invalid entries are dropped.
func ParseBank(data []byte, seed int64) (*Bank, error) {
	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("trivia: failed to parse bank: %w", err)
	}

	b := &Bank{
		byCategory: make(map[string][]int),
		rng:        rand.New(rand.NewSource(seed)),
	}
	for _, q := range f.Questions {
		if !q.Valid() {
			continue
		}
		if q.Category == "" {
			q.Category = "general"
		}
		b.byCategory[q.Category] = append(b.byCategory[q.Category], len(b.questions))
		b.questions = append(b.questions, q)
	}
	if len(b.questions) == 0 {
		return nil, ErrEmptyBank
	}
	return b, nil
}

// LoadBank reads a bank from path, or the embedded bank when path is empty.
func LoadBank(path string, seed int64) (*Bank, error) {
	if path == "" {
		return DefaultBank(seed)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("trivia: failed to read bank %s: %w", path, err)
	}
	return ParseBank(data, seed)
}

// DefaultBank returns the embedded bank.
func DefaultBank(seed int64) (*Bank, error) {
	return ParseBank(defaultQuestionsYAML, seed)
}

// GetDefaultYAML returns the embedded bank as YAML bytes.
func GetDefaultYAML() []byte {
	return defaultQuestionsYAML
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Questions returns a copy of every question in bank order.
func (b *Bank) Questions() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Categories returns the sorted category names.
func (b *Bank) Categories() []string {
	out := make([]string, 0, len(b.byCategory))
	for c := range b.byCategory {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Pick returns a random question, preferring the requested category.
func (b *Bank) Pick(category string) Question {
	b.mu.Lock()
	defer b.mu.Unlock()

	if idx := b.byCategory[category]; len(idx) > 0 {
		return b.questions[idx[b.rng.Intn(len(idx))]]
	}
	if len(b.questions) == 0 {
		return fallbackQuestion
	}
	return b.questions[b.rng.Intn(len(b.questions))]
}

// Fetch implements Source. The bank never fails.
func (b *Bank) Fetch(_ context.Context, req Request) (Question, error) {
	return b.Pick(req.Category), nil
}
