package popquiz

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/popquiz/internal/core"
	"github.com/vovakirdan/popquiz/internal/games/popquiz/engine"
	"github.com/vovakirdan/popquiz/internal/trivia"
)

// ErrNoQuestion is returned when answering before a question is shown.
var ErrNoQuestion = errors.New("popquiz: no question is open")

// categories maps each sphere color to a trivia category.
var categories = [engine.ColorCount]string{
	engine.ColorRed:    "history",
	engine.ColorGreen:  "nature",
	engine.ColorBlue:   "geography",
	engine.ColorYellow: "science",
	engine.ColorPurple: "arts",
	engine.ColorCyan:   "tech",
}

// CategoryFor returns the trivia category asked for clusters of color c.
func CategoryFor(c engine.Color) string {
	if c >= engine.ColorCount {
		return ""
	}
	return categories[c]
}

// quizState tracks the question gating the pending match.
type quizState struct {
	open      bool
	match     engine.MatchID
	color     engine.Color
	size      int
	requested bool
	ready     bool
	question  trivia.Question
	draft     string
}

func (q *quizState) begin(p engine.Pending) {
	*q = quizState{
		open:  true,
		match: p.ID,
		color: p.Color,
		size:  p.Size(),
	}
}

// QuestionRequest returns the request for the open match the first time it
// is called. The caller fetches the question and hands it to SetQuestion.
func (g *Game) QuestionRequest() (trivia.Request, bool) {
	if !g.quiz.open || g.quiz.requested {
		return trivia.Request{}, false
	}
	g.quiz.requested = true
	return trivia.Request{
		Match:       uint64(g.quiz.match),
		Category:    CategoryFor(g.quiz.color),
		ClusterSize: g.quiz.size,
	}, true
}

// SetQuestion attaches a fetched question. Questions for a match that is no
// longer open are ignored.
func (g *Game) SetQuestion(match uint64, q trivia.Question) bool {
	if !g.quiz.open || uint64(g.quiz.match) != match {
		return false
	}
	g.quiz.question = q
	g.quiz.ready = true
	return true
}

// Question returns the question currently shown.
func (g *Game) Question() (trivia.Question, bool) {
	if !g.quiz.open || !g.quiz.ready {
		return trivia.Question{}, false
	}
	return g.quiz.question, true
}

// SetDraft updates the answer text shown in the question box.
func (g *Game) SetDraft(text string) {
	g.quiz.draft = text
}

// Answer resolves the open match with a verdict already reached by the
// question gate.
func (g *Game) Answer(correct bool) error {
	if !g.quiz.open || !g.quiz.ready {
		return ErrNoQuestion
	}

	q := g.quiz.question
	res, err := g.eng.Confirm(g.quiz.match, correct)
	if err != nil {
		return fmt.Errorf("popquiz: answer: %w", err)
	}
	g.quiz = quizState{}
	g.dispatch(res.Events)

	if correct {
		g.stats.Correct++
		g.showBanner(fmt.Sprintf("Correct! +%d", res.Points), core.ColorBrightGreen)
	} else {
		answer := ""
		if len(q.Answers) > 0 {
			answer = q.Answers[0]
		}
		g.showBanner(fmt.Sprintf("Wrong: %s", answer), core.ColorBrightRed)
	}
	return nil
}

// Skip resolves the open match as awarded without an answer.
func (g *Game) Skip() error {
	if !g.quiz.open {
		return ErrNoQuestion
	}
	res, err := g.eng.Skip(g.quiz.match)
	if err != nil {
		return fmt.Errorf("popquiz: skip: %w", err)
	}
	g.quiz = quizState{}
	g.stats.Skipped++
	g.dispatch(res.Events)
	g.showBanner(fmt.Sprintf("Skipped +%d", res.Points), core.ColorYellow)
	return nil
}
