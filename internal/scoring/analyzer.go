// Package scoring rates a résumé against an optional job description.
//
// An Analyzer runs a fixed pipeline of sub-scorers (tailoring, skills, action
// verbs, ATS safety, optional grammar, structure, bonus), sums their values
// and collects their suggestions in pipeline order.
package scoring

import (
	"context"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-radar/internal/embedding"
)

const EmptyResumeSuggestion = "Resume is empty."

// Result is the composite score. OutOf is zero, and omitted from JSON, on the
// empty-résumé path.
type Result struct {
	Score       float64    `json:"score"`
	OutOf       int        `json:"out_of,omitempty"`
	Suggestions []string   `json:"suggestions"`
	Components  []SubScore `json:"-"`
}

type Analyzer interface {
	Analyze(ctx context.Context, resume, jobDescription string) (*Result, error)
}

type analyzerOptions struct {
	rubric  Rubric
	grammar GrammarChecker
	log     *zap.Logger
}

type Option func(*analyzerOptions)

func WithRubric(r Rubric) Option {
	return func(o *analyzerOptions) { o.rubric = r }
}

// WithGrammarChecker enables the grammar sub-scorer.
func WithGrammarChecker(c GrammarChecker) Option {
	return func(o *analyzerOptions) { o.grammar = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *analyzerOptions) { o.log = l }
}

type analyzer struct {
	scorers []subScorer
	log     *zap.Logger
}

func NewAnalyzer(embedder embedding.Provider, opts ...Option) Analyzer {
	o := analyzerOptions{rubric: DefaultRubric(), log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	scorers := []subScorer{
		tailoringScorer{embedder: embedder, rubric: o.rubric},
		skillsScorer{rubric: o.rubric},
		actionVerbScorer{rubric: o.rubric},
		atsScorer{rubric: o.rubric},
	}
	if o.grammar != nil {
		scorers = append(scorers, grammarScorer{checker: o.grammar, rubric: o.rubric, log: o.log})
	}
	scorers = append(scorers,
		structureScorer{rubric: o.rubric},
		bonusScorer{rubric: o.rubric},
	)

	return &analyzer{scorers: scorers, log: o.log}
}

// Analyze scores resume. An empty résumé is not an error: it yields a zero
// score with a single suggestion. Errors are embedding failures only.
func (a *analyzer) Analyze(ctx context.Context, resume, jobDescription string) (*Result, error) {
	if strings.TrimSpace(resume) == "" {
		return &Result{Score: 0, Suggestions: []string{EmptyResumeSuggestion}}, nil
	}

	start := time.Now()
	in := newInput(resume, jobDescription)

	var total float64
	suggestions := []string{}
	components := make([]SubScore, 0, len(a.scorers))

	for _, s := range a.scorers {
		sub, err := s.score(ctx, in)
		if err != nil {
			return nil, err
		}
		total += sub.Value
		if sub.Suggestion != "" {
			suggestions = append(suggestions, sub.Suggestion)
		}
		components = append(components, sub)
	}

	result := &Result{
		Score:       math.Round(total*100) / 100,
		OutOf:       OutOf,
		Suggestions: suggestions,
		Components:  components,
	}

	a.log.Debug("resume analyzed",
		zap.Float64("score", result.Score),
		zap.Bool("job_description", in.hasJobDescription()),
		zap.Int("suggestions", len(suggestions)),
		zap.Duration("took", time.Since(start)),
	)

	return result, nil
}
