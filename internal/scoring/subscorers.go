package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/resume-radar/internal/embedding"
	"alfredoptarigan/resume-radar/internal/grammar"
)

const (
	NameTailoring   = "tailoring"
	NameSkills      = "skills"
	NameActionVerbs = "action_verbs"
	NameATS         = "ats_safety"
	NameGrammar     = "grammar"
	NameStructure   = "structure"
	NameBonus       = "bonus"
)

const (
	suggestKeywords    = "Match more keywords from the job description."
	suggestActionVerbs = "Add more action verbs like 'developed', 'managed', etc."
	suggestATS         = "Avoid using tables, columns or images in resume."
)

// SubScore is one rubric component's contribution. Suggestion is empty when
// the component has nothing to recommend; Skipped marks an optional component
// whose collaborator could not be reached.
type SubScore struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Max        float64 `json:"max"`
	Suggestion string  `json:"suggestion,omitempty"`
	Skipped    bool    `json:"skipped,omitempty"`
}

// GrammarChecker is the optional grammar collaborator.
type GrammarChecker interface {
	Check(ctx context.Context, text string) ([]grammar.Issue, error)
}

type subScorer interface {
	score(ctx context.Context, in *input) (SubScore, error)
}

type tailoringScorer struct {
	embedder embedding.Provider
	rubric   Rubric
}

func (s tailoringScorer) score(ctx context.Context, in *input) (SubScore, error) {
	result := SubScore{Name: NameTailoring, Max: s.rubric.TailoringWeight}
	if !in.hasJobDescription() {
		result.Value = s.rubric.TailoringDefault
		return result, nil
	}

	var resumeVec, jobVec embedding.Vector
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.embedder.Embed(gctx, in.resume)
		resumeVec = v
		return err
	})
	g.Go(func() error {
		v, err := s.embedder.Embed(gctx, in.jobDescription)
		jobVec = v
		return err
	})
	if err := g.Wait(); err != nil {
		if !errors.Is(err, embedding.ErrEmbedding) {
			err = fmt.Errorf("%w: %w", embedding.ErrEmbedding, err)
		}
		return SubScore{}, err
	}

	sim, err := CosineSimilarity(resumeVec, jobVec)
	if err != nil {
		return SubScore{}, fmt.Errorf("%w: %w", embedding.ErrEmbedding, err)
	}

	// Opposed vectors earn nothing rather than a negative score.
	result.Value = math.Max(0, sim) * s.rubric.TailoringWeight
	return result, nil
}

type skillsScorer struct {
	rubric Rubric
}

func (s skillsScorer) score(_ context.Context, in *input) (SubScore, error) {
	result := SubScore{Name: NameSkills, Max: s.rubric.SkillsPerKeyword * float64(s.rubric.SkillsKeywordCap)}
	if !in.hasJobDescription() {
		result.Value = s.rubric.SkillsDefault
		return result, nil
	}

	matched := min(matchTokens(in.resumeTokens, ExtractKeywords(in.jobDescription)), s.rubric.SkillsKeywordCap)
	result.Value = float64(matched) * s.rubric.SkillsPerKeyword
	if result.Value < s.rubric.SkillsSuggestBelow {
		result.Suggestion = suggestKeywords
	}
	return result, nil
}

type actionVerbScorer struct {
	rubric Rubric
}

func (s actionVerbScorer) score(_ context.Context, in *input) (SubScore, error) {
	count := min(countActionVerbs(in.resumeTokens), s.rubric.ActionVerbCap)
	result := SubScore{Name: NameActionVerbs, Value: float64(count), Max: float64(s.rubric.ActionVerbCap)}
	if count < s.rubric.ActionVerbSuggestBelow {
		result.Suggestion = suggestActionVerbs
	}
	return result, nil
}

type atsScorer struct {
	rubric Rubric
}

func (s atsScorer) score(_ context.Context, in *input) (SubScore, error) {
	result := SubScore{Name: NameATS, Max: s.rubric.ATSWeight}
	if IsATSSafe(in.resumeLower) {
		result.Value = s.rubric.ATSWeight
	} else {
		result.Suggestion = suggestATS
	}
	return result, nil
}

type grammarScorer struct {
	checker GrammarChecker
	rubric  Rubric
	log     *zap.Logger
}

func (s grammarScorer) score(ctx context.Context, in *input) (SubScore, error) {
	result := SubScore{Name: NameGrammar, Max: s.rubric.GrammarWeight}

	// Checked in original case; lower-casing would add capitalization issues.
	issues, err := s.checker.Check(ctx, in.resume)
	if err != nil {
		s.log.Warn("grammar check unavailable, skipping sub-scorer", zap.Error(err))
		result.Skipped = true
		return result, nil
	}

	result.Value = math.Max(0, s.rubric.GrammarWeight-float64(len(issues)))
	if len(issues) > 0 {
		result.Suggestion = grammarSuggestion(issues, s.rubric.GrammarExamples)
	}
	return result, nil
}

func grammarSuggestion(issues []grammar.Issue, examples int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Fix %d grammar or spelling issue(s).", len(issues))

	var shown []string
	for _, issue := range issues {
		if len(shown) == examples {
			break
		}
		if msg := strings.TrimSpace(issue.Message); msg != "" {
			shown = append(shown, msg)
		}
	}
	if len(shown) > 0 {
		fmt.Fprintf(&b, " Examples: %s", strings.Join(shown, " | "))
	}
	return b.String()
}

type structureScorer struct {
	rubric Rubric
}

func (s structureScorer) score(_ context.Context, in *input) (SubScore, error) {
	maxValue := s.rubric.StructurePerSection * float64(s.rubric.StructureSectionCap)
	count := min(CountSections(in.resumeLower), s.rubric.StructureSectionCap)

	result := SubScore{Name: NameStructure, Value: float64(count) * s.rubric.StructurePerSection, Max: maxValue}
	if result.Value < maxValue {
		missing := missingSections(in.resumeLower)
		if len(missing) == 0 {
			missing = []string{"Education", "Projects", "Skills"}
		}
		result.Suggestion = fmt.Sprintf("Include sections like %s.", strings.Join(missing, ", "))
	}
	return result, nil
}

type bonusScorer struct {
	rubric Rubric
}

func (s bonusScorer) score(_ context.Context, in *input) (SubScore, error) {
	return SubScore{
		Name:  NameBonus,
		Value: float64(CountBonusSignals(in.resumeLower)) * s.rubric.BonusPerSignal,
		Max:   3 * s.rubric.BonusPerSignal,
	}, nil
}
