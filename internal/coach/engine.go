// Package coach recommends coaching goals and drafts outreach messages.
//
// The engine is intentionally random: recommendations for users without
// onboarding answers are a random sample of the catalog, and every draft
// gets a random template, a random positive-reaction score in [50, 90] and
// possibly a random warning. All draws go through a Source so callers can
// substitute their own generator.
package coach

import (
	"fmt"

	"github.com/sakif/reconnect/internal/model"
)

// MaxGoals caps the length of a recommendation.
const MaxGoals = 3

const (
	MinScore = 50.0
	MaxScore = 90.0
)

// Engine is safe for concurrent use when its Source is.
type Engine struct {
	src Source
}

// New returns an Engine drawing from src, or from SystemSource when src is
// nil.
func New(src Source) *Engine {
	if src == nil {
		src = SystemSource{}
	}
	return &Engine{src: src}
}

// RecommendGoals derives up to MaxGoals goals from onboarding answers.
//
// With no answers (ob == nil) it returns a random sample of 0 to 3 distinct
// catalog goals. Otherwise the breakup reason cue and the strategy intent
// each contribute at most one goal; the list is deduplicated by id keeping
// the first occurrence.
func (e *Engine) RecommendGoals(ob *model.Onboarding) []Goal {
	if ob == nil {
		n := e.src.IntN(MaxGoals + 1)
		perm := e.src.Perm(len(catalog))
		out := make([]Goal, 0, n)
		for _, idx := range perm[:n] {
			out = append(out, catalog[idx])
		}
		return out
	}

	var candidates []Goal
	if reason := ob.ReasonText(); reason != "" {
		switch ParseReasonCue(reason) {
		case CuePersonality:
			candidates = append(candidates, goalByID(GoalSelfUnderstanding))
		case CueExternal:
			candidates = append(candidates, goalByID(GoalReunion))
		case CueFeelingsFaded:
			candidates = append(candidates, goalByID(GoalLettingGo))
		case CueUnrecognized:
		}
	}
	if strategy := ob.StrategyText(); strategy != "" {
		switch ParseStrategyIntent(strategy) {
		case IntentReunion:
			candidates = append(candidates, goalByID(GoalReunion))
		case IntentSeparation:
			candidates = append(candidates, goalByID(GoalLettingGo))
		case IntentUndecided:
			candidates = append(candidates, goalByID(GoalSelfUnderstanding))
		case IntentUnrecognized:
		}
	}

	return dedupeGoals(candidates, MaxGoals)
}

func dedupeGoals(goals []Goal, limit int) []Goal {
	seen := make(map[int]bool, len(goals))
	out := make([]Goal, 0, len(goals))
	for _, g := range goals {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		out = append(out, g)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Draft is a generated message before it is stored. Score is the raw
// positive-reaction score in [50, 90].
type Draft struct {
	Tone    Tone
	Content string
	Score   float64
	Warning *string
}

// PositiveReaction is Score truncated toward zero.
func (d Draft) PositiveReaction() int {
	return int(d.Score)
}

// Compose drafts a message about purpose in the tone named by toneTag. When
// ob is non-nil a sentence about the relationship is appended. The purpose
// is inserted verbatim.
func (e *Engine) Compose(purpose, toneTag string, ob *model.Onboarding) Draft {
	tone := ParseTone(toneTag)

	templates := tone.templates()
	content := fmt.Sprintf(templates[e.src.IntN(len(templates))], purpose)

	if ob != nil {
		content += fmt.Sprintf(contextLead, ob.RelationshipYears, ob.RelationshipMonths)
		switch ParseStrategyIntent(ob.StrategyText()) {
		case IntentReunion:
			content += closingReunion
		case IntentSeparation:
			content += closingSeparate
		default:
			content += closingUnderstand
		}
	}

	score := MinScore + (MaxScore-MinScore)*e.src.Float64()

	var warning *string
	if e.src.Float64() < tone.warningThreshold() {
		w := Warnings[e.src.IntN(len(Warnings))]
		warning = &w
	}

	return Draft{
		Tone:    tone,
		Content: content,
		Score:   score,
		Warning: warning,
	}
}
