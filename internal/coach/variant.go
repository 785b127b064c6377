package coach

import "strings"

// Tone selects a template family. Only three tags are recognized; any other
// tag parses to ToneUnrecognized, which writes with the logical templates
// and the default warning threshold.
type Tone string

const (
	ToneLogical      Tone = "logical"
	ToneEmotional    Tone = "emotional"
	ToneCurious      Tone = "curious"
	ToneUnrecognized Tone = ""
)

// ParseTone maps a free-form tone tag to its variant.
func ParseTone(tag string) Tone {
	switch Tone(tag) {
	case ToneLogical, ToneEmotional, ToneCurious:
		return Tone(tag)
	}
	return ToneUnrecognized
}

// Label is the tone name used in logs and metrics.
func (t Tone) Label() string {
	if t == ToneUnrecognized {
		return "unrecognized"
	}
	return string(t)
}

func (t Tone) templates() []string {
	switch t {
	case ToneEmotional:
		return emotionalTemplates
	case ToneCurious:
		return curiousTemplates
	}
	return logicalTemplates
}

// warningThreshold is the probability that a message in this tone carries a
// warning.
func (t Tone) warningThreshold() float64 {
	switch t {
	case ToneLogical:
		return 0.20
	case ToneEmotional:
		return 0.40
	case ToneCurious:
		return 0.30
	}
	return 0.30
}

// StrategyIntent is what the engine reads out of an onboarding strategy.
// Matching is exact against the Korean intent labels below. The strategy
// values accepted by onboarding step 3 (analytical, balanced, emotional) are
// none of these, so stored strategies currently always parse to
// IntentUnrecognized.
type StrategyIntent int

const (
	IntentUnrecognized StrategyIntent = iota
	IntentReunion                     // "재회 희망"
	IntentSeparation                  // "완전한 이별"
	IntentUndecided                   // "미정"
)

var strategyIntents = map[string]StrategyIntent{
	"재회 희망":  IntentReunion,
	"완전한 이별": IntentSeparation,
	"미정":     IntentUndecided,
}

// ParseStrategyIntent maps a strategy string to its intent.
func ParseStrategyIntent(strategy string) StrategyIntent {
	return strategyIntents[strategy]
}

// ReasonCue is the signal the engine reads out of a breakup reason by
// substring match. Of the accepted breakup reasons only
// "외부 요인 (거리, 환경)" contains one of the cue phrases.
type ReasonCue int

const (
	CueUnrecognized ReasonCue = iota
	CuePersonality            // contains "성격 차이"
	CueExternal               // contains "외부 요인"
	CueFeelingsFaded          // contains "감정 식음"
)

// reasonCues is checked in order; the first phrase found wins.
var reasonCues = []struct {
	phrase string
	cue    ReasonCue
}{
	{"성격 차이", CuePersonality},
	{"외부 요인", CueExternal},
	{"감정 식음", CueFeelingsFaded},
}

// ParseReasonCue returns the first cue whose phrase occurs in reason.
func ParseReasonCue(reason string) ReasonCue {
	for _, rc := range reasonCues {
		if strings.Contains(reason, rc.phrase) {
			return rc.cue
		}
	}
	return CueUnrecognized
}
