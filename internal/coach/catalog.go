package coach

// Goal is a coaching objective from the fixed catalog.
type Goal struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Reason      string `json:"reason"`
}

const (
	GoalReunion           = 1
	GoalLettingGo         = 2
	GoalSelfUnderstanding = 3
	GoalGrowth            = 4
)

var catalog = []Goal{
	{
		ID:          GoalReunion,
		Name:        "재회",
		Description: "이전 관계를 복구하고 새로운 시작을 준비합니다.",
		Reason:      "상대방과의 관계가 아직 완전히 종료되지 않았으며, 서로에 대한 감정이 남아있습니다.",
	},
	{
		ID:          GoalLettingGo,
		Name:        "마음 정리",
		Description: "과거의 관계를 정리하고 새로운 시작을 준비합니다.",
		Reason:      "현재 감정적 혼란과 불안정한 상태를 해소할 필요가 있습니다.",
	},
	{
		ID:          GoalSelfUnderstanding,
		Name:        "자기 이해",
		Description: "자신의 감정과 행동 패턴을 이해하고 성장합니다.",
		Reason:      "관계에서 반복되는 패턴을 발견했으며, 이를 개선할 필요가 있습니다.",
	},
	{
		ID:          GoalGrowth,
		Name:        "성장",
		Description: "이전 관계의 경험을 통해 개인적 성장을 이루어냅니다.",
		Reason:      "관계 경험을 통해 배운 교훈을 바탕으로 더 나은 관계를 만들 준비를 합니다.",
	},
}

// Catalog returns a copy of every goal, ordered by id.
func Catalog() []Goal {
	out := make([]Goal, len(catalog))
	copy(out, catalog)
	return out
}

func goalByID(id int) Goal {
	return catalog[id-1]
}

// Message templates. Each has exactly one %s, replaced by the purpose.
var (
	logicalTemplates = []string{
		"객관적인 사실을 바탕으로 %s에 대해 이야기하고 싶습니다.",
		"합리적인 관점에서 %s를 설명하고자 합니다.",
		"논리적으로 생각해보면, %s이(가) 중요한 이유가 있습니다.",
	}
	emotionalTemplates = []string{
		"진심을 담아 %s에 대한 제 마음을 전하고 싶습니다.",
		"솔직한 감정으로 %s에 대해 이야기하고 싶어요.",
		"%s에 대한 제 진심이 전해졌으면 좋겠습니다.",
	}
	curiousTemplates = []string{
		"%s에 대해 함께 생각해보면 어떨까요?",
		"%s에 대해 당신의 생각이 궁금합니다.",
		"%s에 대해 이야기를 나누어보고 싶습니다.",
	}
)

// Warnings lists the risk notes a generated message may carry.
var Warnings = []string{
	"상대방이 부담을 느낄 수 있습니다.",
	"감정적 자극이 있을 수 있습니다.",
	"상대방이 거부할 가능성이 있습니다.",
}

const (
	contextLead       = "\n우리가 함께한 %d년 %d개월의 시간이 있었기에, "
	closingReunion    = "새로운 시작을 위한 대화를 나누고 싶습니다."
	closingSeparate   = "서로의 미래를 위해 좋은 마무리를 하고 싶습니다."
	closingUnderstand = "서로를 이해하는 시간이 되었으면 합니다."
)
