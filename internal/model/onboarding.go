package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Tendency is how someone tends to approach a relationship.
type Tendency string

const (
	TendencyAnalytical Tendency = "analytical"
	TendencyEmotional  Tendency = "emotional"
)

func (t Tendency) Valid() bool {
	return t == TendencyAnalytical || t == TendencyEmotional
}

// BreakupReason is one of the five categories offered in onboarding step 2.
type BreakupReason string

const (
	ReasonCommunication BreakupReason = "의사소통 문제"
	ReasonValues        BreakupReason = "가치관 차이"
	ReasonExternal      BreakupReason = "외부 요인 (거리, 환경)"
	ReasonTrustLost     BreakupReason = "신뢰 상실"
	ReasonOther         BreakupReason = "기타"
)

// BreakupReasons lists the accepted values in display order.
var BreakupReasons = []BreakupReason{
	ReasonCommunication,
	ReasonValues,
	ReasonExternal,
	ReasonTrustLost,
	ReasonOther,
}

func (r BreakupReason) Valid() bool {
	for _, v := range BreakupReasons {
		if r == v {
			return true
		}
	}
	return false
}

// StrategyType is the approach chosen in onboarding step 3.
type StrategyType string

const (
	StrategyAnalytical StrategyType = "analytical"
	StrategyBalanced   StrategyType = "balanced"
	StrategyEmotional  StrategyType = "emotional"
)

func (s StrategyType) Valid() bool {
	switch s {
	case StrategyAnalytical, StrategyBalanced, StrategyEmotional:
		return true
	}
	return false
}

// DateLayout is the wire format of Date.
const DateLayout = "2006-01-02"

// Date is a calendar day stored in a DATE column and encoded as YYYY-MM-DD.
type Date datatypes.Date

// NewDate truncates t to its calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date(t), nil
}

func (d Date) Time() time.Time { return time.Time(d) }

func (d Date) String() string { return time.Time(d).Format(DateLayout) }

func (d Date) Value() (driver.Value, error) { return datatypes.Date(d).Value() }

func (d *Date) Scan(value any) error { return (*datatypes.Date)(d).Scan(value) }

func (Date) GormDataType() string { return "date" }

func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Onboarding holds a user's answers to the intake questionnaire. There is at
// most one row per user. Step 1 fills the required fields; steps 2 and 3
// each set one of the optional ones.
type Onboarding struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	UserID             uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	BreakupDate        Date           `gorm:"not null" json:"breakup_date"`
	RelationshipYears  int            `gorm:"not null" json:"relationship_years"`
	RelationshipMonths int            `gorm:"not null" json:"relationship_months"`
	MyTendency         Tendency       `gorm:"size:20;not null" json:"my_tendency"`
	PartnerTendency    Tendency       `gorm:"size:20;not null" json:"partner_tendency"`
	BreakupReason      *BreakupReason `gorm:"size:50" json:"breakup_reason"`
	StrategyType       *StrategyType  `gorm:"size:20" json:"strategy_type"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// ReasonText returns the breakup reason or "" when unset.
func (o *Onboarding) ReasonText() string {
	if o == nil || o.BreakupReason == nil {
		return ""
	}
	return string(*o.BreakupReason)
}

// StrategyText returns the strategy type or "" when unset.
func (o *Onboarding) StrategyText() string {
	if o == nil || o.StrategyType == nil {
		return ""
	}
	return string(*o.StrategyType)
}
