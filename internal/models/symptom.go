package models

import "time"

type SymptomCategory string

const (
	SymptomPhysical  SymptomCategory = "physical"
	SymptomEmotional SymptomCategory = "emotional"
	SymptomMood      SymptomCategory = "mood"
	SymptomDigestive SymptomCategory = "digestive"
	SymptomSkin      SymptomCategory = "skin"
	SymptomSleep     SymptomCategory = "sleep"
	SymptomOther     SymptomCategory = "other"
)

const (
	MinSymptomSeverity = 1
	MaxSymptomSeverity = 10
)

type Symptom struct {
	Category  SymptomCategory `json:"category"`
	Name      string          `json:"name"`
	Severity  int             `json:"severity"`
	Timestamp time.Time       `json:"timestamp"`
}

func (category SymptomCategory) Valid() bool {
	switch category {
	case SymptomPhysical, SymptomEmotional, SymptomMood, SymptomDigestive, SymptomSkin, SymptomSleep, SymptomOther:
		return true
	default:
		return false
	}
}

type BuiltinSymptom struct {
	Name     string
	Category SymptomCategory
}

// DefaultBuiltinSymptoms lists the names offered by the logging form. Custom names are
// accepted as well; the catalog only supplies a category when the caller omits one.
func DefaultBuiltinSymptoms() []BuiltinSymptom {
	return []BuiltinSymptom{
		{Name: "Cramps", Category: SymptomPhysical},
		{Name: "Headache", Category: SymptomPhysical},
		{Name: "Mood swings", Category: SymptomMood},
		{Name: "Bloating", Category: SymptomDigestive},
		{Name: "Fatigue", Category: SymptomPhysical},
		{Name: "Breast tenderness", Category: SymptomPhysical},
		{Name: "Acne", Category: SymptomSkin},
		{Name: "Back pain", Category: SymptomPhysical},
		{Name: "Nausea", Category: SymptomDigestive},
		{Name: "Irritability", Category: SymptomEmotional},
		{Name: "Anxiety", Category: SymptomEmotional},
		{Name: "Insomnia", Category: SymptomSleep},
		{Name: "Food cravings", Category: SymptomDigestive},
		{Name: "Diarrhea", Category: SymptomDigestive},
		{Name: "Constipation", Category: SymptomDigestive},
	}
}
