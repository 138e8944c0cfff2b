package model

// Factor is one psychological symptom dimension measured by a subset of
// the catalog's questions.
type Factor string

const (
	FactorSomatization  Factor = "躯体化"
	FactorObsessive     Factor = "强迫症状"
	FactorInterpersonal Factor = "人际关系敏感"
	FactorDepression    Factor = "抑郁"
	FactorAnxiety       Factor = "焦虑"
	FactorHostility     Factor = "敌对"
	FactorPhobia        Factor = "恐怖"
	FactorParanoia      Factor = "偏执"
	FactorPsychoticism  Factor = "精神病性"
	FactorAdditional    Factor = "其他"
)

// Option is one selectable answer carrying a severity score.
type Option struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// Question is an immutable catalog entry.
type Question struct {
	ID      int      `json:"id"`
	Text    string   `json:"text"`
	Factor  Factor   `json:"factor"`
	Options []Option `json:"options"`
}

// HasScore reports whether score is one of the question's option scores.
func (q Question) HasScore(score int) bool {
	for _, o := range q.Options {
		if o.Score == score {
			return true
		}
	}
	return false
}
