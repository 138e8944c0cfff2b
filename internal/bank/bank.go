package bank

import (
	"fmt"

	"mindhaven/internal/model"
)

// QuestionBank is the read-only SCL-90 catalog, shared by all sessions.
type QuestionBank struct {
	questions []model.Question
	byID      map[int]model.Question
	sequences map[model.Mode][]int
}

// New builds the catalog from the static item data.
func New() *QuestionBank {
	b := &QuestionBank{
		byID: make(map[int]model.Question, len(scl90Items)),
		sequences: map[model.Mode][]int{
			model.ModeMinimal: subset15,
			model.ModeRapid:   subset50,
		},
	}

	full := make([]int, 0, len(scl90Items))
	for _, it := range scl90Items {
		q := model.Question{
			ID:      it.id,
			Text:    it.text,
			Factor:  it.factor,
			Options: defaultOptions,
		}
		b.questions = append(b.questions, q)
		b.byID[q.ID] = q
		full = append(full, q.ID)
	}
	b.sequences[model.ModeFull] = full

	return b
}

// ForMode resolves the ordered question sequence for a mode.
func (b *QuestionBank) ForMode(mode model.Mode) ([]model.Question, error) {
	ids, ok := b.sequences[mode]
	if !ok {
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	qs := make([]model.Question, 0, len(ids))
	for _, id := range ids {
		qs = append(qs, b.byID[id])
	}
	return qs, nil
}

// Question looks up a catalog entry by id.
func (b *QuestionBank) Question(id int) (model.Question, bool) {
	q, ok := b.byID[id]
	return q, ok
}

// All returns the full catalog in item order.
func (b *QuestionBank) All() []model.Question {
	return b.questions
}

// FactorDescription returns the short label shown next to factor bars.
func FactorDescription(f model.Factor) string {
	return factorDescriptions[f]
}
