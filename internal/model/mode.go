package model

// Mode is the selected question-set depth.
type Mode string

const (
	ModeMinimal Mode = "minimal" // 15 questions, share-to-unlock
	ModeRapid   Mode = "rapid"   // 50 questions, trust-payment
	ModeFull    Mode = "full"    // 90 questions, trust-payment
)

func (m Mode) Valid() bool {
	switch m {
	case ModeMinimal, ModeRapid, ModeFull:
		return true
	}
	return false
}
