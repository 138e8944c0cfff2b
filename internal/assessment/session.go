package assessment

import (
	"fmt"
	"sync"
	"time"

	"mindhaven/internal/apperr"
	"mindhaven/internal/bank"
	"mindhaven/internal/model"
	"mindhaven/internal/scoring"
)

// State is the session's position in the assessment lifecycle.
type State string

const (
	StateModeSelect State = "mode_select"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

// Session owns one user's traversal through the active question
// sequence, the collected answers and the unlock state. All methods are
// safe for concurrent use.
type Session struct {
	mu sync.Mutex

	id       string
	bank     *bank.QuestionBank
	isMobile bool

	state    State
	mode     model.Mode
	sequence []model.Question
	position int
	answers  map[int]int

	advancing    bool
	advanceDelay time.Duration

	result   *model.AssessmentResult
	unlocked bool
}

func newSession(id string, b *bank.QuestionBank, isMobile bool, advanceDelay time.Duration) *Session {
	return &Session{
		id:           id,
		bank:         b,
		isMobile:     isMobile,
		state:        StateModeSelect,
		answers:      make(map[int]int),
		advanceDelay: advanceDelay,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Start resolves the mode's question sequence and begins the traversal.
// Valid only from mode selection.
func (s *Session) Start(mode model.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateModeSelect {
		return apperr.Invalid(fmt.Sprintf("cannot start from state %s", s.state))
	}
	if !mode.Valid() {
		return apperr.Invalid(fmt.Sprintf("unknown mode %q", mode))
	}

	seq, err := s.bank.ForMode(mode)
	if err != nil {
		return apperr.Invalid(err.Error())
	}

	s.mode = mode
	s.sequence = seq
	s.position = 0
	s.answers = make(map[int]int)
	s.result = nil
	s.unlocked = false
	s.state = StateInProgress
	return nil
}

// Answer records the score for the current question, overwriting any
// prior choice for it. Answering the last question scores the session
// and completes it; otherwise the position advances after the configured
// pause, during which no new answer is accepted.
func (s *Session) Answer(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return apperr.Invalid(fmt.Sprintf("cannot answer in state %s", s.state))
	}
	if s.advancing {
		return apperr.Invalid("advance in progress")
	}

	current := s.sequence[s.position]
	if !current.HasScore(score) {
		return apperr.Invalid(fmt.Sprintf("score %d is not an option of question %d", score, current.ID))
	}
	s.answers[current.ID] = score

	if s.position == len(s.sequence)-1 {
		return s.completeLocked()
	}

	if s.advanceDelay <= 0 {
		s.position++
		return nil
	}

	s.advancing = true
	time.AfterFunc(s.advanceDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.advancing {
			return
		}
		s.advancing = false
		if s.state == StateInProgress && s.position < len(s.sequence)-1 {
			s.position++
		}
	})
	return nil
}

// completeLocked scores the answer map and transitions to completed.
// Must be called with the lock held.
func (s *Session) completeLocked() error {
	result, err := scoring.Score(s.sequence, s.answers)
	if err != nil {
		return fmt.Errorf("scoring completed session: %w", err)
	}
	s.result = result
	s.state = StateCompleted

	// Desktop exemption: the share channel is mobile-oriented, so
	// minimal-mode desktop users get the report unlocked outright.
	if s.mode == model.ModeMinimal && !s.isMobile {
		s.unlocked = true
	}
	return nil
}

// GoBack decrements the position without erasing the answer already
// recorded for any question.
func (s *Session) GoBack() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return apperr.Invalid(fmt.Sprintf("cannot go back in state %s", s.state))
	}
	if s.position == 0 {
		return apperr.Invalid("already at the first question")
	}
	s.advancing = false
	s.position--
	return nil
}

// Reset returns to mode selection from any state, clearing answers,
// position and unlock state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateModeSelect
	s.mode = ""
	s.sequence = nil
	s.position = 0
	s.answers = make(map[int]int)
	s.advancing = false
	s.result = nil
	s.unlocked = false
}

// Unlock lifts the lock on the detailed report. The transition is
// one-way; repeated calls are harmless.
func (s *Session) Unlock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unlocked = true
}

// Snapshot is a consistent read of the session for the transport layer.
type Snapshot struct {
	ID       string
	State    State
	Mode     model.Mode
	Position int
	Total    int
	Current  *model.Question
	Answered int
	Result   *model.AssessmentResult
	Unlocked bool
}

// Snapshot returns the session's observable state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:       s.id,
		State:    s.state,
		Mode:     s.mode,
		Position: s.position,
		Total:    len(s.sequence),
		Answered: len(s.answers),
		Result:   s.result,
		Unlocked: s.unlocked,
	}
	if s.state == StateInProgress {
		q := s.sequence[s.position]
		snap.Current = &q
	}
	return snap
}
