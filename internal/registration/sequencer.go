package registration

import (
	"sort"
	"sync"

	"github.com/barangay-connect/backend/internal/domain"
)

// StepSequencer is the single authority for which step is active and whether
// the journey may advance or be submitted.
type StepSequencer struct {
	mu        sync.RWMutex
	steps     []domain.StepDescriptor
	current   int
	phase     int
	completed map[domain.StepID]struct{}
	onExit    func()
}

func NewStepSequencer(steps []domain.StepDescriptor, onExit func()) *StepSequencer {
	if onExit == nil {
		onExit = func() {}
	}
	return &StepSequencer{
		steps:     steps,
		current:   1,
		completed: make(map[domain.StepID]struct{}),
		onExit:    onExit,
	}
}

func (s *StepSequencer) Steps() []domain.StepDescriptor {
	return s.steps
}

func (s *StepSequencer) CurrentStep() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *StepSequencer) Phase() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// IsCompleted reports whether the sequencer moved past the last step.
func (s *StepSequencer) IsCompleted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current > len(s.steps)
}

// Current returns the active step descriptor; ok is false past the last step.
func (s *StepSequencer) Current() (domain.StepDescriptor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current < 1 || s.current > len(s.steps) {
		return domain.StepDescriptor{}, false
	}
	return s.steps[s.current-1], true
}

// Next moves forward by exactly one step and resets the phase.
func (s *StepSequencer) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current > len(s.steps) {
		return domain.ErrSequenceFinished
	}
	s.current++
	s.phase = 0
	return nil
}

// NextPhase moves forward by one phase inside the current step.
func (s *StepSequencer) NextPhase() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase++
}

// Back moves back one phase, or one step when at phase zero. At the first
// step it runs the exit action instead and reports exited.
func (s *StepSequencer) Back() (exited bool) {
	s.mu.Lock()
	if s.phase > 0 {
		s.phase--
		s.mu.Unlock()
		return false
	}
	if s.current <= 1 {
		s.mu.Unlock()
		s.onExit()
		return true
	}
	s.current--
	s.mu.Unlock()
	return false
}

// Complete marks a step as done without moving the current step.
func (s *StepSequencer) Complete(id domain.StepID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.knownLocked(id) {
		return domain.ErrUnknownStep
	}
	s.completed[id] = struct{}{}
	return nil
}

// Uncomplete drops a step from the completed set. When the cursor is at or past
// the step it moves back to it with the phase reset.
func (s *StepSequencer) Uncomplete(id domain.StepID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx == 0 {
		return domain.ErrUnknownStep
	}
	delete(s.completed, id)
	if s.current >= idx {
		s.current = idx
		s.phase = 0
	}
	return nil
}

func (s *StepSequencer) IsStepCompleted(id domain.StepID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.completed[id]
	return ok
}

// CanSubmit reports whether every required ungrouped step is complete and
// each group has at least one completed member. The review step itself is
// not required to be completed.
func (s *StepSequencer) CanSubmit() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return canSubmit(s.steps, s.completed)
}

func canSubmit(steps []domain.StepDescriptor, completed map[domain.StepID]struct{}) bool {
	groups := make(map[string]bool)
	for _, step := range steps {
		if step.Optional || step.Stage == domain.StageReview {
			continue
		}
		_, done := completed[step.ID]
		if step.Group != "" {
			groups[step.Group] = groups[step.Group] || done
			continue
		}
		if !done {
			return false
		}
	}
	for _, satisfied := range groups {
		if !satisfied {
			return false
		}
	}
	return true
}

// Seed moves the current step to the first step whose requirement is not yet
// satisfied, for journeys resumed after some steps were completed elsewhere.
func (s *StepSequencer) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	satisfied := make(map[string]bool)
	for _, step := range s.steps {
		if _, done := s.completed[step.ID]; done && step.Group != "" {
			satisfied[step.Group] = true
		}
	}
	for i, step := range s.steps {
		if _, done := s.completed[step.ID]; done {
			continue
		}
		if step.Optional || (step.Group != "" && satisfied[step.Group]) {
			continue
		}
		s.current = i + 1
		s.phase = 0
		return
	}
	s.current = len(s.steps)
	s.phase = 0
}

func (s *StepSequencer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = 1
	s.phase = 0
	s.completed = make(map[domain.StepID]struct{})
}

// Progress returns a snapshot for persistence and display.
func (s *StepSequencer) Progress() domain.RegistrationProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()

	completed := make([]domain.StepID, 0, len(s.completed))
	for id := range s.completed {
		completed = append(completed, id)
	}
	sort.Slice(completed, func(i, j int) bool { return completed[i] < completed[j] })

	return domain.RegistrationProgress{
		CurrentStep: s.current,
		Phase:       s.phase,
		Completed:   completed,
		IsCompleted: s.current > len(s.steps),
	}
}

func (s *StepSequencer) Restore(p domain.RegistrationProgress) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = p.CurrentStep
	if s.current < 1 {
		s.current = 1
	}
	if s.current > len(s.steps)+1 {
		s.current = len(s.steps) + 1
	}
	s.phase = p.Phase
	s.completed = make(map[domain.StepID]struct{}, len(p.Completed))
	for _, id := range p.Completed {
		if s.knownLocked(id) {
			s.completed[id] = struct{}{}
		}
	}
}

func (s *StepSequencer) knownLocked(id domain.StepID) bool {
	return s.indexLocked(id) > 0
}

// indexLocked returns the 1-based position of id, or 0 when it is unknown.
func (s *StepSequencer) indexLocked(id domain.StepID) int {
	for i, step := range s.steps {
		if step.ID == id {
			return i + 1
		}
	}
	return 0
}
