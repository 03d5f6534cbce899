package assessment

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidAnswerValue = errors.New("invalid answer value")
	ErrUnknownQuestion    = errors.New("unknown question")
	ErrSessionCompleted   = errors.New("session already completed")
	ErrProgressNotSaved   = errors.New("session progress not saved")
)

// Progress is the durable copy of an in-flight session.
type Progress struct {
	Index   int
	Answers AnswerMap
}

// ProgressStore mirrors session progress to a local durable cache.
// Implementations are scoped to a single session owner.
type ProgressStore interface {
	LoadProgress(ctx context.Context, assessmentType string) (Progress, bool, error)
	SaveProgress(ctx context.Context, assessmentType string, p Progress) error
	ClearProgress(ctx context.Context, assessmentType string) error
}

// Session walks a user through one question catalog. It is not safe for
// concurrent use; one owner drives it.
type Session struct {
	assessmentType string
	questions      []Question
	byID           map[string]Question

	index     int
	answers   AnswerMap
	completed bool

	store ProgressStore
}

func NewSession(assessmentType string, questions []Question, store ProgressStore) *Session {
	byID := make(map[string]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	return &Session{
		assessmentType: assessmentType,
		questions:      questions,
		byID:           byID,
		answers:        AnswerMap{},
		store:          store,
	}
}

// Restore loads previously saved progress. A saved index outside the
// current catalog resets to 0; answers to questions no longer in the
// catalog, or with values the question does not offer, are dropped.
func (s *Session) Restore(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	p, ok, err := s.store.LoadProgress(ctx, s.assessmentType)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	idx := p.Index
	if idx < 0 || idx >= len(s.questions) {
		idx = 0
	}
	answers := AnswerMap{}
	for id, v := range p.Answers {
		q, ok := s.byID[id]
		if !ok || !q.HasOption(v) {
			continue
		}
		answers[id] = v
	}

	s.index = idx
	s.answers = answers
	s.completed = false
	return nil
}

func (s *Session) AssessmentType() string { return s.assessmentType }
func (s *Session) Questions() []Question  { return s.questions }
func (s *Session) Len() int               { return len(s.questions) }
func (s *Session) Index() int             { return s.index }
func (s *Session) Completed() bool        { return s.completed }
func (s *Session) Answers() AnswerMap     { return s.answers.Clone() }

func (s *Session) Current() (Question, bool) {
	if s.completed || s.index < 0 || s.index >= len(s.questions) {
		return Question{}, false
	}
	return s.questions[s.index], true
}

func (s *Session) Snapshot() SessionState {
	return SessionState{
		AssessmentType: s.assessmentType,
		Index:          s.index,
		Answers:        s.answers.Clone(),
		Completed:      s.completed,
		Total:          len(s.questions),
	}
}

// Advance moves to the next question. At the last index it is a no-op;
// callers complete the session instead.
func (s *Session) Advance(ctx context.Context) error {
	if s.completed {
		return ErrSessionCompleted
	}
	if s.index+1 >= len(s.questions) {
		return nil
	}
	s.index++
	return s.persist(ctx)
}

func (s *Session) Retreat(ctx context.Context) error {
	if s.completed {
		return ErrSessionCompleted
	}
	if s.index <= 0 {
		return nil
	}
	s.index--
	return s.persist(ctx)
}

// RecordAnswer stores value for the question. The in-memory state is
// updated even when the durable write fails; the returned error then
// wraps ErrProgressNotSaved.
func (s *Session) RecordAnswer(ctx context.Context, questionID string, value int) error {
	if s.completed {
		return ErrSessionCompleted
	}
	questionID = strings.TrimSpace(questionID)
	q, ok := s.byID[questionID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	if !q.HasOption(value) {
		return fmt.Errorf("%w: question=%s value=%d", ErrInvalidAnswerValue, questionID, value)
	}
	s.answers[questionID] = value
	return s.persist(ctx)
}

// Complete finishes the session for userID and hands back the answers to
// score. Without a user the session stays active and nothing is written.
func (s *Session) Complete(userID string) (AnswerMap, error) {
	if s.completed {
		return nil, ErrSessionCompleted
	}
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUnauthenticated
	}
	s.completed = true
	return s.answers.Clone(), nil
}

// Reopen returns a completed session to its last active index so a failed
// submission can be retried without answering again.
func (s *Session) Reopen() {
	s.completed = false
}

func (s *Session) persist(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	err := s.store.SaveProgress(ctx, s.assessmentType, Progress{Index: s.index, Answers: s.answers.Clone()})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProgressNotSaved, err)
	}
	return nil
}
