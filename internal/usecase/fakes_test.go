package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"career-guidance/internal/domain/assessment"
	"career-guidance/internal/domain/career"
	"career-guidance/internal/domain/notification"
	"career-guidance/internal/domain/riasec"
	"career-guidance/internal/repository"

	"github.com/google/uuid"
)

var errBoom = errors.New("boom")

type memCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
	setErr error
	locks  map[string]bool

	unavailable bool
}

func (c *memCache) Available() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.unavailable
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}, locks: map[string]bool{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return false, c.getErr
	}
	if c.unavailable {
		return false, nil
	}
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	if c.unavailable {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	c.ttls[key] = ttl
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) SetIfNotExists(_ context.Context, key, _ string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unavailable || c.locks[key] {
		return false, nil
	}
	c.locks[key] = true
	return true, nil
}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

type fakeQuestionRepo struct {
	questions []assessment.Question
	err       error
	calls     int
}

func (f *fakeQuestionRepo) ListByAssessmentType(context.Context, string) ([]assessment.Question, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]assessment.Question, len(f.questions))
	copy(out, f.questions)
	return out, nil
}

func (f *fakeQuestionRepo) Upsert(_ context.Context, _ string, qs []assessment.Question) (int, error) {
	f.questions = append(f.questions, qs...)
	return len(qs), nil
}

type fakeCareerRepo struct {
	careers   []career.Career
	err       error
	lastCats  []riasec.Category
	lastLimit int
	patterns  [][]string
}

func (f *fakeCareerRepo) ListByCategories(_ context.Context, cats []riasec.Category, limit int) ([]career.Career, error) {
	f.lastCats, f.lastLimit = cats, limit
	if f.err != nil {
		return nil, f.err
	}
	out := make([]career.Career, 0)
	for _, c := range f.careers {
		if c.HasAny(cats) && len(out) < limit {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCareerRepo) Search(_ context.Context, patterns []string, limit, offset int) ([]career.Career, error) {
	f.patterns = append(f.patterns, patterns)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]career.Career, 0)
	for _, c := range f.careers {
		for _, p := range patterns {
			if matchLike(c.Title, p) {
				out = append(out, c)
				break
			}
		}
	}
	if offset >= len(out) {
		return []career.Career{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeCareerRepo) GetByID(_ context.Context, id string) (career.Career, error) {
	for _, c := range f.careers {
		if c.ID == id {
			return c, nil
		}
	}
	return career.Career{}, repository.ErrNotFound
}

func (f *fakeCareerRepo) Upsert(_ context.Context, cs []career.Career) (int, error) {
	f.careers = append(f.careers, cs...)
	return len(cs), nil
}

// matchLike handles the "%term%" patterns the search use case produces.
func matchLike(s, pattern string) bool {
	if len(pattern) < 2 {
		return false
	}
	needle := pattern[1 : len(pattern)-1]
	return strings.Contains(strings.ToLower(s), strings.ToLower(needle))
}

type fakeResultRepo struct {
	mu      sync.Mutex
	results map[uuid.UUID]assessment.Result
	err     error
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{results: map[uuid.UUID]assessment.Result{}}
}

func (f *fakeResultRepo) Create(_ context.Context, r assessment.Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.results[r.ID] = r
	return nil
}

func (f *fakeResultRepo) GetByID(_ context.Context, id uuid.UUID) (assessment.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.results[id]
	if !ok {
		return assessment.Result{}, repository.ErrNotFound
	}
	return r, nil
}

func (f *fakeResultRepo) ListHistory(_ context.Context, userID string, _, _ int) ([]assessment.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]assessment.Result, 0)
	for _, r := range f.results {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	results *fakeResultRepo
	entries map[string][]uuid.UUID
	err     error
}

func newFakeHistoryRepo(results *fakeResultRepo) *fakeHistoryRepo {
	return &fakeHistoryRepo{results: results, entries: map[string][]uuid.UUID{}}
}

func (f *fakeHistoryRepo) Append(_ context.Context, userID string, id uuid.UUID, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, have := range f.entries[userID] {
		if have == id {
			return nil
		}
	}
	f.entries[userID] = append(f.entries[userID], id)
	return nil
}

func (f *fakeHistoryRepo) List(_ context.Context, userID string) ([]assessment.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]assessment.HistoryEntry, 0)
	for _, id := range f.entries[userID] {
		out = append(out, assessment.HistoryEntry{ResultID: id})
	}
	return out, nil
}

func (f *fakeHistoryRepo) ListOrphans(_ context.Context, userID string) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orphans(userID), nil
}

func (f *fakeHistoryRepo) orphans(userID string) []uuid.UUID {
	referenced := map[uuid.UUID]bool{}
	for _, id := range f.entries[userID] {
		referenced[id] = true
	}
	out := make([]uuid.UUID, 0)
	for id, r := range f.results.results {
		if r.UserID == userID && !referenced[id] {
			out = append(out, id)
		}
	}
	return out
}

func (f *fakeHistoryRepo) ListUsersWithOrphans(_ context.Context, _ int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[string]bool{}
	out := make([]string, 0)
	for _, r := range f.results.results {
		if seen[r.UserID] {
			continue
		}
		if len(f.orphans(r.UserID)) > 0 {
			seen[r.UserID] = true
			out = append(out, r.UserID)
		}
	}
	return out, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent map[string][]notification.Notification
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{sent: map[string][]notification.Notification{}}
}

func (r *recordingNotifier) Notify(userID string, n notification.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent[userID] = append(r.sent[userID], n)
}

func (r *recordingNotifier) types(userID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0)
	for _, n := range r.sent[userID] {
		out = append(out, n.Type)
	}
	return out
}

func likert() []assessment.Option {
	out := make([]assessment.Option, 0, 5)
	for v := 1; v <= 5; v++ {
		out = append(out, assessment.Option{Value: v, Label: "opt"})
	}
	return out
}

// sixQuestions returns one question per category, deliberately out of order.
func sixQuestions() []assessment.Question {
	return []assessment.Question{
		{ID: "q-c", Prompt: "c", Category: riasec.Conventional, Order: 6, Options: likert()},
		{ID: "q-r", Prompt: "r", Category: riasec.Realistic, Order: 1, Options: likert()},
		{ID: "q-i", Prompt: "i", Category: riasec.Investigative, Order: 2, Options: likert()},
		{ID: "q-a", Prompt: "a", Category: riasec.Artistic, Order: 3, Options: likert()},
		{ID: "q-s", Prompt: "s", Category: riasec.Social, Order: 4, Options: likert()},
		{ID: "q-e", Prompt: "e", Category: riasec.Enterprising, Order: 5, Options: likert()},
	}
}
