package service

import "sync"

// QuestionStatus is the palette state of one question. It is derived from the
// independent answer/mark fields so that answering a marked question keeps
// the mark, exactly as the exam UI behaves.
type QuestionStatus string

const (
	StatusNotVisited        QuestionStatus = "not_visited"
	StatusVisited           QuestionStatus = "visited_not_answered"
	StatusAnswered          QuestionStatus = "answered"
	StatusMarked            QuestionStatus = "marked_for_review"
	StatusAnsweredAndMarked QuestionStatus = "answered_and_marked_for_review"
)

// SessionTracker holds the state of one in-progress attempt: the question
// pointer, visited/answer/mark state and the countdown. It never touches the
// database; on submission its answer map is read once and the tracker is
// discarded.
//
// A mutex guards every transition because the ticker goroutine and the HTTP
// handlers mutate the same attempt.
type SessionTracker struct {
	mu sync.Mutex

	testID uint
	userID uint
	total  int

	current   int
	visited   map[int]bool
	answers   map[int]string
	marked    map[int]bool
	remaining int

	expiredSignalled bool
	submitted        bool
}

func NewSessionTracker(testID, userID uint, totalQuestions, durationMinutes int) *SessionTracker {
	t := &SessionTracker{
		testID:    testID,
		userID:    userID,
		total:     totalQuestions,
		current:   1,
		visited:   map[int]bool{1: true},
		answers:   make(map[int]string),
		marked:    make(map[int]bool),
		remaining: durationMinutes * 60,
	}
	return t
}

func (t *SessionTracker) TestID() uint { return t.testID }
func (t *SessionTracker) UserID() uint { return t.userID }

func (t *SessionTracker) clamp(n int) int {
	if n < 1 {
		return 1
	}
	if n > t.total {
		return t.total
	}
	return n
}

// Navigate moves the pointer and records the visit. Revisiting is a no-op on
// the visited set; out-of-range targets clamp silently since the UI already
// disables the buttons at the edges.
func (t *SessionTracker) Navigate(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.navigateLocked(n)
}

func (t *SessionTracker) navigateLocked(n int) {
	n = t.clamp(n)
	t.visited[n] = true
	t.current = n
}

func (t *SessionTracker) Advance() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.navigateLocked(t.current + 1)
}

func (t *SessionTracker) Retreat() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.navigateLocked(t.current - 1)
}

// SelectAnswer records a choice for the current question. A review mark stays
// in place, moving the question to answered-and-marked.
func (t *SessionTracker) SelectAnswer(optionLabel string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.answers[t.current] = optionLabel
}

// ClearResponse fully resets the current question to visited-not-answered:
// both the answer and any review mark are dropped. Clearing an already clean
// question is a no-op.
func (t *SessionTracker) ClearResponse() {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.answers, t.current)
	delete(t.marked, t.current)
}

// ToggleMarkForReview flips the review mark of the current question. The
// resulting palette state depends on whether an answer exists.
func (t *SessionTracker) ToggleMarkForReview() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.marked[t.current] {
		delete(t.marked, t.current)
	} else {
		t.marked[t.current] = true
	}
}

// Tick counts one second down. It reports true exactly once, on the tick that
// exhausts the clock; the caller owns the forced submission.
func (t *SessionTracker) Tick() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.remaining > 0 {
		t.remaining--
	}
	if t.remaining == 0 && !t.expiredSignalled && !t.submitted {
		t.expiredSignalled = true
		return true
	}
	return false
}

func (t *SessionTracker) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// TimeTaken is duration minus whatever is left on the clock.
func (t *SessionTracker) TimeTaken(durationMinutes int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return durationMinutes*60 - t.remaining
}

// MarkSubmitted is the one-shot gate between the manual submit and the
// timeout path: only the first caller gets true.
func (t *SessionTracker) MarkSubmitted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.submitted {
		return false
	}
	t.submitted = true
	return true
}

func (t *SessionTracker) Submitted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.submitted
}

// Status derives the five-way palette state for one question.
func (t *SessionTracker) Status(n int) QuestionStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.statusLocked(n)
}

func (t *SessionTracker) statusLocked(n int) QuestionStatus {
	_, answered := t.answers[n]
	marked := t.marked[n]
	switch {
	case answered && marked:
		return StatusAnsweredAndMarked
	case marked:
		return StatusMarked
	case answered:
		return StatusAnswered
	case t.visited[n]:
		return StatusVisited
	default:
		return StatusNotVisited
	}
}

// SessionSnapshot is what the palette and header render from.
type SessionSnapshot struct {
	Current          int                    `json:"current"`
	RemainingSeconds int                    `json:"remainingSeconds"`
	Statuses         map[int]QuestionStatus `json:"statuses"`
	Answers          map[int]string         `json:"answers"`
	Submitted        bool                   `json:"submitted"`
}

func (t *SessionTracker) Snapshot() SessionSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	statuses := make(map[int]QuestionStatus, t.total)
	for n := 1; n <= t.total; n++ {
		statuses[n] = t.statusLocked(n)
	}
	answers := make(map[int]string, len(t.answers))
	for n, a := range t.answers {
		answers[n] = a
	}
	return SessionSnapshot{
		Current:          t.current,
		RemainingSeconds: t.remaining,
		Statuses:         statuses,
		Answers:          answers,
		Submitted:        t.submitted,
	}
}

// FinalAnswers copies the answer map for scoring; unanswered questions have
// no entry.
func (t *SessionTracker) FinalAnswers() map[int]string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[int]string, len(t.answers))
	for n, a := range t.answers {
		out[n] = a
	}
	return out
}
