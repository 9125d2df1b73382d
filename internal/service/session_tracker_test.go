package service

import "testing"

func newTracker() *SessionTracker {
	return NewSessionTracker(1, 1, 10, 2) // 10 questions, 2 minutes
}

func TestTrackerInitialState(t *testing.T) {
	tr := newTracker()

	snap := tr.Snapshot()
	if snap.Current != 1 {
		t.Errorf("Current = %d, want 1", snap.Current)
	}
	if snap.RemainingSeconds != 120 {
		t.Errorf("RemainingSeconds = %d, want 120", snap.RemainingSeconds)
	}
	if got := tr.Status(1); got != StatusVisited {
		t.Errorf("Status(1) = %s, want %s", got, StatusVisited)
	}
	for n := 2; n <= 10; n++ {
		if got := tr.Status(n); got != StatusNotVisited {
			t.Errorf("Status(%d) = %s, want %s", n, got, StatusNotVisited)
		}
	}
}

func TestTrackerNavigationClamps(t *testing.T) {
	tr := newTracker()

	tr.Navigate(99)
	if got := tr.Snapshot().Current; got != 10 {
		t.Errorf("Current after Navigate(99) = %d, want 10", got)
	}
	tr.Navigate(-5)
	if got := tr.Snapshot().Current; got != 1 {
		t.Errorf("Current after Navigate(-5) = %d, want 1", got)
	}

	tr.Retreat()
	if got := tr.Snapshot().Current; got != 1 {
		t.Errorf("Retreat at question 1 moved to %d", got)
	}
	tr.Navigate(10)
	tr.Advance()
	if got := tr.Snapshot().Current; got != 10 {
		t.Errorf("Advance at last question moved to %d", got)
	}
}

func TestTrackerStatusLattice(t *testing.T) {
	tr := newTracker()

	tr.Navigate(3)
	if got := tr.Status(3); got != StatusVisited {
		t.Fatalf("after visit: %s", got)
	}

	tr.SelectAnswer("b")
	if got := tr.Status(3); got != StatusAnswered {
		t.Fatalf("after answer: %s", got)
	}

	tr.ToggleMarkForReview()
	if got := tr.Status(3); got != StatusAnsweredAndMarked {
		t.Fatalf("after answer+mark: %s", got)
	}

	// Answering again keeps the mark.
	tr.SelectAnswer("c")
	if got := tr.Status(3); got != StatusAnsweredAndMarked {
		t.Fatalf("answer change dropped the mark: %s", got)
	}

	tr.ToggleMarkForReview()
	if got := tr.Status(3); got != StatusAnswered {
		t.Fatalf("after unmark: %s", got)
	}
}

func TestTrackerMarkWithoutAnswer(t *testing.T) {
	tr := newTracker()
	tr.Navigate(5)
	tr.ToggleMarkForReview()
	if got := tr.Status(5); got != StatusMarked {
		t.Fatalf("Status = %s, want %s", got, StatusMarked)
	}
}

func TestTrackerClearResponseResetsToVisited(t *testing.T) {
	tr := newTracker()
	tr.Navigate(4)
	tr.SelectAnswer("a")
	tr.ToggleMarkForReview()

	tr.ClearResponse()
	if got := tr.Status(4); got != StatusVisited {
		t.Fatalf("Status after clear = %s, want %s", got, StatusVisited)
	}

	// Clearing a clean question is a no-op.
	tr.ClearResponse()
	if got := tr.Status(4); got != StatusVisited {
		t.Fatalf("Status after second clear = %s", got)
	}
}

func TestTrackerRevisitKeepsAnswer(t *testing.T) {
	tr := newTracker()
	tr.Navigate(2)
	tr.SelectAnswer("d")
	tr.Navigate(7)
	tr.Navigate(2)
	if got := tr.Status(2); got != StatusAnswered {
		t.Fatalf("Status = %s, want %s", got, StatusAnswered)
	}
	if got := tr.FinalAnswers()[2]; got != "d" {
		t.Fatalf("answer = %q, want d", got)
	}
}

func TestTrackerTickSignalsExpiryOnce(t *testing.T) {
	tr := NewSessionTracker(1, 1, 5, 0)
	tr.mu.Lock()
	tr.remaining = 3
	tr.mu.Unlock()

	fired := 0
	for i := 0; i < 10; i++ {
		if tr.Tick() {
			fired++
		}
	}
	if fired != 1 {
		t.Fatalf("expiry signalled %d times, want 1", fired)
	}
	if got := tr.Remaining(); got != 0 {
		t.Fatalf("Remaining = %d, want 0", got)
	}
}

func TestTrackerTickAfterSubmitDoesNotSignal(t *testing.T) {
	tr := NewSessionTracker(1, 1, 5, 0)
	tr.mu.Lock()
	tr.remaining = 1
	tr.mu.Unlock()

	if !tr.MarkSubmitted() {
		t.Fatal("first MarkSubmitted returned false")
	}
	if tr.Tick() {
		t.Fatal("Tick signalled expiry after submission")
	}
}

func TestTrackerMarkSubmittedIsOneShot(t *testing.T) {
	tr := newTracker()
	if !tr.MarkSubmitted() {
		t.Fatal("first MarkSubmitted returned false")
	}
	if tr.MarkSubmitted() {
		t.Fatal("second MarkSubmitted returned true")
	}
	if !tr.Submitted() {
		t.Fatal("Submitted() = false after MarkSubmitted")
	}
}

func TestTrackerTimeTaken(t *testing.T) {
	tr := newTracker()
	for i := 0; i < 30; i++ {
		tr.Tick()
	}
	if got := tr.TimeTaken(2); got != 30 {
		t.Fatalf("TimeTaken = %d, want 30", got)
	}
}

func TestTrackerFinalAnswersIsACopy(t *testing.T) {
	tr := newTracker()
	tr.SelectAnswer("a")

	answers := tr.FinalAnswers()
	answers[1] = "z"

	if got := tr.FinalAnswers()[1]; got != "a" {
		t.Fatalf("tracker answer mutated through copy: %q", got)
	}
}
