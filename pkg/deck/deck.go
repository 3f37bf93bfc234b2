// Package deck implements the swipe-deck controller: a carousel over the
// fetched candidate list that keeps a two-card visible window, likes on right
// swipes and cycles left-swiped candidates around until everyone has been
// liked.
package deck

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrTransitionPending is returned when a swipe arrives while the
	// previous swipe's window mutation is still deferred.
	ErrTransitionPending = errors.New("swipe transition still in progress")
	// ErrExhausted is returned once every candidate has been liked.
	ErrExhausted = errors.New("no candidates left")
)

// Candidate is one swipeable profile, the shape served by the unmatched
// endpoint.
type Candidate struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Age      int    `json:"age,omitempty"`
	Bio      string `json:"bio,omitempty"`
	ImageID  string `json:"image,omitempty"`
}

type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
)

// Liker submits a right swipe to the backend. Matched reports whether the
// like completed a mutual match.
type Liker interface {
	Like(ctx context.Context, targetID string) (matched bool, err error)
}

// Scheduler defers a function by a delay. The default wraps time.AfterFunc;
// tests inject a synchronous one.
type Scheduler func(d time.Duration, fn func())

const defaultDelay = 700 * time.Millisecond

type Options struct {
	Liker    Liker
	Delay    time.Duration // window mutation delay, default 700ms
	Schedule Scheduler
}

// Queue holds the master candidate list plus the visible window of at most
// two cards. The foreground card is the window's last element. Candidates are
// presented in reverse fetch order; left-swiped candidates stay in the master
// list and come around again.
type Queue struct {
	mu        sync.Mutex
	liker     Liker
	delay     time.Duration
	schedule  Scheduler
	master    []Candidate
	displayed []Candidate
	current   int
	pending   bool
}

// Result reports what a swipe did.
type Result struct {
	Swiped  Candidate
	Matched bool
}

func New(candidates []Candidate, opts Options) *Queue {
	q := &Queue{
		liker:    opts.Liker,
		delay:    opts.Delay,
		schedule: opts.Schedule,
		master:   append([]Candidate(nil), candidates...),
	}
	if q.delay <= 0 {
		q.delay = defaultDelay
	}
	if q.schedule == nil {
		q.schedule = func(d time.Duration, fn func()) { time.AfterFunc(d, fn) }
	}
	if n := len(q.master); n >= 2 {
		q.displayed = append([]Candidate(nil), q.master[n-2:]...)
		q.current = 1
	} else {
		q.displayed = append([]Candidate(nil), q.master...)
		q.current = 0
	}
	return q
}

// Foreground returns the card currently facing the user, or false when the
// deck is exhausted or empty.
func (q *Queue) Foreground() (Candidate, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.displayed) == 0 || q.current >= len(q.displayed) {
		return Candidate{}, false
	}
	return q.displayed[q.current], true
}

// Remaining returns how many candidates are still in the carousel.
func (q *Queue) Remaining() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.master)
}

// Exhausted reports whether every candidate has been liked.
func (q *Queue) Exhausted() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.displayed) == 0
}

// Swipe acts on the foreground card. Right swipes call the Liker first and
// leave the deck untouched on error, so a failed like can be retried. The
// swiped card leaves the window immediately but the replacement card slides
// in only after the presentation delay; a swipe during that gap returns
// ErrTransitionPending.
func (q *Queue) Swipe(ctx context.Context, dir Direction) (Result, error) {
	q.mu.Lock()
	if q.pending {
		q.mu.Unlock()
		return Result{}, ErrTransitionPending
	}
	if len(q.displayed) == 0 {
		q.mu.Unlock()
		return Result{}, ErrExhausted
	}
	swiped := q.displayed[q.current]
	q.pending = true
	q.mu.Unlock()

	res := Result{Swiped: swiped}
	if dir == Right && q.liker != nil {
		matched, err := q.liker.Like(ctx, swiped.ID)
		if err != nil {
			q.mu.Lock()
			q.pending = false
			q.mu.Unlock()
			return Result{}, err
		}
		res.Matched = matched
	}

	q.mu.Lock()
	swipedIndex := indexOf(q.master, swiped.ID)
	if dir == Right {
		q.master = removeByID(q.master, swiped.ID)
	}
	next := nextBackfillIndex(swipedIndex, len(q.master))

	// The window after the transition: the un-swiped card stays, the
	// backfill card slides in behind it.
	newDisplayed := removeByID(q.displayed, swiped.ID)
	newCurrent := 0
	switch {
	case len(q.master) >= 2:
		newDisplayed = append([]Candidate{q.master[next]}, newDisplayed...)
		newCurrent = 1
	case len(q.master) == 1:
		newDisplayed = []Candidate{q.master[next]}
	}
	q.mu.Unlock()

	q.schedule(q.delay, func() {
		q.mu.Lock()
		q.displayed = newDisplayed
		q.current = newCurrent
		q.pending = false
		q.mu.Unlock()
	})
	return res, nil
}

func indexOf(list []Candidate, id string) int {
	for i, c := range list {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func removeByID(list []Candidate, id string) []Candidate {
	out := make([]Candidate, 0, len(list))
	for _, c := range list {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}
