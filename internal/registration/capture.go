package registration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/barangay-connect/backend/internal/domain"
)

const (
	DefaultCaptureStatusTTL = 3 * time.Second
	DefaultFaceMatchTimeout = 5 * time.Second
)

var errSubscriptionClosed = errors.New("subscription closed")

const (
	msgIDMismatch   = "The ID does not match the details you entered. Please try again."
	msgFaceMismatch = "We could not match your face with your ID. Please try again."
	msgFaceTimeout  = "Face verification took too long. Please try again."
)

// IdentityCapture sequences an ID document capture followed by a face capture.
type IdentityCapture struct {
	form       *FormStore
	documents  DocumentMatcher
	faces      FaceMatcher
	statuses   MatchStatusSubscriber
	notifier   Notifier
	statusTTL  time.Duration
	matchLimit time.Duration
	now        func() time.Time

	mu    sync.Mutex
	state domain.CaptureState
	busy  bool
}

type CaptureOption func(*IdentityCapture)

func WithCaptureStatusTTL(d time.Duration) CaptureOption {
	return func(c *IdentityCapture) {
		if d > 0 {
			c.statusTTL = d
		}
	}
}

func WithFaceMatchTimeout(d time.Duration) CaptureOption {
	return func(c *IdentityCapture) {
		if d > 0 {
			c.matchLimit = d
		}
	}
}

func WithCaptureNotifier(n Notifier) CaptureOption {
	return func(c *IdentityCapture) {
		if n != nil {
			c.notifier = n
		}
	}
}

func withCaptureClock(now func() time.Time) CaptureOption {
	return func(c *IdentityCapture) {
		c.now = now
	}
}

func NewIdentityCapture(form *FormStore, documents DocumentMatcher, faces FaceMatcher, statuses MatchStatusSubscriber, opts ...CaptureOption) *IdentityCapture {
	c := &IdentityCapture{
		form:       form,
		documents:  documents,
		faces:      faces,
		statuses:   statuses,
		notifier:   nopNotifier{},
		statusTTL:  DefaultCaptureStatusTTL,
		matchLimit: DefaultFaceMatchTimeout,
		now:        time.Now,
		state:      domain.CaptureState{Phase: domain.CaptureIdle},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the capture state; an expired status message is dropped.
func (c *IdentityCapture) State() domain.CaptureState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expireStatusLocked()
	return c.state
}

func (c *IdentityCapture) Restore(s domain.CaptureState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s.Phase == "" {
		s.Phase = domain.CaptureIdle
	}
	c.state = s
}

func (c *IdentityCapture) Phase() domain.CapturePhase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Phase
}

// Begin moves an idle stage to ID capture.
func (c *IdentityCapture) Begin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Phase == domain.CaptureIdle {
		c.state.Phase = domain.CaptureCapturingID
	}
}

// IDMatched reports whether the ID was matched against the current personal data.
func (c *IdentityCapture) IDMatched() bool {
	switch c.Phase() {
	case domain.CaptureIDVerified, domain.CaptureCapturingFace, domain.CaptureFaceVerified:
		return true
	}
	return false
}

func (c *IdentityCapture) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = domain.CaptureState{Phase: domain.CaptureIdle}
}

// CaptureID matches an ID photo against the entered personal data.
func (c *IdentityCapture) CaptureID(ctx context.Context, photo domain.Photo) (domain.CaptureResult, error) {
	if photo.Empty() {
		return domain.CaptureResult{}, domain.ErrCameraUnavailable
	}
	if err := c.acquire(domain.CaptureIdle, domain.CaptureCapturingID); err != nil {
		return domain.CaptureResult{}, err
	}
	defer c.release()

	c.mu.Lock()
	c.state.Phase = domain.CaptureCapturingID
	c.mu.Unlock()

	subject := c.form.Values().Personal.DocumentSubject()

	matchID, err := c.documents.MatchDocument(ctx, photo, subject)
	if err != nil {
		c.notifier.Notify(ctx, "We could not check your ID right now. Please try again.")
		return domain.CaptureResult{}, &domain.DispatchError{Op: "match document", Err: err}
	}
	if matchID == "" {
		c.fail(msgIDMismatch)
		return domain.CaptureResult{Reason: msgIDMismatch}, nil
	}

	c.mu.Lock()
	c.state = domain.CaptureState{Phase: domain.CaptureIDVerified, MatchID: matchID}
	c.mu.Unlock()

	return domain.CaptureResult{Success: true, MatchID: matchID}, nil
}

// CaptureFace posts a face photo for the match id from the ID step and waits
// for the matching backend to report the match as processed. The status
// subscription is opened before the post and closed on every return path.
func (c *IdentityCapture) CaptureFace(ctx context.Context, photo domain.Photo) (domain.CaptureResult, error) {
	if photo.Empty() {
		return domain.CaptureResult{}, domain.ErrCameraUnavailable
	}
	if err := c.acquire(domain.CaptureIDVerified, domain.CaptureCapturingFace); err != nil {
		return domain.CaptureResult{}, err
	}
	defer c.release()

	c.mu.Lock()
	c.state.Phase = domain.CaptureCapturingFace
	matchID := c.state.MatchID
	c.mu.Unlock()

	sub, err := c.statuses.Subscribe(ctx, matchID)
	if err != nil {
		c.notifier.Notify(ctx, "We could not start face verification. Please try again.")
		return domain.CaptureResult{}, &domain.DispatchError{Op: "subscribe match status", Err: err}
	}
	defer sub.Close()

	if err := c.faces.MatchFace(ctx, photo, matchID); err != nil {
		c.notifier.Notify(ctx, "We could not check your face right now. Please try again.")
		return domain.CaptureResult{}, &domain.DispatchError{Op: "match face", Err: err}
	}

	timer := time.NewTimer(c.matchLimit)
	defer timer.Stop()

	for {
		select {
		case update, ok := <-sub.Updates():
			if !ok {
				c.fail(msgFaceTimeout)
				return domain.CaptureResult{MatchID: matchID, Reason: msgFaceTimeout},
					&domain.DispatchError{Op: "wait match status", Err: errSubscriptionClosed}
			}
			if update.MatchID != "" && update.MatchID != matchID {
				continue
			}
			if update.Status != domain.MatchStatusProcessed {
				c.fail(msgFaceMismatch)
				return domain.CaptureResult{MatchID: matchID, Reason: msgFaceMismatch}, nil
			}

			c.mu.Lock()
			c.state = domain.CaptureState{Phase: domain.CaptureFaceVerified, MatchID: matchID}
			c.mu.Unlock()
			return domain.CaptureResult{Success: true, MatchID: matchID}, nil

		case <-timer.C:
			c.fail(msgFaceTimeout)
			return domain.CaptureResult{MatchID: matchID, Reason: msgFaceTimeout}, domain.ErrMatchTimeout

		case <-ctx.Done():
			c.fail(msgFaceTimeout)
			return domain.CaptureResult{MatchID: matchID, Reason: msgFaceTimeout}, fmt.Errorf("wait match status: %w", ctx.Err())
		}
	}
}

// acquire checks that the stage is in one of the allowed phases and marks it busy.
func (c *IdentityCapture) acquire(allowed ...domain.CapturePhase) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return domain.ErrCaptureInProgress
	}
	for _, p := range allowed {
		if c.state.Phase == p {
			c.busy = true
			return nil
		}
	}
	return domain.ErrStageNotActive
}

func (c *IdentityCapture) release() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

// fail keeps the current capturing phase and shows a message that expires after statusTTL.
func (c *IdentityCapture) fail(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.StatusMessage = message
	c.state.StatusExpiresAt = c.now().Add(c.statusTTL)
}

func (c *IdentityCapture) expireStatusLocked() {
	if c.state.StatusMessage != "" && !c.now().Before(c.state.StatusExpiresAt) {
		c.state.StatusMessage = ""
		c.state.StatusExpiresAt = time.Time{}
	}
}
