package registration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/barangay-connect/backend/internal/domain"
)

var testPhoto = domain.Photo{Data: []byte{0xff, 0xd8, 0xff}, ContentType: "image/jpeg"}

type captureFixture struct {
	capture   *IdentityCapture
	documents *documentMatcherMock
	matching  *fakeMatching
	log       *callLog
	now       time.Time
}

func newCaptureFixture(t *testing.T, opts ...CaptureOption) *captureFixture {
	t.Helper()
	form := NewFormStore(nil)
	form.Restore(validForm())

	f := &captureFixture{
		documents: new(documentMatcherMock),
		log:       &callLog{},
		now:       time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	f.matching = &fakeMatching{log: f.log}
	opts = append([]CaptureOption{
		WithFaceMatchTimeout(50 * time.Millisecond),
		withCaptureClock(func() time.Time { return f.now }),
	}, opts...)
	f.capture = NewIdentityCapture(form, f.documents, f.matching, f.matching, opts...)
	return f
}

func (f *captureFixture) verifyID(t *testing.T) {
	t.Helper()
	f.documents.On("MatchDocument", mock.Anything, testPhoto, mock.Anything).Return("match-1", nil).Once()
	res, err := f.capture.CaptureID(context.Background(), testPhoto)
	require.NoError(t, err)
	require.True(t, res.Success)
}

func TestIdentityCapture_IDMatchUsesPersonalInfo(t *testing.T) {
	f := newCaptureFixture(t)
	subject := domain.DocumentSubject{FirstName: "Juan", LastName: "Dela Cruz", BirthDate: "1990-04-12"}
	f.documents.On("MatchDocument", mock.Anything, testPhoto, subject).Return("match-1", nil)

	res, err := f.capture.CaptureID(context.Background(), testPhoto)

	require.NoError(t, err)
	assert.Equal(t, domain.CaptureResult{Success: true, MatchID: "match-1"}, res)
	assert.Equal(t, domain.CaptureIDVerified, f.capture.Phase())
	assert.Equal(t, "match-1", f.capture.State().MatchID)
}

func TestIdentityCapture_IDMismatchStatusExpires(t *testing.T) {
	f := newCaptureFixture(t, WithCaptureStatusTTL(3*time.Second))
	f.documents.On("MatchDocument", mock.Anything, testPhoto, mock.Anything).Return("", nil)

	res, err := f.capture.CaptureID(context.Background(), testPhoto)

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Reason)
	assert.Equal(t, domain.CaptureCapturingID, f.capture.Phase())
	assert.Equal(t, res.Reason, f.capture.State().StatusMessage)

	f.now = f.now.Add(3 * time.Second)
	assert.Empty(t, f.capture.State().StatusMessage)
}

func TestIdentityCapture_EmptyPhoto(t *testing.T) {
	f := newCaptureFixture(t)

	_, err := f.capture.CaptureID(context.Background(), domain.Photo{})

	assert.ErrorIs(t, err, domain.ErrCameraUnavailable)
	assert.Equal(t, domain.CaptureIdle, f.capture.Phase())
	f.documents.AssertNotCalled(t, "MatchDocument", mock.Anything, mock.Anything, mock.Anything)
}

func TestIdentityCapture_FaceBeforeIDIsRejected(t *testing.T) {
	f := newCaptureFixture(t)

	_, err := f.capture.CaptureFace(context.Background(), testPhoto)

	assert.ErrorIs(t, err, domain.ErrStageNotActive)
	assert.Empty(t, f.log.list())
}

func TestIdentityCapture_FaceProcessed(t *testing.T) {
	f := newCaptureFixture(t)
	f.verifyID(t)
	f.matching.reply = &domain.MatchUpdate{MatchID: "match-1", Status: domain.MatchStatusProcessed}

	res, err := f.capture.CaptureFace(context.Background(), testPhoto)

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, domain.CaptureFaceVerified, f.capture.Phase())
	assert.Equal(t, []string{"subscribe:match-1", "match_face:match-1"}, f.log.list())
	assert.True(t, f.matching.sub.closed.Load())
}

func TestIdentityCapture_FaceRejected(t *testing.T) {
	f := newCaptureFixture(t)
	f.verifyID(t)
	f.matching.reply = &domain.MatchUpdate{MatchID: "match-1", Status: domain.MatchStatusRejected}

	res, err := f.capture.CaptureFace(context.Background(), testPhoto)

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, domain.CaptureCapturingFace, f.capture.Phase())
	assert.True(t, f.matching.sub.closed.Load())
}

func TestIdentityCapture_FaceTimeoutClosesSubscription(t *testing.T) {
	f := newCaptureFixture(t)
	f.verifyID(t)

	start := time.Now()
	res, err := f.capture.CaptureFace(context.Background(), testPhoto)

	assert.ErrorIs(t, err, domain.ErrMatchTimeout)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	assert.False(t, res.Success)
	assert.Equal(t, domain.CaptureCapturingFace, f.capture.Phase())
	assert.NotEmpty(t, f.capture.State().StatusMessage)
	assert.True(t, f.matching.sub.closed.Load())

	// retries are unlimited
	f.matching.reply = &domain.MatchUpdate{MatchID: "match-1", Status: domain.MatchStatusProcessed}
	res, err = f.capture.CaptureFace(context.Background(), testPhoto)
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestIdentityCapture_FaceIgnoresOtherMatches(t *testing.T) {
	f := newCaptureFixture(t)
	f.verifyID(t)
	f.matching.reply = &domain.MatchUpdate{MatchID: "match-2", Status: domain.MatchStatusProcessed}

	_, err := f.capture.CaptureFace(context.Background(), testPhoto)

	assert.ErrorIs(t, err, domain.ErrMatchTimeout)
}

func TestIdentityCapture_FaceContextCancelled(t *testing.T) {
	f := newCaptureFixture(t, WithFaceMatchTimeout(time.Minute))
	f.verifyID(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.capture.CaptureFace(ctx, testPhoto)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, f.matching.sub.closed.Load())
}

func TestIdentityCapture_FaceTransportErrors(t *testing.T) {
	t.Run("subscribe", func(t *testing.T) {
		f := newCaptureFixture(t)
		f.verifyID(t)
		f.matching.subscribeErr = errors.New("redis down")

		_, err := f.capture.CaptureFace(context.Background(), testPhoto)

		assert.ErrorIs(t, err, domain.ErrDispatch)
		assert.Equal(t, []string{"subscribe:match-1"}, f.log.list())
	})

	t.Run("match face", func(t *testing.T) {
		f := newCaptureFixture(t)
		f.verifyID(t)
		f.matching.faceErr = errors.New("bad gateway")

		_, err := f.capture.CaptureFace(context.Background(), testPhoto)

		assert.ErrorIs(t, err, domain.ErrDispatch)
		assert.True(t, f.matching.sub.closed.Load())
	})

	t.Run("updates closed", func(t *testing.T) {
		f := newCaptureFixture(t)
		f.verifyID(t)
		f.matching.closeUpdates = true

		_, err := f.capture.CaptureFace(context.Background(), testPhoto)

		assert.ErrorIs(t, err, domain.ErrDispatch)
		assert.Equal(t, domain.CaptureCapturingFace, f.capture.Phase())
	})
}

func TestIdentityCapture_OverlappingAttempts(t *testing.T) {
	f := newCaptureFixture(t)
	started := make(chan struct{})
	release := make(chan struct{})
	f.documents.On("MatchDocument", mock.Anything, testPhoto, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return("match-1", nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := f.capture.CaptureID(context.Background(), testPhoto)
		done <- err
	}()

	<-started
	_, err := f.capture.CaptureID(context.Background(), testPhoto)
	assert.ErrorIs(t, err, domain.ErrCaptureInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, domain.CaptureIDVerified, f.capture.Phase())
}
