//go:build integration

package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barangay-connect/backend/internal/domain"
	"github.com/barangay-connect/backend/pkg/testutil/containers"
)

func TestMatchStatus_PublishReachesSubscriber(t *testing.T) {
	ms := NewMatchStatus(containers.NewRedis(t))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub, err := ms.Subscribe(ctx, "match-1")
	require.NoError(t, err)
	defer sub.Close()

	// the subscription is live once Subscribe returns
	n, err := ms.Publish(ctx, domain.MatchUpdate{MatchID: "match-1", Status: domain.MatchStatusProcessed})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = ms.Publish(ctx, domain.MatchUpdate{MatchID: "match-2", Status: domain.MatchStatusRejected})
	require.NoError(t, err)

	select {
	case u := <-sub.Updates():
		assert.Equal(t, domain.MatchUpdate{MatchID: "match-1", Status: domain.MatchStatusProcessed}, u)
	case <-ctx.Done():
		t.Fatal("no update received")
	}
}

func TestMatchStatus_CloseStopsListener(t *testing.T) {
	ms := NewMatchStatus(containers.NewRedis(t))
	ctx := context.Background()

	sub, err := ms.Subscribe(ctx, "match-1")
	require.NoError(t, err)

	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())

	_, ok := <-sub.Updates()
	assert.False(t, ok)

	n, err := ms.Publish(ctx, domain.MatchUpdate{MatchID: "match-1", Status: domain.MatchStatusProcessed})
	require.NoError(t, err)
	assert.Zero(t, n)
}
