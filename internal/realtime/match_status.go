package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/barangay-connect/backend/internal/domain"
	"github.com/barangay-connect/backend/internal/registration"
	"github.com/barangay-connect/backend/pkg/logger"
)

const matchStatusChannelPrefix = "match:status:"

func matchStatusChannel(matchID string) string {
	return matchStatusChannelPrefix + matchID
}

// MatchStatus relays match status updates over redis pub/sub, one channel per match id.
type MatchStatus struct {
	rdb redis.UniversalClient
}

func NewMatchStatus(rdb redis.UniversalClient) *MatchStatus {
	return &MatchStatus{rdb: rdb}
}

// Publish returns the number of listeners that received the update.
func (m *MatchStatus) Publish(ctx context.Context, update domain.MatchUpdate) (int64, error) {
	const op = "realtime.MatchStatus.Publish"

	payload, err := json.Marshal(update)
	if err != nil {
		return 0, fmt.Errorf("%s: marshal update: %w", op, err)
	}

	n, err := m.rdb.Publish(ctx, matchStatusChannel(update.MatchID), payload).Result()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// Subscribe waits for redis to confirm the subscription before returning.
func (m *MatchStatus) Subscribe(ctx context.Context, matchID string) (registration.Subscription, error) {
	const op = "realtime.MatchStatus.Subscribe"

	pubsub := m.rdb.Subscribe(ctx, matchStatusChannel(matchID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := &subscription{
		pubsub:  pubsub,
		updates: make(chan domain.MatchUpdate, 1),
		done:    make(chan struct{}),
	}
	s.wg.Add(1)
	go s.listen(pubsub.Channel())

	return s, nil
}

type subscription struct {
	pubsub   *redis.PubSub
	updates  chan domain.MatchUpdate
	done     chan struct{}
	once     sync.Once
	closeErr error
	wg       sync.WaitGroup
}

func (s *subscription) Updates() <-chan domain.MatchUpdate {
	return s.updates
}

// Close stops the listener and waits for it to exit. It is safe to call more than once.
func (s *subscription) Close() error {
	s.once.Do(func() {
		close(s.done)
		s.closeErr = s.pubsub.Close()
		s.wg.Wait()
	})
	return s.closeErr
}

func (s *subscription) listen(ch <-chan *redis.Message) {
	defer s.wg.Done()
	defer close(s.updates)

	for {
		select {
		case <-s.done:
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var update domain.MatchUpdate
			if err := json.Unmarshal([]byte(msg.Payload), &update); err != nil {
				logger.Warn("failed to decode match status", zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}

			select {
			case s.updates <- update:
			case <-s.done:
				return
			}
		}
	}
}
