package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/barangay-connect/backend/internal/domain"
	"github.com/barangay-connect/backend/pkg/logger"
)

type matchStatusService struct {
	relay MatchStatusRelay
}

func newMatchStatusService(relay MatchStatusRelay) *matchStatusService {
	return &matchStatusService{relay: relay}
}

// Publish forwards a pushed match status to whichever face capture waits for it.
func (s *matchStatusService) Publish(ctx context.Context, update domain.MatchUpdate) error {
	n, err := s.relay.Publish(ctx, update)
	if err != nil {
		return fmt.Errorf("publish match status failed: %w", err)
	}

	if n == 0 {
		logger.Debug("match status has no listener", zap.String("match_id", update.MatchID))
	}

	return nil
}
