package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/barangay-connect/backend/internal/domain"
)

const registrationSessionKeyPrefix = "registration:session:"

type registrationSessionRepository struct {
	client redis.UniversalClient
}

func newRegistrationSessionRepository(client redis.UniversalClient) *registrationSessionRepository {
	return &registrationSessionRepository{
		client: client,
	}
}

func registrationSessionKey(id uuid.UUID) string {
	return registrationSessionKeyPrefix + id.String()
}

// Save stores the snapshot and restarts its expiry.
func (r *registrationSessionRepository) Save(ctx context.Context, session *domain.RegistrationSession, ttl time.Duration) error {
	const op = "repository.registrationSession.Save"

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%s: marshal session failed: %w", op, err)
	}

	if err := r.client.Set(ctx, registrationSessionKey(session.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("%s: set session failed: %w", op, err)
	}

	return nil
}

func (r *registrationSessionRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.RegistrationSession, error) {
	const op = "repository.registrationSession.GetOneByID"

	data, err := r.client.Get(ctx, registrationSessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: get session failed: %w", op, err)
	}

	var session domain.RegistrationSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("%s: unmarshal session failed: %w", op, err)
	}

	return &session, nil
}

func (r *registrationSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "repository.registrationSession.Delete"

	if err := r.client.Del(ctx, registrationSessionKey(id)).Err(); err != nil {
		return fmt.Errorf("%s: delete session failed: %w", op, err)
	}

	return nil
}
