//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barangay-connect/backend/internal/domain"
	"github.com/barangay-connect/backend/pkg/testutil/containers"
)

func TestOTPCodeRepository(t *testing.T) {
	rdb := containers.NewRedis(t)
	repo := newOTPCodeRepository(rdb)
	ctx := context.Background()

	_, err := repo.IncrementAttempts(ctx, "registration", "juan@example.ph")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, &domain.OTPCode{
		Destination: "juan@example.ph", Purpose: "registration", Code: "246810", CreatedAt: created,
	}, time.Minute))

	n, err := repo.IncrementAttempts(ctx, "registration", "juan@example.ph")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	code, err := repo.Get(ctx, "registration", "juan@example.ph")
	require.NoError(t, err)
	assert.Equal(t, "246810", code.Code)
	assert.Equal(t, 1, code.Attempts)
	assert.True(t, created.Equal(code.CreatedAt))

	ttl, err := rdb.TTL(ctx, otpCodeKey("registration", "juan@example.ph")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	// a new code resets the counter
	require.NoError(t, repo.Save(ctx, &domain.OTPCode{
		Destination: "juan@example.ph", Purpose: "registration", Code: "135790", CreatedAt: created,
	}, time.Minute))
	code, err = repo.Get(ctx, "registration", "juan@example.ph")
	require.NoError(t, err)
	assert.Zero(t, code.Attempts)

	require.NoError(t, repo.Delete(ctx, "registration", "juan@example.ph"))
	_, err = repo.Get(ctx, "registration", "juan@example.ph")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistrationSessionRepository(t *testing.T) {
	repo := newRegistrationSessionRepository(containers.NewRedis(t))
	ctx := context.Background()

	session := &domain.RegistrationSession{
		ID:   uuid.New(),
		Kind: domain.KindFamily,
		Form: domain.RegistrationForm{Personal: domain.PersonalInfo{FirstName: "Juan"}},
		Progress: domain.RegistrationProgress{
			CurrentStep: 3,
			Completed:   []domain.StepID{1, 2},
		},
	}

	_, err := repo.GetOneByID(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Save(ctx, session, time.Minute))
	got, err := repo.GetOneByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.Kind, got.Kind)
	assert.Equal(t, session.Progress, got.Progress)
	assert.Equal(t, "Juan", got.Form.Personal.FirstName)

	require.NoError(t, repo.Delete(ctx, session.ID))
	_, err = repo.GetOneByID(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
