package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/barangay-connect/backend/internal/domain"
)

const otpCodeKeyPrefix = "otp:code:"

const (
	otpFieldCode      = "code"
	otpFieldAttempts  = "attempts"
	otpFieldCreatedAt = "created_at"
)

// incrementAttempts leaves missing or expired codes untouched.
var incrementAttempts = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return -1
end
return redis.call("HINCRBY", KEYS[1], ARGV[1], 1)
`)

type otpCodeRepository struct {
	client redis.UniversalClient
}

func newOTPCodeRepository(client redis.UniversalClient) *otpCodeRepository {
	return &otpCodeRepository{
		client: client,
	}
}

func otpCodeKey(purpose string, destination string) string {
	return otpCodeKeyPrefix + purpose + ":" + destination
}

// Save replaces any previous code for the destination and resets the attempt counter.
func (r *otpCodeRepository) Save(ctx context.Context, code *domain.OTPCode, ttl time.Duration) error {
	const op = "repository.otpCode.Save"

	key := otpCodeKey(code.Purpose, code.Destination)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			otpFieldCode, code.Code,
			otpFieldAttempts, 0,
			otpFieldCreatedAt, code.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: store code failed: %w", op, err)
	}

	return nil
}

func (r *otpCodeRepository) Get(ctx context.Context, purpose string, destination string) (*domain.OTPCode, error) {
	const op = "repository.otpCode.Get"

	values, err := r.client.HGetAll(ctx, otpCodeKey(purpose, destination)).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: get code failed: %w", op, err)
	}
	if len(values) == 0 {
		return nil, domain.ErrNotFound
	}

	attempts, err := strconv.Atoi(values[otpFieldAttempts])
	if err != nil {
		return nil, fmt.Errorf("%s: parse attempts failed: %w", op, err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, values[otpFieldCreatedAt])
	if err != nil {
		return nil, fmt.Errorf("%s: parse created at failed: %w", op, err)
	}

	return &domain.OTPCode{
		Destination: destination,
		Purpose:     purpose,
		Code:        values[otpFieldCode],
		Attempts:    attempts,
		CreatedAt:   createdAt,
	}, nil
}

// IncrementAttempts counts one verification attempt and returns the new total.
func (r *otpCodeRepository) IncrementAttempts(ctx context.Context, purpose string, destination string) (int, error) {
	const op = "repository.otpCode.IncrementAttempts"

	n, err := incrementAttempts.Run(ctx, r.client, []string{otpCodeKey(purpose, destination)}, otpFieldAttempts).Int()
	if err != nil {
		return 0, fmt.Errorf("%s: increment attempts failed: %w", op, err)
	}
	if n < 0 {
		return 0, domain.ErrNotFound
	}

	return n, nil
}

func (r *otpCodeRepository) Delete(ctx context.Context, purpose string, destination string) error {
	const op = "repository.otpCode.Delete"

	if err := r.client.Del(ctx, otpCodeKey(purpose, destination)).Err(); err != nil {
		return fmt.Errorf("%s: delete code failed: %w", op, err)
	}

	return nil
}
