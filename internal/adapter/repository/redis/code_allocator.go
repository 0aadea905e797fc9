package redis

import (
	"context"
	"fmt"

	"github.com/Dexuser/property-service/internal/platform/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// sequenceKey backs the listing-code sequence. INCR is atomic and
// monotonically increasing, so codes are globally unique and never reused.
const sequenceKey = "property:code:sequence"

// maxCode is the largest value the 6-digit code format can carry.
const maxCode = 999999

// CodeAllocator hands out zero-padded 6-digit listing codes from a Redis
// sequence.
type CodeAllocator struct {
	client *redis.Client
	logger *logger.Logger
}

// NewCodeAllocator connects to Redis and verifies the connection.
func NewCodeAllocator(address, password string, log *logger.Logger) (*CodeAllocator, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", address, err)
	}
	log.Info("Code allocator connected to Redis", zap.String("address", address))
	return &CodeAllocator{client: client, logger: log.Named("CodeAllocator")}, nil
}

// Next returns the next listing code in the sequence.
func (a *CodeAllocator) Next(ctx context.Context) (string, error) {
	n, err := a.client.Incr(ctx, sequenceKey).Result()
	if err != nil {
		a.logger.Error("Failed to advance code sequence", zap.Error(err))
		return "", fmt.Errorf("failed to allocate listing code: %w", err)
	}
	code, err := formatCode(n)
	if err != nil {
		a.logger.Error("Code sequence exhausted", zap.Int64("sequence", n))
		return "", err
	}
	a.logger.Debug("Allocated listing code", zap.String("code", code))
	return code, nil
}

// formatCode renders a sequence value as a zero-padded 6-digit code. Values
// past the format's capacity are an error, never a 7-digit string the code
// column would reject.
func formatCode(n int64) (string, error) {
	if n < 1 || n > maxCode {
		return "", fmt.Errorf("listing code sequence exhausted: %d exceeds %d", n, maxCode)
	}
	return fmt.Sprintf("%06d", n), nil
}

// Close releases the Redis connection.
func (a *CodeAllocator) Close() error {
	return a.client.Close()
}
