package repository_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/promptmandu/prompt-marketplace/internal/config"
	repository "github.com/promptmandu/prompt-marketplace/internal/repositories"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func setupRateLimitTest(t *testing.T) (repository.RateLimitRepository, redismock.ClientMock, *config.Config) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	cfg := &config.Config{
		RateConfig: config.RateConfig{
			MaxAttempts: 5,
			WindowSize:  time.Minute,
		},
	}

	repo := repository.NewRateLimitRepo(client, cfg)

	return repo, mock, cfg
}

func TestCheckLoginRateLimit(t *testing.T) {
	ctx := t.Context()
	username := "asha@example.com"
	key := fmt.Sprintf("login_attempts:%s", username)

	t.Run("Success - Under The Limit", func(t *testing.T) {
		// Arrange
		repo, mock, cfg := setupRateLimitTest(t)

		now := time.Now().Unix()
		windowStart := now - int64(cfg.RateConfig.WindowSize.Seconds())

		mock.ExpectZRemRangeByScore(key, "0", fmt.Sprintf("%d", windowStart)).SetVal(0)
		mock.ExpectZAdd(key, redis.Z{Score: float64(now), Member: now}).SetVal(1)
		mock.ExpectZCard(key).SetVal(2)
		mock.ExpectExpire(key, cfg.RateConfig.WindowSize).SetVal(true)

		// Act
		allowed, remaining, retryAfter, err := repo.CheckLoginRateLimit(ctx, username)

		// Assert
		assert.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 3, remaining)
		assert.Equal(t, 0, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Limit Exceeded", func(t *testing.T) {
		// Arrange: the window holds the maximum number of attempts; the
		// retry hint comes from the oldest attempt still in the window.
		repo, mock, cfg := setupRateLimitTest(t)

		now := time.Now().Unix()
		windowStart := now - int64(cfg.RateConfig.WindowSize.Seconds())
		oldest := now - 30

		mock.ExpectZRemRangeByScore(key, "0", fmt.Sprintf("%d", windowStart)).SetVal(1)
		mock.ExpectZAdd(key, redis.Z{Score: float64(now), Member: now}).SetVal(1)
		mock.ExpectZCard(key).SetVal(5)
		mock.ExpectExpire(key, cfg.RateConfig.WindowSize).SetVal(true)
		mock.ExpectZRangeArgsWithScores(redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).
			SetVal([]redis.Z{{Score: float64(oldest), Member: oldest}})

		// Act
		allowed, remaining, retryAfter, err := repo.CheckLoginRateLimit(ctx, username)

		// Assert
		assert.NoError(t, err)
		assert.False(t, allowed)
		assert.Equal(t, 0, remaining)
		assert.Equal(t, 30, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Pipeline Error", func(t *testing.T) {
		// Arrange
		repo, mock, cfg := setupRateLimitTest(t)

		now := time.Now().Unix()
		windowStart := now - int64(cfg.RateConfig.WindowSize.Seconds())
		redisErr := errors.New("redis connection refused")

		mock.ExpectZRemRangeByScore(key, "0", fmt.Sprintf("%d", windowStart)).SetVal(0)
		mock.ExpectZAdd(key, redis.Z{Score: float64(now), Member: now}).SetVal(1)
		mock.ExpectZCard(key).SetErr(redisErr)
		mock.ExpectExpire(key, cfg.RateConfig.WindowSize).SetVal(true)

		// Act
		allowed, _, _, err := repo.CheckLoginRateLimit(ctx, username)

		// Assert
		assert.Error(t, err)
		assert.False(t, allowed)
		assert.ErrorIs(t, err, redisErr)
	})
}
