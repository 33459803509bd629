package cache_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/promptmandu/prompt-marketplace/internal/cache"
	"github.com/promptmandu/prompt-marketplace/internal/config"
	"github.com/promptmandu/prompt-marketplace/internal/models"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (cache.Cache, redismock.ClientMock, *config.CacheConfig) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	cfg := &config.CacheConfig{
		DefaultTTL: 10 * time.Minute,
	}
	redisCache := cache.NewRedisCache(client, cfg)

	return redisCache, mock, cfg
}

func cachedPrompt() models.Prompt {
	return models.Prompt{
		ID:          42,
		Title:       "SEO Blog Outline",
		Description: "Generates a keyword-driven outline for long-form posts",
		Category:    "writing",
		Price:       150.0,
		Rating:      4.7,
		Popular:     true,
	}
}

func TestNewRedisCache(t *testing.T) {
	redisCache, _, _ := setup(t)
	assert.NotNil(t, redisCache, "NewRedisCache should return a non-nil Cache instance")
}

func TestGet(t *testing.T) {
	ctx := t.Context()
	promptKey := cache.Key(cache.PromptKeyPrefix, "42")
	prompt := cachedPrompt()
	jsonData, err := json.Marshal(prompt)
	require.NoError(t, err)

	t.Run("Success - Key Found", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)

		var result models.Prompt

		mock.ExpectGet(promptKey).SetVal(string(jsonData))

		// Act
		found, err := redisCache.Get(ctx, promptKey, &result)

		// Assert
		require.NoError(t, err, "Get should not return an error on success")
		assert.True(t, found, "Get should return found=true when key exists")
		assert.Equal(t, prompt, result, "Get should unmarshal the cached prompt")
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})

	t.Run("Success - Key Not Found (Cache Miss)", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)

		var result models.Prompt

		mock.ExpectGet(promptKey).SetErr(redis.Nil)

		// Act
		found, err := redisCache.Get(ctx, promptKey, &result)

		// Assert
		require.NoError(t, err, "Get should not return an error on cache miss")
		assert.False(t, found, "Get should return found=false on cache miss")
		assert.Empty(t, result, "Result should be zero value on cache miss")
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)

		var result models.Prompt

		expectedErr := errors.New("redis connection error")

		mock.ExpectGet(promptKey).SetErr(expectedErr)

		// Act
		found, err := redisCache.Get(ctx, promptKey, &result)

		// Assert
		require.Error(t, err, "Get should return an error when Redis fails")
		assert.False(t, found, "Get should return found=false on Redis error")
		assert.ErrorIs(t, err, expectedErr, "Error should wrap the original Redis error")
		assert.Contains(t, err.Error(), fmt.Sprintf("failed to get key %s from redis", promptKey), "Error message mismatch")
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})

	t.Run("Failure - Unmarshal Error", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)

		var result models.Prompt

		invalidJSON := `{"id": 42, "price": "one-fifty"}`

		mock.ExpectGet(promptKey).SetVal(invalidJSON)

		// Act
		found, err := redisCache.Get(ctx, promptKey, &result)

		// Assert
		require.Error(t, err, "Get should return an error on unmarshal failure")
		assert.False(t, found, "Get should return found=false on unmarshal error")

		var jsonErr *json.UnmarshalTypeError

		assert.ErrorAs(t, err, &jsonErr, "Error should be a json.UnmarshalTypeError")
		assert.Contains(t, err.Error(), "failed to unmarshal cache data for key "+promptKey, "Error message mismatch")
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})
}

func TestSet(t *testing.T) {
	ctx := t.Context()
	listKey := cache.Key(cache.PromptListKeyPrefix, "writing")
	prompts := []models.Prompt{cachedPrompt()}
	jsonData, err := json.Marshal(prompts)
	if err != nil {
		t.Fatalf("failed to marshal prompt list: %v", err)
	}

	t.Run("Success - With Specific TTL", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		specificTTL := 5 * time.Minute

		mock.ExpectSet(listKey, jsonData, specificTTL).SetVal("OK")

		// Act
		err := redisCache.Set(ctx, listKey, prompts, specificTTL)

		// Assert
		require.NoError(t, err, "Set should not return an error on success")
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})

	t.Run("Success - With Default TTL (ttl=0)", func(t *testing.T) {
		// Arrange
		redisCache, mock, cfg := setup(t)

		mock.ExpectSet(listKey, jsonData, cfg.DefaultTTL).SetVal("OK")

		// Act
		err := redisCache.Set(ctx, listKey, prompts, 0) // TTL <= 0 triggers default

		// Assert
		require.NoError(t, err, "Set should not return an error when using default TTL")
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})

	t.Run("Failure - Marshal Error", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		unmarshallableValue := make(chan int)

		// Act
		err := redisCache.Set(ctx, listKey, unmarshallableValue, 5*time.Minute)

		// Assert
		require.Error(t, err, "Set should return an error for unmarshallable types")
		assert.Contains(t, err.Error(), "failed to marshal value for key "+listKey, "Error message mismatch")

		var jsonErr *json.UnsupportedTypeError

		assert.ErrorAs(t, err, &jsonErr, "Error should be a json.UnsupportedTypeError")
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met (no calls expected)")
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		specificTTL := 5 * time.Minute
		expectedErr := errors.New("redis SET failed")

		mock.ExpectSet(listKey, jsonData, specificTTL).SetErr(expectedErr)

		// Act
		err := redisCache.Set(ctx, listKey, prompts, specificTTL)

		// Assert
		require.Error(t, err, "Set should return an error when Redis fails")
		assert.ErrorIs(t, err, expectedErr, "Error should wrap the original Redis error")
		assert.Contains(t, err.Error(), fmt.Sprintf("failed to set key %s in redis", listKey), "Error message mismatch")
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})
}

func TestDelete(t *testing.T) {
	ctx := t.Context()
	promptKey := cache.Key(cache.PromptKeyPrefix, "42")

	t.Run("Success", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)

		mock.ExpectDel(promptKey).SetVal(1)

		// Act
		err := redisCache.Delete(ctx, promptKey)

		// Assert
		require.NoError(t, err, "Delete should not return an error on success")
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		redisCache, mock, _ := setup(t)
		expectedErr := errors.New("redis DEL failed")

		mock.ExpectDel(promptKey).SetErr(expectedErr)

		// Act
		err := redisCache.Delete(ctx, promptKey)

		// Assert
		require.Error(t, err, "Delete should return an error when Redis fails")
		assert.ErrorIs(t, err, expectedErr, "Error should wrap the original Redis error")
		assert.Contains(t, err.Error(), fmt.Sprintf("failed to delete key %s from redis", promptKey), "Error message mismatch")
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})
}

func TestKey(t *testing.T) {
	// Arrange
	id := "123e4567-e89b-12d3-a456-426614174000"
	expectedKey := "user:123e4567-e89b-12d3-a456-426614174000"

	generatedKey := cache.Key(cache.UserKeyPrefix, id)

	assert.Equal(t, expectedKey, generatedKey, "Key function should generate the correct format")
	assert.Equal(t, "prompt:42", cache.Key(cache.PromptKeyPrefix, "42"), "Key function failed for prompt prefix")
	assert.Equal(t, "prompts:popular", cache.Key(cache.PromptListKeyPrefix, "popular"), "Key function failed for prompt list prefix")
	assert.Equal(t, ":", cache.Key("", ""), "Key function failed for empty prefix and id")
	assert.Equal(t, "prefix:", cache.Key("prefix", ""), "Key function failed for empty id")
	assert.Equal(t, ":id", cache.Key("", "id"), "Key function failed for empty prefix")
}

func TestConstants(t *testing.T) {
	assert.Equal(t, "prompt", cache.PromptKeyPrefix)
	assert.Equal(t, "prompts", cache.PromptListKeyPrefix)
	assert.Equal(t, "user", cache.UserKeyPrefix)
	assert.Equal(t, "categories", cache.CategoryKeyPrefix)
}
