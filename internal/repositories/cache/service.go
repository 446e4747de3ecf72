package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"takapay/internal/models"

	"github.com/redis/go-redis/v9"
)

// Rows-per-page preference storage. The preference survives sessions but
// expires so stale choices eventually fall back to the default.
const (
	DefaultPageSize   = 10
	pageSizePrefixKey = "pref:pagesize:"
	pageSizePrefTTL   = 30 * 24 * time.Hour
	actionLockPrefix  = "lock:action:"
)

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations

func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// GenerateKey builds a namespaced cache key.
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// Wallet caching

func (s *CacheService) CacheWallet(ctx context.Context, wallet *models.Wallet) error {
	key := s.GenerateKey("wallet", "user", wallet.UserID)
	return s.Set(ctx, key, wallet)
}

func (s *CacheService) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	key := s.GenerateKey("wallet", "user", userID)
	var wallet models.Wallet
	found, err := s.Get(ctx, key, &wallet)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, redis.Nil
	}
	return &wallet, nil
}

func (s *CacheService) InvalidateWallet(ctx context.Context, userID uint) error {
	return s.Delete(ctx, s.GenerateKey("wallet", "user", userID))
}

// User caching

func (s *CacheService) InvalidateUser(ctx context.Context, userID uint) error {
	return s.Delete(ctx, s.GenerateKey("user", "id", userID))
}

// Page-size preference

// GetPageSizePreference returns the stored rows-per-page choice for a user,
// falling back to DefaultPageSize when absent, expired or invalid.
func (s *CacheService) GetPageSizePreference(ctx context.Context, userID uint) int {
	val, err := s.client.Get(ctx, pageSizePrefixKey+strconv.FormatUint(uint64(userID), 10)).Result()
	if err != nil {
		return DefaultPageSize
	}
	size, err := strconv.Atoi(val)
	if err != nil || size < 1 {
		return DefaultPageSize
	}
	return size
}

// SetPageSizePreference persists the rows-per-page choice for later sessions.
func (s *CacheService) SetPageSizePreference(ctx context.Context, userID uint, size int) error {
	if size < 1 {
		return fmt.Errorf("invalid page size: %d", size)
	}
	key := pageSizePrefixKey + strconv.FormatUint(uint64(userID), 10)
	return s.client.Set(ctx, key, strconv.Itoa(size), pageSizePrefTTL).Err()
}

// Action locks

// AcquireActionLock takes a short-lived exclusive token so at most one
// admin action (approve/reject) is in flight per subject. Returns false when
// another request already holds the lock.
func (s *CacheService) AcquireActionLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, actionLockPrefix+key, "1", ttl).Result()
}

// ReleaseActionLock releases a previously acquired action lock.
func (s *CacheService) ReleaseActionLock(ctx context.Context, key string) error {
	return s.client.Del(ctx, actionLockPrefix+key).Err()
}

// FlushAll flushes all keys from the cache
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// HealthCheck pings Redis.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
