package cache

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr         string
	Password     string
	UsersHashKey string
	ListTTL      time.Duration
}

type ValkeyClient struct {
	client       *redis.Client
	usersHashKey string
	listTTL      time.Duration
}

func NewValkeyClient(cfg Config) (*ValkeyClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	return &ValkeyClient{
		client:       rdb,
		usersHashKey: cfg.UsersHashKey,
		listTTL:      cfg.ListTTL,
	}, nil
}

// GetIdentityByAuth looks up a pre-hashed credential pair in the users
// auth hash. The hash field is base64("email:sha256(password)"), the
// value is "<user_id>" or "<user_id>:staff" for staff accounts.
func (v *ValkeyClient) GetIdentityByAuth(ctx context.Context, email, passwordHash string) (int64, bool, error) {
	authString := fmt.Sprintf("%s:%s", email, passwordHash)
	cacheKey := base64.StdEncoding.EncodeToString([]byte(authString))

	value, err := v.client.HGet(ctx, v.usersHashKey, cacheKey).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, false, fmt.Errorf("user not found in cache")
		}
		return 0, false, fmt.Errorf("cache lookup error: %w", err)
	}

	idPart, flagPart, _ := strings.Cut(value, ":")
	var userID int64
	if _, err := fmt.Sscanf(idPart, "%d", &userID); err != nil {
		return 0, false, fmt.Errorf("invalid user ID in cache: %w", err)
	}

	return userID, flagPart == "staff", nil
}

// SetIdentity stores a verified credential pair so the next request
// skips the database lookup.
func (v *ValkeyClient) SetIdentity(ctx context.Context, email, passwordHash string, userID int64, isStaff bool) {
	authString := fmt.Sprintf("%s:%s", email, passwordHash)
	cacheKey := base64.StdEncoding.EncodeToString([]byte(authString))

	value := fmt.Sprintf("%d", userID)
	if isStaff {
		value += ":staff"
	}

	v.client.HSet(ctx, v.usersHashKey, cacheKey, value)
}

func eventsListKey(page, pageSize int) string {
	return fmt.Sprintf("events:list:%d:%d", page, pageSize)
}

// GetEventsListRaw returns the cached events page as raw JSON to avoid
// an unmarshal/marshal round trip on the hot path.
func (v *ValkeyClient) GetEventsListRaw(ctx context.Context, page, pageSize int) ([]byte, error) {
	data, err := v.client.Get(ctx, eventsListKey(page, pageSize)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("events list not in cache")
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}
	return data, nil
}

// SetEventsList caches an events page with the configured TTL.
// Best effort: a cache write failure is ignored.
func (v *ValkeyClient) SetEventsList(ctx context.Context, page, pageSize int, list interface{}) {
	data, err := json.Marshal(list)
	if err != nil {
		return
	}
	v.client.Set(ctx, eventsListKey(page, pageSize), data, v.listTTL)
}

// InvalidateEventsLists drops all cached event pages after a mutation.
func (v *ValkeyClient) InvalidateEventsLists(ctx context.Context) {
	iter := v.client.Scan(ctx, 0, "events:list:*", 100).Iterator()
	for iter.Next(ctx) {
		v.client.Del(ctx, iter.Val())
	}
}

func (v *ValkeyClient) Close() error {
	return v.client.Close()
}
