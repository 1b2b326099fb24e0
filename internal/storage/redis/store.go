package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	domainErrors "github.com/polkiloo/salonbook/internal/domain/errors"
	"github.com/polkiloo/salonbook/internal/domain/model"
	"github.com/polkiloo/salonbook/internal/domain/repository"
)

const keyPrefix = "session:"

// Options configures the redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type sessionRecord struct {
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store keeps sessions in redis with a key expiry equal to the session ttl.
type Store struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

// New connects to redis and verifies the connection.
func New(ctx context.Context, opts Options, logger *slog.Logger) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	logger.Info("redis session store ready", slog.String("addr", opts.Addr))
	return NewWithClient(client, opts.TTL), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client goredis.UniversalClient, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func sessionKey(token string) string {
	return keyPrefix + token
}

func encodeSession(session model.Session) (string, error) {
	payload, err := json.Marshal(sessionRecord{UserID: session.UserID, CreatedAt: session.CreatedAt})
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

func (s *Store) Create(ctx context.Context, session model.Session) error {
	payload, err := encodeSession(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	ok, err := s.client.SetNX(ctx, sessionKey(session.Token), payload, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	if !ok {
		return domainErrors.ErrAlreadyExists
	}
	return nil
}

func (s *Store) Get(ctx context.Context, token string) (*model.Session, error) {
	payload, err := s.client.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, domainErrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var record sessionRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &model.Session{Token: token, UserID: record.UserID, CreatedAt: record.CreatedAt}, nil
}

func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op: redis evicts keys once their ttl elapses.
func (s *Store) DeleteExpired(context.Context, time.Time) (int, error) {
	return 0, nil
}

// HealthCheck pings the server.
func (s *Store) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Ping(ctx).Err()
}

// Close releases the client connections.
func (s *Store) Close() error {
	return s.client.Close()
}

var _ repository.SessionRepository = (*Store)(nil)
