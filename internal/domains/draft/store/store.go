package store

//go:generate go run go.uber.org/mock/mockgen -source=./store.go -destination=../mocks/store_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"trek/config"
	"trek/infras/otel"
	"trek/internal/domains/draft/model"
	"trek/shared"
	"trek/shared/cache"
	"trek/shared/constant"
	"trek/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	keySlot  = "checkout:slot"
	keyEmail = "checkout:email"
	keyClaim = "checkout:claim"
)

// ErrNotFound is returned by Load when no envelope exists for the session.
var ErrNotFound = errors.New("checkout session not found")

// Store is the single-slot envelope persistence for checkout sessions, plus
// the email index that routes ambient authentication signals and the one-shot
// transition claims that make redundant signals no-ops.
type Store interface {
	Save(ctx context.Context, env model.Envelope) error
	Load(ctx context.Context, sessionID string) (model.Envelope, error)
	Clear(ctx context.Context, sessionID string) error
	IndexEmail(ctx context.Context, email, sessionID string) error
	SessionByEmail(ctx context.Context, email string) (string, error)
	DropEmail(ctx context.Context, email string) error
	// ClaimTransition atomically claims a named once-only transition for the
	// session. The first caller gets true; every later caller gets false.
	ClaimTransition(ctx context.Context, sessionID, name string) (bool, error)
}

type redisStore struct {
	cache cache.RedisCache
	cfg   *config.Config
	otel  otel.Otel
}

func New(cache cache.RedisCache, cfg *config.Config, otel otel.Otel) Store {
	return &redisStore{
		cache: cache,
		cfg:   cfg,
		otel:  otel,
	}
}

func (s *redisStore) Save(ctx context.Context, env model.Envelope) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".draft.Save")
	defer scope.End()
	defer scope.TraceIfError(err)

	env.UpdatedAt = timezone.Now()

	ttl := s.cfg.Checkout.DraftTTLSeconds
	if env.State == model.StateDone {
		ttl = s.cfg.Checkout.DoneTTLSeconds
	}

	if err = s.cache.Save(ctx, shared.BuildCacheKey(keySlot, env.SessionID), env, ttl); err != nil {
		log.Error().Err(err).Str("session", env.SessionID).Msg("failed to save checkout envelope")

		return fmt.Errorf("failed to save checkout envelope: %w", err)
	}

	return nil
}

func (s *redisStore) Load(ctx context.Context, sessionID string) (env model.Envelope, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".draft.Load")
	defer scope.End()

	err = s.cache.Get(ctx, shared.BuildCacheKey(keySlot, sessionID), &env)
	if err != nil {
		if errors.Is(err, cache.Nil) {
			return env, ErrNotFound
		}

		scope.TraceError(err)

		return env, fmt.Errorf("failed to load checkout envelope: %w", err)
	}

	return env, nil
}

func (s *redisStore) Clear(ctx context.Context, sessionID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".draft.Clear")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.cache.Delete(ctx, shared.BuildCacheKey(keySlot, sessionID)); err != nil {
		return fmt.Errorf("failed to clear checkout envelope: %w", err)
	}

	return nil
}

func (s *redisStore) IndexEmail(ctx context.Context, email, sessionID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".draft.IndexEmail")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.cache.Save(ctx, shared.BuildCacheKey(keyEmail, normalizeEmail(email)), sessionID, s.cfg.Checkout.DraftTTLSeconds); err != nil {
		return fmt.Errorf("failed to index checkout email: %w", err)
	}

	return nil
}

func (s *redisStore) SessionByEmail(ctx context.Context, email string) (sessionID string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".draft.SessionByEmail")
	defer scope.End()

	err = s.cache.Get(ctx, shared.BuildCacheKey(keyEmail, normalizeEmail(email)), &sessionID)
	if err != nil {
		if errors.Is(err, cache.Nil) {
			return "", ErrNotFound
		}

		scope.TraceError(err)

		return "", fmt.Errorf("failed to resolve checkout session by email: %w", err)
	}

	return sessionID, nil
}

func (s *redisStore) DropEmail(ctx context.Context, email string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".draft.DropEmail")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.cache.Delete(ctx, shared.BuildCacheKey(keyEmail, normalizeEmail(email))); err != nil {
		return fmt.Errorf("failed to drop checkout email index: %w", err)
	}

	return nil
}

func (s *redisStore) ClaimTransition(ctx context.Context, sessionID, name string) (claimed bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".draft.ClaimTransition")
	defer scope.End()
	defer scope.TraceIfError(err)

	claimed, err = s.cache.SaveNX(ctx, shared.BuildCacheKey(keyClaim, sessionID, name), timezone.Now(), s.cfg.Checkout.ClaimTTLSeconds)
	if err != nil {
		return false, fmt.Errorf("failed to claim checkout transition: %w", err)
	}

	return claimed, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
