package authgate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"trek/config"
	"trek/shared/cache"
	"trek/shared/otp"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheKeyLocalCode    = "authgate:code:"
	cacheKeyLocalProfile = "authgate:profile:"
)

// LocalProvider is a development stand-in for the hosted identity provider.
// Issued codes are bcrypt-hashed in the cache and written to the log instead
// of being emailed.
type LocalProvider struct {
	cfg   *config.Config
	cache cache.RedisCache
}

func NewLocalProvider(cfg *config.Config, c cache.RedisCache) *LocalProvider {
	return &LocalProvider{cfg: cfg, cache: c}
}

func (p *LocalProvider) IssueCode(ctx context.Context, email string, _ map[string]string) error {
	code, err := otp.Generate(p.cfg.Checkout.OTPDigits)
	if err != nil {
		return fmt.Errorf("failed to generate one-time code: %w", err)
	}

	hash, err := otp.Hash(code)
	if err != nil {
		return fmt.Errorf("failed to hash one-time code: %w", err)
	}

	key := cacheKeyLocalCode + normalize(email)
	if err := p.cache.Save(ctx, key, hash, p.cfg.Identity.CodeTTLSeconds); err != nil {
		return fmt.Errorf("failed to store one-time code: %w", err)
	}

	log.Info().Str("email", email).Str("code", code).Msg("Local identity provider issued one-time code")

	return nil
}

func (p *LocalProvider) VerifyCode(ctx context.Context, email, code string) (AuthenticatedUser, error) {
	var user AuthenticatedUser

	normalized := normalize(email)

	var hash string
	if err := p.cache.Get(ctx, cacheKeyLocalCode+normalized, &hash); err != nil {
		return user, ErrCodeRejected
	}

	if err := otp.Verify(code, hash); err != nil {
		return user, ErrCodeRejected
	}

	// Single use.
	if err := p.cache.Delete(ctx, cacheKeyLocalCode+normalized); err != nil {
		log.Error().Err(err).Msg("failed to consume local one-time code")
	}

	profile, err := p.LookupProfile(ctx, email)
	if err != nil {
		if !errors.Is(err, ErrProfileNotFound) {
			return user, fmt.Errorf("failed to look up local profile: %w", err)
		}

		profile = Profile{ID: uuid.New().String(), Email: normalized}
	}

	return AuthenticatedUser{ID: profile.ID, Email: profile.Email, Name: profile.Name}, nil
}

func (p *LocalProvider) LookupProfile(ctx context.Context, email string) (Profile, error) {
	var profile Profile

	var raw string
	if err := p.cache.Get(ctx, cacheKeyLocalProfile+normalize(email), &raw); err != nil {
		return profile, ErrProfileNotFound
	}

	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return profile, fmt.Errorf("failed to decode local profile: %w", err)
	}

	return profile, nil
}

func (p *LocalProvider) UpsertProfile(ctx context.Context, userID string, fields map[string]string) error {
	profile := Profile{
		ID:    userID,
		Email: normalize(fields["email"]),
		Name:  fields["name"],
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode local profile: %w", err)
	}

	if err := p.cache.Save(ctx, cacheKeyLocalProfile+profile.Email, string(raw), 0); err != nil {
		return fmt.Errorf("failed to store local profile: %w", err)
	}

	return nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
