package authgate

//go:generate go run go.uber.org/mock/mockgen -source=./authgate.go -destination=./mocks/authgate_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"trek/config"
	"trek/infras/otel"
	"trek/shared/constant"

	"github.com/rs/zerolog/log"
)

var (
	// ErrCodeRejected is returned when the provider refuses the submitted code
	// (wrong digits, already consumed, or expired server-side).
	ErrCodeRejected = errors.New("one-time code rejected")
	// ErrProfileNotFound is returned by Lookup when no profile matches the email.
	ErrProfileNotFound = errors.New("profile not found")
)

// Profile is the provider-side identity record for an email address.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthenticatedUser is the identity yielded by a successful verification.
type AuthenticatedUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthenticatedEvent is the ambient signal payload republished on the event
// bus when the provider reports a session became authenticated (code entry or
// magic link, possibly on another instance).
type AuthenticatedEvent struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// Provider is the identity and auth collaborator: one-time credential
// issue/verify plus profile lookup and upsert.
type Provider interface {
	IssueCode(ctx context.Context, email string, metadata map[string]string) error
	VerifyCode(ctx context.Context, email, code string) (AuthenticatedUser, error)
	LookupProfile(ctx context.Context, email string) (Profile, error)
	UpsertProfile(ctx context.Context, userID string, fields map[string]string) error
}

type httpProvider struct {
	cfg    *config.Config
	otel   otel.Otel
	client *http.Client
}

// New builds the HTTP identity provider client, or the local development
// provider when IDENTITY_USE_LOCAL is set.
func New(cfg *config.Config, ot otel.Otel, local *LocalProvider) Provider {
	if cfg.Identity.UseLocal {
		log.Warn().Msg("Using local identity provider, one-time codes are logged instead of emailed")

		return local
	}

	return &httpProvider{
		cfg:  cfg,
		otel: ot,
		client: &http.Client{
			Timeout: time.Duration(cfg.Identity.TimeoutSeconds) * time.Second,
		},
	}
}

func (p *httpProvider) IssueCode(ctx context.Context, email string, metadata map[string]string) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".authgate.IssueCode")
	defer scope.End()
	defer scope.TraceIfError(err)

	body := map[string]any{"email": email, "metadata": metadata}

	var out struct{}
	if err = p.post(ctx, "/v1/credentials", body, &out); err != nil {
		log.Error().Err(err).Msg("identity provider rejected credential issue")

		return fmt.Errorf("failed to issue one-time credential: %w", err)
	}

	return nil
}

func (p *httpProvider) VerifyCode(ctx context.Context, email, code string) (user AuthenticatedUser, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".authgate.VerifyCode")
	defer scope.End()
	defer scope.TraceIfError(err)

	body := map[string]any{"email": email, "code": code}

	if err = p.post(ctx, "/v1/credentials/verify", body, &user); err != nil {
		if errors.Is(err, errUnauthorized) {
			return user, ErrCodeRejected
		}

		return user, fmt.Errorf("failed to verify one-time credential: %w", err)
	}

	return user, nil
}

func (p *httpProvider) LookupProfile(ctx context.Context, email string) (profile Profile, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".authgate.LookupProfile")
	defer scope.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.Identity.BaseURL+"/v1/profiles?email="+email, nil)
	if err != nil {
		return profile, fmt.Errorf("failed to build profile lookup request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderAPIKey, p.cfg.Identity.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return profile, fmt.Errorf("failed to look up profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return profile, ErrProfileNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return profile, fmt.Errorf("profile lookup returned status %d", resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return profile, fmt.Errorf("failed to decode profile: %w", err)
	}

	return profile, nil
}

func (p *httpProvider) UpsertProfile(ctx context.Context, userID string, fields map[string]string) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".authgate.UpsertProfile")
	defer scope.End()
	defer scope.TraceIfError(err)

	body := map[string]any{"user_id": userID, "fields": fields}

	var out struct{}
	if err = p.post(ctx, "/v1/profiles", body, &out); err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

var errUnauthorized = errors.New("unauthorized")

func (p *httpProvider) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.Identity.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	req.Header.Set(constant.RequestHeaderAPIKey, p.cfg.Identity.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errUnauthorized
	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode provider response: %w", err)
	}

	return nil
}
