package paygate

//go:generate go run go.uber.org/mock/mockgen -source=./paygate.go -destination=./mocks/paygate_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
	"trek/config"
	"trek/infras/otel"
	"trek/shared/constant"

	"github.com/rs/zerolog/log"
)

// ErrDeclined is returned when the gateway refuses to capture the payment.
// The draft and its pricing are untouched; the caller may retry confirmation.
var ErrDeclined = errors.New("payment declined")

// Authorization is the gateway handle for a payment sized to an exact amount.
// It is single-use: any repricing of the draft invalidates it and a fresh one
// must be created.
type Authorization struct {
	Reference    string `json:"reference"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
}

// PayerInfo identifies the paying customer to the gateway.
type PayerInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Instrument carries the confirmation details for the payment method.
type Instrument struct {
	Method string `json:"method" validate:"required"`
	Token  string `json:"token"  validate:"required"`
}

// ConfirmResult is the gateway verdict on a confirmation attempt.
type ConfirmResult struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

const (
	ConfirmStatusSucceeded = "succeeded"
	ConfirmStatusFailed    = "failed"
)

// Gateway is the payment collaborator: authorization creation and
// confirmation of the payment instrument against it.
type Gateway interface {
	CreateAuthorization(ctx context.Context, amountCents int64, currency string, payer PayerInfo) (Authorization, error)
	ConfirmAuthorization(ctx context.Context, auth Authorization, instrument Instrument) (ConfirmResult, error)
}

type httpGateway struct {
	cfg    *config.Config
	otel   otel.Otel
	client *http.Client
}

func New(cfg *config.Config, ot otel.Otel) Gateway {
	return &httpGateway{
		cfg:  cfg,
		otel: ot,
		client: &http.Client{
			Timeout: time.Duration(cfg.Payment.TimeoutSeconds) * time.Second,
		},
	}
}

func (g *httpGateway) CreateAuthorization(ctx context.Context, amountCents int64, currency string, payer PayerInfo) (auth Authorization, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".paygate.CreateAuthorization")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("payment.amount_cents", int(amountCents))
	scope.SetAttribute("payment.currency", currency)

	body := map[string]any{
		"amount":   amountCents,
		"currency": currency,
		"payer":    payer,
	}

	if err = g.post(ctx, "/v1/authorizations", body, &auth); err != nil {
		log.Error().Err(err).Int64("amount", amountCents).Msg("failed to create payment authorization")

		return auth, fmt.Errorf("failed to create payment authorization: %w", err)
	}

	auth.AmountCents = amountCents
	auth.Currency = currency

	return auth, nil
}

func (g *httpGateway) ConfirmAuthorization(ctx context.Context, auth Authorization, instrument Instrument) (res ConfirmResult, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".paygate.ConfirmAuthorization")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("payment.reference", auth.Reference)

	body := map[string]any{
		"client_secret": auth.ClientSecret,
		"instrument":    instrument,
	}

	if err = g.post(ctx, "/v1/authorizations/"+auth.Reference+"/confirm", body, &res); err != nil {
		log.Error().Err(err).Str("reference", auth.Reference).Msg("failed to confirm payment authorization")

		return res, fmt.Errorf("failed to confirm payment authorization: %w", err)
	}

	if res.Status != ConfirmStatusSucceeded {
		return res, fmt.Errorf("%w: %s", ErrDeclined, res.Reason)
	}

	return res, nil
}

func (g *httpGateway) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.Payment.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+g.cfg.Payment.SecretKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}

	return nil
}
