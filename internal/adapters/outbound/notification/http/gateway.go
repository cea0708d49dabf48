package http

import (
	"bytes"
	"context"
	"crypto/hmac"
	cryptorand "crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	nethttp "net/http"
	"strconv"
	"strings"
	"time"

	"payoutd/internal/application/dto"
	portsout "payoutd/internal/application/ports/out"
	apperrors "payoutd/internal/shared_kernel/errors"
)

const (
	defaultHTTPTimeout = 5 * time.Second
	maxErrorBodyBytes  = 1024
	nonceByteLength    = 16
)

type Config struct {
	WebhookURL string
	HMACSecret string
	Timeout    time.Duration
}

// Gateway delivers operator alerts to a webhook endpoint. Each delivery is
// signed so the receiver can reject forged alerts.
type Gateway struct {
	webhookURL string
	hmacSecret string
	client     *nethttp.Client
	logger     *log.Logger
}

var _ portsout.NotificationSink = (*Gateway)(nil)

func NewGateway(cfg Config, logger *log.Logger) *Gateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	return &Gateway{
		webhookURL: strings.TrimSpace(cfg.WebhookURL),
		hmacSecret: strings.TrimSpace(cfg.HMACSecret),
		client:     &nethttp.Client{Timeout: timeout},
		logger:     logger,
	}
}

type alertPayload struct {
	AlertID  string         `json:"alert_id"`
	Subject  string         `json:"subject"`
	Message  string         `json:"message"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (g *Gateway) SendOperatorAlert(
	ctx context.Context,
	input dto.OperatorAlertInput,
) (dto.OperatorAlertOutput, *apperrors.AppError) {
	if g == nil || g.client == nil {
		return dto.OperatorAlertOutput{}, apperrors.NewInternal(
			"alert_gateway_not_configured",
			"alert gateway is not configured",
			nil,
		)
	}
	if g.webhookURL == "" {
		return dto.OperatorAlertOutput{}, apperrors.NewInternal(
			"alert_webhook_url_missing",
			"alert webhook url is missing",
			nil,
		)
	}
	if g.hmacSecret == "" {
		return dto.OperatorAlertOutput{}, apperrors.NewInternal(
			"alert_hmac_secret_missing",
			"alert hmac secret is missing",
			nil,
		)
	}

	alertID := strings.TrimSpace(input.AlertID)
	if alertID == "" {
		return dto.OperatorAlertOutput{}, apperrors.NewValidation(
			"alert_id_missing",
			"alert id is required",
			nil,
		)
	}

	body, err := json.Marshal(alertPayload{
		AlertID:  alertID,
		Subject:  input.Subject,
		Message:  input.Message,
		Metadata: input.Metadata,
	})
	if err != nil {
		return dto.OperatorAlertOutput{}, apperrors.NewInternal(
			"alert_payload_encode_failed",
			"failed to encode alert payload",
			map[string]any{"error": err.Error(), "alert_id": alertID},
		)
	}

	timestamp := strconv.FormatInt(time.Now().UTC().Unix(), 10)
	nonce, nonceErr := alertNonce()
	if nonceErr != nil {
		return dto.OperatorAlertOutput{}, apperrors.NewInternal(
			"alert_nonce_generation_failed",
			"failed to generate alert nonce",
			map[string]any{"error": nonceErr.Error()},
		)
	}
	signature := alertSignature(g.hmacSecret, timestamp, nonce, alertID, body)

	request, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodPost, g.webhookURL, bytes.NewReader(body))
	if err != nil {
		return dto.OperatorAlertOutput{}, apperrors.NewInternal(
			"alert_request_build_failed",
			"failed to build alert request",
			map[string]any{"error": err.Error()},
		)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("X-Payoutd-Alert-Id", alertID)
	request.Header.Set("Idempotency-Key", alertID)
	request.Header.Set("X-Payoutd-Timestamp", timestamp)
	request.Header.Set("X-Payoutd-Nonce", nonce)
	request.Header.Set("X-Payoutd-Signature", "sha256="+signature)

	response, err := g.client.Do(request)
	if err != nil {
		return dto.OperatorAlertOutput{}, apperrors.NewBackend(
			"alert_delivery_failed",
			"failed to send alert request",
			map[string]any{"error": err.Error(), "alert_id": alertID},
		)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		bodyPreview := ""
		raw, readErr := io.ReadAll(io.LimitReader(response.Body, maxErrorBodyBytes))
		if readErr == nil {
			bodyPreview = strings.TrimSpace(string(raw))
		}
		return dto.OperatorAlertOutput{StatusCode: response.StatusCode}, apperrors.NewBackend(
			"alert_delivery_failed",
			"alert endpoint returned non-2xx status",
			map[string]any{
				"status_code": response.StatusCode,
				"body":        bodyPreview,
				"alert_id":    alertID,
			},
		)
	}

	if g.logger != nil {
		g.logger.Printf("operator alert delivered alert_id=%s status_code=%d", alertID, response.StatusCode)
	}

	return dto.OperatorAlertOutput{StatusCode: response.StatusCode}, nil
}

func alertNonce() (string, error) {
	raw := make([]byte, nonceByteLength)
	if _, err := cryptorand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

func alertSignature(secret string, timestamp string, nonce string, alertID string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(timestamp))
	_, _ = mac.Write([]byte("."))
	_, _ = mac.Write([]byte(nonce))
	_, _ = mac.Write([]byte("."))
	_, _ = mac.Write([]byte(alertID))
	_, _ = mac.Write([]byte("."))
	_, _ = mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// BuildExpectedSignatureHeader recomputes the delivery signature; receivers
// use it to verify inbound alerts.
func BuildExpectedSignatureHeader(secret string, timestamp string, nonce string, alertID string, body []byte) string {
	return "sha256=" + alertSignature(secret, timestamp, nonce, alertID, body)
}
