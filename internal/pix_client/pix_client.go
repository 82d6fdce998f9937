package pix_client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gw-eternal-pay/internal/custom_err"
	"gw-eternal-pay/internal/models"
)

const maxBodySize = 1 << 20

type BRCodeGenerator interface {
	GenerateBRCode(ctx context.Context, req models.BRCodeRequest) (json.RawMessage, error)
}

type HTTPPixClient struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

func NewPixClient(baseURL string, timeout time.Duration, log *slog.Logger) *HTTPPixClient {
	return &HTTPPixClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// GenerateBRCode возвращает JSON генератора как есть; сумма передаётся с двумя знаками после запятой.
func (c *HTTPPixClient) GenerateBRCode(ctx context.Context, r models.BRCodeRequest) (json.RawMessage, error) {
	const op = "pix_client.GenerateBRCode"

	params := url.Values{}
	params.Set("nome", r.Name)
	params.Set("cidade", r.City)
	params.Set("valor", r.Amount.StringFixed(2))
	params.Set("chave", r.Key)
	params.Set("txid", r.Reference)
	params.Set("saida", "br")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, custom_err.ErrGateway, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w: %w", op, custom_err.ErrGateway, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("генератор pix вернул ошибку",
			slog.String("op", op),
			slog.Int("status", resp.StatusCode),
			slog.String("txid", r.Reference))
		return nil, fmt.Errorf("%s: status %d: %s: %w", op, resp.StatusCode, strings.TrimSpace(string(body)), custom_err.ErrGateway)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%s: response is not valid JSON: %w", op, custom_err.ErrGateway)
	}

	return json.RawMessage(body), nil
}
