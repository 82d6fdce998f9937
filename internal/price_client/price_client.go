package price_client

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

	"github.com/shopspring/decimal"
)

type PriceFetcher interface {
	FetchPrice(ctx context.Context, base, quote string) (decimal.Decimal, error)
}

type priceResponse struct {
	Price *decimal.Decimal `json:"price"`
}

type HTTPPriceClient struct {
	baseURL    string
	exchange   string
	httpClient *http.Client
	log        *slog.Logger
}

func NewPriceClient(baseURL, exchange string, timeout time.Duration, log *slog.Logger) *HTTPPriceClient {
	return &HTTPPriceClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		exchange:   exchange,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// FetchPrice вызывает GET {base}/price/{base}/quote/{quote}/exchange/{exchange} и ожидает {"price": n}.
func (c *HTTPPriceClient) FetchPrice(ctx context.Context, base, quote string) (decimal.Decimal, error) {
	const op = "price_client.FetchPrice"

	endpoint := fmt.Sprintf("%s/price/%s/quote/%s/exchange/%s",
		c.baseURL, url.PathEscape(base), url.PathEscape(quote), url.PathEscape(c.exchange))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %s/%s: %w: %w", op, base, quote, custom_err.ErrGateway, err)
	}
	defer resp.Body.Close()

	if duration := time.Since(start); duration > time.Second {
		c.log.Warn("медленный ответ сервиса котировок",
			slog.String("op", op),
			slog.String("base", base),
			slog.String("quote", quote),
			slog.Duration("duration", duration))
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return decimal.Zero, fmt.Errorf("%s: %s/%s: status %d: %s: %w",
			op, base, quote, resp.StatusCode, strings.TrimSpace(string(body)), custom_err.ErrGateway)
	}

	var pr priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return decimal.Zero, fmt.Errorf("%s: decode: %w: %w", op, custom_err.ErrGateway, err)
	}
	if pr.Price == nil || !pr.Price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%s: %s/%s: non-positive or missing price: %w", op, base, quote, custom_err.ErrGateway)
	}

	c.log.Debug("получена котировка",
		slog.String("base", base),
		slog.String("quote", quote),
		slog.String("price", pr.Price.String()))

	return *pr.Price, nil
}
