package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/opentracing/opentracing-go"
	"golang.org/x/time/rate"
)

const baseURL = "https://api.bithumb.com"

// Client talks to the Bithumb REST API. Public endpoints are plain
// GETs, private ones are form-encoded POSTs signed with HMAC-SHA512.
// All calls share one token bucket so a tight polling loop cannot
// trip the exchange rate limit.
type Client struct {
	http      *http.Client
	base      string
	apiKey    string
	apiSecret string
	limiter   *rate.Limiter
}

func NewClient(apiKey, apiSecret string) *Client {
	return &Client{
		http:      &http.Client{Timeout: 10 * time.Second},
		base:      baseURL,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		limiter:   rate.NewLimiter(rate.Limit(10), 10),
	}
}

func (c *Client) getPublic(ctx context.Context, requestPath string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	span, ctx := opentracing.StartSpanFromContext(ctx, "bithumb"+requestPath)
	defer span.Finish()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+requestPath, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	rb, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(rb))
	}

	if err := sonic.Unmarshal(rb, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func (c *Client) postPrivate(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	span, ctx := opentracing.StartSpanFromContext(ctx, "bithumb"+endpoint)
	defer span.Finish()

	params.Set("endpoint", endpoint)
	encoded := params.Encode()
	nonce := strconv.FormatInt(time.Now().UnixMilli(), 10)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+endpoint, strings.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Api-Key", c.apiKey)
	req.Header.Set("Api-Sign", c.sign(endpoint, encoded, nonce))
	req.Header.Set("Api-Nonce", nonce)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	rb, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(rb))
	}

	if err := sonic.Unmarshal(rb, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// sign builds the Api-Sign header: base64 of the hex HMAC-SHA512 over
// endpoint, encoded params and nonce joined by NUL bytes.
func (c *Client) sign(endpoint, encodedParams, nonce string) string {
	msg := endpoint + "\x00" + encodedParams + "\x00" + nonce
	h := hmac.New(sha512.New, []byte(c.apiSecret))
	h.Write([]byte(msg))
	return base64.StdEncoding.EncodeToString([]byte(hex.EncodeToString(h.Sum(nil))))
}
