package api

import (
	"fmt"
	"io"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	apierrors "github.com/diogo/advicedice/internal/errors"
	"github.com/diogo/advicedice/internal/models"
)

// FetchAdvice issues one GET to the advice endpoint and returns the slip.
// There are no retries; every failure is returned as a typed error.
func (c *AdviceClient) FetchAdvice() (*models.AdviceSlip, error) {
	if c.IsClosed() {
		return nil, fmt.Errorf("client is closed")
	}

	req, err := http.NewRequest(http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, apierrors.NewNetworkError("create advice request", c.endpoint, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierrors.NewNetworkError("fetch advice", c.endpoint, err)
	}
	if resp == nil {
		return nil, apierrors.NewNetworkError("fetch advice", c.endpoint, fmt.Errorf("empty response"))
	}
	defer func() {
		if resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	c.logger.Debug("advice response",
		zap.String("endpoint", c.endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rf := apierrors.NewRequestFailedError(resp.StatusCode, c.endpoint)
		if resp.Body != nil {
			excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			rf.WithBody(string(excerpt))
		}
		return nil, rf
	}

	if resp.Body == nil {
		return nil, apierrors.NewParseError("empty response body", "")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewNetworkError("read advice body", c.endpoint, err)
	}

	return ParseAdviceResponse(body)
}

// ParseAdviceResponse extracts the slip from a GET /advice body
func ParseAdviceResponse(body []byte) (*models.AdviceSlip, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("response body is not valid JSON", "")
	}

	slip := gjson.GetBytes(body, PathSlip)
	if !slip.IsObject() {
		msg := "slip object not found in response"
		if text := gjson.GetBytes(body, PathMessageText); text.Exists() {
			msg = fmt.Sprintf("%s: %s", msg, text.String())
		}
		return nil, apierrors.NewParseError(msg, PathSlip)
	}

	id := gjson.GetBytes(body, PathID)
	if id.Type != gjson.Number {
		return nil, apierrors.NewParseError("id missing or not a number", PathID)
	}

	advice := gjson.GetBytes(body, PathAdvice)
	if advice.Type != gjson.String {
		return nil, apierrors.NewParseError("advice missing or not a string", PathAdvice)
	}

	return &models.AdviceSlip{
		ID:     int(id.Int()),
		Advice: advice.String(),
	}, nil
}
