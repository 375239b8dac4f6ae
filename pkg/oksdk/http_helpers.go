package oksdk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/okapi/pkg/slogx"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 10 << 20

// url builds a complete URL by appending the path to the API server.
func (c *SDKClient) url(path string) string {
	return c.Config.APIServer + path
}

// doRequest performs one HTTP round trip. GET requests carry params as the
// query string, POST requests as a form body. Transport-level problems come
// back as *TransportError; the status code is left for the caller to judge.
func (c *SDKClient) doRequest(
	ctx context.Context,
	method, path string,
	params url.Values,
) (int, []byte, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return 0, nil, &TransportError{Cause: fmt.Errorf("rate limiter: %w", err)}
		}
	}

	target := c.url(path)
	var body io.Reader
	if method == http.MethodGet {
		if len(params) > 0 {
			target += "?" + params.Encode()
		}
	} else {
		body = strings.NewReader(params.Encode())
	}

	ctx = slogx.WithContext(ctx, c.logger())
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return 0, nil, &TransportError{Cause: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Cause: fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return resp.StatusCode, nil, &TransportError{
			StatusCode: resp.StatusCode,
			Cause:      fmt.Errorf("failed to read response body: %w", err),
		}
	}

	return resp.StatusCode, bodyBytes, nil
}

// classifyAPIResponse turns an API answer into a Response or a typed error.
// The error_code envelope wins over the HTTP status because it is the more
// specific of the two.
func classifyAPIResponse(statusCode int, body []byte) (*Response, error) {
	resp, decodeErr := parseResponse(body)
	if decodeErr == nil {
		if apiErr := resp.apiError(statusCode); apiErr != nil {
			return nil, apiErr
		}
	}

	if !isSuccess(statusCode) {
		return nil, &TransportError{StatusCode: statusCode, Body: body}
	}
	if decodeErr != nil {
		return nil, &TransportError{StatusCode: statusCode, Body: body, Cause: decodeErr}
	}

	return resp, nil
}

func isSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
