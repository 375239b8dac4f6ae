package oksdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// MethodPath maps a dotted API method to its URL path:
// "url.getInfo" becomes "/api/url/getInfo". Only the first dot is replaced.
func MethodPath(method string) string {
	return "/api/" + strings.Replace(method, ".", "/", 1)
}

// APICall signs params, performs GET {api_server}/api/{namespace}/{method}
// and returns the decoded body.
//
// With forceSessionScope set, a session in application scope fails with
// ErrAuthRequired before anything is sent. An error_code envelope in the
// answer becomes *APIError; every other body, object or not, is returned
// untouched.
func (s *Session) APICall(
	ctx context.Context,
	method string,
	params url.Values,
	forceSessionScope bool,
) (*Response, error) {
	start := time.Now()
	resp, err := s.apiCall(ctx, method, params, forceSessionScope)
	s.client.Metrics.RecordAPICall(method, time.Since(start), err)
	return resp, err
}

func (s *Session) apiCall(
	ctx context.Context,
	method string,
	params url.Values,
	forceSessionScope bool,
) (*Response, error) {
	if method == "" {
		return nil, fmt.Errorf("%w: empty API method", ErrInvalidArgument)
	}

	if forceSessionScope && s.ApplicationScope() {
		return nil, fmt.Errorf(
			"%w: session was initialized without user credentials, calling %s doesn't make sense",
			ErrAuthRequired,
			method,
		)
	}

	status, body, err := s.client.doRequest(ctx, http.MethodGet, MethodPath(method), s.Sign(params))
	if err != nil {
		return nil, err
	}

	resp, err := classifyAPIResponse(status, body)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			s.client.logger().ErrorContext(ctx, "api call error",
				"api_method", method,
				"error_code", apiErr.Code,
				"error_msg", apiErr.Message,
			)
		}
		return nil, err
	}

	return resp, nil
}
