package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/fieldops/opsconsole/internal/logger"
	"github.com/fieldops/opsconsole/internal/ui/session"
)

// response is a successful backend response. Body is nil for 204 No Content.
type response struct {
	Status int
	Header http.Header
	Body   json.RawMessage
}

// requestOptions tweak a single call
type requestOptions struct {
	header http.Header
	// anonymous calls (login) do not send the token and treat 401 as an ordinary failure
	anonymous bool
}

// Get issues a GET for path (appended verbatim to the base URL) and returns the JSON body
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	res, err := c.send(ctx, http.MethodGet, path, nil, requestOptions{})
	if err != nil {
		return nil, err
	}
	return res.Body, nil
}

// Post issues a POST with body encoded as JSON
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	res, err := c.send(ctx, http.MethodPost, path, body, requestOptions{})
	if err != nil {
		return nil, err
	}
	return res.Body, nil
}

// Patch issues a PATCH with body encoded as JSON
func (c *Client) Patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	res, err := c.send(ctx, http.MethodPatch, path, body, requestOptions{})
	if err != nil {
		return nil, err
	}
	return res.Body, nil
}

// Delete issues a DELETE
func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	res, err := c.send(ctx, http.MethodDelete, path, nil, requestOptions{})
	if err != nil {
		return nil, err
	}
	return res.Body, nil
}

// send performs one round trip and classifies the outcome.
// body is marshalled to JSON when the method carries one (POST, PATCH); a nil body is sent as "{}".
func (c *Client) send(ctx context.Context, method, path string, body any, opts requestOptions) (*response, error) {
	var reqBody io.Reader
	hasBody := method == http.MethodPost || method == http.MethodPatch
	if hasBody {
		if body == nil {
			body = struct{}{}
		}
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, NewClientInternalError(err, fmt.Sprintf("marshaling %s %s request", method, path))
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, NewClientInternalError(err, fmt.Sprintf("creating %s %s request", method, path))
	}

	req.Header.Set("Accept", "application/json")
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", requestID(ctx))

	// the token is read on every call so a login or purge elsewhere takes effect immediately
	if !opts.anonymous && c.store != nil {
		if token := session.Token(c.store); token != "" {
			req.Header.Set("Authorization", "Token "+token)
		}
	}
	for name, values := range opts.header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	reqLogger := logger.ContextRequestLogger(ctx)
	start := time.Now()

	res, err := c.httpClient.Do(req)
	if err != nil {
		reqLogger.Warn("API request failed",
			slog.String("component", "client"),
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return nil, NewClientConnectionError(err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, NewClientConnectionError(err)
	}

	reqLogger.Debug("API request completed",
		slog.String("component", "client"),
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", res.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	switch {
	case res.StatusCode == http.StatusUnauthorized && !opts.anonymous:
		if err := c.expireSession(); err != nil {
			reqLogger.Error("Failed to purge session after 401",
				slog.String("component", "client"),
				slog.String("error", err.Error()),
			)
		}
		return nil, newSessionExpiredError(method, path)

	case res.StatusCode < 200 || res.StatusCode > 299:
		return nil, NewClientApiError(method, path, res.StatusCode, data)

	case res.StatusCode == http.StatusNoContent:
		return &response{Status: res.StatusCode, Header: res.Header}, nil
	}

	if !json.Valid(data) {
		var syntaxErr error = fmt.Errorf("invalid JSON (%d bytes)", len(data))
		if len(bytes.TrimSpace(data)) == 0 {
			syntaxErr = fmt.Errorf("empty body")
		}
		return nil, newMalformedResponseError(syntaxErr, method, path, res.StatusCode)
	}

	return &response{Status: res.StatusCode, Header: res.Header, Body: json.RawMessage(data)}, nil
}

// requestID propagates the inbound request id so backend logs can be correlated with UI logs
func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

// decode unmarshals a response body into T. An empty body (a 204) is a malformed response when a record was expected.
func decode[T any](body json.RawMessage, while string) (T, error) {
	var v T
	if len(bytes.TrimSpace(body)) == 0 {
		return v, &ClientError{
			Kind:        KindMalformedResponse,
			StatusCode:  http.StatusNoContent,
			UserMessage: "The server sent an unexpected response. Please try again later.",
			LogMessage:  fmt.Sprintf("empty response body while %s", while),
		}
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return v, NewClientInternalError(err, while)
	}
	return v, nil
}

// decodeList unmarshals a list response. Both a bare array and a paginated {"results": [...]} object are accepted.
func decodeList[T any](body json.RawMessage, while string) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return []T{}, nil
	}
	if trimmed[0] == '{' {
		page, err := decode[struct {
			Results []T `json:"results"`
		}](body, while)
		if err != nil {
			return nil, err
		}
		return nonNil(page.Results), nil
	}
	list, err := decode[[]T](body, while)
	if err != nil {
		return nil, err
	}
	return nonNil(list), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
