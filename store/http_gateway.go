package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"attorney_directory_go/models"
	"attorney_directory_go/services"
)

const attorneysPath = "/api/attorneys"

// APIError is a non-2xx gateway response.
type APIError struct {
	Status  int
	Message string
	Fields  []string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway returned %d", e.Status)
	}
	return fmt.Sprintf("gateway returned %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the gateway.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// HTTPGateway talks to the attorney API over HTTP.
type HTTPGateway struct {
	baseURL  string
	language string
	client   *http.Client
}

// NewHTTPGateway returns a gateway for the server at baseURL. Error messages
// come back in language when the server supports it.
func NewHTTPGateway(baseURL, language string) *HTTPGateway {
	return &HTTPGateway{
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: language,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Close releases idle keep-alive connections.
func (g *HTTPGateway) Close() {
	g.client.CloseIdleConnections()
}

// List fetches the whole collection.
func (g *HTTPGateway) List(ctx context.Context) ([]models.Attorney, error) {
	var attorneys []models.Attorney
	if err := g.do(ctx, http.MethodGet, attorneysPath, nil, &attorneys); err != nil {
		return nil, err
	}
	return attorneys, nil
}

// Create posts a new record.
func (g *HTTPGateway) Create(ctx context.Context, in models.AttorneyInput) (models.Attorney, error) {
	var created models.Attorney
	err := g.do(ctx, http.MethodPost, attorneysPath, in, &created)
	return created, err
}

// Update replaces the record with a.ID.
func (g *HTTPGateway) Update(ctx context.Context, a models.Attorney) (models.Attorney, error) {
	var updated models.Attorney
	err := g.do(ctx, http.MethodPut, attorneysPath, services.UpdateFrom(a), &updated)
	return updated, err
}

// Delete removes the record with id.
func (g *HTTPGateway) Delete(ctx context.Context, id int64) error {
	q := url.Values{"id": {strconv.FormatInt(id, 10)}}
	return g.do(ctx, http.MethodDelete, attorneysPath+"?"+q.Encode(), nil, nil)
}

func (g *HTTPGateway) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.language != "" {
		req.Header.Set("Accept-Language", g.language)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Message string   `json:"message"`
			Fields  []string `json:"fields"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Message = payload.Message
			apiErr.Fields = payload.Fields
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
