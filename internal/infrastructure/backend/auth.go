package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/soukly/marketplace-client/internal/core/domain"
	"github.com/soukly/marketplace-client/internal/core/ports"
	"github.com/soukly/marketplace-client/internal/metrics"
)

// authResponse is the /api/authenticate payload.
type authResponse struct {
	Data struct {
		UserInfo struct {
			ID     json.Number `json:"id"`
			Email  string      `json:"email"`
			Nom    string      `json:"nom"`
			Prenom string      `json:"prenom"`
			Role   string      `json:"role"`
		} `json:"userInfo"`
		Token string `json:"token"`
	} `json:"data"`
}

// Login exchanges credentials for a session. Credentials travel as query
// parameters; that is the backend's contract, not a choice made here.
func (c *Client) Login(ctx context.Context, email, password string) (domain.Session, error) {
	var resp authResponse
	err := c.do(ctx, request{
		endpoint: "authenticate",
		method:   http.MethodPost,
		path:     "/api/authenticate",
		query:    url.Values{"username": {email}, "password": {password}},
	}, &resp)
	if err != nil {
		if isStatus(err, http.StatusUnauthorized, http.StatusForbidden) {
			return domain.Session{}, domain.ErrInvalidCredentials
		}
		return domain.Session{}, err
	}

	info := resp.Data.UserInfo
	if resp.Data.Token == "" || info.ID.String() == "" {
		return domain.Session{}, fmt.Errorf("authenticate: malformed response body")
	}

	return domain.Session{
		UserID:      info.ID.String(),
		Email:       info.Email,
		DisplayName: strings.TrimSpace(info.Prenom + " " + info.Nom),
		Role:        domain.Role(info.Role),
		Token:       resp.Data.Token,
	}, nil
}

// Signup creates an account via the multipart form endpoint. Coordinates are
// written only when a location fix exists; they are never defaulted.
func (c *Client) Signup(ctx context.Context, in ports.SignupInput) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"prenom":    in.FirstName,
		"nom":       in.LastName,
		"email":     in.Email,
		"password":  in.Password,
		"telephone": in.Phone,
		"role":      string(in.Role),
	}
	if in.Location != nil {
		fields["latitude"] = strconv.FormatFloat(in.Location.Latitude, 'f', -1, 64)
		fields["longitude"] = strconv.FormatFloat(in.Location.Longitude, 'f', -1, 64)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("signup: encode form: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("signup: encode form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/user/new", &buf)
	if err != nil {
		return fmt.Errorf("signup: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", w.FormDataContentType())
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	metrics.BackendRequestDuration.WithLabelValues("signup").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues("signup", "error").Inc()
		return fmt.Errorf("signup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.BackendRequestsTotal.WithLabelValues("signup", "error").Inc()
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp)}
	}
	metrics.BackendRequestsTotal.WithLabelValues("signup", "ok").Inc()
	return nil
}

// isStatus reports whether err carries an *APIError with one of the given codes.
func isStatus(err error, codes ...int) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, code := range codes {
		if apiErr.StatusCode == code {
			return true
		}
	}
	return false
}
