// Package client talks to the roster REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/noah-isme/student-roster/internal/models"
	"github.com/noah-isme/student-roster/internal/roster"
)

const (
	defaultTimeout = 10 * time.Second
	// error bodies larger than this are not parsed for a message
	maxErrorBody = 64 << 10
)

// StudentClient implements roster.StudentService over HTTP.
type StudentClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ roster.StudentService = (*StudentClient)(nil)

// New constructs a client for the API at baseURL. A non-positive timeout falls back to ten seconds.
func New(baseURL string, timeout time.Duration) (*StudentClient, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse roster api url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("roster api url %q must use http or https", baseURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &StudentClient{
		baseURL:    strings.TrimRight(parsed.String(), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// List fetches the roster. The query is only sent when both dimensions are set, mirroring how
// the API filters.
func (c *StudentClient) List(ctx context.Context, filter roster.Filter) ([]models.Student, error) {
	endpoint := c.baseURL + "/students"
	if filter.Complete() {
		query := url.Values{}
		query.Set("cohort", filter.Cohort)
		query.Set("course", filter.Course)
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &roster.RemoteError{Op: roster.OpLoad, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	students := []models.Student{}
	if err := c.do(req, roster.OpLoad, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// Create submits a new student to POST /students and returns the stored record.
func (c *StudentClient) Create(ctx context.Context, payload models.CreateStudentRequest) (*models.Student, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &roster.RemoteError{Op: roster.OpCreate, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/students", bytes.NewReader(body))
	if err != nil {
		return nil, &roster.RemoteError{Op: roster.OpCreate, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var student models.Student
	if err := c.do(req, roster.OpCreate, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (c *StudentClient) do(req *http.Request, op string, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &roster.RemoteError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &roster.RemoteError{Op: op, Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return &roster.RemoteError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func errorMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Message)
}
