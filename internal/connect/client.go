// Package connect is a client for the remote workout service.
package connect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"

	"github.com/claude/workoutsync/internal/models"
)

const (
	DefaultConnectURL = "https://connect.garmin.com"
	DefaultSSOURL     = "https://sso.garmin.com"

	workoutServicePath  = "/modern/proxy/workout-service"
	downloadServicePath = "/modern/proxy/download-service/files/workout"
)

// StatusError is returned when the service answers with an unexpected
// status code.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("connect: %s %s returned %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// Client talks to the workout service over a cookie-authenticated session.
type Client struct {
	connectURL string
	ssoURL     string
	httpClient *http.Client
}

// NewClient creates a Client with an empty session.
func NewClient(connectURL, ssoURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("connect: cookie jar: %w", err)
	}
	return &Client{
		connectURL: strings.TrimRight(connectURL, "/"),
		ssoURL:     strings.TrimRight(ssoURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
			Jar:     jar,
		},
	}, nil
}

// ListWorkouts returns all workouts owned by the logged-in user.
func (c *Client) ListWorkouts(ctx context.Context) ([]models.WorkoutSummary, error) {
	body, err := c.do(ctx, http.MethodGet, workoutServicePath+"/workouts", nil)
	if err != nil {
		return nil, err
	}
	var out []models.WorkoutSummary
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("connect: decoding workouts: %w", err)
	}
	return out, nil
}

// GetWorkout returns the raw JSON of one workout.
func (c *Client) GetWorkout(ctx context.Context, id int64) (json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodGet, workoutPath(id), nil)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("connect: workout %d: invalid JSON response", id)
	}
	return body, nil
}

// SaveWorkout creates a new workout and returns the created summary.
func (c *Client) SaveWorkout(ctx context.Context, w models.Workout) (*models.WorkoutSummary, error) {
	body, err := c.do(ctx, http.MethodPost, workoutServicePath+"/workout", w)
	if err != nil {
		return nil, err
	}
	var out models.WorkoutSummary
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("connect: decoding saved workout: %w", err)
	}
	return &out, nil
}

// UpdateWorkout replaces the workout with the given id.
func (c *Client) UpdateWorkout(ctx context.Context, id int64, w models.Workout) error {
	_, err := c.do(ctx, http.MethodPut, workoutPath(id), w)
	return err
}

// DeleteWorkout removes a workout.
func (c *Client) DeleteWorkout(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, workoutPath(id), nil)
	return err
}

// ScheduleWorkout puts a workout on the calendar at the given date.
func (c *Client) ScheduleWorkout(ctx context.Context, id int64, date time.Time) error {
	payload := map[string]string{"date": date.Format("2006-01-02")}
	_, err := c.do(ctx, http.MethodPost, workoutServicePath+"/schedule/"+strconv.FormatInt(id, 10), payload)
	return err
}

// DownloadWorkout returns the workout encoded as a FIT file.
func (c *Client) DownloadWorkout(ctx context.Context, id int64) ([]byte, error) {
	return c.do(ctx, http.MethodGet, downloadServicePath+"/"+strconv.FormatInt(id, 10), nil)
}

func workoutPath(id int64) string {
	return workoutServicePath + "/workout/" + strconv.FormatInt(id, 10)
}

// do sends a request to the connect service. Mutating requests carry the
// headers the service requires.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("connect: marshaling payload: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.connectURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("connect: create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("Referer", c.connectURL+"/modern/workouts")
		req.Header.Set("nk", "NT")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connect: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("connect: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Method: method, Path: path, Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
