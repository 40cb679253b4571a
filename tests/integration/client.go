package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"confera/internal/models"
)

// TestClient provides methods for testing the API as a single user
type TestClient struct {
	BaseURL    string
	Email      string
	Password   string
	HTTPClient *http.Client
}

// NewTestClient creates a new test client authenticated as the given user
func NewTestClient(baseURL, email, password string) *TestClient {
	return &TestClient{
		BaseURL:  baseURL,
		Email:    email,
		Password: password,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// makeRequest makes an HTTP request and returns the response
func (c *TestClient) makeRequest(t *testing.T, method, path string, body interface{}) *http.Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	req.SetBasicAuth(c.Email, c.Password)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to make request %s %s: %v", method, path, err)
	}

	return resp
}

// do performs the request and decodes the response body into out (if not nil).
// Returns the HTTP status code.
func (c *TestClient) do(t *testing.T, method, path string, body, out interface{}) int {
	resp := c.makeRequest(t, method, path, body)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("Failed to decode response of %s %s: %v", method, path, err)
		}
	}

	return resp.StatusCode
}

// errorKind extracts the "kind" field of a client-error response
func (c *TestClient) errorKind(t *testing.T, resp *http.Response) string {
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	return body["kind"]
}

func (c *TestClient) CreateEvent(t *testing.T, req models.CreateEventRequest) (models.EventResponse, int) {
	var event models.EventResponse
	status := c.do(t, http.MethodPost, "/api/events", req, &event)
	return event, status
}

func (c *TestClient) GetEvent(t *testing.T, eventID int64) (models.EventResponse, int) {
	var event models.EventResponse
	status := c.do(t, http.MethodGet, fmt.Sprintf("/api/events/%d", eventID), nil, &event)
	return event, status
}

func (c *TestClient) ListEvents(t *testing.T, query string) (models.ListEventsResponse, int) {
	var events models.ListEventsResponse
	path := "/api/events"
	if query != "" {
		path += "?" + query
	}
	status := c.do(t, http.MethodGet, path, nil, &events)
	return events, status
}

func (c *TestClient) UpdateEvent(t *testing.T, eventID int64, req models.UpdateEventRequest) (models.EventResponse, int) {
	var event models.EventResponse
	status := c.do(t, http.MethodPut, fmt.Sprintf("/api/events/%d", eventID), req, &event)
	return event, status
}

func (c *TestClient) DeleteEvent(t *testing.T, eventID int64) int {
	return c.do(t, http.MethodDelete, fmt.Sprintf("/api/events/%d", eventID), nil, nil)
}

func (c *TestClient) RegisterForEvent(t *testing.T, eventID int64) (models.Registration, *http.Response) {
	resp := c.makeRequest(t, http.MethodPost, fmt.Sprintf("/api/events/%d/register", eventID), nil)

	var reg models.Registration
	if resp.StatusCode == http.StatusCreated {
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(&reg); err != nil {
			t.Fatalf("Failed to decode registration: %v", err)
		}
	}
	return reg, resp
}

func (c *TestClient) CreateTrack(t *testing.T, eventID int64, req models.CreateTrackRequest) (models.Track, int) {
	var track models.Track
	status := c.do(t, http.MethodPost, fmt.Sprintf("/api/events/%d/tracks", eventID), req, &track)
	return track, status
}

func (c *TestClient) ListTracks(t *testing.T, eventID int64) ([]models.Track, int) {
	var tracks []models.Track
	status := c.do(t, http.MethodGet, fmt.Sprintf("/api/events/%d/tracks", eventID), nil, &tracks)
	return tracks, status
}

func (c *TestClient) CreateSession(t *testing.T, trackID int64, req models.CreateSessionRequest) (models.Session, *http.Response) {
	resp := c.makeRequest(t, http.MethodPost, fmt.Sprintf("/api/tracks/%d/sessions", trackID), req)

	var session models.Session
	if resp.StatusCode == http.StatusCreated {
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
			t.Fatalf("Failed to decode session: %v", err)
		}
	}
	return session, resp
}

func (c *TestClient) ListSessions(t *testing.T, trackID int64) ([]models.Session, int) {
	var sessions []models.Session
	status := c.do(t, http.MethodGet, fmt.Sprintf("/api/tracks/%d/sessions", trackID), nil, &sessions)
	return sessions, status
}

func (c *TestClient) RegisterForSession(t *testing.T, sessionID int64) (models.SessionRegistration, *http.Response) {
	resp := c.makeRequest(t, http.MethodPost, fmt.Sprintf("/api/sessions/%d/register", sessionID), nil)

	var sr models.SessionRegistration
	if resp.StatusCode == http.StatusCreated {
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
			t.Fatalf("Failed to decode session registration: %v", err)
		}
	}
	return sr, resp
}

func (c *TestClient) ListRegistrations(t *testing.T, query string) ([]models.Registration, int) {
	var regs []models.Registration
	path := "/api/registrations"
	if query != "" {
		path += "?" + query
	}
	status := c.do(t, http.MethodGet, path, nil, &regs)
	return regs, status
}

func (c *TestClient) ApproveRegistration(t *testing.T, registrationID int64) (models.Registration, *http.Response) {
	resp := c.makeRequest(t, http.MethodPost, fmt.Sprintf("/api/registrations/%d/approve", registrationID), nil)

	var reg models.Registration
	if resp.StatusCode == http.StatusOK {
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(&reg); err != nil {
			t.Fatalf("Failed to decode registration: %v", err)
		}
	}
	return reg, resp
}

func (c *TestClient) CancelRegistration(t *testing.T, registrationID int64) (models.Registration, int) {
	var reg models.Registration
	status := c.do(t, http.MethodPost, fmt.Sprintf("/api/registrations/%d/cancel", registrationID), nil, &reg)
	return reg, status
}

func (c *TestClient) CancelSessionRegistration(t *testing.T, sessionRegistrationID int64) int {
	return c.do(t, http.MethodPost, fmt.Sprintf("/api/session-registrations/%d/cancel", sessionRegistrationID), nil, nil)
}
