package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"reservasalas/internal/booking"
	"reservasalas/internal/entities"
)

// ErrUnauthorized is returned when the session cookie is missing or expired.
var ErrUnauthorized = errors.New("sesión no válida")

// Client talks to the reservation API. It keeps the session cookie in an
// in-memory jar, so a single Client is one logged-in user.
type Client struct {
	baseURL string
	httpc   *http.Client
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
	}, nil
}

type apiError struct {
	Message string `json:"message"`
	Error_  string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 400 {
		var apiErr apiError
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &apiErr) == nil {
			if apiErr.Message != "" {
				return errors.New(apiErr.Message)
			}
			if apiErr.Error_ != "" {
				return errors.New(apiErr.Error_)
			}
		}
		return fmt.Errorf("request failed: %s", resp.Status)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Login authenticates and stores the session cookie for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*entities.UserResponse, error) {
	payload := map[string]string{"email": email, "password": password}
	var user entities.UserResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
}

func (c *Client) Me(ctx context.Context) (*entities.UserResponse, error) {
	var user entities.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Availability fetches the full grid for one date. The returned snapshot
// carries the requested date so callers can detect stale responses.
func (c *Client) Availability(ctx context.Context, date string) (*booking.Snapshot, error) {
	var snap booking.Snapshot
	path := "/api/v1/availability?date=" + url.QueryEscape(date)
	if err := c.do(ctx, http.MethodGet, path, nil, &snap); err != nil {
		return nil, err
	}
	snap.Date = date
	return &snap, nil
}

func (c *Client) CreateReservation(ctx context.Context, req booking.Request) (string, error) {
	var out entities.CreateReservationResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/reservations", req, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *Client) CreateOnBehalf(ctx context.Context, req booking.OnBehalfRequest) error {
	return c.do(ctx, http.MethodPost, "/api/v1/reservations/on-behalf", req, nil)
}

func (c *Client) CancelReservation(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/reservations/"+url.PathEscape(id), nil, nil)
}

func (c *Client) UpdateReservation(ctx context.Context, id string, req booking.Request) (*entities.ReservationDetail, error) {
	var out entities.ReservationDetail
	if err := c.do(ctx, http.MethodPut, "/api/v1/reservations/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyReservations(ctx context.Context) (*entities.MyReservationsResponse, error) {
	var out entities.MyReservationsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/reservations/my-reservations", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ReservationsByRoom(ctx context.Context, roomID int) ([]entities.ReservationDetail, error) {
	var out []entities.ReservationDetail
	path := fmt.Sprintf("/api/v1/room/%d", roomID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
