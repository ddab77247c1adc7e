package courtapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"courtside/internal/pkg/config"
	"courtside/internal/pkg/errs"

	"github.com/google/uuid"
)

// Client is the typed gateway to the booking backend. The backend owns the
// authoritative booking table; everything here is a round trip, never a local
// read-modify-write.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg config.BackendConfig, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errs.Wrap(err, "invalid backend base URL")
	}
	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			// Bounded so a hung backend surfaces as a transient failure
			// instead of a silently stuck submission.
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}, nil
}

func (c *Client) GetVenues(ctx context.Context) ([]Venue, error) {
	var venues []Venue
	if err := c.getJSON(ctx, "/venues", nil, &venues); err != nil {
		return nil, err
	}
	return venues, nil
}

func (c *Client) GetAvailableSlots(ctx context.Context, venueID uuid.UUID, startDate, endDate string) ([]AvailableSlot, error) {
	query := url.Values{}
	query.Set("venueId", venueID.String())
	query.Set("startDate", startDate)
	query.Set("endDate", endDate)

	var slots []AvailableSlot
	if err := c.getJSON(ctx, "/court-schedules/available", query, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (c *Client) GetUserBookings(ctx context.Context, userID, startDate, endDate string) ([]CourtBooking, error) {
	query := url.Values{}
	query.Set("startDate", startDate)
	query.Set("endDate", endDate)

	var bookings []CourtBooking
	if err := c.getJSON(ctx, "/court-bookings/user/"+url.PathEscape(userID), query, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) GetUser(ctx context.Context, userID string) (UserProfile, error) {
	var profile UserProfile
	if err := c.getJSON(ctx, "/users/"+url.PathEscape(userID), nil, &profile); err != nil {
		return UserProfile{}, err
	}
	return profile, nil
}

// CreateBooking submits the authoritative check-and-reserve. Conflicts come
// back as classified GatewayErrors; the caller decides the user-facing
// message per class.
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return wrapGatewayErr(c.logger, KindDecode, "failed to encode booking request", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/court-bookings", nil, bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	result, decodeErr := decodeMutationResult(resp.Body)

	switch {
	case resp.StatusCode == http.StatusConflict:
		if decodeErr != nil {
			return conflictErr(ConflictUnknown, "booking rejected")
		}
		return conflictErr(classifyConflict(result.Code, result.Message), result.Message)
	case resp.StatusCode >= 500:
		return wrapGatewayErr(c.logger, KindTransient, "backend error creating booking", errs.New(resp.Status))
	case resp.StatusCode >= 400:
		return wrapGatewayErr(c.logger, KindRejected, "booking request rejected", errs.New(resp.Status))
	}

	if decodeErr != nil {
		return wrapGatewayErr(c.logger, KindDecode, "malformed booking response", decodeErr)
	}
	if !result.Success {
		return wrapGatewayErr(c.logger, KindRejected, result.Message, nil)
	}
	return nil
}

func (c *Client) CancelBooking(ctx context.Context, bookingID uuid.UUID, userID string) error {
	query := url.Values{}
	query.Set("userId", userID)

	resp, err := c.do(ctx, http.MethodDelete, "/court-bookings/"+bookingID.String(), query, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return wrapGatewayErr(c.logger, KindNotFound, "booking not found", nil)
	case resp.StatusCode >= 500:
		return wrapGatewayErr(c.logger, KindTransient, "backend error cancelling booking", errs.New(resp.Status))
	case resp.StatusCode >= 400:
		result, decodeErr := decodeMutationResult(resp.Body)
		if decodeErr == nil && result.Message != "" {
			return wrapGatewayErr(c.logger, KindRejected, result.Message, nil)
		}
		return wrapGatewayErr(c.logger, KindRejected, "cancellation rejected", errs.New(resp.Status))
	}

	result, decodeErr := decodeMutationResult(resp.Body)
	if decodeErr != nil {
		return wrapGatewayErr(c.logger, KindDecode, "malformed cancellation response", decodeErr)
	}
	if !result.Success {
		return wrapGatewayErr(c.logger, KindRejected, result.Message, nil)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return wrapGatewayErr(c.logger, KindNotFound, "resource not found: "+path, nil)
	case resp.StatusCode >= 500:
		return wrapGatewayErr(c.logger, KindTransient, "backend error fetching "+path, errs.New(resp.Status))
	case resp.StatusCode >= 400:
		return wrapGatewayErr(c.logger, KindRejected, "request rejected for "+path, errs.New(resp.Status))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return wrapGatewayErr(c.logger, KindDecode, "malformed response from "+path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Response, error) {
	u := *c.baseURL
	u.Path, _ = url.JoinPath(u.Path, path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, wrapGatewayErr(c.logger, KindTransient, "failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeouts and connectivity failures are transient; never report
		// them as success or as a conflict.
		return nil, wrapGatewayErr(c.logger, KindTransient, "backend unreachable", err)
	}
	return resp, nil
}

func decodeMutationResult(body io.Reader) (mutationResult, error) {
	var result mutationResult
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return mutationResult{}, err
	}
	return result, nil
}
