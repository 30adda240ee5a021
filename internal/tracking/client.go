package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/kernel"

	"github.com/gorilla/websocket"
)

// ErrOrderNotVisible is returned when the server does not know the order or the
// actor may not read it. Retrying will not help.
var ErrOrderNotVisible = errors.New("order is not visible to this actor")

// APIClient talks to the ordering service on behalf of one actor.
type APIClient struct {
	baseURL string
	token   string
	http    *http.Client
	dialer  *websocket.Dialer
}

// NewAPIClient creates a client for baseURL, e.g. "http://localhost:8080". token is
// the actor's bearer token.
func NewAPIClient(baseURL, token string) (*APIClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must use http or https", baseURL)
	}

	return &APIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
		dialer:  &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
	}, nil
}

// Snapshot fetches the full order snapshot.
func (c *APIClient) Snapshot(ctx context.Context, orderID kernel.UUID) (queries.OrderSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/orders/"+orderID.String(), nil)
	if err != nil {
		return queries.OrderSnapshot{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return queries.OrderSnapshot{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusForbidden, http.StatusUnauthorized:
		return queries.OrderSnapshot{}, fmt.Errorf("%w: %s", ErrOrderNotVisible, resp.Status)
	default:
		return queries.OrderSnapshot{}, fmt.Errorf("fetch order %s: %s", orderID, resp.Status)
	}

	var snapshot queries.OrderSnapshot
	if err = json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return queries.OrderSnapshot{}, fmt.Errorf("decode order %s: %w", orderID, err)
	}
	return snapshot, nil
}

// Dial opens the live channel. Browsers cannot set headers on websocket requests,
// so the token travels as a query parameter like theirs does.
func (c *APIClient) Dial(ctx context.Context) (*websocket.Conn, error) {
	wsURL := "ws" + strings.TrimPrefix(c.baseURL, "http") + "/api/v1/ws?token=" + url.QueryEscape(c.token)

	conn, resp, err := c.dialer.DialContext(ctx, wsURL, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dial live channel: %w", err)
	}
	return conn, nil
}
