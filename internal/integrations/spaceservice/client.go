package spaceservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с каталогом пространств
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента SpaceService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetSpace получает пространство по ID
func (c *Client) GetSpace(ctx context.Context, spaceID int64) (*Space, error) {
	url := fmt.Sprintf("%s/internal/spaces/%d", c.baseURL, spaceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid space ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrSpaceNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var space Space
	if err := json.NewDecoder(resp.Body).Decode(&space); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &space, nil
}

// GetSpaceWithGracefulDegradation получает пространство с graceful degradation
// При недоступности каталога возвращает ErrServiceDegraded; ErrSpaceNotFound пробрасывается как есть
func (c *Client) GetSpaceWithGracefulDegradation(ctx context.Context, spaceID int64) (*Space, error) {
	c.log.Info("Fetching space id=%d", spaceID)

	space, err := c.GetSpace(ctx, spaceID)
	if err != nil {
		if errors.Is(err, ErrSpaceNotFound) {
			c.log.Info("Space id=%d not found", spaceID)
			return nil, err
		}

		c.log.Error("SpaceService unavailable, applying graceful degradation for space id=%d: %v", spaceID, err)
		return nil, fmt.Errorf("%w: space_id=%d, error=%v", ErrServiceDegraded, spaceID, err)
	}

	c.log.Info("Successfully fetched space id=%d, name=%s, active=%t", spaceID, space.Name, space.IsActive)
	return space, nil
}
