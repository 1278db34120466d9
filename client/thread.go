package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/corkboard-dev/corkboard/internal/api"
	"github.com/corkboard-dev/corkboard/internal/domain"
)

// ErrConfirmationRequired guards destructive admin calls: the caller must
// pass confirm=true to actually issue them.
var ErrConfirmationRequired = errors.New("confirmation required")

func (c *Client) ListThreads(ctx context.Context, page int, search string) (domain.ThreadPage, error) {
	q := url.Values{}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if search != "" {
		q.Set("search", search)
	}
	path := "/v1/threads"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return domain.ThreadPage{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ThreadPage{}, apiError(resp)
	}

	var listResp api.ThreadListResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return domain.ThreadPage{}, fmt.Errorf("failed to decode thread list: %w", err)
	}
	return listResp.ThreadPage, nil
}

func (c *Client) GetThread(ctx context.Context, id domain.ThreadId) (domain.ThreadView, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/threads/%d", id), "", nil)
	if err != nil {
		return domain.ThreadView{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ThreadView{}, apiError(resp)
	}

	var threadResp api.ThreadResponse
	if err := json.NewDecoder(resp.Body).Decode(&threadResp); err != nil {
		return domain.ThreadView{}, fmt.Errorf("failed to decode thread: %w", err)
	}
	return threadResp.ThreadView, nil
}

func (c *Client) CreateThread(ctx context.Context, title, content string) (domain.ThreadId, error) {
	body, err := json.Marshal(api.CreateThreadRequest{Title: title, Content: content})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal thread data: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/v1/threads", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return 0, apiError(resp)
	}

	var createResp api.CreateThreadResponse
	if err := json.NewDecoder(resp.Body).Decode(&createResp); err != nil {
		return 0, fmt.Errorf("failed to decode create response: %w", err)
	}
	return createResp.Id, nil
}

func (c *Client) UpdateThread(ctx context.Context, id domain.ThreadId, title, content string) error {
	body, err := json.Marshal(api.UpdateThreadRequest{Title: title, Content: content})
	if err != nil {
		return fmt.Errorf("failed to marshal thread data: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/v1/threads/%d", id), "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return nil
}

func (c *Client) DeleteThread(ctx context.Context, id domain.ThreadId) error {
	resp, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/threads/%d", id), "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return nil
}

// AdminThreads lists every thread for the moderation console.
func (c *Client) AdminThreads(ctx context.Context) ([]domain.ThreadSummary, error) {
	resp, err := c.do(ctx, http.MethodGet, "/v1/admin/threads", "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var adminResp api.AdminThreadsResponse
	if err := json.NewDecoder(resp.Body).Decode(&adminResp); err != nil {
		return nil, fmt.Errorf("failed to decode admin threads: %w", err)
	}
	return adminResp.Threads, nil
}

// AdminDeleteThread removes any thread. It refuses to issue the call
// unless the caller explicitly confirms.
func (c *Client) AdminDeleteThread(ctx context.Context, id domain.ThreadId, confirm bool) error {
	if !confirm {
		return ErrConfirmationRequired
	}

	resp, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/admin/threads/%d", id), "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return nil
}
