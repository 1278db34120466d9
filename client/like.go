package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/corkboard-dev/corkboard/internal/api"
	"github.com/corkboard-dev/corkboard/internal/domain"
)

// ToggleLike flips the caller's like on a thread and returns the
// authoritative state from the server.
func (c *Client) ToggleLike(ctx context.Context, threadId domain.ThreadId) (domain.LikeStatus, error) {
	resp, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/v1/threads/%d/like", threadId), "", nil)
	if err != nil {
		return domain.LikeStatus{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.LikeStatus{}, apiError(resp)
	}

	var toggleResp api.ToggleLikeResponse
	if err := json.NewDecoder(resp.Body).Decode(&toggleResp); err != nil {
		return domain.LikeStatus{}, fmt.Errorf("failed to decode like response: %w", err)
	}
	return toggleResp.LikeStatus, nil
}
