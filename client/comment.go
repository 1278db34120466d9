package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/corkboard-dev/corkboard/internal/api"
	"github.com/corkboard-dev/corkboard/internal/domain"
)

// CreateComment posts a form-encoded comment and returns the persisted
// comment with its server-assigned id and resolved author.
func (c *Client) CreateComment(ctx context.Context, threadId domain.ThreadId, content string) (domain.Comment, error) {
	form := url.Values{
		"thread_id": {strconv.FormatInt(int64(threadId), 10)},
		"content":   {content},
	}

	resp, err := c.do(ctx, http.MethodPost, "/v1/comments", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return domain.Comment{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		// The comment endpoint always answers JSON, error included
		bodyBytes, _ := io.ReadAll(resp.Body)
		var errResp api.ErrorResponse
		if json.Unmarshal(bodyBytes, &errResp) == nil && errResp.Error != "" {
			return domain.Comment{}, &APIError{StatusCode: resp.StatusCode, Body: errResp.Error}
		}
		return domain.Comment{}, &APIError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	var createResp api.CreateCommentResponse
	if err := json.NewDecoder(resp.Body).Decode(&createResp); err != nil {
		return domain.Comment{}, fmt.Errorf("failed to decode comment response: %w", err)
	}
	return createResp.Comment, nil
}

func (c *Client) DeleteComment(ctx context.Context, id domain.CommentId) error {
	resp, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/comments/%d", id), "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return nil
}
