package api

import "github.com/corkboard-dev/corkboard/internal/domain"

type ToggleLikeResponse struct {
	domain.LikeStatus
}
