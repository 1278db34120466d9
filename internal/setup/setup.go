package setup

import (
	"github.com/corkboard-dev/corkboard/internal/config"
	"github.com/corkboard-dev/corkboard/internal/handler"
	"github.com/corkboard-dev/corkboard/internal/jwt"
	"github.com/corkboard-dev/corkboard/internal/markdown"
	"github.com/corkboard-dev/corkboard/internal/middleware"
	"github.com/corkboard-dev/corkboard/internal/service"
	"github.com/corkboard-dev/corkboard/internal/storage/pg"
)

// Dependencies holds all initialized application dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Handler        *handler.Handler
	Jwt            jwt.JwtService
	AuthMiddleware *middleware.Auth
}

// SetupDependencies wires storage, services, handler and middleware together.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	renderer := markdown.New()

	auth := service.NewAuth(storage, jwtService)
	thread := service.NewThread(storage, renderer, cfg.Public.ThreadsPerPage)
	comment := service.NewComment(storage)
	like := service.NewLike(storage)

	h := handler.New(auth, thread, comment, like, storage, cfg)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        h,
		Jwt:            jwtService,
		AuthMiddleware: middleware.NewAuth(jwtService),
	}, nil
}
