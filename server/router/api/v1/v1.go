package v1

import (
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/northernisles/sage/internal/profile"
	"github.com/northernisles/sage/server/dialogue"
	"github.com/northernisles/sage/server/middleware"
)

type APIV1Service struct {
	Profile      *profile.Profile
	Store        *dialogue.Store
	Resolver     *dialogue.Resolver
	Orchestrator *dialogue.Orchestrator

	// turnSemaphore serializes dialogue turns end to end, so one turn's two
	// appends and possible trim never interleave with another turn's. The
	// store's own lock is never held across network I/O.
	turnSemaphore *semaphore.Weighted
	limiter       *middleware.RateLimiter
}

func NewAPIV1Service(profile *profile.Profile, store *dialogue.Store, resolver *dialogue.Resolver, orchestrator *dialogue.Orchestrator) *APIV1Service {
	return &APIV1Service{
		Profile:       profile,
		Store:         store,
		Resolver:      resolver,
		Orchestrator:  orchestrator,
		turnSemaphore: semaphore.NewWeighted(1),
		limiter:       middleware.NewRateLimiter(rate.Every(time.Second/5), 10),
	}
}

// Register mounts all v1 routes on the given Echo instance.
func (s *APIV1Service) Register(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.POST("/messages", s.AddMessage)
	g.GET("/context", s.GetContext)
	g.GET("/context/summary", s.SummarizeHistory)
	g.POST("/context/reset", s.ResetConversation)
	g.POST("/knowledge/search", s.SearchKnowledge)
	g.GET("/health", s.GetHealthStatus)
	g.GET("/character", s.GetCharacterProfile)
	g.POST("/dialogue", s.ProcessDialogue)
}
