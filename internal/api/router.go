package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/dagaz/internal/activity"
	"github.com/starford/dagaz/internal/index"
	"github.com/starford/dagaz/internal/sse"
	"github.com/starford/dagaz/internal/storage"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// broker, if non-nil, receives activity events and serves GET /events
// inside the auth group.
func NewRouter(store *activity.Store, db *index.DB, broker *sse.Broker, files storage.Provider, authEnabled bool, token string) chi.Router {
	h := NewHandler(store, db, broker)
	mh := NewMediaHandler(files, h)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Activities CRUD.
	r.Get("/activities", h.ListActivities)
	r.Post("/activities", h.CreateActivity)
	r.Patch("/activities/{id}", h.UpdateActivity)
	r.Delete("/activities/{id}", h.DeleteActivity)

	// Derived views.
	r.Get("/calendar", h.Calendar)
	r.Get("/stats", h.Stats)
	r.Get("/streak", h.Streak)

	// Search.
	r.Get("/search", h.Search)

	// Editorial track entry points.
	r.Post("/track/post", h.TrackPost)
	r.Post("/track/project", h.TrackProject)
	r.Post("/track/media", h.TrackMedia)

	// Media management (auth-protected). Files are served from the root router.
	r.Get("/media", mh.ListFiles)
	r.Post("/media", mh.Upload)
	r.Delete("/media/{filename}", mh.DeleteFile)

	// SSE endpoint (protected by same auth middleware).
	if broker != nil {
		r.Get("/events", broker.ServeHTTP)
	}

	return r
}

// MediaFileServer returns the unauthenticated GET /media/{filename} handler
// for mounting on the root router.
func MediaFileServer(files storage.Provider) http.HandlerFunc {
	mh := NewMediaHandler(files, nil)
	return mh.ServeFile
}
