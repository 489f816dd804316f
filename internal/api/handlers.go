package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/dagaz/internal/activity"
	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/index"
	"github.com/starford/dagaz/internal/models"
	"github.com/starford/dagaz/internal/sse"
)

// Handler holds API route handlers. It coordinates the store, the search
// index, and the SSE broker: every mutation that goes through the API is
// mirrored into the index and announced to connected clients.
type Handler struct {
	store  *activity.Store
	db     *index.DB
	broker *sse.Broker // nil disables event publishing
}

// NewHandler creates a new Handler.
func NewHandler(store *activity.Store, db *index.DB, broker *sse.Broker) *Handler {
	return &Handler{store: store, db: db, broker: broker}
}

// afterWrite mirrors a mutated activity into the index and publishes an
// SSE event.
func (h *Handler) afterWrite(kind string, a models.Activity) {
	if err := h.db.Upsert(a); err != nil {
		slog.Warn("index upsert failed", slog.String("id", a.ID), slog.String("error", err.Error()))
	}
	if h.broker != nil {
		h.broker.PublishActivityEvent(kind, a.ID, a.Date)
	}
}

// ListActivities handles GET /api/activities.
//
//	@Summary		List activities with optional date-range and type filters
//	@Tags			activities
//	@Produce		json
//	@Param			start	query		string	false	"Range start (YYYY-MM-DD, inclusive)"
//	@Param			end		query		string	false	"Range end (YYYY-MM-DD, inclusive)"
//	@Param			type	query		string	false	"Filter by type"	Enums(post, project, update, media)
//	@Success		200		{object}	ActivityListResponse
//	@Security		BearerAuth
//	@Router			/activities [get]
func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start := q.Get("start")
	end := q.Get("end")
	typ := models.ActivityType(q.Get("type"))

	var items []models.Activity
	if start != "" || end != "" {
		if start == "" {
			start = "0000-00-00"
		}
		if end == "" {
			end = "9999-99-99"
		}
		items = h.store.ForDateRange(start, end)
	} else {
		items = h.store.All()
	}

	if typ != "" {
		filtered := items[:0]
		for _, a := range items {
			if a.Type == typ {
				filtered = append(filtered, a)
			}
		}
		items = filtered
	}
	if items == nil {
		items = []models.Activity{}
	}

	writeJSON(w, http.StatusOK, ActivityListResponse{
		Activities: items,
		Total:      len(items),
	})
}

// CreateActivity handles POST /api/activities.
//
//	@Summary		Record an activity (merges into an existing (date,type) record)
//	@Tags			activities
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateActivityRequest	true	"Activity to record"
//	@Success		200		{object}	ActivityResponse	"Merged into an existing record"
//	@Success		201		{object}	ActivityResponse	"New record created"
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/activities [post]
func (h *Handler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	act, merged, err := h.store.Add(activity.AddInput{
		Date:        req.Date,
		Type:        models.ActivityType(req.Type),
		Title:       req.Title,
		Description: req.Description,
		Intensity:   req.Intensity,
	})
	if err != nil {
		if activity.IsValidationError(err) {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
			return
		}
		slog.Error("create activity failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	kind := "created"
	status := http.StatusCreated
	if merged {
		kind = "merged"
		status = http.StatusOK
	}
	h.afterWrite(kind, act)
	writeJSON(w, status, ActivityResponse{Activity: act, Merged: merged})
}

// UpdateActivity handles PATCH /api/activities/{id}.
//
//	@Summary		Partially update an activity; unknown IDs are a no-op
//	@Tags			activities
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Activity ID"
//	@Param			body	body		UpdateActivityRequest	true	"Fields to change"
//	@Success		200		{object}	ActivityResponse
//	@Success		204		"Unknown ID, nothing to do"
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/activities/{id} [patch]
func (h *Handler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	id := chi.URLParam(r, "id")
	var req UpdateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	err := h.store.Update(id, activity.Patch{
		Title:       req.Title,
		Description: req.Description,
		Intensity:   req.Intensity,
	})
	if err != nil {
		if activity.IsValidationError(err) {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
			return
		}
		slog.Error("update activity failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	act, getErr := h.store.Get(id)
	if errors.Is(getErr, apperr.ErrNotFound) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.afterWrite("updated", act)
	writeJSON(w, http.StatusOK, ActivityResponse{Activity: act})
}

// DeleteActivity handles DELETE /api/activities/{id}.
//
//	@Summary		Delete an activity; unknown IDs are a no-op
//	@Tags			activities
//	@Param			id	path	string	true	"Activity ID"
//	@Success		204	"Deleted (or nothing to do)"
//	@Security		BearerAuth
//	@Router			/activities/{id} [delete]
func (h *Handler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	act, getErr := h.store.Get(id)
	if err := h.store.Delete(id); err != nil {
		slog.Error("delete activity failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if getErr == nil {
		if err := h.db.Delete(id); err != nil {
			slog.Warn("index delete failed", slog.String("id", id), slog.String("error", err.Error()))
		}
		if h.broker != nil {
			h.broker.PublishActivityEvent("deleted", act.ID, act.Date)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// Calendar handles GET /api/calendar.
//
//	@Summary		Contribution-calendar grid for a year
//	@Tags			calendar
//	@Produce		json
//	@Param			year	query		int	false	"Calendar year; omitted or current year = rolling 365-day window"
//	@Success		200		{object}	CalendarResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/calendar [get]
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1 {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid year"))
			return
		}
		year = y
	}

	days := h.store.YearData(year)
	if year == 0 {
		year = h.store.Now().Year()
	}
	writeJSON(w, http.StatusOK, CalendarResponse{
		Year:  year,
		Days:  days,
		Weeks: activity.WeekColumns(days),
	})
}

// Stats handles GET /api/stats.
//
//	@Summary		Aggregate activity statistics
//	@Tags			stats
//	@Produce		json
//	@Success		200	{object}	models.Stats
//	@Security		BearerAuth
//	@Router			/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Stats())
}

// Streak handles GET /api/streak.
//
//	@Summary		Current consecutive-day streak
//	@Tags			stats
//	@Produce		json
//	@Success		200	{object}	StreakResponse
//	@Security		BearerAuth
//	@Router			/streak [get]
func (h *Handler) Streak(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, StreakResponse{Streak: h.store.CurrentStreak()})
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search across activity titles and descriptions
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.db.Search(q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if results == nil {
		results = []index.SearchResult{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// TrackPost handles POST /api/track/post.
//
//	@Summary		Record a blog-post activity dated today
//	@Tags			track
//	@Accept			json
//	@Produce		json
//	@Param			body	body		TrackRequest	true	"Post title and whether this is an edit"
//	@Success		200		{object}	ActivityResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/track/post [post]
func (h *Handler) TrackPost(w http.ResponseWriter, r *http.Request) {
	h.track(w, r, func(req TrackRequest) (models.Activity, bool, error) {
		return h.store.TrackBlogPost(req.Title, req.IsUpdate)
	})
}

// TrackProject handles POST /api/track/project.
//
//	@Summary		Record a project activity dated today
//	@Tags			track
//	@Accept			json
//	@Produce		json
//	@Param			body	body		TrackRequest	true	"Project title and whether this is an edit"
//	@Success		200		{object}	ActivityResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/track/project [post]
func (h *Handler) TrackProject(w http.ResponseWriter, r *http.Request) {
	h.track(w, r, func(req TrackRequest) (models.Activity, bool, error) {
		return h.store.TrackProject(req.Title, req.IsUpdate)
	})
}

// TrackMedia handles POST /api/track/media.
//
//	@Summary		Record a media-upload activity dated today
//	@Tags			track
//	@Accept			json
//	@Produce		json
//	@Param			body	body		TrackMediaRequest	true	"Uploaded filename"
//	@Success		200		{object}	ActivityResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/track/media [post]
func (h *Handler) TrackMedia(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req TrackMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Filename == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("filename is required"))
		return
	}
	act, merged, err := h.store.TrackMedia(req.Filename)
	h.finishTrack(w, act, merged, err)
}

func (h *Handler) track(w http.ResponseWriter, r *http.Request, fn func(TrackRequest) (models.Activity, bool, error)) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req TrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("title is required"))
		return
	}
	act, merged, err := fn(req)
	h.finishTrack(w, act, merged, err)
}

func (h *Handler) finishTrack(w http.ResponseWriter, act models.Activity, merged bool, err error) {
	if err != nil {
		if activity.IsValidationError(err) {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
			return
		}
		slog.Error("track failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	kind := "created"
	if merged {
		kind = "merged"
	}
	h.afterWrite(kind, act)
	writeJSON(w, http.StatusOK, ActivityResponse{Activity: act, Merged: merged})
}
