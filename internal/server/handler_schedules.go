package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kjorgen/schedcore/internal/scheduler"
	"github.com/kjorgen/schedcore/pkg/model"
)

// handleCreateSchedule computes a schedule for the posted instance and
// persists the run (success or failure alike), per SPEC_FULL.md §4.11.
func (s *Server) handleCreateSchedule(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var inst model.Instance
	if err := json.NewDecoder(r.Body).Decode(&inst); err != nil {
		respondError(w, reqID, http.StatusBadRequest,
			&model.APIError{Code: model.ErrValidation, Message: "invalid JSON body: " + err.Error()})
		return
	}

	started := time.Now()
	sched, err := scheduler.ComputeSchedule(&inst, s.logger)
	duration := time.Since(started)

	run := &model.Run{
		ID:            "run_" + uuid.New().String(),
		SubmittedAt:   started.UTC(),
		Instance:      inst,
		DurationNanos: duration.Nanoseconds(),
	}

	if err != nil {
		run.Failure = err.Error()
	} else {
		run.Schedule = sched
	}

	if saveErr := s.store.SaveRun(r.Context(), run); saveErr != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: saveErr.Error()})
		return
	}

	if err != nil {
		s.logger.Info("schedule computation failed", "run_id", run.ID, "error", err)
		respondCreated(w, reqID, run)
		return
	}

	s.logger.Info("schedule computed", "run_id", run.ID, "jobs", len(inst.Jobs), "makespan", sched.Makespan())
	respondCreated(w, reqID, run)
}

// handleGetSchedule fetches a persisted run by id.
func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	run, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}
	if run == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("run", id))
		return
	}

	respondOK(w, reqID, run)
}

// handleListSchedules lists recent runs, paginated via model.ListOptions.
func (s *Server) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	opts := model.DefaultListOptions()
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.Offset = n
		}
	}
	opts.Clamp()

	runs, total, err := s.store.ListRuns(r.Context(), opts)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: err.Error()})
		return
	}

	respondList(w, reqID, runs, &model.Pagination{
		Total:   total,
		Limit:   opts.Limit,
		Offset:  opts.Offset,
		HasMore: opts.Offset+len(runs) < total,
	})
}
