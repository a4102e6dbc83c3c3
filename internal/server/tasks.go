package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/finchworks/tasks-backend/internal/repository"
	"github.com/finchworks/tasks-backend/internal/validation"
)

// listTasksHandler parses the optional query parameters fail-open: anything
// unparsable is left at its zero value and the engine substitutes defaults.
// Path ids elsewhere are fail-closed; only these convenience filters degrade
// silently.
func (s *Server) listTasksHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.ListFilter{
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = limit
	}
	if completed, err := strconv.ParseBool(q.Get("completed")); err == nil {
		filter.Completed = &completed
	}

	tasks, err := s.taskService.ListTasks(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tasks)
}

func (s *Server) getTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ValidateID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	task, err := s.taskService.GetTask(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

func (s *Server) createTaskHandler(w http.ResponseWriter, r *http.Request) {
	title, err := validation.ValidateCreate(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	task, err := s.taskService.CreateTask(r.Context(), title)
	if err != nil {
		writeError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, task)
}

func (s *Server) replaceTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ValidateID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	title, completed, err := validation.ValidateReplace(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	task, err := s.taskService.ReplaceTask(r.Context(), id, title, completed)
	if err != nil {
		writeError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

// patchCompletedHandler treats an absent completed field, including a fully
// empty body, as the toggle signal.
func (s *Server) patchCompletedHandler(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ValidateID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	completed, err := validation.ValidatePatch(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	task, err := s.taskService.PatchCompleted(r.Context(), id, completed)
	if err != nil {
		writeError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

func (s *Server) deleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ValidateID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.taskService.DeleteTask(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
