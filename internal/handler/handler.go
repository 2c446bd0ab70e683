package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"pixelgram/internal/model"
)

// parsePage reads page/limit query parameters with defaults and a hard
// cap. Bad values fall back to the defaults instead of failing the
// request.
func parsePage(r *http.Request, defaultLimit int) model.Page {
	page := model.Page{Number: 1, Limit: defaultLimit}

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page.Number = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page.Limit = n
		}
	}
	if page.Limit > model.MaxPageLimit {
		page.Limit = model.MaxPageLimit
	}
	return page
}

// parseIDParam reads a numeric chi URL parameter.
func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// parseLimit reads a limit query parameter with a default and cap.
func parseLimit(r *http.Request, fallback, max int) int {
	limit := fallback
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > max {
		limit = max
	}
	return limit
}

// validationDetail strips the sentinel prefix from a wrapped validation
// error, leaving the client-safe detail.
func validationDetail(err error) string {
	msg := strings.TrimPrefix(err.Error(), model.ErrValidation.Error()+": ")
	if msg == "" {
		return "Invalid input"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
