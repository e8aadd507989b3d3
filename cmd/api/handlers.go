package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/sporez/cardforge/engine/domain"
	"github.com/sporez/cardforge/engine/ingest"
	"github.com/sporez/cardforge/engine/publish"
)

const maxRequestBytes = 1 << 20

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func readRequest(w http.ResponseWriter, r *http.Request) (ingest.Request, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return ingest.Request{}, false
	}
	req, err := ingest.ParseRequest(body)
	switch {
	case errors.Is(err, domain.ErrInvalidBody):
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return ingest.Request{}, false
	case errors.Is(err, domain.ErrEmptyBatch):
		writeError(w, http.StatusBadRequest, "no links or cards provided")
		return ingest.Request{}, false
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return ingest.Request{}, false
	}
	return req, true
}

// CrawlResponse is the JSON response for POST /api/crawl.
type CrawlResponse struct {
	Session string              `json:"session"`
	Results []ingest.CrawlEntry `json:"results"`
}

func handleCrawl(svc *ingest.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := readRequest(w, r)
		if !ok {
			return
		}
		if len(req.Links) == 0 {
			writeError(w, http.StatusBadRequest, "no links provided")
			return
		}

		writeJSON(w, http.StatusOK, CrawlResponse{
			Session: ingest.Session(req.Session),
			Results: svc.Crawl(r.Context(), req.Links),
		})
	}
}

// EnrichResponse is the JSON response for POST /api/enrich.
type EnrichResponse struct {
	Session string        `json:"session"`
	Count   int           `json:"count"`
	Cards   []domain.Card `json:"cards"`
}

func handleEnrich(svc *ingest.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := readRequest(w, r)
		if !ok {
			return
		}
		if len(req.Cards) == 0 {
			writeError(w, http.StatusBadRequest, "no cards provided")
			return
		}

		cards := svc.Enrich(r.Context(), req.Cards)
		writeJSON(w, http.StatusOK, EnrichResponse{
			Session: ingest.Session(req.Session),
			Count:   len(cards),
			Cards:   cards,
		})
	}
}

func handleFuse(svc *ingest.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := readRequest(w, r)
		if !ok {
			return
		}

		res, err := svc.FuseBatch(r.Context(), req)
		if err != nil {
			logger.Error("fuse batch failed", "err", err)
			writeError(w, http.StatusInternalServerError, "fusion failed")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// PublishRequest is the JSON body for POST /api/publish.
type PublishRequest struct {
	Session string      `json:"session"`
	Card    domain.Card `json:"card"`
	Sources []string    `json:"sources"`
}

// PublishResponse is the JSON response for POST /api/publish.
type PublishResponse struct {
	OK   bool   `json:"ok"`
	Slug string `json:"slug"`
	URL  string `json:"url"`
}

func handlePublish(pub *publish.Publisher, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PublishRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Card.Name == "" && req.Card.ID == "" {
			writeError(w, http.StatusBadRequest, "missing card")
			return
		}

		drop, err := pub.Publish(r.Context(), ingest.Session(req.Session), domain.FusionResult{
			Card:    req.Card,
			Sources: req.Sources,
		})
		if err != nil {
			logger.Error("publish failed", "err", err)
			writeError(w, http.StatusInternalServerError, "publish failed")
			return
		}
		writeJSON(w, http.StatusOK, PublishResponse{OK: true, Slug: drop.Slug, URL: drop.URL})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
