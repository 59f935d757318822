package cachegw

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	gos3 "turbocache/pkg/s3"
)

const (
	headerArtifactDuration = "x-artifact-duration"
	headerArtifactTag      = "x-artifact-tag"
)

// artifactQueryResult is the per-hash entry of a batch query response:
// either {size, taskDurationMs, tag?} or {error:{message}}.
type artifactQueryResult struct {
	Size       int64
	DurationMs int64
	Tag        string
	Missing    bool
}

func (q artifactQueryResult) MarshalJSON() ([]byte, error) {
	if q.Missing {
		return json.Marshal(map[string]any{"error": apiError{Message: "Artifact not found"}})
	}
	payload := map[string]any{
		"size":           q.Size,
		"taskDurationMs": q.DurationMs,
	}
	if q.Tag != "" {
		payload["tag"] = q.Tag
	}
	return json.Marshal(payload)
}

// handleUpload stores the request body under artifacts/{team}/{hash}. The
// declared Content-Length and hash are trusted as-is, never recomputed.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	team := teamFrom(r.Context())
	hash := chi.URLParam(r, "hash")

	if r.ContentLength <= 0 {
		respondError(w, http.StatusBadRequest, "Content-Length header must be a positive number")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Error reading request body")
		return
	}

	metadata := map[string]string{
		metaDuration: strconv.FormatInt(parseDurationMs(r.Header.Get(headerArtifactDuration)), 10),
	}
	if tag := r.Header.Get(headerArtifactTag); tag != "" {
		metadata[metaTag] = tag
	}

	key := artifactKey(team, hash)
	if err := s.store.PutObject(r.Context(), s.config.Bucket, key, bytes.NewReader(body), r.ContentLength, metadata); err != nil {
		s.logger.Printf("ERROR store artifact %s: %v", key, err)
		respondError(w, http.StatusInternalServerError, "Error uploading artifact")
		return
	}

	artifactUploads.Inc()
	respondJSON(w, http.StatusAccepted, map[string]any{
		"urls": []string{fmt.Sprintf("%s/v8/artifacts/%s?teamId=%s", s.config.PublicURL, hash, url.QueryEscape(team))},
	})
}

// handleDownload streams the stored artifact bytes back to the client.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	key := artifactKey(teamFrom(r.Context()), chi.URLParam(r, "hash"))

	obj, info, err := s.store.GetObject(r.Context(), s.config.Bucket, key)
	if err != nil {
		s.logReadFailure(key, err)
		artifactDownloads.WithLabelValues("miss").Inc()
		respondError(w, http.StatusNotFound, "Artifact not found")
		return
	}
	defer obj.Close()

	artifactDownloads.WithLabelValues("hit").Inc()
	writeArtifactHeaders(w, info)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, obj); err != nil {
		s.logger.Printf("WARN stream artifact %s: %v", key, err)
	}
}

// handleExists answers HEAD requests without transferring the bytes.
func (s *Server) handleExists(w http.ResponseWriter, r *http.Request) {
	key := artifactKey(teamFrom(r.Context()), chi.URLParam(r, "hash"))

	info, err := s.store.HeadObject(r.Context(), s.config.Bucket, key)
	if err != nil {
		s.logReadFailure(key, err)
		w.WriteHeader(http.StatusNotFound)
		return
	}

	writeArtifactHeaders(w, info)
	w.WriteHeader(http.StatusOK)
}

// handleQuery resolves existence and metadata for a batch of hashes. Per-hash
// misses land in the response mapping; only a malformed body fails the batch.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	team := teamFrom(r.Context())

	var req struct {
		Hashes []string `json:"hashes"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Hashes == nil {
		respondError(w, http.StatusBadRequest, "hashes must be an array of strings")
		return
	}

	results := make(map[string]artifactQueryResult, len(req.Hashes))
	for _, hash := range req.Hashes {
		key := artifactKey(team, hash)
		info, err := s.store.HeadObject(r.Context(), s.config.Bucket, key)
		if err != nil {
			s.logReadFailure(key, err)
			results[hash] = artifactQueryResult{Missing: true}
			continue
		}
		results[hash] = artifactQueryResult{
			Size:       info.Size,
			DurationMs: parseDurationMs(info.Metadata[metaDuration]),
			Tag:        info.Metadata[metaTag],
		}
	}

	artifactQueries.Inc()
	respondJSON(w, http.StatusOK, results)
}

// handleStatus reports the static capability flag. Disabled/over-limit states
// are reserved for future policy and never emitted today.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "enabled"})
}

func writeArtifactHeaders(w http.ResponseWriter, info gos3.ObjectInfo) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	if tag := info.Metadata[metaTag]; tag != "" {
		w.Header().Set(headerArtifactTag, tag)
	}
}

// logReadFailure keeps genuine absence and storage trouble apart in the logs;
// callers still surface both to the client as a 404.
func (s *Server) logReadFailure(key string, err error) {
	if gos3.IsNotFound(err) {
		s.logger.Printf("DEBUG artifact %s not found", key)
		return
	}
	s.logger.Printf("ERROR read artifact %s: %v", key, err)
}

func parseDurationMs(raw string) int64 {
	if raw == "" {
		return 0
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ms < 0 {
		return 0
	}
	return ms
}
