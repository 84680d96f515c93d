package webui

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/kayz/veoprompt/internal/logger"
	"github.com/kayz/veoprompt/internal/nodes"
	"github.com/kayz/veoprompt/internal/promptbuild"
)

// Server exposes the node registry to a host over HTTP.
type Server struct {
	registry  *nodes.Registry
	builder   *promptbuild.Builder
	composer  *promptbuild.Composer
	startedAt time.Time
}

func NewServer(registry *nodes.Registry, builder *promptbuild.Builder, composer *promptbuild.Composer) *Server {
	return &Server{
		registry:  registry,
		builder:   builder,
		composer:  composer,
		startedAt: time.Now().UTC(),
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer, accessLog)

	r.Get("/", s.handleIndex)
	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/nodes", s.handleNodes)
		r.Get("/nodes/{name}", s.handleNode)
		r.Post("/nodes/{name}/invoke", s.handleInvoke)
		r.Post("/pipeline", s.handlePipeline)
	})
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(defaultIndexHTML))
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"started_at": s.startedAt.Format(time.RFC3339),
		"uptime_sec": int(time.Since(s.startedAt).Seconds()),
		"nodes":      s.registry.Names(),
	})
}

func (s *Server) handleNodes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"nodes": s.registry.Describe()})
}

func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid node name"})
		return
	}
	n, ok := s.registry.Get(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown node: " + name})
		return
	}
	writeJSON(w, http.StatusOK, nodes.Describe(n))
}

type invokeRequest struct {
	Inputs nodes.Inputs `json:"inputs"`
}

type invokeResponse struct {
	InvocationID string        `json:"invocation_id"`
	Outputs      nodes.Outputs `json:"outputs"`
	Warning      string        `json:"warning,omitempty"`
}

func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid node name"})
		return
	}

	var req invokeRequest
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	id := uuid.NewString()
	w.Header().Set("X-Invocation-ID", id)
	out, err := s.registry.Invoke(nodes.WithInvocationID(r.Context(), id), name, req.Inputs)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, invokeResponse{InvocationID: id, Outputs: out})
	case errors.Is(err, nodes.ErrSideEffect):
		writeJSON(w, http.StatusOK, invokeResponse{InvocationID: id, Outputs: out, Warning: err.Error()})
	case errors.Is(err, nodes.ErrUnknownNode):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, nodes.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

type pipelineRequest struct {
	Request promptbuild.BuildRequest `json:"request"`
	Options promptbuild.Options      `json:"options"`
}

type pipelineResponse struct {
	Record  promptbuild.Record `json:"record"`
	Result  promptbuild.Result `json:"result"`
	Warning string             `json:"warning,omitempty"`
}

// handlePipeline builds and composes in one call. The record is passed to
// the composer directly, without the tagged round trip.
func (s *Server) handlePipeline(w http.ResponseWriter, r *http.Request) {
	req := pipelineRequest{Options: promptbuild.Options{CutNumber: 1}}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body: " + err.Error()})
		return
	}
	if req.Options.SaveToFile && req.Options.CutNumber < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "options.cut_number must be at least 1"})
		return
	}

	rec := s.builder.Build(req.Request)
	res, err := s.composer.Compose(r.Context(), rec, req.Options)
	resp := pipelineResponse{Record: rec, Result: res}
	if err != nil {
		logger.Warn("Pipeline save failed: %v", err)
		resp.Warning = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		l := logger.Zerolog()
		l.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

const defaultIndexHTML = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>veoprompt</title>
<style>
body { font-family: sans-serif; max-width: 760px; margin: 2em auto; }
textarea, input, select { width: 100%; margin-bottom: .6em; }
pre { white-space: pre-wrap; background: #f4f4f4; padding: 1em; }
</style>
</head>
<body>
<h1>Veo prompt</h1>
<form id="f">
<textarea name="person" placeholder="person"></textarea>
<textarea name="background" placeholder="background"></textarea>
<textarea name="era" placeholder="era"></textarea>
<textarea name="timeline" placeholder="timeline"></textarea>
<textarea name="constraints" placeholder="constraints"></textarea>
<input name="styles" value="realistic,cinematic">
<input name="time" value="none">
<input name="camera" value="none">
<button type="submit">Compose</button>
</form>
<pre id="out"></pre>
<script>
document.getElementById('f').addEventListener('submit', async (e) => {
  e.preventDefault();
  const fd = new FormData(e.target);
  const request = Object.fromEntries(fd.entries());
  request.styles = request.styles.split(',').map(s => s.trim()).filter(Boolean);
  const res = await fetch('/api/pipeline', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({request, options: {cut_number: 1}}),
  });
  const body = await res.json();
  document.getElementById('out').textContent = body.result ? body.result.final_prompt : body.error;
});
</script>
</body>
</html>`
