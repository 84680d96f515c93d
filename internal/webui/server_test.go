package webui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/kayz/veoprompt/internal/nodes"
	"github.com/kayz/veoprompt/internal/promptbuild"
)

type failingFiles struct{}

func (failingFiles) WriteCut(context.Context, int, string) (string, error) {
	return "", errors.New("read-only file system")
}

func newTestServer(files promptbuild.FileWriter) *Server {
	builder := promptbuild.NewBuilder()
	composer := promptbuild.NewComposer(files, nil)
	return NewServer(nodes.Default(builder, composer), builder, composer)
}

func doJSON(t *testing.T, h http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestStatusEndpoint(t *testing.T) {
	rr := doJSON(t, newTestServer(nil).Handler(), http.MethodGet, "/api/status", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "\"ok\":true") {
		t.Fatalf("unexpected status payload: %s", rr.Body.String())
	}
}

func TestNodesEndpoint(t *testing.T) {
	rr := doJSON(t, newTestServer(nil).Handler(), http.MethodGet, "/api/nodes", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var body struct {
		Nodes []nodes.Descriptor `json:"nodes"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode nodes: %v", err)
	}
	if len(body.Nodes) != 2 || body.Nodes[0].Name != nodes.BuilderName || body.Nodes[1].Name != nodes.ComposerName {
		t.Fatalf("unexpected nodes: %+v", body.Nodes)
	}
}

func TestNodeEndpoint(t *testing.T) {
	h := newTestServer(nil).Handler()

	rr := doJSON(t, h, http.MethodGet, "/api/nodes/Prompt%20Final%20Composer", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var desc nodes.Descriptor
	if err := json.Unmarshal(rr.Body.Bytes(), &desc); err != nil {
		t.Fatalf("decode descriptor: %v", err)
	}
	if desc.Name != nodes.ComposerName || !desc.OutputNode {
		t.Fatalf("unexpected descriptor: %+v", desc)
	}
	if _, ok := desc.Inputs.Lookup("cut_number"); !ok {
		t.Fatalf("expected cut_number input, got %+v", desc.Inputs)
	}

	rr = doJSON(t, h, http.MethodGet, "/api/nodes/Missing", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestInvokeEndpoint(t *testing.T) {
	h := newTestServer(nil).Handler()

	rr := doJSON(t, h, http.MethodPost, "/api/nodes/Prompt%20Builder/invoke", map[string]any{
		"inputs": map[string]any{"person": "A woman", "camera_preset": "static"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var built invokeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &built); err != nil {
		t.Fatalf("decode builder response: %v", err)
	}
	if _, err := uuid.Parse(built.InvocationID); err != nil {
		t.Fatalf("expected uuid invocation id, got %q: %v", built.InvocationID, err)
	}
	if got := rr.Header().Get("X-Invocation-ID"); got != built.InvocationID {
		t.Fatalf("header invocation id %q does not match body %q", got, built.InvocationID)
	}

	rr = doJSON(t, h, http.MethodPost, "/api/nodes/Prompt%20Final%20Composer/invoke", map[string]any{
		"inputs": map[string]any{
			"structured_prompt": built.Outputs["structured_prompt"],
			"cut_number":        4,
			"copy_to_clipboard": false,
		},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "The camera remains static with stable framing.") {
		t.Fatalf("unexpected composer response: %s", rr.Body.String())
	}
}

func TestInvokeEndpointErrors(t *testing.T) {
	h := newTestServer(nil).Handler()

	rr := doJSON(t, h, http.MethodPost, "/api/nodes/Missing/invoke", map[string]any{"inputs": map[string]any{}})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}

	rr = doJSON(t, h, http.MethodPost, "/api/nodes/Prompt%20Final%20Composer/invoke", map[string]any{
		"inputs": map[string]any{"cut_number": 0},
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/nodes/Prompt%20Builder/invoke", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad json, got %d", rec.Code)
	}
}

func TestInvokeEndpointSaveFailureIsWarning(t *testing.T) {
	h := newTestServer(failingFiles{}).Handler()

	rr := doJSON(t, h, http.MethodPost, "/api/nodes/Prompt%20Final%20Composer/invoke", map[string]any{
		"inputs": map[string]any{"structured_prompt": "<PERSON>p</PERSON>", "save_to_txt": true},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp invokeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp.Warning, "read-only file system") {
		t.Fatalf("expected save warning, got %q", resp.Warning)
	}
	if resp.Outputs["final_prompt"] == "" {
		t.Fatalf("expected final prompt despite save failure")
	}
}

func TestPipelineEndpoint(t *testing.T) {
	h := newTestServer(nil).Handler()

	rr := doJSON(t, h, http.MethodPost, "/api/pipeline", map[string]any{
		"request": map[string]any{
			"person":      "A woman",
			"background":  "a quiet street",
			"era":         "modern day",
			"timeline":    "She walks forward.",
			"constraints": "no text overlays",
			"styles":      []string{"cinematic"},
			"time":        "sunset, warm golden hour light",
			"camera":      "zoom in",
		},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp pipelineResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := "cinematic style with dramatic lighting and shallow depth of field. A woman The environment is a quiet street."
	if !strings.HasPrefix(resp.Result.Text, want) {
		t.Fatalf("unexpected final prompt: %s", resp.Result.Text)
	}
	if resp.Record.Get(promptbuild.TagCamera) != "zoom in" {
		t.Fatalf("unexpected record camera: %q", resp.Record.Get(promptbuild.TagCamera))
	}
}

func TestPipelineEndpointRejectsUnknownStyle(t *testing.T) {
	rr := doJSON(t, newTestServer(nil).Handler(), http.MethodPost, "/api/pipeline", map[string]any{
		"request": map[string]any{"styles": []string{"noir"}},
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestPipelineEndpointDefaultsOmittedPresets(t *testing.T) {
	rr := doJSON(t, newTestServer(nil).Handler(), http.MethodPost, "/api/pipeline", map[string]any{
		"request": map[string]any{"person": "A man"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp pipelineResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got := resp.Record.Get(promptbuild.TagTime); got != "none" {
		t.Fatalf("expected omitted time to default to none, got %q", got)
	}
	if got := resp.Record.Get(promptbuild.TagCamera); got != "none" {
		t.Fatalf("expected omitted camera to default to none, got %q", got)
	}
	if !strings.Contains(resp.Result.Text, "The scene takes place in none.") {
		t.Fatalf("unexpected final prompt: %s", resp.Result.Text)
	}
}
