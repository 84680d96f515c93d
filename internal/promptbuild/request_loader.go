package promptbuild

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadRequest reads a BuildRequest from a YAML or JSON file. Files ending in
// .json are decoded strictly as JSON; anything else as YAML.
func LoadRequest(path string) (BuildRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BuildRequest{}, fmt.Errorf("read request file %s: %w", path, err)
	}

	isJSON := strings.EqualFold(filepath.Ext(path), ".json")
	req, err := DecodeRequest(data, isJSON)
	if err != nil {
		return BuildRequest{}, fmt.Errorf("parse request file %s: %w", path, err)
	}
	return req, nil
}

// DecodeRequest decodes a BuildRequest. Unknown keys are rejected so that
// typos in field names do not silently produce empty sections.
func DecodeRequest(data []byte, isJSON bool) (BuildRequest, error) {
	var req BuildRequest
	if isJSON {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return BuildRequest{}, err
		}
		return req, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return BuildRequest{}, nil
		}
		return BuildRequest{}, err
	}
	return req, nil
}
