// Package nodes exposes the prompt builder and composer as host nodes: a
// declared input schema plus an invoke-by-name entry point.
package nodes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kayz/veoprompt/internal/logger"
	"github.com/kayz/veoprompt/internal/promptbuild"
)

const Category = "ComfyUI-BJNodes"

const (
	BuilderName  = "Prompt Builder"
	ComposerName = "Prompt Final Composer"
)

var (
	ErrUnknownNode  = errors.New("unknown node")
	ErrInvalidInput = errors.New("invalid input")

	// ErrSideEffect marks a failed save. The outputs returned alongside it
	// are complete.
	ErrSideEffect = errors.New("side effect failed")
)

// Node is one host-invokable operation.
type Node interface {
	Name() string
	DisplayName() string
	Schema() InputSchema
	ReturnNames() []string
	OutputNode() bool
	Invoke(ctx context.Context, in Inputs) (Outputs, error)
}

// Registry maps node names to nodes, keeping registration order.
type Registry struct {
	nodes map[string]Node
	order []string
}

// NewRegistry registers nodes in the given order. Later duplicates replace
// earlier ones.
func NewRegistry(nodes ...Node) *Registry {
	r := &Registry{nodes: make(map[string]Node, len(nodes))}
	for _, n := range nodes {
		if _, exists := r.nodes[n.Name()]; !exists {
			r.order = append(r.order, n.Name())
		}
		r.nodes[n.Name()] = n
	}
	return r
}

// Default returns the registry of the two prompt nodes.
func Default(builder *promptbuild.Builder, composer *promptbuild.Composer) *Registry {
	return NewRegistry(NewBuilderNode(builder), NewComposerNode(composer))
}

func (r *Registry) Get(name string) (Node, bool) {
	n, ok := r.nodes[name]
	return n, ok
}

func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Describe returns a descriptor per node in registration order.
func (r *Registry) Describe() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, Describe(r.nodes[name]))
	}
	return out
}

// Describe returns the host registration data of n.
func Describe(n Node) Descriptor {
	return Descriptor{
		Name:        n.Name(),
		DisplayName: n.DisplayName(),
		Category:    Category,
		OutputNode:  n.OutputNode(),
		Inputs:      n.Schema(),
		Returns:     n.ReturnNames(),
	}
}

type invocationKey struct{}

// WithInvocationID attaches a caller-chosen invocation ID to ctx.
func WithInvocationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, invocationKey{}, id)
}

// InvocationID returns the ID attached by WithInvocationID, or "".
func InvocationID(ctx context.Context) string {
	id, _ := ctx.Value(invocationKey{}).(string)
	return id
}

// Invoke runs the named node. The invocation is logged under the ID from
// ctx, or a fresh uuid when ctx carries none.
func (r *Registry) Invoke(ctx context.Context, name string, in Inputs) (Outputs, error) {
	n, ok := r.nodes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, name)
	}

	id := InvocationID(ctx)
	if id == "" {
		id = uuid.NewString()
	}
	l := logger.Zerolog().With().Str("node", name).Str("invocation_id", id).Logger()

	l.Debug().Msg("invoking node")
	out, err := n.Invoke(ctx, in)
	if err != nil {
		l.Warn().Err(err).Msg("node invocation failed")
		return out, err
	}
	l.Debug().Msg("node invocation done")
	return out, nil
}

// BuilderNode serializes free text and presets into a tagged prompt.
type BuilderNode struct {
	builder *promptbuild.Builder
}

func NewBuilderNode(b *promptbuild.Builder) *BuilderNode {
	if b == nil {
		b = promptbuild.NewBuilder()
	}
	return &BuilderNode{builder: b}
}

func (n *BuilderNode) Name() string { return BuilderName }
func (n *BuilderNode) DisplayName() string { return BuilderName }
func (n *BuilderNode) ReturnNames() []string { return []string{"structured_prompt"} }
func (n *BuilderNode) OutputNode() bool { return false }

var styleInputs = []struct {
	name string
	flag promptbuild.StyleFlag
	def  bool
}{
	{"style_realistic", promptbuild.StyleRealistic, true},
	{"style_cinematic", promptbuild.StyleCinematic, true},
	{"style_documentary", promptbuild.StyleDocumentary, false},
	{"style_epic_fantasy", promptbuild.StyleEpicFantasy, false},
	{"style_handheld_realism", promptbuild.StyleHandheldRealism, false},
}

func (n *BuilderNode) Schema() InputSchema {
	s := InputSchema{Required: []Input{
		multilineString("person"),
		multilineString("background"),
		multilineString("era_background"),
		multilineString("timeline_actions"),
		multilineString("constraints"),
	}}
	for _, st := range styleInputs {
		s.Required = append(s.Required, boolean(st.name, st.def))
	}
	s.Required = append(s.Required,
		choice("time_preset", promptbuild.TimePresets()),
		choice("camera_preset", promptbuild.CameraPresets()),
	)
	return s
}

func (n *BuilderNode) Invoke(_ context.Context, in Inputs) (Outputs, error) {
	r, err := resolve(n.Schema(), in)
	if err != nil {
		return nil, err
	}

	var styles promptbuild.Styles
	for _, st := range styleInputs {
		if r.bools[st.name] {
			styles = styles.With(st.flag)
		}
	}

	tagged := n.builder.BuildTagged(promptbuild.BuildRequest{
		Fields: promptbuild.Fields{
			Person:      r.strings["person"],
			Background:  r.strings["background"],
			Era:         r.strings["era_background"],
			Timeline:    r.strings["timeline_actions"],
			Constraints: r.strings["constraints"],
		},
		Styles: styles,
		Time:   promptbuild.TimePreset(r.strings["time_preset"]),
		Camera: promptbuild.ParseCamera(r.strings["camera_preset"]),
	})
	return Outputs{"structured_prompt": tagged}, nil
}

// ComposerNode turns a tagged prompt into the final paragraph, optionally
// saving and copying it.
type ComposerNode struct {
	composer *promptbuild.Composer
}

func NewComposerNode(c *promptbuild.Composer) *ComposerNode {
	if c == nil {
		c = promptbuild.NewComposer(nil, nil)
	}
	return &ComposerNode{composer: c}
}

func (n *ComposerNode) Name() string { return ComposerName }
func (n *ComposerNode) DisplayName() string { return "Prompt Final Composer (Veo3 + Save + Clipboard)" }
func (n *ComposerNode) ReturnNames() []string { return []string{"final_prompt"} }
func (n *ComposerNode) OutputNode() bool { return true }

func (n *ComposerNode) Schema() InputSchema {
	return InputSchema{Required: []Input{
		multilineString("structured_prompt"),
		integer("cut_number", 1, 1),
		boolean("save_to_txt", false),
		boolean("copy_to_clipboard", true),
	}}
}

func (n *ComposerNode) Invoke(ctx context.Context, in Inputs) (Outputs, error) {
	r, err := resolve(n.Schema(), in)
	if err != nil {
		return nil, err
	}

	res, err := n.composer.ComposeTagged(ctx, r.strings["structured_prompt"], promptbuild.Options{
		CutNumber:       r.ints["cut_number"],
		SaveToFile:      r.bools["save_to_txt"],
		CopyToClipboard: r.bools["copy_to_clipboard"],
	})

	out := Outputs{
		"final_prompt": res.Text,
		"copied":       res.Copied,
	}
	if res.SavedPath != "" {
		out["saved_path"] = res.SavedPath
	}
	if err != nil {
		return out, fmt.Errorf("%w: %w", ErrSideEffect, err)
	}
	return out, nil
}
