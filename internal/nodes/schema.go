package nodes

// InputType is the host-side widget type of a node input.
type InputType string

const (
	TypeString  InputType = "STRING"
	TypeBoolean InputType = "BOOLEAN"
	TypeInt     InputType = "INT"
	TypeChoice  InputType = "CHOICE"
)

// Input describes one declared node input.
type Input struct {
	Name      string    `json:"name" yaml:"name"`
	Type      InputType `json:"type" yaml:"type"`
	Default   any       `json:"default,omitempty" yaml:"default,omitempty"`
	Multiline bool      `json:"multiline,omitempty" yaml:"multiline,omitempty"`
	Min       *int      `json:"min,omitempty" yaml:"min,omitempty"`
	Choices   []string  `json:"choices,omitempty" yaml:"choices,omitempty"`
}

// InputSchema is the ordered input declaration of a node.
type InputSchema struct {
	Required []Input `json:"required" yaml:"required"`
}

// Lookup finds an input by name.
func (s InputSchema) Lookup(name string) (Input, bool) {
	for _, in := range s.Required {
		if in.Name == name {
			return in, true
		}
	}
	return Input{}, false
}

// Descriptor is what a host needs to register a node.
type Descriptor struct {
	Name        string      `json:"name" yaml:"name"`
	DisplayName string      `json:"display_name" yaml:"display_name"`
	Category    string      `json:"category" yaml:"category"`
	OutputNode  bool        `json:"output_node,omitempty" yaml:"output_node,omitempty"`
	Inputs      InputSchema `json:"inputs" yaml:"inputs"`
	Returns     []string    `json:"returns" yaml:"returns"`
}

func multilineString(name string) Input {
	return Input{Name: name, Type: TypeString, Multiline: true, Default: ""}
}

func boolean(name string, def bool) Input {
	return Input{Name: name, Type: TypeBoolean, Default: def}
}

func choice(name string, choices []string) Input {
	in := Input{Name: name, Type: TypeChoice, Choices: choices}
	if len(choices) > 0 {
		in.Default = choices[0]
	}
	return in
}

func integer(name string, def, min int) Input {
	return Input{Name: name, Type: TypeInt, Default: def, Min: &min}
}
