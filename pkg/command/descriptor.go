package command

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/excmd/pkg/address"
)

// Descriptor is a fully parsed command line, ready for resolution and execution.
type Descriptor struct {
	// Name is the canonical command name. It is empty for a line holding only a
	// range, which moves the cursor.
	Name string `json:"name" yaml:"name"`

	Forced bool `json:"forced,omitempty" yaml:"forced,omitempty"`

	Range address.Range `json:"range" yaml:"range"`

	// RangeDefaulted reports that Range was filled in from the command's default.
	RangeDefaulted bool `json:"range_defaulted,omitempty" yaml:"range_defaulted,omitempty"`

	Params Params `json:"params,omitempty" yaml:"params,omitempty"`
}

// String renders the descriptor as canonical ex text. Parsing the result
// yields an equivalent descriptor.
func (d *Descriptor) String() string {
	var b strings.Builder
	if !d.RangeDefaulted {
		b.WriteString(d.Range.String())
	}
	b.WriteString(d.Name)
	if d.Forced {
		b.WriteByte('!')
	}

	if d.Params == nil {
		return b.String()
	}
	args := d.Params.Args()
	if args == "" {
		return b.String()
	}
	if a, ok := d.Params.(attached); !ok || !a.attached() {
		b.WriteByte(' ')
	}
	b.WriteString(args)
	return b.String()
}

// JSON encodes the descriptor with indentation.
func (d *Descriptor) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// YAML encodes the descriptor as a YAML document.
func (d *Descriptor) YAML() ([]byte, error) {
	return yaml.Marshal(d)
}
