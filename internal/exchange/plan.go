package exchange

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/fluxutil/internal/model"
)

// ErrUnknownMetabolite is returned when a plan names a metabolite the model
// does not have.
var ErrUnknownMetabolite = errors.New("unknown metabolite")

// Plan is a batch of exchanges to add, usually loaded from YAML:
//
//	model: e_coli_core
//	exchanges:
//	  - metabolite: glc__D_e
//	    demand: false
//	    prefix: EX_
//	    bound: 10
//	  - metabolite: ac_c
type Plan struct {
	// Model optionally names the model the plan targets. Apply rejects a
	// mismatch when set.
	Model string `yaml:"model,omitempty"`

	Exchanges []Entry `yaml:"exchanges"`
}

// Entry is one exchange. Unset fields take the AddExchange defaults.
type Entry struct {
	Metabolite string   `yaml:"metabolite"`
	Demand     *bool    `yaml:"demand,omitempty"`
	Prefix     *string  `yaml:"prefix,omitempty"`
	Bound      *float64 `yaml:"bound,omitempty"`
}

// Options converts the entry to AddExchange options.
func (e Entry) Options() []Option {
	var opts []Option
	if e.Demand != nil {
		opts = append(opts, WithDemand(*e.Demand))
	}
	if e.Prefix != nil {
		opts = append(opts, WithPrefix(*e.Prefix))
	}
	if e.Bound != nil {
		opts = append(opts, WithBound(*e.Bound))
	}
	return opts
}

// LoadPlan reads and parses a plan file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	return ParsePlan(data)
}

// ParsePlan parses YAML. Unknown fields are rejected.
func ParsePlan(data []byte) (*Plan, error) {
	var p Plan
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	for i, e := range p.Exchanges {
		if e.Metabolite == "" {
			return nil, fmt.Errorf("parse plan: exchanges[%d]: metabolite is required", i)
		}
	}
	return &p, nil
}

// Apply adds every exchange in order. It stops at the first failure and
// returns the reactions created before it. opts apply to every entry and
// are overridden by the entry's own fields.
func (p *Plan) Apply(m *model.Model, opts ...Option) ([]*model.Reaction, error) {
	if p.Model != "" && p.Model != m.ID {
		return nil, fmt.Errorf("plan targets model %q, got %q", p.Model, m.ID)
	}

	var created []*model.Reaction
	for i, e := range p.Exchanges {
		met, ok := m.Metabolite(e.Metabolite)
		if !ok {
			return created, fmt.Errorf("exchanges[%d]: %w: %s", i, ErrUnknownMetabolite, e.Metabolite)
		}
		rxn, err := AddExchange(m, met, append(append([]Option(nil), opts...), e.Options()...)...)
		if err != nil {
			return created, fmt.Errorf("exchanges[%d]: %w", i, err)
		}
		created = append(created, rxn)
	}
	return created, nil
}
