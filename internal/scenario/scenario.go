// Package scenario reads and writes scenario files: named sets of raw session
// inputs that can be evaluated on their own or in batches.
package scenario

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/baghouse/internal/session"
)

// SchemaVersion is the version written into new scenario files.
const SchemaVersion = "1.0.0"

// schemaConstraint lists the file versions this build reads.
const schemaConstraint = "^1.0.0"

// scenarioFilePerm is the permission used when saving scenario files.
const scenarioFilePerm = 0o600

// Scenario file errors.
var (
	ErrMissingSchemaVersion = errors.New("scenario schema_version is required")
	ErrInvalidSchemaVersion = errors.New("scenario schema_version is not a semantic version")
	ErrIncompatibleSchema   = errors.New("scenario schema_version is not supported")
	ErrUnknownInput         = errors.New("scenario input key is unknown")
)

// Scenario is one named set of raw inputs.
type Scenario struct {
	SchemaVersion     string            `yaml:"schema_version"`
	Name              string            `yaml:"name"`
	DesignType        string            `yaml:"design_type,omitempty"`
	OverrideACCeiling bool              `yaml:"override_ac_ceiling,omitempty"`
	Inputs            map[string]string `yaml:"inputs"`

	path string
}

// Path returns the file the scenario was loaded from, if any.
func (s *Scenario) Path() string { return s.path }

// Load reads and validates a scenario file. A missing name defaults to the
// file name without extension.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	sc.path = path
	if sc.Name == "" {
		base := filepath.Base(path)
		sc.Name = base[:len(base)-len(filepath.Ext(base))]
	}
	return sc, nil
}

// Parse decodes and validates scenario YAML.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks the schema version and that every input key is known.
func (s *Scenario) Validate() error {
	if s.SchemaVersion == "" {
		return ErrMissingSchemaVersion
	}
	v, err := semver.NewVersion(s.SchemaVersion)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidSchemaVersion, s.SchemaVersion)
	}
	c, err := semver.NewConstraint(schemaConstraint)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s (supported %s)", ErrIncompatibleSchema, v, schemaConstraint)
	}

	keys := make([]string, 0, len(s.Inputs))
	for key := range s.Inputs {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if _, ok := session.LookupKey(key); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownInput, key)
		}
	}
	return nil
}

// RawInputs returns the inputs to apply, with the top-level design type and
// override folded in. Explicit inputs win.
func (s *Scenario) RawInputs() map[string]string {
	out := make(map[string]string, len(s.Inputs)+2)
	if s.DesignType != "" {
		out[string(session.KeyDesignType)] = s.DesignType
	}
	if s.OverrideACCeiling {
		out[string(session.KeyOverrideCeiling)] = strconv.FormatBool(true)
	}
	maps.Copy(out, s.Inputs)
	return out
}

// FromSession captures the current inputs of a session as a scenario.
func FromSession(name string, sess *session.Session) *Scenario {
	snap := sess.Snapshot()
	source := sess.SourceInputs()
	inputs := make(map[string]string, len(source))
	for k, v := range source {
		switch k {
		case session.KeyDesignType, session.KeyOverrideCeiling:
			continue
		}
		inputs[string(k)] = v
	}
	return &Scenario{
		SchemaVersion:     SchemaVersion,
		Name:              name,
		DesignType:        snap.Design.String(),
		OverrideACCeiling: snap.Override,
		Inputs:            inputs,
	}
}

// Save writes the scenario as YAML.
func (s *Scenario) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshalling scenario: %w", err)
	}
	if err = os.WriteFile(path, data, scenarioFilePerm); err != nil {
		return fmt.Errorf("writing scenario %s: %w", path, err)
	}
	s.path = path
	return nil
}
