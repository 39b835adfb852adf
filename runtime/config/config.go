// Package config loads the project file logix.yaml: custom instruction
// definitions and lint policy.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	logixerrors "github.com/opal-lang/logix/core/errors"
	"github.com/opal-lang/logix/core/logic"
	"github.com/opal-lang/logix/runtime/lint"
)

// FileName is the project file looked up by Discover.
const FileName = "logix.yaml"

// SupportedMajor is the only config major version understood.
const SupportedMajor = "v1"

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://logix.json"

// Config is a parsed project file.
type Config struct {
	Version      string             `yaml:"version" json:"version"`
	Instructions []logic.Definition `yaml:"instructions,omitempty" json:"instructions,omitempty"`
	Lint         Lint               `yaml:"lint,omitempty" json:"lint,omitempty"`

	// Path is the file the config was loaded from, empty for defaults.
	Path string `yaml:"-" json:"-"`
}

// Lint holds lint settings.
type Lint struct {
	UnknownKeys string `yaml:"unknownKeys,omitempty" json:"unknownKeys,omitempty"`
}

// Default returns the config used when no project file exists.
func Default() *Config {
	return &Config{Version: "1.0.0", Lint: Lint{UnknownKeys: string(lint.PolicyWarn)}}
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true
	if compiler.Formats == nil {
		compiler.Formats = make(map[string]func(interface{}) bool)
	}
	compiler.Formats["semver"] = isSemver

	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
})

// isSemver accepts versions with or without the "v" prefix.
func isSemver(v interface{}) bool {
	s, ok := v.(string)
	if !ok {
		return true // Type validation happens separately
	}
	if !strings.HasPrefix(s, "v") {
		s = "v" + s
	}
	return semver.IsValid(s)
}

// Parse decodes and validates a project file.
func Parse(data []byte) (*Config, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, logixerrors.Wrap(logixerrors.FormatError, "config is not valid YAML", err)
	}
	if doc == nil {
		return nil, logixerrors.New(logixerrors.InvalidInput, "config is empty")
	}

	if err := validate(doc); err != nil {
		return nil, err
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, logixerrors.Wrap(logixerrors.FormatError, "config does not decode", err)
	}
	if cfg.Lint.UnknownKeys == "" {
		cfg.Lint.UnknownKeys = string(lint.PolicyWarn)
	}

	if major := semver.Major(canonicalVersion(cfg.Version)); major != SupportedMajor {
		return nil, logixerrors.Newf(logixerrors.InvalidInput, "unsupported config version %s", cfg.Version).
			WithContext("supported", SupportedMajor)
	}
	return cfg, nil
}

// validate checks the document against the embedded schema. YAML values are
// passed through JSON so numbers have the representation the validator
// expects.
func validate(doc interface{}) error {
	schema, err := compiledSchema()
	if err != nil {
		return logixerrors.Wrap(logixerrors.InvalidInput, "config schema does not compile", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return logixerrors.Wrap(logixerrors.FormatError, "config has non-JSON values", err)
	}
	value, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return logixerrors.Wrap(logixerrors.FormatError, "config has non-JSON values", err)
	}

	if err := schema.Validate(value); err != nil {
		detail := err.Error()
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			detail = leafMessage(verr)
		}
		return logixerrors.Wrap(logixerrors.InvalidInput, "config does not match schema", err).
			WithContext("detail", detail)
	}
	return nil
}

// leafMessage returns the first innermost cause, which names the failing
// field instead of the enclosing object.
func leafMessage(verr *jsonschema.ValidationError) string {
	for len(verr.Causes) > 0 {
		verr = verr.Causes[0]
	}
	if verr.InstanceLocation == "" {
		return verr.Message
	}
	return verr.InstanceLocation + ": " + verr.Message
}

func canonicalVersion(v string) string {
	if strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, logixerrors.NewNotFound("config file", path, "")
		}
		return nil, logixerrors.Wrap(logixerrors.InvalidInput, "cannot read config", err).WithInput(path)
	}
	cfg, err := Parse(data)
	if err != nil {
		var lerr *logixerrors.LogixError
		if errors.As(err, &lerr) && lerr.Input == "" {
			return nil, lerr.WithInput(path)
		}
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// Discover looks for FileName in dir and each parent directory.
func Discover(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Resolve loads path when given, otherwise the discovered project file,
// otherwise the defaults.
func Resolve(path, dir string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if found, ok := Discover(dir); ok {
		return Load(found)
	}
	return Default(), nil
}

// Registry builds the built-in registry extended with the custom instructions.
func (c *Config) Registry() (*logic.Registry, error) {
	if len(c.Instructions) == 0 {
		return logic.Default(), nil
	}
	return logic.NewRegistry(c.Instructions...)
}

// UnknownKeys returns the lint policy for unknown instruction keys.
func (c *Config) UnknownKeys() lint.Policy {
	p, err := lint.ParsePolicy(c.Lint.UnknownKeys)
	if err != nil {
		return lint.PolicyWarn
	}
	return p
}
