/*
Package config holds the options of a respond engine.

Options may be set in code, starting from Default(), or loaded from a
file in YAML, TOML or JSON format:

    printWithBreakpoints: [md]
    addOrientationBps: true
    breakpoints:
      - alias: huge
        mediaQuery: "screen and (min-width: 2400px)"
        priority: 1300

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>
*/
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/respond/breakpoint"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// tracer traces with key 'respond.config'.
func tracer() tracing.Trace {
	return tracing.Select("respond.config")
}

// ErrUnknownFormat is returned for configuration files with an extension
// other than .yaml, .yml, .toml or .json.
var ErrUnknownFormat = errors.New("config: unknown file format")

// BreakpointConfig is a custom breakpoint, or the modification of a default
// breakpoint with the same alias. Priority and Overlapping are pointers:
// when modifying a default, fields which are set replace the default's
// value, including a priority of 0 and a cleared overlap flag.
type BreakpointConfig struct {
	Alias       string `yaml:"alias" toml:"alias" json:"alias"`
	MediaQuery  string `yaml:"mediaQuery" toml:"mediaQuery" json:"mediaQuery"`
	Priority    *int   `yaml:"priority" toml:"priority" json:"priority"`
	Overlapping *bool  `yaml:"overlapping" toml:"overlapping" json:"overlapping"`
	Suffix      string `yaml:"suffix,omitempty" toml:"suffix" json:"suffix,omitempty"`
}

// Options configure the breakpoint registry, print handling and
// server-side rendering.
type Options struct {
	// Breakpoints to activate when printing, in addition to print.
	PrintWithBreakpoints []string `yaml:"printWithBreakpoints" toml:"printWithBreakpoints" json:"printWithBreakpoints"`
	// Do not use the default breakpoints.
	DisableDefaultBps bool `yaml:"disableDefaultBps" toml:"disableDefaultBps" json:"disableDefaultBps"`
	// Add breakpoints for device orientations.
	AddOrientationBps bool `yaml:"addOrientationBps" toml:"addOrientationBps" json:"addOrientationBps"`
	// Restore simulated activations when the viewport is resized.
	MediaTriggerAutoRestore bool `yaml:"mediaTriggerAutoRestore" toml:"mediaTriggerAutoRestore" json:"mediaTriggerAutoRestore"`
	// Drop overlapping breakpoints from observer notifications.
	FilterOverlaps bool `yaml:"filterOverlaps" toml:"filterOverlaps" json:"filterOverlaps"`
	// Documents carry the output of an earlier server render. Generated
	// classes and the generated style element are removed before rendering
	// again.
	ServerLoaded bool `yaml:"serverLoaded" toml:"serverLoaded" json:"serverLoaded"`
	// Breakpoints active on the server.
	SSRObserveBreakpoints []string `yaml:"ssrObserveBreakpoints" toml:"ssrObserveBreakpoints" json:"ssrObserveBreakpoints"`
	// Unit for unit-less numeric values.
	DefaultUnit string `yaml:"defaultUnit" toml:"defaultUnit" json:"defaultUnit"`
	// Custom breakpoints, merged into the defaults by alias.
	Breakpoints []BreakpointConfig `yaml:"breakpoints" toml:"breakpoints" json:"breakpoints"`
}

// Default returns the default options.
func Default() Options {
	return Options{
		PrintWithBreakpoints:    []string{},
		MediaTriggerAutoRestore: true,
		SSRObserveBreakpoints:   []string{},
		DefaultUnit:             "px",
	}
}

// CustomBreakpoints converts the configured breakpoints. Unset priorities
// and overlap flags are zero.
func (o Options) CustomBreakpoints() []*breakpoint.Breakpoint {
	bps := make([]*breakpoint.Breakpoint, 0, len(o.Breakpoints))
	for _, bc := range o.Breakpoints {
		bp := &breakpoint.Breakpoint{
			Alias:      bc.Alias,
			MediaQuery: bc.MediaQuery,
			Suffix:     bc.Suffix,
		}
		if bc.Priority != nil {
			bp.Priority = *bc.Priority
		}
		if bc.Overlapping != nil {
			bp.Overlapping = *bc.Overlapping
		}
		bps = append(bps, bp)
	}
	return bps
}

// BreakpointList merges the configured breakpoints into the default tables.
// Explicitly set priorities and overlap flags win over the defaults.
func (o Options) BreakpointList() []*breakpoint.Breakpoint {
	list := breakpoint.Build(o.CustomBreakpoints(), o.BuildOptions())
	byAlias := make(map[string]*breakpoint.Breakpoint, len(list))
	for _, bp := range list {
		byAlias[bp.Alias] = bp
	}
	for _, bc := range o.Breakpoints {
		bp := byAlias[bc.Alias]
		if bp == nil {
			continue
		}
		if bc.Priority != nil {
			bp.Priority = *bc.Priority
		}
		if bc.Overlapping != nil {
			bp.Overlapping = *bc.Overlapping
		}
	}
	return list
}

// BuildOptions returns the options for breakpoint.Build.
func (o Options) BuildOptions() breakpoint.BuildOptions {
	return breakpoint.BuildOptions{
		DisableDefaults: o.DisableDefaultBps,
		AddOrientations: o.AddOrientationBps,
	}
}

// Registry builds the breakpoint registry for the options.
func (o Options) Registry() *breakpoint.Registry {
	return breakpoint.NewRegistry(o.BreakpointList())
}

// Validate checks the options for consistency.
func (o Options) Validate() error {
	var errs []error
	for i, bc := range o.Breakpoints {
		if strings.TrimSpace(bc.Alias) == "" {
			errs = append(errs, fmt.Errorf("breakpoint #%d has no alias", i))
		}
	}
	if o.DisableDefaultBps && len(o.Breakpoints) == 0 {
		errs = append(errs, errors.New("default breakpoints disabled, but no custom breakpoints"))
	}
	if o.DefaultUnit == "" {
		errs = append(errs, errors.New("default unit must not be empty"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid options: %w", err)
	}
	return nil
}

// LoadFile reads options from a file. The format is chosen by the file's
// extension. Options not present in the file keep their default value.
func LoadFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("config: %w", err)
	}
	opts, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return Options{}, fmt.Errorf("config: %s: %w", path, err)
	}
	tracer().Infof("options loaded from %s", path)
	return opts, nil
}

// Decode parses options in the format given by a file extension.
func Decode(data []byte, ext string) (Options, error) {
	opts := Default()
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &opts); err != nil {
			return Options{}, fmt.Errorf("decode YAML: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &opts); err != nil {
			return Options{}, fmt.Errorf("decode TOML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &opts); err != nil {
			return Options{}, fmt.Errorf("decode JSON: %w", err)
		}
	default:
		return Options{}, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}
