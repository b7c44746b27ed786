// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

package commandline

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/jorgemunozl/fnplot/pkg/coordinator"
	"github.com/jorgemunozl/fnplot/pkg/typeset"
)

// Settings selects the renderers and configures the coordinator. It is filled from the "-set" flag,
// see ParseSettings.
type Settings struct {
	// Chart is the name of the chart renderer: "chartjs", "margaid", "gonumplot", "plotly" or "terminal".
	Chart string

	// Typeset is the name of the typesetting renderer: "mathml" or "markdown".
	Typeset string

	// Width and Height of the chart. 0 means the renderer default.
	Width, Height int

	// DefaultExpression plotted when the program starts.
	DefaultExpression string

	// ReportErrors shows evaluation errors to the user, instead of only logging them.
	ReportErrors bool

	// ThrowOnError and DisplayMode are the typesetting options.
	ThrowOnError, DisplayMode bool
}

// DefaultSettings returns the settings used if none are given.
func DefaultSettings() *Settings {
	return &Settings{
		Chart:             "chartjs",
		Typeset:           "mathml",
		DefaultExpression: coordinator.DefaultExpression,
	}
}

// param is one named setting, pointing to the field it sets.
type param struct {
	key   string
	value any
}

// params lists the settings in the order they are documented and printed.
func (s *Settings) params() []param {
	return []param{
		{"chart", &s.Chart},
		{"typeset", &s.Typeset},
		{"width", &s.Width},
		{"height", &s.Height},
		{"default_expression", &s.DefaultExpression},
		{"report_errors", &s.ReportErrors},
		{"throw_on_error", &s.ThrowOnError},
		{"display_mode", &s.DisplayMode},
	}
}

// Keys returns the names of the known settings.
func (s *Settings) Keys() []string {
	var keys []string
	for _, p := range s.params() {
		keys = append(keys, p.key)
	}
	return keys
}

// CoordinatorConfig returns the coordinator.Config for the settings.
func (s *Settings) CoordinatorConfig() coordinator.Config {
	return coordinator.Config{
		DefaultExpression: s.DefaultExpression,
		ReportEvalErrors:  s.ReportErrors,
		Width:             s.Width,
		Height:            s.Height,
	}
}

// TypesetOptions returns the typeset.Options for the settings.
func (s *Settings) TypesetOptions() typeset.Options {
	return typeset.Options{ThrowOnError: s.ThrowOnError, DisplayMode: s.DisplayMode}
}

// ParseSettings updates s from settings -- typically the contents of a flag set by the user.
// The settings are a list separated by ";": e.g.: "chart=margaid;width=640;...".
//
// An entry like "file:settings.txt" reads the settings from the file, one or more per line, where
// lines starting with "#" are comments.
//
// For integer values "_" is removed, so large numbers can use it as a separator, like in Go.
//
// It returns the keys that were set, in order, or an error if a key is unknown or its value can't be
// parsed.
//
// Example usage:
//
//	func main() {
//		settings := commandline.DefaultSettings()
//		flagSettings := commandline.CreateSettingsFlag(settings, "")
//		flag.Parse()
//		_, err := commandline.ParseSettings(settings, *flagSettings)
//		if err != nil { klog.Fatalf("%+v", err) }
//		fmt.Println(commandline.SprintSettings(settings))
//		...
//	}
func ParseSettings(s *Settings, settings string) (keysSet []string, err error) {
	for _, setting := range strings.Split(settings, ";") {
		keysSet, err = parseSetting(s, setting, keysSet)
		if err != nil {
			return
		}
	}
	return
}

func parseSetting(s *Settings, setting string, keysSet []string) (newKeysSet []string, err error) {
	newKeysSet = keysSet
	setting = strings.TrimSpace(setting)
	if setting == "" {
		return
	}
	if filePath, isFile := strings.CutPrefix(setting, "file:"); isFile {
		filePath, err = replaceTilde(filePath)
		if err != nil {
			return
		}
		var contents []byte
		contents, err = os.ReadFile(filePath)
		if err != nil {
			err = errors.Wrapf(err, "failed to read settings from file %q", filePath)
			return
		}
		for _, line := range strings.Split(string(contents), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			for _, lineSetting := range strings.Split(line, ";") {
				newKeysSet, err = parseSetting(s, lineSetting, newKeysSet)
				if err != nil {
					return
				}
			}
		}
		return
	}

	key, valueStr, found := strings.Cut(setting, "=")
	if !found {
		err = errors.Errorf("can't parse setting %q: each setting requires the format \"<key>=<value>\"", setting)
		return
	}
	key = strings.TrimSpace(key)
	idx := slices.IndexFunc(s.params(), func(p param) bool { return p.key == key })
	if idx == -1 {
		err = errors.Errorf("unknown setting %q, known settings are %q", key, s.Keys())
		return
	}
	switch v := s.params()[idx].value.(type) {
	case *int:
		err = json.Unmarshal([]byte(strings.ReplaceAll(valueStr, "_", "")), v)
	case *bool:
		err = json.Unmarshal([]byte(valueStr), v)
	case *string:
		*v = valueStr
	default:
		err = errors.Errorf("don't know how to parse type %T for setting %q", v, key)
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to parse value %q for setting %q", valueStr, key)
		return
	}
	newKeysSet = append(newKeysSet, key)
	return
}

// replaceTilde replaces a leading "~" in path by the user's home directory.
func replaceTilde(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrapf(err, "failed to find the home directory for %q", path)
	}
	return filepath.Join(home, path[1:]), nil
}

// CreateSettingsFlag creates a string flag with the given flagName (if empty it will be named "set")
// and with a description of the settings and their defaults, taken from s.
//
// The flag should be created before the call to `flag.Parse()`.
func CreateSettingsFlag(s *Settings, flagName string) *string {
	if flagName == "" {
		flagName = "set"
	}
	parts := []string{
		`Settings for the renderers and the plot. ` +
			`It should be a list of elements "key=value" separated by ";". ` +
			`It can also be given an entry like: "file:settings_file.txt", in ` +
			`which case the file will be read and the settings will be parsed, ` +
			`with new-lines working as ";" to separate settings and lines starting with "#" are considered comments. ` +
			`Available settings:`,
	}
	for _, p := range s.params() {
		parts = append(parts, fmt.Sprintf("%q: default value is %v", p.key, deref(p.value)))
	}
	var settings string
	flag.StringVar(&settings, flagName, "", strings.Join(parts, "\n"))
	return &settings
}

// SprintSettings pretty-prints the current values of the settings into a string.
func SprintSettings(s *Settings) string {
	var parts []string
	for _, p := range s.params() {
		value := deref(p.value)
		parts = append(parts, fmt.Sprintf("\t%q: (%T) %v", p.key, value, value))
	}
	return strings.Join(parts, "\n")
}

// SprintModifiedSettings pretty-prints only the settings in keysSet, as returned by ParseSettings.
func SprintModifiedSettings(s *Settings, keysSet []string) string {
	keysSet = slices.Clone(keysSet)
	slices.Sort(keysSet)
	keysSet = slices.Compact(keysSet)
	var parts []string
	for _, p := range s.params() {
		if _, found := slices.BinarySearch(keysSet, p.key); !found {
			continue
		}
		value := deref(p.value)
		parts = append(parts, fmt.Sprintf("\t%q: (%T) %v", p.key, value, value))
	}
	return strings.Join(parts, "\n")
}

func deref(ptr any) any {
	switch v := ptr.(type) {
	case *int:
		return *v
	case *bool:
		return *v
	case *string:
		return *v
	}
	return ptr
}
