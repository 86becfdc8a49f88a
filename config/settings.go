// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/settings.go
// Summary: Section access and the typed settings view used by the CLI.

package config

import (
	"encoding/json"
	"strconv"
)

// Section returns the named section or nil if missing.
func (c Config) Section(sectionName string) Section {
	if c == nil {
		return nil
	}
	if sectionName == "" {
		return Section(c)
	}
	switch v := c[sectionName].(type) {
	case Section:
		return v
	case map[string]interface{}:
		return Section(v)
	}
	return nil
}

// RegisterDefaults ensures a section has defaults without overwriting existing keys.
func (c Config) RegisterDefaults(sectionName string, defaults Section) {
	if c == nil || defaults == nil {
		return
	}
	section := c.Section(sectionName)
	if section == nil {
		section = make(Section, len(defaults))
		c[sectionName] = section
	}
	for key, value := range defaults {
		if _, ok := section[key]; !ok {
			section[key] = value
		}
	}
}

func (c Config) value(sectionName, key string) (interface{}, bool) {
	section := c.Section(sectionName)
	if section == nil {
		return nil, false
	}
	v, ok := section[key]
	return v, ok
}

// GetString retrieves a string value from the config.
func (c Config) GetString(sectionName, key, defaultValue string) string {
	if v, ok := c.value(sectionName, key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return defaultValue
}

// GetInt retrieves an integer value from the config.
func (c Config) GetInt(sectionName, key string, defaultValue int) int {
	v, ok := c.value(sectionName, key)
	if !ok {
		return defaultValue
	}
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case json.Number:
		if parsed, err := n.Int64(); err == nil {
			return int(parsed)
		}
	case string:
		if parsed, err := strconv.Atoi(n); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// GetBool retrieves a boolean value from the config.
func (c Config) GetBool(sectionName, key string, defaultValue bool) bool {
	v, ok := c.value(sectionName, key)
	if !ok {
		return defaultValue
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(b); err == nil {
			return parsed
		}
	case float64:
		return b != 0
	case int:
		return b != 0
	}
	return defaultValue
}

// Settings is the typed view of the system config.
type Settings struct {
	InitialLayout string
	Strict        bool
	SnapshotPath  string
	Autosave      bool
	Verbose       bool
	TabSeparator  string
	MaxTabWidth   int
}

// Settings extracts the typed settings, falling back to defaults per key.
func (c Config) Settings() Settings {
	s := Settings{
		InitialLayout: c.GetString("layout", "initial", ""),
		Strict:        c.GetBool("layout", "strict", false),
		SnapshotPath:  c.GetString("session", "snapshot_path", ""),
		Autosave:      c.GetBool("session", "autosave", true),
		Verbose:       c.GetBool("log", "verbose", false),
		TabSeparator:  c.GetString("render", "tab_separator", "│"),
		MaxTabWidth:   c.GetInt("render", "max_tab_width", 18),
	}
	if s.SnapshotPath == "" {
		s.SnapshotPath = DefaultSnapshotPath()
	}
	if s.MaxTabWidth < 4 {
		s.MaxTabWidth = 4
	}
	return s
}
