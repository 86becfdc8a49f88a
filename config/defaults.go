// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the system configuration file.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("layout", Section{
		"initial": "",
		"strict":  false,
	})
	cfg.RegisterDefaults("session", Section{
		"snapshot_path": "",
		"autosave":      true,
	})
	cfg.RegisterDefaults("log", Section{
		"verbose": false,
	})
	cfg.RegisterDefaults("render", Section{
		"tab_separator": "│",
		"max_tab_width": 18,
	})
}
