// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/kripke/pkg/logging"
)

// Config is the optional kripke.yaml configuration.
type Config struct {
	Logging struct {
		// Level is the minimum log level: debug, info, warn, error.
		Level string `yaml:"level"`

		// Dir enables file logging to the given directory.
		Dir string `yaml:"dir"`

		// JSON switches stderr logging to JSON format.
		JSON bool `yaml:"json"`
	} `yaml:"logging"`

	// DefaultModel is the model file used when a command gets no path.
	DefaultModel string `yaml:"default_model"`
}

var config Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}

func init() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// Config is optional for the CLI; a missing file means defaults.
		if data, err := os.ReadFile(configPath); err == nil {
			if err := yaml.Unmarshal(data, &config); err != nil {
				log.Fatalf("Error parsing %s: %v", configPath, err)
			}
		}

		logger := logging.New(logging.Config{
			Level:   logging.ParseLevel(config.Logging.Level),
			LogDir:  config.Logging.Dir,
			Service: "kripke",
			JSON:    config.Logging.JSON,
			Quiet:   !verbose,
		})
		slog.SetDefault(logger.Slog())
	}
}
