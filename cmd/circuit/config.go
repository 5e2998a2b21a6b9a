package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

const defaultConfigName = ".circuit.toml"

type cliConfig struct {
	LexMode  string `toml:"lex_mode"`
	LogLevel string `toml:"log_level"`
	Color    *bool  `toml:"color"`

	source string
}

func defaultConfig() cliConfig {
	return cliConfig{LexMode: "strict", LogLevel: "warn"}
}

func (c cliConfig) colorEnabled() bool {
	return c.Color == nil || *c.Color
}

// loadConfig reads path, or the default config file when path is empty.
// A missing default file is not an error; a missing explicit one is.
func loadConfig(path string) (cliConfig, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigName
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return defaultConfig(), nil
		}
		return cliConfig{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cliConfig{}, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}
	cfg.source = path
	return cfg, nil
}

func writeDefaultConfig(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(defaultConfig())
}

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default " + defaultConfigName,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigName
			if len(args) == 1 {
				path = args[0]
			}
			if err := writeDefaultConfig(path); err != nil {
				return fmt.Errorf("init: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
}
