package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gravitrone/pagelist/internal/config"
)

// ConfigCmd returns the `pagelist config` command group.
func ConfigCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}
	cmd.AddCommand(configInitCmd(opts))
	cmd.AddCommand(configShowCmd(opts))
	cmd.AddCommand(configPathCmd(opts))
	return cmd
}

func configInitCmd(opts *Options) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.configPath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("stat config: %w", err)
			}

			if err := config.Default().SaveTo(path); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config saved to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	return cmd
}

func configShowCmd(opts *Options) *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.Open(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			shown := *s.Config
			shown.APIKey = maskKey(shown.APIKey)
			data, err := yaml.Marshal(&shown)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, string(data))

			if !check {
				return nil
			}
			if s.Client == nil {
				fmt.Fprintln(out, "api: not used (static data)")
				return nil
			}
			status, err := s.Client.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("api check failed: %w", err)
			}
			fmt.Fprintf(out, "api: %s (%s)\n", status, s.Client.BaseURL())
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "also call the API health endpoint")
	return cmd
}

func configPathCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), opts.configPath())
		},
	}
}

// maskKey keeps the key prefix so users can tell keys apart.
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 6 {
		return "***"
	}
	return key[:6] + "..."
}
