package cmd

import (
	"fmt"

	"github.com/Gerlif/final-whisper/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration utilities",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a commented sample configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := configPath
		if len(args) == 1 {
			target = args[0]
		}
		if target == "" {
			defaultPath, err := config.DefaultConfigPath()
			if err != nil {
				return fmt.Errorf("determine default config path: %w", err)
			}
			target = defaultPath
		}

		written, err := config.WriteSample(target)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", written)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, exists, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if exists {
			fmt.Fprintf(out, "# %s\n", path)
		} else {
			fmt.Fprintln(out, "# defaults (no config file found)")
		}
		_, err = out.Write(data)
		return err
	},
}

func init() {
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
