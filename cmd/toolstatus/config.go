package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/toolstatus/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configInitFlags struct {
	global bool
	force  bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the toolstatus configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current configuration to a config file",
	Long: `Write the resolved configuration (defaults, existing files, TOOLSTATUS_*
variables and flags such as --session) to a config file.

By default the file is ./toolstatus.yml. Use --global to write
$XDG_CONFIG_HOME/toolstatus/toolstatus.yml instead.`,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration as YAML",
	RunE:  runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitFlags.global, "global", "g", false, "Write the global config instead of the project config")
	configInitCmd.Flags().BoolVarP(&configInitFlags.force, "force", "f", false, "Overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	targetPath := config.ProjectPath()
	if configInitFlags.global {
		targetPath = config.GlobalPath()
	}

	if !configInitFlags.force && pathExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	var err error
	if configInitFlags.global {
		err = config.WriteGlobal(cfg)
	} else {
		err = config.WriteProject(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Config written to: %s\n", targetPath)
	return err
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if !config.Exists() {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "No config file found; showing defaults and environment.")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
