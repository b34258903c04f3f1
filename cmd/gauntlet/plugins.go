package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/yanmxa/gauntlet/internal/config"
	"github.com/yanmxa/gauntlet/internal/plugin"
)

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List and manage plugins",
	Long: `List plugins found under the configured pluginPaths.

Plugins are enabled by default. enable/disable write enabledPlugins to
~/.gauntlet/settings.json, or to ./.gauntlet/settings.json with --project.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, registry, err := loadRegistry()
		if err != nil {
			return err
		}
		printPlugins(cmd.OutOrStdout(), registry)
		return nil
	},
}

var pluginProject bool

func init() {
	pluginsCmd.AddCommand(pluginEnableCmd)
	pluginsCmd.AddCommand(pluginDisableCmd)

	pluginEnableCmd.Flags().BoolVar(&pluginProject, "project", false, "Write project settings instead of user settings")
	pluginDisableCmd.Flags().BoolVar(&pluginProject, "project", false, "Write project settings instead of user settings")
}

var pluginEnableCmd = &cobra.Command{
	Use:   "enable <plugin>",
	Short: "Enable a plugin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPluginEnabled(cmd.OutOrStdout(), args[0], true)
	},
}

var pluginDisableCmd = &cobra.Command{
	Use:   "disable <plugin>",
	Short: "Disable a plugin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPluginEnabled(cmd.OutOrStdout(), args[0], false)
	},
}

func setPluginEnabled(w io.Writer, id string, enabled bool) error {
	_, registry, err := loadRegistry()
	if err != nil {
		return err
	}
	if _, ok := registry.Get(id); !ok {
		return fmt.Errorf("%w: %s", plugin.ErrPluginNotFound, id)
	}

	if err := config.SetPluginEnabled(config.NewLoader(), id, enabled, !pluginProject); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	state := "Disabled"
	if enabled {
		state = "Enabled"
	}
	fmt.Fprintf(w, "%s %s\n", state, id)
	return nil
}

// printPlugins writes one line per plugin and entrypoint, then load errors.
func printPlugins(w io.Writer, registry *plugin.Registry) {
	plugins := registry.List()
	if len(plugins) == 0 {
		fmt.Fprintln(w, "No plugins found.")
		fmt.Fprintln(w, "\nAdd plugin directories to pluginPaths in ~/.gauntlet/settings.json.")
	} else {
		fmt.Fprintf(w, "Plugins (%d found):\n\n", registry.Count())
	}

	for _, p := range plugins {
		status := "○"
		if p.Enabled {
			status = "●"
		}
		fmt.Fprintf(w, "  %s %s (%s)\n", status, p.Name(), p.ID)
		if p.Manifest.Gauntlet.Description != "" {
			fmt.Fprintf(w, "      %s\n", p.Manifest.Gauntlet.Description)
		}
		for _, ep := range p.Manifest.Entrypoints {
			fmt.Fprintf(w, "      %s:%s  %s [%s]\n", p.ID, ep.ID, ep.Name, ep.Type)
		}
	}

	errs := registry.Errors()
	if len(errs) == 0 {
		return
	}
	dirs := make([]string, 0, len(errs))
	for dir := range errs {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	fmt.Fprintf(w, "\nFailed to load (%d):\n", len(errs))
	for _, dir := range dirs {
		fmt.Fprintf(w, "  %s: %v\n", dir, errs[dir])
	}
}
