package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yanmxa/gauntlet/internal/component"
	"github.com/yanmxa/gauntlet/internal/config"
	"github.com/yanmxa/gauntlet/internal/log"
	"github.com/yanmxa/gauntlet/internal/plugin"
	"github.com/yanmxa/gauntlet/internal/runtime"
	"github.com/yanmxa/gauntlet/internal/tree"
	"github.com/yanmxa/gauntlet/internal/ui"
)

var (
	version = "0.1.0"
)

// openTimeout bounds how long the runtime may take to acknowledge openView.
const openTimeout = 10 * time.Second

func init() {
	// Load .env file if it exists (silent fail if not found)
	_ = godotenv.Load()

	// Initialize logging (enabled via GAUNTLET_DEBUG=1)
	_ = log.Init()
}

func main() {
	defer log.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gauntlet",
	Short: "Gauntlet - plugin launcher for the terminal",
	Long: `Gauntlet renders plugin views in the terminal.

Plugins are directories with a gauntlet.toml manifest. Their code runs in a
separate runtime process that describes views as widget trees.

Configuration files:
  ~/.gauntlet/settings.json            User settings
  ./.gauntlet/settings.json            Project settings
  ./.gauntlet/settings.local.json      Local settings (git-ignored)`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(pluginsCmd)
	rootCmd.AddCommand(versionCmd)

	schemaCmd.Flags().StringVarP(&schemaFormat, "format", "f", "json", "Output format (json, yaml)")
}

var openCmd = &cobra.Command{
	Use:   "open <plugin>:<entrypoint>",
	Short: "Open a plugin entrypoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := plugin.ParseEntrypointRef(args[0])
		if err != nil {
			return err
		}
		return openEntrypoint(cmd.Context(), ref)
	},
}

func loadRegistry() (*config.Settings, *plugin.Registry, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	registry := plugin.NewRegistry()
	if err := registry.Load(settings, semver.MustParse(version)); err != nil {
		return nil, nil, fmt.Errorf("failed to load plugins: %w", err)
	}
	return settings, registry, nil
}

func openEntrypoint(ctx context.Context, ref plugin.EntrypointRef) error {
	if ctx == nil {
		ctx = context.Background()
	}

	settings, registry, err := loadRegistry()
	if err != nil {
		return err
	}
	p, ep, err := registry.Resolve(ref)
	if err != nil {
		return err
	}
	shortcuts, err := plugin.ShortcutsFor(ep, ref, settings)
	if err != nil {
		return err
	}

	proc, err := runtime.Spawn(ctx, runtime.Config{
		Command: settings.Runtime.Command,
		Args:    settings.Runtime.Args,
		Env:     settings.RuntimeEnv(),
		Dir:     settings.Runtime.Dir,
	})
	if err != nil {
		return err
	}
	host := runtime.NewHost(proc.Conn, proc)
	defer host.Close()

	if !ep.Type.HasView() {
		openCtx, cancel := context.WithTimeout(ctx, openTimeout)
		defer cancel()
		return host.OpenView(openCtx, p.ID, ep.ID)
	}

	go func() {
		openCtx, cancel := context.WithTimeout(ctx, openTimeout)
		defer cancel()
		if err := host.OpenView(openCtx, p.ID, ep.ID); err != nil {
			log.Logger().Error("Failed to open view", zap.String("entrypoint", ref.String()), zap.Error(err))
			_ = host.Close()
		}
	}()

	location := tree.LocationView
	if ep.Type == plugin.EntrypointInlineView {
		location = tree.LocationInlineView
	}

	ui.SetTheme(settings.Theme)
	return ui.Run(ui.Options{
		Runtime:   host,
		Tree:      tree.New(component.Default()),
		Location:  location,
		Title:     fmt.Sprintf("%s › %s", p.Name(), ep.Name),
		Shortcuts: shortcuts,
	})
}

var schemaFormat string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the component model as a schema",
	Long:  "Print the JSON Schema of every component a plugin can render.",
	RunE: func(cmd *cobra.Command, args []string) error {
		model := component.Default()

		var (
			data []byte
			err  error
		)
		switch schemaFormat {
		case "json":
			data, err = model.ExportJSON()
		case "yaml":
			data, err = model.ExportYAML()
		default:
			return fmt.Errorf("unknown format %q (want json or yaml)", schemaFormat)
		}
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gauntlet version %s\n", version)
	},
}
