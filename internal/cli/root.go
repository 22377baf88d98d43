// Package cli implements the gasnetctl command line client.
package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gasnet/internal/client"
	"gasnet/internal/editor"
)

// app carries the resolved settings shared by every command
type app struct {
	configPath string
	serverURL  string
	noColor    bool

	cfg *Config
}

// NewRootCmd builds the gasnetctl command tree
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "gasnetctl",
		Short: "gasnetctl edits and simulates saved gas networks",
		Long: Brand.Sprint("gasnetctl") + " talks to a gasnet server\n" +
			Subtle.Sprint("List, inspect, import, export, analyse and simulate saved networks"),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", ConfigPath(), "Config file path")
	root.PersistentFlags().StringVar(&a.serverURL, "server", "", "Server URL (overrides server_url)")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colour output")

	root.AddCommand(
		listCmd(a),
		showCmd(a),
		deleteCmd(a),
		importCmd(a),
		exportCmd(a),
		simulateCmd(a),
		analyzeCmd(a),
	)
	return root
}

// Execute runs gasnetctl with os.Args
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) load() error {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.serverURL != "" {
		cfg.ServerURL = a.serverURL
	}
	if a.noColor || !cfg.UI.Color {
		color.NoColor = true
	}
	a.cfg = cfg
	return nil
}

func (a *app) client() *client.Client {
	return client.New(a.cfg.ServerURL, nil)
}

func (a *app) session() *editor.Session {
	return editor.NewSession(a.client())
}
