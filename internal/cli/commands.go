package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"gasnet/internal/diagram"
	"gasnet/internal/domain"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid network id %q", arg)
	}
	return id, nil
}

func listCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved networks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.session().List(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(list) == 0 {
				Subtle.Fprintln(w, "  No saved networks")
				return nil
			}

			rows := make([][]string, 0, len(list))
			for _, n := range list {
				rows = append(rows, []string{
					strconv.FormatInt(n.ID, 10),
					n.Name,
					n.Fluid,
					n.CreatedAt.Local().Format("2006-01-02 15:04"),
					n.Description,
				})
			}
			table(w, []string{"ID", "NAME", "FLUID", "CREATED", "DESCRIPTION"}, rows)
			return nil
		},
	}
}

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved network as the editor lays it out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s := a.session()
			if err := s.Load(cmd.Context(), id); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			Brand.Fprintf(w, "%s", s.Name())
			Subtle.Fprintf(w, " (#%d)\n\n", id)

			nodes := s.Model().Nodes()
			rows := make([][]string, 0, len(nodes))
			for _, n := range nodes {
				rows = append(rows, []string{
					n.ID,
					string(n.Kind),
					n.Label,
					fmt.Sprintf("%.0f,%.0f", n.Position.X, n.Position.Y),
					formatParams(n.Params),
				})
			}
			table(w, []string{"NODE", "KIND", "LABEL", "POS", "PARAMS"}, rows)
			fmt.Fprintln(w)

			edges := s.Model().Edges()
			rows = make([][]string, 0, len(edges))
			for _, e := range edges {
				rows = append(rows, []string{
					e.ID,
					string(e.Kind),
					e.Source + " -> " + e.Target,
					formatParams(e.Params),
				})
			}
			table(w, []string{"EDGE", "KIND", "ENDS", "PARAMS"}, rows)
			return nil
		},
	}
}

func deleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved network",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.session().Delete(cmd.Context(), id); err != nil {
				return err
			}
			Good.Fprintf(cmd.OutOrStdout(), "  %s network %d deleted\n", statusIcon(true), id)
			return nil
		},
	}
}

func importCmd(a *app) *cobra.Command {
	var name, format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON or YAML network file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if format == "" {
				format = formatFromPath(args[0])
			}

			id, err := a.client().Import(cmd.Context(), format, name, data)
			if err != nil {
				return err
			}
			Good.Fprintf(cmd.OutOrStdout(), "  %s imported as network %d\n", statusIcon(true), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name to store the network under")
	cmd.Flags().StringVar(&format, "format", "", "json or yaml (default from file extension)")
	return cmd
}

func exportCmd(a *app) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a saved network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return a.client().Export(cmd.Context(), id, format, w)
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

func simulateCmd(a *app) *cobra.Command {
	var fluid string

	cmd := &cobra.Command{
		Use:     "simulate <id>",
		Aliases: []string{"run"},
		Short:   "Simulate a saved network and show node pressures",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if fluid == "" {
				fluid = a.cfg.Fluid
			}

			s := a.session()
			if err := s.Load(cmd.Context(), id); err != nil {
				return err
			}
			res, err := s.Run(cmd.Context(), fluid)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if !res.Success {
				Bad.Fprintf(w, "  %s simulation failed: %s\n", statusIcon(false), res.Message)
				return nil
			}
			Good.Fprintf(w, "  %s simulation of %s converged\n\n", statusIcon(true), s.Name())
			printOverlay(w, s.Model().Nodes())
			return nil
		},
	}

	cmd.Flags().StringVar(&fluid, "fluid", "", "Fluid to simulate with (default from config, then network)")
	return cmd
}

func analyzeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <id>",
		Short: "Report connectivity and unsupplied nodes of a saved network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			c := a.client()
			saved, err := c.GetNetwork(cmd.Context(), id)
			if err != nil {
				return err
			}
			report, err := c.Analyze(cmd.Context(), saved.Network)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for i, comp := range report.Components {
				label := Good.Sprint("supplied")
				if !comp.Supplied {
					label = Bad.Sprint("unsupplied")
				}
				fmt.Fprintf(w, "  component %d (%s): %s\n", i+1, label, strings.Join(comp.Nodes, ", "))
			}
			if len(report.DanglingEdges) > 0 {
				Warn.Fprintf(w, "  dangling edges: %s\n", strings.Join(report.DanglingEdges, ", "))
			}
			if len(report.Unsupplied) == 0 {
				Good.Fprintf(w, "  %s every node is supplied\n", statusIcon(true))
			} else {
				Bad.Fprintf(w, "  %s %d unsupplied nodes\n", statusIcon(false), len(report.Unsupplied))
			}
			return nil
		},
	}
}

// printOverlay prints one line per node carrying a simulation overlay
func printOverlay(w io.Writer, nodes []diagram.VisualNode) {
	for _, n := range nodes {
		if n.Overlay == nil {
			continue
		}
		pressure := "-"
		if n.Overlay.PressureBar != nil {
			pressure = fmt.Sprintf("%.2f bar", *n.Overlay.PressureBar)
		}
		c := overlayColor(n.Overlay.Status)
		fmt.Fprintf(w, "  %-12s %-14s %s\n", n.ID, pressure, c.Sprint(n.Overlay.Status))
	}
}

func formatParams(p domain.Params) string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, p[k]))
	}
	return strings.Join(parts, " ")
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}
