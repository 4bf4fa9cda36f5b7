package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/uscorpus/title18/pkg/hierdiff"
	"github.com/uscorpus/title18/pkg/loader"
	"github.com/uscorpus/title18/pkg/structdiff"
)

var version = "0.1.0"

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:     "usctree",
		Short:   "Historical USC Title 18 provision trees and diffs",
		Version: version,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "usctree.yaml", "path to the loader config")

	rootCmd.AddCommand(getCmd())
	rootCmd.AddCommand(versionsCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(diffCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openLoader() (*loader.Loader, error) {
	cfg, err := loader.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return loader.New(cfg), nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func getCmd() *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "get <section>",
		Short: "Fetch a single section's provision tree for one year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openLoader()
			if err != nil {
				return err
			}
			tree, err := l.GetSection(args[0], year)
			if err != nil {
				return err
			}
			return printJSON(tree)
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "version year to fetch")
	cmd.MarkFlagRequired("year")
	return cmd
}

func versionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "versions <section>",
		Short: "Fetch every available year's tree for a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openLoader()
			if err != nil {
				return err
			}
			return printJSON(l.GetVersions(args[0]))
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every section known to the configured sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openLoader()
			if err != nil {
				return err
			}
			type row struct {
				Section string `json:"section"`
				Years   string `json:"years"`
			}
			var rows []row
			for _, s := range l.ListSections() {
				rows = append(rows, row{Section: s.Section, Years: s.YearRange()})
			}
			return printJSON(rows)
		},
	}
}

func diffCmd() *cobra.Command {
	var fromYear, toYear int
	var structural bool
	var granularity string
	cmd := &cobra.Command{
		Use:   "diff <section>",
		Short: "Diff a section between two years",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openLoader()
			if err != nil {
				return err
			}
			oldTree, err := l.GetSection(args[0], fromYear)
			if err != nil {
				return fmt.Errorf("from year %d: %w", fromYear, err)
			}
			newTree, err := l.GetSection(args[0], toYear)
			if err != nil {
				return fmt.Errorf("to year %d: %w", toYear, err)
			}

			if structural {
				entries, stats := structdiff.Diff(oldTree, newTree)
				return printJSON(map[string]interface{}{"entries": entries, "stats": stats})
			}

			result := hierdiff.Diff(oldTree, newTree, hierdiff.Granularity(granularity))
			return printJSON(result)
		},
	}
	cmd.Flags().IntVar(&fromYear, "from", 0, "earlier year")
	cmd.Flags().IntVar(&toYear, "to", 0, "later year")
	cmd.Flags().BoolVar(&structural, "structural", false, "use the flat structural diff instead of the hierarchical one")
	cmd.Flags().StringVar(&granularity, "granularity", "word", "inline diff granularity: word or sentence")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	return cmd
}
