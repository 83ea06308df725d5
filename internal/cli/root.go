// Package cli implements the guild command line.
package cli

import (
	"github.com/spf13/cobra"

	"go.appointy.com/guild/internal/config"
)

// BuildInfo is injected through ldflags by the release build.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

type rootOptions struct {
	configPath string
	envFiles   []string
	build      BuildInfo
}

func (o *rootOptions) loadConfig() (config.Config, error) {
	return config.Load(o.configPath, o.envFiles...)
}

// NewRootCommand returns the guild command with all subcommands attached.
func NewRootCommand(build BuildInfo) *cobra.Command {
	opts := &rootOptions{build: build}

	cmd := &cobra.Command{
		Use:   "guild",
		Short: "GraphQL API for trade projects, apprentices and students",
		Long: `guild serves a GraphQL API over the guild domain: user accounts, projects
and the trades, tasks, comments, students and master tradesmen attached to them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file")
	cmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, "dotenv files to load instead of ./.env")

	cmd.AddCommand(newServeCommand(opts), newTypesCommand(), newVersionCommand(opts))
	return cmd
}

// Execute runs the root command.
func Execute(build BuildInfo) error {
	return NewRootCommand(build).Execute()
}
