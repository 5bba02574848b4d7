package versions

import (
	"io"
	"strings"

	table "github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/recrep/recrep/internal/crashes"
	"github.com/recrep/recrep/pkg/client"
)

func NewCmdVersions() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "versions",
		Example: "recrep versions -c my-org -a my-app -g Collaborators",
		Short:   "List the recent releases of the app, marking the version a report would pick.",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := client.CreateManager(client.ConfigFromViper())
			if err != nil {
				return err
			}
			versions, err := manager.Versions(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "failed to list versions")
			}
			printVersions(cmd.OutOrStdout(), versions, viper.GetString("group"))
			return nil
		},
	}
	cmd.Flags().StringP("group", "g", "", "Distribution group used to pick the latest version.")
	return cmd
}

// printVersions renders versions latest first, with a "*" on the version
// selected for the distribution group.
func printVersions(w io.Writer, versions []crashes.Version, group string) {
	sorted := crashes.SortVersions(versions)
	selected := crashes.SelectVersion(sorted, group)

	tb := table.NewWriter()
	tb.SetOutputMirror(w)
	tb.SetStyle(table.StyleLight)
	tb.AppendHeader(table.Row{"Latest", "Version", "Uploaded At", "Distribution Groups"})
	for i := range sorted {
		v := sorted[i]
		latest := ""
		if selected != nil && v.ShortVersion == selected.ShortVersion && v.UploadedAt == selected.UploadedAt {
			latest = "*"
		}
		groups := make([]string, 0, len(v.DistributionGroups))
		for _, g := range v.DistributionGroups {
			groups = append(groups, g.Name)
		}
		tb.AppendRow(table.Row{latest, v.ShortVersion, v.UploadedAt, strings.Join(groups, ", ")})
	}
	tb.Render()
}
