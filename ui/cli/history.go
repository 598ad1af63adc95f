// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cfgscrub/cfgscrub/internal/i18n"
)

func newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent runs",
		Long:  `Lists recorded runs, newest first. Requires history.enabled.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if historyStore == nil {
				fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("history.disabled"))
				return nil
			}
			runs, err := historyStore.Recent(cmd.Context(), limit)
			if err != nil {
				return finish(cmd, err)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.T("history.empty"))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tMODE\tUSER\tSOURCE\tOUTPUT\tERROR")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					r.CreatedAt.Local().Format(time.DateTime), r.Mode, r.Username, r.Source, r.Output, r.Error)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	return cmd
}
