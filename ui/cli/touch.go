// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cfgscrub/cfgscrub/internal/core"
	"github.com/cfgscrub/cfgscrub/internal/i18n"
)

func newTouchCmd() *cobra.Command {
	var created, modified string
	cmd := &cobra.Command{
		Use:   "touch <file> --created \"YYYY-MM-DD HH:MM:SS\" --modified \"YYYY-MM-DD HH:MM:SS\"",
		Short: "Set the creation and modification time of a file",
		Long: `Sets the modification time (and access time) of a local file. The
creation time is applied on Windows; elsewhere it is validated only.
Missing values are prompted for.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var s core.Session
			if err := s.Select(args[0]); err != nil {
				return finish(cmd, err)
			}
			p := newPrompter(cmd)
			var err error
			if !cmd.Flags().Changed("created") {
				if created, err = p.line(i18n.T("form.dates.created")); err != nil {
					return finish(cmd, err)
				}
			}
			if !cmd.Flags().Changed("modified") {
				if modified, err = p.line(i18n.T("form.dates.modified")); err != nil {
					return finish(cmd, err)
				}
			}

			res, err := newRunner(appConfig).ChangeDates(cmd.Context(), &s, created, modified)
			if err != nil {
				return finish(cmd, err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, i18n.T("result.dates_changed", res.Path))
			fmt.Fprintln(out, i18n.T("result.modified", res.Modified.Format(time.DateTime)))
			if res.CreationApplied {
				fmt.Fprintln(out, i18n.T("result.created", res.Created.Format(time.DateTime)))
			} else {
				fmt.Fprintln(out, i18n.T("result.creation_unsupported"))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&created, "created", "", "Creation time")
	cmd.Flags().StringVar(&modified, "modified", "", "Modification time")
	return cmd
}
