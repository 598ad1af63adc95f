// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cfgscrub/cfgscrub/internal/core"
	"github.com/cfgscrub/cfgscrub/internal/i18n"
)

// openOutputDir is swapped in tests so no file manager is launched.
var openOutputDir = (*core.Runner).OpenOutputDir

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Open the output directory in the file manager",
		Long:  `Creates output.dir if needed and opens it with the desktop's default file manager.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := openOutputDir(newRunner(appConfig))
			if err != nil {
				return finish(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.opened", dir))
			return nil
		},
	}
}
