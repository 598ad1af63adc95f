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

// reportedError is an error whose message was already shown to the user.
type reportedError struct{ err error }

func (r reportedError) Error() string { return r.err.Error() }
func (r reportedError) Unwrap() error { return r.err }

// finish prints err according to its kind. A cancelled operation is a
// notice and does not fail the command.
func finish(cmd *cobra.Command, err error) error {
	switch core.KindOf(err) {
	case core.KindNone:
		return nil
	case core.KindCancelled:
		fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("cli.cancelled"))
		return nil
	case core.KindValidation:
		fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("cli.warning", core.Describe(err)))
	default:
		fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("cli.error", core.Describe(err)))
	}
	return reportedError{err: err}
}

func printReport(cmd *cobra.Command, rep core.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, i18n.T("result.written", rep.Output))
	fmt.Fprintln(out, i18n.T("result.lines", rep.LinesIn, rep.LinesOut))
	if rep.Replacements > 0 {
		fmt.Fprintln(out, i18n.T("result.replacements", rep.Replacements))
	}
	if rep.Replaced {
		fmt.Fprintln(out, i18n.T("result.overwritten"))
	}
}
