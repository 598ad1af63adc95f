// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"github.com/spf13/cobra"

	"github.com/cfgscrub/cfgscrub/internal/core"
	"github.com/cfgscrub/cfgscrub/internal/i18n"
	"github.com/cfgscrub/cfgscrub/internal/transform"
)

// runRequest selects the file in args[0] and runs req on it.
func runRequest(cmd *cobra.Command, args []string, req core.Request) error {
	var s core.Session
	if err := s.Select(args[0]); err != nil {
		return finish(cmd, err)
	}
	rep, err := newRunner(appConfig).Run(cmd.Context(), &s, req)
	if err != nil {
		return finish(cmd, err)
	}
	printReport(cmd, rep)
	return nil
}

func newStripCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strip <file>",
		Short: "Remove every line that contains '!'",
		Long: `Writes clean_config.txt with every line of the source that does not
contain an exclamation mark. Line endings are kept as they are.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, args, core.Request{Mode: transform.ModeStrip})
		},
	}
}

func newReplaceCmd() *cobra.Command {
	var octet string
	var keepMarkers bool
	cmd := &cobra.Command{
		Use:   "replace <file> [--octet N] [--keep-markers]",
		Short: "Rewrite the third octet of 192.168.x.y addresses",
		Long: `Without --keep-markers every address becomes 192.168.N.1 and lines
containing '!' are removed (catalog_config.txt).

With --keep-markers the fourth octet is preserved and no line is removed
(config_with_exclamations.txt).

The octet is prompted for when --octet is not given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := transform.ModeReplace
			if keepMarkers {
				mode = transform.ModeReplaceKeep
			}
			if !cmd.Flags().Changed("octet") {
				v, err := newPrompter(cmd).line(i18n.T("form.octet.label"))
				if err != nil {
					return finish(cmd, err)
				}
				octet = v
			}
			return runRequest(cmd, args, core.Request{Mode: mode, Octet: octet})
		},
	}
	cmd.Flags().StringVarP(&octet, "octet", "o", "", "Replacement third octet (decimal digits)")
	cmd.Flags().BoolVarP(&keepMarkers, "keep-markers", "k", false, "Keep '!' lines and the original fourth octet")
	return cmd
}

func newEnumerateCmd() *cobra.Command {
	var from, to int
	cmd := &cobra.Command{
		Use:   "enumerate <file>",
		Short: "Write one copy per third octet in a range",
		Long: `Writes replaced_third_octet.txt containing one copy of the source per
value in --from..--to (1..25 by default, at most 0..255), each with that value as third
octet of every 192.168.x.y address. The fourth octet is preserved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, args, core.Request{Mode: transform.ModeEnumerate, Range: &core.Range{From: from, To: to}})
		},
	}
	cmd.Flags().IntVar(&from, "from", transform.DefaultEnumerateFrom, "First third octet")
	cmd.Flags().IntVar(&to, "to", transform.DefaultEnumerateTo, "Last third octet (inclusive)")
	return cmd
}

func newPasswordCmd() *cobra.Command {
	var oldPw, newPw string
	cmd := &cobra.Command{
		Use:   "password <file> [--old OLD --new NEW]",
		Short: "Replace every occurrence of a password",
		Long: `Writes config_with_newpassword.txt with every literal occurrence of the
old password replaced by the new one. Missing values are prompted for
without echo; an empty answer cancels.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd)
			var err error
			if !cmd.Flags().Changed("old") {
				if oldPw, err = p.secret(i18n.T("form.password.old")); err != nil {
					return finish(cmd, err)
				}
			}
			if !cmd.Flags().Changed("new") {
				if newPw, err = p.secret(i18n.T("form.password.new")); err != nil {
					return finish(cmd, err)
				}
			}
			return runRequest(cmd, args, core.Request{Mode: transform.ModePassword, OldPassword: oldPw, NewPassword: newPw})
		},
	}
	cmd.Flags().StringVar(&oldPw, "old", "", "Password to replace")
	cmd.Flags().StringVar(&newPw, "new", "", "Replacement password (may be empty to delete)")
	return cmd
}
