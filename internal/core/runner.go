// Copyright (c) 2026 cfgscrub Team
// cfgscrub - router configuration cleanup tool
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"time"

	"github.com/samber/oops"

	"github.com/cfgscrub/cfgscrub/internal/filetime"
	"github.com/cfgscrub/cfgscrub/internal/history"
	"github.com/cfgscrub/cfgscrub/internal/logging"
	"github.com/cfgscrub/cfgscrub/internal/output"
	"github.com/cfgscrub/cfgscrub/internal/source"
	"github.com/cfgscrub/cfgscrub/internal/transform"
)

// Loader reads a source reference into memory.
type Loader interface {
	Load(ctx context.Context, ref string) (transform.SourceDocument, error)
}

// Recorder stores a finished run.
type Recorder interface {
	Record(ctx context.Context, r history.Run) (history.Run, error)
}

// Range bounds an enumerate run, both ends inclusive.
type Range struct {
	From, To int
}

// Request selects a mode and carries the values the user supplied for it.
// A nil Range means the default enumerate range.
type Request struct {
	Mode        transform.Mode
	Octet       string
	OldPassword string
	NewPassword string
	Range       *Range
}

// Parameters converts r into transformation parameters.
func (r Request) Parameters() transform.Parameters {
	p := transform.DefaultParameters()
	p.Octet = r.Octet
	p.OldPassword = r.OldPassword
	p.NewPassword = r.NewPassword
	if r.Range != nil {
		p.From, p.To = r.Range.From, r.Range.To
	}
	return p
}

// Report summarises a successful run.
type Report struct {
	// RunID is the history id, empty when history is disabled.
	RunID        string
	Mode         transform.Mode
	Source       string
	Output       string
	Digest       string
	LinesIn      int
	LinesOut     int
	Replacements int
	// Replaced is true when an older output file was overwritten.
	Replaced bool
}

// Runner executes operations. Loader and Output are required; History and
// Times are optional.
type Runner struct {
	Loader  Loader
	Output  output.Writer
	History Recorder
	// Times defaults to filetime.Probe().
	Times filetime.Setter
}

// OpenOutputDir opens the directory results are written to in the system
// file manager and returns its absolute path.
func (r *Runner) OpenOutputDir() (string, error) {
	return r.Output.OpenDir()
}

// Run applies req to the selected source and writes the output file.
// Parameters are validated before the source is read.
func (r *Runner) Run(ctx context.Context, s *Session, req Request) (Report, error) {
	ref, err := s.Selected()
	if err != nil {
		return Report{}, err
	}
	p := req.Parameters()
	if err := transform.Validate(req.Mode, p); err != nil {
		return Report{}, err
	}
	logging.Debugf("running %s on %s (%s)", req.Mode, ref, p)

	doc, err := r.Loader.Load(ctx, ref)
	if err != nil {
		r.record(ctx, history.Run{Mode: string(req.Mode), Source: ref, Octet: req.Octet, Error: err.Error()})
		return Report{}, err
	}
	out, err := transform.Apply(req.Mode, doc, p)
	if err != nil {
		return Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return Report{}, oops.In("core").Code("cancelled").Wrap(err)
	}

	res, err := r.Output.Write(req.Mode.OutputName(), out.Bytes())
	if err != nil {
		r.record(ctx, history.Run{Mode: string(req.Mode), Source: ref, Octet: req.Octet, LinesIn: out.LinesIn, Error: err.Error()})
		return Report{}, err
	}

	rep := Report{
		Mode:         req.Mode,
		Source:       ref,
		Output:       res.Path,
		Digest:       res.Digest,
		LinesIn:      out.LinesIn,
		LinesOut:     out.LinesOut,
		Replacements: out.Replacements,
		Replaced:     res.Replaced,
	}
	rep.RunID = r.record(ctx, history.Run{
		Mode:         string(req.Mode),
		Source:       ref,
		Output:       res.Path,
		Octet:        req.Octet,
		LinesIn:      out.LinesIn,
		LinesOut:     out.LinesOut,
		Replacements: out.Replacements,
		Digest:       res.Digest,
	})
	logging.Info("output written", "mode", req.Mode, "path", res.Path, "lines_in", out.LinesIn, "lines_out", out.LinesOut)
	return rep, nil
}

// ChangeDates sets the creation and modification time of the selected
// local file. Both timestamps are validated before anything changes.
func (r *Runner) ChangeDates(ctx context.Context, s *Session, created, modified string) (filetime.Result, error) {
	ref, err := s.Selected()
	if err != nil {
		return filetime.Result{}, err
	}
	parsed, err := source.ParseRef(ref)
	if err != nil {
		return filetime.Result{}, err
	}
	if parsed.Remote {
		return filetime.Result{}, oops.In("core").Code("remote_dates").With("source", ref).Wrap(ErrRemoteDates)
	}
	if err := ctx.Err(); err != nil {
		return filetime.Result{}, oops.In("core").Code("cancelled").Wrap(err)
	}

	setter := r.Times
	if setter == nil {
		setter = filetime.Probe()
	}
	res, err := filetime.Apply(setter, parsed.Path, created, modified)
	if err != nil {
		if KindOf(err) == KindIO {
			r.record(ctx, history.Run{Mode: "touch", Source: ref, Error: err.Error()})
		}
		return filetime.Result{}, err
	}
	r.record(ctx, history.Run{Mode: "touch", Source: ref, Output: res.Path})
	logging.Info("timestamps changed", "path", res.Path, "modified", res.Modified.Format(time.DateTime), "creation_applied", res.CreationApplied)
	return res, nil
}

// record stores run when history is enabled and returns its id. Failures
// are logged and never fail the operation.
func (r *Runner) record(ctx context.Context, run history.Run) string {
	if r.History == nil {
		return ""
	}
	stored, err := r.History.Record(context.WithoutCancel(ctx), run)
	if err != nil {
		logging.Warnf("could not record run: %v", err)
		return ""
	}
	return stored.ID
}
