// Package editor ties the read path, the field set and the writer to the
// file system: it loads an INI file for editing and saves a submission with
// a backup taken first.
package editor

import (
	"fmt"
	"time"

	"github.com/grovetools/core/logging"
	"github.com/grovetools/iniedit/pkg/fieldkey"
	"github.com/grovetools/iniedit/pkg/fieldset"
	"github.com/grovetools/iniedit/pkg/inifile"
	"github.com/grovetools/iniedit/pkg/submission"
	"github.com/grovetools/iniedit/pkg/tree"
	"github.com/grovetools/iniedit/pkg/valuetype"
	"github.com/grovetools/iniedit/pkg/writer"
	"github.com/sirupsen/logrus"
)

// ActionType is the kind of side effect recorded in the action log.
type ActionType string

const (
	ActionCreateDir ActionType = "create_dir"
	ActionBackup    ActionType = "backup"
	ActionWrite     ActionType = "write_file"
)

// Action is a side effect performed, or simulated in dry-run mode, by Save.
type Action struct {
	Type        ActionType
	Description string
	Path        string
	Success     bool
	Error       error
}

// View is everything the rendering layer needs to build the edit form.
type View struct {
	File        string
	Writable    bool
	Tree        *tree.Tree
	Fields      []fieldset.Field
	Sections    []string
	Permissions Permissions
}

// Result describes a completed save.
type Result struct {
	File    string
	Backup  string
	Content string
	DryRun  bool
}

// Editor edits a single INI file. It holds no state between saves apart
// from the action log.
type Editor struct {
	opts    Options
	fs      FS
	logger  logrus.FieldLogger
	now     func() time.Time
	actions []Action
}

// New creates an editor. A nil logger uses the "iniedit" component logger.
func New(opts Options, logger logrus.FieldLogger) *Editor {
	if logger == nil {
		logger = logging.NewLogger("iniedit")
	}
	return &Editor{
		opts:   opts,
		fs:     OSFS{},
		logger: logger,
		now:    time.Now,
	}
}

// SetFS replaces the file system.
func (e *Editor) SetFS(fs FS) {
	e.fs = fs
}

// SetClock replaces the clock used to name backups.
func (e *Editor) SetClock(now func() time.Time) {
	e.now = now
}

// Options returns the editor's options.
func (e *Editor) Options() Options {
	return e.opts
}

// Actions returns the side effects recorded so far.
func (e *Editor) Actions() []Action {
	return e.actions
}

func (e *Editor) logAction(actionType ActionType, description, path string, success bool, err error) {
	e.actions = append(e.actions, Action{
		Type:        actionType,
		Description: description,
		Path:        path,
		Success:     success,
		Error:       err,
	})
}

func (e *Editor) builder() fieldset.Builder {
	return fieldset.Builder{
		Codec:    fieldkey.Form,
		Resolver: valuetype.Resolver{Sniff: e.opts.Sniff},
	}
}

func (e *Editor) writer() *writer.Writer {
	w := writer.New(e.logger)
	w.Resolver = valuetype.Resolver{Sniff: e.opts.Sniff}
	return w
}

// parse reads and parses the current file.
func (e *Editor) parse() (*tree.Tree, error) {
	data, err := e.fs.ReadFile(e.opts.File)
	if err != nil {
		return nil, &ParseFailure{File: e.opts.File, Err: err}
	}
	t, err := inifile.Parse(data, e.opts.Scanner)
	if err != nil {
		return nil, &ParseFailure{File: e.opts.File, Err: err}
	}
	return t, nil
}

// Load parses the file and builds the fields of the edit form.
func (e *Editor) Load() (*View, error) {
	t, err := e.parse()
	if err != nil {
		e.logger.WithField("file", e.opts.File).WithError(err).Warn("Cannot load file")
		return nil, err
	}

	writable := e.fs.IsWritable(e.opts.File)
	if !writable {
		e.logger.WithField("file", e.opts.File).Warn("File is not writable")
	}

	fields := e.builder().Build(t)
	return &View{
		File:     e.opts.File,
		Writable: writable,
		Tree:     t,
		Fields:   fields,
		Sections: fieldset.Sections(fields),
		Permissions: Permissions{
			Edit:   e.opts.EnableEdit,
			Add:    e.opts.EnableAdd && e.opts.EnableEdit,
			Delete: e.opts.EnableDelete && e.opts.EnableEdit,
		},
	}, nil
}

// Save serializes sub and replaces the file with it. The previous content
// is copied into the backup directory first; if that fails the file is not
// touched.
func (e *Editor) Save(sub submission.Submission) (*Result, error) {
	log := e.logger.WithField("file", e.opts.File)

	if !e.opts.EnableEdit {
		return nil, ErrEditDisabled
	}

	if !e.opts.EnableAdd || !e.opts.EnableDelete {
		current, err := e.parse()
		if err != nil {
			return nil, err
		}
		sub = e.applyPermissions(sub, current)
	}

	content, err := e.writer().Serialize(sub, nil)
	if err != nil {
		log.WithError(err).Error("Cannot serialize submission")
		return nil, &WriteFailure{File: e.opts.File, Err: err}
	}

	if e.opts.DryRun {
		backup := e.backupPath()
		log.Infof("[dry-run] Would back up to %s", backup)
		e.logAction(ActionBackup, fmt.Sprintf("Back up %s", e.opts.File), backup, true, nil)
		log.Infof("[dry-run] Would write %d bytes", len(content))
		e.logAction(ActionWrite, fmt.Sprintf("Write %s", e.opts.File), e.opts.File, true, nil)
		return &Result{File: e.opts.File, Backup: backup, Content: content, DryRun: true}, nil
	}

	backup, err := e.backup()
	if err != nil {
		log.WithError(err).Error("Backup failed, file left untouched")
		return nil, err
	}

	if err := e.fs.WriteFile(e.opts.File, []byte(content), 0644); err != nil {
		e.logAction(ActionWrite, fmt.Sprintf("Write %s", e.opts.File), e.opts.File, false, err)
		log.WithError(err).WithField("backup", backup).Error("Write failed")
		return nil, &WriteFailure{File: e.opts.File, Backup: backup, Err: err}
	}
	e.logAction(ActionWrite, fmt.Sprintf("Write %s", e.opts.File), e.opts.File, true, nil)
	log.WithField("backup", backup).Info("Saved")

	return &Result{File: e.opts.File, Backup: backup, Content: content}, nil
}

// applyPermissions enforces the add and delete toggles server side.
// Without add, fields of properties missing from the current file are
// dropped. Without delete, properties of the current file missing from the
// submission are appended back with their current values.
func (e *Editor) applyPermissions(sub submission.Submission, current *tree.Tree) submission.Submission {
	codec := fieldkey.Form
	type slot struct{ section, property string }
	present := map[slot]bool{}

	kept := make(submission.Submission, 0, len(sub))
	for _, pair := range sub {
		id, err := codec.Decode(pair.Name)
		if err != nil {
			kept = append(kept, pair)
			continue
		}
		if !e.opts.EnableAdd && !current.Has(id.Section, id.Property) {
			e.logger.WithFields(logrus.Fields{
				"section":  id.Section,
				"property": id.Property,
			}).Warn("Dropping new property, adding is disabled")
			continue
		}
		present[slot{id.Section, id.Property}] = true
		kept = append(kept, pair)
	}

	if e.opts.EnableDelete {
		return kept
	}
	for _, f := range e.builder().Build(current) {
		if present[slot{f.Identity.Section, f.Identity.Property}] {
			continue
		}
		kept = append(kept, f.Inputs()...)
	}
	return kept
}
