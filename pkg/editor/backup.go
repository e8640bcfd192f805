package editor

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

const backupTimeLayout = "2006-01-02_15-04-05"

// Backup is a copy of the edited file taken before a write.
type Backup struct {
	Path string    `json:"path"`
	Time time.Time `json:"time"`
}

// backupName flattens the edited file's path into a single file name
// prefixed with the backup time.
func backupName(file string, at time.Time) string {
	flat := strings.ReplaceAll(filepath.ToSlash(file), "/", "_")
	return at.Format(backupTimeLayout) + "_" + flat
}

func (e *Editor) backupPath() string {
	return filepath.Join(e.opts.BackupDir, backupName(e.opts.File, e.now()))
}

// backup copies the current file into the backup directory and returns the
// copy's path. Two saves within the same second get distinct names.
func (e *Editor) backup() (string, error) {
	fail := func(err error) (string, error) {
		return "", &BackupFailure{File: e.opts.File, BackupDir: e.opts.BackupDir, Err: err}
	}

	if !e.fs.Exists(e.opts.BackupDir) {
		if err := e.fs.MkdirAll(e.opts.BackupDir, 0755); err != nil {
			e.logAction(ActionCreateDir, "Create backup directory", e.opts.BackupDir, false, err)
			return fail(err)
		}
		e.logAction(ActionCreateDir, "Create backup directory", e.opts.BackupDir, true, nil)
	}

	data, err := e.fs.ReadFile(e.opts.File)
	if err != nil {
		e.logAction(ActionBackup, fmt.Sprintf("Back up %s", e.opts.File), "", false, err)
		return fail(err)
	}

	path := e.backupPath()
	for i := 1; e.fs.Exists(path); i++ {
		path = fmt.Sprintf("%s.%d", e.backupPath(), i)
	}

	if err := e.fs.WriteFile(path, data, 0644); err != nil {
		e.logAction(ActionBackup, fmt.Sprintf("Back up %s", e.opts.File), path, false, err)
		return fail(err)
	}
	e.logAction(ActionBackup, fmt.Sprintf("Back up %s", e.opts.File), path, true, nil)
	e.logger.WithField("backup", path).Debug("Backup written")
	return path, nil
}

// Backups lists the backups of the edited file, newest first. A missing
// backup directory yields no backups.
func (e *Editor) Backups() ([]Backup, error) {
	if !e.fs.Exists(e.opts.BackupDir) {
		return nil, nil
	}
	names, err := e.fs.ListDir(e.opts.BackupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", e.opts.BackupDir, err)
	}

	suffix := "_" + strings.ReplaceAll(filepath.ToSlash(e.opts.File), "/", "_")
	type found struct {
		Backup
		seq int
	}
	var all []found
	for _, name := range names {
		if len(name) < len(backupTimeLayout) {
			continue
		}
		at, err := time.ParseInLocation(backupTimeLayout, name[:len(backupTimeLayout)], time.Local)
		if err != nil {
			continue
		}
		seq, ok := collisionSeq(name[len(backupTimeLayout):], suffix)
		if !ok {
			continue
		}
		all = append(all, found{Backup{Path: filepath.Join(e.opts.BackupDir, name), Time: at}, seq})
	}

	// Same-second backups are ordered by their .N collision suffix.
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Time.Equal(all[j].Time) {
			return all[i].seq > all[j].seq
		}
		return all[i].Time.After(all[j].Time)
	})

	backups := make([]Backup, 0, len(all))
	for _, f := range all {
		backups = append(backups, f.Backup)
	}
	return backups, nil
}

// collisionSeq matches rest, the part of a backup name after its timestamp,
// against the flattened file name. The first backup of a second has no
// suffix and gets 0; later ones carry ".N".
func collisionSeq(rest, suffix string) (int, bool) {
	if rest == suffix {
		return 0, true
	}
	n, ok := strings.CutPrefix(rest, suffix+".")
	if !ok || !isDigits(n) {
		return 0, false
	}
	seq, err := strconv.Atoi(n)
	if err != nil {
		return 0, false
	}
	return seq, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
