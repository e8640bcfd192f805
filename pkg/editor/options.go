package editor

import (
	"fmt"

	"github.com/grovetools/iniedit/pkg/inifile"
)

// DocFormat is the format of the documentation file shown next to the form.
type DocFormat string

const (
	DocHTML DocFormat = "html"
	DocINI  DocFormat = "ini"
	DocText DocFormat = "text"
)

// ParseDocFormat accepts html, ini and text.
func ParseDocFormat(s string) (DocFormat, error) {
	switch DocFormat(s) {
	case DocHTML, DocINI, DocText:
		return DocFormat(s), nil
	case "":
		return DocText, nil
	default:
		return DocText, fmt.Errorf("unknown documentation format %q (want html, ini or text)", s)
	}
}

// Options configures an Editor.
type Options struct {
	// File is the INI file being edited.
	File string
	// BackupDir receives a timestamped copy before every write.
	BackupDir string

	EnableEdit   bool
	EnableAdd    bool
	EnableDelete bool

	Scanner inifile.ScanMode
	// Sniff renders "1"/"0"/"" text values as checkboxes; meant for
	// files scanned in normal or raw mode.
	Sniff bool

	// DryRun serializes and logs but never touches the disk.
	DryRun bool

	DocPath   string
	DocFormat DocFormat
}

// DefaultOptions returns options with every permission enabled, the typed
// scanner and a "backup" directory relative to the working directory.
func DefaultOptions() Options {
	return Options{
		BackupDir:    "backup",
		EnableEdit:   true,
		EnableAdd:    true,
		EnableDelete: true,
		Scanner:      inifile.ScanTyped,
		DocFormat:    DocText,
	}
}

// Permissions tells the rendering layer which edit controls to offer.
type Permissions struct {
	Edit   bool
	Add    bool
	Delete bool
}
