// Package settings loads and saves the editor's settings file. The format
// follows the file extension: .toml, or .yml/.yaml.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	burnt "github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/grovetools/core/logging"
	"github.com/grovetools/iniedit/pkg/editor"
	"github.com/grovetools/iniedit/pkg/inifile"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// CurrentVersion is written by Save and checked against SupportedVersions
// on Load.
const CurrentVersion = "1.0.0"

// SupportedVersions is the range of settings versions this build reads.
const SupportedVersions = "^1"

// ErrUnsupportedVersion is returned for a settings file outside
// SupportedVersions.
var ErrUnsupportedVersion = errors.New("unsupported settings version")

// Settings is the on-disk form of editor.Options.
type Settings struct {
	Version      string `toml:"version" yaml:"version" json:"version,omitempty" jsonschema:"description=Settings format version,default=1.0.0"`
	File         string `toml:"file" yaml:"file" json:"file,omitempty" jsonschema:"description=INI file to edit"`
	BackupDir    string `toml:"backup_dir" yaml:"backup_dir" json:"backup_dir,omitempty" jsonschema:"description=Directory receiving a copy before every save,default=backup"`
	EnableEdit   *bool  `toml:"enable_edit,omitempty" yaml:"enable_edit,omitempty" json:"enable_edit,omitempty" jsonschema:"description=Allow saving,default=true"`
	EnableAdd    *bool  `toml:"enable_add,omitempty" yaml:"enable_add,omitempty" json:"enable_add,omitempty" jsonschema:"description=Allow adding properties,default=true"`
	EnableDelete *bool  `toml:"enable_delete,omitempty" yaml:"enable_delete,omitempty" json:"enable_delete,omitempty" jsonschema:"description=Allow removing properties,default=true"`
	Scanner      string `toml:"scanner,omitempty" yaml:"scanner,omitempty" json:"scanner,omitempty" jsonschema:"enum=typed,enum=normal,enum=raw,default=typed"`
	Sniff        bool   `toml:"sniff,omitempty" yaml:"sniff,omitempty" json:"sniff,omitempty" jsonschema:"description=Show 1/0 text values as checkboxes"`
	DocPath      string `toml:"doc_path,omitempty" yaml:"doc_path,omitempty" json:"doc_path,omitempty" jsonschema:"description=Documentation file shown next to the form"`
	DocFormat    string `toml:"doc_format,omitempty" yaml:"doc_format,omitempty" json:"doc_format,omitempty" jsonschema:"enum=html,enum=ini,enum=text,default=text"`
}

// Default returns the settings matching editor.DefaultOptions.
func Default() *Settings {
	opts := editor.DefaultOptions()
	return &Settings{
		Version:   CurrentVersion,
		BackupDir: opts.BackupDir,
		Scanner:   opts.Scanner.String(),
		DocFormat: string(opts.DocFormat),
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return true
	}
	return false
}

// Load reads a settings file. A missing file yields Default. Unknown TOML
// keys are logged as warnings.
func Load(path string, logger logrus.FieldLogger) (*Settings, error) {
	if logger == nil {
		logger = logging.NewLogger("settings")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.WithField("path", path).Debug("No settings file, using defaults")
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	s := &Settings{}
	if isYAML(path) {
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
		}
	} else {
		md, err := burnt.Decode(string(data), s)
		if err != nil {
			return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
		}
		for _, key := range md.Undecoded() {
			logger.WithField("path", path).Warnf("Unknown settings key %q", key.String())
		}
	}

	if err := checkVersion(s.Version); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// checkVersion accepts an empty version as the current one.
func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	version, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("invalid settings version %q: %w", v, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if !constraint.Check(version) {
		return fmt.Errorf("%w %s (supported: %s)", ErrUnsupportedVersion, v, SupportedVersions)
	}
	return nil
}

// Save writes s to path, creating parent directories.
func (s *Settings) Save(path string) error {
	if s.Version == "" {
		s.Version = CurrentVersion
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = toml.Marshal(s)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", path, err)
	}
	return nil
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// Options converts the settings to editor options. Unset fields keep the
// editor defaults.
func (s *Settings) Options() (editor.Options, error) {
	opts := editor.DefaultOptions()
	opts.File = s.File
	if s.BackupDir != "" {
		opts.BackupDir = s.BackupDir
	}
	opts.EnableEdit = boolOr(s.EnableEdit, opts.EnableEdit)
	opts.EnableAdd = boolOr(s.EnableAdd, opts.EnableAdd)
	opts.EnableDelete = boolOr(s.EnableDelete, opts.EnableDelete)
	opts.Sniff = s.Sniff
	opts.DocPath = s.DocPath

	mode, err := inifile.ParseScanMode(s.Scanner)
	if err != nil {
		return opts, err
	}
	opts.Scanner = mode

	format, err := editor.ParseDocFormat(s.DocFormat)
	if err != nil {
		return opts, err
	}
	opts.DocFormat = format
	return opts, nil
}
