package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/iniedit/pkg/editor"
	"github.com/grovetools/iniedit/pkg/inifile"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.FatalLevel)
	return l
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "iniedit.toml"), quietLogger())
	require.NoError(t, err)

	opts, err := s.Options()
	require.NoError(t, err)
	assert.Equal(t, editor.DefaultOptions(), opts)
}

func TestLoad_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iniedit.toml")
	content := `version = "1.2.0"
file = "conf/app.ini"
backup_dir = "/var/backups/app"
enable_delete = false
scanner = "raw"
sniff = true
doc_path = "doc.ini"
doc_format = "ini"
unknown_key = 1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := Load(path, quietLogger())
	require.NoError(t, err)

	opts, err := s.Options()
	require.NoError(t, err)
	assert.Equal(t, "conf/app.ini", opts.File)
	assert.Equal(t, "/var/backups/app", opts.BackupDir)
	assert.True(t, opts.EnableEdit)
	assert.True(t, opts.EnableAdd)
	assert.False(t, opts.EnableDelete)
	assert.Equal(t, inifile.ScanRaw, opts.Scanner)
	assert.True(t, opts.Sniff)
	assert.Equal(t, "doc.ini", opts.DocPath)
	assert.Equal(t, editor.DocINI, opts.DocFormat)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iniedit.yml")
	content := "file: app.ini\nenable_edit: false\nscanner: normal\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := Load(path, quietLogger())
	require.NoError(t, err)

	opts, err := s.Options()
	require.NoError(t, err)
	assert.Equal(t, "app.ini", opts.File)
	assert.False(t, opts.EnableEdit)
	assert.Equal(t, inifile.ScanNormal, opts.Scanner)
	assert.Equal(t, "backup", opts.BackupDir)
}

func TestLoad_Version(t *testing.T) {
	tests := []struct {
		version string
		wantErr bool
	}{
		{"1.0.0", false},
		{"1.9", false},
		{"2.0.0", true},
		{"0.9.0", true},
		{"banana", true},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "iniedit.toml")
			require.NoError(t, os.WriteFile(path, []byte(`version = "`+tt.version+`"`+"\n"), 0644))

			_, err := Load(path, quietLogger())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	path := filepath.Join(t.TempDir(), "iniedit.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = \"3.0.0\"\n"), 0644))
	_, err := Load(path, quietLogger())
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iniedit.toml")
	require.NoError(t, os.WriteFile(path, []byte("file = [unterminated\n"), 0644))
	_, err := Load(path, quietLogger())
	assert.Error(t, err)

	s := &Settings{Scanner: "fancy"}
	_, err = s.Options()
	assert.Error(t, err)

	s = &Settings{DocFormat: "pdf"}
	_, err = s.Options()
	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	off := false
	original := Default()
	original.File = "app.ini"
	original.EnableAdd = &off
	original.Sniff = true

	for _, name := range []string{"nested/iniedit.toml", "nested/iniedit.yaml"} {
		t.Run(filepath.Ext(name), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, original.Save(path))

			loaded, err := Load(path, quietLogger())
			require.NoError(t, err)
			assert.Equal(t, original, loaded)
		})
	}
}

func TestSchema(t *testing.T) {
	data, err := SchemaJSON()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "iniedit settings", doc["title"])

	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"version", "file", "backup_dir", "enable_edit", "scanner", "doc_format"} {
		assert.Contains(t, props, key)
	}
	assert.NotContains(t, doc, "required")
}
