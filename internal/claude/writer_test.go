package claude

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testHome     = "/home/tester"
	testSettings = "/home/tester/.config/claude/settings.json"
	testCommand  = "/home/tester/.claude/ccline/ccline"
)

const freshDocument = `{
  "statusLine": {
    "type": "command",
    "command": "/home/tester/.claude/ccline/ccline",
    "padding": 0
  }
}
`

func newTestWriter(fs afero.Fs, opts ...Option) *Writer {
	base := []Option{
		WithFs(fs),
		WithFamily(Unix),
		WithHomeDir(func() (string, error) { return testHome, nil }),
	}
	return NewWriter(append(base, opts...)...)
}

func writeSettings(t *testing.T, fs afero.Fs, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(testSettings), 0755))
	require.NoError(t, afero.WriteFile(fs, testSettings, []byte(content), 0644))
}

func readSettings(t *testing.T, fs afero.Fs) string {
	t.Helper()
	data, err := afero.ReadFile(fs, testSettings)
	require.NoError(t, err)
	return string(data)
}

func decode(t *testing.T, content string) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(content), &doc))
	return doc
}

// countingConfirmer records how often it was asked.
type countingConfirmer struct {
	answer bool
	err    error
	calls  int
}

func (c *countingConfirmer) ConfirmOverwrite(string) (bool, error) {
	c.calls++
	return c.answer, c.err
}

func TestWriter_SettingsPathAndCommand(t *testing.T) {
	w := newTestWriter(afero.NewMemMapFs())

	path, err := w.SettingsPath()
	require.NoError(t, err)
	assert.Equal(t, testSettings, path)
	assert.Equal(t, testCommand, w.Command())
	assert.Equal(t, StatusLine{Type: "command", Command: testCommand, Padding: 0}, w.Fragment())
}

func TestWriter_Overrides(t *testing.T) {
	w := newTestWriter(afero.NewMemMapFs(),
		WithSettingsPath("/etc/claude/settings.json"),
		WithCommand("/opt/ccline/bin/ccline"),
	)

	path, err := w.SettingsPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/claude/settings.json", path)
	assert.Equal(t, "/opt/ccline/bin/ccline", w.Fragment().Command)
}

func TestWriter_HasExistingEntry(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		want    bool
	}{
		{name: "no file", content: nil, want: false},
		{name: "malformed", content: ptr("{not json"), want: false},
		{name: "array", content: ptr(`[1,2]`), want: false},
		{name: "no key", content: ptr(`{"theme":"dark"}`), want: false},
		{name: "key present", content: ptr(`{"statusLine":{"type":"old"}}`), want: true},
		{name: "key null", content: ptr(`{"statusLine":null}`), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if tt.content != nil {
				writeSettings(t, fs, *tt.content)
			}
			assert.Equal(t, tt.want, newTestWriter(fs).HasExistingEntry())
		})
	}
}

func TestWriter_HasExistingEntry_NoHome(t *testing.T) {
	w := newTestWriter(afero.NewMemMapFs(),
		WithHomeDir(func() (string, error) { return "", errors.New("no home") }))
	assert.False(t, w.HasExistingEntry())
}

func TestWriter_Apply_NoFileCreatesDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()

	report, err := newTestWriter(fs).Apply(true)
	require.NoError(t, err)

	assert.Equal(t, testSettings, report.Path)
	assert.True(t, report.Created)
	assert.False(t, report.Replaced)
	assert.False(t, report.Cancelled)
	assert.Equal(t, freshDocument, readSettings(t, fs))

	isDir, err := afero.IsDir(fs, filepath.Dir(testSettings))
	require.NoError(t, err)
	assert.True(t, isDir)
}

func TestWriter_Apply_PreservesSiblingKeys(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeSettings(t, fs, `{"other": 1, "statusLine": {"type": "old"}}`)

	report, err := newTestWriter(fs).Apply(true)
	require.NoError(t, err)
	assert.True(t, report.Replaced)
	assert.False(t, report.Created)

	doc := decode(t, readSettings(t, fs))
	assert.Len(t, doc, 2)
	assert.Equal(t, float64(1), doc["other"])
	assert.Equal(t, map[string]any{
		"type":    "command",
		"command": testCommand,
		"padding": float64(0),
	}, doc["statusLine"])
}

func TestWriter_Apply_PassesThroughUnknownValues(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeSettings(t, fs, `{
  "hooks": {"PreToolUse": [{"command": "lint && test <all>"}]},
  "bigNumber": 12345678901234567890,
  "ratio": 0.1,
  "futureKey": {"nested": [true, null, "x"]}
}`)

	_, err := newTestWriter(fs).Apply(true)
	require.NoError(t, err)

	content := readSettings(t, fs)
	assert.Contains(t, content, "12345678901234567890")
	assert.Contains(t, content, "lint && test <all>")
	doc := decode(t, content)
	assert.Equal(t, 0.1, doc["ratio"])
	assert.Equal(t, map[string]any{"nested": []any{true, nil, "x"}}, doc["futureKey"])
	assert.Contains(t, doc, "hooks")
}

func TestWriter_Apply_MalformedFileIsReplaced(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeSettings(t, fs, "this is { not json")

	report, err := newTestWriter(fs).Apply(true)
	require.NoError(t, err)
	assert.False(t, report.Created)
	assert.False(t, report.Replaced)

	// Unreadable prior content is discarded.
	assert.Equal(t, freshDocument, readSettings(t, fs))
}

func TestWriter_Apply_TrailingGarbageIsMalformed(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeSettings(t, fs, `{"keep": true} trailing`)

	_, err := newTestWriter(fs).Apply(true)
	require.NoError(t, err)
	assert.Equal(t, freshDocument, readSettings(t, fs))
}

func TestWriter_Apply_Idempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeSettings(t, fs, `{"zeta": {"b": 2, "a": 1}, "alpha": [3, 2, 1], "statusLine": {"type": "old"}}`)
	w := newTestWriter(fs)

	_, err := w.Apply(true)
	require.NoError(t, err)
	first := readSettings(t, fs)

	_, err = w.Apply(true)
	require.NoError(t, err)
	assert.Equal(t, first, readSettings(t, fs))
}

func TestWriter_Apply_DeclinedLeavesFileUntouched(t *testing.T) {
	fs := afero.NewMemMapFs()
	original := `{"statusLine":{"type":"command","command":"other-tool","padding":2},"x":1}`
	writeSettings(t, fs, original)
	confirmer := &countingConfirmer{answer: false}

	report, err := newTestWriter(fs, WithConfirmer(confirmer)).Apply(false)
	require.NoError(t, err)
	assert.True(t, report.Cancelled)
	assert.Empty(t, report.Path)
	assert.Equal(t, 1, confirmer.calls)
	assert.Equal(t, original, readSettings(t, fs))
}

func TestWriter_Apply_ConfirmedOverwrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeSettings(t, fs, `{"statusLine":{"type":"old"}}`)
	confirmer := &countingConfirmer{answer: true}

	report, err := newTestWriter(fs, WithConfirmer(confirmer)).Apply(false)
	require.NoError(t, err)
	assert.False(t, report.Cancelled)
	assert.True(t, report.Replaced)
	assert.Equal(t, 1, confirmer.calls)
	assert.Equal(t, freshDocument, readSettings(t, fs))
}

func TestWriter_Apply_NoConfirmerDeclines(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeSettings(t, fs, `{"statusLine":{"type":"old"}}`)

	report, err := newTestWriter(fs).Apply(false)
	require.NoError(t, err)
	assert.True(t, report.Cancelled)
	assert.Equal(t, `{"statusLine":{"type":"old"}}`, readSettings(t, fs))
}

func TestWriter_Apply_NoExistingEntrySkipsConfirmation(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeSettings(t, fs, `{"theme":"dark"}`)
	confirmer := &countingConfirmer{answer: false}

	report, err := newTestWriter(fs, WithConfirmer(confirmer)).Apply(false)
	require.NoError(t, err)
	assert.False(t, report.Cancelled)
	assert.Equal(t, 0, confirmer.calls)
	assert.Equal(t, "dark", decode(t, readSettings(t, fs))["theme"])
}

func TestWriter_Apply_ConfirmerError(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeSettings(t, fs, `{"statusLine":{}}`)
	confirmer := &countingConfirmer{err: errors.New("stdin closed")}

	report, err := newTestWriter(fs, WithConfirmer(confirmer)).Apply(false)
	assert.Nil(t, report)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPrompt))
	assert.Contains(t, err.Error(), "stdin closed")
}

func TestWriter_Apply_PathUnresolved(t *testing.T) {
	w := newTestWriter(afero.NewMemMapFs(),
		WithHomeDir(func() (string, error) { return "", errors.New("$HOME is not defined") }))

	report, err := w.Apply(true)
	assert.Nil(t, report)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPathUnresolved))

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, KindPathUnresolved, cfgErr.Kind)
	assert.False(t, errors.Is(err, ErrIO))
}

func TestWriter_Apply_EmptyHomeIsUnresolved(t *testing.T) {
	w := newTestWriter(afero.NewMemMapFs(),
		WithHomeDir(func() (string, error) { return "", nil }))

	_, err := w.Apply(true)
	assert.True(t, errors.Is(err, ErrPathUnresolved))
}

func TestWriter_Apply_DirectoryFailureIsIO(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	report, err := newTestWriter(fs).Apply(true)
	assert.Nil(t, report)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIO))

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "create directory", cfgErr.Op)
}

func TestWriter_Apply_BacksUpDifferingEntry(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeSettings(t, fs, `{"statusLine":{"type":"command","command":"old-tool","padding":1}}`)
	w := newTestWriter(fs, WithBackupDir("/home/tester/.config/ccline"))

	report, err := w.Apply(true)
	require.NoError(t, err)
	require.NotEmpty(t, report.BackupPath)
	assert.Equal(t, BackupPath("/home/tester/.config/ccline", testSettings), report.BackupPath)

	data, err := afero.ReadFile(fs, report.BackupPath)
	require.NoError(t, err)
	backup := decode(t, string(data))
	assert.Equal(t, "old-tool", backup["statusLine"].(map[string]any)["command"])

	// Re-applying the same fragment has nothing new to back up.
	report, err = w.Apply(true)
	require.NoError(t, err)
	assert.True(t, report.Replaced)
	assert.Empty(t, report.BackupPath)
}

func TestWriter_Apply_NoBackupDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeSettings(t, fs, `{"statusLine":{"type":"old"}}`)

	report, err := newTestWriter(fs).Apply(true)
	require.NoError(t, err)
	assert.Empty(t, report.BackupPath)
}

func TestBackupPath(t *testing.T) {
	got := BackupPath("/state", "/home/tester/.config/claude/settings.json")
	assert.Equal(t, filepath.Join("/state", "backups", "home-tester-config-claude-settings-json.json"), got)
}

func TestWriter_Apply_OSFilesystem(t *testing.T) {
	home := t.TempDir()
	w := NewWriter(
		WithFamily(CurrentFamily()),
		WithHomeDir(func() (string, error) { return home, nil }),
		WithSettingsPath(filepath.Join(home, "claude", "settings.json")),
		WithCommand("ccline"),
	)
	path := filepath.Join(home, "claude", "settings.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(`{"model":"opus"}`), 0600))

	report, err := w.Apply(true)
	require.NoError(t, err)
	assert.Equal(t, path, report.Path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := decode(t, string(data))
	assert.Equal(t, "opus", doc["model"])
	assert.Equal(t, "ccline", doc["statusLine"].(map[string]any)["command"])

	// The temp file was renamed into place, not left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "settings.json", entries[0].Name())

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}
}

func TestWriter_Apply_FollowsSymlinkedSettings(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on windows")
	}
	home := t.TempDir()
	target := filepath.Join(home, "dotfiles", "settings.json")
	link := filepath.Join(home, ".config", "claude", "settings.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0755))
	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0755))
	require.NoError(t, os.WriteFile(target, []byte(`{"model":"opus"}`), 0600))
	require.NoError(t, os.Symlink("../../dotfiles/settings.json", link))

	w := NewWriter(
		WithSettingsPath(link),
		WithCommand("ccline"),
	)
	report, err := w.Apply(true)
	require.NoError(t, err)
	assert.Equal(t, link, report.Path)

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "settings link must survive the write")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	doc := decode(t, string(data))
	assert.Equal(t, "opus", doc["model"])
	assert.Equal(t, "ccline", doc["statusLine"].(map[string]any)["command"])

	targetInfo, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), targetInfo.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp file left beside the target")
}

func TestResolveLink(t *testing.T) {
	t.Run("memory fs resolves to itself", func(t *testing.T) {
		got, err := resolveLink(afero.NewMemMapFs(), testSettings)
		require.NoError(t, err)
		assert.Equal(t, testSettings, got)
	})

	if runtime.GOOS == "windows" {
		return
	}

	t.Run("missing file resolves to itself", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.json")
		got, err := resolveLink(afero.NewOsFs(), path)
		require.NoError(t, err)
		assert.Equal(t, path, got)
	})

	t.Run("chained links", func(t *testing.T) {
		dir := t.TempDir()
		realPath := filepath.Join(dir, "real.json")
		require.NoError(t, os.WriteFile(realPath, []byte("{}"), 0644))
		require.NoError(t, os.Symlink(realPath, filepath.Join(dir, "b.json")))
		require.NoError(t, os.Symlink("b.json", filepath.Join(dir, "a.json")))

		got, err := resolveLink(afero.NewOsFs(), filepath.Join(dir, "a.json"))
		require.NoError(t, err)
		assert.Equal(t, realPath, got)
	})

	t.Run("link loop", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Symlink("b.json", filepath.Join(dir, "a.json")))
		require.NoError(t, os.Symlink("a.json", filepath.Join(dir, "b.json")))

		_, err := resolveLink(afero.NewOsFs(), filepath.Join(dir, "a.json"))
		assert.Error(t, err)
	})
}

func TestConfigError_Message(t *testing.T) {
	err := &ConfigError{Kind: KindIO, Op: "write", Path: "/x/settings.json", Err: errors.New("disk full")}
	assert.Equal(t, "write: settings file i/o failed (/x/settings.json): disk full", err.Error())
	assert.True(t, errors.Is(err, ErrIO))
	assert.False(t, errors.Is(err, ErrEncode))

	var zero ConfigError
	assert.Equal(t, "settings error", zero.Error())
}

func ptr(s string) *string { return &s }
