// Package claude reads and updates the Claude Code settings file so that
// its statusLine entry invokes ccline.
//
// Reads degrade: a missing, unreadable or malformed settings file is treated
// as having no statusLine and as an empty document. Writes do not: every
// failure to create the directory or persist the file is returned as a
// *ConfigError.
package claude

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/haleclipse/ccline/internal/logger"
	"github.com/spf13/afero"
)

// StatusLineKey is the only top-level settings key ccline touches.
const StatusLineKey = "statusLine"

// StatusLine is the fragment stored under StatusLineKey.
type StatusLine struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Padding int    `json:"padding"`
}

// NewStatusLine returns the fragment invoking command.
func NewStatusLine(command string) StatusLine {
	return StatusLine{Type: "command", Command: command, Padding: 0}
}

// WriteReport describes the outcome of Apply.
type WriteReport struct {
	Path string
	// Cancelled is set when the user declined to overwrite; nothing was written.
	Cancelled bool
	// Created is set when the settings file did not exist before.
	Created bool
	// Replaced is set when a previous statusLine entry was overwritten.
	Replaced bool
	// BackupPath is where the previous entry was saved, if it differed.
	BackupPath string
}

// Confirmer asks whether an existing statusLine may be overwritten.
type Confirmer interface {
	ConfirmOverwrite(settingsPath string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(settingsPath string) (bool, error)

func (f ConfirmFunc) ConfirmOverwrite(settingsPath string) (bool, error) {
	return f(settingsPath)
}

// Writer applies the statusLine fragment to the settings file.
type Writer struct {
	fs           afero.Fs
	family       Family
	homeDir      func() (string, error)
	settingsPath string
	command      string
	confirmer    Confirmer
	backupDir    string
}

// Option configures a Writer.
type Option func(*Writer)

// WithFs replaces the filesystem (default: the OS filesystem).
func WithFs(fs afero.Fs) Option {
	return func(w *Writer) { w.fs = fs }
}

// WithFamily overrides the platform family (default: CurrentFamily()).
func WithFamily(f Family) Option {
	return func(w *Writer) { w.family = f }
}

// WithHomeDir overrides home directory lookup (default: os.UserHomeDir).
func WithHomeDir(fn func() (string, error)) Option {
	return func(w *Writer) { w.homeDir = fn }
}

// WithSettingsPath pins the settings file instead of the platform default.
// An empty path keeps the default.
func WithSettingsPath(p string) Option {
	return func(w *Writer) { w.settingsPath = p }
}

// WithCommand overrides the command stored in the fragment. An empty
// command keeps the platform default.
func WithCommand(cmd string) Option {
	return func(w *Writer) { w.command = cmd }
}

// WithConfirmer sets who is asked before overwriting without force.
// Without one, an existing entry is never overwritten unless forced.
func WithConfirmer(c Confirmer) Option {
	return func(w *Writer) { w.confirmer = c }
}

// WithBackupDir enables saving a replaced statusLine entry under dir.
func WithBackupDir(dir string) Option {
	return func(w *Writer) { w.backupDir = dir }
}

// NewWriter creates a Writer for the current platform.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{
		fs:      afero.NewOsFs(),
		family:  CurrentFamily(),
		homeDir: os.UserHomeDir,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// SettingsPath resolves the settings file location.
func (w *Writer) SettingsPath() (string, error) {
	if w.settingsPath != "" {
		return w.settingsPath, nil
	}
	home, err := w.homeDir()
	if err != nil || home == "" {
		if err == nil {
			err = errors.New("empty home directory")
		}
		return "", &ConfigError{Kind: KindPathUnresolved, Op: "resolve", Err: err}
	}
	return PathsFor(w.family, home).Settings, nil
}

// Command returns the command the fragment will invoke.
func (w *Writer) Command() string {
	if w.command != "" {
		return w.command
	}
	home, err := w.homeDir()
	if err != nil || home == "" {
		home = "."
	}
	return PathsFor(w.family, home).Command
}

// Fragment returns the statusLine value Apply would write.
func (w *Writer) Fragment() StatusLine {
	return NewStatusLine(w.Command())
}

// HasExistingEntry reports whether the settings file has a statusLine key.
// Any failure to resolve, read or parse the file reports false.
func (w *Writer) HasExistingEntry() bool {
	path, err := w.SettingsPath()
	if err != nil {
		return false
	}
	data, err := afero.ReadFile(w.fs, path)
	if err != nil {
		return false
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return false
	}
	_, ok := doc[StatusLineKey]
	return ok
}

// Apply writes the statusLine fragment into the settings file. Unless force
// is set, an existing entry is only replaced after the Confirmer agrees.
func (w *Writer) Apply(force bool) (*WriteReport, error) {
	if !force && w.HasExistingEntry() {
		ok, err := w.confirm()
		if err != nil {
			return nil, err
		}
		if !ok {
			logger.Info("statusLine overwrite declined")
			return &WriteReport{Cancelled: true}, nil
		}
	}

	path, err := w.SettingsPath()
	if err != nil {
		return nil, err
	}

	if err := w.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &ConfigError{Kind: KindIO, Op: "create directory", Path: filepath.Dir(path), Err: err}
	}

	doc, existed := w.load(path)
	prev, replaced := doc[StatusLineKey]
	frag := w.Fragment()
	doc[StatusLineKey] = frag

	data, err := encode(doc)
	if err != nil {
		return nil, &ConfigError{Kind: KindEncode, Op: "encode", Path: path, Err: err}
	}
	if err := writeFileAtomic(w.fs, path, data); err != nil {
		return nil, &ConfigError{Kind: KindIO, Op: "write", Path: path, Err: err}
	}

	report := &WriteReport{Path: path, Created: !existed, Replaced: replaced}
	if replaced && !sameJSON(prev, frag) {
		report.BackupPath = w.backup(path, prev)
	}
	logger.Info("statusLine written to %s (created=%t replaced=%t)", path, report.Created, report.Replaced)
	return report, nil
}

func (w *Writer) confirm() (bool, error) {
	if w.confirmer == nil {
		return false, nil
	}
	path, _ := w.SettingsPath()
	ok, err := w.confirmer.ConfirmOverwrite(path)
	if err != nil {
		return false, &ConfigError{Kind: KindPrompt, Op: "confirm", Path: path, Err: err}
	}
	return ok, nil
}

// load returns the current document, or an empty one when the file is
// missing, unreadable or not a JSON object. existed reports whether the
// file was present at all.
func (w *Writer) load(path string) (doc map[string]any, existed bool) {
	data, err := afero.ReadFile(w.fs, path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read %s, starting from empty settings: %v", path, err)
			return map[string]any{}, true
		}
		return map[string]any{}, false
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	err = dec.Decode(&doc)
	if err == nil {
		if _, tail := dec.Token(); tail != io.EOF {
			err = errors.New("trailing data after settings object")
		}
	}
	if err != nil {
		logger.Warn("Failed to parse %s, replacing with fresh settings: %v", path, err)
		return map[string]any{}, true
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, true
}

// encode renders doc with two-space indentation and a trailing newline.
// Map keys come out sorted, so equal documents encode to equal bytes.
func encode(doc map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// maxLinkHops bounds symlink resolution.
const maxLinkHops = 40

// resolveLink follows symlinks at path so a linked settings file is updated
// in place instead of being replaced. Filesystems without link support, and
// paths that are not links, resolve to themselves.
func resolveLink(fs afero.Fs, path string) (string, error) {
	lstater, ok := fs.(afero.Lstater)
	if !ok {
		return path, nil
	}
	reader, ok := fs.(afero.LinkReader)
	if !ok {
		return path, nil
	}

	for i := 0; i < maxLinkHops; i++ {
		info, _, err := lstater.LstatIfPossible(path)
		if os.IsNotExist(err) {
			return path, nil
		}
		if err != nil {
			return "", err
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return path, nil
		}
		target, err := reader.ReadlinkIfPossible(path)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		path = target
	}
	return "", fmt.Errorf("too many levels of symbolic links: %s", path)
}

// writeFileAtomic writes data to a temp file beside the real file behind path
// and renames it into place, keeping the previous file's permissions.
func writeFileAtomic(fs afero.Fs, path string, data []byte) error {
	path, err := resolveLink(fs, path)
	if err != nil {
		return err
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	perm := os.FileMode(0644)
	if info, err := fs.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := afero.TempFile(fs, filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = fs.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := fs.Chmod(tmpName, perm); err != nil {
		cleanup()
		return err
	}
	if err := fs.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}

func sameJSON(a, b any) bool {
	ja, err := json.Marshal(a)
	if err != nil {
		return false
	}
	jb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	var va, vb any
	if json.Unmarshal(ja, &va) != nil || json.Unmarshal(jb, &vb) != nil {
		return false
	}
	ca, _ := json.Marshal(va)
	cb, _ := json.Marshal(vb)
	return bytes.Equal(ca, cb)
}
