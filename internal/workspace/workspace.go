package workspace

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/moss/internal/logfields"
)

const (
	// StateDirName is the generator's directory under the source root.
	StateDirName = ".moss"
	// SiteDirName is the output directory under StateDirName.
	SiteDirName = "site"
	// ReportFileName is the build report under StateDirName.
	ReportFileName = "build-report.json"
)

// ErrOutsideSite is returned for paths that would escape the site directory.
var ErrOutsideSite = errors.New("path escapes the site directory")

// Manager handles the output tree for one source folder.
type Manager struct {
	stateDir string
	siteDir  string
}

// NewManager returns a manager for the .moss directory of sourceRoot.
func NewManager(sourceRoot string) *Manager {
	stateDir := filepath.Join(sourceRoot, StateDirName)
	return &Manager{
		stateDir: stateDir,
		siteDir:  filepath.Join(stateDir, SiteDirName),
	}
}

// SiteDir returns the path pages are written under.
func (m *Manager) SiteDir() string { return m.siteDir }

// StateDir returns the .moss directory.
func (m *Manager) StateDir() string { return m.stateDir }

// ReportPath returns where the build report is written.
func (m *Manager) ReportPath() string { return filepath.Join(m.stateDir, ReportFileName) }

// Prepare removes any previous output and creates an empty site directory.
func (m *Manager) Prepare() error {
	if err := os.RemoveAll(m.siteDir); err != nil {
		return fmt.Errorf("failed to clean output directory: %w", err)
	}
	if err := os.MkdirAll(m.siteDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	slog.Debug("Prepared output directory", logfields.Path(m.siteDir))
	return nil
}

// Resolve maps a slash-separated site path to a filesystem path, refusing
// anything that would land outside the site directory.
func (m *Manager) Resolve(relPath string) (string, error) {
	local := filepath.FromSlash(relPath)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("%w: %s", ErrOutsideSite, relPath)
	}
	return filepath.Join(m.siteDir, local), nil
}

// WriteFile writes data at relPath, creating parent directories.
func (m *Manager) WriteFile(relPath string, data []byte) error {
	dst, err := m.Resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", relPath, err)
	}
	// #nosec G306 -- generated pages are public
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", relPath, err)
	}
	return nil
}

// CopyFile copies the file at src byte for byte to relPath.
func (m *Manager) CopyFile(src, relPath string) (err error) {
	dst, err := m.Resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", relPath, err)
	}

	in, err := os.Open(filepath.Clean(src))
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", relPath, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", relPath, cerr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", relPath, err)
	}
	return nil
}

// WriteState atomically replaces a file directly under the .moss
// directory, writing a temporary sibling first.
func (m *Manager) WriteState(name string, data []byte) error {
	if !filepath.IsLocal(name) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %s", ErrOutsideSite, name)
	}
	if err := os.MkdirAll(m.stateDir, 0o750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	target := filepath.Join(m.stateDir, name)
	tmp := target + ".tmp"
	// #nosec G306 -- the report holds no secrets
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
