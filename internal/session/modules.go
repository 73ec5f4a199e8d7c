package session

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// AddModulePath appends p unless it is already registered. Paths are compared
// as given, without cleaning.
func (s *Session) AddModulePath(p string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addModulePathLocked(p)
}

func (s *Session) addModulePathLocked(p string) {
	if slices.Contains(s.modulePaths, p) {
		return
	}
	s.modulePaths = append(s.modulePaths, p)
}

// ModulePaths returns a copy of the registered paths in registration order.
func (s *Session) ModulePaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.modulePaths)
}

// FindModule looks for a directory called name in the work directory and
// then in every module path, in registration order. The first directory wins.
//
// A plain file with that name is skipped: a module is always a directory, and
// the search goes on to the remaining paths.
//
// name must be a single path element: empty names, "." and "..", and names
// containing a separator never match.
func (s *Session) FindModule(name string) (string, bool) {
	if !validModuleName(name) {
		return "", false
	}
	for _, dir := range s.searchDirs() {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil || !info.IsDir() {
			continue
		}
		return candidate, true
	}
	return "", false
}

func (s *Session) searchDirs() []string {
	paths := s.ModulePaths()
	dirs := make([]string, 0, 1+len(paths))
	dirs = append(dirs, s.WorkDir())
	return append(dirs, paths...)
}

func validModuleName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && name == filepath.Base(name)
}
