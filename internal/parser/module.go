package parser

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// FindGoMod searches for a go.mod file starting at dir and walking up.
func FindGoMod(dir string) (string, error) {
	current := filepath.Clean(dir)
	for {
		candidate := filepath.Join(current, "go.mod")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return "", fmt.Errorf("go.mod not found above %s", dir)
}

// ModulePath reads the module path declared in a go.mod file.
func ModulePath(goModPath string) (string, error) {
	content, err := os.ReadFile(goModPath)
	if err != nil {
		return "", fmt.Errorf("reading go.mod: %w", err)
	}

	mod, err := modfile.ParseLax(goModPath, content, nil)
	if err != nil {
		return "", fmt.Errorf("parsing go.mod: %w", err)
	}
	if mod.Module == nil {
		return "", fmt.Errorf("no module declaration in %s", goModPath)
	}
	return mod.Module.Mod.Path, nil
}

// ImportPath derives the import path of the package in dir from the nearest
// go.mod. It returns "" when dir is not inside a module.
func ImportPath(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	goMod, err := FindGoMod(abs)
	if err != nil {
		return ""
	}
	modPath, err := ModulePath(goMod)
	if err != nil {
		return ""
	}

	rel, err := filepath.Rel(filepath.Dir(goMod), abs)
	if err != nil || rel == "." {
		return modPath
	}
	return modPath + "/" + filepath.ToSlash(rel)
}
