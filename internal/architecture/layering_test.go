package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulesImport = "rps/internal/modules/"

var layers = []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"}

// forEachModuleImport calls check for every import of a module package made
// by a non-test Go file under root.
func forEachModuleImport(t *testing.T, root string, check func(file, importPath string)) {
	t.Helper()
	fset := token.NewFileSet()
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		node, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if strings.Contains(importPath, modulesImport) {
				check(filepath.ToSlash(path), importPath)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
}

func TestModuleLayerImports(t *testing.T) {
	t.Parallel()
	forEachModuleImport(t, filepath.Join("..", "modules"), func(file, importPath string) {
		module, layer := moduleOf(file), layerOf(file)
		if module == "" || layer == "" {
			return
		}
		if crossesLayer(module, layer, importPath) {
			t.Errorf("%s (%s) must not import %s", file, layer, importPath)
		}
	})
}

// The console and the TUI reach the game module through its inbound port only.
func TestPresentationImportsPortsOnly(t *testing.T) {
	t.Parallel()
	for _, root := range []string{filepath.Join("..", "console"), filepath.Join("..", "ui")} {
		forEachModuleImport(t, root, func(file, importPath string) {
			if !isPortIn(importPath) && !isDTO(importPath) {
				t.Errorf("%s must not import %s", file, importPath)
			}
		})
	}
}

func moduleOf(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "modules" {
			return parts[i+1]
		}
	}
	return ""
}

func layerOf(path string) string {
	for _, layer := range layers {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}

func isPortIn(path string) bool {
	return strings.HasSuffix(path, "/port/in") || strings.Contains(path, "/port/in/")
}

func isDTO(path string) bool {
	return strings.HasSuffix(path, "/dto") || strings.Contains(path, "/dto/")
}

func importsAny(importPath string, parts ...string) bool {
	for _, p := range parts {
		if strings.Contains(importPath, p) {
			return true
		}
	}
	return false
}

func crossesLayer(module, layer, importPath string) bool {
	if !strings.Contains(importPath, modulesImport+module+"/") {
		if importsAny(importPath, "/service", "/adapter/", "/usecase") {
			return true
		}
		if isPortIn(importPath) || isDTO(importPath) {
			return false
		}
	}
	switch layer {
	case "adapter/in":
		return !isPortIn(importPath) && !isDTO(importPath)
	case "usecase":
		return importsAny(importPath, "/adapter/")
	case "service":
		return importsAny(importPath, "/adapter/", "/usecase")
	case "domain":
		return importsAny(importPath, "/adapter/", "/usecase", "/service")
	}
	return false
}
