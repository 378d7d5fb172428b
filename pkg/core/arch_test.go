package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const modulePath = "github.com/leapstack-labs/hoshi"

// importsOf returns the import paths of every non-test Go file in dir.
func importsOf(t *testing.T, dir string) map[string][]string {
	t.Helper()

	fset := token.NewFileSet()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	result := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") || strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, entry.Name()), nil, parser.ImportsOnly)
		require.NoError(t, err)
		for _, imp := range f.Imports {
			result[entry.Name()] = append(result[entry.Name()], strings.Trim(imp.Path.Value, `"`))
		}
	}
	return result
}

// TestCoreImportsOnly verifies pkg/core only imports pkg/token and stdlib.
func TestCoreImportsOnly(t *testing.T) {
	for file, imports := range importsOf(t, ".") {
		for _, imp := range imports {
			if !strings.Contains(imp, ".") {
				continue
			}
			if imp != modulePath+"/pkg/token" {
				t.Errorf("%s imports forbidden package: %s", file, imp)
			}
		}
	}
}

// TestPkgDoesNotImportInternal verifies no pkg/ package reaches into internal/.
func TestPkgDoesNotImportInternal(t *testing.T) {
	dirs, err := filepath.Glob("../*")
	require.NoError(t, err)

	for _, dir := range dirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		for file, imports := range importsOf(t, dir) {
			for _, imp := range imports {
				if strings.HasPrefix(imp, modulePath+"/internal/") {
					t.Errorf("%s/%s imports internal package: %s", filepath.Base(dir), file, imp)
				}
			}
		}
	}
}
