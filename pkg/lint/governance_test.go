//go:build governance

package lint_test

import (
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const modulePath = "github.com/clutch-assistant/siglint"

// TestGovernance_PkgDoesNotImportInternal verifies the layering rule:
// everything under pkg/ is a reusable library and must not reach into
// internal/, which holds the front-ends. The reverse direction is
// fine.
func TestGovernance_PkgDoesNotImportInternal(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports,
	}
	pkgs, err := packages.Load(cfg, modulePath+"/pkg/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}
	if len(pkgs) == 0 {
		t.Fatal("No packages loaded under pkg/")
	}

	internalPrefix := modulePath + "/internal/"
	for _, p := range pkgs {
		for importPath := range p.Imports {
			if strings.HasPrefix(importPath, internalPrefix) {
				t.Errorf("%s imports %s: pkg/ must not depend on internal/", p.PkgPath, importPath)
			}
		}
	}
}

// TestGovernance_CoreDependencyFree verifies pkg/lint and its
// collaborators import only each other and the standard library. The
// engine stays embeddable without dragging front-end dependencies in.
func TestGovernance_CoreDependencyFree(t *testing.T) {
	corePkgs := []string{
		modulePath + "/pkg/jsonc",
		modulePath + "/pkg/signalset",
		modulePath + "/pkg/lint",
		modulePath + "/pkg/lint/rules",
	}
	allowed := make(map[string]bool, len(corePkgs))
	for _, p := range corePkgs {
		allowed[p] = true
	}

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports,
	}
	pkgs, err := packages.Load(cfg, corePkgs...)
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	for _, p := range pkgs {
		for importPath := range p.Imports {
			// Stdlib import paths carry no domain.
			if !strings.Contains(strings.SplitN(importPath, "/", 2)[0], ".") {
				continue
			}
			if !allowed[importPath] {
				t.Errorf("%s imports %s: the core must stay dependency-free", p.PkgPath, importPath)
			}
		}
	}
}
