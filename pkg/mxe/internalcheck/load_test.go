package internalcheck

import (
	"testing"

	"golang.org/x/tools/go/packages"
)

const mxePattern = "github.com/hsiuhsiu/mxe-go/pkg/mxe/..."

func loadMXE(t *testing.T, mode packages.LoadMode) []*packages.Package {
	t.Helper()
	pkgs, err := packages.Load(&packages.Config{Mode: mode}, mxePattern)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		t.Fatal("packages contain errors")
	}
	return pkgs
}
