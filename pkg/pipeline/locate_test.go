package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dockwright/dockwright/pkg/types"
)

func TestLocateRecipeSingle(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "build", "docker")
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		t.Fatal(err)
	}
	want := writeRecipe(t, dir)

	got, err := LocateRecipe(root)
	if err != nil {
		t.Fatal(err)
	}
	assertEq(got, want, t)
}

func TestLocateRecipeNone(t *testing.T) {
	root := t.TempDir()
	// a similarly named file must not count as a recipe
	err := os.WriteFile(filepath.Join(root, "Dockerfile.dev"), []byte("FROM scratch\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	_, err = LocateRecipe(root)
	lerr, ok := err.(types.ErrRecipeLocation)
	if !ok {
		t.Fatalf("Expected a types.ErrRecipeLocation, got %#v", err)
	}
	assertEq(lerr.Count, 0, t)
}

func TestLocateRecipeMultiple(t *testing.T) {
	root := t.TempDir()
	writeRecipe(t, root)
	sub := filepath.Join(root, "api")
	err := os.Mkdir(sub, 0755)
	if err != nil {
		t.Fatal(err)
	}
	writeRecipe(t, sub)

	_, err = LocateRecipe(root)
	lerr, ok := err.(types.ErrRecipeLocation)
	if !ok {
		t.Fatalf("Expected a types.ErrRecipeLocation, got %#v", err)
	}
	assertEq(lerr.Count, 2, t)
}
