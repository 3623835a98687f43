package pipeline

import (
	"io/fs"
	"path/filepath"

	"github.com/dockwright/dockwright/pkg/types"
)

// RecipeFname is the conventional name of the build recipe file.
const RecipeFname = "Dockerfile"

// LocateRecipe walks root and returns the path of the single
// Dockerfile found beneath it. Zero matches or more than one match is
// a types.ErrRecipeLocation; ambiguity is never resolved by picking an
// arbitrary candidate.
func LocateRecipe(root string) (string, error) {
	var matches []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == RecipeFname {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if len(matches) != 1 {
		return "", types.ErrRecipeLocation{Dir: root, Count: len(matches)}
	}
	return matches[0], nil
}
