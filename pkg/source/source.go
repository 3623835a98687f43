// Package source materializes remote source trees into local
// workspaces the build pipeline can consume.
package source

import (
	"context"
	"fmt"
	"io"
	"os"

	git "github.com/go-git/go-git/v5"
)

// Checkout shallow-clones the repository at url into a temporary
// directory and returns its path together with a cleanup function.
// Clone progress is streamed to out.
func Checkout(ctx context.Context, url string, out io.Writer) (string, func(), error) {
	dir, err := os.MkdirTemp("", "dockwright-src-")
	if err != nil {
		return "", nil, fmt.Errorf("could not create checkout dir; %s", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	_, err = git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:      url,
		Depth:    1,
		Progress: out,
	})
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("could not clone '%s'; %s", url, err)
	}

	return dir, cleanup, nil
}
