// Package pipeline contains the commands that make up the
// build-and-publish workflow. Each command consumes a read-only
// description of the work and returns exactly one terminal Result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/distribution/reference"
	units "github.com/docker/go-units"

	"github.com/dockwright/dockwright/pkg/types"
)

// Engine is the subset of the container engine the build command
// drives. *engine.Client satisfies it.
type Engine interface {
	BuildImage(ctx context.Context, dir string) (string, error)
	TagImage(ctx context.Context, image, tag string) error
	PushImage(ctx context.Context, tag string) error
}

// BuildCommand turns a workspace into a tagged image pushed to a
// registry: locate the single Dockerfile, build, tag, push.
type BuildCommand struct {
	Engine Engine
	Log    *log.Logger
}

// Execute runs the command. The steps are strictly sequential and each
// failure terminates the invocation with a HasError result carrying
// the failure message; a zero Result is never returned. Already-pushed
// tags are not rolled back when a later push in the set fails.
func (c *BuildCommand) Execute(ctx context.Context, info *types.BuildInfo) types.Result {
	logger := c.Log
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	start := time.Now()

	tags, err := normalizeTags(info.Tags)
	if err != nil {
		return c.fail(logger, err)
	}

	searchDir := info.Workspace
	if info.RecipeDir != "" {
		searchDir = info.RecipeDir
	}

	logger.Printf("locating build recipe under %s...", searchDir)
	recipe, err := LocateRecipe(searchDir)
	if err != nil {
		return c.fail(logger, err)
	}
	logger.Printf("using build recipe %s", recipe)

	imageID, err := c.Engine.BuildImage(ctx, filepath.Dir(recipe))
	if err != nil {
		return c.fail(logger, err)
	}
	logger.Printf("built image %s", imageID)

	for _, tag := range tags {
		err = c.Engine.TagImage(ctx, imageID, tag)
		if err != nil {
			return c.fail(logger, err)
		}
	}

	for _, tag := range tags {
		logger.Printf("pushing %s...", tag)
		err = c.Engine.PushImage(ctx, tag)
		if err != nil {
			return c.fail(logger, err)
		}
	}

	logger.Printf("pushed %d tag(s) in %s", len(tags), units.HumanDuration(time.Since(start)))
	return types.ResultSuccess()
}

func (c *BuildCommand) fail(logger *log.Logger, err error) types.Result {
	logger.Printf("build failed: %s", err)
	return types.ResultError(err)
}

// normalizeTags validates the requested tag set and expands each entry
// to its fully qualified form, defaulting the latest tag where none
// was given.
func normalizeTags(tags []string) ([]string, error) {
	if len(tags) == 0 {
		return nil, errors.New("no image tags were requested")
	}

	out := make([]string, len(tags))
	for i, t := range tags {
		named, err := reference.ParseNormalizedNamed(t)
		if err != nil {
			return nil, fmt.Errorf("invalid image tag '%s'; %s", t, err)
		}
		out[i] = reference.TagNameOnly(named).String()
	}
	return out, nil
}
