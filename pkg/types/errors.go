package types

import "fmt"

// ErrConfig indicates an invalid or incomplete client configuration.
// It is fatal to resolution and never retried.
type ErrConfig struct {
	Reason string
}

func (e ErrConfig) Error() string {
	return "invalid client configuration: " + e.Reason
}

// ErrRecipeLocation indicates that the Dockerfile search did not yield
// exactly one match.
type ErrRecipeLocation struct {
	Dir   string
	Count int
}

func (e ErrRecipeLocation) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("no Dockerfile found under '%s'", e.Dir)
	}
	return fmt.Sprintf("%d Dockerfiles found under '%s', exactly one is required", e.Count, e.Dir)
}

// ErrImageBuild indicates an error occurred while building a Docker image.
type ErrImageBuild struct {
	Dir string
	Err error
}

func (e ErrImageBuild) Error() string {
	return fmt.Sprintf("could not build docker image from '%s': %s", e.Dir, e.Err)
}

// ErrImageTag indicates an error occurred while applying a tag to a
// built image.
type ErrImageTag struct {
	Tag string
	Err error
}

func (e ErrImageTag) Error() string {
	return fmt.Sprintf("could not tag '%s': %s", e.Tag, e.Err)
}

// ErrImagePush indicates an error occurred while pushing an image tag
// to its registry.
type ErrImagePush struct {
	Tag string
	Err error
}

func (e ErrImagePush) Error() string {
	return fmt.Sprintf("could not push '%s': %s", e.Tag, e.Err)
}
