package types

// DeploymentState is the terminal outcome of a pipeline command. Each
// command invocation produces exactly one of these.
type DeploymentState string

const (
	// Running denotes a command that has started but not yet produced
	// a terminal outcome.
	Running DeploymentState = "running"

	// Success denotes a command that completed all of its steps.
	Success DeploymentState = "success"

	// HasError denotes a command that failed. The failure reason is
	// carried alongside the state in a Result.
	HasError DeploymentState = "has-error"
)

// Result is the outcome a command reports back to its caller. Message
// is only populated when State is HasError.
type Result struct {
	State   DeploymentState
	Message string
}

// ResultSuccess returns a successful Result.
func ResultSuccess() Result {
	return Result{State: Success}
}

// ResultError returns a failed Result carrying err's message.
func ResultError(err error) Result {
	return Result{State: HasError, Message: err.Error()}
}

// Succeeded reports whether the command completed without error.
func (r Result) Succeeded() bool {
	return r.State == Success
}

// BuildInfo describes a requested image build. It is provided by the
// caller and read-only to the build command.
type BuildInfo struct {
	// Workspace is the root of the source tree to build from.
	Workspace string

	// RecipeDir optionally narrows the Dockerfile search to a
	// directory inside the workspace. When empty, the whole workspace
	// is searched.
	RecipeDir string

	// Tags is the set of image references the built image will be
	// tagged with and pushed as.
	Tags []string
}
