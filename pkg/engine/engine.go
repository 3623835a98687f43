// Package engine adapts the Docker engine API to the narrow surface
// the build pipeline needs: build a directory into an image, tag it,
// push a tag.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	dockertypes "github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/registry"
	docker "github.com/docker/docker/client"
	"github.com/docker/docker/pkg/archive"
	"github.com/docker/docker/pkg/jsonmessage"

	"github.com/dockwright/dockwright/pkg/dockerconfig"
	"github.com/dockwright/dockwright/pkg/types"
)

// Client talks to a single Docker engine. All calls block until the
// engine reports completion.
type Client struct {
	api  *docker.Client
	auth registry.AuthConfig

	// out receives the engine's progress stream during builds and
	// pushes.
	out io.Writer
}

// NewClient constructs an engine client from cfg. When cfg carries no
// registry credential record, the credential files under cfg.ConfigDir
// are consulted before falling back to anonymous pushes.
func NewClient(cfg *dockerconfig.ClientConfig, out io.Writer) (*Client, error) {
	opts := []docker.Opt{docker.WithHost(cfg.Host.String())}

	if cfg.APIVersion != "" {
		opts = append(opts, docker.WithVersion(cfg.APIVersion))
	} else {
		opts = append(opts, docker.WithAPIVersionNegotiation())
	}

	if cfg.Trust != nil {
		// Load the key material once up front so a broken cert
		// directory fails here instead of at the first engine call.
		if _, err := cfg.Trust.TLSConfig(); err != nil {
			return nil, types.ErrConfig{Reason: err.Error()}
		}
		opts = append(opts, docker.WithTLSClientConfig(
			cfg.Trust.CAFile, cfg.Trust.CertFile, cfg.Trust.KeyFile))
	}

	api, err := docker.NewClientWithOpts(opts...)
	if err != nil {
		return nil, err
	}

	auth, ok := cfg.AuthConfig()
	if !ok {
		auth, _ = dockerconfig.LoadRegistryAuth(cfg.ConfigDir, cfg.RegistryURL)
	}

	return &Client{api: api, auth: auth, out: out}, nil
}

// BuildImage builds an image from the Dockerfile in dir and returns
// the engine-reported image id. If there is an error, it will be of
// type types.ErrImageBuild.
func (c *Client) BuildImage(ctx context.Context, dir string) (string, error) {
	buildCtx, err := archive.TarWithOptions(dir, &archive.TarOptions{})
	if err != nil {
		return "", types.ErrImageBuild{Dir: dir, Err: err}
	}
	defer buildCtx.Close()

	resp, err := c.api.ImageBuild(ctx, buildCtx, dockertypes.ImageBuildOptions{
		Dockerfile:  "Dockerfile",
		Remove:      true,
		ForceRemove: true,
	})
	if err != nil {
		return "", types.ErrImageBuild{Dir: dir, Err: err}
	}
	defer resp.Body.Close()

	// The image id arrives on the aux channel of the progress stream.
	var imageID string
	aux := func(msg jsonmessage.JSONMessage) {
		var result dockertypes.BuildResult
		if err := json.Unmarshal(*msg.Aux, &result); err == nil {
			imageID = result.ID
		}
	}

	err = jsonmessage.DisplayJSONMessagesStream(resp.Body, c.out, 0, false, aux)
	if err != nil {
		return "", types.ErrImageBuild{Dir: dir, Err: err}
	}
	if imageID == "" {
		return "", types.ErrImageBuild{Dir: dir, Err: errors.New("engine did not report an image id")}
	}

	return imageID, nil
}

// TagImage applies tag to the image denoted by image (typically the id
// returned by BuildImage). If there is an error, it will be of type
// types.ErrImageTag.
func (c *Client) TagImage(ctx context.Context, image, tag string) error {
	if err := c.api.ImageTag(ctx, image, tag); err != nil {
		return types.ErrImageTag{Tag: tag, Err: err}
	}
	return nil
}

// PushImage pushes tag to its registry, using the credential record
// the client was constructed with. An empty record pushes
// unauthenticated. If there is an error, it will be of type
// types.ErrImagePush.
func (c *Client) PushImage(ctx context.Context, tag string) error {
	encoded, err := registry.EncodeAuthConfig(c.auth)
	if err != nil {
		return types.ErrImagePush{Tag: tag, Err: err}
	}

	resp, err := c.api.ImagePush(ctx, tag, dockertypes.ImagePushOptions{RegistryAuth: encoded})
	if err != nil {
		return types.ErrImagePush{Tag: tag, Err: err}
	}
	defer resp.Close()

	err = jsonmessage.DisplayJSONMessagesStream(resp, c.out, 0, false, nil)
	if err != nil {
		return types.ErrImagePush{Tag: tag, Err: err}
	}

	return nil
}

// Close releases the underlying engine connection.
func (c *Client) Close() error {
	return c.api.Close()
}
