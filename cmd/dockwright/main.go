// Copyright 2024-present the dockwright authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/dockwright/dockwright/pkg/dockerconfig"
	"github.com/dockwright/dockwright/pkg/engine"
	"github.com/dockwright/dockwright/pkg/pipeline"
	"github.com/dockwright/dockwright/pkg/source"
	"github.com/dockwright/dockwright/pkg/types"
	"github.com/dockwright/dockwright/pkg/utils"
)

// Version contains the release version of dockwright, adhering to SemVer.
const Version = "0.1.0"

// VersionSuffix is populated at build-time with -ldflags and typically
// contains the Git SHA1 of the tip that the binary is build from. It is then
// appended to Version.
var VersionSuffix string

func main() {
	app := cli.NewApp()
	app.Name = "dockwright"
	app.Usage = "Build container images and push them to a registry"
	app.HideVersion = false
	app.Version = Version
	if VersionSuffix != "" {
		app.Version = Version + "-" + VersionSuffix[:7]
	}
	app.Commands = []cli.Command{
		{
			Name:  "build",
			Usage: "Build the image described by a workspace's Dockerfile, then tag and push it",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "workspace, w",
					Value: ".",
					Usage: "Root of the source tree to build from",
				},
				cli.StringFlag{
					Name:  "dockerfile-dir, d",
					Usage: "Search for the Dockerfile only inside `DIR`",
				},
				cli.StringSliceFlag{
					Name:  "tag, t",
					Usage: "Tag to apply and push. Can be given multiple times",
				},
				cli.StringFlag{
					Name:  "git, g",
					Usage: "Clone `URL` into a temporary workspace instead of using --workspace",
				},
			},
			Action: runBuild,
		},
		{
			Name:  "config",
			Usage: "Print the effective engine client configuration",
			Action: func(c *cli.Context) error {
				cfg, err := dockerconfig.ResolveDefault()
				if err != nil {
					return err
				}
				fmt.Println(cfg)
				return nil
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runBuild(c *cli.Context) error {
	ctx := context.Background()
	logger := log.New(os.Stderr, "[build] ", log.LstdFlags)

	cfg, err := dockerconfig.ResolveDefault()
	if err != nil {
		return err
	}

	client, err := engine.NewClient(cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer client.Close()

	workspace := c.String("workspace")
	if gitURL := c.String("git"); gitURL != "" {
		var cleanup func()
		workspace, cleanup, err = source.Checkout(ctx, gitURL, os.Stdout)
		if err != nil {
			return err
		}
		defer cleanup()
	} else if err := utils.PathIsDir(workspace); err != nil {
		return err
	}

	// a relative recipe dir is anchored at the workspace root
	recipeDir := c.String("dockerfile-dir")
	if recipeDir != "" && !filepath.IsAbs(recipeDir) {
		recipeDir = filepath.Join(workspace, recipeDir)
	}

	cmd := pipeline.BuildCommand{Engine: client, Log: logger}
	res := cmd.Execute(ctx, &types.BuildInfo{
		Workspace: workspace,
		RecipeDir: recipeDir,
		Tags:      c.StringSlice("tag"),
	})
	if !res.Succeeded() {
		return errors.New(res.Message)
	}

	logger.Print("done")
	return nil
}
