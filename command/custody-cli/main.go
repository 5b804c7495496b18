// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/custodyd/command/custody-cli/configuration"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	save    bool
	testing bool
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "custody-cli"
	app.Usage = "manage a local custody collection"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: " configuration `FILE` [$XDG_CONFIG_HOME/custody-cli/custody-cli.json]",
		},
		cli.StringFlag{
			Name:  "identity, i",
			Value: "",
			Usage: " identity `NAME` [default identity]",
		},
		cli.StringFlag{
			Name:  "password, p",
			Value: "",
			Usage: " identity `PASSWORD`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate key pair, will not store in config file",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runGenerate,
		},
		{
			Name:      "setup",
			Usage:     "initialise custody-cli configuration",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "database, b",
					Value: "",
					Usage: "*database `FILE` for custody records",
				},
				cli.StringFlag{
					Name:  "policy, P",
					Value: "",
					Usage: " authorization policy [token|address]",
				},
				cli.BoolFlag{
					Name:  "testing, t",
					Usage: " use testing addresses",
				},
				cli.StringFlag{
					Name:  "privateKey, k",
					Value: "",
					Usage: " using existing private key `HEX`",
				},
			},
			Action: runSetup,
		},
		{
			Name:      "add",
			Usage:     "add a new identity to config file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "privateKey, k",
					Value: "",
					Usage: " using existing private key `HEX`",
				},
			},
			Action: runAdd,
		},
		{
			Name:      "deposit",
			Usage:     "place an asset into custody",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "id, I",
					Value: 0,
					Usage: "*asset id `NUMBER`",
				},
				cli.StringFlag{
					Name:  "name, a",
					Value: "",
					Usage: "*asset name `STRING`",
				},
				cli.StringFlag{
					Name:  "metadata, m",
					Value: "",
					Usage: " asset description `STRING`",
				},
				cli.StringFlag{
					Name:  "thumbnail, T",
					Value: "",
					Usage: " asset thumbnail `URL`",
				},
				cli.BoolFlag{
					Name:  "seizable, s",
					Usage: " place under a lender claim and print the capability",
				},
				cli.StringFlag{
					Name:  "lender, l",
					Value: "",
					Usage: " lender `ACCOUNT` (required by the address policy)",
				},
			},
			Action: runDeposit,
		},
		{
			Name:   "owned",
			Usage:  "list assets in custody",
			Action: runOwned,
		},
		{
			Name:      "withdraw",
			Usage:     "remove an unconstrained asset from custody",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "id, I",
					Value: 0,
					Usage: "*asset id `NUMBER`",
				},
			},
			Action: runWithdraw,
		},
		{
			Name:      "seize",
			Usage:     "redeem a capability and take the asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "id, I",
					Value: 0,
					Usage: "*asset id `NUMBER`",
				},
				cli.StringFlag{
					Name:  "capability, C",
					Value: "",
					Usage: " capability `TOKEN` (required by the token policy)",
				},
			},
			Action: runSeize,
		},
		{
			Name:      "release",
			Usage:     "release a claim, asset becomes withdrawable",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "id, I",
					Value: 0,
					Usage: "*asset id `NUMBER`",
				},
				cli.StringFlag{
					Name:  "capability, C",
					Value: "",
					Usage: " capability `TOKEN` (required by the token policy)",
				},
			},
			Action: runRelease,
		},
		{
			Name:      "verify",
			Usage:     "decode a capability and show its binding",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "capability, C",
					Value: "",
					Usage: "*capability `TOKEN`",
				},
			},
			Action: runVerify,
		},
		{
			Name:   "checkuse",
			Usage:  "show whether the collection is usable",
			Action: runCheckUse,
		},
		{
			Name:   "destroy",
			Usage:  "tear down the collection, refused while claims exist",
			Action: runDestroy,
		},
		{
			Name:   "info",
			Usage:  "display custody-cli status",
			Action: runInfo,
		},
		{
			Name:      "account",
			Usage:     "display account from a public key",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "publickey, k",
					Value: "",
					Usage: "*hex public `KEY`",
				},
				cli.BoolFlag{
					Name:  "testing, t",
					Usage: " decode as a testing address",
				},
			},
			Action: runAccount,
		},
		{
			Name:   "password",
			Usage:  "change default identity's password",
			Action: runChangePassword,
		},
		{
			Name:  "version",
			Usage: "display custody-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file for certain commands
		command := c.Args().Get(0)
		switch command {
		case "version", "generate", "account":
			return nil
		}

		file := c.GlobalString("config")
		if "" == file {
			p := os.Getenv("XDG_CONFIG_HOME")
			if "" == p {
				return fmt.Errorf("XDG_CONFIG_HOME environment is not set")
			}
			dir, err := checkFileExists(p)
			if nil != err {
				return err
			}
			if !dir {
				return fmt.Errorf("not a directory: %q", p)
			}
			file = path.Join(p, app.Name, app.Name+".json")
		}

		if verbose {
			fmt.Fprintf(e, "file: %q\n", file)
		}

		if "setup" == command {
			// do not run setup if there is an existing configuration
			if _, err := checkFileExists(file); nil == err {
				return fmt.Errorf("not overwriting existing configuration: %q", file)
			}

			c.App.Metadata["config"] = &metadata{
				file:    file,
				save:    false,
				verbose: verbose,
				e:       e,
				w:       w,
			}

		} else {

			if verbose {
				fmt.Fprintf(e, "reading config file: %s\n", file)
			}

			conf, err := configuration.GetConfiguration(file)
			if nil != err {
				return err
			}

			c.App.Metadata["config"] = &metadata{
				file:    file,
				config:  conf,
				testing: conf.Testing,
				save:    false,
				verbose: verbose,
				e:       e,
				w:       w,
			}
		}

		return nil
	}

	// update the configuration if required
	app.After = func(c *cli.Context) error {
		e := c.App.ErrWriter
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		if m.save {
			if c.GlobalBool("verbose") {
				fmt.Fprintf(e, "updating config file: %s\n", m.file)
			}
			err := configuration.Save(m.file, m.config)
			if nil != err {
				return err
			}
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
