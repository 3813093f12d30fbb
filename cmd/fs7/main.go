package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/retrofs/fs7/disk"
	"github.com/retrofs/fs7/dump"
	"github.com/retrofs/fs7/mkfs"
	"github.com/retrofs/fs7/proto"
)

func main() {
	app := cli.App{
		Name:  "fs7",
		Usage: "Build and inspect 18-bit word-addressed filesystem images",
		Commands: []*cli.Command{
			{
				Name:      "mkfs",
				Usage:     "Build an image from a proto listing",
				Action:    buildImage,
				ArgsUsage: "PROTO_FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "output layout: list, ptr or simh",
						Value:   "simh",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "image file to write",
						Value:   "image.fs",
					},
				},
			},
			{
				Name:      "dump",
				Usage:     "Print the contents of an existing two-surface image",
				Action:    dumpImage,
				ArgsUsage: "IMAGE_FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "csv",
						Usage: "print a CSV inventory of allocated inodes instead",
					},
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func buildImage(context *cli.Context) error {
	if context.NArg() != 1 {
		return cli.Exit("exactly one proto listing expected", 1)
	}
	protoPath := context.Args().Get(0)

	format, err := disk.ParseFormat(context.String("format"))
	if err != nil {
		return err
	}

	listing, err := os.Open(protoPath)
	if err != nil {
		return err
	}
	records, err := proto.Parse(listing)
	listing.Close()
	if err != nil {
		return err
	}

	// The whole surface is built in memory first; the output file only
	// comes into existence once construction has succeeded, so a failed
	// build never leaves a partial image behind.
	builder := mkfs.NewBuilder(filepath.Dir(protoPath))
	if err := builder.Run(records); err != nil {
		return err
	}

	outFile, err := os.Create(context.String("output"))
	if err != nil {
		return err
	}
	defer outFile.Close()
	return builder.Image().Emit(outFile, format)
}

func dumpImage(context *cli.Context) error {
	if context.NArg() != 1 {
		return cli.Exit("exactly one image file expected", 1)
	}

	imageFile, err := os.Open(context.Args().Get(0))
	if err != nil {
		return err
	}
	defer imageFile.Close()

	if context.Bool("csv") {
		return dump.Inventory(imageFile, os.Stdout)
	}
	return dump.Listing(imageFile, os.Stdout)
}
