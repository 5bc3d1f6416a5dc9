// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"lukechampine.com/flagg"

	"github.com/eyad6789/images-with-memory/internal/batch"
	"github.com/eyad6789/images-with-memory/internal/cli"
	"github.com/eyad6789/images-with-memory/internal/codec"
	"github.com/eyad6789/images-with-memory/internal/config"
	"github.com/eyad6789/images-with-memory/internal/crypto"
	"github.com/eyad6789/images-with-memory/internal/logger"
	"github.com/eyad6789/images-with-memory/internal/service"
	"github.com/eyad6789/images-with-memory/internal/store"
	"github.com/eyad6789/images-with-memory/internal/utils"
	"github.com/eyad6789/images-with-memory/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const rootUsage = `Usage: memoryink [command] [args]

Embed, extract and verify text notes in JPEG and PNG metadata.

Commands:
    memoryink embed -text "..." image.jpg
    memoryink extract image.jpg
    memoryink scan photos/
    memoryink verify image.jpg
    memoryink version
`

func main() {
	flagg.Root.Usage = flagg.SimpleUsage(flagg.Root, rootUsage)

	cmdEmbed := flagg.New("embed", `Usage:
    memoryink embed [options] image
      Embed a text note into the image metadata. The note comes from
      -text or -text-file; -password seals it before embedding.
`)
	embedOverrides := config.BindFlags(cmdEmbed)
	var embedOpts cli.EmbedOptions
	cmdEmbed.StringVar(&embedOpts.Text, "text", "", "Note text to embed")
	cmdEmbed.StringVar(&embedOpts.TextFile, "text-file", "", "File to read the note text from")
	cmdEmbed.StringVar(&embedOpts.Password, "password", "", "Encrypt the note with this password")
	cmdEmbed.StringVar(&embedOpts.OutPath, "out", "", "Write the annotated copy here instead of in place")
	cmdEmbed.BoolVar(&embedOpts.Force, "force", false, "Overwrite an existing destination file")
	embedJSON := cmdEmbed.Bool("json", false, "Render the result as JSON (shorthand for -format json)")

	cmdExtract := flagg.New("extract", `Usage:
    memoryink extract [options] image
      Print the note stored in the image. An encrypted note needs its
      -password; -out writes the note to a file instead of stdout.
`)
	extractOverrides := config.BindFlags(cmdExtract)
	var extractOpts cli.ExtractOptions
	cmdExtract.StringVar(&extractOpts.Password, "password", "", "Password for an encrypted note")
	cmdExtract.StringVar(&extractOpts.OutPath, "out", "", "Write the note to a file instead of stdout")
	cmdExtract.BoolVar(&extractOpts.Copy, "copy", false, "Copy the note to the system clipboard")
	extractJSON := cmdExtract.Bool("json", false, "Render the note as JSON (shorthand for -format json)")

	cmdScan := flagg.New("scan", `Usage:
    memoryink scan [options] [path ...]
      Scan image files and directories and report the notes they carry.
`)
	scanOverrides := config.BindFlags(cmdScan)
	var scanOpts cli.ScanOptions
	cmdScan.BoolVar(&scanOpts.Recursive, "recursive", false, "Descend into subdirectories")
	cmdScan.IntVar(&scanOverrides.Batch.Concurrency, "concurrency", 0, "Parallel workers (alias of -jobs)")
	scanContinue := cmdScan.Bool("continue-on-error", false, "Keep scanning after a file fails")
	scanJSON := cmdScan.Bool("json", false, "Render the report as JSON (shorthand for -format json)")

	cmdVerify := flagg.New("verify", `Usage:
    memoryink verify [options] [path ...]
      Check whether images carry a note without printing its content.
`)
	verifyOverrides := config.BindFlags(cmdVerify)
	var verifyOpts cli.VerifyOptions
	cmdVerify.BoolVar(&verifyOpts.Recursive, "recursive", false, "Descend into subdirectories")
	verifyJSON := cmdVerify.Bool("json", false, "Render the report as JSON (shorthand for -format json)")

	cmdVersion := flagg.New("version", `Usage:
    memoryink version
      Print build version, date and commit.
`)

	cmd := flagg.Parse(flagg.Tree{
		Cmd: flagg.Root,
		Sub: []flagg.Tree{
			{Cmd: cmdEmbed},
			{Cmd: cmdExtract},
			{Cmd: cmdScan},
			{Cmd: cmdVerify},
			{Cmd: cmdVersion},
		},
	})

	switch cmd {
	case flagg.Root:
		flagg.Root.Usage()
		os.Exit(cli.ExitUsage)
	case cmdVersion:
		fmt.Println(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
		return
	}

	var (
		overrides *config.Config
		jsonOut   bool
	)
	switch cmd {
	case cmdEmbed:
		overrides, jsonOut = embedOverrides, *embedJSON
	case cmdExtract:
		overrides, jsonOut = extractOverrides, *extractJSON
	case cmdScan:
		overrides, jsonOut = scanOverrides, *scanJSON
	case cmdVerify:
		overrides, jsonOut = verifyOverrides, *verifyJSON
	}

	if jsonOut {
		overrides.Output.Format = config.OutputJSON
	}
	if buildVersion != "" {
		overrides.App.Version = buildVersion
	}

	cfg, err := config.GetConfig(overrides)
	if err != nil {
		fail(err)
	}

	// -continue-on-error beats every FailFast source. A plain bool flag
	// cannot express "explicitly false" through the merge, so it lands
	// after it.
	if cmd == cmdScan && *scanContinue {
		cfg.Batch.FailFast = false
	}

	log := newLogger(cfg)

	uuids := utils.NewUUIDGenerator()
	files := store.NewImageFileStore(uuids, log)
	dispatcher := codec.NewDispatcher()
	cipher := crypto.NewNoteCipherService(cfg.Cipher.Iterations)
	notes := service.NewNoteService(files, dispatcher, cipher, cfg.App, log)
	runner := batch.NewRunner(notes, dispatcher, uuids, cfg.Batch, log)
	app := cli.NewApp(notes, runner, cfg, os.Stdout, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.WithContext(ctx)

	switch cmd {
	case cmdEmbed:
		if cmdEmbed.NArg() != 1 {
			cmdEmbed.Usage()
			os.Exit(cli.ExitUsage)
		}

		// -text "" is a legal way to blank a note, so its presence is
		// tracked separately from its value.
		cmdEmbed.Visit(func(f *flag.Flag) {
			if f.Name == "text" {
				embedOpts.TextSet = true
			}
		})

		embedOpts.Image = cmdEmbed.Arg(0)
		err = app.Embed(ctx, embedOpts)

	case cmdExtract:
		if cmdExtract.NArg() != 1 {
			cmdExtract.Usage()
			os.Exit(cli.ExitUsage)
		}

		extractOpts.Image = cmdExtract.Arg(0)
		err = app.Extract(ctx, extractOpts)

	case cmdScan:
		scanOpts.Paths = cmdScan.Args()
		err = app.Scan(ctx, scanOpts)

	case cmdVerify:
		verifyOpts.Paths = cmdVerify.Args()
		err = app.Verify(ctx, verifyOpts)
	}

	if err != nil {
		log.Debug().Err(err).Msg("command failed")
		fail(err)
	}
}

// newLogger builds the application logger from the merged configuration.
// Console output is the default; LOG_JSON switches to structured lines.
// An unknown LOG_LEVEL falls back to info rather than aborting the run.
func newLogger(cfg *config.Config) *logger.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.LogJSON {
		return logger.NewLogger("memoryink", level)
	}

	return logger.NewConsoleLogger("memoryink", level)
}

// fail prints a user-facing error line on stderr and exits with the code
// mapped to err.
func fail(err error) {
	fmt.Fprintln(os.Stderr, "memoryink: "+cli.UserMessage(err))
	os.Exit(cli.ExitCode(err))
}
