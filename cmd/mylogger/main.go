// Command mylogger configures a logger the way a library caller would and
// emits one record, so operators can check LOG_LEVEL overrides and file
// sinks from a shell:
//
//	LOG_LEVEL=error mylogger --name billing --rotate --severity warning disk low
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/sivaosorg/mylogger"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "mylogger",
		Usage:     "Emit one record through a configured logger",
		ArgsUsage: "MESSAGE...",
		Description: `Builds a logger with a console sink on stderr and, with --rotate, a
time-rotated file sink, then logs MESSAGE at --severity.

The LOG_LEVEL environment variable overrides --level.`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Value: mylogger.DefaultName, Usage: "logger name"},
			&cli.BoolFlag{Name: "utc", Value: true, Usage: "render timestamps in UTC"},
			&cli.StringFlag{Name: "level", Value: "info", Usage: "minimum severity (LOG_LEVEL wins when set)"},
			&cli.StringFlag{Name: "severity", Value: "info", Usage: "severity of the emitted record"},
			&cli.BoolFlag{Name: "rotate", Usage: "also write to a time-rotated file"},
			&cli.StringFlag{Name: "file", Usage: "file sink path (default ./<name>.log)"},
			&cli.IntFlag{Name: "interval", Value: mylogger.DefaultInterval, Usage: "time units between rotations"},
			&cli.StringFlag{Name: "when", Value: string(mylogger.DefaultTimeUnit), Usage: "rotation unit: s, m, h, d, midnight, w0-w6"},
			&cli.IntFlag{Name: "backups", Value: mylogger.DefaultBackupCount, Usage: "rotated files to keep (0 keeps all)"},
			&cli.StringFlag{Name: "encoding", Value: mylogger.DefaultEncoding, Usage: "file sink text encoding"},
			&cli.StringFlag{Name: "file-level", Usage: "file sink minimum severity (default: logger level)"},
		},
		Action: emit,
	}
}

func emit(_ context.Context, cmd *cli.Command) error {
	msg := strings.Join(cmd.Args().Slice(), " ")
	if msg == "" {
		return errors.New("a message is required")
	}
	severity, err := mylogger.ParseLevel(cmd.String("severity"))
	if err != nil {
		return err
	}
	if severity == logrus.PanicLevel {
		return errors.New("severity panic is not supported")
	}

	log, err := mylogger.New(
		mylogger.WithName(cmd.String("name")),
		mylogger.WithUTC(cmd.Bool("utc")),
		mylogger.WithLevelName(cmd.String("level")),
		mylogger.WithOutput(cmd.Root().ErrWriter),
	)
	if err != nil {
		return err
	}
	defer log.Close()

	if cmd.Bool("rotate") {
		opts := []mylogger.SinkOption{
			mylogger.WithInterval(int(cmd.Int("interval"))),
			mylogger.WithTimeUnit(mylogger.TimeUnit(cmd.String("when"))),
			mylogger.WithBackupCount(int(cmd.Int("backups"))),
			mylogger.WithEncoding(cmd.String("encoding")),
		}
		if path := cmd.String("file"); path != "" {
			opts = append(opts, mylogger.WithFilePath(path))
		}
		if lvl := cmd.String("file-level"); lvl != "" {
			opts = append(opts, mylogger.WithSinkLevelName(lvl))
		}
		if err := log.AddTimedRotatingFileSink(opts...); err != nil {
			return err
		}
	}

	log.Log(severity, msg)
	return log.Close()
}
