package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/peterbourgon/ff/v3/ffcli"
)

var ErrEmptyPassword = errors.New("❌ Пароль не может быть пустым!")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err := realMain(
		ctx,
		os.Stdin,
		os.Stdout,
		os.Stderr,
		os.Args,
	)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func realMain(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	args []string,
) error {
	exec := args[0]

	fs := flag.NewFlagSet(exec, flag.ContinueOnError)
	fs.SetOutput(stderr)
	flagUser := fs.String("user", defaultDSN.User, "user name in the sample DSN")
	flagHost := fs.String("host", defaultDSN.Host, "host in the sample DSN")
	flagPort := fs.Int("port", defaultDSN.Port, "port in the sample DSN")
	flagDatabase := fs.String("db", defaultDSN.Database, "database in the sample DSN")
	flagQuiet := fs.Bool("q", false, "print the encoded password only")
	flagTable := fs.Bool("table", false, "render changed characters as a table")
	flagHidden := fs.Bool("hidden", false, "do not echo the password when prompting on a terminal")
	flagDecode := fs.Bool("d", false, "decode a percent-encoded password instead")
	flagForceColor := fs.Bool("fc", false, "force color output")

	rootCmd := &ffcli.Command{
		Name:       exec,
		ShortUsage: fmt.Sprintf("%v [flags] [--] [<password>]", exec),
		ShortHelp:  "Percent-encode a password for a PostgreSQL DSN",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			colors := newPalette(*flagForceColor)
			plain := *flagQuiet || *flagDecode

			pr := passwordReader{
				stdin:  stdin,
				prompt: stdout,
				hidden: *flagHidden,
			}
			if plain {
				// Keep stdout down to the single result line.
				pr.prompt = stderr
			} else {
				printBanner(stdout, colors)
			}

			password, err := pr.read(ctx, args)
			if err != nil {
				return err
			}

			if password == "" {
				return ErrEmptyPassword
			}

			if *flagDecode {
				decoded, err := Decode(password)
				if err != nil {
					return err
				}
				fmt.Fprintln(stdout, decoded)
				return nil
			}

			if *flagQuiet {
				fmt.Fprintln(stdout, Encode(password))
				return nil
			}

			warnNotNFC(stderr, password)

			dsn := DSN{
				User:     *flagUser,
				Host:     *flagHost,
				Port:     *flagPort,
				Database: *flagDatabase,
			}

			return newReport(password, dsn, *flagTable, colors).render(stdout)
		},
	}

	return rootCmd.ParseAndRun(ctx, args[1:])
}
