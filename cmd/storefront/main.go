// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Command storefront is a terminal client for the store API.

It wires the token store, API client, session, cart, profile and preference
controllers over the configured persistence driver. Notifications are
rendered as toasts on stderr; data goes to stdout.

Usage:

	storefront [global flags] <command> [flags] [args]

Run `storefront help` for the command list.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/text/message"

	"github.com/taibuivan/shopfront/internal/platform/config"
	"github.com/taibuivan/shopfront/internal/platform/constants"
	"github.com/taibuivan/shopfront/internal/platform/logging"
	"github.com/taibuivan/shopfront/internal/storage"
	"github.com/taibuivan/shopfront/internal/storefront/api"
	"github.com/taibuivan/shopfront/internal/storefront/cart"
	"github.com/taibuivan/shopfront/internal/storefront/i18n"
	"github.com/taibuivan/shopfront/internal/storefront/prefs"
	"github.com/taibuivan/shopfront/internal/storefront/profile"
	"github.com/taibuivan/shopfront/internal/storefront/session"
	"github.com/taibuivan/shopfront/internal/storefront/toast"
	"github.com/taibuivan/shopfront/internal/storefront/token"
	"github.com/taibuivan/shopfront/pkg/convert"
)

// errUsage marks a command line the user has to fix.
var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is main without the process exit.
func run(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("storefront", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	flags.SetOutput(stderr)

	apiURL := flags.String("api", "", "store API base URL (overrides STORE_API_BASE_URL)")
	locale := flags.String("locale", "", "display language for this run, e.g. en or bn")
	verbose := flags.BoolP("verbose", "v", false, "write logs to stderr")
	flags.Usage = func() { printUsage(stderr, flags) }

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if flags.NArg() == 0 || flags.Arg(0) == "help" {
		printUsage(stdout, flags)
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if *apiURL != "" {
		cfg.APIBaseURL = *apiURL
	}
	if *locale != "" {
		cfg.Locale = *locale
	}

	// Logs never share stderr with toasts unless asked for.
	logOptions := logging.FromConfig("shopfront-cli", cfg)
	logOptions.Fallback = io.Discard
	if *verbose {
		logOptions.Fallback = stderr
	}
	logger, closeLog := logging.New(logOptions)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, closeApp, err := newApp(ctx, cfg, stdout, stderr, logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer closeApp()

	if err := app.dispatch(ctx, flags.Arg(0), flags.Args()[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, err)
			return 2
		}
		logger.Debug("command_failed", slog.String("command", flags.Arg(0)), slog.Any("error", err))
		return 1
	}
	return 0
}

// # Wiring

// app holds every controller of one run.
type app struct {
	cfg     *config.Config
	stdout  io.Writer
	stderr  io.Writer
	logger  *slog.Logger
	client  *api.Client
	session *session.Controller
	cart    *cart.Controller
	profile *profile.Controller
	prefs   *prefs.Preferences
	toasts  *toast.Queue
	printer *message.Printer
}

func newApp(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer, logger *slog.Logger) (*app, func(), error) {
	store, closeStore, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	tokens := token.NewStore(store, logger)
	client := api.New(api.Options{
		BaseURL:   cfg.APIBaseURL,
		Timeout:   cfg.APITimeout,
		UserAgent: constants.AppName + "-cli/" + constants.AppVersion,
	}, tokens, logger)

	sessionController := session.NewController(client, tokens, store, logger)
	client.OnUnauthorized(sessionController.Invalidate)
	preferences := prefs.New(store, logger)

	toasts := toast.NewQueue(toast.Options{
		Clock:       toast.SystemClock(),
		Limit:       cfg.ToastLimit,
		RemoveDelay: cfg.ToastRemoveDelay,
	}, logger)
	unsubscribe := toasts.Subscribe(newRenderer(stderr).render)

	a := &app{
		cfg:     cfg,
		stdout:  stdout,
		stderr:  stderr,
		logger:  logger,
		client:  client,
		session: sessionController,
		cart:    cart.NewController(ctx, store, logger),
		profile: profile.NewController(client, sessionController, logger),
		prefs:   preferences,
		toasts:  toasts,
	}
	a.setPrinter(ctx)

	closeApp := func() {
		unsubscribe()
		toasts.Close()
		if err := closeStore(); err != nil {
			logger.Warn("storage_close_failed", slog.Any("error", err))
		}
	}
	return a, closeApp, nil
}

// setPrinter picks the display language: LOCALE or --locale, then the
// stored preference, then the environment.
func (a *app) setPrinter(ctx context.Context) {
	var fallback []string
	if a.cfg.Locale != "" {
		a.printer = i18n.Printer(a.prefs.Negotiate(a.cfg.Locale))
		return
	}
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if value := posixLocale(os.Getenv(name)); value != "" {
			fallback = append(fallback, value)
		}
	}
	a.printer = i18n.Printer(a.prefs.Locale(ctx, fallback...))
}

// posixLocale turns "bn_BD.UTF-8" into "bn-BD". "C" and "POSIX" yield "".
func posixLocale(value string) string {
	value, _, _ = strings.Cut(value, ".")
	value, _, _ = strings.Cut(value, "@")
	if value == "" || value == "C" || value == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(value, "_", "-")
}

// terminalDark reads a COLORFGBG value such as "15;0" or "15;default;0". The
// last field is the background's ANSI color; 0-6 and 8 are dark.
func terminalDark(value string) bool {
	fields := strings.Split(value, ";")
	background := convert.ToIntD(fields[len(fields)-1], -1)
	return (background >= 0 && background <= 6) || background == 8
}

func printUsage(out io.Writer, flags *pflag.FlagSet) {
	fmt.Fprintf(out, "Usage: storefront [global flags] <command> [flags] [args]\n\nCommands:\n")
	for _, cmd := range commandList() {
		fmt.Fprintf(out, "  %-34s %s\n", cmd.usage, cmd.summary)
	}
	fmt.Fprintf(out, "\nGlobal flags:\n%s", flags.FlagUsages())
}
