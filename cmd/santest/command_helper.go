package main

import (
	"context"
	"log/slog"

	"github.com/reglet-dev/santest/internal/infrastructure/container"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CommandContext provides common command dependencies.
type CommandContext struct {
	Container *container.Container
	Logger    *slog.Logger
	Context   context.Context
}

// CommandHandler is a function that executes with initialized dependencies.
type CommandHandler func(*CommandContext, *cobra.Command, []string) error

// containerOptions are overridden in tests to inject a runner or streams.
var containerOptions = func(opts container.Options) container.Options { return opts }

// withContainer wraps a command handler with container initialization:
// config loading, logger creation and dependency injection.
func withContainer(handler CommandHandler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger := slog.Default()

		c, err := container.New(containerOptions(container.Options{
			ConfigPath: cfgFile,
			HostOS:     viper.GetString("host_os"),
			Channel:    viper.GetString("toolchain.channel"),
			Logger:     logger,
		}))
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		return handler(&CommandContext{
			Container: c,
			Logger:    logger,
			Context:   ctx,
		}, cmd, args)
	}
}

// passthroughArgs returns the arguments that follow "--" on the command
// line; they are forwarded to cargo verbatim.
func passthroughArgs(cmd *cobra.Command, args []string) []string {
	if at := cmd.ArgsLenAtDash(); at >= 0 {
		return args[at:]
	}
	return nil
}

// argsBeforeDash validates the positional arguments preceding "--".
func argsBeforeDash(inner cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if at := cmd.ArgsLenAtDash(); at >= 0 {
			args = args[:at]
		}
		return inner(cmd, args)
	}
}
