package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mr-shifu/k1-lib/core/bridge"
	"github.com/mr-shifu/k1-lib/pkg/k1"
)

// app carries the state shared by subcommands after flag parsing.
type app struct {
	verbose bool
	log     *zap.Logger
	factory *k1.Factory
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	a.log = zap.NewNop()
	if a.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return errors.WithMessage(err, "creating logger")
		}
		a.log = l
	}
	a.factory = k1.NewFactory(&k1.Config{
		Bridge: bridge.New(bridge.WithLogger(a.log)),
		Logger: a.log,
	})
	return nil
}

func (a *app) teardown(cmd *cobra.Command, args []string) error {
	_ = a.log.Sync()
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:                "k1keys",
		Short:              "secp256k1 key tools",
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log engine activity to stderr")

	cmd.AddCommand(
		generateCmd(a),
		convertCmd(a),
		publicCmd(a),
	)

	return cmd
}
