package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func generateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a private key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := representationFlag(cmd, "format")
			if err != nil {
				return err
			}

			key, err := a.factory.GeneratePrivateKey()
			if err != nil {
				return err
			}
			defer key.Zero()

			out, err := key.Encode(format)
			if err != nil {
				return err
			}
			a.log.Debug("generated key", zap.Stringer("public", key.PublicKey()))
			writeKey(cmd, out, format)
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "pem", "output format: raw, x963, der or pem")
	return cmd
}
