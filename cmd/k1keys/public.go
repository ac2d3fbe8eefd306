package main

import (
	"github.com/spf13/cobra"
)

func publicCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "public [key]",
		Short: "Print the public key of a private key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := representationFlag(cmd, "in")
			if err != nil {
				return err
			}
			format, err := representationFlag(cmd, "format")
			if err != nil {
				return err
			}

			data, err := readKey(cmd, args, in)
			if err != nil {
				return err
			}
			key, err := parsePrivateKey(a.factory, data, in)
			if err != nil {
				return err
			}
			defer key.Zero()

			out, err := key.PublicKey().Encode(format)
			if err != nil {
				return err
			}
			writeKey(cmd, out, format)
			return nil
		},
	}
	cmd.Flags().String("in", "pem", "private key input format")
	cmd.Flags().StringP("format", "f", "compressed", "public key output format")
	return cmd
}
