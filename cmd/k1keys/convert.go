package main

import (
	"github.com/spf13/cobra"
)

func convertCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [key]",
		Short: "Convert a key between representations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := representationFlag(cmd, "from")
			if err != nil {
				return err
			}
			to, err := representationFlag(cmd, "to")
			if err != nil {
				return err
			}
			public, _ := cmd.Flags().GetBool("public")

			data, err := readKey(cmd, args, from)
			if err != nil {
				return err
			}

			var out []byte
			if public {
				pub, err := a.factory.ParsePublicKey(data, from)
				if err != nil {
					return err
				}
				out, err = pub.Encode(to)
				if err != nil {
					return err
				}
			} else {
				key, err := parsePrivateKey(a.factory, data, from)
				if err != nil {
					return err
				}
				defer key.Zero()
				out, err = key.Encode(to)
				if err != nil {
					return err
				}
				defer zero(out)
			}

			writeKey(cmd, out, to)
			return nil
		},
	}
	cmd.Flags().String("from", "pem", "input format")
	cmd.Flags().String("to", "der", "output format")
	cmd.Flags().Bool("public", false, "treat the input as a public key")
	return cmd
}
