package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mr-shifu/k1-lib/pkg/k1"
)

// readKey takes the key from the first argument or, without one, from
// stdin. Binary representations are hex encoded.
func readKey(cmd *cobra.Command, args []string, r k1.Representation) ([]byte, error) {
	var text string
	if len(args) > 0 {
		text = args[0]
	} else {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, errors.WithMessage(err, "reading stdin")
		}
		text = string(b)
	}

	if !r.Binary() {
		return []byte(text), nil
	}
	data, err := hex.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, errors.WithMessagef(err, "decoding %s input as hex", r)
	}
	return data, nil
}

// parsePrivateKey decodes a private key and wipes data, which the caller
// must not use afterwards.
func parsePrivateKey(f *k1.Factory, data []byte, r k1.Representation) (*k1.PrivateKey, error) {
	defer zero(data)
	return f.ParsePrivateKey(data, r)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func writeKey(cmd *cobra.Command, data []byte, r k1.Representation) {
	out := cmd.OutOrStdout()
	if !r.Binary() {
		fmt.Fprint(out, string(data))
		return
	}
	fmt.Fprintln(out, hex.EncodeToString(data))
}

func representationFlag(cmd *cobra.Command, name string) (k1.Representation, error) {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return 0, err
	}
	return k1.ParseRepresentation(v)
}
