package keyopts

import (
	"github.com/pkg/errors"

	com_keyopts "github.com/mr-shifu/k1-lib/pkg/common/keyopts"
)

var ErrInvalidOptions = errors.New("keyopts: invalid options")

type Options map[string]interface{}

var _ com_keyopts.Options = Options{}

func NewOptions() Options {
	return make(Options)
}

// Set adds key/value pairs. Keys must be strings.
func (opts Options) Set(kVs ...interface{}) (com_keyopts.Options, error) {
	if len(kVs)%2 != 0 {
		return nil, ErrInvalidOptions
	}

	for i := 0; i < len(kVs); i += 2 {
		key, ok := kVs[i].(string)
		if !ok {
			return nil, errors.WithMessagef(ErrInvalidOptions, "key %v is not a string", kVs[i])
		}
		opts[key] = kVs[i+1]
	}

	return opts, nil
}

func (opts Options) Get(key string) (interface{}, bool) {
	val, ok := opts[key]
	return val, ok
}

// stringOpt returns a non-empty string option or errBad.
func stringOpt(opts com_keyopts.Options, key string, errBad error) (string, error) {
	if opts == nil {
		return "", errBad
	}
	v, ok := opts.Get(key)
	if !ok {
		return "", errBad
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", errBad
	}
	return s, nil
}
