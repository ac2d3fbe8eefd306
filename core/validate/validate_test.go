package validate

import (
	"testing"

	"github.com/mr-shifu/k1-lib/core/keyerr"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidators(t *testing.T) {
	cases := []struct {
		name     string
		check    func([]byte) error
		expected int
	}{
		{"raw private", RawPrivateKey, 32},
		{"x963 private", X963PrivateKey, 97},
		{"compressed", CompressedPublicKey, 33},
		{"uncompressed", UncompressedPublicKey, 65},
		{"raw public", RawPublicKey, 64},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.NoError(t, c.check(make([]byte, c.expected)))

			for _, n := range []int{0, c.expected - 1, c.expected + 1} {
				err := c.check(make([]byte, n))
				assert.ErrorIs(t, err, keyerr.ErrSize)

				var e *keyerr.Error
				assert.True(t, errors.As(err, &e))
				assert.Equal(t, c.expected, e.Expected)
				assert.Equal(t, n, e.Actual)
			}
		})
	}
}

func TestX963SizeNamesExpected(t *testing.T) {
	err := X963PrivateKey([]byte{0xde, 0xad, 0xbe, 0xef})
	assert.ErrorIs(t, err, keyerr.ErrSize)
	assert.Contains(t, err.Error(), "97")
}
