package curve

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidScalar(t *testing.T) {
	one := make([]byte, FieldByteCount)
	one[FieldByteCount-1] = 1
	assert.True(t, IsValidScalar(one))

	assert.False(t, IsValidScalar(make([]byte, FieldByteCount)), "zero is out of range")
	assert.False(t, IsValidScalar(OrderBytes()), "n is out of range")
	assert.False(t, IsValidScalar(bytes.Repeat([]byte{0xff}, FieldByteCount)))

	nMinusOne := OrderBytes()
	nMinusOne[FieldByteCount-1]--
	assert.True(t, IsValidScalar(nMinusOne))

	assert.False(t, IsValidScalar(one[1:]), "short input")
}

func TestByteCounts(t *testing.T) {
	assert.Equal(t, 33, CompressedByteCount)
	assert.Equal(t, 65, UncompressedByteCount)
	assert.Equal(t, 64, RawPublicByteCount)
	assert.Equal(t, 97, X963PrivateByteCount)
}

func TestIsValidScalarConcurrent(t *testing.T) {
	one := make([]byte, FieldByteCount)
	one[FieldByteCount-1] = 1

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 64; j++ {
				assert.True(t, IsValidScalar(one))
				assert.False(t, IsValidScalar(OrderBytes()))
			}
		}()
	}
	wg.Wait()
}

func TestOrderIsNotShared(t *testing.T) {
	assert.NotSame(t, Order(), Order())
	assert.Equal(t, OrderBytes(), Order().Bytes())
}
