package contract

import (
	"strconv"
	"sync"
	"testing"

	"github.com/nspcc-dev/evm-abi/pkg/abi"
	"github.com/stretchr/testify/require"
)

func TestSignatureCache(t *testing.T) {
	c := NewSignatureCache(abi.DefaultCoder, 2)

	f1, err := c.Get("transfer(address,uint256)")
	require.NoError(t, err)
	require.Equal(t, "transfer", f1.Name)
	require.Equal(t, 1, c.Len())

	again, err := c.Get("transfer(address,uint256)")
	require.NoError(t, err)
	require.Same(t, f1, again)

	_, err = c.Get("event Foo(uint8)")
	require.NoError(t, err)
	_, err = c.Get("bar()")
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	require.False(t, c.Contains("transfer(address,uint256)"))
	require.True(t, c.Contains("bar()"))

	_, err = c.Get("1bad()")
	require.ErrorIs(t, err, abi.ErrInvalidIdentifier)
	require.Equal(t, 2, c.Len())

	c.Purge()
	require.Equal(t, 0, c.Len())
}

func TestSignatureCacheDefaults(t *testing.T) {
	c := NewSignatureCache(abi.NewCoder(abi.Options{MaxDepth: 1}), 0)
	for i := 0; i < DefaultCacheSize+10; i++ {
		_, err := c.Get("f" + strconv.Itoa(i) + "()")
		require.NoError(t, err)
	}
	require.Equal(t, DefaultCacheSize, c.Len())

	_, err := c.Get("f(tuple(tuple(uint8)))")
	require.ErrorIs(t, err, abi.ErrTooDeep)
}

func TestSignatureCacheConcurrent(t *testing.T) {
	var (
		c  = NewSignatureCache(abi.DefaultCoder, 4)
		wg sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f, err := c.Get("f" + strconv.Itoa((i+j)%6) + "(uint8)")
				if err != nil || len(f.Inputs) != 1 {
					t.Errorf("unexpected result: %v", err)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
