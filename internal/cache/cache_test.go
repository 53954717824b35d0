package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyDistinguishesOptions(t *testing.T) {
	type opts struct {
		Page   int
		Search string
	}
	a := Key("companies", opts{Page: 1})
	b := Key("companies", opts{Page: 2})
	c := Key("companies", opts{Page: 1, Search: "acme"})
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, a, Key("companies", opts{Page: 1}))

	// Same options under a different tag must not collide.
	assert.NotEqual(t, a, Key("employees", opts{Page: 1}))
}

func TestFetchWithoutRedisCallsLoader(t *testing.T) {
	c := New(nil, time.Minute, nil)
	calls := 0
	var got []string
	err := c.Fetch(context.Background(), "companies:1", &got, func() (interface{}, error) {
		calls++
		return []string{"acme"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"acme"}, got)

	// No backing store, so the loader runs every time.
	err = c.Fetch(context.Background(), "companies:1", &got, func() (interface{}, error) {
		calls++
		return []string{"acme"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestFetchPropagatesLoaderError(t *testing.T) {
	c := New(nil, time.Minute, nil)
	var got []string
	err := c.Fetch(context.Background(), "k", &got, func() (interface{}, error) {
		return nil, errors.New("db down")
	})
	assert.EqualError(t, err, "db down")
}

func TestInvalidateWithoutRedisIsNoop(t *testing.T) {
	c := New(nil, time.Minute, nil)
	assert.NotPanics(t, func() { c.Invalidate("companies") })
}
