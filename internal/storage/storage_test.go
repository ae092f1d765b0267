package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/config"
)

func TestOpen_Memory(t *testing.T) {
	set, closeFn, err := Open(context.Background(), &config.Config{StoreDriver: config.DriverMemory})
	require.NoError(t, err)
	defer closeFn()

	assert.NotNil(t, set.Users)
	assert.NotNil(t, set.Products)
	assert.NotNil(t, set.Carts)
	assert.NotNil(t, set.Orders)
	assert.NotNil(t, set.Contacts)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), &config.Config{StoreDriver: "cassandra"})
	assert.EqualError(t, err, `unknown STORE_DRIVER "cassandra"`)
}
