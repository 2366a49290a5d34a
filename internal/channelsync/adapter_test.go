// internal/channelsync/adapter_test.go
package channelsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jiu-020812/orange-fanta-back/internal/models"
)

func TestRegistryFallsBackToGeneric(t *testing.T) {
	registry := NewRegistry(newNaverAdapter())

	assert.Equal(t, models.ProviderNaver, registry.For(models.ProviderNaver).Provider())

	// Unregistered providers get the generic adapter instead of a nil.
	fallback := registry.For(models.ProviderKream)
	require.NotNil(t, fallback)
	assert.Equal(t, models.ProviderEtc, fallback.Provider())
}

func TestDefaultRegistryCoversKnownProviders(t *testing.T) {
	registry := DefaultRegistry()
	for _, provider := range []models.ChannelProvider{
		models.ProviderNaver,
		models.ProviderCoupang,
		models.ProviderElevenst,
		models.ProviderKream,
	} {
		adapter := registry.For(provider)
		require.NotNil(t, adapter)
		assert.Equal(t, provider, adapter.Provider())

		result, err := adapter.UpdateStock(StockUpdate{TargetQty: 3})
		require.NoError(t, err)
		assert.True(t, result.OK)
	}
}
