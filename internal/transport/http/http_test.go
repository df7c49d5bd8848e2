package httptransport

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestPublicBaseURLDefaultsToListenPort(t *testing.T) {
	t.Setenv("PRICING_PUBLIC_BASE_URL", "")
	viper.Set("server.http.public_base_url", "")
	viper.Set("server.http.port", "")
	defer viper.Set("server.http.port", "")

	assert.Equal(t, "http://localhost:3000", PublicBaseURL())

	viper.Set("server.http.port", "8080")
	assert.Equal(t, "http://localhost:8080", PublicBaseURL())
}

func TestPublicBaseURLFromConfig(t *testing.T) {
	t.Setenv("PRICING_PUBLIC_BASE_URL", "")
	viper.Set("server.http.public_base_url", "https://orders.example.com")
	defer viper.Set("server.http.public_base_url", "")

	assert.Equal(t, "https://orders.example.com", PublicBaseURL())
}

func TestPublicBaseURLEnvironmentOverridesConfig(t *testing.T) {
	t.Setenv("PRICING_PUBLIC_BASE_URL", "https://proxy.example.com/orders")
	viper.Set("server.http.public_base_url", "https://orders.example.com")
	defer viper.Set("server.http.public_base_url", "")

	assert.Equal(t, "https://proxy.example.com/orders", PublicBaseURL())
}
