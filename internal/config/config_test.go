package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8020, cfg.HTTPPort)
	assert.Equal(t, "name-desc", cfg.DefaultSort)
	assert.Equal(t, []int{12, 24, 48}, cfg.PageSizes)
	assert.False(t, cfg.SnapshotReads)
	assert.Equal(t, "USD", cfg.BaseCurrency)
	assert.Equal(t, "elasticsearch", cfg.SearchEngine)
	assert.Equal(t, "http://localhost:9200", cfg.ElasticsearchURL)
	assert.Equal(t, "catalog_products", cfg.ElasticsearchIndex)
	assert.Equal(t, "catalog-index-sync", cfg.KafkaConsumerGroup)
	assert.Equal(t, "default", cfg.DefaultChannel)
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.Equal(t, int64(1), cfg.DefaultCustomerGroup)
	assert.Equal(t, "USD", cfg.DefaultCurrency)
}

func TestLoad_StoreDefaultsFromEnv(t *testing.T) {
	t.Setenv("CATALOG_DEFAULT_CHANNEL", "b2b")
	t.Setenv("CATALOG_DEFAULT_LOCALE", "fr")
	t.Setenv("CATALOG_DEFAULT_CUSTOMER_GROUP", "4")
	t.Setenv("CATALOG_DEFAULT_CURRENCY", "EUR")

	cfg, err := Load()

	require.NoError(t, err)
	scope := cfg.StoreDefaults()
	assert.Equal(t, "b2b", scope.Channel)
	assert.Equal(t, "fr", scope.Locale)
	assert.Equal(t, int64(4), scope.CustomerGroupID)
	assert.Equal(t, "EUR", scope.Currency)
}

func TestLoad_InvalidDefaultCustomerGroup(t *testing.T) {
	t.Setenv("CATALOG_DEFAULT_CUSTOMER_GROUP", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid default customer group")
}

func TestLoad_InvalidHTTPPort(t *testing.T) {
	t.Setenv("CATALOG_HTTP_PORT", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoad_InvalidSearchEngine(t *testing.T) {
	t.Setenv("SEARCH_ENGINE", "solr")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid search engine")
}

func TestLoad_InvalidPageSize(t *testing.T) {
	t.Setenv("CATALOG_PAGE_SIZES", "12,0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid page size")
}

func TestLoad_DatabaseEngine(t *testing.T) {
	t.Setenv("SEARCH_ENGINE", "database")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, EngineDatabase, cfg.SearchEngine)
}

func TestRates_ParsesPairs(t *testing.T) {
	cfg := &Config{CurrencyRates: []string{"EUR:0.92", "gbp:0.79"}}

	rates, err := cfg.Rates()

	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"EUR": 0.92, "GBP": 0.79}, rates)
}

func TestRates_RejectsMalformedPair(t *testing.T) {
	cfg := &Config{CurrencyRates: []string{"EUR=0.92"}}

	_, err := cfg.Rates()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expected CODE:rate")
}

func TestRates_RejectsNonPositiveRate(t *testing.T) {
	cfg := &Config{CurrencyRates: []string{"EUR:-1"}}

	_, err := cfg.Rates()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "positive number")
}
