package elastic

// DefaultIndexName is the default Elasticsearch index for catalog documents.
const DefaultIndexName = "catalog_products"

// buildIndexMapping returns the JSON mapping for the catalog index. Documents
// mirror the flat projection: one per (product, channel, locale).
func buildIndexMapping() string {
	return `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0,
    "analysis": {
      "analyzer": {
        "catalog_analyzer": {
          "type": "custom",
          "tokenizer": "standard",
          "filter": ["lowercase", "asciifolding"]
        }
      }
    }
  },
  "mappings": {
    "properties": {
      "product_id":           { "type": "long" },
      "channel":              { "type": "keyword" },
      "locale":               { "type": "keyword" },
      "name":                 { "type": "text", "analyzer": "catalog_analyzer", "fields": { "keyword": { "type": "keyword", "ignore_above": 256 } } },
      "short_description":    { "type": "text", "analyzer": "catalog_analyzer" },
      "url_key":              { "type": "keyword" },
      "status":               { "type": "boolean" },
      "visible_individually": { "type": "boolean" },
      "min_price":            { "type": "double" },
      "created_at":           { "type": "date" }
    }
  }
}`
}
