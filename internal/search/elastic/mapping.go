package elastic

// DefaultIndexName is the default Elasticsearch index used for product documents.
const DefaultIndexName = "products"

// buildIndexMapping returns the JSON mapping for the products index. The
// document shape mirrors the product response shape: text fields for the
// ranked multi-field query, keywords for exact lookups.
func buildIndexMapping() string {
	return `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0
  },
  "mappings": {
    "properties": {
      "id":          { "type": "keyword" },
      "name":        { "type": "text", "fields": { "keyword": { "type": "keyword", "ignore_above": 256 } } },
      "description": { "type": "text" },
      "price":       { "type": "scaled_float", "scaling_factor": 100 },
      "category":    { "type": "text", "fields": { "keyword": { "type": "keyword" } } },
      "sku":         { "type": "keyword" },
      "created_at":  { "type": "date" },
      "updated_at":  { "type": "date" }
    }
  }
}`
}
