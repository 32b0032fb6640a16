package badger

import "fmt"

// Key prefixes for different data types
const (
	embeddingPrefix = "featemb"
)

// makeEmbeddingKey generates a key for a feature's embedding bundle.
func makeEmbeddingKey(featureID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", embeddingPrefix, featureID))
}

// embeddingKeyPrefix returns the scan prefix for embedding bundle keys.
func embeddingKeyPrefix() []byte {
	return []byte(embeddingPrefix + ":")
}
