package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Keyer derives cache keys.
type Keyer interface {
	// ThumbKey identifies path scaled to height pixels.
	ThumbKey(path string, height int) (string, error)
}

// DefaultKeyer keys thumbnails by path, file size, modification time and
// height, so editing a photo invalidates its entries.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ThumbKey implements Keyer. It fails if path cannot be stat'ed.
func (DefaultKeyer) ThumbKey(path string, height int) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	return hashKey("thumb", path, info.Size(), info.ModTime().UTC().Format(time.RFC3339Nano), height), nil
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
