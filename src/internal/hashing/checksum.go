package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"sort"

	"github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/utils"
)

// ChecksumReader hashes everything read through it.
type ChecksumReader struct {
	reader io.Reader
	hash   hash.Hash
}

func NewChecksumReader(reader io.Reader) *ChecksumReader {
	return &ChecksumReader{
		reader: reader,
		hash:   sha256.New(),
	}
}

func (r *ChecksumReader) Read(buf []byte) (int, error) {
	n, err := r.reader.Read(buf)
	if n > 0 {
		// hash.Hash.Write never returns an error
		_, _ = r.hash.Write(buf[:n])
	}
	return n, err
}

// Checksum returns the hex digest of the bytes read so far.
func (r *ChecksumReader) Checksum() string {
	return hex.EncodeToString(r.hash.Sum(nil))
}

// Fingerprint returns a digest of prefixes that ignores order, duplicates and
// notation differences ("192.0.2.1" and "192.0.2.1/32" are the same network).
// Unparseable values are hashed as given.
func Fingerprint(prefixes []string) string {
	seen := make(map[string]struct{}, len(prefixes))
	keys := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		key := p
		if prefix, err := utils.ParseNetworkPrefix(p); err == nil {
			key = prefix.String()
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	h := sha256.New()
	for _, k := range keys {
		_, _ = io.WriteString(h, k)
		_, _ = io.WriteString(h, "\n")
	}
	return hex.EncodeToString(h.Sum(nil))
}
