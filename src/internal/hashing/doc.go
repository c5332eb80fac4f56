// Package hashing provides SHA-256 checksum helpers.
//
// It is used to identify the downloaded prefix document and to fingerprint
// the address list written to the IP group, so consecutive runs can be
// compared in logs and in the status API.
//
// # Components
//
//   - ChecksumReader: hashes data as it is read from an io.Reader
//   - Fingerprint: order-independent digest of a set of network prefixes
//
// # Example Usage
//
//	reader := hashing.NewChecksumReader(resp.Body)
//	body, err := io.ReadAll(reader)
//	log.Infof("document sha256=%s", reader.Checksum())
package hashing
