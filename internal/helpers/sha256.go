package helpers

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

func SHA256Bytes(input []byte) string {
	hash := sha256.Sum256(input)
	return hex.EncodeToString(hash[:])
}

func SHA256Reader(reader io.Reader) (string, error) {
	hash := sha256.New()
	_, err := io.Copy(hash, reader)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

// ShortSHA256 returns the first 8 hex characters of the content hash, used in
// source URLs and String() output.
func ShortSHA256(input []byte) string {
	return SHA256Bytes(input)[:8]
}
