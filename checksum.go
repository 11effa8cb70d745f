package pathkit

import (
	"context"
	"crypto/md5"  //nolint:gosec // MD5 used for checksum verification, not security
	"crypto/sha1" //nolint:gosec // SHA1 used for checksum verification, not security
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"hash/crc32"
	"io"

	"github.com/cespare/xxhash/v2"
)

// ChecksumAlgorithm represents a supported checksum algorithm
type ChecksumAlgorithm string

const (
	ChecksumMD5    ChecksumAlgorithm = "md5"
	ChecksumSHA1   ChecksumAlgorithm = "sha1"
	ChecksumSHA256 ChecksumAlgorithm = "sha256"
	ChecksumSHA512 ChecksumAlgorithm = "sha512"
	ChecksumCRC32  ChecksumAlgorithm = "crc32"
	// ChecksumXXHash is the xxHash algorithm (64-bit, extremely fast)
	ChecksumXXHash ChecksumAlgorithm = "xxhash"
)

// NewHasher creates a new hash.Hash for the given algorithm.
// Returns an error if the algorithm is not supported.
func NewHasher(algorithm ChecksumAlgorithm) (hash.Hash, error) {
	switch algorithm {
	case ChecksumMD5:
		return md5.New(), nil //nolint:gosec // MD5 used for checksum verification, not security
	case ChecksumSHA1:
		return sha1.New(), nil //nolint:gosec // SHA1 used for checksum verification, not security
	case ChecksumSHA256:
		return sha256.New(), nil
	case ChecksumSHA512:
		return sha512.New(), nil
	case ChecksumCRC32:
		return crc32.NewIEEE(), nil
	case ChecksumXXHash:
		return xxhash.New(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported checksum algorithm: %s", ErrNotSupported, algorithm)
	}
}

// CalculateChecksum reads from the reader and calculates the checksum using
// the specified algorithm. Returns the hex-encoded checksum string.
func CalculateChecksum(r io.Reader, algorithm ChecksumAlgorithm) (string, error) {
	h, err := NewHasher(algorithm)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("failed to calculate checksum: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// CalculateChecksums hashes r once for every algorithm in algorithms and
// returns the hex-encoded sums keyed by algorithm.
func CalculateChecksums(r io.Reader, algorithms []ChecksumAlgorithm) (map[ChecksumAlgorithm]string, error) {
	if len(algorithms) == 0 {
		return nil, fmt.Errorf("%w: no checksum algorithm given", ErrNotSupported)
	}

	hashers := make(map[ChecksumAlgorithm]hash.Hash, len(algorithms))
	var sinks []io.Writer
	for _, alg := range algorithms {
		if _, dup := hashers[alg]; dup {
			continue
		}
		h, err := NewHasher(alg)
		if err != nil {
			return nil, err
		}
		hashers[alg] = h
		sinks = append(sinks, h)
	}

	if _, err := io.Copy(io.MultiWriter(sinks...), r); err != nil {
		return nil, fmt.Errorf("failed to calculate checksums: %w", err)
	}

	sums := make(map[ChecksumAlgorithm]string, len(hashers))
	for alg, h := range hashers {
		sums[alg] = hex.EncodeToString(h.Sum(nil))
	}
	return sums, nil
}

// Checksum streams the content of p through algorithm. p must be an Opener.
func Checksum(ctx context.Context, p Path, algorithm ChecksumAlgorithm) (string, error) {
	sums, err := Checksums(ctx, p, algorithm)
	if err != nil {
		return "", err
	}
	return sums[algorithm], nil
}

// Checksums reads the content of p once and returns one sum per algorithm.
func Checksums(ctx context.Context, p Path, algorithms ...ChecksumAlgorithm) (map[ChecksumAlgorithm]string, error) {
	opener, ok := p.(Opener)
	if !ok || p.Supports(FeatureChildren) {
		return nil, NewPathError("checksum", p.Path(), ErrNotSupported)
	}

	rc, err := opener.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	sums, err := CalculateChecksums(rc, algorithms)
	if err != nil {
		return nil, WrapPathErr("checksum", p.Path(), err)
	}
	return sums, nil
}
