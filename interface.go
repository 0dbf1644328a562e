// Package protection implements QUIC packet protection: the AEAD transform
// that seals and opens packet payloads, and the header protection masking of
// the first header byte and the packet number field.
//
// The TLS handshake and the key schedule live outside this package. Callers
// construct one AEAD and one HeaderProtector per encryption epoch and
// direction from already-derived keys, and discard them when the epoch
// retires.
package protection

import "errors"

var (
	// ErrUnsupportedCipherSuite is returned by the constructors for a cipher
	// suite this package does not implement.
	ErrUnsupportedCipherSuite = errors.New("unsupported cipher suite")
	// ErrInvalidKeyLength is returned by the constructors when the key (or IV)
	// length doesn't match the cipher suite.
	ErrInvalidKeyLength = errors.New("invalid key length")
	// ErrDecryptionFailed is returned by Open when authentication fails.
	// The offending packet must be dropped; receiving such a packet is not
	// by itself a connection error.
	ErrDecryptionFailed = errors.New("decryption failed")
	// ErrPacketTooShort is returned by DecryptPacket for packets too short to
	// contain a header protection sample.
	ErrPacketTooShort = errors.New("packet too short to sample")
)

// An AEAD seals and opens QUIC packet payloads.
//
// The iv argument is the epoch's static AEAD IV, not the nonce: the nonce is
// derived on every call by folding the packet number bytes at the tail of the
// associated data (the wire header) into the IV. The first byte of the
// associated data carries the packet number length in its low 2 bits.
//
// Implementations reuse internal buffers. Calls on the same instance must be
// serialized, and the returned slice is only valid until the next call.
type AEAD interface {
	// Seal encrypts the plaintext and appends the 16 byte authentication tag.
	Seal(iv, plaintext, associatedData []byte) []byte
	// Open decrypts data (ciphertext followed by the tag). It returns
	// ErrDecryptionFailed, and no plaintext, if authentication fails.
	Open(iv, data, associatedData []byte) ([]byte, error)
	// Overhead returns the length difference between ciphertext and plaintext.
	Overhead() int
}

// A HeaderProtector applies and removes QUIC header protection.
//
// Implementations reuse internal buffers. Calls on the same instance must be
// serialized, and the returned slice is only valid until the next call.
type HeaderProtector interface {
	// Apply masks the header of a packet whose payload has already been
	// sealed, and returns the concatenation of the masked header and the
	// payload. The payload must be long enough to sample: at least
	// 4 - pnLen + 16 bytes.
	Apply(header, payload []byte) []byte
	// Remove unmasks the header of a received packet. pnOffset is the offset
	// of the packet number field. It returns the unprotected packet prefix,
	// up to and including the packet number bytes.
	Remove(packet []byte, pnOffset int) []byte
}
