package protection

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/pion/dtls/v2/pkg/crypto/ccm"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/lucas-clemente/quic-protection/internal/protocol"
)

type aead struct {
	// independent cipher states for the two directions, bound to the same key
	sealer cipher.AEAD
	opener cipher.AEAD

	// reused across calls to avoid per-packet allocations
	nonceBuf [protocol.NonceSize]byte
	buf      []byte
}

var _ AEAD = &aead{}

// NewAEAD constructs an AEAD for the given cipher suite. The key length must
// match the suite.
func NewAEAD(suite CipherSuite, key []byte) (AEAD, error) {
	if err := suite.checkKey(key); err != nil {
		return nil, err
	}
	sealer, err := newAEADCipher(suite, key)
	if err != nil {
		return nil, err
	}
	opener, err := newAEADCipher(suite, key)
	if err != nil {
		return nil, err
	}
	return &aead{
		sealer: sealer,
		opener: opener,
		buf:    make([]byte, 0, protocol.MaxPacketSize),
	}, nil
}

// newAEADCipher is called twice per instance, so that sealing and opening
// never share a cipher state.
func newAEADCipher(suite CipherSuite, key []byte) (cipher.AEAD, error) {
	switch suite {
	case AES128GCM, AES256GCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		return cipher.NewGCM(block)
	case AES128CCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		c, err := ccm.NewCCM(block, protocol.TagSize, protocol.NonceSize)
		if err != nil {
			return nil, err
		}
		return c, nil
	case ChaCha20Poly1305:
		return chacha20poly1305.New(key)
	}
	return nil, ErrUnsupportedCipherSuite
}

func (a *aead) Seal(iv, plaintext, associatedData []byte) []byte {
	deriveNonce(&a.nonceBuf, iv, associatedData)
	return a.sealer.Seal(a.buf[:0], a.nonceBuf[:], plaintext, associatedData)
}

func (a *aead) Open(iv, data, associatedData []byte) ([]byte, error) {
	if len(data) < protocol.TagSize {
		return nil, ErrDecryptionFailed
	}
	deriveNonce(&a.nonceBuf, iv, associatedData)
	dec, err := a.opener.Open(a.buf[:0], a.nonceBuf[:], data, associatedData)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return dec, nil
}

func (a *aead) Overhead() int {
	return a.sealer.Overhead()
}

// deriveNonce recomputes the per-packet nonce: the static IV with the
// truncated packet number bytes at the tail of the associated data XORed into
// its trailing bytes. The low 2 bits of the first associated data byte give
// the packet number length.
func deriveNonce(nonce *[protocol.NonceSize]byte, iv, associatedData []byte) {
	if len(iv) < protocol.NonceSize {
		panic(fmt.Sprintf("invalid IV size: %d", len(iv)))
	}
	copy(nonce[:], iv[:protocol.NonceSize])
	pnLen := int(associatedData[0]&0x03) + 1
	for i := 1; i <= pnLen; i++ {
		nonce[protocol.NonceSize-i] ^= associatedData[len(associatedData)-i]
	}
}
