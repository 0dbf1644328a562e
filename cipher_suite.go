package protection

// A CipherSuite selects the AEAD algorithm and the header protection masking
// strategy. The values are the TLS 1.3 cipher suite IDs.
type CipherSuite uint16

const (
	// AES128GCM is TLS_AES_128_GCM_SHA256.
	AES128GCM CipherSuite = 0x1301
	// AES256GCM is TLS_AES_256_GCM_SHA384.
	AES256GCM CipherSuite = 0x1302
	// ChaCha20Poly1305 is TLS_CHACHA20_POLY1305_SHA256.
	ChaCha20Poly1305 CipherSuite = 0x1303
	// AES128CCM is TLS_AES_128_CCM_SHA256.
	AES128CCM CipherSuite = 0x1304
)

// KeyLen returns the suite's key length in bytes, for both the AEAD key and
// the header protection key. It returns 0 for unknown suites.
func (s CipherSuite) KeyLen() int {
	switch s {
	case AES128GCM, AES128CCM:
		return 16
	case AES256GCM, ChaCha20Poly1305:
		return 32
	}
	return 0
}

func (s CipherSuite) String() string {
	switch s {
	case AES128GCM:
		return "AES-128-GCM"
	case AES256GCM:
		return "AES-256-GCM"
	case ChaCha20Poly1305:
		return "ChaCha20-Poly1305"
	case AES128CCM:
		return "AES-128-CCM"
	}
	return "unknown cipher suite"
}

// checkKey validates the suite and the key length, in that order.
func (s CipherSuite) checkKey(key []byte) error {
	keyLen := s.KeyLen()
	if keyLen == 0 {
		return ErrUnsupportedCipherSuite
	}
	if len(key) != keyLen {
		return ErrInvalidKeyLength
	}
	return nil
}
