package protection

import "github.com/lucas-clemente/quic-protection/internal/protocol"

// A CryptoContext combines the AEAD and the header protector of one
// encryption epoch and direction. Key updates are modeled by constructing a
// new context, never by mutating an existing one.
//
// Like the primitives it wraps, a context is not reentrant: calls on the same
// instance must be serialized, and returned slices are only valid until the
// next call.
type CryptoContext struct {
	aead   AEAD
	header HeaderProtector
	iv     []byte
}

// NewCryptoContext constructs both primitives for one epoch. The IV must be
// exactly 12 bytes; key and headerKey lengths must match the suite.
func NewCryptoContext(suite CipherSuite, key, iv, headerKey []byte) (*CryptoContext, error) {
	if len(iv) != protocol.NonceSize {
		return nil, ErrInvalidKeyLength
	}
	aead, err := NewAEAD(suite, key)
	if err != nil {
		return nil, err
	}
	header, err := NewHeaderProtector(suite, headerKey)
	if err != nil {
		return nil, err
	}
	return &CryptoContext{
		aead:   aead,
		header: header,
		iv:     append([]byte{}, iv...),
	}, nil
}

// EncryptPacket seals the payload with the header as associated data, then
// masks the header, and returns the full wire packet. The payload must be at
// least 4 - pnLen bytes, so that the sealed payload is long enough to sample;
// QUIC's padding rules guarantee this for well-formed packets.
func (c *CryptoContext) EncryptPacket(header, payload []byte) []byte {
	protected := c.aead.Seal(c.iv, payload, header)
	return c.header.Apply(header, protected)
}

// DecryptPacket unmasks the header of a received packet, then opens the
// payload using the recovered prefix as associated data. pnOffset is the
// offset of the packet number field, known from parsing the unprotected
// header fields. The returned header includes the recovered packet number
// bytes; reconstructing the full packet number is up to the caller.
func (c *CryptoContext) DecryptPacket(packet []byte, pnOffset int) (header, payload []byte, err error) {
	if len(packet) < pnOffset+protocol.MaxPacketNumberLen+protocol.SampleSize {
		return nil, nil, ErrPacketTooShort
	}
	header = c.header.Remove(packet, pnOffset)
	payload, err = c.aead.Open(c.iv, packet[len(header):], header)
	if err != nil {
		return nil, nil, err
	}
	return header, payload, nil
}

// Overhead returns the number of bytes sealing adds to a payload.
func (c *CryptoContext) Overhead() int {
	return c.aead.Overhead()
}
