package protection

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"

	"golang.org/x/crypto/chacha20"

	"github.com/lucas-clemente/quic-protection/internal/protocol"
)

// A maskDeriver turns a 16 byte ciphertext sample into a 5 byte mask. The
// variant is fixed at construction: block cipher suites encrypt the sample as
// a single block, ChaCha20 runs a keystream seeded by the sample.
type maskDeriver interface {
	deriveMask(sample []byte) []byte
}

type blockCipherMasker struct {
	block cipher.Block
	mask  []byte
}

func (m *blockCipherMasker) deriveMask(sample []byte) []byte {
	if len(sample) != protocol.SampleSize {
		panic("invalid sample size")
	}
	m.block.Encrypt(m.mask, sample)
	return m.mask[:5]
}

type streamCipherMasker struct {
	key  [chacha20.KeySize]byte
	mask [5]byte
}

func (m *streamCipherMasker) deriveMask(sample []byte) []byte {
	if len(sample) != protocol.SampleSize {
		panic("invalid sample size")
	}
	for i := range m.mask {
		m.mask[i] = 0
	}
	// the sample doubles as the counter block: first 4 bytes counter
	// (little endian), remaining 12 bytes nonce
	c, err := chacha20.NewUnauthenticatedCipher(m.key[:], sample[4:])
	if err != nil {
		panic(err)
	}
	c.SetCounter(binary.LittleEndian.Uint32(sample[:4]))
	c.XORKeyStream(m.mask[:], m.mask[:])
	return m.mask[:]
}

type headerProtector struct {
	masker maskDeriver
	buf    []byte
}

var _ HeaderProtector = &headerProtector{}

// NewHeaderProtector constructs a HeaderProtector for the given cipher suite.
// The key length must match the suite.
func NewHeaderProtector(suite CipherSuite, key []byte) (HeaderProtector, error) {
	if err := suite.checkKey(key); err != nil {
		return nil, err
	}
	p := &headerProtector{buf: make([]byte, 0, protocol.MaxPacketSize)}
	switch suite {
	case AES128GCM, AES256GCM, AES128CCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		p.masker = &blockCipherMasker{
			block: block,
			mask:  make([]byte, block.BlockSize()),
		}
	case ChaCha20Poly1305:
		m := &streamCipherMasker{}
		copy(m.key[:], key)
		p.masker = m
	}
	return p, nil
}

func (p *headerProtector) Apply(header, payload []byte) []byte {
	pnLen := int(header[0]&0x03) + 1
	// the first 4 payload bytes are reserved for the packet number tail, so
	// the sample starts right after the pnLen bytes actually used
	sampleOffset := protocol.MaxPacketNumberLen - pnLen
	if len(payload) < sampleOffset+protocol.SampleSize {
		panic("payload too short to sample")
	}
	mask := p.masker.deriveMask(payload[sampleOffset : sampleOffset+protocol.SampleSize])

	p.buf = append(p.buf[:0], header...)
	p.buf = append(p.buf, payload...)
	maskFirstByte(mask[0], p.buf)
	pnOffset := len(header) - pnLen
	for i := 0; i < pnLen; i++ {
		p.buf[pnOffset+i] ^= mask[1+i]
	}
	return p.buf
}

func (p *headerProtector) Remove(packet []byte, pnOffset int) []byte {
	// the true packet number length is still protected, so the sample is
	// taken a fixed maximum field width past pnOffset
	sampleOffset := pnOffset + protocol.MaxPacketNumberLen
	mask := p.masker.deriveMask(packet[sampleOffset : sampleOffset+protocol.SampleSize])

	p.buf = append(p.buf[:0], packet[:pnOffset+protocol.MaxPacketNumberLen]...)
	// the packet number length is only readable once the first byte is unmasked
	maskFirstByte(mask[0], p.buf)
	pnLen := int(p.buf[0]&0x03) + 1
	for i := 0; i < pnLen; i++ {
		p.buf[pnOffset+i] ^= mask[1+i]
	}
	return p.buf[:pnOffset+pnLen]
}

// maskFirstByte XORs the protected bits of the first header byte: the low 4
// bits for the long header form, the low 5 bits for the short form.
func maskFirstByte(mask byte, packet []byte) {
	if packet[0]&0x80 != 0 {
		packet[0] ^= mask & 0x0f
	} else {
		packet[0] ^= mask & 0x1f
	}
}
