package protocol

// MaxPacketSize is the largest packet, in bytes, that the protection layer
// handles. Scratch buffers are sized to it.
const MaxPacketSize = 1500

// NonceSize is the AEAD nonce length. All QUIC cipher suites use 12 bytes.
const NonceSize = 12

// TagSize is the AEAD authentication tag length for all QUIC cipher suites.
const TagSize = 16

// SampleSize is the number of ciphertext bytes sampled to derive the header
// protection mask.
const SampleSize = 16

// MaxPacketNumberLen is the largest encoded packet number length. The header
// protection sample is always taken this many bytes past the start of the
// packet number field.
const MaxPacketNumberLen = 4
