package pick

import "image/color"

// MaxID is the largest object identifier the codec can round-trip.
// Identifiers are packed into the 24 bits of an 8-bit-per-channel RGB
// triple; values above MaxID cannot be represented and must be rejected
// by whatever assigns identifiers (typically scene object registration).
const MaxID uint32 = 0xFFFFFF

// EncodeID maps an object identifier to its identity-buffer color.
// The 24-bit identifier is packed directly: R holds bits 16-23, G bits
// 8-15, B bits 0-7. Alpha is always 0xFF.
//
// Contract: DecodeID(EncodeID(id)) == id for all id in [0, MaxID].
// Behavior for larger identifiers is undefined; the codec does not check.
func EncodeID(id uint32) color.NRGBA {
	return color.NRGBA{
		R: uint8(id >> 16 & 0xFF),
		G: uint8(id >> 8 & 0xFF),
		B: uint8(id & 0xFF),
		A: 0xFF,
	}
}

// DecodeID recovers the object identifier from an identity-buffer color.
// Only the RGB channels participate; alpha is ignored (it is used during
// the identity pass for transparency masking, not for identity).
func DecodeID(c color.NRGBA) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Codec encodes object identifiers as identity-buffer colors, optionally
// overriding every encoding with a single fixed debug color.
//
// The debug override exists for visual verification of the identity pass
// (every pickable object renders in one obvious color). It is a
// construction-time configuration, never mutable global state, and it
// must not be enabled on a codec whose output feeds Decode: the override
// deliberately destroys the bijection.
type Codec struct {
	debug      bool
	debugColor color.NRGBA
}

// Encode returns the identity color for id, or the fixed debug color if
// the debug override is active.
func (c Codec) Encode(id uint32) color.NRGBA {
	if c.debug {
		return c.debugColor
	}
	return EncodeID(id)
}

// Decode recovers the identifier from an identity color. Decode is not
// affected by the debug override.
func (c Codec) Decode(col color.NRGBA) uint32 {
	return DecodeID(col)
}

// DebugOverride reports whether the debug encode override is active.
func (c Codec) DebugOverride() bool {
	return c.debug
}
