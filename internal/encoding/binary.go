package encoding

import (
	"math"
)

// FromBytes8 turns a []byte into a uint8, only the last byte counts.
func FromBytes8(data []byte) uint8 {
	if len(data) == 0 {
		return 0
	}
	return data[len(data)-1]
}

// ToBytes8 turns uint8 into []byte of len 1 (eg. 8 bits)
func ToBytes8(in uint8) []byte {
	return []byte{in}
}

// Split16 uint16 to two uint8
func Split16(in uint16) (uint8, uint8) {
	return uint8(in >> 8), uint8(in)
}

// Merge8 two uint8 to uint16
func Merge8(a, b uint8) uint16 {
	return (uint16(a) << 8) + uint16(b)
}

// Quantize8 maps [0,1] to [0,255], values outside are clamped.
func Quantize8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * math.MaxUint8))
}

// Unquantize8 is the inverse of Quantize8 (to within 1/255).
func Unquantize8(in uint8) float64 {
	return float64(in) / math.MaxUint8
}
