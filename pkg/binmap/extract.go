package binmap

import "fmt"

// bitAt returns the bit at an absolute bit address. Bit 0 of each byte
// is its least-significant bit.
func bitAt(buf []byte, abs int) (byte, error) {
	byteIdx := abs / 8
	if byteIdx >= len(buf) {
		return 0, fmt.Errorf("%w: bit %d is in byte %d, buffer has %d bytes",
			ErrBufferTooShort, abs, byteIdx, len(buf))
	}
	return (buf[byteIdx] >> (abs % 8)) & 1, nil
}

// extractBits pulls length bits starting at bit address start out of
// buf, packing them least-significant-first into successive output
// bytes. The result is exactly ceil(length/8) bytes; a final partial
// byte has its unused high bits zero.
func extractBits(buf []byte, start, length int) ([]byte, error) {
	out := make([]byte, 0, (length+7)/8)

	var cur byte
	n := 0
	for addr := start; addr <= start+length-1; addr++ {
		bit, err := bitAt(buf, addr)
		if err != nil {
			return nil, err
		}
		cur |= bit << (n % 8)
		n++
		if n%8 == 0 {
			out = append(out, cur)
			cur = 0
		}
	}
	if n%8 != 0 {
		out = append(out, cur)
	}
	return out, nil
}
