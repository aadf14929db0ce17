package relation

import "encoding/binary"

// Key encoding tags. INT sorts before STR, matching Value.Compare.
const (
	keyTagInt byte = 0x01
	keyTagStr byte = 0x02
)

// EncodeKey encodes a value as an order-preserving byte key:
// bytes.Compare(EncodeKey(a), EncodeKey(b)) == a.Compare(b).
func EncodeKey(v Value) []byte {
	switch v.Type {
	case TypeInt:
		key := make([]byte, 9)
		key[0] = keyTagInt
		// XOR with sign bit to make negative numbers sort correctly
		u := uint64(v.Int) ^ (1 << 63)
		binary.BigEndian.PutUint64(key[1:], u)
		return key
	case TypeStr:
		key := make([]byte, 1+len(v.Str))
		key[0] = keyTagStr
		copy(key[1:], v.Str)
		return key
	default:
		return nil
	}
}

// Fingerprint reduces a tuple to a string that is equal for two tuples
// exactly when the tuples are structurally equal. Each value's encoding is
// length-prefixed so variable-length components cannot collide across
// positions.
func Fingerprint(t Tuple) string {
	var buf []byte
	for _, v := range t {
		k := EncodeKey(v)
		lenBytes := make([]byte, 4)
		binary.BigEndian.PutUint32(lenBytes, uint32(len(k)))
		buf = append(buf, lenBytes...)
		buf = append(buf, k...)
	}
	return string(buf)
}
