package common

// WipeByteArray overwrites buf with zeros. It is used to clear passwords read
// from the terminal once they have been sent.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
