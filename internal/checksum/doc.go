// Package checksum provides content hashing.
//
// The replacer uses it to verify that a backup copy is byte-for-byte equal
// to the original before the original is touched.
//
// # Example Usage
//
//	calculator := checksum.New()
//	sum := calculator.CalculateRaw(content)
//	streamed, err := calculator.CalculateReader(file)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
