// Package filesystem provides the file operations used to rewrite a
// descriptor in place.
//
// Key interface:
//   - FileSystem: open, create, stat, remove and rename of single files
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing, with fault
//     injection for every operation
package filesystem
