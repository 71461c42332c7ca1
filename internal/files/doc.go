// Package files groups the file access used by buildmeta.
//
// The filesystem sub-package abstracts the handful of operations a descriptor
// update needs (open, create, stat, remove, rename), with an OS implementation
// and an in-memory one that can inject failures for tests:
//
//	mfs := filesystem.NewMemoryFileSystem("/work")
//	mfs.AddFile("pom.xml", "<project/>")
//	mfs.FailOn(filesystem.OpRename, "/work/pom.xml", errors.New("disk full"))
package files
