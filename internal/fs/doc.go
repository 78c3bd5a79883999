// Package fs provides the filesystem abstraction behind blobstore.LocalStore.
//
//   - [FileSystem]: the operations the local blob store performs
//   - [LocalFS]: production implementation using the os package
//   - [FaultyFS]: test wrapper that injects write, sync and rename failures
//
// Tests inject [FaultyFS] to check that a failed write never replaces the
// previous blob:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tmp-", fs.Fault{FailAfterBytes: 16})
//	store := blobstore.NewLocalStoreFS(dir, ffs)
//
// Operations carry no context.Context; local syscalls cannot be interrupted.
package fs
