// Package tensorio reads and writes sparse tensors.
//
// Two formats are supported:
//
//   - COO text: a small header followed by one line per stored entry.
//
//	order: 3
//	shape: 2, 3, 4
//	values:
//	0, 1, 2, 7.5
//	1, 2, 3, -1
//
//   - JSON snapshot: the shape, the store kind and every entry, encoded with a
//     codec.Codec (go-json by default).
//
// Either format may be wrapped in zstd or lz4 compression. Readers detect the
// format and compression from the content; writers take them from options or
// from the file extension (".coo", ".json", optionally followed by ".zst" or
// ".lz4").
//
// # Usage
//
//	t, err := tensorio.ReadFile("a.coo")
//	err = tensorio.WriteFile("a.json.zst", t)
//
//	store := blobstore.NewMemoryStore()
//	err = tensorio.Save(ctx, store, "a.coo", t)
//	t, err = tensorio.Load(ctx, store, "a.coo")
package tensorio
