package docstore

// Resolution is the outcome of identity resolution for one incoming record:
// either replace the existing record at Index, or append as new.
type Resolution struct {
	Index   int
	Replace bool
}

// Append is the resolution that appends the incoming record.
var Append = Resolution{Index: -1, Replace: false}

// ReplaceAt returns the resolution that replaces the record at index i.
func ReplaceAt(i int) Resolution {
	return Resolution{Index: i, Replace: true}
}

// ResolveFunc decides how an incoming record merges into the existing
// collection. Entity repositories differ only in this function, not in
// storage mechanics: accounts resolve by id, vehicle assets by id then by
// wizard slot, and so on.
type ResolveFunc[T any] func(incoming T, existing []T) Resolution

// ResolveByKey builds a ResolveFunc that replaces the first existing record
// whose key equals the incoming record's key, skipping incoming records
// whose key is the zero value.
func ResolveByKey[T any, K comparable](key func(T) K) ResolveFunc[T] {
	var zero K
	return func(incoming T, existing []T) Resolution {
		k := key(incoming)
		if k == zero {
			return Append
		}
		for i, rec := range existing {
			if key(rec) == k {
				return ReplaceAt(i)
			}
		}
		return Append
	}
}

// Apply merges incoming into records per the resolution and returns the
// updated slice. Each call operates against the progressively updated
// collection, so successive records in one batch can resolve to different
// existing slots.
func Apply[T any](records []T, incoming T, resolve ResolveFunc[T]) []T {
	res := resolve(incoming, records)
	if res.Replace && res.Index >= 0 && res.Index < len(records) {
		records[res.Index] = incoming
		return records
	}
	return append(records, incoming)
}
