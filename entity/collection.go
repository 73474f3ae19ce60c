package entity

import "strings"

// Collection identifies a hierarchical grouping of items by its ordered
// path segments. A collection has no stored representation of its own;
// it exists only as the shared key prefix of its items.
type Collection []string

func (c Collection) Name() string {
	return strings.Join(c, "/")
}

// Prefix is the storage key prefix all items of the collection share.
func (c Collection) Prefix() string {
	return c.Name() + "/"
}

// ItemKey is the deterministic storage key for (collection, id).
func (c Collection) ItemKey(id string) string {
	return c.Prefix() + id + ".json"
}
