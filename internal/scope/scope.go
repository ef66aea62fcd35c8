package scope

import "sort"

// legal is the fixed set of OAuth scope names GitHub accepts on an
// authorization request. An empty scope list is also legal and grants
// public read-only access.
var legal = map[string]bool{
	"user":          true,
	"user:email":    true,
	"user:follow":   true,
	"public_repo":   true,
	"repo":          true,
	"repo:status":   true,
	"delete_repo":   true,
	"notifications": true,
	"gist":          true,
}

// IsLegal reports whether name is a known scope. Unknown names are not
// an error here; they simply return false.
func IsLegal(name string) bool {
	return legal[name]
}

// Legal returns all known scope names, sorted.
func Legal() []string {
	names := make([]string, 0, len(legal))
	for name := range legal {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
