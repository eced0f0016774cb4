package parse

import "strings"

// VersionedRef is a reference to another element, optionally qualified by the
// version of the referenced element.
type VersionedRef struct {
	Version string
	Ref     string
}

// NewVersionedRef builds a reference from raw attribute values. The version
// may come from either a version or versionRef attribute; an empty ref means
// the reference is absent and nil is returned.
func NewVersionedRef(ref, version, versionRef string) *VersionedRef {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}

	if version == "" {
		version = versionRef
	}

	return &VersionedRef{
		Version: version,
		Ref:     ref,
	}
}

// SplitScheme splits a prefixed reference like "atco:3290YYA00077" into its
// scheme and code. References without a prefix come back with an empty
// scheme.
func SplitScheme(ref string) (scheme string, code string) {
	parts := strings.SplitN(ref, ":", 2)
	if len(parts) != 2 {
		return "", ref
	}

	return parts[0], parts[1]
}
