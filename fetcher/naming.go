package fetcher

import (
	"fmt"
	"net/url"
	"strings"
)

// separatorReplacer flattens path separators out of candidate filenames.
var separatorReplacer = strings.NewReplacer("/", "_", "\\", "_")

// allocateName produces the local filename for u. taken reports whether a
// candidate is already owned and by which canonical URL; a candidate owned
// by u itself is a re-request, not a collision.
//
// Candidates derive from the URL path alone: the final segment first, then
// progressively longer segment chains (one ancestor directory per retry),
// separators replaced by underscores. The scheme and host never enter the
// name. Should the full path still collide, a numeric suffix disambiguates;
// the ancestor walk has no further level to climb at that point.
//
// The result is deterministic given u and the set of taken names.
func allocateName(u *url.URL, taken func(name string) (owner string, ok bool)) string {
	canonical := u.String()
	free := func(name string) bool {
		owner, ok := taken(name)
		return !ok || owner == canonical
	}

	segments := pathSegments(u)
	for i := len(segments) - 1; i >= 0; i-- {
		candidate := separatorReplacer.Replace(strings.Join(segments[i:], "/"))
		if free(candidate) {
			return candidate
		}
	}

	full := separatorReplacer.Replace(strings.Join(segments, "/"))
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s_%d", full, n)
		if free(candidate) {
			return candidate
		}
	}
}

// pathSegments returns the non-empty segments of u's path. URLs without a
// usable path fall back to the host, or a fixed stem for file URLs, so the
// candidate ladder is never empty.
func pathSegments(u *url.URL) []string {
	var segments []string
	for _, s := range strings.Split(strings.Trim(u.Path, "/"), "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 {
		if u.Host != "" {
			return []string{u.Host}
		}
		return []string{"schema"}
	}
	return segments
}
