package list

import "strings"

// ActivationKey commits a server-side search.
const ActivationKey = "enter"

// MatchKind selects how client-side search compares captions.
type MatchKind int

const (
	MatchContains MatchKind = iota
	MatchStartsWith
	MatchEndsWith
)

// ParseMatchKind maps "startsWith" and "endsWith" (any case, '-' or '_' allowed) to their
// kinds. Anything else is MatchContains.
func ParseMatchKind(s string) MatchKind {
	norm := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch norm {
	case "startswith", "prefix":
		return MatchStartsWith
	case "endswith", "suffix":
		return MatchEndsWith
	}
	return MatchContains
}

func (k MatchKind) String() string {
	switch k {
	case MatchStartsWith:
		return "startsWith"
	case MatchEndsWith:
		return "endsWith"
	default:
		return "contains"
	}
}

// Matches reports whether caption matches query, both case-folded.
func (k MatchKind) Matches(caption, query string) bool {
	c := strings.ToLower(caption)
	q := strings.ToLower(query)
	switch k {
	case MatchStartsWith:
		return strings.HasPrefix(c, q)
	case MatchEndsWith:
		return strings.HasSuffix(c, q)
	default:
		return strings.Contains(c, q)
	}
}

// SearchStrategy is either ServerSearch or ClientSearch, fixed when the controller is built.
type SearchStrategy interface {
	// ServerSide reports whether queries go to the fetcher.
	ServerSide() bool
	// search handles one input event and reports whether a reload from page 1 is needed.
	search(c *Controller, activation, value string) bool
}

// ServerSearch sends committed queries to the fetcher.
type ServerSearch struct{}

func (ServerSearch) ServerSide() bool { return true }

func (ServerSearch) search(c *Controller, activation, value string) bool {
	if activation != ActivationKey && value != "" {
		return false
	}
	if value == c.query && c.page == 1 {
		return false
	}
	c.query = value
	c.page = 1
	c.log.Debug().Str("query", value).Msg("search committed")
	return true
}

// ClientSearch filters the loaded collection in memory on every change.
type ClientSearch struct {
	Match MatchKind
}

func (ClientSearch) ServerSide() bool { return false }

func (s ClientSearch) search(c *Controller, _ string, value string) bool {
	c.filter = value
	keys := make([]string, 0, len(c.canonical))
	for _, it := range c.canonical {
		if s.Match.Matches(it.Caption, value) {
			keys = append(keys, it.Key)
		}
	}
	c.displayed = keys
	return false
}
