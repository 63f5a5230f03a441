package handler

import (
	"sort"
	"strings"
)

// Replier produces the text returned for a query.
type Replier interface {
	Reply(query string) (string, error)
}

// CannedReplier answers from a fixed table. The first key (in sorted order)
// contained in the lower-cased query wins; otherwise Default is returned.
type CannedReplier struct {
	Default string
	keys    []string
	replies map[string]string
}

func NewCannedReplier(defaultReply string, replies map[string]string) *CannedReplier {
	r := &CannedReplier{
		Default: defaultReply,
		replies: make(map[string]string, len(replies)),
	}
	for k, v := range replies {
		key := strings.ToLower(strings.TrimSpace(k))
		if key == "" {
			continue
		}
		r.replies[key] = v
		r.keys = append(r.keys, key)
	}
	sort.Strings(r.keys)
	return r
}

func (r *CannedReplier) Reply(query string) (string, error) {
	q := strings.ToLower(query)
	for _, k := range r.keys {
		if strings.Contains(q, k) {
			return r.replies[k], nil
		}
	}
	return r.Default, nil
}
