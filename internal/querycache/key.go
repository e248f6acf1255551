package querycache

import (
	"net/url"
	"strings"
)

// PlatformTenant scopes entities that belong to no school.
const PlatformTenant = "platform"

// Key identifies one cached read. Entity and Tenant form the invalidation
// prefix; Scope separates the results of different callers; Filters
// are the query parameters of the read.
type Key struct {
	Entity  string
	Tenant  string
	Scope   string
	Filters url.Values
}

// String renders q:<entity>:<tenant>:<scope>:<filters>. Filters are encoded
// in sorted key order so equal filter sets produce equal keys.
func (k Key) String() string {
	var b strings.Builder
	b.WriteString(Prefix(k.Entity, k.Tenant))
	b.WriteString(segment(k.Scope))
	b.WriteByte(':')
	b.WriteString(k.Filters.Encode())
	return b.String()
}

// Prefix is shared by every key of one (entity, tenant) pair.
func Prefix(entity, tenant string) string {
	return "q:" + segment(entity) + ":" + segment(tenant) + ":"
}

// With returns a copy of the key with one more filter.
func (k Key) With(name, value string) Key {
	filters := url.Values{}
	for key, values := range k.Filters {
		filters[key] = append([]string(nil), values...)
	}
	filters.Set(name, value)
	k.Filters = filters
	return k
}

// segment escapes a key part so it cannot contain ':' or glob characters.
func segment(s string) string {
	return strings.ReplaceAll(url.PathEscape(s), ":", "%3A")
}
