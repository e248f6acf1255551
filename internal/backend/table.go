package backend

import "strings"

// Service identifies one of the platform backends.
type Service string

const (
	ServiceAuth     Service = "auth"
	ServiceUser     Service = "user"
	ServicePlatform Service = "platform"
)

// Route sends every path starting with Prefix to Service.
type Route struct {
	Prefix  string
	Service Service
}

// Table is an ordered routing table. Routes are checked in order and the
// first matching prefix wins; unmatched paths go to Default.
type Table struct {
	Routes  []Route
	Default Service
}

// DefaultTable routes auth and school paths explicitly. Everything else,
// including /api/admin/, is assumed to belong to the platform service.
func DefaultTable() Table {
	return Table{
		Routes: []Route{
			{Prefix: "/api/auth/", Service: ServiceAuth},
			{Prefix: "/api/school/", Service: ServiceUser},
		},
		Default: ServicePlatform,
	}
}

// Resolve returns the backend responsible for path.
func (t Table) Resolve(path string) Service {
	for _, route := range t.Routes {
		if strings.HasPrefix(path, route.Prefix) {
			return route.Service
		}
	}
	return t.Default
}
