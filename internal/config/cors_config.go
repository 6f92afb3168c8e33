package config

import (
	"sort"
	"strings"
)

// Cors lists the origins allowed to call the API. A single "*" allows any.
type Cors struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

type AllowedOrigins map[string]struct{}
type nullValue = struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	if _, ok := a["*"]; ok {
		return true
	}
	_, ok := a[origin]
	return ok
}

func (a AllowedOrigins) String() string {
	var origins []string
	for k := range a {
		origins = append(origins, k)
	}
	sort.Strings(origins)
	return strings.Join(origins, ", ")
}

// GetAllowedOrigins normalises the configured list. Entries may themselves be
// comma separated, which is how CORS_ORIGIN arrives from the environment.
func (c Cors) GetAllowedOrigins() AllowedOrigins {
	origins := AllowedOrigins{}
	for _, entry := range c.AllowedOrigins {
		for _, o := range strings.Split(entry, ",") {
			o = strings.TrimRight(strings.TrimSpace(o), "/")
			if o != "" {
				origins[o] = nullValue{}
			}
		}
	}
	return origins
}

func (Cors) GetAllowedMethods() string {
	return "GET, POST, PUT, PATCH, DELETE, OPTIONS"
}

func (Cors) GetAllowedHeaders() string {
	return "Content-Type, Authorization"
}
