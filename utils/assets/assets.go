package assets

import "github.com/muhammadheryan/marketplace/constant"

// Resolver rewrites stored image filenames into fully qualified URLs.
// It does not check that the asset exists.
type Resolver struct {
	domain string
}

func NewResolver(domain string) *Resolver {
	return &Resolver{domain: domain}
}

// URL prefixes the configured domain and the images segment onto a stored
// filename. An empty filename falls back to the no-photo sentinel.
func (r *Resolver) URL(filename string) string {
	if filename == "" {
		filename = constant.DefaultPhoto
	}
	return r.domain + "/images/" + filename
}
