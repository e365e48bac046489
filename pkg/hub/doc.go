// Package hub provides the content interaction and authorization core of the
// Frontend Hub publishing site: blogs with likes and comments, documentation
// pages, and per-user roadmap resources, with pluggable repository backends.
//
// It exposes a single Service interface that orchestrates creation, lookup,
// ownership-gated mutation, like toggling, and comment lifecycle management.
// Repository implementations (memory, Postgres) live under subpackages, as do
// cover-image stores (memory, S3 presigned URLs).
//
// Identity
//
// Callers attach the external identity subject to the context with
// WithIdentity; every mutation resolves that subject to a locally provisioned
// User row before any ownership comparison. The service never validates
// credentials itself; verification belongs to the HTTP middleware and the
// identity provider behind it.
package hub
