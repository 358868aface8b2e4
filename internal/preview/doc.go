// Package preview serves a generated site over HTTP for local viewing.
//
// The server is a thin collaborator: it serves the files under the site
// directory as they are, exposes /health, and optionally /metrics for the
// generator's Prometheus registry. It refuses to start until index.html
// exists.
package preview
