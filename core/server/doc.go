// Package server holds the HTTP server configuration.
//
// The serve command owns the server startup; this package only defines the
// settings it reads: the listen port, the API key protecting every route, and
// the request body limit.
package server
