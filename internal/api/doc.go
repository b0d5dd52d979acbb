// Package api contains the HTTP layer: the chi router, the handlers for
// every route, request decoding and validation, and the translation of
// service errors into status codes and safe response bodies.
package api
