// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// Services receive their dependencies through constructor injection and apply
// transactional boundaries when operations span multiple repositories. They
// translate store-level errors to service-level ones so the API layer can
// map them to HTTP status codes without knowing about the storage backend.
package service
