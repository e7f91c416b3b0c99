// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - FileStore: File record persistence
//   - IntegrationStore: Integration persistence
//   - PlatformAdapter: Fetches normalised listings from a platform
//   - AdapterFactory: Creates platform adapters from an integration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Generates vector embeddings. When the configured
//     provider is unavailable, the deterministic fallback embedder stands in.
//   - StateCache: Short-lived state with a TTL contract (OAuth flows).
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or platform package
package driven
