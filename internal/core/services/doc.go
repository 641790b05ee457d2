// Package services implements the application use cases: chunking,
// index building, retrieval, and lead scoring.
package services
