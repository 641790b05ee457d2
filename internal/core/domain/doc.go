// Package domain contains the core business entities for LeadScope.
//
// The domain layer has no dependencies on adapters or external services.
// It defines the document/chunk data model, the retrieval and scoring
// result types, application settings, and the sentinel errors shared by
// all layers.
package domain
