// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - TextExtractor: Converts one document format to plain text
//   - ExtractorRegistry: Selects a TextExtractor by filename extension
//   - ExclusionSource: Builds the TextFilter from the operator's exclusion list
//   - TextFilter: Removes excluded terms before ranking
//   - KeywordRanker: Scores candidate terms within one document
//   - KeywordPipeline: Normalises ranked terms into final keywords
//   - IDGenerator: Produces document identifiers
//   - ResultSink: Receives the finished run (JSON file, SQLite archive)
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - MetadataPatcher: Updates sibling metadata files. Without it, none are touched.
//   - ConfigStore: File-backed configuration. Without it, defaults and flags apply.
//   - RunArchive: Keeps past runs for the history commands and MCP resources.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
