// Package extractors provides the extension-keyed registry of TextExtractor
// implementations. Each sub-package knows how to extract text from one
// document format.
//
// Extractors are registered with the Registry at startup.
package extractors
