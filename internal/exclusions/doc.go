// Package exclusions removes operator-curated terms from document text
// before ranking.
//
// The exclusion list is a CSV file whose first column holds one term per row
// (the first row is a header). Every term, and the term with a trailing "s",
// is matched case-insensitively on word boundaries and deleted.
//
// Loading is forgiving: an unreadable list degrades to excluding nothing.
// Compiling is not: a term that breaks the shared pattern is a
// configuration error for the whole run.
package exclusions
