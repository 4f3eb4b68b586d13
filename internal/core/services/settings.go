package services

import (
	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driven"
)

// Configuration keys understood by LoadSettings.
const (
	KeyRoot           = "root"
	KeyRecursive      = "recursive"
	KeyExclusions     = "exclusions"
	KeyOutput         = "output"
	KeyTopK           = "top_k"
	KeyWorkers        = "workers"
	KeyFilesPerSecond = "files_per_second"
	KeyPatchMetadata  = "patch_metadata"
	KeySQLite         = "sqlite"
	KeyVerbose        = "verbose"
	KeyMinGraphemes   = "keywords.min_graphemes"
	KeyYearLength     = "keywords.year_length"
)

// LoadSettings overlays values present in store onto domain.DefaultSettings.
// Keys that are absent keep their defaults.
func LoadSettings(store driven.ConfigStore) domain.Settings {
	s := domain.DefaultSettings()
	if store == nil {
		return s
	}

	has := func(key string) bool {
		_, ok := store.Get(key)
		return ok
	}

	if has(KeyRoot) {
		s.Root = store.GetString(KeyRoot)
	}
	if has(KeyRecursive) {
		s.Recursive = store.GetBool(KeyRecursive)
	}
	if has(KeyExclusions) {
		s.ExclusionsPath = store.GetString(KeyExclusions)
	}
	if has(KeyOutput) {
		s.OutputPath = store.GetString(KeyOutput)
	}
	if has(KeyTopK) {
		s.TopK = store.GetInt(KeyTopK)
	}
	if has(KeyWorkers) {
		s.Workers = store.GetInt(KeyWorkers)
	}
	if has(KeyFilesPerSecond) {
		s.FilesPerSecond = store.GetFloat(KeyFilesPerSecond)
	}
	if has(KeyPatchMetadata) {
		s.PatchMetadata = store.GetBool(KeyPatchMetadata)
	}
	if has(KeySQLite) {
		s.SQLitePath = store.GetString(KeySQLite)
	}
	if has(KeyVerbose) {
		s.Verbose = store.GetBool(KeyVerbose)
	}
	if has(KeyMinGraphemes) {
		s.MinGraphemes = store.GetInt(KeyMinGraphemes)
	}
	if has(KeyYearLength) {
		s.YearLength = store.GetInt(KeyYearLength)
	}
	return s
}

// SettingsValues returns s as dotted configuration keys, the inverse of LoadSettings.
func SettingsValues(s domain.Settings) map[string]any {
	return map[string]any{
		KeyRoot:           s.Root,
		KeyRecursive:      s.Recursive,
		KeyExclusions:     s.ExclusionsPath,
		KeyOutput:         s.OutputPath,
		KeyTopK:           s.TopK,
		KeyWorkers:        s.Workers,
		KeyFilesPerSecond: s.FilesPerSecond,
		KeyPatchMetadata:  s.PatchMetadata,
		KeySQLite:         s.SQLitePath,
		KeyVerbose:        s.Verbose,
		KeyMinGraphemes:   s.MinGraphemes,
		KeyYearLength:     s.YearLength,
	}
}
