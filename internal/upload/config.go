// filepath: internal/upload/config.go
package upload

import (
	"filekit/internal/config"
	"filekit/internal/filesystem"
)

// RulesFromConfig builds the rule set described by the [upload] section.
func RulesFromConfig(cfg *config.Config, opener Opener) []Rule {
	var rules []Rule
	if cfg.MaxFileSizeBytes > 0 {
		rules = append(rules, MaxSize(cfg.MaxFileSizeBytes))
	}
	if cfg.MinFileSizeBytes > 0 {
		rules = append(rules, MinSize(cfg.MinFileSizeBytes))
	}
	if len(cfg.Upload.AllowedExtensions) > 0 {
		rules = append(rules, Extensions(cfg.Upload.AllowedExtensions...))
	}
	if len(cfg.Upload.AllowedMimeTypes) > 0 {
		rules = append(rules, MimeTypes(opener, cfg.Upload.AllowedMimeTypes...))
	}
	u := cfg.Upload
	if u.MinWidth > 0 || u.MinHeight > 0 || u.MaxWidth > 0 || u.MaxHeight > 0 {
		rules = append(rules, ImageDimensions{
			Opener:    opener,
			MinWidth:  u.MinWidth,
			MinHeight: u.MinHeight,
			MaxWidth:  u.MaxWidth,
			MaxHeight: u.MaxHeight,
		})
	}
	return rules
}

// NameFuncFor returns the naming strategy for a config value; nil keeps
// original names.
func NameFuncFor(naming string, hashLength int) NameFunc {
	switch naming {
	case config.NamingHash:
		return RandomHash(hashLength)
	case config.NamingULID:
		return ULID()
	default:
		return nil
	}
}

// NewPipelineFromConfig wires a pipeline with the configured rules, file mode
// and rollback policy.
func NewPipelineFromConfig(cfg *config.Config, fs *filesystem.FileSystem) *Pipeline {
	return NewPipeline(fs, RulesFromConfig(cfg, fs),
		WithFileMode(cfg.FileMode),
		WithRollback(cfg.Upload.RollbackOnFailure),
	)
}
