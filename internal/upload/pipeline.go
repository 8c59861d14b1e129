// filepath: internal/upload/pipeline.go
package upload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"filekit/internal/filesystem"
	"filekit/internal/logging"
)

// Pipeline validates a whole batch before any file reaches its destination,
// then moves the staged files into place in request order.
type Pipeline struct {
	fs       *filesystem.FileSystem
	rules    []Rule
	mode     *os.FileMode
	rollback bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithFileMode applies mode to every persisted file.
func WithFileMode(mode *os.FileMode) Option {
	return func(p *Pipeline) { p.mode = mode }
}

// WithRollback deletes already persisted files when a later entry of the
// same batch fails to persist.
func WithRollback(enabled bool) Option {
	return func(p *Pipeline) { p.rollback = enabled }
}

// NewPipeline creates a pipeline that checks every entry against rules.
func NewPipeline(fs *filesystem.FileSystem, rules []Rule, opts ...Option) *Pipeline {
	p := &Pipeline{fs: fs, rules: rules}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type plannedFile struct {
	file File
	name string
	path string
}

// HandleUploadedFiles runs the batch through validation and persistence.
//
// A rejected entry fails the whole batch with an *InvalidUploadError before
// anything is moved. If persisting fails part way, the returned Result lists
// the entries that remain on disk (none when rollback is enabled).
func (p *Pipeline) HandleUploadedFiles(ctx context.Context, req Request) (*Result, error) {
	if err := p.validate(ctx, req.Files); err != nil {
		return nil, err
	}

	planned, err := p.plan(req)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Names: make([]string, 0, len(planned)),
		Paths: make([]string, 0, len(planned)),
	}
	for _, entry := range planned {
		if _, err := p.fs.PrepareDirectoryForFile(entry.path); err != nil {
			return p.abort(result, entry, err)
		}
		dest, err := p.fs.MoveFile(entry.file.TempPath, entry.path, p.mode)
		if err != nil {
			if dest == "" || !errors.Is(err, filesystem.ErrFileMode) {
				return p.abort(result, entry, err)
			}
			logging.Log.Warnf("Upload: persisted %s but could not set its mode: %v", dest, err)
		}
		logging.Log.Debugf("Upload: persisted %q as %s", entry.file.Name, dest)
		result.Names = append(result.Names, entry.name)
		result.Paths = append(result.Paths, dest)
	}

	logging.Log.Infof("Upload: persisted %d file(s) to %s", len(result.Names), req.Directory)
	return result, nil
}

// validate runs every rule on every entry and stops at the first rejection.
func (p *Pipeline) validate(ctx context.Context, files []File) error {
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, rule := range p.rules {
			outcome, err := rule.Validate(ctx, f)
			if err != nil {
				return fmt.Errorf("validating %q: %w", f.Name, err)
			}
			if !outcome.Accepted() {
				logging.Log.Infof("Upload: rejected %q: %s", f.Name, outcome.Reason())
				return &InvalidUploadError{Index: i, Name: f.Name, Reason: outcome.Reason()}
			}
		}
	}
	return nil
}

// plan resolves the final name and path of every entry.
func (p *Pipeline) plan(req Request) ([]plannedFile, error) {
	planned := make([]plannedFile, 0, len(req.Files))
	for i, f := range req.Files {
		name := cleanName(f.Name)
		if req.NameFunc != nil {
			base, ext := splitName(f.Name)
			name = req.NameFunc(base, ext)
		}
		if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			return nil, &InvalidUploadError{Index: i, Name: f.Name, Reason: fmt.Sprintf("unsafe file name %q", name)}
		}
		path, err := filesystem.Within(req.Directory, name)
		if err != nil {
			return nil, &InvalidUploadError{Index: i, Name: f.Name, Reason: err.Error()}
		}
		planned = append(planned, plannedFile{file: f, name: name, path: filepath.Clean(path)})
	}
	return planned, nil
}

// abort ends a batch after a persistence failure, optionally undoing the
// entries already moved.
func (p *Pipeline) abort(result *Result, failed plannedFile, cause error) (*Result, error) {
	err := fmt.Errorf("failed to persist %q: %w", failed.file.Name, cause)
	if !p.rollback {
		logging.Log.Errorf("Upload: %v (%d file(s) left persisted)", err, len(result.Paths))
		return result, err
	}

	for i := len(result.Paths) - 1; i >= 0; i-- {
		if delErr := p.fs.DeleteFile(result.Paths[i]); delErr != nil {
			logging.Log.Warnf("Upload: rollback could not remove %s: %v", result.Paths[i], delErr)
		}
	}
	logging.Log.Errorf("Upload: %v (rolled back %d file(s))", err, len(result.Paths))
	return &Result{Names: []string{}, Paths: []string{}}, err
}
