// filepath: internal/cli/upload_command.go
package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"filekit/internal/audit"
	"filekit/internal/config"
	"filekit/internal/upload"

	"github.com/spf13/cobra"
)

// actorCLI identifies command line operations in audit events.
const actorCLI = "cli"

type UploadOptions struct {
	Dir    string // relative to the storage root
	Naming string // overrides upload.naming
}

func NewUploadCommand() *cobra.Command {
	uploadOptions := &UploadOptions{}

	uploadCmd := &cobra.Command{
		Use:   "upload FILE...",
		Short: "Validate local files and store them",
		Long: `Copies each FILE into the staging area, validates the whole batch against the
configured upload rules and moves it into --dir. The originals are left untouched.
Prints the final name of every stored file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpload(cmd, uploadOptions, args)
		},
	}

	uploadOptions.registerFlags(uploadCmd)

	return uploadCmd
}

func (opt *UploadOptions) registerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&opt.Dir, "dir", "", "Target directory, relative to the storage root.")
	cmd.Flags().StringVar(&opt.Naming, "naming", "", "Naming strategy: original, hash or ulid. (Default: upload.naming)")
}

func runUpload(cmd *cobra.Command, opt *UploadOptions, paths []string) error {
	naming := cfg.Upload.Naming
	if opt.Naming != "" {
		naming = opt.Naming
	}
	switch naming {
	case config.NamingOriginal, config.NamingHash, config.NamingULID:
	default:
		return fmt.Errorf("invalid naming strategy: %q", naming)
	}

	dir, err := storagePath(cfg, opt.Dir)
	if err != nil {
		return fmt.Errorf("invalid target directory: %w", err)
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	files, err := a.stageLocal(paths)
	if err != nil {
		a.discardStaged(files)
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	result, err := a.pipeline.HandleUploadedFiles(ctx, upload.Request{
		Files:     files,
		Directory: dir,
		NameFunc:  upload.NameFuncFor(naming, cfg.Upload.HashLength),
	})
	a.discardStaged(files)
	if err != nil {
		if result != nil {
			for _, name := range result.Names {
				fmt.Fprintf(cmd.ErrOrStderr(), "stored before failure: %s\n", name)
			}
		}
		return err
	}

	a.auditor.Log(ctx, audit.ActionUpload, actorCLI, filepath.ToSlash(filepath.Clean(opt.Dir)), map[string]interface{}{
		"files": result.Names,
	})

	for _, name := range result.Names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

// stageLocal copies local files into temp files so the pipeline can move
// them without touching the originals.
func (a *app) stageLocal(paths []string) ([]upload.File, error) {
	files := make([]upload.File, 0, len(paths))
	for _, path := range paths {
		info, err := a.fs.Stat(path)
		if err != nil {
			return files, err
		}
		if info.IsDir() {
			return files, fmt.Errorf("%s is a directory", path)
		}

		tmp, err := a.fs.CreateTempFile("upload-")
		if err != nil {
			return files, err
		}
		files = append(files, upload.File{Name: filepath.Base(path), TempPath: tmp, Size: info.Size()})

		if _, err := a.fs.CopyFile(path, tmp, nil); err != nil {
			return files, err
		}
	}
	return files, nil
}
