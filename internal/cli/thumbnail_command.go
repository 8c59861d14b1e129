// filepath: internal/cli/thumbnail_command.go
package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"filekit/internal/audit"
	"filekit/internal/thumbnail"

	"github.com/spf13/cobra"
)

// ThumbnailOptions paths are relative to the storage root.
type ThumbnailOptions struct {
	Source string
	Width  int
	Height int
	Dir    string
	Name   string
}

func NewThumbnailCommand() *cobra.Command {
	thumbnailOptions := &ThumbnailOptions{}

	thumbnailCmd := &cobra.Command{
		Use:   "thumbnail",
		Short: "Create a thumbnail of a stored image",
		Long: `Writes a resized copy of --source to --dir/--name. A box wider than it is tall
fits the image inside it without enlarging; any other box is filled exactly by
cropping around the center. The output format follows the extension of --name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThumbnail(cmd, thumbnailOptions)
		},
	}

	thumbnailOptions.registerFlags(thumbnailCmd)

	return thumbnailCmd
}

func (opt *ThumbnailOptions) registerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&opt.Source, "source", "", "Source image, relative to the storage root.")
	cmd.Flags().IntVar(&opt.Width, "width", 0, "Thumbnail width in pixels.")
	cmd.Flags().IntVar(&opt.Height, "height", 0, "Thumbnail height in pixels.")
	cmd.Flags().StringVar(&opt.Dir, "dir", "", "Output directory, relative to the storage root.")
	cmd.Flags().StringVar(&opt.Name, "name", "", "Output file name, e.g. 'photo_small.jpg'.")
	cmd.MarkFlagRequired("source")
	cmd.MarkFlagRequired("width")
	cmd.MarkFlagRequired("height")
	cmd.MarkFlagRequired("name")
}

func runThumbnail(cmd *cobra.Command, opt *ThumbnailOptions) error {
	source, err := storagePath(cfg, opt.Source)
	if err != nil {
		return fmt.Errorf("invalid source: %w", err)
	}
	dir, err := storagePath(cfg, opt.Dir)
	if err != nil {
		return fmt.Errorf("invalid target directory: %w", err)
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	path, err := a.generator.Generate(ctx, thumbnail.Request{
		Source:    source,
		Width:     opt.Width,
		Height:    opt.Height,
		Directory: dir,
		Name:      opt.Name,
	})
	if err != nil {
		return err
	}

	rel, err := filepath.Rel(filepath.Clean(cfg.Storage.Root), path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	a.auditor.Log(ctx, audit.ActionThumbnail, actorCLI, rel, map[string]interface{}{
		"source": opt.Source,
		"width":  opt.Width,
		"height": opt.Height,
	})

	fmt.Fprintln(cmd.OutOrStdout(), rel)
	return nil
}
