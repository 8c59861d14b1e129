// filepath: internal/api/handlers/file_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"filekit/internal/api/auth"
	"filekit/internal/audit"
	"filekit/internal/filesystem"
	"filekit/internal/logging"
	"filekit/internal/thumbnail"
	"filekit/internal/upload"

	"github.com/dustin/go-humanize"
)

// maxMemory is the part of a multipart form kept in memory before spilling
// to the OS temp dir.
const maxMemory = 8 << 20

// UploadFiles stages every file of the configured multipart field and runs
// the batch through the upload pipeline.
//
// Query: dir, the target directory relative to the storage root.
// Responds 201 with the final names, 422 when a rule rejects any file.
func (h *Handlers) UploadFiles(w http.ResponseWriter, r *http.Request) {
	dir, err := h.resolve(r.URL.Query().Get("dir"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid target directory.")
		return
	}

	if h.Cfg.MaxUploadSizeBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSizeBytes)
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		logging.Log.Warnf("Failed to parse multipart form: %v", err)
		respondWithError(w, http.StatusBadRequest, "Failed to parse multipart form.")
		return
	}
	defer r.MultipartForm.RemoveAll()

	field := h.Cfg.Upload.FieldName
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Missing '%s' part in multipart form.", field))
		return
	}

	files, err := h.stage(headers)
	if err != nil {
		h.cleanup(files)
		logging.Log.Errorf("UploadFiles: Failed to stage upload: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to stage uploaded files.")
		return
	}

	result, err := h.Uploads.HandleUploadedFiles(r.Context(), upload.Request{
		Files:     files,
		Directory: dir,
		NameFunc:  upload.NameFuncFor(h.Cfg.Upload.Naming, h.Cfg.Upload.HashLength),
	})
	h.cleanup(files)
	if err != nil {
		var invalid *upload.InvalidUploadError
		if errors.As(err, &invalid) {
			respondWithError(w, http.StatusUnprocessableEntity, invalid.Error())
		} else {
			logging.Log.Errorf("UploadFiles: Unhandled error from upload pipeline: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to store uploaded files.")
		}
		return
	}

	var total int64
	for _, f := range files {
		total += f.Size
	}
	h.Auditor.Log(r.Context(), audit.ActionUpload, auth.ActorFromContext(r.Context()), h.relative(dir), map[string]interface{}{
		"files": result.Names,
		"size":  humanize.IBytes(uint64(total)),
	})

	respondWithJSON(w, http.StatusCreated, UploadResponse{Files: result.Names})
}

// stage copies each multipart file into its own temp file. Entries staged
// before a failure are returned so the caller can clean them up.
func (h *Handlers) stage(headers []*multipart.FileHeader) ([]upload.File, error) {
	files := make([]upload.File, 0, len(headers))
	for _, header := range headers {
		f, err := h.stageOne(header)
		if err != nil {
			return files, err
		}
		files = append(files, f)
	}
	return files, nil
}

func (h *Handlers) stageOne(header *multipart.FileHeader) (upload.File, error) {
	src, err := header.Open()
	if err != nil {
		return upload.File{}, fmt.Errorf("could not open part %q: %w", header.Filename, err)
	}
	defer src.Close()

	tmp, err := h.Storage.CreateTempFile("upload-")
	if err != nil {
		return upload.File{}, err
	}
	size, err := h.Storage.SaveFile(src, tmp)
	if err != nil {
		h.discard(tmp)
		return upload.File{}, fmt.Errorf("could not stage %q: %w", header.Filename, err)
	}

	return upload.File{
		Name:     header.Filename,
		TempPath: tmp,
		Size:     size,
		MimeType: header.Header.Get("Content-Type"),
	}, nil
}

// cleanup removes staged files the pipeline did not move.
func (h *Handlers) cleanup(files []upload.File) {
	for _, f := range files {
		if err := h.discard(f.TempPath); err != nil {
			logging.Log.Warnf("UploadFiles: Could not remove staged file %s: %v", f.TempPath, err)
		}
	}
}

// CreateThumbnail derives a thumbnail from a stored image.
// Responds 201 with the new file's path relative to the storage root.
func (h *Handlers) CreateThumbnail(w http.ResponseWriter, r *http.Request) {
	var req ThumbnailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Source == "" || req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "Fields 'source' and 'name' are required.")
		return
	}

	source, err := h.resolve(req.Source)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid source path.")
		return
	}
	dir, err := h.resolve(req.Dir)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid target directory.")
		return
	}

	path, err := h.Thumbnails.Generate(r.Context(), thumbnail.Request{
		Source:    source,
		Width:     req.Width,
		Height:    req.Height,
		Directory: dir,
		Name:      req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, thumbnail.ErrInvalidDimensions), errors.Is(err, thumbnail.ErrInvalidName):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, filesystem.ErrFileNotFound):
			respondWithError(w, http.StatusNotFound, "Source file not found.")
		case errors.Is(err, thumbnail.ErrUnsupportedFormat):
			respondWithError(w, http.StatusUnsupportedMediaType, err.Error())
		default:
			logging.Log.Errorf("CreateThumbnail: Unhandled error from thumbnail generator: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to create thumbnail.")
		}
		return
	}

	rel := h.relative(path)
	h.Auditor.Log(r.Context(), audit.ActionThumbnail, auth.ActorFromContext(r.Context()), rel, map[string]interface{}{
		"source": req.Source,
		"width":  req.Width,
		"height": req.Height,
	})

	respondWithJSON(w, http.StatusCreated, ThumbnailResponse{Path: rel})
}

// DeleteFile removes one stored file.
//
// Query: path, relative to the storage root.
func (h *Handlers) DeleteFile(w http.ResponseWriter, r *http.Request) {
	relPath := r.URL.Query().Get("path")
	if relPath == "" {
		respondWithError(w, http.StatusBadRequest, "Missing required query parameter: path")
		return
	}
	path, err := h.resolve(relPath)
	if err != nil || h.relative(path) == "." {
		respondWithError(w, http.StatusBadRequest, "Invalid file path.")
		return
	}

	if err := h.Storage.DeleteFile(path); err != nil {
		if errors.Is(err, filesystem.ErrFileNotFound) {
			respondWithError(w, http.StatusNotFound, "File not found.")
		} else {
			logging.Log.Errorf("DeleteFile: Failed to delete %s: %v", path, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to delete file.")
		}
		return
	}

	h.Auditor.Log(r.Context(), audit.ActionDelete, auth.ActorFromContext(r.Context()), h.relative(path), nil)

	w.WriteHeader(http.StatusNoContent)
}
