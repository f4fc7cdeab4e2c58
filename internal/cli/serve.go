package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/arqlabs/labelforge/pkg/api"
)

// maxUploadBytes caps a whole multipart upload.
const maxUploadBytes = 16 << 20

// newServeCmd creates the serve command: a small upload server that runs
// the generator on posted CSV files and returns the PDF.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the label generator over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address")

	return cmd
}

func runServe(ctx context.Context, addr string) error {
	logger := loggerFromContext(ctx)
	srv := &server{logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", srv.handleIndex)
	r.Post("/generate", srv.handleGenerate)

	httpServer := &http.Server{Addr: addr, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Infof("Listening on %s", addr)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// server holds the handler state for the upload UI.
type server struct {
	logger *log.Logger
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, indexHTML)
}

// handleGenerate stages the uploaded CSV files in a per-request temp
// directory, runs the generator, and streams the PDF back as an
// attachment. Nothing is kept on disk after the response.
func (s *server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "upload too large or malformed", http.StatusBadRequest)
		return
	}
	uploads := r.MultipartForm.File["csv_files"]
	if len(uploads) == 0 {
		http.Error(w, "no files selected", http.StatusBadRequest)
		return
	}
	for _, fh := range uploads {
		if !strings.EqualFold(filepath.Ext(fh.Filename), ".csv") {
			http.Error(w, fmt.Sprintf("invalid file type: %s (only CSV files are allowed)", fh.Filename), http.StatusBadRequest)
			return
		}
	}

	requestID := uuid.NewString()
	logger := s.logger.With("request", requestID)

	stage, err := os.MkdirTemp("", "labelforge-"+requestID)
	if err != nil {
		logger.Error("Staging directory", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(stage)

	paths := make([]string, 0, len(uploads))
	for _, fh := range uploads {
		path, err := saveUpload(fh, stage)
		if err != nil {
			logger.Error("Staging upload", "file", fh.Filename, "err", err)
			http.Error(w, "could not read upload", http.StatusBadRequest)
			return
		}
		paths = append(paths, path)
	}

	generator := api.NewWithOptions(api.DefaultOptions(),
		api.WithHeader(r.FormValue("include_header") == "on"),
		api.WithIDText(r.FormValue("include_id") == "on"),
		api.WithInstruction(r.FormValue("include_instruction") == "on"),
		api.WithLogger(logger),
	)

	var buf bytes.Buffer
	sum, err := generator.GenerateFilesTo(paths, &buf)
	if err != nil {
		logger.Error("Generation failed", "err", err)
		http.Error(w, fmt.Sprintf("error generating PDF: %v", err), http.StatusBadRequest)
		return
	}
	logger.Info("Generated upload batch", "pages", sum.Pages, "labels", sum.Labels)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName(uploads, time.Now())))
	_, _ = w.Write(buf.Bytes())
}

// saveUpload copies one multipart file into dir under its sanitized base
// name and returns the staged path.
func saveUpload(fh *multipart.FileHeader, dir string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	path := filepath.Join(dir, filepath.Base(fh.Filename))
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return path, nil
}

// downloadName builds the attachment filename: a single upload names the
// PDF after itself, several uploads share a generic name. A timestamp keeps
// repeated downloads distinct.
func downloadName(uploads []*multipart.FileHeader, now time.Time) string {
	stamp := now.Format("20060102_150405")
	if len(uploads) == 1 {
		base := filepath.Base(uploads[0].Filename)
		base = strings.TrimSuffix(base, filepath.Ext(base))
		return fmt.Sprintf("%s_labels_%s.pdf", base, stamp)
	}
	return fmt.Sprintf("labels_%s.pdf", stamp)
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>labelforge</title>
  <style>
    body { font-family: sans-serif; max-width: 32rem; margin: 3rem auto; }
    fieldset { margin: 1rem 0; }
  </style>
</head>
<body>
  <h1>labelforge</h1>
  <p>Upload CSV files with a <code>barcode</code> column to get a printable
  sheet of Code 128 labels (Avery 5160).</p>
  <form action="/generate" method="post" enctype="multipart/form-data">
    <input type="file" name="csv_files" accept=".csv" multiple required>
    <fieldset>
      <legend>Label text</legend>
      <label><input type="checkbox" name="include_header" checked> Page header</label><br>
      <label><input type="checkbox" name="include_id" checked> Barcode ID text</label><br>
      <label><input type="checkbox" name="include_instruction" checked> Instruction text</label>
    </fieldset>
    <button type="submit">Generate PDF</button>
  </form>
</body>
</html>
`
