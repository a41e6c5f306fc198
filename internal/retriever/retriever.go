// Package retriever downloads a published feed archive and unpacks its
// tables into a local directory for the ingestion engine to read.
package retriever

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Retriever fetches zipped feed archives over HTTP.
type Retriever struct {
	client *http.Client
	log    *slog.Logger
}

// New builds a retriever. A nil client gets a default with a download
// timeout; a nil logger discards output.
func New(client *http.Client, log *slog.Logger) *Retriever {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Minute}
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Retriever{client: client, log: log}
}

// Fetch downloads the archive at url and extracts its files into
// destDir, creating the directory if needed. Entries with directory
// components are rejected: feed archives are flat.
func (r *Retriever) Fetch(ctx context.Context, url, destDir string) error {
	r.log.Info("fetching feed archive", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build feed request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch feed: unexpected status %s", resp.Status)
	}

	tmp, err := os.CreateTemp("", "feed-*.zip")
	if err != nil {
		return fmt.Errorf("create temp archive: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	size, err := io.Copy(tmp, resp.Body)
	if err != nil {
		return fmt.Errorf("download feed: %w", err)
	}
	r.log.Info("feed archive downloaded", "bytes", size)

	return r.extract(tmp.Name(), destDir)
}

func (r *Retriever) extract(archive, destDir string) error {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("open feed archive: %w", err)
	}
	defer zr.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create feed dir: %w", err)
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if strings.ContainsAny(f.Name, `/\`) {
			return fmt.Errorf("feed archive entry %q is not a flat file", f.Name)
		}
		if err := extractFile(f, filepath.Join(destDir, f.Name)); err != nil {
			return err
		}
	}
	r.log.Info("feed archive extracted", "dir", destDir, "files", len(zr.File))
	return nil
}

// VerifyFiles checks that every table file named by the manifest is
// present in dir. All missing names are reported in one error.
func VerifyFiles(dir string, files map[string]string) error {
	var missing []string
	for _, name := range files {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("feed dir %s is missing %s", dir, strings.Join(missing, ", "))
}

func extractFile(f *zip.File, dest string) error {
	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("open archive entry %s: %w", f.Name, err)
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("extract %s: %w", f.Name, err)
	}
	return out.Close()
}
