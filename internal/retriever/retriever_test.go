package retriever

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func zipArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	return buf.Bytes()
}

func serveArchive(t *testing.T, status int, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	archive := zipArchive(t, map[string]string{
		"agency.txt": "agency_id,agency_name\n1,MBTA\n",
		"routes.txt": "route_id\nRed\n",
	})
	srv := serveArchive(t, http.StatusOK, archive)

	dest := filepath.Join(t.TempDir(), "feed")
	r := New(srv.Client(), nil)
	if err := r.Fetch(context.Background(), srv.URL, dest); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dest, "agency.txt"))
	if err != nil {
		t.Fatalf("read extracted file: %v", err)
	}
	if want := "agency_id,agency_name\n1,MBTA\n"; string(got) != want {
		t.Errorf("agency.txt = %q, want %q", got, want)
	}
	if _, err := os.Stat(filepath.Join(dest, "routes.txt")); err != nil {
		t.Errorf("routes.txt not extracted: %v", err)
	}
}

func TestFetch_BadStatus(t *testing.T) {
	srv := serveArchive(t, http.StatusNotFound, nil)

	r := New(srv.Client(), nil)
	err := r.Fetch(context.Background(), srv.URL, t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "unexpected status") {
		t.Fatalf("err = %v, want unexpected status", err)
	}
}

func TestFetch_NotAnArchive(t *testing.T) {
	srv := serveArchive(t, http.StatusOK, []byte("this is not a zip"))

	r := New(srv.Client(), nil)
	if err := r.Fetch(context.Background(), srv.URL, t.TempDir()); err == nil {
		t.Fatal("expected error for non-zip body")
	}
}

func TestFetch_RejectsNestedEntries(t *testing.T) {
	archive := zipArchive(t, map[string]string{
		"nested/agency.txt": "agency_id\n1\n",
	})
	srv := serveArchive(t, http.StatusOK, archive)

	r := New(srv.Client(), nil)
	err := r.Fetch(context.Background(), srv.URL, t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "not a flat file") {
		t.Fatalf("err = %v, want flat file rejection", err)
	}
}

func TestVerifyFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"agency.txt", "routes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files := map[string]string{"agency": "agency.txt", "route": "routes.txt"}
	if err := VerifyFiles(dir, files); err != nil {
		t.Fatalf("VerifyFiles: %v", err)
	}

	files["trip"] = "trips.txt"
	files["stop"] = "stops.txt"
	err := VerifyFiles(dir, files)
	if err == nil {
		t.Fatal("expected error for missing files")
	}
	if want := "missing stops.txt, trips.txt"; !strings.Contains(err.Error(), want) {
		t.Errorf("err = %v, want it to contain %q", err, want)
	}
}

func TestFetch_SkipsDirectoryEntries(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if _, err := zw.Create("empty/"); err != nil {
		t.Fatalf("create dir entry: %v", err)
	}
	w, err := zw.Create("stops.txt")
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	w.Write([]byte("stop_id\nplace-sstat\n"))
	zw.Close()

	srv := serveArchive(t, http.StatusOK, buf.Bytes())
	dest := t.TempDir()
	r := New(srv.Client(), nil)
	if err := r.Fetch(context.Background(), srv.URL, dest); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "stops.txt")); err != nil {
		t.Errorf("stops.txt not extracted: %v", err)
	}
}
