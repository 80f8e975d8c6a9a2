package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/sir_venger/panel_lite/internal/app/panelhttp"
	"github.com/sir_venger/panel_lite/internal/models"
	"github.com/sir_venger/panel_lite/internal/usecase/catalogstore"
	"github.com/sir_venger/panel_lite/internal/usecase/uploadsvc"
)

func newPanelServer(t *testing.T, maxUpload int64) *httptest.Server {
	t.Helper()

	catalog, err := catalogstore.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	uploads, err := uploadsvc.New(t.TempDir(), maxUpload, zap.NewNop().Sugar())
	if err != nil {
		t.Fatal(err)
	}

	handler := panelhttp.NewServer(panelhttp.Deps{
		Catalog: catalog,
		Uploads: uploads,
		Log:     zap.NewNop().Sugar(),
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func getCatalog(t *testing.T, base string) models.Catalog {
	t.Helper()

	resp, err := http.Get(base + "/api/data")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("get catalog: %s: %s", resp.Status, body)
	}

	var c models.Catalog
	if err := json.NewDecoder(resp.Body).Decode(&c); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestCatalog_SeedSaveReload(t *testing.T) {
	srv := newPanelServer(t, 1<<20)

	seeded := getCatalog(t, srv.URL)
	if len(seeded.Services) != 8 {
		t.Fatalf("want 8 seeded services, got %d", len(seeded.Services))
	}
	if len(seeded.Services["schedule"].Sections) != 1 {
		t.Fatalf("schedule must ship one seeded section")
	}

	hw := seeded.Services["homework"]
	hw.Sections = append(hw.Sections, models.Section{
		ID: "1", Name: "HW1", Type: "text", Content: []models.ContentBlock{},
	})
	seeded.Services["homework"] = hw

	body, err := json.Marshal(seeded)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(srv.URL+"/api/data", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save catalog: %s", resp.Status)
	}

	got := getCatalog(t, srv.URL)
	if len(got.Services["homework"].Sections) != 1 || got.Services["homework"].Sections[0].Name != "HW1" {
		t.Fatalf("homework section not persisted: %#v", got.Services["homework"])
	}
	if len(got.Services["schedule"].Sections) != 1 {
		t.Fatalf("schedule must stay untouched")
	}
}

func TestSaveCatalog_MissingServicesRejected(t *testing.T) {
	srv := newPanelServer(t, 1<<20)

	for _, body := range []string{`{}`, `{"other": 1}`, `not json`} {
		resp, err := http.Post(srv.URL+"/api/data", "application/json", bytes.NewReader([]byte(body)))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("body %q: want 400, got %s", body, resp.Status)
		}
	}
}

func TestUploadDownload_Multipart(t *testing.T) {
	srv := newPanelServer(t, 1<<20)

	payload := bytes.Repeat([]byte("0123456789abcdef"), 1024) // 16 KiB

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "отчёт.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(payload); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	resp, err := http.Post(srv.URL+"/api/upload", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("upload: %s: %s", resp.Status, body)
	}

	var out struct {
		Success      bool   `json:"success"`
		URL          string `json:"url"`
		Filename     string `json:"filename"`
		OriginalName string `json:"originalName"`
		Size         int64  `json:"size"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if !out.Success || out.Filename == "" || out.URL == "" {
		t.Fatalf("incomplete upload response: %+v", out)
	}
	if out.Size != int64(len(payload)) {
		t.Fatalf("want size %d, got %d", len(payload), out.Size)
	}

	dl, err := http.Get(srv.URL + out.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer dl.Body.Close()
	if dl.StatusCode != http.StatusOK {
		t.Fatalf("download: %s", dl.Status)
	}
	got, err := io.ReadAll(dl.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("downloaded data mismatch, got %d bytes want %d", len(got), len(payload))
	}
}

func TestUpload_RawBodyTooLarge(t *testing.T) {
	const max = 4096
	srv := newPanelServer(t, max)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/upload", bytes.NewReader(make([]byte, max+1)))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("X-File-Name", "huge.bin")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("want 413, got %s", resp.Status)
	}
}

func TestUpload_MultipartWithoutFileField(t *testing.T) {
	srv := newPanelServer(t, 1<<20)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("comment", "no file here"); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	resp, err := http.Post(srv.URL+"/api/upload", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %s", resp.Status)
	}
}

func TestRetrieve_TraversalRejected(t *testing.T) {
	srv := newPanelServer(t, 1<<20)

	resp, err := http.Get(srv.URL + "/uploads/" + "%2e%2e%2f%2e%2e%2fetc%2fpasswd")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest && resp.StatusCode != http.StatusNotFound {
		t.Fatalf("traversal must be rejected, got %s", resp.Status)
	}
}

func TestHealthAndUnknownRoute(t *testing.T) {
	srv := newPanelServer(t, 1<<20)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	var hs struct {
		OK bool `json:"ok"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&hs); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if !hs.OK {
		t.Fatalf("health not ok")
	}

	resp, err = http.Get(srv.URL + "/no/such/route")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404 for unknown route, got %s", resp.Status)
	}
}

func TestUpload_ManyConcurrent(t *testing.T) {
	srv := newPanelServer(t, 1<<20)

	const n = 50
	names := make(chan string, n)
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		go func() {
			req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/upload", bytes.NewReader([]byte("same payload")))
			if err != nil {
				errs <- err
				return
			}
			req.Header.Set("Content-Type", "application/octet-stream")
			req.Header.Set("X-File-Name", "same.bin")

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				errs <- err
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				errs <- fmt.Errorf("upload status %s", resp.Status)
				return
			}
			var out struct {
				Filename string `json:"filename"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				errs <- err
				return
			}
			names <- out.Filename
		}()
	}

	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		select {
		case err := <-errs:
			t.Fatal(err)
		case name := <-names:
			if _, dup := seen[name]; dup {
				t.Fatalf("duplicate assigned filename %q", name)
			}
			seen[name] = struct{}{}
		}
	}
}
