package main

/*

go test -v ./cmd/directory -count=1

*/

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Werneck0live/company-directory/internal/handlers"
	"github.com/Werneck0live/company-directory/internal/snapshot"
	"github.com/Werneck0live/company-directory/internal/store/memory"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestList_SnapshotJSON(t *testing.T) {
	got, err := execute(t, "list", "--source", "snapshot", "--industry", "Technology", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var out listOutput
	if err := json.Unmarshal([]byte(got), &out); err != nil {
		t.Fatalf("bad json %q: %v", got, err)
	}
	if out.Total != 5 || len(out.Items) != 5 || out.Page != 1 || out.TotalPages != 1 {
		t.Fatalf("unexpected output %+v", out)
	}
	if out.Items[0].Name != "Cobalt Security" {
		t.Fatalf("first=%q, want name order", out.Items[0].Name)
	}
}

func TestList_SnapshotTable(t *testing.T) {
	got, err := execute(t, "list", "--source", "snapshot", "--page", "3")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "NAME") || !strings.Contains(got, "26 companies found (page 3 of 3)") {
		t.Fatalf("unexpected table:\n%s", got)
	}
}

func TestList_SortDescending(t *testing.T) {
	got, err := execute(t, "list", "--source", "snapshot", "--sort", "founded_year", "--order", "desc", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var out listOutput
	if err := json.Unmarshal([]byte(got), &out); err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(out.Items); i++ {
		a, b := out.Items[i-1].FoundedYear, out.Items[i].FoundedYear
		if a != nil && b != nil && *a < *b {
			t.Fatalf("not descending at %d: %d < %d", i, *a, *b)
		}
	}
}

func TestList_RejectsBadFlags(t *testing.T) {
	cases := [][]string{
		{"list", "--source", "snapshot", "--sort", "password"},
		{"list", "--source", "snapshot", "--order", "up"},
		{"list", "--source", "snapshot", "--page", "0"},
		{"list", "--source", "ftp"},
	}
	for _, args := range cases {
		if _, err := execute(t, args...); err == nil {
			t.Fatalf("%v: want error", args)
		}
	}
}

func TestList_SnapshotFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "companies.yaml")
	data := "companies:\n  - id: x-1\n    name: Solo Works\n    industry: Retail\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := execute(t, "list", "--source", "snapshot", "--snapshot", path, "--json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Solo Works") || !strings.Contains(got, `"total": 1`) {
		t.Fatalf("unexpected output %s", got)
	}
}

func TestList_Remote(t *testing.T) {
	all, err := snapshot.Bundled()
	if err != nil {
		t.Fatal(err)
	}
	quiet := slog.New(slog.NewJSONHandler(io.Discard, nil))
	srv := httptest.NewServer(handlers.NewRouter(handlers.NewCompanyHandler(memory.New(all), nil, quiet)))
	defer srv.Close()

	got, err := execute(t, "list", "--source", "remote", "--api-url", srv.URL, "--search", "solar", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Evergreen Solar") || !strings.Contains(got, `"total": 1`) {
		t.Fatalf("unexpected output %s", got)
	}
}

func TestList_RemoteDown(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	_, err := execute(t, "list", "--source", "remote", "--api-url", url, "--timeout", "2s")
	if err == nil || !strings.Contains(err.Error(), "Failed to load companies") {
		t.Fatalf("want load failure, got %v", err)
	}
}

func TestIndustries_Snapshot(t *testing.T) {
	got, err := execute(t, "industries", "--source", "snapshot")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 12 || lines[0] != "Construction" || lines[11] != "Transportation" {
		t.Fatalf("unexpected industries %q", lines)
	}
}
