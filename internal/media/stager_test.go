package media

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedStager(dir string) *Stager {
	s := NewStager(dir)
	s.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC) }
	return s
}

func TestStage(t *testing.T) {
	dir := t.TempDir()
	s := fixedStager(dir)

	path, err := s.Stage(context.Background(), "My Lecture.MP4", strings.NewReader("video-bytes"))
	if err != nil {
		t.Fatalf("Stage() error = %v", err)
	}

	if filepath.Dir(path) != dir {
		t.Errorf("staged outside dir: %s", path)
	}
	name := filepath.Base(path)
	if !strings.HasPrefix(name, "upload_My Lecture_20240309_140507_") || !strings.HasSuffix(name, ".mp4") {
		t.Errorf("staged name = %q", name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "video-bytes" {
		t.Errorf("content = %q", data)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want 1 (no leftover .part files)", len(entries))
	}
}

func TestStageDistinctNamesNeverCollide(t *testing.T) {
	s := fixedStager(t.TempDir())
	ctx := context.Background()

	a, err := s.Stage(ctx, "a.mp3", strings.NewReader("same"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Stage(ctx, "b.mp3", strings.NewReader("same"))
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Errorf("distinct filenames staged to the same path %s", a)
	}
}

func TestStageSameNameSameSecond(t *testing.T) {
	dir := t.TempDir()
	s := fixedStager(dir)
	ctx := context.Background()

	first, err := s.Stage(ctx, "talk.wav", strings.NewReader("first"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Stage(ctx, "talk.wav", strings.NewReader("second"))
	if err != nil {
		t.Fatal(err)
	}
	third, err := s.Stage(ctx, "talk.wav", strings.NewReader("first"))
	if err != nil {
		t.Fatal(err)
	}

	if first == second || first == third {
		t.Fatalf("staging overwrote an earlier upload: %s %s %s", first, second, third)
	}

	got, _ := os.ReadFile(first)
	if string(got) != "first" {
		t.Errorf("first upload content = %q, want %q", got, "first")
	}
	if !strings.HasSuffix(third, "-1.wav") {
		t.Errorf("identical payload name = %s, want -1 counter", third)
	}
}

func TestStageStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	s := fixedStager(dir)

	for _, name := range []string{"../../etc/passwd.mp3", `C:\Users\me\notes.mp3`} {
		path, err := s.Stage(context.Background(), name, bytes.NewReader([]byte("x")))
		if err != nil {
			t.Fatalf("Stage(%q) error = %v", name, err)
		}
		if filepath.Dir(path) != dir {
			t.Errorf("Stage(%q) escaped staging dir: %s", name, path)
		}
	}
}

func TestStageMissingDir(t *testing.T) {
	s := NewStager(filepath.Join(t.TempDir(), "missing"))
	if _, err := s.Stage(context.Background(), "a.mp3", strings.NewReader("x")); err == nil {
		t.Error("Stage() should fail when the staging dir does not exist")
	}
}

func TestStageCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewStager(t.TempDir()).Stage(ctx, "a.mp3", strings.NewReader("x")); err == nil {
		t.Error("Stage() should honor a canceled context")
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		in       string
		wantStem string
		wantExt  string
	}{
		{"lecture.MP4", "lecture", ".mp4"},
		{"a.b.c.wav", "a.b.c", ".wav"},
		{"noext", "noext", ""},
		{".mp3", "file", ".mp3"},
		{"", "file", ""},
		{"dir/sub/clip.mkv", "clip", ".mkv"},
	}

	for _, tt := range tests {
		stem, ext := SplitName(tt.in)
		if stem != tt.wantStem || ext != tt.wantExt {
			t.Errorf("SplitName(%q) = (%q, %q), want (%q, %q)", tt.in, stem, ext, tt.wantStem, tt.wantExt)
		}
	}
}
