package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/nguyentantai21042004/study-scribe/internal/config"
	"github.com/nguyentantai21042004/study-scribe/internal/logger"
	"github.com/nguyentantai21042004/study-scribe/internal/media"
	"github.com/nguyentantai21042004/study-scribe/internal/model"
	"github.com/nguyentantai21042004/study-scribe/internal/transcriber"
	"github.com/nguyentantai21042004/study-scribe/pkg/executor"
)

// fakeExecutor records every command. ffmpeg writes its output file before
// failing so cleanup of partial output can be checked.
type fakeExecutor struct {
	mu        sync.Mutex
	calls     []string
	args      [][]string
	ffmpegErr error
	probeOut  string
	probeErr  error
	onRun     func(name string)
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	onRun := f.onRun
	f.mu.Unlock()

	if onRun != nil {
		onRun(name)
	}

	switch name {
	case "ffmpeg":
		out := args[len(args)-1]
		if err := os.WriteFile(out, []byte("audio"), 0644); err != nil {
			return "", err
		}
		if f.ffmpegErr != nil {
			return "", f.ffmpegErr
		}
		return "", nil
	case "ffprobe":
		return f.probeOut, f.probeErr
	}
	return "", errors.New("unexpected command " + name)
}

type fakeTranscriber struct {
	mu    sync.Mutex
	paths []string
	text  string
	err   error
	onRun func(path string)
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string) (*transcriber.Transcription, error) {
	f.mu.Lock()
	f.paths = append(f.paths, audioPath)
	f.mu.Unlock()

	if f.onRun != nil {
		f.onRun(audioPath)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &transcriber.Transcription{Text: f.text, Model: "fake-model"}, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		FFmpeg: config.FFmpegConfig{
			BinaryPath:      "ffmpeg",
			ProbeBinaryPath: "ffprobe",
			AudioFormat:     "mp3",
			SampleRate:      44100,
			Channels:        2,
			AudioBitrate:    "192k",
		},
		Paths:       config.PathsConfig{Temp: t.TempDir()},
		Performance: config.PerformanceConfig{MaxConcurrent: 2},
	}
}

func newTestProcessor(t *testing.T, cfg *config.Config, exec executor.Executor, tr transcriber.Transcriber) Processor {
	t.Helper()
	classifier, err := media.NewClassifier(
		[]string{".mp4", ".avi", ".mov", ".mkv", ".wmv", ".flv"},
		[]string{".mp3", ".wav", ".m4a", ".aac", ".ogg", ".flac"},
	)
	if err != nil {
		t.Fatal(err)
	}
	return New(cfg, classifier, exec, tr, logger.NewNop())
}

func stagedFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("media"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// isExtractedAudio reports whether path is <dir>/<stem>_audio_<8 chars>.<format>.
func isExtractedAudio(path, dir, stem, format string) bool {
	if filepath.Dir(path) != dir {
		return false
	}
	base := filepath.Base(path)
	prefix, suffix := stem+"_audio_", "."+format
	return strings.HasPrefix(base, prefix) && strings.HasSuffix(base, suffix) &&
		len(base) == len(prefix)+8+len(suffix)
}

func TestProcessVideo(t *testing.T) {
	cfg := testConfig(t)
	var order []string
	exec := &fakeExecutor{probeOut: `{"format":{"duration":"125.4567"}}`}
	exec.onRun = func(name string) { order = append(order, name) }
	tr := &fakeTranscriber{text: "cells divide by mitosis"}
	tr.onRun = func(path string) {
		order = append(order, "transcribe")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("extracted audio missing during transcription: %v", err)
		}
	}

	staged := stagedFile(t, cfg.Paths.Temp, "upload_Lecture 1_20240309_140507_ab12cd34.mp4")
	rec, err := newTestProcessor(t, cfg, exec, tr).Process(context.Background(), Request{
		Path:         staged,
		OriginalName: "Lecture 1.MP4",
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(order) != 3 || order[0] != "ffmpeg" || order[2] != "transcribe" {
		t.Errorf("call order = %v, want ffmpeg before transcribe", order)
	}

	if len(tr.paths) != 1 {
		t.Fatalf("transcribed %v, want one extracted file", tr.paths)
	}
	wantAudio := tr.paths[0]
	if !isExtractedAudio(wantAudio, cfg.Paths.Temp, "upload_Lecture 1_20240309_140507_ab12cd34", "mp3") {
		t.Errorf("transcribed %s, want <temp>/<stem>_audio_<id>.mp3", wantAudio)
	}
	if out := exec.args[0][len(exec.args[0])-1]; out != wantAudio {
		t.Errorf("ffmpeg wrote %s, transcribed %s", out, wantAudio)
	}
	if _, err := os.Stat(wantAudio); !os.IsNotExist(err) {
		t.Error("extracted audio not cleaned up after success")
	}

	if rec.MediaType != model.MediaVideo || rec.OriginalFile != "Lecture 1.MP4" {
		t.Errorf("record = %+v", rec)
	}
	if rec.SourceFile != filepath.Base(wantAudio) {
		t.Errorf("SourceFile = %q", rec.SourceFile)
	}
	if rec.Duration == nil || *rec.Duration != 125.46 {
		t.Errorf("Duration = %v, want 125.46", rec.Duration)
	}
	if rec.WordCount != 4 || rec.Model != "fake-model" || rec.Language != model.LanguageAutoDetected {
		t.Errorf("record = %+v", rec)
	}
}

func TestExtractAudioArgs(t *testing.T) {
	tests := []struct {
		format string
		codec  string
	}{
		{"mp3", "libmp3lame"},
		{"wav", "pcm_s16le"},
		{"flac", "flac"},
		{"ogg", "libvorbis"},
		{"m4a", "aac"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.FFmpeg.AudioFormat = tt.format
			exec := &fakeExecutor{probeOut: `{"format":{"duration":"1"}}`}
			staged := stagedFile(t, cfg.Paths.Temp, "clip.mov")

			if _, err := newTestProcessor(t, cfg, exec, &fakeTranscriber{text: "x"}).Process(context.Background(), Request{Path: staged}); err != nil {
				t.Fatal(err)
			}

			want := []string{
				"-i", staged, "-vn", "-acodec", tt.codec, "-ar", "44100", "-ac", "2", "-b:a", "192k", "-y",
			}
			got := exec.args[0]
			if len(got) != len(want)+1 {
				t.Fatalf("args = %q, want %q + output", got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("arg[%d] = %q, want %q", i, got[i], want[i])
				}
			}
			if out := got[len(want)]; !isExtractedAudio(out, cfg.Paths.Temp, "clip", tt.format) {
				t.Errorf("output = %q", out)
			}
		})
	}
}

func TestProcessAudio(t *testing.T) {
	cfg := testConfig(t)
	exec := &fakeExecutor{probeOut: `{"format":{"duration":"61.004"}}`}
	tr := &fakeTranscriber{text: "hello world"}

	staged := stagedFile(t, cfg.Paths.Temp, "upload_talk_20240309_140507_ab12cd34.wav")
	rec, err := newTestProcessor(t, cfg, exec, tr).Process(context.Background(), Request{Path: staged, OriginalName: "talk.wav"})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	for _, c := range exec.calls {
		if c == "ffmpeg" {
			t.Error("audio input should skip extraction")
		}
	}
	if len(tr.paths) != 1 || tr.paths[0] != staged {
		t.Errorf("transcribed %v, want the staged file", tr.paths)
	}
	if rec.MediaType != model.MediaAudio || rec.OriginalFile != "talk.wav" || rec.SourceFile != filepath.Base(staged) {
		t.Errorf("record = %+v", rec)
	}
	if rec.Duration == nil || *rec.Duration != 61 {
		t.Errorf("Duration = %v, want 61", rec.Duration)
	}
	if _, err := os.Stat(staged); err != nil {
		t.Error("audio path must not remove the staged upload")
	}
}

func TestProcessUnsupported(t *testing.T) {
	cfg := testConfig(t)
	exec := &fakeExecutor{}
	tr := &fakeTranscriber{}

	for _, name := range []string{"notes.pdf", "README", "archive.tar.gz"} {
		_, err := newTestProcessor(t, cfg, exec, tr).Process(context.Background(), Request{Path: filepath.Join(cfg.Paths.Temp, name), OriginalName: name})
		if !errors.Is(err, media.ErrUnsupportedMedia) {
			t.Errorf("Process(%s) error = %v, want ErrUnsupportedMedia", name, err)
		}
	}

	if len(exec.calls) != 0 || len(tr.paths) != 0 {
		t.Errorf("external calls made: exec=%v transcribe=%v", exec.calls, tr.paths)
	}
}

func TestProcessUnsupportedNamesExtension(t *testing.T) {
	cfg := testConfig(t)
	_, err := newTestProcessor(t, cfg, &fakeExecutor{}, &fakeTranscriber{}).Process(context.Background(), Request{OriginalName: "slides.PPTX"})
	if err == nil || err.Error() != `unsupported file type: ".pptx"` {
		t.Errorf("error = %v", err)
	}
}

func TestProcessExtractionFailure(t *testing.T) {
	cfg := testConfig(t)
	exitErr := &executor.ExitError{Name: "ffmpeg", Stderr: "moov atom not found", Err: errors.New("exit status 1")}
	exec := &fakeExecutor{ffmpegErr: exitErr}
	tr := &fakeTranscriber{text: "never"}

	staged := stagedFile(t, cfg.Paths.Temp, "broken.mp4")
	_, err := newTestProcessor(t, cfg, exec, tr).Process(context.Background(), Request{Path: staged, OriginalName: "broken.mp4"})

	if !errors.Is(err, ErrExtractAudio) {
		t.Fatalf("error = %v, want ErrExtractAudio", err)
	}
	var got *executor.ExitError
	if !errors.As(err, &got) || got.Stderr != "moov atom not found" {
		t.Errorf("stderr not carried: %v", err)
	}
	if len(tr.paths) != 0 {
		t.Error("transcription ran after failed extraction")
	}
	if _, err := os.Stat(exec.args[0][len(exec.args[0])-1]); !os.IsNotExist(err) {
		t.Error("partial extracted audio not cleaned up")
	}
}

func TestProcessTranscriptionFailureCleansAudio(t *testing.T) {
	cfg := testConfig(t)
	exec := &fakeExecutor{probeOut: `{"format":{"duration":"3"}}`}
	remote := errors.New("quota exceeded")
	tr := &fakeTranscriber{err: remote}

	staged := stagedFile(t, cfg.Paths.Temp, "lecture.mkv")
	rec, err := newTestProcessor(t, cfg, exec, tr).Process(context.Background(), Request{Path: staged, OriginalName: "lecture.mkv"})

	if rec != nil || !errors.Is(err, remote) {
		t.Fatalf("Process() = %v, %v", rec, err)
	}
	if len(tr.paths) != 1 {
		t.Fatalf("transcribed %v", tr.paths)
	}
	if _, err := os.Stat(tr.paths[0]); !os.IsNotExist(err) {
		t.Error("extracted audio not cleaned up after transcription failure")
	}
}

func TestProcessProbeFailureLeavesDurationNull(t *testing.T) {
	tests := []struct {
		name string
		exec *fakeExecutor
	}{
		{"probe error", &fakeExecutor{probeErr: errors.New("ffprobe missing")}},
		{"bad json", &fakeExecutor{probeOut: "not json"}},
		{"no duration", &fakeExecutor{probeOut: `{"format":{}}`}},
		{"bad number", &fakeExecutor{probeOut: `{"format":{"duration":"N/A"}}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			staged := stagedFile(t, cfg.Paths.Temp, "a.mp3")
			rec, err := newTestProcessor(t, cfg, tt.exec, &fakeTranscriber{text: "ok"}).Process(context.Background(), Request{Path: staged})
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if rec.Duration != nil {
				t.Errorf("Duration = %v, want nil", *rec.Duration)
			}
		})
	}
}

func TestProcessUnknownAudioFormat(t *testing.T) {
	cfg := testConfig(t)
	cfg.FFmpeg.AudioFormat = "opus"
	exec := &fakeExecutor{}

	staged := stagedFile(t, cfg.Paths.Temp, "v.mp4")
	_, err := newTestProcessor(t, cfg, exec, &fakeTranscriber{}).Process(context.Background(), Request{Path: staged})
	if !errors.Is(err, ErrExtractAudio) {
		t.Errorf("error = %v, want ErrExtractAudio", err)
	}
	if len(exec.calls) != 0 {
		t.Error("ffmpeg ran without a known encoder")
	}
}

func TestProcessCanceledWhileWaiting(t *testing.T) {
	cfg := testConfig(t)
	cfg.Performance.MaxConcurrent = 1

	release := make(chan struct{})
	started := make(chan struct{})
	tr := &fakeTranscriber{text: "ok"}
	tr.onRun = func(string) {
		close(started)
		<-release
	}
	p := newTestProcessor(t, cfg, &fakeExecutor{probeOut: `{"format":{"duration":"1"}}`}, tr)
	staged := stagedFile(t, cfg.Paths.Temp, "a.mp3")

	done := make(chan error, 1)
	go func() {
		_, err := p.Process(context.Background(), Request{Path: staged})
		done <- err
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Process(ctx, Request{Path: staged}); !errors.Is(err, context.Canceled) {
		t.Errorf("second Process() error = %v, want context.Canceled", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Errorf("first Process() error = %v", err)
	}
}

func TestProcessSameStemVideosConcurrently(t *testing.T) {
	cfg := testConfig(t)

	var wg sync.WaitGroup
	wg.Add(2)
	arrived := make(chan struct{})
	var once sync.Once
	tr := &fakeTranscriber{text: "ok"}
	tr.onRun = func(path string) {
		wg.Done()
		// Both calls are inside transcription before either finishes.
		once.Do(func() {
			go func() {
				wg.Wait()
				close(arrived)
			}()
		})
		<-arrived
		if _, err := os.Stat(path); err != nil {
			t.Errorf("extracted audio %s removed while in use: %v", path, err)
		}
	}
	p := newTestProcessor(t, cfg, &fakeExecutor{probeOut: `{"format":{"duration":"1"}}`}, tr)

	errs := make(chan error, 2)
	for _, name := range []string{"lecture.mp4", "lecture.mkv"} {
		staged := stagedFile(t, cfg.Paths.Temp, name)
		go func() {
			_, err := p.Process(context.Background(), Request{Path: staged, OriginalName: name})
			errs <- err
		}()
	}
	for range 2 {
		if err := <-errs; err != nil {
			t.Fatalf("Process() error = %v", err)
		}
	}

	if len(tr.paths) != 2 || tr.paths[0] == tr.paths[1] {
		t.Errorf("transcribed %v, want two distinct files", tr.paths)
	}
	for _, path := range tr.paths {
		if !isExtractedAudio(path, cfg.Paths.Temp, "lecture", "mp3") {
			t.Errorf("extracted audio %s", path)
		}
	}
}
