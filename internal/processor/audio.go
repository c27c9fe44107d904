package processor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ErrExtractAudio marks a failed ffmpeg run. The wrapped *executor.ExitError
// carries the tool's stderr.
var ErrExtractAudio = errors.New("extract audio")

// audioCodecs maps an output container to the ffmpeg encoder that writes it.
var audioCodecs = map[string]string{
	"mp3":  "libmp3lame",
	"wav":  "pcm_s16le",
	"flac": "flac",
	"ogg":  "libvorbis",
	"aac":  "aac",
	"m4a":  "aac",
}

// audioPathFor returns <temp>/<stem>_audio_<id8>.<format> for a video. The id
// keeps concurrent extractions of same-stem videos apart.
func (p *implProcessor) audioPathFor(videoPath string) string {
	stem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	id := uuid.NewString()[:8]
	return filepath.Join(p.tempDir, stem+"_audio_"+id+"."+p.ffmpeg.AudioFormat)
}

// extractAudio writes the audio track of videoPath to audioPath, overwriting
// any previous file. A failed run is not retried.
func (p *implProcessor) extractAudio(ctx context.Context, videoPath, audioPath string) error {
	codec, ok := audioCodecs[p.ffmpeg.AudioFormat]
	if !ok {
		return fmt.Errorf("%w: no encoder for format %q", ErrExtractAudio, p.ffmpeg.AudioFormat)
	}

	p.logger.Info(ctx, "Extracting audio: %s -> %s", filepath.Base(videoPath), filepath.Base(audioPath))

	args := []string{
		"-i", videoPath,
		"-vn",
		"-acodec", codec,
		"-ar", strconv.Itoa(p.ffmpeg.SampleRate),
		"-ac", strconv.Itoa(p.ffmpeg.Channels),
		"-b:a", p.ffmpeg.AudioBitrate,
		"-y",
		audioPath,
	}

	if _, err := p.executor.Execute(ctx, p.ffmpeg.BinaryPath, args...); err != nil {
		p.logger.Error(ctx, "FFmpeg error: %v", err)
		return fmt.Errorf("%w: %w", ErrExtractAudio, err)
	}

	p.logger.Info(ctx, "Audio extracted successfully: %s", audioPath)
	return nil
}
