package config

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Upload      UploadConfig      `yaml:"upload"`
	LLM         LLMConfig         `yaml:"llm"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type ServerConfig struct {
	Addr       string        `yaml:"addr"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type UploadConfig struct {
	MaxFileSizeMB int      `yaml:"max_file_size_mb" validate:"gte=1"`
	VideoFormats  []string `yaml:"video_formats"`
	AudioFormats  []string `yaml:"audio_formats"`
}

// LLMConfig selects the remote AI backend. API keys are never read from yaml.
type LLMConfig struct {
	Provider       string        `yaml:"provider"`
	Model          string        `yaml:"model"`
	MaxAttempts    int           `yaml:"max_attempts" validate:"gte=1,lte=10"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
	APIKeys        []string      `yaml:"-"`
}

type FFmpegConfig struct {
	BinaryPath      string `yaml:"binary_path"`
	ProbeBinaryPath string `yaml:"probe_binary_path"`
	AudioFormat     string `yaml:"audio_format"`
	SampleRate      int    `yaml:"sample_rate" validate:"gte=8000,lte=192000"`
	Channels        int    `yaml:"channels" validate:"gte=1,lte=8"`
	AudioBitrate    string `yaml:"audio_bitrate" validate:"required"`
}

type PathsConfig struct {
	Temp   string `yaml:"temp"`
	Output string `yaml:"output"`
	Inbox  string `yaml:"inbox"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" validate:"gte=1,lte=64"`
}

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

var (
	defaultVideoFormats = []string{".mp4", ".avi", ".mov", ".mkv", ".wmv", ".flv"}
	defaultAudioFormats = []string{".mp3", ".wav", ".m4a", ".aac", ".ogg", ".flac"}

	// formats the extractor knows an encoder for
	supportedAudioFormats = map[string]bool{
		"mp3": true, "wav": true, "flac": true, "ogg": true, "aac": true, "m4a": true,
	}
)

// MaxFileSizeBytes returns the upload limit in bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.Upload.MaxFileSizeMB) * 1024 * 1024
}

// Validate fills defaults and rejects configurations the pipeline cannot run with.
// The API credential check lives here so a missing key fails at startup.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8501"
	}
	if c.Server.SessionTTL == 0 {
		c.Server.SessionTTL = 12 * time.Hour
	}

	if c.Upload.MaxFileSizeMB == 0 {
		c.Upload.MaxFileSizeMB = 500
	}
	if len(c.Upload.VideoFormats) == 0 {
		c.Upload.VideoFormats = append([]string(nil), defaultVideoFormats...)
	}
	if len(c.Upload.AudioFormats) == 0 {
		c.Upload.AudioFormats = append([]string(nil), defaultAudioFormats...)
	}
	c.Upload.VideoFormats = normalizeExts(c.Upload.VideoFormats)
	c.Upload.AudioFormats = normalizeExts(c.Upload.AudioFormats)
	for _, v := range c.Upload.VideoFormats {
		for _, a := range c.Upload.AudioFormats {
			if v == a {
				return fmt.Errorf("extension %s is listed as both video and audio", v)
			}
		}
	}

	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderGemini
	}
	c.LLM.Provider = strings.ToLower(c.LLM.Provider)
	switch c.LLM.Provider {
	case ProviderGemini:
		if c.LLM.Model == "" {
			c.LLM.Model = "gemini-flash-latest"
		}
	case ProviderOpenAI:
		if c.LLM.Model == "" {
			c.LLM.Model = "gpt-4o-mini"
		}
	default:
		return fmt.Errorf("llm.provider %q is not supported (gemini, openai)", c.LLM.Provider)
	}
	if len(c.LLM.APIKeys) == 0 {
		return fmt.Errorf("%s is required", APIKeyEnv(c.LLM.Provider))
	}
	if c.LLM.MaxAttempts == 0 {
		c.LLM.MaxAttempts = 3
	}
	if c.LLM.InitialBackoff == 0 {
		c.LLM.InitialBackoff = time.Second
	}
	if c.LLM.MaxBackoff == 0 {
		c.LLM.MaxBackoff = 20 * time.Second
	}

	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.ProbeBinaryPath == "" {
		c.FFmpeg.ProbeBinaryPath = "ffprobe"
	}
	if c.FFmpeg.AudioFormat == "" {
		c.FFmpeg.AudioFormat = "mp3"
	}
	c.FFmpeg.AudioFormat = strings.TrimPrefix(strings.ToLower(c.FFmpeg.AudioFormat), ".")
	if !supportedAudioFormats[c.FFmpeg.AudioFormat] {
		return fmt.Errorf("ffmpeg.audio_format %q is not supported", c.FFmpeg.AudioFormat)
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 44100
	}
	if c.FFmpeg.Channels == 0 {
		c.FFmpeg.Channels = 2
	}
	if c.FFmpeg.AudioBitrate == "" {
		c.FFmpeg.AudioBitrate = "192k"
	}

	if c.Paths.Temp == "" {
		c.Paths.Temp = "temp"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "outputs"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Format = strings.ToLower(c.Logging.Format)

	return checkRanges(c)
}

// APIKeyEnv names the environment variable holding the provider's credential.
func APIKeyEnv(provider string) string {
	if provider == ProviderOpenAI {
		return "OPENAI_API_KEY"
	}
	return "GOOGLE_API_KEY"
}

func normalizeExts(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}
