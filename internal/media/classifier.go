package media

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/study-scribe/internal/model"
)

// Classifier maps filenames to a media kind using two disjoint extension sets.
type Classifier struct {
	video map[string]struct{}
	audio map[string]struct{}

	videoList []string
	audioList []string
}

// NewClassifier builds a Classifier. Extensions are matched case-insensitively
// and must carry a leading dot. Every audio extension needs an entry in the
// mime table, otherwise it could be accepted but never transcribed.
func NewClassifier(videoExts, audioExts []string) (*Classifier, error) {
	c := &Classifier{
		video: make(map[string]struct{}, len(videoExts)),
		audio: make(map[string]struct{}, len(audioExts)),
	}

	for _, e := range videoExts {
		e = strings.ToLower(e)
		c.video[e] = struct{}{}
		c.videoList = append(c.videoList, e)
	}
	for _, e := range audioExts {
		e = strings.ToLower(e)
		if _, dup := c.video[e]; dup {
			return nil, fmt.Errorf("extension %s is both video and audio", e)
		}
		if _, ok := audioMIMETypes[e]; !ok {
			return nil, fmt.Errorf("audio extension %s has no known mime type", e)
		}
		c.audio[e] = struct{}{}
		c.audioList = append(c.audioList, e)
	}

	return c, nil
}

// Classify returns the media kind of filename. It never fails; anything
// outside both sets, including a missing extension, is unsupported.
func (c *Classifier) Classify(filename string) model.MediaKind {
	ext := Ext(filename)
	if _, ok := c.video[ext]; ok {
		return model.MediaVideo
	}
	if _, ok := c.audio[ext]; ok {
		return model.MediaAudio
	}
	return model.MediaUnsupported
}

// VideoExtensions returns the configured video extensions in config order.
func (c *Classifier) VideoExtensions() []string {
	return append([]string(nil), c.videoList...)
}

// AudioExtensions returns the configured audio extensions in config order.
func (c *Classifier) AudioExtensions() []string {
	return append([]string(nil), c.audioList...)
}

// Ext returns the lower-cased extension of filename including the dot.
func Ext(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}
