package media

// audioMIMETypes lists the audio containers the transcription backend accepts.
var audioMIMETypes = map[string]string{
	".mp3":  "audio/mp3",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
	".aiff": "audio/aiff",
}

// MimeType returns the audio mime type for filename's extension.
func MimeType(filename string) (string, bool) {
	m, ok := audioMIMETypes[Ext(filename)]
	return m, ok
}
