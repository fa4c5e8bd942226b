package config

import (
	"path/filepath"
	"strings"
)

const defaultSaveFolder = "./output"

// StorageConfig describes where job outcomes and result files are written.
type StorageConfig struct {
	// SaveFolder is the root output directory. Each UID gets its own subdirectory.
	SaveFolder string `env:"SAVE_FOLDER" envDefault:"./output"`

	// SampleImagePath points at the image copied for every generated object.
	// When empty or unreadable a generated placeholder image is used instead.
	SampleImagePath string `env:"SAMPLE_IMAGE_PATH" envDefault:"sample_image.jpg"`

	// ObjectsURLPrefix is the public path under which result files are served.
	ObjectsURLPrefix string `env:"OBJECTS_URL_PREFIX" envDefault:"/objects"`
}

// Sanitize applies guardrails to storage configuration values.
func (s *StorageConfig) Sanitize() {
	s.SaveFolder = strings.TrimSpace(s.SaveFolder)
	if s.SaveFolder == "" {
		s.SaveFolder = defaultSaveFolder
	}
	s.SaveFolder = filepath.Clean(s.SaveFolder)

	s.SampleImagePath = strings.TrimSpace(s.SampleImagePath)

	prefix := strings.Trim(strings.TrimSpace(s.ObjectsURLPrefix), "/")
	if prefix == "" {
		prefix = "objects"
	}
	s.ObjectsURLPrefix = "/" + prefix
}
