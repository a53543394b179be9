package main

import (
	"os"

	"github.com/dhowden/tag"
	"github.com/pkg/errors"
)

// tagInfo is the handful of tag fields printed with -tags.
type tagInfo struct {
	Format   string `yaml:"format"`
	FileType string `yaml:"file-type"`
	Title    string `yaml:"title,omitempty"`
	Artist   string `yaml:"artist,omitempty"`
	Album    string `yaml:"album,omitempty"`
	Year     int    `yaml:"year,omitempty"`
}

func readTags(path string) (*tagInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open file")
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, errors.Wrap(err, "read tags")
	}

	return &tagInfo{
		Format:   string(m.Format()),
		FileType: string(m.FileType()),
		Title:    m.Title(),
		Artist:   m.Artist(),
		Album:    m.Album(),
		Year:     m.Year(),
	}, nil
}
