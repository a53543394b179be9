package main

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/simonhull/audiocodec"
)

type record struct {
	Path     string       `yaml:"path"`
	Format   string       `yaml:"format"`
	Size     int64        `yaml:"size,omitempty"`
	Error    string       `yaml:"error,omitempty"`
	MP3      *mp3Record   `yaml:"mp3,omitempty"`
	Atoms    []atomRecord `yaml:"atoms,omitempty"`
	Tags     *tagInfo     `yaml:"tags,omitempty"`
	Warnings []string     `yaml:"warnings,omitempty"`
}

type mp3Record struct {
	ID3v2          string `yaml:"id3v2,omitempty"`
	FirstFrame     int64  `yaml:"first-frame"`
	Version        string `yaml:"version"`
	Layer          string `yaml:"layer"`
	ChannelMode    string `yaml:"channel-mode"`
	SampleRate     uint32 `yaml:"sample-rate"`
	Channels       uint8  `yaml:"channels"`
	VBR            string `yaml:"vbr,omitempty"`
	Duration       string `yaml:"duration"`
	AudioBitrate   uint32 `yaml:"audio-bitrate"`
	OverallBitrate uint32 `yaml:"overall-bitrate"`
	ID3v1          bool   `yaml:"id3v1,omitempty"`
}

type atomRecord struct {
	Ident  string `yaml:"ident"`
	Depth  int    `yaml:"depth"`
	Offset uint64 `yaml:"offset"`
	Size   uint64 `yaml:"size"`
}

func newRecord(r result) record {
	rec := record{Path: r.path, Format: r.format.String(), Tags: r.tags}
	if r.err != nil {
		rec.Error = r.err.Error()
		return rec
	}

	rec.Size = r.report.Size
	for _, w := range r.report.Warnings() {
		rec.Warnings = append(rec.Warnings, w.String())
	}

	if mp3 := r.report.MP3; mp3 != nil {
		p := mp3.Properties
		rec.MP3 = &mp3Record{
			FirstFrame:     mp3.FirstFrame.Offset,
			Version:        p.Version.String(),
			Layer:          p.Layer.String(),
			ChannelMode:    p.ChannelMode.String(),
			SampleRate:     p.SampleRate,
			Channels:       p.Channels,
			Duration:       p.Duration.String(),
			AudioBitrate:   p.AudioBitrate,
			OverallBitrate: p.OverallBitrate,
			ID3v1:          mp3.HasID3v1,
		}
		if mp3.ID3v2 != nil {
			rec.MP3.ID3v2 = describeID3v2(mp3.ID3v2)
		}
		if mp3.VBR != nil {
			rec.MP3.VBR = describeVBR(mp3.VBR)
		}
	}

	if mp4 := r.report.MP4; mp4 != nil {
		for _, n := range mp4.Atoms {
			rec.Atoms = append(rec.Atoms, atomRecord{
				Ident:  n.Info.Ident.String(),
				Depth:  n.Depth,
				Offset: n.Info.Start,
				Size:   n.Info.Len,
			})
		}
	}

	return rec
}

func describeID3v2(h *audiocodec.ID3v2Header) string {
	return fmt.Sprintf("%s.%d, %d bytes", h.Version, h.Revision, h.TotalSize())
}

func describeVBR(v *audiocodec.VBRHeader) string {
	return fmt.Sprintf("%s, %d frames, %d bytes", v.Kind, v.Frames, v.Size)
}

func writeYAML(w io.Writer, records []record) error {
	out, err := yaml.Marshal(records)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// writeText prints one block per file, atoms indented by depth.
func writeText(w io.Writer, rec record) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s: %s", rec.Path, rec.Format)
	if rec.Error != "" {
		fmt.Fprintf(&sb, ", error: %s\n", rec.Error)
		_, err := io.WriteString(w, sb.String())
		return err
	}
	fmt.Fprintf(&sb, ", %d bytes\n", rec.Size)

	if m := rec.MP3; m != nil {
		if m.ID3v2 != "" {
			fmt.Fprintf(&sb, "  id3v2: %s\n", m.ID3v2)
		}
		fmt.Fprintf(&sb, "  frame: offset %d, %s %s, %s, %d Hz\n",
			m.FirstFrame, m.Version, m.Layer, m.ChannelMode, m.SampleRate)
		if m.VBR != "" {
			fmt.Fprintf(&sb, "  vbr: %s\n", m.VBR)
		}
		fmt.Fprintf(&sb, "  duration: %s, %d kbps (audio %d kbps)\n", m.Duration, m.OverallBitrate, m.AudioBitrate)
		if m.ID3v1 {
			sb.WriteString("  id3v1: present\n")
		}
	}

	for _, a := range rec.Atoms {
		fmt.Fprintf(&sb, "  %s%s (size: %d, offset: %d)\n", strings.Repeat("  ", a.Depth), a.Ident, a.Size, a.Offset)
	}

	if t := rec.Tags; t != nil {
		fmt.Fprintf(&sb, "  tags: %s %q by %q on %q\n", t.Format, t.Title, t.Artist, t.Album)
	}

	for _, warning := range rec.Warnings {
		fmt.Fprintf(&sb, "  warning: %s\n", warning)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
