package audiocodec

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/simonhull/audiocodec/internal/id3v2"
	"github.com/simonhull/audiocodec/internal/mp4"
	"github.com/simonhull/audiocodec/internal/mpeg"
)

// id3v1Size is the size of a trailing ID3v1 tag.
const id3v1Size = 128

// maxAtomDepth bounds container nesting during InspectMP4.
const maxAtomDepth = 32

// MP3Report holds the structures decoded from an MPEG audio stream.
type MP3Report struct {
	// ID3v2 is nil if the stream has no (valid) ID3v2 tag.
	ID3v2 *ID3v2Header

	// FirstFrame is the first decodable frame after the tag.
	FirstFrame MPEGFrame

	// VBR is nil if the first frame has no Xing/Info/VBRI header.
	VBR *VBRHeader

	Properties MPEGProperties

	// HasID3v1 reports a trailing 128-byte ID3v1 tag, which is excluded
	// from the audio length.
	HasID3v1 bool

	// Warnings encountered during inspection (non-fatal issues)
	Warnings []Warning
}

// AtomNode is an atom found while walking an MP4 stream.
type AtomNode struct {
	Info  AtomInfo
	Depth int // 0 for top-level atoms
}

// MP4Report holds the atom headers of an MP4 stream in depth-first order.
type MP4Report struct {
	Atoms []AtomNode

	// Warnings encountered during inspection (non-fatal issues)
	Warnings []Warning
}

// InspectMP3 decodes the ID3v2 header, first frame, VBR header and stream
// properties of an MPEG audio stream of the given size.
//
// A missing ID3v2 tag is not reported. A malformed one, or a malformed VBR
// header, becomes a warning; frames are then searched from the start of
// the stream and duration falls back to the frame bitrate.
func InspectMP3(r io.ReadSeeker, size int64, opts ...Option) (*MP3Report, error) {
	o := applyOptions(opts)
	report := &MP3Report{}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "seek to start")
	}

	var audioStart int64
	header, err := id3v2.ReadHeader(r, id3v2.ReadOptions{Restrictions: o.restrictions})
	switch {
	case err == nil:
		report.ID3v2 = &header
		audioStart = header.TotalSize()
	case isFakeTag(err):
		// No tag
	default:
		report.Warnings = append(report.Warnings, Warning{
			Stage:   "id3v2",
			Message: err.Error(),
		})
	}

	if audioStart > size {
		report.Warnings = append(report.Warnings, Warning{
			Stage:   "id3v2",
			Message: fmt.Sprintf("tag size %d exceeds stream size %d", audioStart, size),
		})
		report.ID3v2 = nil
		audioStart = 0
	}

	if _, err := r.Seek(audioStart, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "seek to audio")
	}

	frame, err := mpeg.FindFirstFrame(r, mpeg.FindOptions{MaxSearch: o.maxSyncSearch})
	if err != nil {
		return nil, errors.Wrap(err, "locate first MPEG frame")
	}
	report.FirstFrame = frame

	vbr, err := mpeg.ReadVBRHeader(r, frame)
	if err != nil {
		report.Warnings = append(report.Warnings, Warning{
			Stage:   "vbr",
			Message: err.Error(),
			Offset:  frame.Offset + int64(frame.Header.DataStart),
		})
	}
	report.VBR = vbr

	audioEnd := size
	hasID3v1, err := detectID3v1(r, size)
	if err != nil {
		return nil, errors.Wrap(err, "check ID3v1 tag")
	}
	if hasID3v1 && size-id3v1Size >= frame.Offset {
		report.HasID3v1 = true
		audioEnd -= id3v1Size
	}

	props, err := mpeg.ReadProperties(frame, vbr, audioEnd-frame.Offset, size)
	if err != nil {
		return nil, errors.Wrap(err, "MPEG properties")
	}
	report.Properties = props

	if err := finishWarnings(&report.Warnings, o); err != nil {
		return nil, err
	}

	return report, nil
}

// InspectMP4 walks the atom tree of an MP4 stream depth first, descending
// into known containers.
//
// A malformed top-level atom after the first is a warning, as is any
// malformed child; the walk skips the rest of the affected container.
func InspectMP4(r io.ReadSeeker, opts ...Option) (*MP4Report, error) {
	o := applyOptions(opts)
	report := &MP4Report{}

	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, errors.Wrap(err, "measure stream")
	}

	for info, err := range mp4.Atoms(r, 0, uint64(size)) {
		if err != nil {
			if len(report.Atoms) == 0 {
				return nil, errors.Wrap(err, "read first atom")
			}
			report.Warnings = append(report.Warnings, atomWarning(err))
			break
		}

		if len(report.Atoms) == 0 && info.Ident.Fourcc != mp4.FourCC("ftyp").Fourcc {
			report.Warnings = append(report.Warnings, Warning{
				Stage:   "atoms",
				Message: fmt.Sprintf("stream starts with %q instead of \"ftyp\"", info.Ident),
			})
		}

		report.Atoms = append(report.Atoms, AtomNode{Info: info})
		if info.IsContainer() {
			walkAtoms(r, info, 1, report)
		}
	}

	if err := finishWarnings(&report.Warnings, o); err != nil {
		return nil, err
	}

	return report, nil
}

// walkAtoms appends the descendants of parent to report.
func walkAtoms(r io.ReadSeeker, parent AtomInfo, depth int, report *MP4Report) {
	if depth > maxAtomDepth {
		report.Warnings = append(report.Warnings, Warning{
			Stage:   "atoms",
			Message: fmt.Sprintf("containers nested deeper than %d, skipping children", maxAtomDepth),
			Offset:  int64(parent.Start),
		})
		return
	}

	for child, err := range mp4.Children(r, parent) {
		if err != nil {
			report.Warnings = append(report.Warnings, atomWarning(err))
			return
		}

		report.Atoms = append(report.Atoms, AtomNode{Info: child, Depth: depth})
		if child.IsContainer() {
			walkAtoms(r, child, depth+1, report)
		}
	}
}

func atomWarning(err error) Warning {
	w := Warning{Stage: "atoms", Message: err.Error()}
	var bad *BadAtomError
	if errors.As(err, &bad) {
		w.Offset = bad.Offset
	}
	return w
}

// finishWarnings applies the strict and ignore-warnings options.
func finishWarnings(warnings *[]Warning, o *options) error {
	if o.strictParsing && len(*warnings) > 0 {
		return errors.Errorf("strict parsing failed: %s", (*warnings)[0])
	}
	if o.ignoreWarnings {
		*warnings = nil
	}
	return nil
}

func isFakeTag(err error) bool {
	var fake *FakeTagError
	return errors.As(err, &fake)
}

// detectID3v1 reports whether the last 128 bytes of the stream are an
// ID3v1 tag.
func detectID3v1(r io.ReadSeeker, size int64) (bool, error) {
	if size < id3v1Size {
		return false, nil
	}

	if _, err := r.Seek(size-id3v1Size, io.SeekStart); err != nil {
		return false, err
	}

	var magic [3]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return false, err
	}

	return string(magic[:]) == "TAG", nil
}
