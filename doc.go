// Package audiocodec decodes and encodes the low-level binary structures
// audio files carry their tag and stream information in.
//
// Four codecs make up the core:
//
//   - ID3v2 tag headers, their synchsafe integers, the optional extended
//     header and the ID3v2.4 tag restrictions record
//   - MPEG audio frame headers and the frame sync scanner
//   - Xing, Info and VBRI headers embedded in the first MPEG frame
//   - MP4 atom headers, including freeform "----" identifiers
//
// Every decoder tolerates truncated and malformed input: failures are
// typed errors (see CorruptedFileError, BadAtomError, IOError), never
// panics. Encoders reproduce the decoded layout byte for byte.
//
// # Quick Start
//
// Decoding a single structure:
//
//	header, err := audiocodec.ReadID3v2Header(f, audiocodec.WithRestrictions())
//	if err != nil {
//		return err
//	}
//	fmt.Println(header.Version, header.Size)
//
// Inspecting a whole file:
//
//	report, err := audiocodec.InspectFile("song.mp3")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%s, %d Hz, %s\n",
//		report.MP3.Properties.Layer,
//		report.MP3.Properties.SampleRate,
//		report.MP3.Properties.Duration)
//
// # Streams
//
// Decoders read from caller-supplied cursors and never buffer ahead of
// them; readers are left positioned after the last byte consumed. A
// cursor must not be shared between concurrent calls. Independent files
// can be inspected in parallel, see InspectMany.
//
// The frame sync scan has no limit of its own. For untrusted input use
// WithMaxSyncSearch.
//
// # Warnings
//
// Inspect functions report non-fatal issues, such as a malformed ID3v2
// header ahead of valid frames, as Warning values. WithStrictParsing turns
// the first warning into an error; WithIgnoreWarnings discards them.
package audiocodec
