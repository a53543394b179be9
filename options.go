package audiocodec

// Option configures decoding and inspection.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	report, err := audiocodec.InspectFile("song.mp3",
//	    audiocodec.WithRestrictions(),
//	    audiocodec.WithMaxSyncSearch(64*1024),
//	)
type Option func(*options)

// options holds configuration for decoding.
type options struct {
	restrictions   bool  // Decode ID3v2.4 tag restrictions
	maxSyncSearch  int64 // Maximum bytes scanned for the first frame (0 = no limit)
	strictParsing  bool  // Fail on any warning
	ignoreWarnings bool  // Suppress all warnings
}

// applyOptions returns the default configuration with opts applied.
func applyOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithRestrictions enables decoding of the ID3v2.4 extended header tag
// restrictions record.
//
// Without it the restrictions flag is ignored and ID3v2Header.Flags.Restrictions
// is always nil.
func WithRestrictions() Option {
	return func(o *options) {
		o.restrictions = true
	}
}

// WithMaxSyncSearch bounds the number of bytes scanned for the first MPEG
// frame. Use it for untrusted input; by default the scan runs to the end
// of the stream.
//
// Example:
//
//	// Give up after 1 MB of junk
//	report, err := audiocodec.InspectFile("upload.mp3",
//	    audiocodec.WithMaxSyncSearch(1<<20),
//	)
func WithMaxSyncSearch(n int64) Option {
	return func(o *options) {
		o.maxSyncSearch = n
	}
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default, inspection continues when it encounters issues like a
// malformed ID3v2 header ahead of valid frames or a bad Xing header,
// returning warnings alongside the decoded structures.
func WithStrictParsing() Option {
	return func(o *options) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings suppresses all warnings.
//
// Example:
//
//	report, err := audiocodec.InspectFile("song.m4a", audiocodec.WithIgnoreWarnings())
//	// report.Warnings() will always be empty
func WithIgnoreWarnings() Option {
	return func(o *options) {
		o.ignoreWarnings = true
	}
}
