package mpeg

// Bitrates in kbps, indexed by [versionClass][layerIndex][bitrate index].
var bitrates = [2][3][16]uint32{
	{
		{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448, 0},
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384, 0},
		{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0},
	},
	{
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256, 0},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
	},
}

// Sample rates in Hz, indexed by [sampleRateRow][sample rate index].
// Index 3 is reserved and never looked up.
var sampleRates = [3][3]uint32{
	{44100, 48000, 32000},
	{22050, 24000, 16000},
	{11025, 12000, 8000},
}

// Side information sizes in bytes, indexed by [versionClass][channelModeIndex].
var sideInformationSizes = [2][4]uint32{
	{32, 32, 32, 17},
	{17, 17, 17, 9},
}

// Samples per frame, indexed by [layerIndex][versionClass].
var samplesPerFrame = [3][2]uint16{
	{384, 384},
	{1152, 1152},
	{1152, 576},
}

// Padding slot size in bytes, indexed by layerIndex.
var paddingSizes = [3]uint32{4, 1, 1}

// versionClass groups MPEG-2 and MPEG-2.5, which share bitrate, side
// information and sample count tables.
func versionClass(v Version) int {
	if v == Version1 {
		return 0
	}
	return 1
}

func sampleRateRow(v Version) int {
	switch v {
	case Version1:
		return 0
	case Version2:
		return 1
	default:
		return 2
	}
}

func layerIndex(l Layer) int {
	switch l {
	case Layer1:
		return 0
	case Layer2:
		return 1
	default:
		return 2
	}
}

func channelModeIndex(m ChannelMode) int {
	switch m {
	case Stereo:
		return 0
	case JointStereo:
		return 1
	case DualChannel:
		return 2
	default:
		return 3
	}
}
