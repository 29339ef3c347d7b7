package probe

import "strings"

// hdrTransfers are the color_transfer values that mark PQ (SMPTE ST 2084)
// and HLG (ARIB STD-B67) content.
var hdrTransfers = map[string]bool{
	"smpte2084":    true,
	"arib-std-b67": true,
}

// IsHDR reports whether the video stream carries an HDR transfer
// characteristic.
func (s Stream) IsHDR() bool {
	return hdrTransfers[strings.ToLower(strings.TrimSpace(s.ColorTransfer))]
}

// IsHighResolution reports whether the video stream exceeds 1920x1080 in
// either dimension.
func (s Stream) IsHighResolution() bool {
	return s.Width > 1920 || s.Height > 1080
}

// HDRType returns "hdr" or "sdr" for display.
func (s Stream) HDRType() string {
	if s.IsHDR() {
		return "hdr"
	}
	return "sdr"
}
