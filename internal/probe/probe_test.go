package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Realistic ffprobe JSON for a Matroska file with:
//   - 1 attached pic (cover art, must not count as the video stream)
//   - 1 HEVC HDR video stream (3840x2160, smpte2084)
//   - 2 audio streams (eac3 5.1 eng, aac stereo jpn)
//   - 1 ASS subtitle stream
const sampleHDR = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "mjpeg",
      "codec_type": "video",
      "width": 600,
      "height": 900,
      "disposition": { "default": 0, "attached_pic": 1 },
      "tags": { "comment": "Cover (front)" }
    },
    {
      "index": 1,
      "codec_name": "hevc",
      "codec_type": "video",
      "width": 3840,
      "height": 2160,
      "color_transfer": "smpte2084",
      "disposition": { "default": 1, "attached_pic": 0 },
      "tags": {}
    },
    {
      "index": 2,
      "codec_name": "eac3",
      "codec_type": "audio",
      "channels": 6,
      "disposition": { "default": 1 },
      "tags": { "language": "eng" }
    },
    {
      "index": 3,
      "codec_name": "aac",
      "codec_type": "audio",
      "channels": 2,
      "disposition": { "default": 0 },
      "tags": { "LANGUAGE": "jpn" }
    },
    {
      "index": 4,
      "codec_name": "ass",
      "codec_type": "subtitle",
      "tags": { "language": "eng" }
    }
  ],
  "format": {
    "filename": "/media/test/Blade.Runner.2049.2017.mkv",
    "format_name": "matroska,webm",
    "duration": "9837.123000",
    "size": "61234567890",
    "bit_rate": "49800000",
    "tags": { "DATE": "2017-10-06" }
  }
}`

const sampleMP4 = `{
  "streams": [
    { "index": 0, "codec_name": "h264", "codec_type": "video", "width": 1920, "height": 800 },
    { "index": 1, "codec_name": "ac3", "codec_type": "audio", "channels": 6 },
    { "index": 2, "codec_name": "aac", "codec_type": "audio", "channels": 2 }
  ],
  "format": {
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2",
    "duration": "5400.0",
    "size": "2147483648"
  }
}`

func TestParseJSON_HDR(t *testing.T) {
	pr, err := ParseJSON([]byte(sampleHDR))
	require.NoError(t, err)

	assert.Equal(t, "matroska", pr.Container)
	assert.InDelta(t, 9837.123, pr.Format.Duration, 0.001)
	assert.Equal(t, int64(61234567890), pr.Format.Size)
	require.Len(t, pr.Streams, 5)

	videos := pr.VideoStreams()
	require.Len(t, videos, 1, "attached pic must be excluded")
	v := videos[0]
	assert.Equal(t, 1, v.Index)
	assert.Equal(t, "hevc", v.Codec)
	assert.True(t, v.IsHDR())
	assert.True(t, v.IsHighResolution())
	assert.Equal(t, "3840x2160", v.Resolution())

	audio := pr.AudioStreams()
	require.Len(t, audio, 2)
	assert.Equal(t, "eng", audio[0].Language)
	assert.Equal(t, 6, audio[0].Channels)
	assert.Equal(t, "jpn", audio[1].Language, "upper-case tag keys are honored")

	subs := pr.SubtitleStreams()
	require.Len(t, subs, 1)
	assert.Equal(t, "ass", subs[0].Codec)
}

func TestParseJSON_MP4FormatList(t *testing.T) {
	pr, err := ParseJSON([]byte(sampleMP4))
	require.NoError(t, err)
	assert.Equal(t, "mp4", pr.Container)
	assert.False(t, pr.VideoStreams()[0].IsHDR())
	assert.False(t, pr.VideoStreams()[0].IsHighResolution())
}

func TestParseJSON_MissingStreams(t *testing.T) {
	pr, err := ParseJSON([]byte(`{"format": {"format_name": "mp4"}}`))
	require.NoError(t, err)
	assert.Nil(t, pr.Streams, "absent streams key means missing probe data")

	pr, err = ParseJSON([]byte(`{"streams": [], "format": {}}`))
	require.NoError(t, err)
	assert.NotNil(t, pr.Streams)
	assert.Empty(t, pr.Streams)
}

func TestParseJSON_Invalid(t *testing.T) {
	_, err := ParseJSON([]byte(`{not json`))
	assert.Error(t, err)
}

func TestNewFileInfo(t *testing.T) {
	pr, err := ParseJSON([]byte(sampleHDR))
	require.NoError(t, err)

	fi := NewFileInfo("/media/movies/Blade.Runner.2049.2017.mkv", 61234567890, pr)
	assert.Equal(t, "Blade.Runner.2049.2017.mkv", fi.Name)
	assert.Equal(t, 2017, fi.Year, "year comes from the DATE tag")
	assert.InDelta(t, 9837.123, fi.Duration, 0.001)

	fi = NewFileInfo("/x/y.mkv", 1, nil)
	assert.Zero(t, fi.Year)
	assert.Zero(t, fi.Duration)
}

func TestNormalizeContainer(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{".MP4", "mp4"},
		{"mkv", "mkv"},
		{"matroska,webm", "matroska"},
		{"mov,mp4,m4a,3gp,3g2,mj2", "mp4"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeContainer(tt.in), "input %q", tt.in)
	}
	assert.Equal(t, "mkv", ContainerFromPath("/a/b/Film.MKV"))
	assert.Equal(t, "", ContainerFromPath("/a/b/noext"))
}

func TestIsHDR(t *testing.T) {
	tests := []struct {
		transfer string
		want     bool
	}{
		{"smpte2084", true},
		{"arib-std-b67", true},
		{"ARIB-STD-B67", true},
		{"bt709", false},
		{"", false},
	}
	for _, tt := range tests {
		s := Stream{Kind: KindVideo, ColorTransfer: tt.transfer}
		assert.Equal(t, tt.want, s.IsHDR(), "transfer %q", tt.transfer)
	}
}

func TestIsHighResolution(t *testing.T) {
	assert.False(t, Stream{Width: 1920, Height: 1080}.IsHighResolution())
	assert.True(t, Stream{Width: 1921, Height: 800}.IsHighResolution())
	assert.True(t, Stream{Width: 1440, Height: 1440}.IsHighResolution())
}
