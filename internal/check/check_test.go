package check

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/smartencode/internal/config"
)

const sampleEncoders = `Encoders:
 V..... = Video
 A..... = Audio
 ------
 V....D libx264              libx264 H.264 / AVC / MPEG-4 AVC / MPEG-4 part 10 (codec h264)
 V....D libx265              libx265 H.265 / HEVC (codec hevc)
 A....D ac3                  ATSC A/52A (AC-3)
 A....D aac                  AAC (Advanced Audio Coding)
`

type recordLogger struct {
	lines []string
}

func (r *recordLogger) add(level, format string, args ...any) {
	r.lines = append(r.lines, level+" "+fmt.Sprintf(format, args...))
}

func (r *recordLogger) Info(f string, a ...any)    { r.add("INFO", f, a...) }
func (r *recordLogger) Success(f string, a ...any) { r.add("SUCCESS", f, a...) }
func (r *recordLogger) Warn(f string, a ...any)    { r.add("WARN", f, a...) }
func (r *recordLogger) Error(f string, a ...any)   { r.add("ERROR", f, a...) }
func (r *recordLogger) Debug(v bool, f string, a ...any) {
	if v {
		r.add("DEBUG", f, a...)
	}
}

func (r *recordLogger) String() string { return strings.Join(r.lines, "\n") }

// stubHost replaces the lookup and exec seams. Binaries in missing fail
// lookup; ffmpeg answers -encoders with sampleEncoders.
func stubHost(t *testing.T, missing ...string) {
	t.Helper()
	origLook, origOut := lookPath, output
	t.Cleanup(func() { lookPath, output = origLook, origOut })

	lookPath = func(name string) (string, error) {
		for _, m := range missing {
			if m == name {
				return "", errors.New("executable file not found")
			}
		}
		return "/usr/bin/" + name, nil
	}
	output = func(_ context.Context, name string, args ...string) ([]byte, error) {
		switch {
		case len(args) > 0 && args[0] == "-version":
			return []byte(name + " version 7.1\nbuilt with gcc"), nil
		case len(args) > 1 && args[1] == "-encoders":
			return []byte(sampleEncoders), nil
		case strings.Contains(strings.Join(args, " "), "libsvtav1"):
			return nil, errors.New("exit status 1")
		default:
			return nil, nil
		}
	}
}

func TestParseEncoders(t *testing.T) {
	got := ParseEncoders(sampleEncoders)
	assert.True(t, got["libx264"])
	assert.True(t, got["ac3"])
	assert.True(t, got["aac"])
	assert.False(t, got["V....."], "legend lines are skipped")
	assert.False(t, got["libsvtav1"])
	assert.Len(t, got, 4)
}

func TestParseEncoders_SeparatorHasOneField(t *testing.T) {
	out := "Encoders:\n V..... = Video\n ------\n V....D libx264  libx264 H.264\n A....D aac  AAC\n"
	got := ParseEncoders(out)
	assert.Equal(t, map[string]bool{"libx264": true, "aac": true}, got)
}

func TestCheckDeps(t *testing.T) {
	tests := []struct {
		name    string
		missing []string
		codec   config.Codec
		wantErr error
	}{
		{"all present", nil, config.CodecH264, nil},
		{"no ffprobe", []string{"ffprobe"}, config.CodecH264, ErrFFprobeNotFound},
		{"no ffmpeg", []string{"ffmpeg"}, config.CodecH264, ErrFFmpegNotFound},
		{"encoder missing", nil, config.CodecAV1, ErrEncoderMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubHost(t, tt.missing...)
			cfg := config.DefaultConfig()
			cfg.TargetCodec = tt.codec

			err := CheckDeps(context.Background(), &cfg)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckProbe_UsesConfiguredBinary(t *testing.T) {
	stubHost(t, "/opt/ffprobe")
	cfg := config.DefaultConfig()
	cfg.FFprobePath = "/opt/ffprobe"

	err := CheckProbe(&cfg)
	require.ErrorIs(t, err, ErrFFprobeNotFound)
	assert.Contains(t, err.Error(), "/opt/ffprobe")
}

func TestRunCheck(t *testing.T) {
	stubHost(t)
	cfg := config.DefaultConfig()
	var log recordLogger

	RunCheck(context.Background(), &cfg, &log)

	out := log.String()
	assert.Contains(t, out, "SUCCESS ffmpeg: ffmpeg version 7.1")
	assert.Contains(t, out, "SUCCESS Encoder libx264: available")
	assert.Contains(t, out, "SUCCESS libx264 works")
}

func TestRunCheck_ReportsFailures(t *testing.T) {
	stubHost(t)
	cfg := config.DefaultConfig()
	cfg.TargetCodec = config.CodecAV1
	var log recordLogger

	RunCheck(context.Background(), &cfg, &log)

	out := log.String()
	assert.Contains(t, out, "ERROR Encoder libsvtav1: missing")
	assert.Contains(t, out, "ERROR libsvtav1 test encode failed")
}

func TestRunCheck_NoFFmpeg(t *testing.T) {
	stubHost(t, "ffmpeg")
	cfg := config.DefaultConfig()
	var log recordLogger

	RunCheck(context.Background(), &cfg, &log)
	assert.Contains(t, log.String(), "ERROR ffmpeg not found (ffmpeg)")
	assert.NotContains(t, log.String(), "Encoder")
}
