// Package check provides system diagnostics (the check command) and
// pre-run dependency validation for ffprobe, ffmpeg, and the encoders a
// configuration would emit.
package check

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/backmassage/smartencode/internal/config"
	"github.com/backmassage/smartencode/internal/planner"
)

// Sentinel errors returned when a required tool or encoder is missing.
var (
	ErrFFmpegNotFound  = errors.New("ffmpeg not found")
	ErrFFprobeNotFound = errors.New("ffprobe not found")
	ErrEncoderMissing  = errors.New("encoder not available in ffmpeg")
	ErrTestEncode      = errors.New("test encode failed")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...any)
	Success(string, ...any)
	Warn(string, ...any)
	Error(string, ...any)
	Debug(bool, string, ...any)
}

// Seams for tests.
var (
	lookPath = exec.LookPath
	output   = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return exec.CommandContext(ctx, name, args...).Output()
	}
)

// audioEncoders are emitted by every plan.
var audioEncoders = []string{"ac3", "aac"}

// RunCheck runs the interactive check flow: prints availability of ffprobe,
// ffmpeg, the configured video encoder and the audio encoders, and runs a
// short test encode. It is informational only and does not stop on failure.
func RunCheck(ctx context.Context, cfg *config.Config, log Logger) {
	log.Info("=== System Check ===")

	checkVersion(ctx, log, "ffprobe", cfg.FFprobePath)
	if !checkVersion(ctx, log, "ffmpeg", cfg.FFmpegPath) {
		return
	}

	encoder := planner.SelectEncoder(cfg.TargetCodec, cfg.EncoderType)
	available, err := Encoders(ctx, cfg.FFmpegPath)
	if err != nil {
		log.Warn("Could not list encoders: %v", err)
		return
	}
	for _, name := range append([]string{encoder}, audioEncoders...) {
		if available[name] {
			log.Success("Encoder %s: available", name)
		} else {
			log.Error("Encoder %s: missing", name)
		}
	}

	log.Info("Testing %s...", encoder)
	if err := testEncode(ctx, cfg.FFmpegPath, encoder); err != nil {
		log.Error("%s test encode failed: %v", encoder, err)
	} else {
		log.Success("%s works", encoder)
	}
}

// checkVersion verifies a binary resolves and logs the first line of its
// -version output.
func checkVersion(ctx context.Context, log Logger, label, binary string) bool {
	if _, err := lookPath(binary); err != nil {
		log.Error("%s not found (%s)", label, binary)
		return false
	}
	out, err := output(ctx, binary, "-version")
	if err != nil {
		log.Warn("%s found but -version failed: %v", label, err)
		return true
	}
	firstLine, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	log.Success("%s: %s", label, firstLine)
	return true
}

// CheckProbe verifies the ffprobe binary resolves. Planning needs nothing
// else from the host.
func CheckProbe(cfg *config.Config) error {
	if _, err := lookPath(cfg.FFprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFprobeNotFound, cfg.FFprobePath)
	}
	return nil
}

// CheckDeps is the strict validation: ffprobe and ffmpeg must resolve and
// ffmpeg must list the configured video encoder and the audio encoders.
func CheckDeps(ctx context.Context, cfg *config.Config) error {
	if err := CheckProbe(cfg); err != nil {
		return err
	}
	if _, err := lookPath(cfg.FFmpegPath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFmpegNotFound, cfg.FFmpegPath)
	}

	available, err := Encoders(ctx, cfg.FFmpegPath)
	if err != nil {
		return err
	}
	encoder := planner.SelectEncoder(cfg.TargetCodec, cfg.EncoderType)
	for _, name := range append([]string{encoder}, audioEncoders...) {
		if !available[name] {
			return fmt.Errorf("%w: %s", ErrEncoderMissing, name)
		}
	}
	return nil
}

// Encoders runs "ffmpeg -encoders" and returns the set of encoder names.
func Encoders(ctx context.Context, ffmpegPath string) (map[string]bool, error) {
	out, err := output(ctx, ffmpegPath, "-hide_banner", "-encoders")
	if err != nil {
		return nil, fmt.Errorf("list encoders: %w", err)
	}
	return ParseEncoders(string(out)), nil
}

// ParseEncoders extracts encoder names from "ffmpeg -encoders" output. Each
// entry line is a six-character capability field followed by the name;
// lines before the "------" separator are the legend.
func ParseEncoders(out string) map[string]bool {
	names := make(map[string]bool)
	inList := false
	for _, line := range strings.Split(out, "\n") {
		if !inList {
			inList = strings.HasPrefix(strings.TrimSpace(line), "------")
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if len(fields[0]) != 6 {
			continue
		}
		names[fields[1]] = true
	}
	return names
}

// testEncode runs a minimal lavfi encode with the given video encoder.
func testEncode(ctx context.Context, ffmpegPath, encoder string) error {
	_, err := output(ctx, ffmpegPath,
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		"-c:v", encoder,
		"-f", "null", "-",
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTestEncode, err)
	}
	return nil
}
