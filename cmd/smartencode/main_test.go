package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/smartencode/internal/config"
	"github.com/backmassage/smartencode/internal/pipeline"
	"github.com/backmassage/smartencode/internal/probe"
)

// runCLI executes the command tree with args and returns stdout.
func runCLI(t *testing.T, ctx *commandContext, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand(ctx)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--color", "never"))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func fakeContext(probeErr error) *commandContext {
	ctx := newCommandContext()
	ctx.newProber = func(*config.Config) (pipeline.Prober, error) {
		return pipeline.ProberFunc(func(_ context.Context, path string) (*probe.ProbeResult, error) {
			if probeErr != nil {
				return nil, probeErr
			}
			return &probe.ProbeResult{
				Container: "matroska,webm",
				Format:    probe.FormatInfo{Duration: 5400},
				Streams: []probe.Stream{
					{Index: 0, Kind: probe.KindVideo, Codec: "hevc", Width: 1920, Height: 1080},
					{Index: 1, Kind: probe.KindAudio, Codec: "dts", Channels: 6, Language: "eng"},
				},
			}, nil
		}), nil
	}
	return ctx
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, newCommandContext(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "smartencode "+version)
}

func TestProfilesCommand(t *testing.T) {
	out, err := runCLI(t, newCommandContext(), "profiles")
	require.NoError(t, err)
	for _, name := range []string{"smart", "final", "nas", "titan"} {
		assert.Contains(t, out, name)
	}
}

func TestTiersCommand_AppliesFileOverrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), "smartencode.toml", "[tiers.classic]\ncrf = 15\n")

	out, err := runCLI(t, newCommandContext(), "tiers", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "15")
}

func TestPlanCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "movie.mkv", "x")

	out, err := runCLI(t, fakeContext(nil), "plan", dir, "--format", "json", "--min-size", "0")
	require.NoError(t, err)

	var rep pipeline.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Files, 1)
	assert.Equal(t, "process", rep.Files[0].Action)
	assert.Equal(t, "libx264", rep.Files[0].Encoder)
	assert.Equal(t, 1, rep.Totals.Process)
}

func TestPlanCommand_FailuresExitNonZero(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "movie.mkv", "x")

	_, err := runCLI(t, fakeContext(errors.New("moov atom not found")), "plan", dir, "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 files failed")
}

func TestPlanCommand_RequiresPath(t *testing.T) {
	_, err := runCLI(t, fakeContext(nil), "plan")
	require.Error(t, err)
}

func TestPlanCommand_InvalidEnumIsError(t *testing.T) {
	_, err := runCLI(t, fakeContext(nil), "plan", t.TempDir(), "--codec", "vp9")
	require.Error(t, err)
}

func TestBuildConfig_Precedence(t *testing.T) {
	path := writeFile(t, t.TempDir(), "smartencode.toml", `profile = "nas"

[encode]
keep_subtitles = true
min_duration_seconds = 120

[host]
workers = 8
`)
	tests := []struct {
		name        string
		args        []string
		wantProfile config.ProfileName
		wantSubs    bool
	}{
		{"file profile and inputs", []string{"--config", path}, config.ProfileNAS, true},
		{"flags win", []string{"--config", path, "--profile", "titan", "--keep-subs=false"}, config.ProfileTitan, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newCommandContext()
			root := newRootCommand(ctx)
			planCmd, _, err := root.Find([]string{"plan"})
			require.NoError(t, err)
			require.NoError(t, planCmd.ParseFlags(tt.args))

			cfg, warnings, err := ctx.buildConfig(planCmd, encodeInputs(planCmd.Flags()))
			require.NoError(t, err)
			assert.Empty(t, warnings)
			assert.Equal(t, tt.wantProfile, cfg.Profile)
			assert.Equal(t, tt.wantSubs, cfg.KeepSubtitles)
			assert.Equal(t, 120.0, cfg.MinDurationSeconds)
			assert.Equal(t, 8, cfg.Workers)
		})
	}
}

func TestEncodeInputs_OnlyChangedFlags(t *testing.T) {
	ctx := newCommandContext()
	planCmd, _, err := newRootCommand(ctx).Find([]string{"plan"})
	require.NoError(t, err)
	require.NoError(t, planCmd.ParseFlags([]string{"--keep-subs", "--quality", "abc"}))

	assert.Equal(t, config.Inputs{
		config.KeyKeepSubtitles: "true",
		config.KeyQuality:       "abc",
	}, encodeInputs(planCmd.Flags()))
}
