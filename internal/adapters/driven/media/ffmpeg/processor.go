// Package ffmpeg provides a media processor backed by the ffmpeg and
// ffprobe command line tools.
//
// Availability is probed once at construction by looking the binaries
// up on PATH. Machines without ffmpeg skip video ingestion rather than
// erroring, matching the optional-capability contract.
package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/custodia-labs/ansa-cli/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.MediaProcessor = (*Processor)(nil)

// Processor extracts media metadata and frames through ffmpeg/ffprobe.
type Processor struct {
	ffmpegPath  string
	ffprobePath string
}

// New creates a processor, probing PATH for the required binaries.
func New() *Processor {
	p := &Processor{}
	if path, err := exec.LookPath("ffmpeg"); err == nil {
		p.ffmpegPath = path
	}
	if path, err := exec.LookPath("ffprobe"); err == nil {
		p.ffprobePath = path
	}
	return p
}

// Available reports whether both ffmpeg and ffprobe were found.
func (p *Processor) Available() bool {
	return p.ffmpegPath != "" && p.ffprobePath != ""
}

// Duration returns the playable length of the media file in seconds.
func (p *Processor) Duration(ctx context.Context, path string) (float64, error) {
	if !p.Available() {
		return 0, fmt.Errorf("ffmpeg: tooling not found on PATH")
	}

	cmd := exec.CommandContext(ctx, p.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w: %s", path, err, strings.TrimSpace(stderr.String()))
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: parse duration %q: %w", path, strings.TrimSpace(string(out)), err)
	}
	return seconds, nil
}

// Frame returns a single JPEG-encoded frame at the given timestamp.
func (p *Processor) Frame(ctx context.Context, path string, atSeconds float64) ([]byte, error) {
	if !p.Available() {
		return nil, fmt.Errorf("ffmpeg: tooling not found on PATH")
	}

	// Seeking before the input is the fast seek path; accuracy within a
	// keyframe interval is fine for scene description.
	cmd := exec.CommandContext(ctx, p.ffmpegPath,
		"-ss", strconv.FormatFloat(atSeconds, 'f', 3, 64),
		"-i", path,
		"-frames:v", "1",
		"-f", "image2",
		"-c:v", "mjpeg",
		"-loglevel", "error",
		"pipe:1",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg frame %s@%.1fs: %w: %s",
			path, atSeconds, err, strings.TrimSpace(stderr.String()))
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg frame %s@%.1fs: no frame produced", path, atSeconds)
	}
	return stdout.Bytes(), nil
}
