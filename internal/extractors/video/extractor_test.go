package video

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driven"
)

// fakeProcessor is a test double for the MediaProcessor port.
type fakeProcessor struct {
	available   bool
	duration    float64
	durationErr error
	frameErrAt  map[string]error

	frameCalls []float64
}

func (f *fakeProcessor) Available() bool { return f.available }

func (f *fakeProcessor) Duration(context.Context, string) (float64, error) {
	return f.duration, f.durationErr
}

func (f *fakeProcessor) Frame(_ context.Context, _ string, timestamp float64) ([]byte, error) {
	f.frameCalls = append(f.frameCalls, timestamp)
	key := fmt.Sprintf("%.1f", timestamp)
	if err, ok := f.frameErrAt[key]; ok {
		return nil, err
	}
	return []byte("frame@" + key), nil
}

var _ driven.MediaProcessor = (*fakeProcessor)(nil)

// fakeCaptioner describes frames deterministically from the payload.
type fakeCaptioner struct {
	available bool
	failOn    map[string]error
}

func (f *fakeCaptioner) Available() bool { return f.available }

func (f *fakeCaptioner) Caption(_ context.Context, image []byte, _, _ string, _ int) (string, error) {
	if err, ok := f.failOn[string(image)]; ok {
		return "", err
	}
	return "desc of " + string(image), nil
}

func (f *fakeCaptioner) Close() error { return nil }

var _ driven.Captioner = (*fakeCaptioner)(nil)

// fakeTranscriber is a test double for the Transcriber port.
type fakeTranscriber struct {
	available  bool
	transcript *driven.Transcript
	err        error
}

func (f *fakeTranscriber) Available() bool { return f.available }

func (f *fakeTranscriber) Transcribe(context.Context, string) (*driven.Transcript, error) {
	return f.transcript, f.err
}

func (f *fakeTranscriber) Close() error { return nil }

var _ driven.Transcriber = (*fakeTranscriber)(nil)

// TestExtractor_Extensions tests the reported extensions.
func TestExtractor_Extensions(t *testing.T) {
	e := New(Config{})
	assert.Equal(t, []string{".mp4"}, e.Extensions())
}

// TestExtractor_Extract_NoCaptioner tests that videos contribute no units
// without captioning, and no error either.
func TestExtractor_Extract_NoCaptioner(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "nil captioner", cfg: Config{Processor: &fakeProcessor{available: true, duration: 10}}},
		{
			name: "unavailable captioner",
			cfg: Config{
				Processor: &fakeProcessor{available: true, duration: 10},
				Captioner: &fakeCaptioner{available: false},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			units, err := New(tt.cfg).Extract(context.Background(), "/tmp/clip.mp4", "clip.mp4")
			require.NoError(t, err)
			assert.Empty(t, units)
		})
	}
}

// TestExtractor_Extract_NoProcessor tests that a missing or failing media
// processor skips the file without error.
func TestExtractor_Extract_NoProcessor(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "nil processor", cfg: Config{Captioner: &fakeCaptioner{available: true}}},
		{
			name: "unavailable processor",
			cfg: Config{
				Processor: &fakeProcessor{available: false},
				Captioner: &fakeCaptioner{available: true},
			},
		},
		{
			name: "probe failure",
			cfg: Config{
				Processor: &fakeProcessor{available: true, durationErr: errors.New("corrupt container")},
				Captioner: &fakeCaptioner{available: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			units, err := New(tt.cfg).Extract(context.Background(), "/tmp/clip.mp4", "clip.mp4")
			require.NoError(t, err)
			assert.Empty(t, units)
		})
	}
}

// TestExtractor_Extract_Buckets tests the full pipeline: sampled frames and
// transcript segments merged into 30-second units.
func TestExtractor_Extract_Buckets(t *testing.T) {
	processor := &fakeProcessor{available: true, duration: 65}
	transcriber := &fakeTranscriber{
		available: true,
		transcript: &driven.Transcript{
			Language: "en",
			Segments: []driven.TranscriptSegment{
				{Start: 2.0, End: 6.5, Text: "Welcome to the demo."},
				{Start: 31.5, End: 40.0, Text: "Here is the dashboard."},
				{Start: 62.0, End: 64.0, Text: "Thanks for watching."},
			},
		},
	}

	e := New(Config{
		Processor:   processor,
		Captioner:   &fakeCaptioner{available: true},
		Transcriber: transcriber,
	})

	units, err := e.Extract(context.Background(), "/tmp/demo.mp4", "demo.mp4")
	require.NoError(t, err)
	require.Len(t, units, 3)

	// 65s at the default 5s interval samples 13 frames.
	assert.Len(t, processor.frameCalls, 13)
	assert.Equal(t, 0.0, processor.frameCalls[0])
	assert.Equal(t, 60.0, processor.frameCalls[12])

	first := units[0]
	assert.Equal(t, "demo.mp4", first.Source)
	assert.Equal(t, domain.UnitKindVideo, first.Kind)
	assert.Equal(t, "0.0s-30.0s", first.TimeRange)
	assert.True(t, strings.HasPrefix(first.Text, "[Video: demo.mp4]\n[Time: 0.0s - 30.0s]\n"))
	assert.Contains(t, first.Text, "\nVisual Content:\n[0.0s] desc of frame@0.0")
	assert.Contains(t, first.Text, "[25.0s] desc of frame@25.0")
	assert.Contains(t, first.Text, "\nAudio Transcript:\n[2.0s] Welcome to the demo.")
	assert.NotContains(t, first.Text, "[30.0s]")

	second := units[1]
	assert.Equal(t, "30.0s-60.0s", second.TimeRange)
	assert.Contains(t, second.Text, "[Time: 30.0s - 60.0s]")
	assert.Contains(t, second.Text, "[30.0s] desc of frame@30.0")
	assert.Contains(t, second.Text, "[31.5s] Here is the dashboard.")

	third := units[2]
	assert.Equal(t, "60.0s-65.0s", third.TimeRange)
	assert.Contains(t, third.Text, "[Time: 60.0s - 65.0s]")
	assert.Contains(t, third.Text, "[60.0s] desc of frame@60.0")
	assert.Contains(t, third.Text, "[62.0s] Thanks for watching.")

	for _, u := range units {
		assert.NoError(t, u.Validate())
	}
}

// TestExtractor_Extract_WidensInterval tests that long videos are sampled at a
// wider interval instead of only covering the start.
func TestExtractor_Extract_WidensInterval(t *testing.T) {
	processor := &fakeProcessor{available: true, duration: 600}

	e := New(Config{
		Processor: processor,
		Captioner: &fakeCaptioner{available: true},
	})

	units, err := e.Extract(context.Background(), "/tmp/long.mp4", "long.mp4")
	require.NoError(t, err)
	require.NotEmpty(t, units)

	require.Len(t, processor.frameCalls, domain.DefaultMaxFrames)
	assert.Equal(t, 0.0, processor.frameCalls[0])
	assert.Equal(t, 588.0, processor.frameCalls[domain.DefaultMaxFrames-1])

	last := units[len(units)-1]
	assert.Equal(t, "570.0s-600.0s", last.TimeRange)
}

// TestExtractor_Extract_SkipsFailedFrames tests that one bad frame does not
// fail the video.
func TestExtractor_Extract_SkipsFailedFrames(t *testing.T) {
	processor := &fakeProcessor{
		available:  true,
		duration:   20,
		frameErrAt: map[string]error{"5.0": errors.New("seek failed")},
	}
	captioner := &fakeCaptioner{
		available: true,
		failOn:    map[string]error{"frame@10.0": errors.New("model overloaded")},
	}

	e := New(Config{Processor: processor, Captioner: captioner})

	units, err := e.Extract(context.Background(), "/tmp/flaky.mp4", "flaky.mp4")
	require.NoError(t, err)
	require.Len(t, units, 1)

	assert.Contains(t, units[0].Text, "[0.0s] desc of frame@0.0")
	assert.Contains(t, units[0].Text, "[15.0s] desc of frame@15.0")
	assert.NotContains(t, units[0].Text, "[5.0s]")
	assert.NotContains(t, units[0].Text, "[10.0s]")
}

// TestExtractor_Extract_TranscriptionFailure tests that a failed transcription
// still produces visual-only units.
func TestExtractor_Extract_TranscriptionFailure(t *testing.T) {
	e := New(Config{
		Processor:   &fakeProcessor{available: true, duration: 10},
		Captioner:   &fakeCaptioner{available: true},
		Transcriber: &fakeTranscriber{available: true, err: errors.New("no audio stream")},
	})

	units, err := e.Extract(context.Background(), "/tmp/silent.mp4", "silent.mp4")
	require.NoError(t, err)
	require.Len(t, units, 1)

	assert.Contains(t, units[0].Text, "Visual Content:")
	assert.NotContains(t, units[0].Text, "Audio Transcript:")
}

// TestExtractor_Extract_NoContent tests that a video yielding neither frames
// nor transcript produces no units.
func TestExtractor_Extract_NoContent(t *testing.T) {
	captioner := &fakeCaptioner{
		available: true,
		failOn: map[string]error{
			"frame@0.0": errors.New("down"),
			"frame@5.0": errors.New("down"),
		},
	}

	e := New(Config{
		Processor: &fakeProcessor{available: true, duration: 10},
		Captioner: captioner,
	})

	units, err := e.Extract(context.Background(), "/tmp/blank.mp4", "blank.mp4")
	require.NoError(t, err)
	assert.Empty(t, units)
}
