package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	animspec "github.com/tphakala/go-animspec"
)

const ms = animspec.MillisToNanos

func defaultOptions() curveOptions {
	return curveOptions{
		kind:               kindTween,
		to:                 100,
		durationMillis:     300,
		easing:             "linear",
		dampingRatio:       animspec.DampingRatioNoBouncy,
		stiffness:          animspec.StiffnessMedium,
		threshold:          animspec.DefaultDisplacementThreshold,
		frictionMultiplier: 1,
		velocityThreshold:  defaultVelocityThreshold,
	}
}

func TestParseEasing(t *testing.T) {
	for _, name := range []string{"linear", "fastOutSlowIn", "outBounce", "inOutSine"} {
		easing, err := parseEasing(name)
		require.NoError(t, err, name)
		assert.InDelta(t, 1.0, easing(1), 1e-6, name)
	}

	_, err := parseEasing("wobbly")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown easing")
}

func TestParseKeyframes(t *testing.T) {
	frames, err := parseKeyframes("0:0, 150:1:outBounce,300:0.5")
	require.NoError(t, err)
	require.Len(t, frames, 3)
	assert.Equal(t, 150, frames[1].timestampMillis)
	assert.InDelta(t, 1.0, frames[1].value, 0)
	assert.InDelta(t, 0.5, frames[2].value, 0)

	frames, err = parseKeyframes("")
	require.NoError(t, err)
	assert.Empty(t, frames)

	for _, bad := range []string{"10", "a:1", "10:b", "10:1:nope", "1:2:linear:4"} {
		_, err := parseKeyframes(bad)
		assert.Error(t, err, bad)
	}
}

func TestBuildAnimation(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*curveOptions)
		duration int64
		infinite bool
	}{
		{"Tween", func(*curveOptions) {}, 300 * ms, false},
		{"TweenDelay", func(o *curveOptions) { o.delayMillis = 50 }, 350 * ms, false},
		{"Snap", func(o *curveOptions) { o.kind = kindSnap; o.delayMillis = 40 }, 40 * ms, false},
		{"Keyframes", func(o *curveOptions) {
			o.kind = kindKeyframes
			o.keyframes = "0:0,100:50"
			o.durationMillis = 200
		}, 200 * ms, false},
		{"Repeat", func(o *curveOptions) { o.repeat = 3; o.reverse = true }, 900 * ms, false},
		{"RepeatForever", func(o *curveOptions) { o.repeat = -1 }, animspec.InfiniteDurationNanos, true},
		{"Decay", func(o *curveOptions) { o.kind = kindDecay; o.velocity = 1000 }, 2192 * ms, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaultOptions()
			tt.modify(&opts)
			anim, err := buildAnimation(opts)
			require.NoError(t, err)
			assert.Equal(t, tt.duration, anim.DurationNanos())
			assert.Equal(t, tt.infinite, anim.IsInfinite())
		})
	}
}

func TestBuildAnimationSpring(t *testing.T) {
	opts := defaultOptions()
	opts.kind = kindSpring
	anim, err := buildAnimation(opts)
	require.NoError(t, err)
	assert.Positive(t, anim.DurationNanos())
	assert.InDelta(t, 100.0, anim.ValueFromNanos(anim.DurationNanos()), 0)
}

func TestBuildAnimationErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*curveOptions)
	}{
		{"UnknownKind", func(o *curveOptions) { o.kind = "wiggle" }},
		{"UnknownEasing", func(o *curveOptions) { o.easing = "wobbly" }},
		{"NegativeDuration", func(o *curveOptions) { o.durationMillis = -1 }},
		{"BadStiffness", func(o *curveOptions) { o.kind = kindSpring; o.stiffness = 0 }},
		{"BadFriction", func(o *curveOptions) { o.kind = kindDecay; o.frictionMultiplier = 0 }},
		{"RepeatDecay", func(o *curveOptions) { o.kind = kindDecay; o.repeat = 2 }},
		{"RepeatSpring", func(o *curveOptions) { o.kind = kindSpring; o.repeat = 2 }},
		{"BadKeyframes", func(o *curveOptions) { o.kind = kindKeyframes; o.keyframes = "x" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaultOptions()
			tt.modify(&opts)
			_, err := buildAnimation(opts)
			assert.Error(t, err)
		})
	}
}

func TestSampleCurve(t *testing.T) {
	anim, err := buildAnimation(defaultOptions())
	require.NoError(t, err)

	points := sampleCurve(anim, 16*ms, 5000*ms)
	// 0, 16, ..., 288 then the end at 300.
	require.Len(t, points, 20)
	assert.Equal(t, int64(0), points[0].playTimeNanos)
	assert.Equal(t, 300*ms, points[len(points)-1].playTimeNanos)
	assert.InDelta(t, 100.0, points[len(points)-1].value, 0)

	aligned := sampleCurve(anim, 100*ms, 5000*ms)
	assert.Len(t, aligned, 4)

	limited := sampleCurve(anim, 100*ms, 150*ms)
	require.Len(t, limited, 3)
	assert.Equal(t, 150*ms, limited[2].playTimeNanos)
	assert.InDelta(t, 50.0, limited[2].value, 1e-9)
}

func TestWriteCSV(t *testing.T) {
	points := []curvePoint{
		{playTimeNanos: 0, value: 0, velocity: 0},
		{playTimeNanos: 16 * ms, value: 5.5, velocity: -2},
	}

	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, points))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"time_ms", "value", "velocity"},
		{"0", "0", "0"},
		{"16", "5.5", "-2"},
	}, records)
}

func TestEnvelopeSamples(t *testing.T) {
	points := []curvePoint{{value: 0}, {value: 50}, {value: 100}}
	assert.Equal(t, []int{-32767, 0, 32767}, envelopeSamples(points))

	flat := []curvePoint{{value: 3}, {value: 3}}
	assert.Equal(t, []int{0, 0}, envelopeSamples(flat))

	assert.Empty(t, envelopeSamples(nil))
}

func TestWriteWAV(t *testing.T) {
	anim, err := buildAnimation(defaultOptions())
	require.NoError(t, err)
	points := sampleCurve(anim, ms, 5000*ms)

	path := filepath.Join(t.TempDir(), "curve.wav")
	require.NoError(t, writeWAV(path, points, defaultWAVRate))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	require.True(t, decoder.IsValidFile())
	buf, err := decoder.FullPCMBuffer()
	require.NoError(t, err)

	assert.Equal(t, defaultWAVRate, buf.Format.SampleRate)
	assert.Equal(t, wavChannels, buf.Format.NumChannels)
	require.Len(t, buf.Data, len(points))
	assert.Equal(t, -32767, buf.Data[0])
	assert.Equal(t, 32767, buf.Data[len(buf.Data)-1])
}

func TestWriteWAVInvalidPath(t *testing.T) {
	err := writeWAV("/nonexistent/dir/curve.wav", nil, defaultWAVRate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}
