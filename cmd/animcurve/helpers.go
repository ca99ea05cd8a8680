package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tanema/gween/ease"
	"gonum.org/v1/gonum/floats"

	animspec "github.com/tphakala/go-animspec"
)

// Spec kinds accepted by -kind.
const (
	kindTween     = "tween"
	kindSpring    = "spring"
	kindDecay     = "decay"
	kindKeyframes = "keyframes"
	kindSnap      = "snap"
)

// Output formats
const (
	formatCSV = "csv"
	formatWAV = "wav"
)

// WAV envelope constants
const (
	wavBitDepth     = 16
	wavChannels     = 1
	wavPCMFormat    = 1 // WAVE_FORMAT_PCM
	maxInt16        = 32767.0
	envelopeHalfDiv = 2.0
)

// Keyframe flag parsing
const (
	keyframeSeparator = ","
	keyframeFieldSep  = ":"
	keyframeMinFields = 2
	keyframeMaxFields = 3
	floatBits         = 64
)

var easings = map[string]animspec.Easing{
	"linear":          animspec.LinearEasing,
	"fastOutSlowIn":   animspec.FastOutSlowInEasing,
	"linearOutSlowIn": animspec.LinearOutSlowInEasing,
	"fastOutLinearIn": animspec.FastOutLinearInEasing,
	"inOutQuad":       animspec.EasingFromTween(ease.InOutQuad),
	"inOutCubic":      animspec.EasingFromTween(ease.InOutCubic),
	"inOutSine":       animspec.EasingFromTween(ease.InOutSine),
	"outBounce":       animspec.EasingFromTween(ease.OutBounce),
	"outElastic":      animspec.EasingFromTween(ease.OutElastic),
	"outBack":         animspec.EasingFromTween(ease.OutBack),
}

func easingNames() string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

func parseEasing(name string) (animspec.Easing, error) {
	easing, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q (want one of %s)", name, easingNames())
	}
	return easing, nil
}

// curveOptions holds the flag values that describe the animation.
type curveOptions struct {
	kind string

	from     float64
	to       float64
	velocity float64

	durationMillis int
	delayMillis    int
	easing         string

	dampingRatio float64
	stiffness    float64
	threshold    float64

	frictionMultiplier float64
	velocityThreshold  float64

	keyframes string
	repeat    int
	reverse   bool
}

// animation is the query surface shared by both animation types.
type animation interface {
	ValueFromNanos(playTimeNanos int64) float64
	VelocityFromNanos(playTimeNanos int64) float64
	DurationNanos() int64
	IsInfinite() bool
}

type keyframeFlag struct {
	timestampMillis int
	value           float64
	easing          animspec.Easing
}

// parseKeyframes parses "ms:value[:easing]" entries separated by commas.
func parseKeyframes(s string) ([]keyframeFlag, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var frames []keyframeFlag
	for entry := range strings.SplitSeq(s, keyframeSeparator) {
		fields := strings.Split(strings.TrimSpace(entry), keyframeFieldSep)
		if len(fields) < keyframeMinFields || len(fields) > keyframeMaxFields {
			return nil, fmt.Errorf("invalid keyframe %q: want ms:value[:easing]", entry)
		}
		ts, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("invalid keyframe timestamp %q: %w", fields[0], err)
		}
		value, err := strconv.ParseFloat(fields[1], floatBits)
		if err != nil {
			return nil, fmt.Errorf("invalid keyframe value %q: %w", fields[1], err)
		}
		frame := keyframeFlag{timestampMillis: ts, value: value, easing: animspec.LinearEasing}
		if len(fields) == keyframeMaxFields {
			if frame.easing, err = parseEasing(fields[2]); err != nil {
				return nil, err
			}
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

// buildSpec turns the options into a typed spec, wrapping it in a repeat
// when requested.
func buildSpec(opts curveOptions) (animspec.AnimationSpec[float64], error) {
	var spec animspec.AnimationSpec[float64]
	switch opts.kind {
	case kindTween:
		easing, err := parseEasing(opts.easing)
		if err != nil {
			return spec, err
		}
		spec = animspec.Tween[float64](opts.durationMillis, opts.delayMillis, easing)
	case kindSpring:
		threshold := opts.threshold
		spec = animspec.Spring(opts.dampingRatio, opts.stiffness, &threshold)
	case kindKeyframes:
		frames, err := parseKeyframes(opts.keyframes)
		if err != nil {
			return spec, err
		}
		spec = animspec.Keyframes(func(c *animspec.KeyframesConfig[float64]) {
			c.DurationMillis = opts.durationMillis
			c.DelayMillis = opts.delayMillis
			for _, f := range frames {
				c.At(f.value, f.timestampMillis).With(f.easing)
			}
		})
	case kindSnap:
		spec = animspec.Snap[float64](opts.delayMillis)
	default:
		return spec, fmt.Errorf("unknown kind %q", opts.kind)
	}

	if opts.repeat == 0 {
		return spec, nil
	}
	mode := animspec.RepeatRestart
	if opts.reverse {
		mode = animspec.RepeatReverse
	}
	if opts.repeat < 0 {
		return animspec.InfiniteRepeatable(spec, mode, animspec.StartOffset{}), nil
	}
	return animspec.Repeatable(opts.repeat, spec, mode, animspec.StartOffset{}), nil
}

// buildAnimation binds the options' spec to their boundary conditions.
func buildAnimation(opts curveOptions) (animation, error) {
	if opts.kind == kindDecay {
		if opts.repeat != 0 {
			return nil, errors.New("decay cannot be repeated")
		}
		decay, err := animspec.NewExponentialDecaySpec(opts.frictionMultiplier, opts.velocityThreshold)
		if err != nil {
			return nil, err
		}
		anim, err := animspec.NewDecayAnimation(decay, animspec.Float64Converter, opts.from, opts.velocity)
		if err != nil {
			return nil, err
		}
		return anim, nil
	}

	spec, err := buildSpec(opts)
	if err != nil {
		return nil, err
	}
	anim, err := animspec.NewTargetBasedAnimation(spec, animspec.Float64Converter, opts.from, opts.to, opts.velocity)
	if err != nil {
		return nil, err
	}
	return anim, nil
}

// curvePoint is one sample of a curve.
type curvePoint struct {
	playTimeNanos int64
	value         float64
	velocity      float64
}

// sampleCurve samples anim every stepNanos from 0 through its duration,
// stopping at limitNanos. The last sample always lands on the end time.
func sampleCurve(anim animation, stepNanos, limitNanos int64) []curvePoint {
	end := min(anim.DurationNanos(), limitNanos)
	points := make([]curvePoint, 0, end/stepNanos+2)
	sample := func(t int64) {
		points = append(points, curvePoint{
			playTimeNanos: t,
			value:         anim.ValueFromNanos(t),
			velocity:      anim.VelocityFromNanos(t),
		})
	}
	var t int64
	for ; t <= end; t += stepNanos {
		sample(t)
	}
	if t-stepNanos != end {
		sample(end)
	}
	return points
}

// writeCSV writes a header and one "time_ms,value,velocity" row per point.
func writeCSV(w io.Writer, points []curvePoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time_ms", "value", "velocity"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, p := range points {
		row := []string{
			strconv.FormatFloat(float64(p.playTimeNanos)/float64(animspec.MillisToNanos), 'f', -1, floatBits),
			strconv.FormatFloat(p.value, 'g', -1, floatBits),
			strconv.FormatFloat(p.velocity, 'g', -1, floatBits),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// envelopeSamples maps curve values onto the full 16-bit range. A flat
// curve maps to silence.
func envelopeSamples(points []curvePoint) []int {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.value
	}
	samples := make([]int, len(points))
	if len(values) == 0 {
		return samples
	}

	lo, hi := floats.Min(values), floats.Max(values)
	half := (hi - lo) / envelopeHalfDiv
	if half == 0 {
		return samples
	}
	mid := lo + half
	for i, v := range values {
		samples[i] = int(math.Round((v - mid) / half * maxInt16))
	}
	return samples
}

// writeWAV writes the curve values as a 16-bit mono PCM envelope.
func writeWAV(path string, points []curvePoint, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	encoder := wav.NewEncoder(f, sampleRate, wavBitDepth, wavChannels, wavPCMFormat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: wavChannels, SampleRate: sampleRate},
		Data:           envelopeSamples(points),
		SourceBitDepth: wavBitDepth,
	}
	if err := encoder.Write(buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write WAV data: %w", err)
	}
	if err := encoder.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return f.Close()
}
