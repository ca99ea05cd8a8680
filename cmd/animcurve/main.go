// Command animcurve samples an animation curve and writes it as CSV or as a
// mono WAV envelope.
//
// Usage:
//
//	animcurve -kind tween -to 100 -duration 300 -easing fastOutSlowIn out.csv
//	animcurve -kind spring -damping 0.2 -stiffness 200 -to 1 spring.csv
//	animcurve -kind decay -velocity 1000 decay.csv
//	animcurve -kind keyframes -keyframes "0:0,150:1:outBounce,300:0.5" -repeat 3 -reverse kf.csv
//	animcurve -kind spring -format wav -rate 1000 envelope.wav
//
// The output path "-" writes CSV to standard output.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	animspec "github.com/tphakala/go-animspec"
)

const (
	// CLI defaults
	defaultStepMillis        = 16   // One 60 Hz frame
	defaultLimitMillis       = 5000 // Sampling cap for infinite or very long curves
	defaultWAVRate           = 1000 // Envelope samples per second
	defaultVelocityThreshold = 0.1
	minRequiredArgs          = 1

	stdoutPath = "-"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var opts curveOptions
	flag.StringVar(&opts.kind, "kind", kindTween, "Spec kind: tween, spring, decay, keyframes, snap")
	flag.Float64Var(&opts.from, "from", 0, "Initial value")
	flag.Float64Var(&opts.to, "to", 100, "Target value (ignored by decay)")
	flag.Float64Var(&opts.velocity, "velocity", 0, "Initial velocity in units per second")
	flag.IntVar(&opts.durationMillis, "duration", animspec.DefaultDurationMillis, "Tween or keyframes duration in ms")
	flag.IntVar(&opts.delayMillis, "delay", 0, "Delay in ms (tween, keyframes, snap)")
	flag.StringVar(&opts.easing, "easing", "fastOutSlowIn", "Easing: "+easingNames())
	flag.Float64Var(&opts.dampingRatio, "damping", animspec.DampingRatioNoBouncy, "Spring damping ratio")
	flag.Float64Var(&opts.stiffness, "stiffness", animspec.StiffnessMedium, "Spring stiffness")
	flag.Float64Var(&opts.threshold, "threshold", animspec.DefaultDisplacementThreshold, "Spring visibility threshold")
	flag.Float64Var(&opts.frictionMultiplier, "friction", 1, "Decay friction multiplier")
	flag.Float64Var(&opts.velocityThreshold, "velocity-threshold", defaultVelocityThreshold, "Decay velocity threshold")
	flag.StringVar(&opts.keyframes, "keyframes", "", "Keyframes as ms:value[:easing], comma separated")
	flag.IntVar(&opts.repeat, "repeat", 0, "Repeat count for tween, keyframes or snap; -1 repeats forever")
	flag.BoolVar(&opts.reverse, "reverse", false, "Reverse every other repetition")
	stepMillis := flag.Int("step", defaultStepMillis, "CSV sampling step in ms")
	limitMillis := flag.Int("limit", defaultLimitMillis, "Stop sampling after this many ms")
	format := flag.String("format", formatCSV, "Output format: csv, wav")
	rate := flag.Int("rate", defaultWAVRate, "WAV sample rate in Hz")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] output\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -kind tween -to 100 out.csv                  # Default tween\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -kind spring -damping 0.2 -stiffness 200 -  # Bouncy spring to stdout\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -kind decay -velocity 1000 -format wav d.wav # Fling envelope\n", os.Args[0])
		return errors.New("insufficient arguments")
	}
	outputPath := args[0]

	anim, err := buildAnimation(opts)
	if err != nil {
		return err
	}

	stepNanos := int64(*stepMillis) * animspec.MillisToNanos
	if *format == formatWAV {
		if *rate <= 0 {
			return fmt.Errorf("invalid WAV rate: %d", *rate)
		}
		stepNanos = int64(1e9) / int64(*rate)
	}
	if stepNanos <= 0 {
		return fmt.Errorf("invalid sampling step: %d ms", *stepMillis)
	}

	if *verbose {
		log.Printf("Kind: %s", opts.kind)
		if anim.IsInfinite() {
			log.Printf("Duration: infinite, sampling %d ms", *limitMillis)
		} else {
			log.Printf("Duration: %d ms", anim.DurationNanos()/animspec.MillisToNanos)
		}
		log.Printf("Format: %s", *format)
	}

	points := sampleCurve(anim, stepNanos, int64(*limitMillis)*animspec.MillisToNanos)

	switch *format {
	case formatCSV:
		if outputPath == stdoutPath {
			return writeCSV(os.Stdout, points)
		}
		err = writeFile(outputPath, func(w io.Writer) error { return writeCSV(w, points) })
	case formatWAV:
		err = writeWAV(outputPath, points, *rate)
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d samples to %s\n", len(points), filepath.Base(outputPath))
	return nil
}

// writeFile creates path and hands it to write.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
