// Package animspec evaluates UI animation specifications in pure Go.
//
// The package answers one question: given a specification, its boundary
// conditions and a playtime, what are the value and velocity? It has no
// clock, no scheduler and no I/O. Every query takes the playtime
// explicitly, so specs can be sampled in any order and shared between
// animations.
//
// # Features
//
//   - Tweens with cubic Bézier easing, plus adapters for the gween easing
//     catalogue
//   - Physical springs with under-, critically- and over-damped regimes and
//     a settling-time estimator
//   - Exponential decay (fling) with closed-form resting position
//   - Keyframes with per-segment easing, snap, and finite or infinite
//     repetition with restart or reverse
//   - Vectors of one to four channels, with converters for points, sizes,
//     rectangles and colors
//
// # Quick Start
//
// Animate a float from 0 to 100 with a 300 ms linear tween:
//
//	anim, err := animspec.NewTargetBasedAnimation(
//	    animspec.Tween[float64](300, 0, animspec.LinearEasing),
//	    animspec.Float64Converter,
//	    0, 100, 0,
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for t := int64(0); !anim.IsFinishedFromNanos(t); t += 16 * animspec.MillisToNanos {
//	    draw(anim.ValueFromNanos(t))
//	}
//
// A spring towards a point:
//
//	anim, err := animspec.NewTargetBasedAnimation(
//	    animspec.Spring[animspec.Point](animspec.DampingRatioMediumBouncy, animspec.StiffnessLow, nil),
//	    animspec.PointConverter,
//	    animspec.Point{}, animspec.Point{X: 120, Y: 40}, animspec.Point{},
//	)
//
// # Layers
//
// [FloatSpec] and [ExponentialDecaySpec] animate a single float64.
// [VectorizedSpec] lifts them to vectors and adds the composite kinds
// (keyframes, snap, repeat); it is a closed set of variants selected by
// [SpecKind]. [AnimationSpec] describes a spec in the caller's own type and
// is turned into a [VectorizedSpec] by [AnimationSpec.Vectorize].
// [TargetBasedAnimation] and [DecayAnimation] freeze boundary conditions so
// that only the playtime varies.
//
// # Errors
//
// Constructors and [AnimationSpec.Validate] reject invalid parameters with
// errors wrapping [ErrInvalidSpec]. An evaluation that produces NaN panics
// with a [*NonFiniteError], which wraps [ErrNonFinite].
//
// # Thread Safety
//
// Specs and animations reuse scratch vectors owned by the instance, and
// returned vectors are overwritten by the next query. An instance must not
// be queried from multiple goroutines at once. Independent instances share
// no state and may be used concurrently.
package animspec
