package animation_test

import (
	"fmt"
	"time"

	"github.com/go-drift/carousel/pkg/animation"
	"github.com/go-drift/carousel/pkg/graphics"
)

func ExampleAnimationController() {
	settle := animation.NewAnimationController(300 * time.Millisecond)
	settle.Curve = animation.Snappy

	settle.AddListener(func() {
		fmt.Printf("progress %.2f\n", settle.Value)
	})

	// Drive toward 1, later back toward 0.
	settle.Forward()
	settle.Reverse()

	settle.Dispose()
}

func ExampleAnimationController_withTween() {
	controller := animation.NewAnimationController(500 * time.Millisecond)

	// Tweens map the controller's 0..1 value onto card properties.
	scale := animation.TweenFloat64(0.86, 1.0)
	tint := animation.TweenColor(
		graphics.RGB(120, 120, 120),
		graphics.RGB(255, 255, 255),
	)

	controller.AddListener(func() {
		_ = scale.Transform(controller)
		_ = tint.Transform(controller)
	})

	controller.Forward()
	controller.Dispose()
}

func ExampleAnimationController_statusListener() {
	controller := animation.NewAnimationController(300 * time.Millisecond)

	controller.AddStatusListener(func(status animation.AnimationStatus) {
		switch status {
		case animation.AnimationDismissed:
			fmt.Println("back at rest")
		case animation.AnimationForward:
			fmt.Println("running forward")
		case animation.AnimationReverse:
			fmt.Println("running in reverse")
		case animation.AnimationCompleted:
			fmt.Println("finished")
		}
	})

	controller.Forward()
	controller.Dispose()
}

func ExampleTween() {
	scale := animation.TweenFloat64(0.86, 1.0)
	shift := animation.TweenOffset(
		graphics.Offset{X: 0, Y: 0},
		graphics.Offset{X: -40, Y: 0},
	)

	fmt.Printf("scale at 0.5: %.2f\n", scale.Evaluate(0.5))
	end := shift.Evaluate(1.0)
	fmt.Printf("shift at 1.0: (%.0f, %.0f)\n", end.X, end.Y)

	// Output:
	// scale at 0.5: 0.93
	// shift at 1.0: (-40, 0)
}

func ExampleTween_customType() {
	type cardPose struct {
		Scale float64
		Shift float64
	}

	pose := &animation.Tween[cardPose]{
		Begin: cardPose{Scale: 1.0, Shift: 0},
		End:   cardPose{Scale: 0.8, Shift: -24},
		Lerp: func(a, b cardPose, t float64) cardPose {
			return cardPose{
				Scale: a.Scale + (b.Scale-a.Scale)*t,
				Shift: a.Shift + (b.Shift-a.Shift)*t,
			}
		},
	}

	mid := pose.Evaluate(0.5)
	fmt.Printf("midway: scale %.1f, shift %.0f\n", mid.Scale, mid.Shift)

	// Output:
	// midway: scale 0.9, shift -12
}

func ExampleSpringSimulation() {
	// A fling released at 500 px/s, settling one page over.
	sim := animation.NewSpringSimulation(
		animation.BouncySpring(),
		0,
		500,
		320,
	)

	dt := 0.016
	for !sim.IsDone() {
		if sim.Step(dt) {
			break
		}
	}

	fmt.Printf("settled at %.0f\n", sim.Position())

	// Output:
	// settled at 320
}

func ExampleCubicBezier() {
	curve := animation.CubicBezier(0.4, 0.0, 0.2, 1.0)

	fmt.Printf("0.0 -> %.2f\n", curve(0.0))
	fmt.Printf("0.5 -> %.2f\n", curve(0.5))
	fmt.Printf("1.0 -> %.2f\n", curve(1.0))

	// Output:
	// 0.0 -> 0.00
	// 0.5 -> 0.78
	// 1.0 -> 1.00
}
