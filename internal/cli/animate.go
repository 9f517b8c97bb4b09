package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/vars"
)

var easings = map[string]vars.EasingFn{
	"linear":  vars.Linear,
	"quad":    vars.Quad,
	"cubic":   vars.Cubic,
	"quart":   vars.Quart,
	"quint":   vars.Quint,
	"sine":    vars.Sine,
	"expo":    vars.Expo,
	"circ":    vars.Circ,
	"back":    vars.Back,
	"elastic": vars.Elastic,
	"bounce":  vars.Bounce,
}

var easingModes = map[string]func(vars.EasingFn) vars.EasingFn{
	"in":     vars.EaseIn,
	"out":    vars.EaseOut,
	"in-out": vars.EaseInOut,
	"out-in": vars.EaseOutIn,
}

type animateOpts struct {
	from, to float64
	duration time.Duration
	fps      int
	easing   string
	mode     string
}

func newAnimateCmd() *cobra.Command {
	opts := animateOpts{}

	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Animate a number and print every frame",
		Long: `Animate eases a variable from --from to --to over --duration, sampling it
--fps times per second on a simulated clock. Every committed frame is printed
through a variable mapped from the animated one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnimate(cmd, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.from, "from", 0, "start value")
	cmd.Flags().Float64Var(&opts.to, "to", 100, "end value")
	cmd.Flags().DurationVar(&opts.duration, "duration", time.Second, "animation duration")
	cmd.Flags().IntVar(&opts.fps, "fps", 10, "frames per second")
	cmd.Flags().StringVar(&opts.easing, "easing", "linear", "easing curve ("+strings.Join(names(easings), ", ")+")")
	cmd.Flags().StringVar(&opts.mode, "mode", "in", "easing mode ("+strings.Join(names(easingModes), ", ")+")")

	return cmd
}

func runAnimate(cmd *cobra.Command, opts animateOpts) error {
	logger := loggerFromContext(cmd.Context())

	easing, err := lookupEasing(opts.easing, opts.mode)
	if err != nil {
		return err
	}
	if opts.fps <= 0 {
		return fmt.Errorf("invalid --fps %d: must be positive", opts.fps)
	}

	value := vars.New(opts.from)
	label := vars.Map(value, func(v float64) string {
		return fmt.Sprintf("%8.3f", v)
	})

	out := cmd.OutOrStdout()
	var frame int
	handle := label.Hook(func(args vars.HookArgs[string]) bool {
		state := "animating"
		if !args.IsAnimating {
			state = "done"
		}
		fmt.Fprintf(out, "frame %3d  %s  %s\n", frame, args.Value, state)
		return true
	})
	defer handle.Unhook()

	anim := vars.SetEase(value, opts.from, opts.to, opts.duration, easing, vars.LerpNumber[float64])

	step := time.Second / time.Duration(opts.fps)
	now := time.Unix(0, 0)
	for ; !anim.IsStopped(); frame++ {
		if err := cmd.Context().Err(); err != nil {
			anim.Stop()
			return err
		}
		vars.Frame(now)
		now = now.Add(step)
	}

	logger.Debug("animation finished", "frames", frame, "value", value.Get())
	return nil
}

func lookupEasing(name, mode string) (vars.EasingFn, error) {
	easing, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	apply, ok := easingModes[mode]
	if !ok {
		return nil, fmt.Errorf("unknown easing mode %q", mode)
	}
	return apply(easing), nil
}

func names[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
