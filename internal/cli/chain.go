package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/vars"
)

func newChainCmd() *cobra.Command {
	var values []int

	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Push values through mapped, bound and merged variables",
		Long: `Chain sets a source variable to each of --values and prints the state of
a small graph after every apply cycle:

  a -> map(x2) -> b <-> c (as text)
  sum = a + b`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChain(cmd, values)
		},
	}

	cmd.Flags().IntSliceVar(&values, "values", []int{1, 2, 3}, "values to set on the source")

	return cmd
}

func runChain(cmd *cobra.Command, values []int) error {
	logger := loggerFromContext(cmd.Context())

	a := vars.New(0)
	doubled := vars.Map(a, func(v int) int { return v * 2 })
	b := vars.New(0)
	c := vars.New("0")
	sum := vars.Merge2(a, b, func(a, b int) int { return a + b })

	var handles vars.Handles
	defer handles.Release()

	handles.Push(vars.Bind(doubled, b))
	handles.PushBinding(vars.BindMapBidi(b, c, strconv.Itoa, func(s string) int {
		n, err := strconv.Atoi(s)
		if err != nil {
			logger.Warn("not a number", "value", s)
		}
		return n
	}))

	out := cmd.OutOrStdout()
	for _, v := range values {
		a.Set(v)
		id := vars.Apply()

		fmt.Fprintf(out, "update %d: a=%d b=%d c=%q sum=%d\n", id, a.Get(), b.Get(), c.Get(), sum.Get())
		logger.Debug("chain settled", "update", id, "b_new", b.IsNew(), "c_new", c.IsNew())
	}

	return nil
}
