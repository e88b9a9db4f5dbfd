// Package counter implements riakctl's legacy (pre-CRDT) counter
// commands.
package counter

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/riakhq/riak-go-client/cmd/util"
	"github.com/riakhq/riak-go-client/riak"
)

// Commands represents the counter command group.
var Commands = &cobra.Command{
	Use:   "counter",
	Short: "Read and update legacy (pre-CRDT) counters",
}

func init() {
	util.SetupClientFlags(Commands)

	Commands.AddCommand(getCmd)
	Commands.AddCommand(incrCmd)
}

var (
	getCmd = &cobra.Command{
		Use:   "get [bucket] [key]",
		Short: "Reads a legacy counter's value",
		Args:  cobra.ExactArgs(2),
		RunE:  runGet,
	}
	incrCmd = &cobra.Command{
		Use:   "incr [bucket] [key] [delta]",
		Short: "Applies delta (signed) to a legacy counter",
		Args:  cobra.ExactArgs(3),
		RunE:  runIncr,
	}
)

func runGet(_ *cobra.Command, args []string) error {
	c, err := util.NewClient()
	if err != nil {
		return err
	}
	defer c.Close()

	res := c.GetCounter(util.GetBucketType(), args[0], args[1], riak.CounterGetOptions{})
	if !res.Success() {
		return res.Err()
	}
	fmt.Println(res.Value)
	return nil
}

func runIncr(_ *cobra.Command, args []string) error {
	delta, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("riakctl: delta must be a signed integer: %w", err)
	}

	c, err := util.NewClient()
	if err != nil {
		return err
	}
	defer c.Close()

	res := c.UpdateCounter(util.GetBucketType(), args[0], args[1], delta, riak.CounterUpdateOptions{ReturnValue: true})
	if !res.Success() {
		return res.Err()
	}
	fmt.Println(res.Value)
	return nil
}
