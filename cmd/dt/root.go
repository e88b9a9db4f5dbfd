// Package dt implements riakctl's CRDT (counter/set/map) commands.
package dt

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/riakhq/riak-go-client/cmd/util"
	"github.com/riakhq/riak-go-client/riak"
)

// Commands represents the dt (datatype) command group.
var Commands = &cobra.Command{
	Use:   "dt",
	Short: "Fetch and update CRDT counters, sets and maps",
}

var context string

func init() {
	util.SetupClientFlags(Commands)

	Commands.PersistentFlags().StringVar(&context, "context", "", "base64 causal context from a prior fetch, required to remove set/map members")

	Commands.AddCommand(fetchCounterCmd)
	Commands.AddCommand(fetchSetCmd)
	Commands.AddCommand(fetchMapCmd)
	Commands.AddCommand(updateCounterCmd)
	Commands.AddCommand(updateSetCmd)
	Commands.AddCommand(updateMapCmd)
}

var (
	fetchCounterCmd = &cobra.Command{
		Use:   "fetch-counter [bucket] [key]",
		Short: "Fetches a CRDT counter",
		Args:  cobra.ExactArgs(2),
		RunE:  runFetchCounter,
	}
	fetchSetCmd = &cobra.Command{
		Use:   "fetch-set [bucket] [key]",
		Short: "Fetches a CRDT set",
		Args:  cobra.ExactArgs(2),
		RunE:  runFetchSet,
	}
	fetchMapCmd = &cobra.Command{
		Use:   "fetch-map [bucket] [key]",
		Short: "Fetches a CRDT map",
		Args:  cobra.ExactArgs(2),
		RunE:  runFetchMap,
	}
	updateCounterCmd = &cobra.Command{
		Use:   "update-counter [bucket] [key] [delta]",
		Short: "Applies delta (signed) to a CRDT counter",
		Args:  cobra.ExactArgs(3),
		RunE:  runUpdateCounter,
	}
	updateSetCmd = &cobra.Command{
		Use:   "update-set [bucket] [key] [+member|-member ...]",
		Short: "Adds (+member) and removes (-member) CRDT set members",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runUpdateSet,
	}
	updateMapCmd = &cobra.Command{
		Use:   "update-map [bucket] [key] [+name:kind:value|-name:kind ...]",
		Short: "Updates (+name:kind:value) and removes (-name:kind) CRDT map entries",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runUpdateMap,
	}
)

func decodeContext() ([]byte, error) {
	if context == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(context)
}

func runFetchCounter(_ *cobra.Command, args []string) error {
	c, err := util.NewClient()
	if err != nil {
		return err
	}
	defer c.Close()

	res := c.DtFetchCounter(util.GetBucketType(), args[0], args[1], riak.DtFetchOptions{IncludeContext: true})
	if !res.Success() {
		return res.Err()
	}
	fmt.Println(res.Value.Value)
	return nil
}

func runFetchSet(_ *cobra.Command, args []string) error {
	c, err := util.NewClient()
	if err != nil {
		return err
	}
	defer c.Close()

	res := c.DtFetchSet(util.GetBucketType(), args[0], args[1], riak.DtFetchOptions{IncludeContext: true})
	if !res.Success() {
		return res.Err()
	}
	for _, m := range res.Value.Members {
		fmt.Println(string(m))
	}
	fmt.Printf("context=%s\n", base64.StdEncoding.EncodeToString(res.Value.Context))
	return nil
}

func runFetchMap(_ *cobra.Command, args []string) error {
	c, err := util.NewClient()
	if err != nil {
		return err
	}
	defer c.Close()

	res := c.DtFetchMap(util.GetBucketType(), args[0], args[1], riak.DtFetchOptions{IncludeContext: true})
	if !res.Success() {
		return res.Err()
	}
	res.Value.Range(func(v riak.MapValue) bool {
		fmt.Printf("%s:%s=%s\n", v.Name, v.Kind, string(v.Value))
		return true
	})
	fmt.Printf("context=%s\n", base64.StdEncoding.EncodeToString(res.Value.Context))
	return nil
}

func runUpdateCounter(_ *cobra.Command, args []string) error {
	delta, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("riakctl: delta must be a signed integer: %w", err)
	}

	c, err := util.NewClient()
	if err != nil {
		return err
	}
	defer c.Close()

	res := c.DtUpdateCounter(util.GetBucketType(), args[0], args[1], delta, riak.DtUpdateOptions{ReturnBody: true})
	if !res.Success() {
		return res.Err()
	}
	fmt.Println(res.Value.Value)
	return nil
}

func runUpdateSet(_ *cobra.Command, args []string) error {
	ctx, err := decodeContext()
	if err != nil {
		return fmt.Errorf("riakctl: decoding --context: %w", err)
	}

	var adds, removes [][]byte
	for _, a := range args[2:] {
		switch {
		case strings.HasPrefix(a, "+"):
			adds = append(adds, []byte(a[1:]))
		case strings.HasPrefix(a, "-"):
			removes = append(removes, []byte(a[1:]))
		default:
			return fmt.Errorf("riakctl: set member %q must be prefixed with + or -", a)
		}
	}

	c, err := util.NewClient()
	if err != nil {
		return err
	}
	defer c.Close()

	res := c.DtUpdateSet(util.GetBucketType(), args[0], args[1], adds, removes, riak.DtUpdateOptions{ReturnBody: true, Context: ctx})
	if !res.Success() {
		return res.Err()
	}
	for _, m := range res.Value.Members {
		fmt.Println(string(m))
	}
	return nil
}

func runUpdateMap(_ *cobra.Command, args []string) error {
	ctx, err := decodeContext()
	if err != nil {
		return fmt.Errorf("riakctl: decoding --context: %w", err)
	}

	var updates, removes []riak.MapEntryUpdate
	for _, a := range args[2:] {
		switch {
		case strings.HasPrefix(a, "+"):
			parts := strings.SplitN(a[1:], ":", 3)
			if len(parts) != 3 {
				return fmt.Errorf("riakctl: map update %q must be +name:kind:value", a)
			}
			updates = append(updates, riak.MapEntryUpdate{Name: parts[0], Kind: parts[1], Value: []byte(parts[2])})
		case strings.HasPrefix(a, "-"):
			parts := strings.SplitN(a[1:], ":", 2)
			if len(parts) != 2 {
				return fmt.Errorf("riakctl: map remove %q must be -name:kind", a)
			}
			removes = append(removes, riak.MapEntryUpdate{Name: parts[0], Kind: parts[1]})
		default:
			return fmt.Errorf("riakctl: map entry %q must be prefixed with + or -", a)
		}
	}

	c, err := util.NewClient()
	if err != nil {
		return err
	}
	defer c.Close()

	res := c.DtUpdateMap(util.GetBucketType(), args[0], args[1], updates, removes, riak.DtUpdateOptions{ReturnBody: true, Context: ctx})
	if !res.Success() {
		return res.Err()
	}
	res.Value.Range(func(v riak.MapValue) bool {
		fmt.Printf("%s:%s=%s\n", v.Name, v.Kind, string(v.Value))
		return true
	})
	return nil
}
