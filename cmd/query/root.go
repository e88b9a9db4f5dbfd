// Package query implements riakctl's secondary-index, search and
// map-reduce commands.
package query

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/riakhq/riak-go-client/cmd/util"
	"github.com/riakhq/riak-go-client/riak"
)

// Commands represents the query command group.
var Commands = &cobra.Command{
	Use:   "query",
	Short: "Secondary-index, search and map-reduce queries",
}

func init() {
	util.SetupClientFlags(Commands)

	Commands.AddCommand(indexCmd)
	Commands.AddCommand(searchCmd)
	Commands.AddCommand(mapReduceCmd)
}

var (
	indexCmd = &cobra.Command{
		Use:   "index [bucket] [index-name] [key]",
		Short: "Runs an exact-match secondary-index query",
		Args:  cobra.ExactArgs(3),
		RunE:  runIndex,
	}
	searchCmd = &cobra.Command{
		Use:   "search [index] [query]",
		Short: "Runs a full-text search query, printing the raw result rows",
		Args:  cobra.ExactArgs(2),
		RunE:  runSearch,
	}
	mapReduceCmd = &cobra.Command{
		Use:   "map-reduce [job-file]",
		Short: "Submits a map-reduce job specification read from job-file",
		Args:  cobra.ExactArgs(1),
		RunE:  runMapReduce,
	}
)

func runIndex(_ *cobra.Command, args []string) error {
	c, err := util.NewClient()
	if err != nil {
		return err
	}
	defer c.Close()

	res := c.Index(util.GetBucketType(), args[0], args[1], []byte(args[2]), nil, nil, riak.IndexOptions{})
	if !res.Success() {
		return res.Err()
	}
	for _, k := range res.Value.Keys {
		fmt.Println(string(k))
	}
	return nil
}

func runSearch(_ *cobra.Command, args []string) error {
	c, err := util.NewClient()
	if err != nil {
		return err
	}
	defer c.Close()

	res := c.Search(args[0], args[1], riak.SearchOptions{})
	if !res.Success() {
		return res.Err()
	}
	fmt.Println(string(res.Value))
	return nil
}

func runMapReduce(_ *cobra.Command, args []string) error {
	job, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("riakctl: reading %s: %w", args[0], err)
	}

	c, err := util.NewClient()
	if err != nil {
		return err
	}
	defer c.Close()

	res := c.MapReduce(job, riak.MapReduceOptions{ContentType: "application/json"})
	if !res.Success() {
		return res.Err()
	}
	for _, r := range res.Value {
		fmt.Println(string(r))
	}
	return nil
}
