// Package bucket implements riakctl's bucket-properties commands.
// props-get reads over the binary protocol; props-set/props-reset write
// over Riak's legacy HTTP API.
package bucket

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/riakhq/riak-go-client/cmd/util"
)

// Commands represents the bucket command group.
var Commands = &cobra.Command{
	Use:   "bucket",
	Short: "Read (binary protocol) and modify (legacy HTTP API) bucket properties",
}

func init() {
	util.SetupClientFlags(Commands)

	Commands.AddCommand(propsGetCmd)
	Commands.AddCommand(propsSetCmd)
	Commands.AddCommand(propsResetCmd)
}

var (
	propsGetCmd = &cobra.Command{
		Use:   "props-get [bucket]",
		Short: "Fetches a bucket's properties document",
		Args:  cobra.ExactArgs(1),
		RunE:  runPropsGet,
	}
	propsSetCmd = &cobra.Command{
		Use:   "props-set [bucket] [json-file]",
		Short: "Replaces a bucket's properties with a raw JSON document read from json-file",
		Args:  cobra.ExactArgs(2),
		RunE:  runPropsSet,
	}
	propsResetCmd = &cobra.Command{
		Use:   "props-reset [bucket]",
		Short: "Reverts a bucket's properties to the server defaults",
		Args:  cobra.ExactArgs(1),
		RunE:  runPropsReset,
	}
)

func runPropsGet(_ *cobra.Command, args []string) error {
	c, err := util.NewClient()
	if err != nil {
		return err
	}
	defer c.Close()

	res := c.GetBucketProps(util.GetBucketType(), args[0])
	if !res.Success() {
		return res.Err()
	}
	fmt.Println(string(res.Value))
	return nil
}

func runPropsSet(_ *cobra.Command, args []string) error {
	c, err := util.NewClient()
	if err != nil {
		return err
	}
	defer c.Close()

	props, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("riakctl: reading %s: %w", args[1], err)
	}

	res := c.SetBucketProps(util.GetBucketType(), args[0], props)
	if !res.Success() {
		return res.Err()
	}
	fmt.Println("updated")
	return nil
}

func runPropsReset(_ *cobra.Command, args []string) error {
	c, err := util.NewClient()
	if err != nil {
		return err
	}
	defer c.Close()

	res := c.ResetBucketProps(util.GetBucketType(), args[0])
	if !res.Success() {
		return res.Err()
	}
	fmt.Println("reset")
	return nil
}
