// Package object implements riakctl's object commands: get, put, delete
// and key/bucket listing.
package object

import (
	"github.com/spf13/cobra"

	"github.com/riakhq/riak-go-client/cmd/util"
)

// Commands represents the object command group.
var Commands = &cobra.Command{
	Use:   "object",
	Short: "Get, put, delete and list Riak objects",
}

func init() {
	util.SetupClientFlags(Commands)

	Commands.AddCommand(getCmd)
	Commands.AddCommand(putCmd)
	Commands.AddCommand(deleteCmd)
	Commands.AddCommand(deleteBucketCmd)
	Commands.AddCommand(listKeysCmd)
	Commands.AddCommand(listBucketsCmd)
}
