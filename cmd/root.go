package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/riakhq/riak-go-client/cmd/bucket"
	"github.com/riakhq/riak-go-client/cmd/counter"
	"github.com/riakhq/riak-go-client/cmd/dt"
	"github.com/riakhq/riak-go-client/cmd/object"
	"github.com/riakhq/riak-go-client/cmd/query"
	"github.com/riakhq/riak-go-client/cmd/util"
)

const Version = "1.0.0"

var (
	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "riakctl",
		Short: "command-line client for a Riak cluster",
		Long: fmt.Sprintf(`riakctl (v%s)

A command-line client for Riak, the distributed key-value store, built
on top of the riak client core: a node pool and cluster dispatcher
speaking Riak's length-prefixed binary protocol, plus the legacy HTTP
API for bucket properties.`, Version),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return util.BindCommandFlags(cmd)
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of riakctl",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("riakctl v%s\n", Version)
		},
	}

	pingCmd = &cobra.Command{
		Use:   "ping",
		Short: "Check that a cluster node is alive",
		RunE:  runPing,
	}

	serverInfoCmd = &cobra.Command{
		Use:   "server-info",
		Short: "Print the node name and version that answered",
		RunE:  runServerInfo,
	}
)

func init() {
	cobra.OnInitialize(util.InitClientConfig)

	util.SetupClientFlags(RootCmd)

	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(pingCmd)
	RootCmd.AddCommand(serverInfoCmd)
	RootCmd.AddCommand(object.Commands)
	RootCmd.AddCommand(bucket.Commands)
	RootCmd.AddCommand(counter.Commands)
	RootCmd.AddCommand(dt.Commands)
	RootCmd.AddCommand(query.Commands)
}

func runPing(_ *cobra.Command, _ []string) error {
	c, err := util.NewClient()
	if err != nil {
		return err
	}
	defer c.Close()

	res := c.Ping()
	if !res.Success() {
		return res.Err()
	}
	fmt.Println("pong")
	return nil
}

func runServerInfo(_ *cobra.Command, _ []string) error {
	c, err := util.NewClient()
	if err != nil {
		return err
	}
	defer c.Close()

	res := c.GetServerInfo()
	if !res.Success() {
		return res.Err()
	}
	fmt.Printf("node=%s version=%s\n", res.Value.Node, res.Value.Version)
	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
