package object

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riakhq/riak-go-client/cmd/util"
	"github.com/riakhq/riak-go-client/riak"
)

var (
	returnBody bool

	getCmd = &cobra.Command{
		Use:   "get [bucket] [key]",
		Short: "Fetches the object at bucket/key",
		Args:  cobra.ExactArgs(2),
		RunE:  runGet,
	}
	putCmd = &cobra.Command{
		Use:   "put [bucket] [key] [value]",
		Short: "Writes value to bucket/key, or lets Riak generate a key when key is empty",
		Args:  cobra.ExactArgs(3),
		RunE:  runPut,
	}
	deleteCmd = &cobra.Command{
		Use:   "delete [bucket] [key]",
		Short: "Deletes the object at bucket/key",
		Args:  cobra.ExactArgs(2),
		RunE:  runDelete,
	}
	deleteBucketCmd = &cobra.Command{
		Use:   "delete-bucket [bucket]",
		Short: "Lists every key in bucket and deletes each one",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeleteBucket,
	}
	listKeysCmd = &cobra.Command{
		Use:   "list-keys [bucket]",
		Short: "Lists every key in bucket (expensive - avoid on production clusters)",
		Args:  cobra.ExactArgs(1),
		RunE:  runListKeys,
	}
	listBucketsCmd = &cobra.Command{
		Use:   "list-buckets",
		Short: "Lists every bucket under the configured bucket type (expensive - avoid on production clusters)",
		Args:  cobra.NoArgs,
		RunE:  runListBuckets,
	}
)

func init() {
	putCmd.Flags().BoolVar(&returnBody, "return-body", false, "print the value Riak echoes back after the write")
}

func runGet(_ *cobra.Command, args []string) error {
	c, err := util.NewClient()
	if err != nil {
		return err
	}
	defer c.Close()

	res := c.Get(util.GetBucketType(), args[0], args[1], riak.GetOptions{})
	if !res.Success() {
		return res.Err()
	}
	printObject(res.Value)
	return nil
}

func runPut(_ *cobra.Command, args []string) error {
	c, err := util.NewClient()
	if err != nil {
		return err
	}
	defer c.Close()

	obj := riak.RiakObject{
		BucketType: util.GetBucketType(),
		Bucket:     args[0],
		Key:        args[1],
		Value:      []byte(args[2]),
	}
	res := c.Put(obj, riak.PutOptions{ReturnBody: returnBody})
	if !res.Success() {
		return res.Err()
	}
	printObject(res.Value)
	return nil
}

func runDelete(_ *cobra.Command, args []string) error {
	c, err := util.NewClient()
	if err != nil {
		return err
	}
	defer c.Close()

	res := c.Delete(util.GetBucketType(), args[0], args[1], nil, riak.DeleteOptions{})
	if !res.Success() {
		return res.Err()
	}
	fmt.Println("deleted")
	return nil
}

func runDeleteBucket(_ *cobra.Command, args []string) error {
	c, err := util.NewClient()
	if err != nil {
		return err
	}
	defer c.Close()

	res := c.DeleteBucket(util.GetBucketType(), args[0])
	if !res.Success() {
		return res.Err()
	}
	fmt.Println("bucket emptied")
	return nil
}

func runListKeys(_ *cobra.Command, args []string) error {
	c, err := util.NewClient()
	if err != nil {
		return err
	}
	defer c.Close()

	res := c.ListKeys(util.GetBucketType(), args[0])
	if !res.Success() {
		return res.Err()
	}
	for _, k := range res.Value {
		fmt.Println(string(k))
	}
	return nil
}

func runListBuckets(_ *cobra.Command, _ []string) error {
	c, err := util.NewClient()
	if err != nil {
		return err
	}
	defer c.Close()

	res := c.ListBuckets(util.GetBucketType())
	if !res.Success() {
		return res.Err()
	}
	for _, b := range res.Value {
		fmt.Println(string(b))
	}
	return nil
}

func printObject(obj riak.RiakObject) {
	if len(obj.Siblings) > 0 {
		fmt.Printf("key=%s siblings=%d\n", obj.Key, len(obj.Siblings))
		for i, s := range obj.Siblings {
			fmt.Printf("  [%d] value=%s\n", i, string(s.Value))
		}
		return
	}
	fmt.Printf("key=%s value=%s\n", obj.Key, string(obj.Value))
}
