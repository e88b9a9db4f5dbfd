// Package util holds the flag registration and viper/godotenv wiring
// shared by every riakctl subcommand.
package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/riakhq/riak-go-client/riak"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupClientFlags adds the flags every riakctl subcommand that talks to
// a cluster needs.
func SetupClientFlags(cmd *cobra.Command) {
	key := "nodes"
	cmd.PersistentFlags().String(key, "localhost:8087", WrapString("Comma-separated host:port list of binary-protocol Riak nodes"))

	key = "http-nodes"
	cmd.PersistentFlags().String(key, "", WrapString("Comma-separated list of legacy HTTP endpoint base URLs (e.g. http://host:8098), paired with --nodes by index. Required for bucket-props commands"))

	key = "serializer"
	cmd.PersistentFlags().String(key, "binary", WrapString("Wire serializer to use (binary, gob, json)"))

	key = "pool-size"
	cmd.PersistentFlags().Int(key, 8, WrapString("Max live connections kept per node"))

	key = "retry-count"
	cmd.PersistentFlags().Int(key, 2, WrapString("Additional nodes a retryable failure is attempted on"))

	key = "max-consecutive-failures"
	cmd.PersistentFlags().Int(key, 3, WrapString("Failure streak length logged as sustained rather than flaky; cooldown itself trips on the first failure"))

	key = "cooldown"
	cmd.PersistentFlags().Duration(key, 30*time.Second, WrapString("How long a node stays skipped after a failed attempt"))

	key = "connect-timeout"
	cmd.PersistentFlags().Duration(key, 5*time.Second, WrapString("Dial timeout per connection attempt"))

	key = "read-timeout"
	cmd.PersistentFlags().Duration(key, 30*time.Second, WrapString("Per-request read deadline"))

	key = "write-timeout"
	cmd.PersistentFlags().Duration(key, 30*time.Second, WrapString("Per-request write deadline"))

	key = "idle-timeout"
	cmd.PersistentFlags().Duration(key, 5*time.Minute, WrapString("How long a pooled connection may sit idle before it is retired"))

	key = "bucket-type"
	cmd.PersistentFlags().String(key, "default", WrapString("Bucket type to operate against"))
}

// InitClientConfig initializes configuration from environment variables
func InitClientConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("riak")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetClientConfig assembles a riak.ClientConfig from the bound viper
// values. --nodes and --http-nodes are paired up by index.
func GetClientConfig() (riak.ClientConfig, error) {
	nodeAddrs := splitNonEmpty(viper.GetString("nodes"))
	if len(nodeAddrs) == 0 {
		return riak.ClientConfig{}, fmt.Errorf("riakctl: --nodes must name at least one host:port")
	}
	httpAddrs := splitNonEmpty(viper.GetString("http-nodes"))

	config := riak.DefaultClientConfig()
	config.Serializer = viper.GetString("serializer")
	config.PoolSize = viper.GetInt("pool-size")
	config.RetryCount = viper.GetInt("retry-count")
	config.MaxConsecutiveFailures = viper.GetInt("max-consecutive-failures")
	config.Cooldown = viper.GetDuration("cooldown")
	config.ConnectTimeout = viper.GetDuration("connect-timeout")
	config.ReadTimeout = viper.GetDuration("read-timeout")
	config.WriteTimeout = viper.GetDuration("write-timeout")
	config.IdleTimeout = viper.GetDuration("idle-timeout")

	for i, addr := range nodeAddrs {
		nc := riak.NodeConfig{Name: fmt.Sprintf("node-%d", i), Addr: addr}
		if i < len(httpAddrs) {
			nc.HTTPAddr = httpAddrs[i]
		}
		config.Nodes = append(config.Nodes, nc)
	}
	return config, nil
}

func splitNonEmpty(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetBucketType returns the bound --bucket-type value.
func GetBucketType() string {
	return viper.GetString("bucket-type")
}

// NewClient builds a riak.Client from the bound viper values.
func NewClient() (*riak.Client, error) {
	config, err := GetClientConfig()
	if err != nil {
		return nil, err
	}
	return riak.NewClient(config)
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
