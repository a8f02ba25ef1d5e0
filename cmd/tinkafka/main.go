package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tinkafka/tinkafka/broker"
	"github.com/tinkafka/tinkafka/config"
	"github.com/tinkafka/tinkafka/logging"
)

func main() {
	cfg := config.Default()
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "tinkafka",
		Short: "A minimal Kafka wire-protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath, cfg)
			if err != nil {
				return err
			}
			// Flags set explicitly win over the config file.
			if cmd.Flags().Changed("host") {
				loaded.BrokerHost = cfg.BrokerHost
			}
			if cmd.Flags().Changed("port") {
				loaded.BrokerPort = cfg.BrokerPort
			}
			if cmd.Flags().Changed("versions") {
				loaded.VersionFilePath = cfg.VersionFilePath
			}
			if cmd.Flags().Changed("metrics-addr") {
				loaded.MetricsAddress = cfg.MetricsAddress
			}
			if cmd.Flags().Changed("log-level") {
				loaded.LogLevel = cfg.LogLevel
			}
			logging.SetLogLevel(loaded.LogLevel)

			b := broker.NewBroker(loaded, config.VersionFile{Path: loaded.VersionFilePath})
			if err := b.Startup(); err != nil {
				return err
			}

			sigs := make(chan os.Signal, 1)
			signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
			<-sigs
			b.Shutdown()
			return nil
		},
	}

	rootCmd.Flags().StringVar(&configPath, "config", "tinkafka.yaml", "path to the YAML config file")
	rootCmd.Flags().StringVar(&cfg.BrokerHost, "host", cfg.BrokerHost, "listen host")
	rootCmd.Flags().Uint32Var(&cfg.BrokerPort, "port", cfg.BrokerPort, "listen port")
	rootCmd.Flags().StringVar(&cfg.VersionFilePath, "versions", cfg.VersionFilePath, "path to the supported-version JSON table")
	rootCmd.Flags().StringVar(&cfg.MetricsAddress, "metrics-addr", cfg.MetricsAddress, "address to expose /metrics on (empty disables)")
	rootCmd.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
