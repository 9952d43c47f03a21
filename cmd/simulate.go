package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartenergy/aeos-ml/config"
	"github.com/smartenergy/aeos-ml/infra/logger"
	"github.com/smartenergy/aeos-ml/infra/mqtt"
	"github.com/smartenergy/aeos-ml/simulator"
)

var simCfg simulator.Config

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Publish synthetic machine telemetry to the MQTT broker",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&simCfg.Machines, "machines", 3, "number of simulated machines")
	simulateCmd.Flags().IntVar(&simCfg.IntervalSeconds, "interval", 5, "seconds between readings")
	simulateCmd.Flags().Float64Var(&simCfg.SpikeProbability, "spike-probability", 0.02, "chance per reading of an injected outlier")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	mqttCfg := cfg.MQTT
	if mqttCfg.Broker == "" {
		return errors.New("mqtt broker is required to simulate")
	}
	mqttCfg.Enabled = true
	mqttCfg.ClientID = fmt.Sprintf("%s-sim-%d", mqttCfg.ClientID, time.Now().UnixNano())
	simCfg.TopicPrefix = readingsPrefix(mqttCfg.ReadingsTopic)

	client, err := mqtt.NewClient(mqttCfg)
	if err != nil {
		return fmt.Errorf("mqtt client: %w", err)
	}
	defer client.Disconnect()

	sim := simulator.New(simCfg, client, logger.New("simulator"))
	if err := sim.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// readingsPrefix derives the publish prefix from a subscription filter like
// "aeos/machines/+/readings".
func readingsPrefix(filter string) string {
	if idx := len(filter) - len("/+/readings"); idx > 0 && filter[idx:] == "/+/readings" {
		return filter[:idx]
	}
	return "aeos/machines"
}
