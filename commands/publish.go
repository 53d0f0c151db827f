package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/cydconf/internal/messaging"
	"github.com/penwyp/cydconf/internal/util"
	"github.com/spf13/cobra"
)

// Broker credentials may come from the environment instead of flags
const (
	envMQTTUsername = "CYD_MQTT_USERNAME"
	envMQTTPassword = "CYD_MQTT_PASSWORD"
)

var (
	publishBroker   string
	publishTopic    string
	publishClientID string
	publishUsername string
	publishPassword string
	publishCAFile   string
	publishQoS      int
	publishTimeout  time.Duration
	publishDryRun   bool
)

// newMQTTClient is replaced in tests
var newMQTTClient = messaging.NewClient

var publishCmd = &cobra.Command{
	Use:   "publish <project|dir|headers...>",
	Short: "Publish the validation report over MQTT",
	Long: `Validates the project and publishes the report as a retained JSON message
to cyd/<location>/config/report. The payload never carries credentials, phone
numbers or the RF code.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)

	publishCmd.Flags().StringVar(&publishBroker, "broker", "tcp://localhost:1883",
		"MQTT broker URL (tcp://, ssl:// or ws://)")
	publishCmd.Flags().StringVar(&publishTopic, "topic", "",
		"Topic (default: cyd/<location>/config/report)")
	publishCmd.Flags().StringVar(&publishClientID, "client-id", "",
		"MQTT client ID (default: cydconf-<hostname>)")
	publishCmd.Flags().StringVar(&publishUsername, "username", "",
		"Broker username (or "+envMQTTUsername+")")
	publishCmd.Flags().StringVar(&publishPassword, "password", "",
		"Broker password (or "+envMQTTPassword+")")
	publishCmd.Flags().StringVar(&publishCAFile, "ca-file", "",
		"CA certificate for TLS brokers")
	publishCmd.Flags().IntVar(&publishQoS, "qos", 1,
		"Publish QoS (0, 1 or 2)")
	publishCmd.Flags().DurationVar(&publishTimeout, "timeout", 10*time.Second,
		"Connect and publish timeout")
	publishCmd.Flags().BoolVar(&publishDryRun, "dry-run", false,
		"Print the payload instead of publishing")
}

func runPublish(cmd *cobra.Command, args []string) error {
	if publishQoS < 0 || publishQoS > 2 {
		return fmt.Errorf("invalid qos %d", publishQoS)
	}

	in, err := loadInput(args)
	if err != nil {
		return err
	}
	report, err := validateInput(in)
	if err != nil {
		return err
	}

	topic := publishTopic
	if topic == "" {
		topic = messaging.ReportTopic(in.project)
	}
	msg := messaging.NewReportMessage(in.project, report, time.Now())

	if publishDryRun {
		data, err := sonic.ConfigStd.MarshalIndent(msg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", topic, data)
		return nil
	}

	opts := messaging.Options{
		Broker:   publishBroker,
		ClientID: publishClientID,
		Username: firstNonEmpty(publishUsername, os.Getenv(envMQTTUsername)),
		Password: firstNonEmpty(publishPassword, os.Getenv(envMQTTPassword)),
		CAFile:   publishCAFile,
		QoS:      byte(publishQoS),
		Timeout:  publishTimeout,
	}
	client, err := newMQTTClient(opts)
	if err != nil {
		return err
	}

	publisher := messaging.NewPublisher(client, opts)
	if err := publisher.Connect(); err != nil {
		return err
	}
	defer publisher.Close()

	if err := publisher.PublishReport(topic, msg); err != nil {
		return err
	}
	util.LogInfo("published report", util.F("topic", topic), util.F("broker", publishBroker))
	fmt.Fprintf(cmd.OutOrStdout(), "Published %s (%d errors, %d warnings)\n",
		topic, msg.Summary.Errors, msg.Summary.Warnings)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
