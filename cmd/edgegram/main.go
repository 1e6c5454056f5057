package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/edgegram/edgegram/telegram"
)

var rootCmd = &cobra.Command{
	Use:   "edgegram",
	Short: "Run a long-polling echo bot for trying out the SDK",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start long polling with an echo handler",
	RunE:  run,
}

func init() {
	runCmd.Flags().String("token", "", "bot token (or EDGEGRAM_TOKEN)")
	runCmd.Flags().String("log-level", "info", "trace, debug, info, warn, error, disable")
	runCmd.Flags().Bool("verbose", false, "pretty-print every inbound update")

	viper.SetEnvPrefix("edgegram")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("token", runCmd.Flags().Lookup("token"))
	_ = viper.BindPFlag("log_level", runCmd.Flags().Lookup("log-level"))
	_ = viper.BindPFlag("verbose", runCmd.Flags().Lookup("verbose"))

	viper.SetConfigName("edgegram")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/edgegram")

	rootCmd.AddCommand(runCmd)
}

func run(cmd *cobra.Command, args []string) error {
	_ = viper.ReadInConfig() // config file is optional

	client, err := telegram.NewClient(telegram.ClientConfig{
		Token:    viper.GetString("token"),
		LogLevel: viper.GetString("log_level"),
	})
	if err != nil {
		return err
	}

	if viper.GetBool("verbose") {
		err := client.Register("message", func(ctx telegram.Context) error {
			pp.Println(ctx.Update())
			return nil
		})
		if err != nil {
			return err
		}
	}

	err = client.OnCommand("ping", func(ctx telegram.Context) error {
		m := ctx.(*telegram.MessageContext)
		_, err := m.Reply("pong")
		return err
	})
	if err != nil {
		return err
	}

	err = client.OnNewMessage(func(m *telegram.MessageContext) error {
		if m.Command() != "" {
			return nil
		}
		_, err := m.Respond(m.Text())
		return err
	}, telegram.FilterPrivate())
	if err != nil {
		return err
	}

	me, err := client.GetMe()
	if err != nil {
		return err
	}
	fmt.Printf("running as @%s\n", me.Username)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return client.Start(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
