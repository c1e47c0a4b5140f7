package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/corobus/corobus"
	"github.com/corobus/corobus/internal/fiber"
)

func newDemoCmd(v *viper.Viper) *cobra.Command {
	demo := &cobra.Command{
		Use:   "demo",
		Short: "Run one of the spec's concrete scenarios",
	}
	demo.AddCommand(
		newPingPongCmd(v),
		newBackpressureCmd(v),
		newBroadcastCmd(v),
		newCloseWaitersCmd(),
		newDescriptorReuseCmd(),
		newVectorSendCmd(v),
	)
	return demo
}

func parseUints(csv string) ([]corobus.Message, error) {
	var out []corobus.Message
	for _, field := range strings.Split(csv, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid message %q: %w", field, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// settle gives spawned fibers a moment to run. corobusctl is a
// demonstration harness, not a scheduler test: it is not trying to prove
// FIFO ordering, only to show the library's observable behavior.
func settle() { time.Sleep(10 * time.Millisecond) }

func newPingPongCmd(v *viper.Viper) *cobra.Command {
	var capacity int
	var messagesCSV string
	cmd := &cobra.Command{
		Use:   "pingpong",
		Short: "Capacity-1 ping-pong: one sender, one receiver",
		RunE: func(cmd *cobra.Command, args []string) error {
			messages, err := parseUints(messagesCSV)
			if err != nil {
				return err
			}
			bus := corobus.New()
			desc := bus.Open(capacity)

			group := fiber.NewGroup(context.Background())
			group.Go(func(ctx context.Context) error {
				for _, m := range messages {
					if err := bus.Send(ctx, desc, m); err != nil {
						return err
					}
				}
				return nil
			})
			var received []corobus.Message
			group.Go(func(ctx context.Context) error {
				for range messages {
					m, err := bus.Recv(ctx, desc)
					if err != nil {
						return err
					}
					received = append(received, m)
				}
				return nil
			})
			if err := group.Wait(); err != nil {
				return err
			}
			fmt.Println("received:", received)
			return nil
		},
	}
	cmd.Flags().IntVar(&capacity, "capacity", 1, "channel capacity")
	cmd.Flags().StringVar(&messagesCSV, "messages", "7,8", "comma-separated messages to send")
	_ = v.BindPFlag("pingpong.capacity", cmd.Flags().Lookup("capacity"))
	return cmd
}

func newBackpressureCmd(v *viper.Viper) *cobra.Command {
	var capacity int
	var sendersCSV string
	cmd := &cobra.Command{
		Use:   "backpressure",
		Short: "Bounded channel with several blocked senders and one receiver",
		RunE: func(cmd *cobra.Command, args []string) error {
			senderValues, err := parseUints(sendersCSV)
			if err != nil {
				return err
			}
			bus := corobus.New()
			desc := bus.Open(capacity)

			group := fiber.NewGroup(context.Background())
			for _, m := range senderValues {
				m := m
				group.Go(func(ctx context.Context) error {
					return bus.Send(ctx, desc, m)
				})
			}
			var received []corobus.Message
			group.Go(func(ctx context.Context) error {
				for range senderValues {
					m, err := bus.Recv(ctx, desc)
					if err != nil {
						return err
					}
					received = append(received, m)
				}
				return nil
			})
			if err := group.Wait(); err != nil {
				return err
			}
			fmt.Println("received:", received)
			return nil
		},
	}
	cmd.Flags().IntVar(&capacity, "capacity", 2, "channel capacity")
	cmd.Flags().StringVar(&sendersCSV, "senders", "10,11,12", "comma-separated values, one sender each")
	_ = v.BindPFlag("backpressure.capacity", cmd.Flags().Lookup("capacity"))
	return cmd
}

func newBroadcastCmd(v *viper.Viper) *cobra.Command {
	var channels int
	var value uint64
	cmd := &cobra.Command{
		Use:   "broadcast",
		Short: "Broadcast fan-out to every open channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			bus := corobus.New()
			descs := make([]int, channels)
			for i := range descs {
				descs[i] = bus.Open(1)
			}
			if err := bus.TryBroadcast(value); err != nil {
				return err
			}
			for _, d := range descs {
				m, err := bus.TryRecv(d)
				if err != nil {
					return err
				}
				fmt.Printf("channel %d received %d\n", d, m)
			}

			// Now fill the first channel and show that a broadcast
			// blocked on one full channel leaves every other channel
			// unchanged.
			if err := bus.TrySend(descs[0], value); err != nil {
				return err
			}
			if err := bus.TryBroadcast(value); err == nil {
				return fmt.Errorf("expected broadcast to report would-block with channel %d full", descs[0])
			} else {
				slog.Debug("broadcast blocked as expected", "err", err)
			}
			if _, err := bus.TryRecv(descs[1]); err == nil {
				return fmt.Errorf("expected channel %d to remain empty after the blocked broadcast", descs[1])
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&channels, "channels", 2, "number of capacity-1 channels to open")
	cmd.Flags().Uint64Var(&value, "value", 99, "message to broadcast")
	_ = v.BindPFlag("broadcast.channels", cmd.Flags().Lookup("channels"))
	return cmd
}

func newCloseWaitersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close-waiters",
		Short: "Close a channel while a receiver is blocked on it",
		RunE: func(cmd *cobra.Command, args []string) error {
			bus := corobus.New()
			desc := bus.Open(1)

			result := make(chan error, 1)
			fiber.Spawn(context.Background(), func(ctx context.Context) {
				_, err := bus.Recv(ctx, desc)
				result <- err
			})
			settle()
			bus.Close(desc)
			settle()

			err := <-result
			fmt.Println("receiver returned:", err)
			return nil
		},
	}
}

func newDescriptorReuseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "descriptor-reuse",
		Short: "Close the middle of three channels and reopen",
		RunE: func(cmd *cobra.Command, args []string) error {
			bus := corobus.New()
			d0 := bus.Open(1)
			d1 := bus.Open(1)
			d2 := bus.Open(1)
			bus.Close(d1)
			reused := bus.Open(1)
			fmt.Printf("d0=%d d1=%d d2=%d closed=%d reused=%d\n", d0, d1, d2, d1, reused)
			return nil
		},
	}
}

func newVectorSendCmd(v *viper.Viper) *cobra.Command {
	var capacity int
	var seedCSV, batchCSV string
	cmd := &cobra.Command{
		Use:   "vector-send",
		Short: "Vectorised partial send into an already-seeded channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := parseUints(seedCSV)
			if err != nil {
				return err
			}
			batch, err := parseUints(batchCSV)
			if err != nil {
				return err
			}
			bus := corobus.New()
			desc := bus.Open(capacity)
			for _, m := range seed {
				if err := bus.TrySend(desc, m); err != nil {
					return err
				}
			}
			n, err := bus.TrySendV(desc, batch)
			if err != nil {
				return err
			}
			fmt.Printf("pushed %d of %d\n", n, len(batch))
			if _, err := bus.TrySendV(desc, batch); err == nil {
				return fmt.Errorf("expected a full channel to report would-block")
			} else {
				slog.Debug("second send_v failed as expected", "err", err)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&capacity, "capacity", 3, "channel capacity")
	cmd.Flags().StringVar(&seedCSV, "seed", "1", "comma-separated values already queued")
	cmd.Flags().StringVar(&batchCSV, "batch", "2,3,4,5", "comma-separated values to vector-send")
	_ = v.BindPFlag("vector-send.capacity", cmd.Flags().Lookup("capacity"))
	return cmd
}
