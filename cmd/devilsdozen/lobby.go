package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/devils-dozen/internal/entities"
	"github.com/KirkDiggler/devils-dozen/internal/orchestrators/game"
)

func newLobbyCmd(opts *rootOptions, factory serviceFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lobby",
		Short: "Create, join and inspect lobbies",
	}

	cmd.AddCommand(
		newLobbyCreateCmd(opts, factory),
		newLobbyJoinCmd(opts, factory),
		newLobbyStartCmd(opts, factory),
		newLobbyShowCmd(opts, factory),
	)

	return cmd
}

func newLobbyCreateCmd(opts *rootOptions, factory serviceFactory) *cobra.Command {
	var (
		mode   string
		target int
		name   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a lobby and take the host seat",
		Long: `Open a lobby for one game mode. Examples:

  lobby create --mode peasants_gamble --name Ada
  lobby create --mode pig --target 50 --name Ada`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, factory, func(ctx context.Context, svc game.Service) error {
				out, err := svc.CreateLobby(ctx, &game.CreateLobbyInput{
					Mode:        entities.GameMode(mode),
					TargetScore: target,
					HostName:    name,
				})
				if err != nil {
					return err
				}

				w := cmd.OutOrStdout()
				if opts.asJSON {
					return writeJSON(w, out)
				}
				fmt.Fprintf(w, "Created lobby %s, share code %s\n", out.Lobby.ID, out.Lobby.Code)
				fmt.Fprintf(w, "Host player ID: %s\n", out.Host.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Game mode")
	cmd.Flags().IntVar(&target, "target", 0, "Target score (0 for the mode default)")
	cmd.Flags().StringVar(&name, "name", "", "Host display name")
	_ = cmd.MarkFlagRequired("mode")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newLobbyJoinCmd(opts *rootOptions, factory serviceFactory) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "join [code]",
		Short: "Join a waiting lobby by its code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, factory, func(ctx context.Context, svc game.Service) error {
				out, err := svc.JoinLobby(ctx, &game.JoinLobbyInput{
					Code:       args[0],
					PlayerName: name,
				})
				if err != nil {
					return err
				}

				w := cmd.OutOrStdout()
				if opts.asJSON {
					return writeJSON(w, out)
				}
				fmt.Fprintf(w, "Joined lobby %s as %s\n", out.Lobby.ID, out.Player.Name)
				fmt.Fprintf(w, "Player ID: %s\n", out.Player.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newLobbyStartCmd(opts *rootOptions, factory serviceFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "start [lobby-id]",
		Short: "Start the game in a waiting lobby",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, factory, func(ctx context.Context, svc game.Service) error {
				out, err := svc.StartGame(ctx, &game.StartGameInput{LobbyID: args[0]})
				if err != nil {
					return err
				}

				w := cmd.OutOrStdout()
				if opts.asJSON {
					return writeJSON(w, out)
				}
				printLobby(w, out.Lobby, out.Players)
				printState(w, out.State)
				return nil
			})
		},
	}
}

func newLobbyShowCmd(opts *rootOptions, factory serviceFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "show [lobby-id]",
		Short: "Show a lobby, its players and the turn in progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, factory, func(ctx context.Context, svc game.Service) error {
				out, err := svc.GetGame(ctx, &game.GetGameInput{LobbyID: args[0]})
				if err != nil {
					return err
				}

				w := cmd.OutOrStdout()
				if opts.asJSON {
					return writeJSON(w, out)
				}
				printLobby(w, out.Lobby, out.Players)
				printState(w, out.State)
				return nil
			})
		},
	}
}
