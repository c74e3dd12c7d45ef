// internal/cli/lobby.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smurfs/mathic-client/internal/auth"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Obtain a bearer token from the auth service",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := auth.New(cfg.ServerURL).Login(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("export MATHIC_TOKEN=%s\n", token)
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sessions that can be joined",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := apiClient.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, info := range infos {
				owner := "?"
				if info.Player1 != nil {
					owner = info.Player1.UserName
				}
				fmt.Printf("%s  %-12s  %s\n", info.GameID, info.Status, owner)
			}
			return nil
		},
	}
}

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new session with you as first participant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := apiClient.Create(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("created session %s (%s)\n", s.GameID, s.Status)
			return nil
		},
	}
}

func newJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <session-id>",
		Short: "Join a session as second participant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := apiClient.Join(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("joined session %s (%s)\n", s.GameID, s.Status)
			return nil
		},
	}
}

func newRandomCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Join the first open session the service can find",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := apiClient.JoinRandom(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("joined session %s (%s)\n", s.GameID, s.Status)
			return nil
		},
	}
}

func newBeginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "begin <session-id>",
		Short: "Start a session once both participants are present",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := apiClient.Begin(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("session %s is %s\n", s.GameID, s.Status)
			return nil
		},
	}
}
