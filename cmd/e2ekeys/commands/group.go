package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"e2ekeys/internal/codec"
	"e2ekeys/internal/domain"
)

func groupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage group keys and group messages",
	}
	cmd.AddCommand(
		groupInitCmd(),
		groupStatusCmd(),
		groupAddMemberCmd(),
		groupEncryptCmd(),
		groupDecryptCmd(),
	)
	return cmd
}

func groupInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <group>",
		Short: "Create a group key and wrap it for every member with a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, stop := startSpinner("Distributing group key...")
			defer stop()
			report, err := appCtx.Facade.InitializeGroupEncryption(cmd.Context(), domain.GroupID(args[0]))
			if err != nil {
				s.FinalMSG = warning("✗") + " Group key was not distributed"
				return err
			}
			if len(report.Failed) > 0 {
				s.FinalMSG = warning("⚠") + " Group key distributed with failures"
			} else {
				s.FinalMSG = success("✓") + " Group key distributed"
			}
			stop()

			fmt.Printf("Group:   %s\nKey id:  %s\nWrapped: %d of %d capable (%d members)\n",
				report.GroupID, report.KeyID, report.Wrapped, report.CapableMembers, report.TotalMembers)
			for _, f := range report.Failed {
				fmt.Printf("  %s: %v\n", f.UserID, f.Err)
			}
			return nil
		},
	}
}

func groupStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <group>",
		Short: "Show whether group encryption is usable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := appCtx.Facade.GroupStatus(cmd.Context(), domain.GroupID(args[0]))
			if err != nil {
				return err
			}
			key := "not cached"
			if st.KeyCached {
				key = "cached (" + st.KeyID.String() + ")"
			}
			fmt.Printf("Group:   %s\nMembers: %d (%d with keys)\nKey:     %s\n",
				st.GroupID, st.TotalMembers, st.CapableMembers, key)
			return nil
		},
	}
}

func groupAddMemberCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "add-member <group> <user>",
		Short: "Add a user to a group in the directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = args[1]
			}
			if err := appCtx.HTTP.AddGroupMember(cmd.Context(), domain.GroupID(args[0]), domain.UserID(args[1]), name); err != nil {
				return err
			}
			fmt.Printf("Added %s to %s\n", args[1], args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name (default: user id)")
	return cmd
}

func groupEncryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt <group> <message>",
		Short: "Encrypt a message with the group key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := appCtx.Facade.EncryptForGroup(cmd.Context(), domain.GroupID(args[0]), []byte(args[1]))
			if err != nil {
				return err
			}
			fmt.Println(codec.EncodeMessage(msg))
			return nil
		},
	}
}

func groupDecryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <group> <compact|->",
		Short: "Decrypt a group message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := readMessage(args[1])
			if err != nil {
				return err
			}
			pt, err := appCtx.Facade.DecryptFromGroup(cmd.Context(), domain.GroupID(args[0]), msg)
			if err != nil {
				return err
			}
			fmt.Println(string(pt))
			return nil
		},
	}
}
