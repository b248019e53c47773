package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"e2ekeys/internal/codec"
	"e2ekeys/internal/domain"
)

func encryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt <peer> <message>",
		Short: "Encrypt a message for a peer and print it in compact form",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := appCtx.Facade.EncryptForUser(cmd.Context(), domain.UserID(args[0]), []byte(args[1]))
			if err != nil {
				return err
			}
			fmt.Println(codec.EncodeMessage(msg))
			return nil
		},
	}
}

func decryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <peer> <compact|->",
		Short: "Decrypt a compact message from a peer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := readMessage(args[1])
			if err != nil {
				return err
			}
			pt, err := appCtx.Facade.DecryptFromUser(cmd.Context(), domain.UserID(args[0]), msg)
			if err != nil {
				return err
			}
			fmt.Println(string(pt))
			return nil
		},
	}
}

// readMessage decodes arg, or stdin when arg is "-".
func readMessage(arg string) (domain.EncryptedMessage, error) {
	if arg == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return domain.EncryptedMessage{}, err
		}
		arg = string(b)
	}
	return codec.DecodeMessage(strings.TrimSpace(arg))
}
