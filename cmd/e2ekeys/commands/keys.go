package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"e2ekeys/internal/app"
	"e2ekeys/internal/codec"
	"e2ekeys/internal/crypto"
	"e2ekeys/internal/domain"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Save the config and create a registered key pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.SaveConfig(configPath, cfg); err != nil {
				return err
			}
			appCtx.Log.Infof("config written to %s", configPath)

			s, stop := startSpinner("Creating key pair...")
			defer stop()
			kp, err := appCtx.Facade.EnsureKeyPair(cmd.Context())
			if err != nil {
				s.FinalMSG = warning("✗") + " Could not create key pair"
				return err
			}
			s.FinalMSG = success("✓") + " Key pair ready"
			stop()

			fmt.Printf("User:        %s\nKey id:      %s\nFingerprint: %s\nVault:       %s\n",
				appCtx.Facade.Self(), kp.KeyID, crypto.Fingerprint(kp.Public.Slice()), filepath.Clean(appCtx.Vault.Dir()))
			return nil
		},
	}
}

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Publish the local public key to the directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, stop := startSpinner("Registering public key...")
			defer stop()
			id, err := appCtx.Facade.RegisterKeyPair(cmd.Context())
			if err != nil {
				s.FinalMSG = warning("✗") + " Registration failed"
				return err
			}
			stop()
			fmt.Printf("Registered as %s (key id %s)\n", appCtx.Facade.Self(), id)
			return nil
		},
	}
}

func regenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regenerate",
		Short: "Replace the key pair locally and in the directory",
		Long: "Replace the key pair locally and in the directory.\n\n" +
			"Messages sealed to or from the old key can no longer be decrypted, and\n" +
			"group keys must be redistributed by a member that still holds them.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, stop := startSpinner("Regenerating key pair...")
			defer stop()
			kp, err := appCtx.Facade.RegenerateKeyPair(cmd.Context())
			if err != nil {
				s.FinalMSG = warning("✗") + " Regeneration failed"
				return err
			}
			stop()
			fmt.Printf("New key id:  %s\nFingerprint: %s\n", kp.KeyID, crypto.Fingerprint(kp.Public.Slice()))
			return nil
		},
	}
}

func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the fingerprint of the local public key",
		RunE: func(cmd *cobra.Command, args []string) error {
			fp, err := appCtx.Facade.Fingerprint()
			if err != nil {
				return err
			}
			fmt.Println(fp)
			return nil
		},
	}
}

func lookupCmd() *cobra.Command {
	var armor bool
	cmd := &cobra.Command{
		Use:   "lookup <user>",
		Short: "Show the public key a user has registered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, ok, err := appCtx.Facade.LookupPublicKey(cmd.Context(), domain.UserID(args[0]))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s: %w", args[0], domain.ErrPeerHasNoKey)
			}
			if armor {
				fmt.Print(codec.ArmorPublicKey(rec))
				return nil
			}
			fmt.Printf("User:        %s\nKey id:      %s\nPublic key:  %s\nFingerprint: %s\n",
				rec.UserID, rec.KeyID, codec.EncodeKey(rec.PublicKey), crypto.Fingerprint(rec.PublicKey))
			return nil
		},
	}
	cmd.Flags().BoolVar(&armor, "armor", false, "print the key as a PEM block")
	return cmd
}

func resetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the local key pair and every cached group key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset deletes local keys; pass --yes to confirm")
			}
			if err := appCtx.Facade.ClearKeys(); err != nil {
				return err
			}
			fmt.Println(success("✓") + " Local keys removed")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
