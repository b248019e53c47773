package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"e2ekeys/internal/app"
)

var (
	configPath   string
	home         string
	directoryURL string
	userID       string
	passphrase   string
	askPass      bool
	verbose      bool
	debug        bool

	cfg    app.Config
	appCtx *app.Wire

	success = color.New(color.FgGreen).SprintFunc()
	warning = color.New(color.FgYellow).SprintFunc()
)

func Execute() error {
	root := &cobra.Command{
		Use:           "e2ekeys",
		Short:         "End-to-end encryption key management",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default <home>/config.toml)")
	pf.StringVar(&home, "home", "", "device directory (default ~/.e2ekeys)")
	pf.StringVar(&directoryURL, "directory", "", "key directory base URL (e.g. http://127.0.0.1:8080)")
	pf.StringVarP(&userID, "user", "u", "", "your user id")
	pf.StringVarP(&passphrase, "passphrase", "p", "", "passphrase to protect keys")
	pf.BoolVar(&askPass, "ask-passphrase", false, "prompt for the passphrase")
	pf.BoolVarP(&verbose, "verbose", "v", false, "print progress information")
	pf.BoolVar(&debug, "debug", false, "print debug information")

	root.AddCommand(
		initCmd(),
		registerCmd(),
		regenerateCmd(),
		fingerprintCmd(),
		lookupCmd(),
		encryptCmd(),
		decryptCmd(),
		groupCmd(),
		resetCmd(),
	)

	err := root.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
	}
	return err
}

// setup resolves the effective config and builds appCtx.
func setup(cmd *cobra.Command) error {
	cfg = app.DefaultConfig()
	if home != "" {
		cfg.Home = home
	}
	if configPath == "" {
		configPath = filepath.Join(cfg.Home, app.ConfigFile)
	}
	if err := app.LoadConfig(configPath, &cfg); err != nil {
		return err
	}

	// Flags win over the file.
	flags := cmd.Flags()
	if flags.Changed("home") {
		cfg.Home = home
	}
	if flags.Changed("directory") {
		cfg.DirectoryURL = directoryURL
	}
	if flags.Changed("user") {
		cfg.UserID = userID
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if flags.Changed("debug") {
		cfg.Debug = debug
	}

	cfg.Passphrase = passphrase
	if askPass && passphrase == "" {
		p, err := readPassphrase("Passphrase: ")
		if err != nil {
			return err
		}
		cfg.Passphrase = p
	}

	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return err
	}
	w, err := app.NewWire(cfg)
	if err != nil {
		return err
	}
	appCtx = w
	return nil
}

func readPassphrase(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("cannot read passphrase: stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read passphrase: %w", err)
	}
	return string(b), nil
}
