package cmd

import (
	"context"
	crand "crypto/rand"
	"crypto/rsa"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ntqbit/adobededrmtools/config"
	"github.com/ntqbit/adobededrmtools/internal/account"
	"github.com/ntqbit/adobededrmtools/internal/adept"
	"github.com/ntqbit/adobededrmtools/internal/adeptcrypto"
	"github.com/ntqbit/adobededrmtools/internal/dedrm"
	"github.com/ntqbit/adobededrmtools/internal/download"
	"github.com/ntqbit/adobededrmtools/internal/fulfillment"
	"github.com/ntqbit/adobededrmtools/internal/httpclient"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	c       *config.Conf = &config.Conf{}
)

// rootCmd is the single command this tool exposes: given an ACSM ticket, it
// obtains a license, downloads the resource, and strips its DRM.
var rootCmd = &cobra.Command{
	Use:   "adobededrmtools",
	Short: "Fulfill an ACSM ticket and strip ADEPT DRM from the resulting resources",
	RunE:  run,
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// ExecuteWithArgs runs the command with the provided argument list instead
// of os.Args. It is intended for use in tests.
func ExecuteWithArgs(args []string) error {
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// LookupFlag looks up a flag on the root command. Use "" for commandName;
// there are no subcommands in this tool.
func LookupFlag(commandName, flagName string) *pflag.Flag {
	if commandName != "" {
		return nil
	}
	if f := rootCmd.Flags().Lookup(flagName); f != nil {
		return f
	}
	return rootCmd.PersistentFlags().Lookup(flagName)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.adobededrmtools.yaml)")

	rootCmd.Flags().String("acsm", "", "path to the ACSM fulfillment ticket")
	rootCmd.Flags().String("account", "account.json", "path to the persistent account record")
	rootCmd.Flags().String("out", ".", "output directory for de-DRM'd resources")
	cobra.CheckErr(rootCmd.MarkFlagRequired("acsm"))

	cobra.CheckErr(viper.BindPFlag("acsm", rootCmd.Flags().Lookup("acsm")))
	cobra.CheckErr(viper.BindPFlag("account", rootCmd.Flags().Lookup("account")))
	cobra.CheckErr(viper.BindPFlag("out", rootCmd.Flags().Lookup("out")))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".adobededrmtools")
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	// SetEnvPrefix ensures that only ADOBEDEDRMTOOLS_* variables are mapped.
	// Without this call viper reads bare names like ACSM, which collides with
	// variables set by container runtimes and shell environments.
	viper.SetEnvPrefix("adobededrmtools")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func run(cmd *cobra.Command, args []string) error {
	runID := uuid.NewString()
	logger := log.New(os.Stderr, fmt.Sprintf("[%s] ", runID), log.LstdFlags)

	if err := viper.Unmarshal(c); err != nil {
		return fmt.Errorf("could not parse configuration: %w", err)
	}

	info, err := os.Stat(c.Out)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("output directory %q does not exist", c.Out)
	}

	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return fmt.Errorf("could not seed prng: %w", err)
	}
	adeptcrypto.Seed(seed)

	acsmData, err := os.ReadFile(c.Acsm)
	if err != nil {
		return fmt.Errorf("could not read acsm file: %w", err)
	}
	acsm, err := adept.ParseAcsm(acsmData)
	if err != nil {
		return fmt.Errorf("could not parse acsm: %w", err)
	}

	ctx := context.Background()
	client := httpclient.New()

	acct, err := account.LoadOrCreate(ctx, client, c.Account)
	if err != nil {
		return fmt.Errorf("could not load or create account: %w", err)
	}

	resources, err := fulfillment.Fulfill(ctx, client, acct, acsm)
	if err != nil {
		return fmt.Errorf("could not fulfill acsm: %w", err)
	}

	privLicenseKey, err := adeptcrypto.ParsePKCS8PrivateKey(acct.UserCredentials.PrivateLicenseKey)
	if err != nil {
		return fmt.Errorf("could not parse private license key: %w", err)
	}

	logger.Printf("fulfilled %d resource(s)", len(resources))

	for i, res := range resources {
		if err := processResource(ctx, client, logger, privLicenseKey, c.Out, i+1, res); err != nil {
			logger.Printf("could not process resource %d: %v", i+1, err)
		}
	}

	return nil
}

func processResource(ctx context.Context, client httpclient.HttpClient, logger *log.Logger, priv *rsa.PrivateKey, outDir string, index int, res fulfillment.Resource) error {
	sd, ok := res.Download.(fulfillment.SimpleDownload)
	if !ok {
		return fmt.Errorf("unsupported download descriptor")
	}

	ciphertext, err := download.Simple(ctx, client, sd.URL)
	if err != nil {
		return fmt.Errorf("could not download resource: %w", err)
	}

	contentKey, err := dedrm.UnwrapContentKey(priv, res.EncryptedKey)
	if err != nil {
		logger.Printf("could not unwrap content key for resource %d: %v", index, err)
		return writeRaw(outDir, index, ciphertext)
	}

	plain, ext, err := dedrm.Dedrm(res.MimeType, ciphertext, contentKey)
	if err != nil {
		logger.Printf("could not dedrm resource %d: %v", index, err)
		return writeRaw(outDir, index, ciphertext)
	}

	path := filepath.Join(outDir, fmt.Sprintf("resource_%d.%s", index, ext))
	if err := os.WriteFile(path, plain, 0o644); err != nil {
		return fmt.Errorf("could not write resource: %w", err)
	}
	return nil
}

func writeRaw(outDir string, index int, data []byte) error {
	path := filepath.Join(outDir, fmt.Sprintf("resource_%d.raw", index))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("could not write raw resource: %w", err)
	}
	return nil
}
