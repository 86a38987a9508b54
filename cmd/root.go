package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bomweave/bomweave/bomweave/format"
	"github.com/bomweave/bomweave/internal"
	"github.com/bomweave/bomweave/internal/config"
	"github.com/bomweave/bomweave/internal/log"
	"github.com/bomweave/bomweave/internal/report"
)

var persistentOpts config.CliOnlyOptions

// swappable for tests
var appFs = afero.NewOsFs()

var rootCmd = &cobra.Command{
	Use:   fmt.Sprintf("%s [BOM-FILE]", internal.ApplicationName),
	Short: "Convert CycloneDX BOMs between schema versions and encodings",
	Long: fmt.Sprintf(`Reads a CycloneDX BOM document (from a file or stdin) and re-serializes it
to the requested schema version and encoding:
    %[1]s sbom.json -i json --input-version 1.3 -o xml --output-version 1.4
    cat sbom.xml | %[1]s -i xml -o json
`, internal.ApplicationName),
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConvert,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&persistentOpts.ConfigPath, "config", "c", "", "application config file")
	rootCmd.PersistentFlags().CountVarP(&persistentOpts.Verbosity, "verbose", "v", "increase verbosity (-v = info, -vv = debug)")

	flag := "quiet"
	rootCmd.PersistentFlags().BoolP(
		flag, "q", false,
		"suppress all logging output",
	)
	if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		fmt.Printf("unable to bind flag '%s': %+v\n", flag, err)
		os.Exit(1)
	}

	for flag, usage := range map[string]string{
		"output":         "target encoding, options=[xml json], with optional file (e.g. json=sbom.json)",
		"output-version": "target schema version, options=[1.2 1.3 1.4 1.5]",
		"input":          "source encoding, options=[xml json]",
		"input-version":  "declared schema version of the source document, options=[1.2 1.3 1.4 1.5]",
		"file":           "file to write the converted document to (default is STDOUT)",
	} {
		var short string
		switch flag {
		case "output":
			short = "o"
		case "input":
			short = "i"
		}
		if short != "" {
			rootCmd.Flags().StringP(flag, short, "", usage)
		} else {
			rootCmd.Flags().String(flag, "", usage)
		}
		if err := viper.BindPFlag(flag, rootCmd.Flags().Lookup(flag)); err != nil {
			fmt.Printf("unable to bind flag '%s': %+v\n", flag, err)
			os.Exit(1)
		}
	}
}

func runConvert(_ *cobra.Command, args []string) error {
	if appConfig.Dev.ProfileCPU && appConfig.Dev.ProfileMem {
		return fmt.Errorf("cannot profile CPU and memory simultaneously")
	}
	if appConfig.Dev.ProfileCPU {
		defer profile.Start(profile.CPUProfile).Stop()
	} else if appConfig.Dev.ProfileMem {
		defer profile.Start(profile.MemProfile).Stop()
	}

	in, closeInput, err := inputReader(args)
	if err != nil {
		return err
	}
	defer closeInput()

	bom, err := format.Parse(in, appConfig.InputSpecVersion, appConfig.InputEncoding)
	if err != nil {
		return fmt.Errorf("unable to parse %s %s document: %w", appConfig.InputSpecVersion, appConfig.InputEncoding, err)
	}

	if err := bom.Validate(); err != nil {
		return fmt.Errorf("document is not a valid BOM: %w", err)
	}

	writer, err := report.MakeBomWriter([]string{appConfig.Output}, appConfig.File, appConfig.OutputSpecVersion)
	if err != nil {
		return err
	}

	if err := writer.Write(bom); err != nil {
		return err
	}
	if closer, ok := writer.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func inputReader(args []string) (io.Reader, func(), error) {
	nop := func() {}
	if len(args) > 0 {
		exists, err := afero.Exists(appFs, args[0])
		if err != nil || !exists {
			return nil, nop, fmt.Errorf("unable to find input document %q", args[0])
		}
		f, err := appFs.Open(args[0])
		if err != nil {
			return nil, nop, fmt.Errorf("unable to open input document: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	}

	piped, err := internal.IsPipedInput()
	if err != nil {
		log.Warnf("unable to determine if there is piped input: %v", err)
		piped = false
	}
	if !piped {
		return nil, nop, fmt.Errorf("no BOM document provided (supply a file argument or pipe a document to stdin)")
	}
	return os.Stdin, nop, nil
}
