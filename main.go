package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Pipeline stages
	resetTime bool
	destDir   string
	toJPEG    bool

	// Metadata tool
	exifToolBin string

	// Collection
	maxDepth int
	noIgnore bool

	// Output
	onCollision string
	verify      bool
	noColor     bool

	interactiveMode bool

	cfgFile string

	// exitCode is set by the root command and returned from main.
	exitCode int
)

// version is the application version, set via ldflags.
var version string = "dev"

var rootCmd = &cobra.Command{
	Use:   "metascrub [PATHS...]",
	Short: "Strip EXIF/IPTC metadata from images and rename them sequentially.",
	Long: `metascrub removes all metadata and embedded thumbnails from image files
with exiftool, optionally resets their timestamps, and renames them to
photo_001, photo_002, ... either in place or into a destination directory,
optionally converting every image to JPEG.`,
	Version:      version,
	SilenceUsage: true,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && !viper.GetBool("interactive") {
			return errors.New("requires at least one file or directory")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := optionsFromConfig()
		if err != nil {
			return err
		}
		if viper.GetBool("no_color") {
			color.NoColor = true
		}

		inputPaths := args
		if len(inputPaths) == 0 {
			inputPaths, err = selectInteractive(newReporter(os.Stdout))
			if err != nil {
				return err
			}
			if inputPaths == nil {
				exitCode = 1
				return nil
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		exitCode = run(ctx, inputPaths, opts, os.Stdout)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/metascrub/config.toml)")

	// Pipeline stages
	rootCmd.Flags().BoolVarP(&resetTime, "reset-time", "r", false, "Reset file timestamps to now")
	viper.BindPFlag("reset_time", rootCmd.Flags().Lookup("reset-time"))
	rootCmd.Flags().StringVarP(&destDir, "dest", "d", "", "Destination directory (default: same as original)")
	viper.BindPFlag("dest", rootCmd.Flags().Lookup("dest"))
	rootCmd.Flags().BoolVarP(&toJPEG, "to-jpeg", "j", false, "Convert all images to JPEG format")
	viper.BindPFlag("to_jpeg", rootCmd.Flags().Lookup("to-jpeg"))

	// Metadata tool
	rootCmd.Flags().StringVar(&exifToolBin, "exiftool", defaultExifTool, "exiftool binary name or path")
	viper.BindPFlag("exiftool", rootCmd.Flags().Lookup("exiftool"))

	// Collection
	rootCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Maximum directory depth to traverse (0 for no limit)")
	viper.BindPFlag("max_depth", rootCmd.Flags().Lookup("max-depth"))
	rootCmd.Flags().BoolVar(&noIgnore, "no-ignore", false, "Don't respect "+ignoreFileName+" files")
	viper.BindPFlag("no_ignore", rootCmd.Flags().Lookup("no-ignore"))

	// Output
	rootCmd.Flags().StringVar(&onCollision, "on-collision", string(CollisionOverwrite), "When a destination name exists: overwrite, skip, error or suffix")
	viper.BindPFlag("on_collision", rootCmd.Flags().Lookup("on-collision"))
	rootCmd.Flags().BoolVar(&verify, "verify", false, "Re-read EXIF after scrubbing and report leftovers")
	viper.BindPFlag("verify", rootCmd.Flags().Lookup("verify"))
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored status prefixes")
	viper.BindPFlag("no_color", rootCmd.Flags().Lookup("no-color"))

	// Interactive Mode
	rootCmd.Flags().BoolVar(&interactiveMode, "interactive", false, "Pick images with a fuzzy finder when no paths are given")
	viper.BindPFlag("interactive", rootCmd.Flags().Lookup("interactive"))

	viper.SetDefault("exiftool", defaultExifTool)
	viper.SetDefault("on_collision", string(CollisionOverwrite))
	viper.SetDefault("max_depth", 0)
	viper.SetDefault("reset_time", false)
	viper.SetDefault("to_jpeg", false)
	viper.SetDefault("no_ignore", false)
	viper.SetDefault("verify", false)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		path, err := homedir.Expand(cfgFile)
		cobra.CheckErr(err)
		viper.SetConfigFile(path)
	} else {
		home, err := homedir.Dir()
		cobra.CheckErr(err)

		// Search config in home/.config/metascrub and the working directory for "config.<ext>".
		viper.AddConfigPath(filepath.Join(home, ".config", "metascrub"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("METASCRUB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // METASCRUB_DEST, METASCRUB_EXIFTOOL, ...

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
		}
	}
}

// optionsFromConfig resolves the run options from viper (flag > env > config file > default).
func optionsFromConfig() (Options, error) {
	policy, err := parseCollisionPolicy(viper.GetString("on_collision"))
	if err != nil {
		return Options{}, err
	}

	depth := viper.GetInt("max_depth")
	if depth < 0 {
		return Options{}, fmt.Errorf("--max-depth must be 0 or positive, got %d", depth)
	}

	dest, err := homedir.Expand(viper.GetString("dest"))
	if err != nil {
		return Options{}, fmt.Errorf("expanding --dest: %w", err)
	}
	tool, err := homedir.Expand(viper.GetString("exiftool"))
	if err != nil {
		return Options{}, fmt.Errorf("expanding --exiftool: %w", err)
	}

	return Options{
		ResetTime:   viper.GetBool("reset_time"),
		DestDir:     dest,
		ToJPEG:      viper.GetBool("to_jpeg"),
		ExifTool:    tool,
		OnCollision: policy,
		MaxDepth:    depth,
		NoIgnore:    viper.GetBool("no_ignore"),
		Verify:      viper.GetBool("verify"),
	}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
	os.Exit(exitCode)
}
