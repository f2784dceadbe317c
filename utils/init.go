package utils

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// options holds every knob that can be tweaked through flags or an options file.
// The yaml tags double as the flag names.
type options struct {
	NoColorize          bool   `yaml:"no-colorize"`
	Verbose             bool   `yaml:"verbose"`
	LogLevel            string `yaml:"log-level"`
	WideningDelay       uint   `yaml:"widening-delay"`
	NarrowingIterations uint   `yaml:"narrowing-iterations"`
	MaxIterations       uint   `yaml:"max-iterations"`
}

func defaultOptions() options {
	return options{
		LogLevel:            "warning",
		WideningDelay:       2,
		NarrowingIterations: 1,
		MaxIterations:       10000,
	}
}

var opts = func() *options {
	o := defaultOptions()
	return &o
}()

type optInterface struct{}

// Opts gives read access to the current options.
func Opts() optInterface {
	return optInterface{}
}

func (optInterface) NoColorize() bool {
	return opts.NoColorize
}

// Verbose raises the fixpoint driver's log level to at least debug.
func (optInterface) Verbose() bool {
	return opts.Verbose
}

// LogLevel parses the configured log level. Unknown levels fall back to warnings.
func (optInterface) LogLevel() logrus.Level {
	lvl, err := logrus.ParseLevel(opts.LogLevel)
	if err != nil {
		return logrus.WarnLevel
	}
	return lvl
}

// WideningDelay is the number of plain joins performed at a widening point
// before the widening operator kicks in.
func (optInterface) WideningDelay() int {
	return int(opts.WideningDelay)
}

// NarrowingIterations bounds the number of descending passes after the ascending
// fixpoint has been reached.
func (optInterface) NarrowingIterations() int {
	return int(opts.NarrowingIterations)
}

func (optInterface) MaxIterations() int {
	return int(opts.MaxIterations)
}

// RegisterFlags binds all options to flags in the given flag set.
func RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&opts.NoColorize, "no-colorize", opts.NoColorize, "Disable pretty printer colorization")
	fs.BoolVar(&opts.Verbose, "verbose", opts.Verbose, "log fixpoint progress at debug level or above")
	fs.StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "fixpoint driver log level [panic | fatal | error | warning | info | debug | trace]")
	fs.UintVar(&opts.WideningDelay, "widening-delay", opts.WideningDelay, "number of joins at a widening point before widening is applied")
	fs.UintVar(&opts.NarrowingIterations, "narrowing-iterations", opts.NarrowingIterations, "number of descending iterations after stabilization")
	fs.UintVar(&opts.MaxIterations, "max-iterations", opts.MaxIterations, "abort the fixpoint computation after this many node visits")
}

// LoadOptions overrides the current options with the ones found in the given YAML file.
// Keys that are absent from the file keep their current value.
func LoadOptions(path string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading options: %w", err)
	}

	return DecodeOptions(contents)
}

// DecodeOptions overrides the current options with the given YAML document.
func DecodeOptions(contents []byte) error {
	o := *opts
	if err := yaml.Unmarshal(contents, &o); err != nil {
		return fmt.Errorf("decoding options: %w", err)
	}
	if _, err := logrus.ParseLevel(o.LogLevel); err != nil {
		return fmt.Errorf("decoding options: %w", err)
	}

	*opts = o
	return nil
}

// ResetOptions restores the default options.
func ResetOptions() {
	*opts = defaultOptions()
}

func init() {
	// Calling flag.Parse in init messes up unit tests, so only register here.
	RegisterFlags(flag.CommandLine)

	// Set up logging
	log.SetFlags(log.Ltime | log.Lshortfile)
}
