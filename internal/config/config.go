// Package config handles application configuration and command-line argument parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/sirupsen/logrus"

	"github.com/joe/transfer-pilot/internal/logging"
	"github.com/joe/transfer-pilot/internal/pick"
	"github.com/joe/transfer-pilot/internal/transfer"
	"github.com/joe/transfer-pilot/internal/volume"
)

// ProgramName is the binary name shown in usage text.
const ProgramName = "transfer-pilot"

// Exported variables.
var (
	ErrNoCommand = errors.New("missing command: expected run, preflight or volumes")
	ErrNoDest    = errors.New("destination path is required (--dest)")
	ErrNoPicks   = errors.New("nothing to transfer: pass --file, --folder or paths")
)

// SpaceProbe selects how free space on the destination is measured.
type SpaceProbe int

const (
	// SpaceProbeDF runs `df -k <mount>`.
	SpaceProbeDF SpaceProbe = iota
	// SpaceProbeStatfs asks the kernel directly.
	SpaceProbeStatfs
)

// String returns the string representation of SpaceProbe
func (s SpaceProbe) String() string {
	switch s {
	case SpaceProbeDF:
		return "df"
	case SpaceProbeStatfs:
		return "statfs"
	default:
		return "unknown"
	}
}

// ParseSpaceProbe parses a string into a SpaceProbe
func ParseSpaceProbe(s string) (SpaceProbe, error) {
	switch strings.ToLower(s) {
	case "df", "":
		return SpaceProbeDF, nil
	case "statfs":
		return SpaceProbeStatfs, nil
	default:
		return SpaceProbeDF, fmt.Errorf("invalid space probe: %s (valid: df, statfs)", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for go-arg
func (s *SpaceProbe) UnmarshalText(text []byte) error {
	parsed, err := ParseSpaceProbe(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

// MarshalText implements encoding.TextMarshaler
func (s SpaceProbe) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// PickArgs are the selection flags shared by run and preflight.
type PickArgs struct {
	Dest    string   `arg:"-d,--dest" help:"Destination mount point"`
	Files   []string `arg:"--file,separate" help:"File to transfer (repeatable)"`
	Folders []string `arg:"--folder,separate" help:"Folder to transfer with its tree (repeatable)"`
	Exclude []string `arg:"--exclude,separate" help:"Glob of files to leave out of folder picks (repeatable)"`
	Paths   []string `arg:"positional" help:"Paths to transfer; directories become folder picks"`
}

// Queue returns every pick as a queue entry: --file picks, then --folder
// picks, then positional paths classified by what they are on disk.
func (p *PickArgs) Queue(stat pick.StatFunc) []pick.QueueItem {
	queue := pick.Queue(pick.File, p.Files...)
	queue = append(queue, pick.Queue(pick.Folder, p.Folders...)...)

	return append(queue, pick.FromPaths(p.Paths, stat)...)
}

// Filter builds the exclusion filter from --exclude.
func (p *PickArgs) Filter() (*transfer.ExcludeFilter, error) {
	filter, err := transfer.NewExcludeFilter(p.Exclude...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse --exclude: %w", err)
	}

	return filter, nil
}

// RunCmd is the `run` subcommand.
type RunCmd struct {
	PickArgs

	Mode       transfer.CopyMode       `arg:"--mode" default:"copy" help:"copy|move"`
	Conflict   transfer.ConflictPolicy `arg:"--conflict" default:"rename" help:"overwrite|skip|rename (unknown values mean rename)"`
	Verify     transfer.VerifyMode     `arg:"--verify" default:"none" help:"none|size|sha256"`
	Yes        bool                    `arg:"-y,--yes" help:"Start without the preflight confirmation"`
	SessionLog bool                    `arg:"--session-log" help:"Also write transfer.log into the session folder"`
	JSON       bool                    `arg:"--json" help:"Print the summary as JSON"`
	NoTUI      bool                    `arg:"--no-tui" help:"Plain output even on a terminal"`
}

// Request assembles the engine request for this command.
func (r *RunCmd) Request(items []pick.Item, cancel *transfer.CancelToken) transfer.Request {
	return transfer.Request{
		Items:      items,
		Dest:       r.Dest,
		Mode:       r.Mode,
		Conflict:   r.Conflict,
		Verify:     r.Verify,
		Cancel:     cancel,
		SessionLog: r.SessionLog,
	}
}

// PreflightCmd is the `preflight` subcommand.
type PreflightCmd struct {
	PickArgs

	JSON bool `arg:"--json" help:"Print the report as JSON"`
}

// VolumesCmd is the `volumes` subcommand.
type VolumesCmd struct {
	JSON bool `arg:"--json" help:"Print volumes as JSON"`
}

// Config holds the application configuration
type Config struct {
	LogLevel   string     `arg:"--log-level,env:TRANSFER_PILOT_LOG_LEVEL" default:"info" help:"debug|info|warn|error"`
	LogFormat  string     `arg:"--log-format,env:TRANSFER_PILOT_LOG_FORMAT" default:"text" help:"text|json"`
	SpaceProbe SpaceProbe `arg:"--space-probe" default:"df" help:"How to measure free space: df|statfs"`

	Run       *RunCmd       `arg:"subcommand:run" help:"Copy or move picks into a new session folder"`
	Preflight *PreflightCmd `arg:"subcommand:preflight" help:"Report size, categories and free space without copying"`
	Volumes   *VolumesCmd   `arg:"subcommand:volumes" help:"List mounted volumes and their free space"`
}

// Description returns the program description for go-arg
func (Config) Description() string {
	return "Copy or move files and folders onto a removable drive, one dated session folder per run"
}

// Version returns the version string for go-arg
func (Config) Version() string {
	return ProgramName + " 1.0.0"
}

// Picks returns the selection flags of the active subcommand, or nil for volumes.
func (cfg *Config) Picks() *PickArgs {
	switch {
	case cfg.Run != nil:
		return &cfg.Run.PickArgs
	case cfg.Preflight != nil:
		return &cfg.Preflight.PickArgs
	default:
		return nil
	}
}

// SpaceProvider returns the free-space probe chosen by --space-probe.
func (cfg *Config) SpaceProvider() volume.SpaceProvider {
	if cfg.SpaceProbe == SpaceProbeStatfs {
		return volume.StatfsProbe{}
	}

	return volume.NewDFProbe()
}

// ConfigureLogger applies --log-level and --log-format to logger.
func (cfg *Config) ConfigureLogger(logger *logrus.Logger) error {
	logCfg := logging.NewConfig(logger)

	err := logCfg.SetLevel(cfg.LogLevel)
	if err != nil {
		return err //nolint:wrapcheck // already wrapped by logging
	}

	err = logCfg.SetFormat(cfg.LogFormat)
	if err != nil {
		return err //nolint:wrapcheck // already wrapped by logging
	}

	logCfg.Apply()

	return nil
}

// ParseFlags parses command-line flags and returns configuration
func ParseFlags() (*Config, error) {
	cfg := &Config{}

	parser := arg.MustParse(cfg)
	if parser.Subcommand() == nil {
		parser.Fail(ErrNoCommand.Error())
	}

	return PostProcessConfig(cfg, os.Stat)
}

// Parse parses args (without the program name). It returns arg.ErrHelp and
// arg.ErrVersion unchanged so callers can print usage.
func Parse(args []string) (*Config, error) {
	cfg := &Config{}

	parser, err := arg.NewParser(arg.Config{Program: ProgramName}, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build argument parser: %w", err)
	}

	err = parser.Parse(args)
	if errors.Is(err, arg.ErrHelp) || errors.Is(err, arg.ErrVersion) {
		return nil, err //nolint:wrapcheck // sentinel passed through for the caller
	}

	if err != nil {
		return nil, fmt.Errorf("failed to parse arguments: %w", err)
	}

	if parser.Subcommand() == nil {
		return nil, ErrNoCommand
	}

	return cfg, nil
}

// PostProcessConfig validates a parsed config. stat is used to check the
// destination and is usually os.Stat.
func PostProcessConfig(cfg *Config, stat pick.StatFunc) (*Config, error) {
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	if !slices.Contains(logging.FormatNames(), strings.ToLower(cfg.LogFormat)) {
		return nil, fmt.Errorf("invalid --log-format %q (valid: %s)",
			cfg.LogFormat, strings.Join(logging.FormatNames(), ", "))
	}

	picks := cfg.Picks()
	if picks == nil {
		return cfg, nil
	}

	err := picks.Validate(stat)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that there is something to transfer, that the exclusion
// patterns parse, and that the destination is an existing directory.
func (p *PickArgs) Validate(stat pick.StatFunc) error {
	if len(pick.Items(p.Queue(stat))) == 0 {
		return ErrNoPicks
	}

	if _, err := p.Filter(); err != nil {
		return err
	}

	return ValidateDest(p.Dest, stat)
}

// ValidateDest checks that dest is set and is an existing directory.
func ValidateDest(dest string, stat pick.StatFunc) error {
	if strings.TrimSpace(dest) == "" {
		return ErrNoDest
	}

	info, err := stat(dest)
	if os.IsNotExist(err) {
		return fmt.Errorf("destination path does not exist: %s", dest)
	}

	if err != nil {
		return fmt.Errorf("cannot access destination path: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("destination path is not a directory: %s", dest)
	}

	return nil
}
