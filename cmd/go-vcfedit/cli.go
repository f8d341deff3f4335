package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-vcfedit/internal/config"
	"github.com/tartampluch/go-vcfedit/internal/engine"
	"github.com/tartampluch/go-vcfedit/internal/i18n"
	"github.com/tartampluch/go-vcfedit/internal/vcf"
)

// cli holds the dependencies and flag values shared by every command.
type cli struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	// Dependencies, replaced in tests.
	fetcher     engine.VCardFetcher
	credentials engine.Credentials
	clock       vcf.Clock
	generator   *vcf.Generator
	setupLog    func(debug bool, console io.Writer) io.Closer

	// Resolved before each command runs.
	settings  config.Settings
	tr        *i18n.Translator
	logCloser io.Closer

	// Flags. Empty string values fall back to settings.
	debug        bool
	lang         string
	configDir    string
	output       string
	vcardVersion string
	countryCode  string
	level        string
	upcoming     bool
	url          string
	user         string
	port         string
	asVCF        bool
}

func newCLI(in io.Reader, out, errOut io.Writer) *cli {
	return &cli{
		in:          in,
		out:         out,
		errOut:      errOut,
		fetcher:     engine.NewHTTPFetcher(),
		credentials: engine.NewKeyringCredentials(),
		clock:       vcf.RealClock{},
		generator:   &vcf.Generator{},
		setupLog:    setupLogging,
	}
}

func (c *cli) close() {
	if c.logCloser != nil {
		_ = c.logCloser.Close() // Best effort close
	}
}

// rootCommand builds the command tree.
func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               config.CommandName,
		Short:             config.CmdDescRoot,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.prepare,
	}
	root.SetIn(c.in)
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	pf := root.PersistentFlags()
	pf.BoolVar(&c.debug, config.FlagDebug, false, config.FlagDescDebug)
	pf.StringVar(&c.lang, config.FlagLang, "", fmt.Sprintf(config.FlagDescLang, strings.Join(i18n.Languages(), ", ")))
	pf.StringVar(&c.configDir, config.FlagConfigDir, "", config.FlagDescConfigDir)
	pf.StringVarP(&c.output, config.FlagOutput, config.FlagShortOutput, "", config.FlagDescOutput)

	root.AddCommand(
		c.parseCommand(),
		c.generateCommand(),
		c.convertCommand(),
		c.validateCommand(),
		c.lintCommand(),
		c.qrCommand(),
		c.showCommand(),
		c.calendarCommand(),
		c.serveCommand(),
		c.importCommand(),
		c.loginCommand(),
		c.versionCommand(),
	)
	return root
}

// prepare sets up logging, settings and the translator for the running command.
func (c *cli) prepare(cmd *cobra.Command, _ []string) error {
	c.logCloser = c.setupLog(c.debug, c.errOut)
	logStartupInfo(cmd.Name())

	dir := c.configDir
	if dir == "" {
		d, err := config.DefaultSettingsDir()
		if err != nil {
			slog.Warn(config.ErrConfigDir,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyError, err,
			)
		}
		dir = d
	}

	settings, err := config.LoadSettings(dir)
	if err != nil {
		return err
	}
	c.settings = settings

	lang := c.lang
	if lang == "" {
		lang = settings.Language
	}
	c.tr = i18n.New(lang)
	return nil
}

// targetVersion returns the --vcard-version flag, or the configured default.
func (c *cli) targetVersion() (vcf.Version, error) {
	v := c.vcardVersion
	if v == "" {
		v = c.settings.DefaultVersion
	}
	return vcf.ParseVersion(v)
}

func (c *cli) orSetting(flag, setting string) string {
	if flag != "" {
		return flag
	}
	return setting
}

// openInput opens the file named by args, or stdin when there is none.
func (c *cli) openInput(args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == config.StdinArg {
		return io.NopCloser(c.in), nil
	}
	return os.Open(args[0])
}

// readText reads one input as VCF text.
func (c *cli) readText(args []string) (string, error) {
	rc, err := c.openInput(args)
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()
	return vcf.ReadText(rc)
}

// readRecord parses the first card of the input.
func (c *cli) readRecord(args []string) (*vcf.Record, error) {
	text, err := c.readText(args)
	if err != nil {
		return nil, err
	}
	if cards := vcf.Split(text); len(cards) > 0 {
		text = cards[0]
	}
	return vcf.Parse(text), nil
}

// readRecords parses every card of every input; stdin when args is empty.
// Cards without content are skipped.
func (c *cli) readRecords(ctx context.Context, args []string) ([]*vcf.Record, error) {
	if len(args) == 0 {
		args = []string{config.StdinArg}
	}

	var b strings.Builder
	for _, arg := range args {
		text, err := c.readText([]string{arg})
		if err != nil {
			return nil, err
		}
		b.WriteString(text)
		b.WriteString(config.VCardLineEnding)
	}
	return engine.ParseCards(ctx, b.String())
}

// readJSONRecord decodes a record previously written by "parse".
func (c *cli) readJSONRecord(args []string) (*vcf.Record, error) {
	rc, err := c.openInput(args)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	r := &vcf.Record{}
	if err := json.NewDecoder(rc).Decode(r); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrJSONDecode, err)
	}
	r.Normalize()
	return r, nil
}

// generateAll serialises records one after the other in a single document.
func (c *cli) generateAll(records []*vcf.Record, v vcf.Version) string {
	var b strings.Builder
	for _, r := range records {
		b.WriteString(c.generator.Generate(r, v))
	}
	return b.String()
}

// writeOutput writes data to --output, or to stdout.
func (c *cli) writeOutput(data []byte) error {
	if c.output == "" {
		if _, err := c.out.Write(data); err != nil {
			return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
		}
		return nil
	}
	if err := os.WriteFile(c.output, data, config.FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
	}
	return nil
}

func (c *cli) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", config.JSONIndent)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrJSONEncode, err)
	}
	return c.writeOutput(append(data, '\n'))
}

var (
	errLintIssues  = errors.New(config.ErrLintIssues)
	errQRCapacity  = errors.New(config.ErrQRCapacity)
	errUserMissing = errors.New(config.ErrUserRequired)
	errCountryCode = errors.New(config.ErrCountryCode)
)
