package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-vcfedit/internal/calendar"
	"github.com/tartampluch/go-vcfedit/internal/config"
	"github.com/tartampluch/go-vcfedit/internal/engine"
	"github.com/tartampluch/go-vcfedit/internal/lint"
	"github.com/tartampluch/go-vcfedit/internal/phone"
	"github.com/tartampluch/go-vcfedit/internal/qr"
	"github.com/tartampluch/go-vcfedit/internal/server"
	"github.com/tartampluch/go-vcfedit/internal/vcf"
)

func (c *cli) parseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdParse,
		Short: config.CmdDescParse,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			r, err := c.readRecord(args)
			if err != nil {
				return err
			}
			return c.writeJSON(r)
		},
	}
}

func (c *cli) generateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.CmdGenerate,
		Short: config.CmdDescGenerate,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			v, err := c.targetVersion()
			if err != nil {
				return err
			}
			r, err := c.readJSONRecord(args)
			if err != nil {
				return err
			}
			return c.writeOutput([]byte(c.generator.Generate(r, v)))
		},
	}
	cmd.Flags().StringVar(&c.vcardVersion, config.FlagVersion, "", config.FlagDescVersion)
	return cmd
}

func (c *cli) convertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.CmdConvert,
		Short: config.CmdDescConvert,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := c.targetVersion()
			if err != nil {
				return err
			}
			cc := phone.Normalize(c.orSetting(c.countryCode, c.settings.CountryCode))
			if cc != "" && phone.ExtractCountryCode(cc) != cc {
				return fmt.Errorf("%w: %q", errCountryCode, cc)
			}
			records, err := c.readRecords(cmd.Context(), args)
			if err != nil {
				return err
			}
			if cc != "" {
				for i, r := range records {
					records[i] = withCountryCode(r, cc)
				}
			}
			return c.writeOutput([]byte(c.generateAll(records, v)))
		},
	}
	cmd.Flags().StringVar(&c.vcardVersion, config.FlagVersion, "", config.FlagDescVersion)
	cmd.Flags().StringVar(&c.countryCode, config.FlagCountryCode, "", config.FlagDescCountryCode)
	return cmd
}

// withCountryCode returns a copy of r whose local phone numbers carry cc.
func withCountryCode(r *vcf.Record, cc string) *vcf.Record {
	out := r.Clone()
	rewritten := 0
	for i, p := range out.Phones {
		if p.Value != "" && !phone.HasCountryCode(p.Value) {
			rewritten++
		}
		out.Phones[i].Value = phone.AddCountryCode(p.Value, cc)
	}
	slog.Debug(config.MsgCountryCode,
		config.LogKeyComponent, config.CompCLI,
		config.LogKeyName, r.FullName(),
		config.LogKeyCount, rewritten,
	)
	return out
}

func (c *cli) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdValidate,
		Short: config.CmdDescValidate,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			text, err := c.readText(args)
			if err != nil {
				return err
			}
			if err := vcf.Validate(text); err != nil {
				return err
			}
			fmt.Fprintln(c.out, c.tr.T(config.TKeyValidOK))
			return nil
		},
	}
}

func (c *cli) lintCommand() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdLint,
		Short: config.CmdDescLint,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			r, err := c.readRecord(args)
			if err != nil {
				return err
			}

			issues := lint.Check(r)
			if len(issues) == 0 {
				fmt.Fprintln(c.out, c.tr.T(config.TKeyLintClean))
				return nil
			}
			for _, issue := range issues {
				fmt.Fprintf(c.out, config.FormatLintLine,
					issue.Field, c.tr.Label(config.TKeyPrefixLint, string(issue.Code)), issue.Value)
			}
			return fmt.Errorf("%w: %d", errLintIssues, len(issues))
		},
	}
}

func (c *cli) qrCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.CmdQR,
		Short: config.CmdDescQR,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			v, err := c.targetVersion()
			if err != nil {
				return err
			}
			maxBytes, err := qr.MaxBytesFor(c.orSetting(c.level, c.settings.QRLevel))
			if err != nil {
				return err
			}
			r, err := c.readRecord(args)
			if err != nil {
				return err
			}

			st := qr.Check(c.generator.Generate(r, v), maxBytes)
			fmt.Fprintln(c.out, c.tr.Tf(config.TKeyQRUsage, map[string]any{
				"Used": humanize.Comma(int64(st.ByteSize)),
				"Max":  humanize.Comma(int64(st.MaxBytes)),
			}))
			switch {
			case !st.Valid:
				fmt.Fprintln(c.out, c.tr.Tf(config.TKeyQRExceeded, map[string]any{
					"Over": humanize.Comma(int64(-st.Remaining())),
				}))
				return errQRCapacity
			case st.Warning:
				fmt.Fprintln(c.out, c.tr.Tf(config.TKeyQRApproaching, map[string]any{
					"Remaining": humanize.Comma(int64(st.Remaining())),
				}))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&c.vcardVersion, config.FlagVersion, "", config.FlagDescVersion)
	cmd.Flags().StringVar(&c.level, config.FlagLevel, "", config.FlagDescLevel)
	return cmd
}

func (c *cli) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdShow,
		Short: config.CmdDescShow,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			r, err := c.readRecord(args)
			if err != nil {
				return err
			}
			c.printSummary(r)
			return nil
		},
	}
}

func (c *cli) calendarCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.CmdCalendar,
		Short: config.CmdDescCalendar,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := c.readRecords(cmd.Context(), args)
			if err != nil {
				return err
			}

			exporter := &calendar.Exporter{Clock: c.clock, FormatSummary: c.tr.EventSummary}
			if c.upcoming {
				c.printUpcoming(exporter.Entries(records))
				return nil
			}

			data, err := exporter.Export(records)
			if err != nil {
				return err
			}
			return c.writeOutput(data)
		},
	}
	cmd.Flags().BoolVar(&c.upcoming, config.FlagUpcoming, false, config.FlagDescUpcoming)
	return cmd
}

func (c *cli) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.CmdServe,
		Short: config.CmdDescServe,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := c.targetVersion()
			if err != nil {
				return err
			}

			var records []*vcf.Record
			if c.url != "" {
				records, err = c.importer().Import(cmd.Context(), c.webSource())
			} else {
				records, err = c.readRecords(cmd.Context(), args)
			}
			if err != nil {
				return err
			}

			srv := server.NewDocumentServer(c.orSetting(c.port, c.settings.ServerPort))
			if err := c.publish(srv, records, v); err != nil {
				return err
			}
			return srv.Start(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&c.vcardVersion, config.FlagVersion, "", config.FlagDescVersion)
	cmd.Flags().StringVar(&c.port, config.FlagPort, "", config.FlagDescPort)
	cmd.Flags().StringVar(&c.url, config.FlagURL, "", config.FlagDescServeSource)
	cmd.Flags().StringVar(&c.user, config.FlagUser, "", config.FlagDescUser)
	return cmd
}

// publish renders records as VCF and iCalendar and hands both to srv.
func (c *cli) publish(srv *server.DocumentServer, records []*vcf.Record, v vcf.Version) error {
	exporter := &calendar.Exporter{Clock: c.clock, FormatSummary: c.tr.EventSummary}
	ics, err := exporter.Export(records)
	if err != nil {
		return err
	}
	if err := srv.Update(config.RouteContactVCF, []byte(c.generateAll(records, v))); err != nil {
		return err
	}
	if err := srv.Update(config.RouteContactICS, ics); err != nil {
		return err
	}
	slog.Info(config.MsgServePublished,
		config.LogKeyComponent, config.CompCLI,
		config.LogKeyCount, len(records),
	)
	return nil
}

func (c *cli) importCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.CmdImport,
		Short: config.CmdDescImport,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := engine.Source{Mode: config.SourceModeLocal}
			switch {
			case c.url != "":
				src = c.webSource()
			case len(args) == 1:
				src.LocalPath = args[0]
			}

			records, err := c.importer().Import(cmd.Context(), src)
			if err != nil {
				return err
			}

			if c.asVCF {
				v, err := c.targetVersion()
				if err != nil {
					return err
				}
				err = c.writeOutput([]byte(c.generateAll(records, v)))
			} else {
				err = c.writeJSON(records)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(c.errOut, c.tr.Tf(config.TKeyImported, map[string]any{"Count": len(records)}))
			return nil
		},
	}
	cmd.Flags().StringVar(&c.url, config.FlagURL, "", config.FlagDescURL)
	cmd.Flags().StringVar(&c.user, config.FlagUser, "", config.FlagDescUser)
	cmd.Flags().BoolVar(&c.asVCF, config.FlagVCFOutput, false, config.FlagDescImportVCF)
	cmd.Flags().StringVar(&c.vcardVersion, config.FlagVersion, "", config.FlagDescVersion)
	return cmd
}

func (c *cli) importer() *engine.Importer {
	return &engine.Importer{Fetcher: c.fetcher, Credentials: c.credentials}
}

// webSource builds a remote source; the password comes from the keyring.
func (c *cli) webSource() engine.Source {
	return engine.Source{
		Mode:    config.SourceModeWeb,
		WebURL:  c.url,
		WebUser: c.orSetting(c.user, c.settings.User),
	}
}

func (c *cli) loginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.CmdLogin,
		Short: config.CmdDescLogin,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			user := c.orSetting(c.user, c.settings.User)
			if user == "" {
				return errUserMissing
			}

			// The password is the first line of stdin.
			line, err := bufio.NewReader(c.in).ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("%s: %w", config.ErrPasswordRead, err)
			}
			pass := strings.TrimRight(line, "\r\n")

			if err := c.credentials.SetPassword(user, pass); err != nil {
				return err
			}
			slog.Info(config.MsgPassStored,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyUser, user,
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&c.user, config.FlagUser, "", config.FlagDescUser)
	return cmd
}

func (c *cli) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdVersion,
		Short: config.CmdDescVersion,
		Args:  cobra.NoArgs,
		// Version output needs neither settings nor logging.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(*cobra.Command, []string) {
			printVersion(c.out)
		},
	}
}
