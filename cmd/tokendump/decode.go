package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pradhp1999/dhruva-sub011/sip"
	"github.com/pradhp1999/dhruva-sub011/token"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

type decodeOptions struct {
	file    string
	events  bool
	metrics bool
	verify  bool
}

func newDecodeCmd(a *app) *cobra.Command {
	o := &decodeOptions{}
	cmd := &cobra.Command{
		Use:   "decode [hex]",
		Short: "Decode token encoded message",
		Long: `Decode token encoded message given as hex string or read from binary file.

Examples:
  tokendump decode f0b7044896001...
  tokendump decode --file invite.bin --events
  tokendump decode --file invite.bin --verify`,
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := o.input(args)
			if err != nil {
				return err
			}
			return a.runDecode(cmd.OutOrStdout(), buf, o)
		},
	}
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "binary file with encoded message")
	cmd.Flags().BoolVar(&o.events, "events", false, "print decoder events instead of SIP text")
	cmd.Flags().BoolVar(&o.metrics, "metrics", false, "print decoder metrics after message")
	cmd.Flags().BoolVar(&o.verify, "verify", false, "reparse decoded SIP text and check sdp body")
	return cmd
}

func (o *decodeOptions) input(args []string) ([]byte, error) {
	if o.file != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("hex argument and --file are exclusive")
		}
		buf, err := os.ReadFile(o.file)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", o.file, err)
		}
		return buf, nil
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("hex argument or --file is required")
	}
	s := strings.Join(strings.Fields(strings.Join(args, "")), "")
	buf, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return buf, nil
}

func (a *app) runDecode(out io.Writer, buf []byte, o *decodeOptions) error {
	d := a.decoder(o.metrics)

	if o.events {
		p := &eventPrinter{out: out}
		if err := d.Decode(buf, 0, len(buf), p); err != nil {
			return err
		}
	} else {
		b := token.NewMessageBuilder(token.WithBuilderLogger(a.log.With().Str("caller", "token.MessageBuilder").Logger()))
		if err := d.Decode(buf, 0, len(buf), b); err != nil {
			return err
		}
		msg, err := b.Message()
		if err != nil {
			return err
		}
		fmt.Fprint(out, msg.String())

		if o.verify {
			if err := a.verify(msg, b); err != nil {
				return err
			}
			fmt.Fprintln(out, "verify: ok")
		}
	}

	if o.metrics {
		return a.writeMetrics(out)
	}
	return nil
}

// verify checks that decoded message survives textual SIP parser and that
// sdp body, if any, is valid session description.
func (a *app) verify(msg sip.Message, b *token.MessageBuilder) error {
	p := sip.NewParser(sip.WithParserLogger(a.log.With().Str("caller", "sip.Parser").Logger()))
	parsed, err := p.ParseSIP([]byte(msg.String()))
	if err != nil {
		return fmt.Errorf("decoded text is not valid SIP: %w", err)
	}
	if parsed.StartLine() != msg.StartLine() {
		return fmt.Errorf("start line mismatch: %q != %q", parsed.StartLine(), msg.StartLine())
	}
	if !bytes.Equal(parsed.Body(), msg.Body()) {
		return fmt.Errorf("body mismatch after reparse")
	}

	if _, err := b.SessionDescription(); err != nil {
		return fmt.Errorf("invalid sdp body: %w", err)
	}
	a.log.Debug().Str("msg", sip.MessageShortString(parsed)).Msg("Verified")
	return nil
}

// writeMetrics dumps decoder registry in text exposition format.
func (a *app) writeMetrics(out io.Writer) error {
	if a.metrics == nil {
		return nil
	}
	mfs, err := a.metrics.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(out, expfmt.FmtText)
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

// eventPrinter prints every decoder event on its own line.
type eventPrinter struct {
	out io.Writer
}

func (p *eventPrinter) MessageBegin(info token.MessageInfo) {
	if info.Request {
		fmt.Fprintf(p.out, "message dict=%s request %s %s %s\n", info.DictionaryName, info.Method, info.RequestURI, info.Version)
		return
	}
	fmt.Fprintf(p.out, "message dict=%s response %s %d %s\n", info.DictionaryName, info.Version, info.StatusCode, info.Reason)
}

func (p *eventPrinter) HeaderBegin(h token.HeaderType) bool { return true }

func (p *eventPrinter) HeaderFound(h token.HeaderType, name []byte, value []byte, valid bool) {
	fmt.Fprintf(p.out, "header %s: %s%s\n", name, value, invalidMark(valid))
}

func (p *eventPrinter) UnknownHeaderFound(name []byte, value []byte, valid bool) {
	fmt.Fprintf(p.out, "header %s: %s%s\n", name, value, invalidMark(valid))
}

func (p *eventPrinter) BodyFound(contentType []byte, body []byte) {
	fmt.Fprintf(p.out, "body %s %d bytes\n%s\n", contentType, len(body), body)
}

func (p *eventPrinter) MessageFound(valid bool) {
	fmt.Fprintf(p.out, "end%s\n", invalidMark(valid))
}

func (p *eventPrinter) ElementBegin(ctx token.Context, e token.ElementID) bool { return true }

func (p *eventPrinter) ElementFound(ctx token.Context, e token.ElementID, value []byte, valid bool) {
	fmt.Fprintf(p.out, "  %s %s=%s%s\n", ctx, e, value, invalidMark(valid))
}

func (p *eventPrinter) ParameterFound(ctx token.Context, e token.ElementID, name []byte, value []byte, valid bool) {
	fmt.Fprintf(p.out, "  %s %s;%s=%s%s\n", ctx, e, name, value, invalidMark(valid))
}

func invalidMark(valid bool) string {
	if valid {
		return ""
	}
	return " (invalid)"
}
