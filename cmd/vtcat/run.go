package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/contourterm/vtcore"
	"github.com/contourterm/vtcore/cmd/vtcat/internal/config"
)

func run(cmd *cobra.Command, in io.Reader, cfg *config.Config, jsonOut bool, detail string) error {
	term := vtcore.New(
		vtcore.WithSize(cfg.Rows, cfg.Cols),
		vtcore.WithMaxScrollback(cfg.MaxHistory),
	)

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if _, err := term.Write(data); err != nil {
		return fmt.Errorf("write to terminal: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		dump := term.Screen().Inspect(parseDumpDetail(detail))
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(dump)
	}

	if isTerminalWriter(out) {
		return printColorized(out, term)
	}
	fmt.Fprintln(out, term.String())
	return nil
}

// isTerminalWriter reports whether out is a real terminal, which decides
// whether vtcat re-colorizes its own snapshot or prints flat text (the
// usual choice when output is piped to a file or another process).
func isTerminalWriter(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// printColorized re-emits each line's styled segments as SGR sequences, so
// a vtcat replay viewed in a real terminal looks like the original stream.
func printColorized(out io.Writer, term *vtcore.Terminal) error {
	dump := term.Screen().Inspect(vtcore.DumpDetailStyled)
	var b strings.Builder
	for _, line := range dump.Lines {
		for _, seg := range line.Segments {
			writeSGR(&b, seg)
			b.WriteString(seg.Text)
			if seg.Fg != "" || seg.Bg != "" || seg.Attributes != (vtcore.DumpAttrs{}) {
				b.WriteString("\x1b[0m")
			}
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(out, b.String())
	return err
}

func writeSGR(b *strings.Builder, seg vtcore.DumpSegment) {
	var codes []string
	if seg.Attributes.Bold {
		codes = append(codes, "1")
	}
	if seg.Attributes.Dim {
		codes = append(codes, "2")
	}
	if seg.Attributes.Italic {
		codes = append(codes, "3")
	}
	if seg.Attributes.Underline {
		codes = append(codes, "4")
	}
	if seg.Attributes.Blink {
		codes = append(codes, "5")
	}
	if seg.Attributes.Reverse {
		codes = append(codes, "7")
	}
	if seg.Attributes.Hidden {
		codes = append(codes, "8")
	}
	if seg.Attributes.Strikethrough {
		codes = append(codes, "9")
	}
	if seg.Attributes.Overline {
		codes = append(codes, "53")
	}
	if seg.Fg != "" {
		codes = append(codes, hexToSGR(seg.Fg, 38))
	}
	if seg.Bg != "" {
		codes = append(codes, hexToSGR(seg.Bg, 48))
	}
	if len(codes) == 0 {
		return
	}
	b.WriteString("\x1b[")
	b.WriteString(strings.Join(codes, ";"))
	b.WriteByte('m')
}

// hexToSGR turns a "#rrggbb" dump color into a direct-color SGR parameter
// string ("38;2;r;g;b" or "48;2;r;g;b").
func hexToSGR(hex string, base int) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return ""
	}
	var r, g, bl int
	fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &bl)
	return fmt.Sprintf("%d;2;%d;%d;%d", base, r, g, bl)
}

func parseDumpDetail(s string) vtcore.DumpDetail {
	switch s {
	case "styled":
		return vtcore.DumpDetailStyled
	case "full":
		return vtcore.DumpDetailFull
	default:
		return vtcore.DumpDetailText
	}
}
