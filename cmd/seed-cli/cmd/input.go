package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"

	"wallet-seed/pkg/errno"
	"wallet-seed/pkg/seed"
)

// loadSeed 从 --seed 或 --words 读取种子；两者都未给出且 stdin 是终端时提示输入 (不回显)
func loadSeed() (*seed.Seed, error) {
	switch {
	case seedHex != "" && seedWords != "":
		return nil, fmt.Errorf("--seed and --words are mutually exclusive: %w", errno.ErrBadArgs)
	case seedHex != "":
		return seed.FromHex(seedHex)
	case seedWords != "":
		return seed.FromMnemonic(seedWords)
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("no seed given (use --seed or --words): %w", errno.ErrBadArgs)
	}
	fmt.Fprint(os.Stderr, "Enter seed (hex or BIP-39 words): ")
	input, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return parseSeedInput(string(input))
}

// parseSeedInput 含空白时按助记词解析，否则按十六进制
func parseSeedInput(s string) (*seed.Seed, error) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, " \t") {
		return seed.FromMnemonic(s)
	}
	return seed.FromHex(s)
}

func newTable(header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	if header != nil {
		t.AppendHeader(header)
	}
	return t
}
