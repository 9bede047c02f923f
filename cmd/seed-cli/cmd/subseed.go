package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"wallet-seed/pkg/config"
	"wallet-seed/pkg/errno"
	"wallet-seed/pkg/seed"
	"wallet-seed/pkg/subseed"
)

// subseedsCmd 列出子种子的 Seed ID
var subseedsCmd = &cobra.Command{
	Use:   "subseeds [first-last]",
	Short: "列出子种子",
	Long:  `以表格列出指定范围 (缺省 1-10) 的长、短子种子 Seed ID。`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parent, err := loadSeed()
		if err != nil {
			return err
		}
		first, last := 1, 10
		if len(args) == 1 {
			if first, last, err = parseSubseedRange(args[0]); err != nil {
				return err
			}
		}
		out, err := subseed.NewList(parent, 0).Format(first, last)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

// subseedCmd 按序号 (如 "5S") 或 Seed ID 取出单个子种子
var subseedCmd = &cobra.Command{
	Use:   "subseed <idx|seed-id>",
	Short: "显示单个子种子",
	Long: `按子种子序号 (如 "3"、"3L"、"7S") 或 Seed ID 查找子种子。
按 Seed ID 查找时最多搜索到 seed.subseed_list_len 配置的序号。`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parent, err := loadSeed()
		if err != nil {
			return err
		}
		list := subseedListFor(parent)

		var ss *subseed.Subseed
		if idx, perr := subseed.ParseIdx(args[0]); perr == nil {
			ss, err = list.ByIndex(idx)
		} else {
			id, ierr := seed.ParseID(args[0])
			if ierr != nil {
				return fmt.Errorf("%q is neither a subseed index nor a seed ID: %w", args[0], errno.ErrBadArgs)
			}
			ss, err = list.BySeedID(id, 0)
			if err == nil && ss == nil {
				return fmt.Errorf("subseed %s not found in first %d: %w", id, config.Global.Seed.SubseedListLen, errno.ErrInvalidSeedID)
			}
		}
		if err != nil {
			return err
		}

		t := newTable(nil)
		t.AppendRow([]interface{}{"Parent", parent.ID()})
		t.AppendRow([]interface{}{"Subseed", ss.Index})
		t.AppendRow([]interface{}{"Seed ID", ss.ID()})
		t.AppendRow([]interface{}{"Bits", ss.BitLen()})
		t.AppendRow([]interface{}{"Nonce", ss.Nonce})
		t.AppendRow([]interface{}{"Hex", ss.Hex()})
		if showMnemonic {
			words, err := ss.Mnemonic()
			if err != nil {
				return err
			}
			t.AppendRow([]interface{}{"Words", words})
		}
		t.Render()
		return nil
	},
}

func subseedListFor(parent *seed.Seed) *subseed.List {
	return subseed.NewList(parent, config.Global.Seed.SubseedListLen)
}

func parseSubseedRange(s string) (int, int, error) {
	lo, hi, found := strings.Cut(s, "-")
	first, err := strconv.Atoi(lo)
	if err != nil {
		return 0, 0, fmt.Errorf("subseed range %q: %w", s, errno.ErrBadArgs)
	}
	last := first
	if found {
		if last, err = strconv.Atoi(hi); err != nil {
			return 0, 0, fmt.Errorf("subseed range %q: %w", s, errno.ErrBadArgs)
		}
	}
	return first, last, nil
}

func init() {
	subseedCmd.Flags().BoolVar(&showMnemonic, "mnemonic", false, "同时显示助记词")
	rootCmd.AddCommand(subseedsCmd)
	rootCmd.AddCommand(subseedCmd)
}
