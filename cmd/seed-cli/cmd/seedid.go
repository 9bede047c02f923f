package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"wallet-seed/pkg/seed"
)

var (
	newSeedBits  int
	showMnemonic bool
)

// seedidCmd 显示种子的 Seed ID，或生成新的随机种子
var seedidCmd = &cobra.Command{
	Use:   "seedid",
	Short: "显示种子的 Seed ID",
	Long:  `显示 --seed/--words 给出的种子的 Seed ID；使用 --new 时生成新的随机种子。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var s *seed.Seed
		var err error
		if newSeedBits > 0 {
			s, err = seed.New(newSeedBits)
		} else {
			s, err = loadSeed()
		}
		if err != nil {
			return err
		}

		t := newTable(nil)
		t.AppendRow([]interface{}{"Seed ID", s.ID()})
		t.AppendRow([]interface{}{"Bits", s.BitLen()})
		if newSeedBits > 0 {
			t.AppendRow([]interface{}{"Hex", s.Hex()})
		}
		if showMnemonic || newSeedBits > 0 {
			words, err := s.Mnemonic()
			if err != nil {
				return fmt.Errorf("mnemonic: %w", err)
			}
			t.AppendRow([]interface{}{"Words", words})
		}
		t.Render()
		return nil
	},
}

func init() {
	seedidCmd.Flags().IntVar(&newSeedBits, "new", 0, "生成新的随机种子 (128/192/256)")
	seedidCmd.Flags().BoolVar(&showMnemonic, "mnemonic", false, "同时显示助记词")
	rootCmd.AddCommand(seedidCmd)
}
