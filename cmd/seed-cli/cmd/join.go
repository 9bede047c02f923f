package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"wallet-seed/pkg/seed"
	"wallet-seed/pkg/seedsplit"
)

var joinIDStr string

// joinCmd 由全部份额还原种子
var joinCmd = &cobra.Command{
	Use:   "join <share-hex>...",
	Short: "重组种子份额",
	Long: `异或全部份额 (十六进制) 还原父种子。
使用主份额时以 --master 给出其序号，并把主份额放在第一个参数。`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		shares := make([]*seed.Seed, len(args))
		for i, a := range args {
			s, err := seed.FromHex(a)
			if err != nil {
				return err
			}
			shares[i] = s
		}
		if err := seedsplit.ValidateIDStr(joinIDStr); err != nil {
			return err
		}
		joined, err := seedsplit.JoinShares(shares, masterIdx, joinIDStr)
		if err != nil {
			return err
		}

		t := newTable(table.Row{"Share", "Seed ID"})
		for i, s := range shares {
			t.AppendRow(table.Row{i + 1, s.ID()})
		}
		t.AppendFooter(table.Row{"Joined", joined.ID()})
		t.Render()
		fmt.Println(joined.Hex())
		return nil
	},
}

func init() {
	joinCmd.Flags().IntVar(&masterIdx, "master", 0, "主份额序号，0 表示不使用")
	joinCmd.Flags().StringVar(&joinIDStr, "id", seedsplit.DefaultIDStr, "拆分时使用的 ID 字符串")
	rootCmd.AddCommand(joinCmd)
}
