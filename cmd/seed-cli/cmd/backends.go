package cmd

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"wallet-seed/pkg/config"
	"wallet-seed/pkg/keygen"
	"wallet-seed/pkg/protocol"
)

// backendsCmd 列出各公钥类型的密钥生成后端及其可用性
var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "列出密钥生成后端",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := keygen.NewBackendCatalog(keygen.CatalogOptions{AllowUnsafe: config.Global.Keygen.AllowUnsafe})

		t := newTable(table.Row{"Pubkey Type", "#", "Backend", "Status"})
		for _, kind := range []protocol.PubKeyKind{protocol.PubKeyStd, protocol.PubKeyZcashZ, protocol.PubKeyMonero} {
			names, err := catalog.Backends(kind)
			if err != nil {
				return err
			}
			for i, name := range names {
				status := "ok"
				kg, err := catalog.KeyGenerator(kind, i+1)
				switch {
				case err != nil:
					status = err.Error()
				case kg.Name() != name:
					status = "unavailable, falls back to " + kg.Name()
				}
				t.AppendRow(table.Row{kind, i + 1, name, status})
			}
			t.AppendSeparator()
		}
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backendsCmd)
}
