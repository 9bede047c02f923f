package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"wallet-seed/pkg/config"
	"wallet-seed/pkg/errno"
	"wallet-seed/pkg/logger"
	"wallet-seed/pkg/monitor"
)

var (
	seedHex   string
	seedWords string
)

// rootCmd 代表基础命令，没有子命令时直接调用
var rootCmd = &cobra.Command{
	Use:   "seed-cli",
	Short: "确定性种子派生命令行工具",
	Long: `从单个种子派生子种子、拆分与重组种子份额，并为 BTC/LTC/BCH/ETH/ETC/ZEC/XMR 生成地址。
种子通过 --seed (十六进制) 或 --words (BIP-39 助记词) 传入。`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Init()
		logger.Init(config.Global.App.Env, config.Global.App.Debug)
		monitor.InitDerivationMetrics()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// Execute 将所有子命令添加到根命令并设置标志
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		code, msg := errno.Decode(err)
		fmt.Fprintf(os.Stderr, "error %d: %s\n", code, msg)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&seedHex, "seed", "", "种子 (十六进制, 128/192/256 位)")
	rootCmd.PersistentFlags().StringVar(&seedWords, "words", "", "种子 (BIP-39 助记词)")
	rootCmd.PersistentFlags().Bool("debug", false, "输出派生过程的调试日志")
	_ = viper.BindPFlag("app.debug", rootCmd.PersistentFlags().Lookup("debug"))
}
