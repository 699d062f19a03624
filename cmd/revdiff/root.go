package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	cfgpkg "revdiff/internal/config"
	"revdiff/internal/diag"
	"revdiff/internal/engine"
	"revdiff/internal/stream"
)

type rootOptions struct {
	configPath string
	mapper     bool
	reducer    bool
	dropText   bool
	verbose    bool
	timeout    time.Duration
	logLevel   string
	logDir     string
	metrics    string
	initDir    string
	// ran: RunE 已进入。为假时 Execute 的失败均属旗标/配置阶段。
	ran bool
}

func newRootCmd() (*cobra.Command, *rootOptions) {
	var opts rootOptions
	cmd := &cobra.Command{
		Use:   "revdiff [inputs...]",
		Short: "以结构差分注解按页有序的修订记录流（JSON lines，stdin→stdout）",
		Long: `revdiff 读取按 (页面, 保存顺序) 排序并按页分片的修订 JSON 行流，
为每条修订附加相对前一修订的 diff、tokenize_time 与 diff_time 字段。

差分算法代价为平方级，单次调用受 --timeout 约束；超时记录的
diff_time 置为 -1 且不设置 diff，处理继续。

--mapper/--reducer 支持分布式 streaming 作业：mapper 不为流首记录求差
并在流末尾追加交接记录；reducer 消费按页拼接的 mapper 输出并缝合分片边界。`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ran = true
			return runRoot(cmd, &opts, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "能力配置文件（YAML）；缺省读取 ./config.yaml（若存在）")
	f.BoolVar(&opts.mapper, "mapper", false, "mapper 模式（分布式 map 阶段）")
	f.BoolVar(&opts.reducer, "reducer", false, "reducer 模式（分布式 reduce 阶段）")
	f.BoolVar(&opts.dropText, "drop-text", false, "从携带 diff 的记录上移除 text 字段")
	f.BoolVar(&opts.verbose, "verbose", false, "进度提示（stderr：组头+逐条打点）")
	f.DurationVar(&opts.timeout, "timeout", time.Hour, "单次差分调用截止时间")
	f.StringVar(&opts.logLevel, "log-level", "info", "日志级别 debug|info|warn|error")
	f.StringVar(&opts.logDir, "log-dir", "", "日志目录（10MiB 轮转）；缺省写 stderr")
	f.StringVar(&opts.metrics, "metrics-listen", "", "prometheus 抓取地址 host:port（长任务可选）")
	f.StringVar(&opts.initDir, "init-config", "", "在指定目录生成 config.yaml 模板后退出（不覆盖已存在文件）")
	cmd.MarkFlagsMutuallyExclusive("mapper", "reducer")
	return cmd, &opts
}

func runRoot(cmd *cobra.Command, opts *rootOptions, args []string) error {
	ctx := cmd.Context()
	// --init-config: 生成模板并退出
	if opts.initDir != "" {
		path, err := cfgpkg.WriteTemplate(opts.initDir)
		if err != nil {
			return errors.Mark(err, diag.ErrConfig)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", path)
		return nil
	}

	// 运行期配置：默认 → ENV → CLI（仅显式设置的旗标覆盖 ENV）；
	// 校验在任何记录处理前完成
	rt := cfgpkg.DefaultRuntime()
	rt, err := cfgpkg.EnvOverlay(rt)
	if err != nil {
		return errors.Mark(err, diag.ErrConfig)
	}
	rt.Inputs = args
	rt.DropText = opts.dropText
	rt.Verbose = opts.verbose
	if cmd.Flags().Changed("timeout") {
		rt.Timeout = opts.timeout
	}
	if cmd.Flags().Changed("log-level") {
		rt.LogLevel = opts.logLevel
	}
	if opts.logDir != "" {
		rt.LogDir = opts.logDir
	}
	if opts.metrics != "" {
		rt.MetricsListen = opts.metrics
	}
	switch {
	case opts.mapper:
		rt.Mode = "mapper"
	case opts.reducer:
		rt.Mode = "reducer"
	}
	if err := cfgpkg.Validate(rt); err != nil {
		return errors.Mark(err, diag.ErrConfig)
	}
	mode, err := cfgpkg.ParseMode(rt.Mode)
	if err != nil {
		return err
	}

	caps, err := cfgpkg.LoadCapabilities(opts.configPath)
	if err != nil {
		return errors.Mark(err, diag.ErrConfig)
	}
	comp, err := cfgpkg.Assemble(caps)
	if err != nil {
		return err
	}

	// 日志：默认 stderr；--log-dir 时写轮转文件
	var sink io.Writer
	if rt.LogDir != "" {
		rf := diag.NewRotatingFile(rt.LogDir, 0)
		defer rf.Close()
		sink = rf
	}
	logger := diag.NewLogger(rt.LogLevel, uuid.NewString(), sink)
	defer logger.Sync()
	logger.Debug("config", "effective", map[string]string{
		"mode":      mode.String(),
		"tokenizer": caps.Tokenizer.Name,
		"detector":  caps.Detector.Name,
		"timeout":   rt.Timeout.String(),
	})

	in, err := stream.OpenInputs(rt.Inputs)
	if err != nil {
		return errors.Mark(err, diag.ErrConfig)
	}
	defer in.Close()
	out := stream.NewWriter(os.Stdout)

	met := diag.NewMetrics()
	prog := diag.NewProgress(os.Stderr, rt.Verbose)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)
	if rt.MetricsListen != "" {
		g.Go(func() error { return met.Serve(gctx, rt.MetricsListen) })
	}
	g.Go(func() error {
		defer stop() // 引擎结束后放行 metrics 端点
		set := engine.Settings{Mode: mode, Timeout: rt.Timeout, DropText: rt.DropText}
		if err := engine.Run(gctx, comp, set, stream.NewReader(in), out, logger, prog, met); err != nil {
			return err
		}
		return out.Flush()
	})
	return g.Wait()
}
