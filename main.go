package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/danmaku/pkg/app"
	"github.com/decker502/danmaku/pkg/config"
	"github.com/decker502/danmaku/pkg/embedded"
	"github.com/decker502/danmaku/pkg/logging"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", config.DefaultConfigPath, "应用配置文件路径（TOML）")
	stagesPath := flag.String("stages", "", "关卡配置文件路径，覆盖配置文件中的 game.stages_file")
	verbose := flag.Bool("verbose", false, "启用调试日志")
	flag.Parse()

	// 初始化嵌入资源，磁盘上缺少数据文件时使用
	embedded.Init(dataFS)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *stagesPath != "" {
		cfg.Game.StagesFile = *stagesPath
	}

	log, err := logging.New(cfg.Logging, *verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	stageCfg, err := config.LoadStageConfig(cfg.Game.StagesFile)
	if err != nil {
		return err
	}
	log.Info("[Main] stage config loaded",
		zap.String("file", cfg.Game.StagesFile),
		zap.Int("stages", len(stageCfg.Stages)))

	game, err := app.NewApp(cfg, stageCfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := game.Close(); err != nil {
			log.Error("[Main] close failed", zap.Error(err))
		}
	}()

	w, h := game.Size()
	ebiten.SetWindowSize(int(float64(w)*cfg.Window.Scale), int(float64(h)*cfg.Window.Scale))
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Game.TPS)

	// 返回 ebiten.Termination 时 RunGame 返回 nil
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
