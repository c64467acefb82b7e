package app

import (
	"github.com/spf13/afero"

	"github.com/moyu-x/fileguard/config"
	"github.com/moyu-x/fileguard/pkg/classifier"
	"github.com/moyu-x/fileguard/pkg/detector"
	"github.com/moyu-x/fileguard/pkg/logger"
	"github.com/moyu-x/fileguard/pkg/reconciler"
)

// loadConfig 读取配置并初始化日志
// fileOnly 为 true 时日志只写文件，供终端界面使用
func loadConfig(configFile string, verbose, fileOnly bool) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	logLevel := cfg.Logging.Level
	if verbose {
		logLevel = "debug"
	}

	if fileOnly {
		err = logger.InitFileOnly(logLevel, cfg.Logging.File)
	} else {
		err = logger.Init(logLevel, cfg.Logging.File)
	}
	if err != nil {
		return nil, err
	}

	logger.Get().Debug().Msg("加载配置完成")
	return cfg, nil
}

func newHints(cfg *config.Config, fs afero.Fs) classifier.HintProvider {
	if !cfg.Classifier.SniffContent {
		return classifier.NameLookup{}
	}
	return classifier.Chain{classifier.NameLookup{}, classifier.NewContentSniffer(fs)}
}

func newReconciler(cfg *config.Config, fs afero.Fs, policy reconciler.ConflictPolicy) *reconciler.Reconciler {
	return reconciler.New(fs, reconciler.Options{
		Classifier:        classifier.NewClassifier(classifier.DefaultTable()),
		Hints:             newHints(cfg, fs),
		OnConflict:        policy,
		IncompleteMarkers: cfg.Detector.IncompleteMarkers,
	})
}

func newDetector(cfg *config.Config, fs afero.Fs) *detector.Detector {
	return detector.New(fs, cfg.DetectorOptions())
}
