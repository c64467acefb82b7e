package reconciler

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/moyu-x/fileguard/pkg/classifier"
	"github.com/moyu-x/fileguard/pkg/detector"
	"github.com/moyu-x/fileguard/pkg/logger"
	"github.com/moyu-x/fileguard/pkg/scanner"
)

type Options struct {
	Classifier *classifier.Classifier
	Hints      classifier.HintProvider
	OnConflict ConflictPolicy
	// 带这些后缀的文件不会被移动
	IncompleteMarkers []string
}

// Reconciler 对一个目录执行 扫描 -> 分类 -> 建目录 -> 移动
// 不在两轮之间保存任何状态，重复执行是安全的
type Reconciler struct {
	fs         afero.Fs
	walker     *scanner.FileWalker
	classifier *classifier.Classifier
	hints      classifier.HintProvider
	policy     ConflictPolicy
	markers    []string
}

func New(fs afero.Fs, opts Options) *Reconciler {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if opts.Classifier == nil {
		opts.Classifier = classifier.NewClassifier(nil)
	}
	if opts.Hints == nil {
		opts.Hints = classifier.NameLookup{}
	}
	if opts.OnConflict == "" {
		opts.OnConflict = ConflictSkip
	}
	if opts.IncompleteMarkers == nil {
		opts.IncompleteMarkers = detector.DefaultIncompleteMarkers
	}

	return &Reconciler{
		fs:         fs,
		walker:     scanner.NewFileWalker(fs),
		classifier: opts.Classifier,
		hints:      opts.Hints,
		policy:     opts.OnConflict,
		markers:    opts.IncompleteMarkers,
	}
}

func (r *Reconciler) Policy() ConflictPolicy {
	return r.policy
}

// Reconcile 整理 dir 第一层的文件
// 只有 ErrDirectoryUnavailable 会作为错误返回，单个文件的失败记录在 Result.Skipped 中
func (r *Reconciler) Reconcile(dir string) (*Result, error) {
	if err := r.checkDir(dir); err != nil {
		return nil, err
	}

	result := &Result{
		Dir:    dir,
		PassID: uuid.NewString(),
	}
	log := logger.Get().With().Str("pass", result.PassID).Str("dir", dir).Logger()

	partition, skipped, err := r.partition(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDirectoryUnavailable, dir, err)
	}
	result.Skipped = append(result.Skipped, skipped...)

	categories := partition.Categories()
	result.CategoriesTouched = len(categories)

	if partition.Len() == 0 {
		log.Debug().Msg("没有需要整理的文件")
		return result, nil
	}

	for _, category := range categories {
		files := partition.Files(category)
		categoryDir := filepath.Join(dir, string(category))

		// 只为本轮确实有文件的分类创建目录
		if err := r.fs.MkdirAll(categoryDir, 0755); err != nil {
			log.Error().Err(err).Str("category", string(category)).Msg("创建分类目录失败，跳过该分类")
			for _, path := range files {
				result.Skipped = append(result.Skipped, Skip{Path: path, Reason: SkipIO, Err: err})
			}
			continue
		}

		for _, path := range files {
			dst, skip := r.moveInto(path, categoryDir)
			if skip != nil {
				r.logSkip(&log, *skip)
				result.Skipped = append(result.Skipped, *skip)
				continue
			}

			result.Placements = append(result.Placements, Placement{
				Category:    category,
				Source:      path,
				Destination: dst,
			})
			log.Debug().
				Str("source", path).
				Str("destination", dst).
				Str("category", string(category)).
				Msg("文件已移动")
		}
	}

	log.Info().
		Int("categories", result.CategoriesTouched).
		Int("moved", result.Moved()).
		Int("skipped", len(result.Skipped)).
		Msgf("已将文件整理到 %d 个分类", result.CategoriesTouched)

	return result, nil
}

func (r *Reconciler) checkDir(dir string) error {
	info, err := r.fs.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDirectoryUnavailable, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s 不是目录", ErrDirectoryUnavailable, dir)
	}
	return nil
}

// partition 列出第一层普通文件并分类
func (r *Reconciler) partition(dir string) (*Partition, []Skip, error) {
	p := newPartition()
	var skipped []Skip

	err := r.walker.Walk(dir, func(path string, info os.FileInfo) error {
		if detector.HasMarker(path, r.markers) {
			skipped = append(skipped, Skip{Path: path, Reason: SkipIncomplete})
			return nil
		}
		p.add(r.classify(path), path)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return p, skipped, nil
}

func (r *Reconciler) classify(path string) classifier.Category {
	ext := filepath.Ext(path)

	// 扩展名已能确定分类时不再查询类型提示
	hint := ""
	if _, ok := r.classifier.Table().Lookup(ext); !ok {
		hint = r.hints.Hint(path)
	}

	return r.classifier.Classify(ext, hint)
}

func (r *Reconciler) logSkip(log *zerolog.Logger, skip Skip) {
	switch skip.Reason {
	case SkipVanished:
		log.Info().Str("path", skip.Path).Msg("源文件已被移走或删除，跳过")
	case SkipConflict:
		log.Warn().Str("path", skip.Path).Err(skip.Err).Msg("分类目录中已有同名文件，跳过")
	default:
		log.Warn().Str("path", skip.Path).Err(skip.Err).Msg("移动文件失败，跳过")
	}
}
