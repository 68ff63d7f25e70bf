// Package reduce 按领地范围裁剪世界：只把领地覆盖到的区域文件复制到新世界
//
// 流程严格按顺序执行：
//
//	检查路径 → 识别维度目录 → 解析领地存档 → 计算覆盖区域 → 准备目标并复制 → 汇总
//
// 每一步只读取上一步的结果，不共享可变状态。
package reduce

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Learting/leartools/region"
	"github.com/Learting/leartools/residence"
	"github.com/Learting/leartools/transfer"
	"github.com/Learting/leartools/world"
)

var (
	// ErrDestinationOverlapsSource 输出目录与输入世界目录互相包含
	ErrDestinationOverlapsSource = errors.New("destination overlaps source world")
	// ErrNoDestination 未指定输出目录
	ErrNoDestination = errors.New("destination world directory not given")
)

// OverlapError 输出目录位于输入世界之内，或反过来包含输入世界
type OverlapError struct {
	Source string
	Dest   string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s: %s and %s", ErrDestinationOverlapsSource, e.Dest, e.Source)
}

func (e *OverlapError) Is(target error) bool {
	return target == ErrDestinationOverlapsSource
}

// Options 一次裁剪所需的输入
type Options struct {
	ResidenceFile string
	SourceWorld   string
	DestWorld     string
	// Encoding 领地存档编码，空值使用 residence.DefaultEncoding
	Encoding string
	// DryRun 只计算与报告，不写入任何文件
	DryRun bool
	// Confirm 目标已存在时的确认能力；nil 表示一律拒绝
	Confirm  transfer.ConfirmFunc
	Progress transfer.ProgressCallback
}

// Report 各阶段的结果
type Report struct {
	Level         world.LevelInfo
	DirectoryType world.DirectoryType
	Residences    int
	Coverage      region.Coverage
	Plan          transfer.Plan
	Copied        transfer.Result
	DryRun        bool
}

// Reporter 接收各阶段的进度，用于终端输出
type Reporter interface {
	WorldDetected(info world.LevelInfo)
	DirectoryClassified(t world.DirectoryType, dir string)
	ResidencesFound(n int)
	CoverageComputed(n int)
	RegionMissing(name, dir string)
	CopyStarted(files int)
	Finished(rep *Report)
}

// Runner 顺序执行裁剪流程
type Runner struct {
	log      zerolog.Logger
	reporter Reporter
}

// NewRunner 创建 Runner；reporter 为 nil 时不输出进度
func NewRunner(log zerolog.Logger, reporter Reporter) *Runner {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Runner{log: log, reporter: reporter}
}

// Run 执行完整流程
func (r *Runner) Run(opts Options) (*Report, error) {
	rep := &Report{DryRun: opts.DryRun}

	if err := checkInputs(opts); err != nil {
		return nil, err
	}
	info, err := world.ReadLevelInfo(opts.SourceWorld)
	if err != nil {
		r.log.Warn().Err(err).Msg("level.dat unreadable, continuing")
	} else {
		rep.Level = info
		r.reporter.WorldDetected(info)
	}

	rep.DirectoryType, err = world.Classify(opts.SourceWorld)
	if err != nil {
		return nil, err
	}
	srcRegionDir := world.RegionDir(opts.SourceWorld, rep.DirectoryType)
	r.log.Debug().Str("type", rep.DirectoryType.String()).Str("dir", srcRegionDir).Msg("classified world directory")
	r.reporter.DirectoryClassified(rep.DirectoryType, srcRegionDir)

	plots, err := residence.Load(opts.ResidenceFile, opts.Encoding)
	if err != nil {
		return nil, err
	}
	rep.Residences = len(plots)
	r.log.Debug().Int("residences", rep.Residences).Str("encoding", opts.Encoding).Msg("parsed residence file")
	r.reporter.ResidencesFound(rep.Residences)

	rep.Coverage = region.Cover(plots)
	r.log.Debug().Int("regions", rep.Coverage.Len()).Msg("computed coverage")
	r.reporter.CoverageComputed(rep.Coverage.Len())

	listing, err := transfer.ReadListing(srcRegionDir)
	if err != nil {
		return nil, err
	}
	rep.Plan = transfer.NewPlan(rep.Coverage, listing)
	for _, name := range rep.Plan.Missing {
		r.reporter.RegionMissing(name, srcRegionDir)
	}
	r.log.Debug().
		Int("available", len(rep.Plan.Available)).
		Int("missing", len(rep.Plan.Missing)).
		Int("source_regions", rep.Plan.SourceRegions).
		Msg("planned copy")

	if opts.DryRun {
		r.reporter.Finished(rep)
		return rep, nil
	}

	subPath := rep.DirectoryType.SubPath()
	if err := transfer.Prepare(opts.DestWorld, subPath, opts.Confirm); err != nil {
		return nil, err
	}
	r.log.Debug().Str("dest", opts.DestWorld).Msg("prepared destination")

	r.reporter.CopyStarted(len(rep.Plan.Available) + 1)
	rep.Copied, err = transfer.Execute(transfer.Job{
		SourceWorld: opts.SourceWorld,
		DestWorld:   opts.DestWorld,
		SubPath:     subPath,
		Plan:        rep.Plan,
		Progress:    opts.Progress,
	})
	if err != nil {
		return nil, err
	}
	r.log.Debug().Int("regions", rep.Copied.Regions).Int64("bytes", rep.Copied.Bytes).Msg("copied")

	r.reporter.Finished(rep)
	return rep, nil
}

// checkInputs 输入路径必须存在，且输出目录不能与输入世界互相包含
func checkInputs(opts Options) error {
	if err := world.CheckInputs(opts.ResidenceFile, opts.SourceWorld); err != nil {
		return err
	}
	if opts.DestWorld == "" {
		return ErrNoDestination
	}
	for _, pair := range [][2]string{
		{opts.SourceWorld, opts.DestWorld},
		{opts.DestWorld, opts.SourceWorld},
	} {
		inside, err := world.Contains(pair[0], pair[1])
		if err != nil {
			return err
		}
		if inside {
			return &OverlapError{Source: opts.SourceWorld, Dest: opts.DestWorld}
		}
	}
	return nil
}

// NopReporter 丢弃所有进度
type NopReporter struct{}

func (NopReporter) WorldDetected(world.LevelInfo)                   {}
func (NopReporter) DirectoryClassified(world.DirectoryType, string) {}
func (NopReporter) ResidencesFound(int)                             {}
func (NopReporter) CoverageComputed(int)                            {}
func (NopReporter) RegionMissing(string, string)                    {}
func (NopReporter) CopyStarted(int)                                 {}
func (NopReporter) Finished(*Report)                                {}
