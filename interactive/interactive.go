package interactive

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"github.com/Learting/leartools/config"
	"github.com/Learting/leartools/message"
	"github.com/Learting/leartools/reduce"
	"github.com/Learting/leartools/residence"
	"github.com/Learting/leartools/transfer"
	"github.com/Learting/leartools/utils"
	"github.com/Learting/leartools/world"
)

// ConfirmPhrase 覆盖目标路径前必须逐字输入的确认短语
const ConfirmPhrase = "CONFIRM OVERWRITE"

var _ reduce.Reporter = (*Console)(nil)

// Console 终端交互：提示输入、覆盖确认、进度条与汇总输出
type Console struct {
	in           *bufio.Reader
	out          io.Writer
	msg          *message.Messages
	useColor     bool
	showProgress bool
}

// NewConsole 创建终端交互对象
func NewConsole(in io.Reader, out io.Writer, msg *message.Messages, ui config.UIConfig) *Console {
	return &Console{
		in:           bufio.NewReader(in),
		out:          out,
		msg:          msg,
		useColor:     ui.ColoredOutput,
		showProgress: ui.ProgressBar,
	}
}

func (c *Console) println(color, text string) {
	fmt.Fprintln(c.out, utils.Colorize(color, text, c.useColor))
}

// readLine 读取一行并去掉首尾空白；输入结束且没有内容时返回 io.EOF
func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ask 反复提示直到得到非空输入
func (c *Console) ask(key string) (string, error) {
	for {
		fmt.Fprintf(c.out, "%s: ", utils.GradientText(c.msg.Get(key), utils.PromptStart, utils.PromptEnd, c.useColor))
		line, err := c.readLine()
		if errors.Is(err, io.EOF) {
			return "", io.ErrUnexpectedEOF
		}
		if err != nil {
			return "", err
		}
		// 拖入终端的路径常带引号
		line = strings.Trim(line, `"'`)
		if line != "" {
			return line, nil
		}
	}
}

// Banner 显示标题
func (c *Console) Banner() {
	fmt.Fprintln(c.out, utils.SectionTitle(c.msg.Get("title"), c.useColor))
}

// AskPaths 依次询问领地存档、输入世界与输出世界路径
func (c *Console) AskPaths() (residenceFile, sourceWorld, destWorld string, err error) {
	if residenceFile, err = c.ask("prompt_residence_file"); err != nil {
		return "", "", "", err
	}
	if sourceWorld, err = c.ask("prompt_old_world"); err != nil {
		return "", "", "", err
	}
	if destWorld, err = c.ask("prompt_new_world"); err != nil {
		return "", "", "", err
	}
	return residenceFile, sourceWorld, destWorld, nil
}

// ConfirmOverwrite 实现 transfer.ConfirmFunc：只有输入确认短语才算同意
//
// 输入结束视为拒绝。
func (c *Console) ConfirmOverwrite(path string) (bool, error) {
	c.println(utils.Yellow, c.msg.Format("overwrite_caution", path))
	fmt.Fprintf(c.out, "%s: ", c.msg.Format("overwrite_prompt", ConfirmPhrase))

	line, err := c.readLine()
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(c.out)
		c.println(utils.Red, c.msg.Get("overwrite_cancelled"))
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if line != ConfirmPhrase {
		c.println(utils.Red, c.msg.Get("overwrite_cancelled"))
		return false, nil
	}
	c.println(utils.Green, c.msg.Get("overwrite_confirmed"))
	return true, nil
}

// Progress 复制进度条；关闭进度条时返回 nil
func (c *Console) Progress() transfer.ProgressCallback {
	if !c.showProgress {
		return nil
	}
	desc := c.msg.Get("copy_progress")
	var bar *progressbar.ProgressBar
	return func(current, total int, message string) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(c.out),
				progressbar.OptionSetDescription(desc),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(30),
				progressbar.OptionEnableColorCodes(c.useColor),
				progressbar.OptionOnCompletion(func() { fmt.Fprintln(c.out) }),
			)
		}
		bar.Describe(desc + " " + message)
		_ = bar.Set(current)
	}
}

func (c *Console) Checking() {
	c.println(utils.Cyan, c.msg.Get("checking"))
}

func (c *Console) WorldDetected(info world.LevelInfo) {
	c.println(utils.Cyan, c.msg.Format("world_info", info.Name, info.DataVersion))
}

func (c *Console) DirectoryClassified(t world.DirectoryType, dir string) {
	c.println(utils.Cyan, c.msg.Format("directory_type", dir, t))
}

func (c *Console) ResidencesFound(n int) {
	c.println(utils.Cyan, c.msg.Format("residences_found", n))
}

func (c *Console) CoverageComputed(n int) {
	c.println(utils.Cyan, c.msg.Format("covered_regions", n))
}

func (c *Console) RegionMissing(name, dir string) {
	c.println(utils.Yellow, c.msg.Format("region_missing", name, dir))
}

func (c *Console) CopyStarted(int) {
	c.println(utils.Cyan, c.msg.Get("copying"))
}

// Finished 输出汇总
func (c *Console) Finished(rep *reduce.Report) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, utils.SectionTitle(c.msg.Get("summary_title"), c.useColor))
	fmt.Fprintln(c.out, c.msg.Format("summary_original", rep.Plan.SourceRegions))
	if rep.DryRun {
		c.println(utils.Yellow, c.msg.Get("dry_run"))
		fmt.Fprintln(c.out, c.msg.Format("summary_planned", len(rep.Plan.Available), len(rep.Plan.Missing)))
	} else {
		fmt.Fprintln(c.out, c.msg.Format("summary_copied", rep.Copied.Regions, len(rep.Plan.Missing)))
	}
	fmt.Fprintln(c.out, c.msg.Format("summary_size",
		humanize.Bytes(uint64(rep.Plan.SourceBytes)),
		humanize.Bytes(uint64(rep.Plan.CopyBytes))))
	c.println(utils.Green, c.msg.Get("success"))
}

// Fail 将错误转为本地化提示并输出
func (c *Console) Fail(err error) {
	c.println(utils.Red, c.Describe(err))
	c.println(utils.Red, c.msg.Get("failed"))
}

// Describe 错误对应的本地化描述
func (c *Console) Describe(err error) string {
	var (
		notFound *world.PathNotFoundError
		format   *residence.FormatError
		perm     *transfer.PermissionError
		overlap  *reduce.OverlapError
	)
	switch {
	case errors.As(err, &notFound):
		return c.msg.Format("err_path_not_found", notFound.Kind, strings.Join(notFound.Paths, ", "))
	case errors.As(err, &format):
		if format.Line > 0 {
			return c.msg.Format("err_format_line", format.Line, format.Msg)
		}
		return c.msg.Format("err_format", format.Msg)
	case errors.As(err, &perm):
		return c.msg.Format("err_permission", perm.Path)
	case errors.Is(err, transfer.ErrOverwriteDeclined):
		return c.msg.Get("err_declined")
	case errors.As(err, &overlap):
		return c.msg.Format("err_dest_in_source", overlap.Dest, overlap.Source)
	case errors.Is(err, reduce.ErrNoDestination):
		return c.msg.Format("err_usage", err)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return c.msg.Get("input_eof")
	default:
		return c.msg.Format("err_unexpected", err)
	}
}
