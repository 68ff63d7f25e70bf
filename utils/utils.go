package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
)

// ANSI颜色代码
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
	Bold   = "\033[1m"
)

// RGBColor 表示RGB颜色
type RGBColor struct {
	R, G, B uint8
}

func (c RGBColor) toColorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// 标题渐变的起止颜色
var (
	TitleStart  = RGBColor{R: 50, G: 205, B: 50}   // LimeGreen
	TitleEnd    = RGBColor{R: 34, G: 139, B: 34}   // ForestGreen
	PromptStart = RGBColor{R: 135, G: 206, B: 250} // Light Sky Blue
	PromptEnd   = RGBColor{R: 70, G: 130, B: 180}  // Steel Blue
)

// RGBToANSIColor 将RGB颜色转换为ANSI颜色代码
func RGBToANSIColor(c RGBColor) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", c.R, c.G, c.B)
}

// Colorize 使用指定颜色包裹文本
func Colorize(colorCode, text string, useColor bool) string {
	if !useColor || text == "" {
		return text
	}
	return colorCode + text + Reset
}

// GenerateGradientColors 在 Lab 空间中生成从start到end的渐变颜色序列
func GenerateGradientColors(start, end RGBColor, steps int) []RGBColor {
	if steps <= 0 {
		return []RGBColor{}
	}
	if steps == 1 {
		return []RGBColor{start}
	}

	a, b := start.toColorful(), end.toColorful()
	colors := make([]RGBColor, steps)
	for i := range colors {
		r, g, bl := a.BlendLab(b, float64(i)/float64(steps-1)).Clamped().RGB255()
		colors[i] = RGBColor{R: r, G: g, B: bl}
	}
	return colors
}

// GradientText 逐字符着色的渐变文本
func GradientText(text string, start, end RGBColor, useColor bool) string {
	if !useColor || text == "" {
		return text
	}

	colors := GenerateGradientColors(start, end, utf8.RuneCountInString(text))
	var b strings.Builder
	i := 0
	for _, ch := range text {
		b.WriteString(RGBToANSIColor(colors[i]))
		b.WriteRune(ch)
		i++
	}
	b.WriteString(Reset)
	return b.String()
}

// SectionTitle 带分隔线的章节标题
func SectionTitle(title string, useColor bool) string {
	line := strings.Repeat("═", 40)
	return strings.Join([]string{
		GradientText(line, TitleStart, TitleEnd, useColor),
		GradientText(title, TitleStart, TitleEnd, useColor),
		GradientText(line, TitleStart, TitleEnd, useColor),
	}, "\n")
}
