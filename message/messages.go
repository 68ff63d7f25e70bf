package message

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultLanguage 默认语言
const DefaultLanguage = "zh_CN"

// Messages 国际化消息
type Messages struct {
	LangCode string            `json:"lang_code"`
	Messages map[string]string `json:"messages"`
}

var catalogues = map[string]map[string]string{
	"zh_CN": {
		"title":                 "LearTools · 仅保留领地区域",
		"checking":              "🔍 检查路径...",
		"world_info":            "🌍 世界: %s (数据版本 %d)",
		"directory_type":        "📁 区域目录: %s (%s)",
		"residences_found":      "🏠 找到领地: %d",
		"covered_regions":       "🧭 覆盖区域: %d",
		"region_missing":        "⚠️  %s 不存在于 %s，继续...",
		"dry_run":               "🧪 演练模式，不会写入任何文件",
		"copying":               "🔄 开始复制...",
		"copy_progress":         "复制中",
		"summary_title":         "📊 统计",
		"summary_original":      "原有区域: %d",
		"summary_copied":        "成功复制区域: %d，缺失区域: %d",
		"summary_planned":       "将复制区域: %d，缺失区域: %d",
		"summary_size":          "区域大小: %s → %s",
		"success":               "✅ 完成",
		"failed":                "❌ 失败",
		"prompt_residence_file": "领地存档文件 (.yml) 路径",
		"prompt_old_world":      "输入世界目录",
		"prompt_new_world":      "输出世界目录",
		"overwrite_caution":     "@@@@@@@@----注意----@@@@@@@@\n新世界路径已被占用。\n将删除以下文件/目录:\n%s",
		"overwrite_prompt":      "确认覆盖请输入 '%s'",
		"overwrite_confirmed":   "已确认操作。",
		"overwrite_cancelled":   "操作已取消。",
		"err_path_not_found":    "未找到 %s: %s",
		"err_format":            "领地存档格式错误: %s",
		"err_format_line":       "领地存档格式错误 (第 %d 行): %s",
		"err_permission":        "创建目录时权限不足: %s",
		"err_declined":          "用户拒绝覆盖目标路径",
		"err_dest_in_source":    "输出目录与输入世界目录不能互相包含: %s ↔ %s",
		"err_usage":             "参数错误: %v",
		"err_unexpected":        "错误: %v",
		"input_eof":             "输入已结束",
	},
	"en_US": {
		"title":                 "LearTools · residences only",
		"checking":              "🔍 Checking paths...",
		"world_info":            "🌍 World: %s (data version %d)",
		"directory_type":        "📁 Region directory: %s (%s)",
		"residences_found":      "🏠 Residences found: %d",
		"covered_regions":       "🧭 Covered regions: %d",
		"region_missing":        "⚠️  %s not found in %s. Continuing...",
		"dry_run":               "🧪 Dry run, nothing will be written",
		"copying":               "🔄 Copying...",
		"copy_progress":         "copying",
		"summary_title":         "📊 Summary",
		"summary_original":      "Original regions: %d",
		"summary_copied":        "Successful copied regions: %d, Failed regions: %d",
		"summary_planned":       "Regions to copy: %d, Missing regions: %d",
		"summary_size":          "Region size: %s → %s",
		"success":               "✅ Success",
		"failed":                "❌ Failed",
		"prompt_residence_file": "Residence save file (.yml) path",
		"prompt_old_world":      "Input world directory",
		"prompt_new_world":      "Output world directory",
		"overwrite_caution":     "@@@@@@@@----CAUTION----@@@@@@@@\nNew world directory path is already used.\nThis program will remove this file / directory:\n%s",
		"overwrite_prompt":      "Overwrite it? Please type '%s' to confirm operation",
		"overwrite_confirmed":   "Operation Confirmed.",
		"overwrite_cancelled":   "Operation Cancelled.",
		"err_path_not_found":    "%s not found: %s",
		"err_format":            "Residence file format error: %s",
		"err_format_line":       "Residence file format error at line %d: %s",
		"err_permission":        "Permission denied when creating %s",
		"err_declined":          "overwrite of the destination was declined",
		"err_dest_in_source":    "output and input world directories must not contain each other: %s ↔ %s",
		"err_usage":             "usage error: %v",
		"err_unexpected":        "error: %v",
		"input_eof":             "input closed",
	},
}

// Languages 内置语言列表
func Languages() []string {
	return []string{"zh_CN", "en_US"}
}

// LoadMessages 加载指定语言的消息
func LoadMessages(langCode string) (*Messages, error) {
	return LoadMessagesFrom("message", langCode)
}

// LoadMessagesFrom 加载内置消息后，再用 dir/<langCode>.json 中的条目覆盖
func LoadMessagesFrom(dir, langCode string) (*Messages, error) {
	base, ok := catalogues[langCode]
	if !ok {
		base = catalogues[DefaultLanguage]
	}

	msg := &Messages{
		LangCode: langCode,
		Messages: make(map[string]string, len(base)),
	}
	for k, v := range base {
		msg.Messages[k] = v
	}

	// 尝试从文件加载特定语言的消息
	data, err := os.ReadFile(filepath.Join(dir, langCode+".json"))
	if err != nil {
		return msg, nil
	}
	var fileMsg map[string]string
	if err := json.Unmarshal(data, &fileMsg); err != nil {
		return msg, fmt.Errorf("parse %s messages: %w", langCode, err)
	}
	for k, v := range fileMsg {
		msg.Messages[k] = v
	}
	return msg, nil
}

// Get 获取指定键的消息
func (m *Messages) Get(key string) string {
	if msg, exists := m.Messages[key]; exists {
		return msg
	}
	return key // 返回键名作为默认值
}

// Format 获取消息并格式化
func (m *Messages) Format(key string, a ...any) string {
	return fmt.Sprintf(m.Get(key), a...)
}
