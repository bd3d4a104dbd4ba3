package insight

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/matzehuels/feedscope/pkg/aggregate"
	"github.com/matzehuels/feedscope/pkg/errors"
	"github.com/matzehuels/feedscope/pkg/feedback"
)

// Request is the body sent to the insight service.
type Request struct {
	Keywords       []feedback.Keyword `json:"keywords"`
	TotalFeedbacks int                `json:"totalFeedbacks"`
	AverageRating  float64            `json:"averageRating"`
	PositiveRatio  float64            `json:"positiveRatio"`
	NeutralRatio   float64            `json:"neutralRatio"`
	NegativeRatio  float64            `json:"negativeRatio"`
}

// NewRequest builds a request from a report.
func NewRequest(rep *aggregate.Report) Request {
	kws := rep.TopKeywords
	if kws == nil {
		kws = []feedback.Keyword{}
	}
	return Request{
		Keywords:       kws,
		TotalFeedbacks: rep.Summary.TotalCount,
		AverageRating:  rep.Summary.AverageRating,
		PositiveRatio:  rep.Summary.PositiveRatio,
		NeutralRatio:   rep.Summary.NeutralRatio,
		NegativeRatio:  rep.Summary.NegativeRatio,
	}
}

// Validate checks the request before it is sent. The keyword list must be
// present (it may be empty), counts non-negative, and every ratio a finite
// fraction in [0, 1].
func (r Request) Validate() error {
	if r.Keywords == nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid or missing keywords data")
	}
	if err := feedback.ValidateKeywords(r.Keywords); err != nil {
		return err
	}
	if r.TotalFeedbacks < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "totalFeedbacks must be non-negative, got %d", r.TotalFeedbacks)
	}
	if math.IsNaN(r.AverageRating) || math.IsInf(r.AverageRating, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "averageRating must be a finite number")
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"positiveRatio", r.PositiveRatio},
		{"neutralRatio", r.NeutralRatio},
		{"negativeRatio", r.NegativeRatio},
	} {
		if math.IsNaN(f.v) || f.v < 0 || f.v > 1 {
			return errors.New(errors.ErrCodeInvalidInput, "%s must be between 0 and 1, got %v", f.name, f.v)
		}
	}
	return nil
}

// Prompt renders the analysis prompt for the request. Services that talk
// to a language model directly can send it as is; the report date is
// formatted in Traditional Chinese like the rest of the prompt.
func (r Request) Prompt(date time.Time) string {
	var kw strings.Builder
	for i, k := range r.Keywords {
		if i > 0 {
			kw.WriteByte('\n')
		}
		fmt.Fprintf(&kw, "%s: %d次", k.Word, k.Count)
	}

	return fmt.Sprintf(promptTemplate,
		fmt.Sprintf("%d年%d月%d日", date.Year(), int(date.Month()), date.Day()),
		r.TotalFeedbacks,
		formatNumber(r.AverageRating),
		r.PositiveRatio*100,
		r.NeutralRatio*100,
		r.NegativeRatio*100,
		kw.String(),
	)
}

func formatNumber(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

const promptTemplate = `請根據以下數據生成一份深入的分析報告，並遵循指定的格式要求：

報告日期：%s

分析數據：
- 總回饋數量：%d
- 平均評分：%s
- 正面評價比例：%.1f%%
- 中性評價比例：%.1f%%
- 負面評價比例：%.1f%%

關鍵詞出現頻率（前20名）：
%s

請依照以下格式生成分析報告：

**整體趨勢分析**
1. [趨勢觀察點1]
2. [趨勢觀察點2]
3. [趨勢觀察點3]

**關鍵議題分析**
1. [主要議題1]
2. [主要議題2]
3. [主要議題3]

**問題與風險**
1. [問題點1]
2. [問題點2]
3. [問題點3]

**改進建議**
1. [建議1]
2. [建議2]
3. [建議3]

**優先執行事項**
1. [優先項目1]
2. [優先項目2]
3. [優先項目3]

請注意：
1. 每個分析點都需要具體的數據支持
2. 使用繁體中文
3. 保持專業、具體且有洞察力
4. 不要使用項目符號(*)，請使用數字列表
5. 確保內容清晰易讀，重點突出`
