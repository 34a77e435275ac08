package extractor

import (
	"sync"

	prose "github.com/jdkato/prose/v2"
)

// NameTagger 词性标注能力的抽象
// 名字提取在标注器不可用时可以降级到纯启发式，所以这里建模为可注入接口
type NameTagger interface {
	// ProperNounSequences 返回文本中连续专有名词token组成的序列，按出现顺序
	ProperNounSequences(text string) ([][]string, error)
}

// ProseTagger 基于jdkato/prose词性标注模型的NameTagger实现
// 底层模型按进程加载一次；标注调用加锁串行化，避免并发复用内部状态
type ProseTagger struct {
	mu sync.Mutex
}

// NewProseTagger 创建词性标注器
func NewProseTagger() *ProseTagger {
	return &ProseTagger{}
}

// ProperNounSequences 实现NameTagger接口
func (t *ProseTagger) ProperNounSequences(text string) ([][]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	doc, err := prose.NewDocument(text,
		prose.WithExtraction(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return nil, err
	}

	var sequences [][]string
	var current []string
	for _, tok := range doc.Tokens() {
		if tok.Tag == "NNP" || tok.Tag == "NNPS" {
			current = append(current, tok.Text)
			continue
		}
		if len(current) >= 2 {
			sequences = append(sequences, truncateSequence(current))
		}
		current = nil
	}
	if len(current) >= 2 {
		sequences = append(sequences, truncateSequence(current))
	}
	return sequences, nil
}

// 姓名最多取4个连续专有名词
func truncateSequence(seq []string) []string {
	if len(seq) > 4 {
		return seq[:4]
	}
	return seq
}
