package scanner

// SourceError scanAll中单个内容源的失败记录
type SourceError struct {
	Source  SourceKind `json:"source"`
	Message string     `json:"message"`
}

// Report scanAll的聚合结果。部分内容源失败时data仍包含其余内容源的
// 结果，下游必须把部分数据视为可用，而不是丢弃整个报告
type Report struct {
	Success  bool                   `json:"success"`
	Data     map[SourceKind][]Chunk `json:"data"`
	Summary  map[SourceKind]int     `json:"summary"`
	Errors   []SourceError          `json:"errors"`
	Duration float64                `json:"duration"`
}

// newReport 创建空报告，所有内容源类型预置空结果
func newReport() *Report {
	r := &Report{
		Success: true,
		Data:    make(map[SourceKind][]Chunk, len(AllKinds())),
		Summary: make(map[SourceKind]int, len(AllKinds())),
		Errors:  []SourceError{},
	}
	for _, kind := range AllKinds() {
		r.Data[kind] = []Chunk{}
		r.Summary[kind] = 0
	}
	return r
}

// addResult 记录单个内容源的成功结果
func (r *Report) addResult(kind SourceKind, chunks []Chunk) {
	if chunks == nil {
		chunks = []Chunk{}
	}
	r.Data[kind] = chunks
	r.Summary[kind] = len(chunks)
}

// addError 记录单个内容源的失败，success随之置为false
func (r *Report) addError(kind SourceKind, err error) {
	r.Errors = append(r.Errors, SourceError{Source: kind, Message: err.Error()})
	r.Success = false
}

// TotalChunks 返回全部内容块数量
func (r *Report) TotalChunks() int {
	total := 0
	for _, n := range r.Summary {
		total += n
	}
	return total
}
