package model

// Result is JSON-serialisable as-is.
type Result struct {
	Separator string `json:"separator"`           // separator as given
	ByteCount int    `json:"byteCount"`           // bytes in the source buffer
	ViewCount int    `json:"viewCount"`           // fields produced by the split
	Truncated bool   `json:"truncated,omitempty"` // Views holds fewer than ViewCount
	Views     []Span `json:"views"`               // empty (not nil) when there are no fields
}

// Span is one field of the split.
type Span struct {
	Idx   int    `json:"idx"`
	Begin int    `json:"begin"` // byte offset, inclusive
	End   int    `json:"end"`   // byte offset, exclusive
	Text  string `json:"text"`
}

// SplitRequest is the JSON body of POST /v1/split.
type SplitRequest struct {
	Text      string `json:"text"`            // 분할할 텍스트
	Separator string `json:"separator"`       // 구분자 (필수, 빈 문자열 불가)
	Limit     int    `json:"limit,omitempty"` // 응답에 포함할 최대 필드 수 (0 = 전부)
}
