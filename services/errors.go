package services

import (
	"errors"
	"fmt"
	"strings"
)

// GenerationErrorKind phân loại lỗi từ remote generator.
// Tagged kind thay cho việc sniff chuỗi message, để classification
// không phụ thuộc wording của SDK.
type GenerationErrorKind int

const (
	GenerationUnknown GenerationErrorKind = iota
	GenerationQuota
	GenerationRateLimited
	GenerationTimeout
)

func (k GenerationErrorKind) String() string {
	switch k {
	case GenerationQuota:
		return "quota"
	case GenerationRateLimited:
		return "rate_limited"
	case GenerationTimeout:
		return "timeout"
	}
	return "unknown"
}

// GenerationError bọc lỗi gốc của adapter kèm kind đã phân loại.
type GenerationError struct {
	Kind GenerationErrorKind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("survey generation failed (%s): %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// IsTransientGenerationError quyết định có fallback sang mock hay không.
// Ưu tiên tagged kind; với lỗi lạ không mang tag thì mới sniff message
// (quota / rate limit / timeout là các lỗi upstream hay gặp nhất).
func IsTransientGenerationError(err error) bool {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		switch genErr.Kind {
		case GenerationQuota, GenerationRateLimited, GenerationTimeout:
			return true
		case GenerationUnknown:
			// vẫn sniff message bên dưới: SDK có thể trả 429 mà
			// adapter không map được code cụ thể
		}
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "insufficient_quota") ||
		strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate") ||
		strings.Contains(msg, "timeout")
}
