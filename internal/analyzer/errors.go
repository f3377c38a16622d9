package analyzer

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrNetwork covers transport failures and non-2xx responses.
	ErrNetwork = errors.New("analysis service unreachable")
	// ErrMalformed covers 2xx responses that are not a valid draft.
	ErrMalformed = errors.New("analysis service returned a malformed response")
	// ErrImageCount is returned before any request when the image count is out of range.
	ErrImageCount = fmt.Errorf("between %d and %d images are required", MinImages, MaxImages)
)

// Kind classifies a ServiceError.
type Kind string

const (
	KindNetwork   Kind = "network"
	KindHTTP      Kind = "http"
	KindMalformed Kind = "malformed"
)

// ServiceError is returned by Client.Analyze for any remote failure.
type ServiceError struct {
	Kind    Kind
	Status  int    // HTTP status, 0 for transport errors
	Message string // server-supplied message when available
	Err     error
}

func (e *ServiceError) Error() string {
	switch e.Kind {
	case KindHTTP:
		if e.Message != "" {
			return fmt.Sprintf("analysis failed (%d): %s", e.Status, e.Message)
		}
		return fmt.Sprintf("analysis failed (%d)", e.Status)
	case KindMalformed:
		return fmt.Sprintf("%v: %v", ErrMalformed, e.Err)
	default:
		return fmt.Sprintf("%v: %v", ErrNetwork, e.Err)
	}
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the sentinel for the error's kind.
func (e *ServiceError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork || e.Kind == KindHTTP
	case ErrMalformed:
		return e.Kind == KindMalformed
	}
	return false
}

// UserMessage is the text to show the user for err.
func UserMessage(err error) string {
	var se *ServiceError
	switch {
	case errors.Is(err, ErrImageCount):
		return "请上传 1-6 张图片"
	case errors.As(err, &se) && se.Kind == KindHTTP && se.Message != "":
		return se.Message
	case errors.Is(err, ErrMalformed):
		return "AI 返回的格式无法解析"
	case errors.Is(err, ErrNetwork):
		return "连接 AI 服务失败，请检查网络或稍后再试"
	default:
		return "识别失败"
	}
}
