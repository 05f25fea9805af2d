package errors

import "fmt"

// Form is the poem form a check was run for.
type Form string

const (
	FormShi Form = "shi"
	FormCi  Form = "ci"
)

// Engine codes for shi checks.
const (
	ShiBadLength = 1
	ShiNoRhyme   = 2
)

// Engine codes for ci checks.
const (
	CiUnknownName  = 0
	CiNoVariant    = 1
	CiBadVariant   = 2
	CiNoTemplate   = 3
	CiNoLongRecord = 4
)

// CheckError is a terminal result of a check: the input cannot be analyzed.
type CheckError struct {
	Form Form
	Code int
	// Length is the number of Han characters the input held.
	Length int
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("%s check failed with code %d: %s", e.Form, e.Code, e.Message())
}

// Message returns the user-facing description of the failure.
func (e *CheckError) Message() string {
	switch e.Form {
	case FormShi:
		switch e.Code {
		case ShiBadLength:
			return fmt.Sprintf("诗的字数不正确，可能有不能识别的生僻字，你输入了%d字", e.Length)
		case ShiNoRhyme:
			return "你输入的每一个韵脚都不在韵书里面诶，我没法分析的！"
		}
	case FormCi:
		switch e.Code {
		case CiUnknownName:
			return "不能找到你输入的词牌！"
		case CiNoVariant:
			return fmt.Sprintf("格式与输入词牌不匹配，可能有不能识别的生僻字，你输入了%d字！", e.Length)
		case CiBadVariant:
			return "格式数字错误！"
		case CiNoTemplate:
			return fmt.Sprintf("输入的内容无法匹配已有的词牌，请检查内容或将词谱更换为钦谱，你输入了%d字", e.Length)
		case CiNoLongRecord:
			return "龙谱中没有该词谱，请切换为钦谱。"
		}
	}
	return "无法分析"
}

// Shi creates a shi check error.
func Shi(code, length int) *CheckError {
	return &CheckError{Form: FormShi, Code: code, Length: length}
}

// Ci creates a ci check error.
func Ci(code, length int) *CheckError {
	return &CheckError{Form: FormCi, Code: code, Length: length}
}
