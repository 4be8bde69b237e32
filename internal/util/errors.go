package util

import "errors"

var (
	ErrQuestionNotFound = errors.New("题目不存在或已删除")
	ErrPersistence      = errors.New("数据写入失败")
)
