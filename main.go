// @title Practice Service API
// @version 1.0
// @description 国际中文教师练习题生成与评分服务。

// @host localhost:8080
// @BasePath /

package main

import (
	"os"

	"practice_backend/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
