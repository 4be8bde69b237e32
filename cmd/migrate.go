package cmd

import (
	"fmt"

	"practice_backend/pkg/database"
	"practice_backend/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "执行数据库迁移并写入默认知识维度后退出",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger.InitLogger(cfg)
		defer logger.Log.Sync()

		db, err := database.InitDB(&cfg.Database)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		logger.Log.Info("数据库迁移完成", zap.String("driver", cfg.Database.Driver))
		return nil
	},
}
