package database

import (
	"fmt"
	"log"

	"practice_backend/internal/config"
	"practice_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 首次迁移时写入的默认知识维度
var defaultDimensions = []model.KnowledgeDimension{
	{ID: 101, Name: "汉语语言要素教学", Description: "语音、词汇、语法、汉字的教学方法"},
	{ID: 102, Name: "第二语言习得", Description: "习得规律、中介语与偏误分析"},
	{ID: 103, Name: "课堂组织与管理", Description: "课堂活动组织、纪律与节奏控制"},
	{ID: 104, Name: "教学设计", Description: "教学目标、环节与任务设计"},
	{ID: 105, Name: "跨文化交际", Description: "文化差异意识与跨文化沟通策略"},
	{ID: 106, Name: "课堂提问与反馈", Description: "分层提问、等待时间与即时反馈"},
	{ID: 107, Name: "教学评价", Description: "形成性评价、同伴互评与测试设计"},
	{ID: 108, Name: "中华文化传播", Description: "文化教学内容选择与呈现方式"},
}

func dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres", "":
		return postgres.Open(cfg.URL), nil
	case "mysql":
		return mysql.Open(cfg.URL), nil
	case "sqlite":
		return sqlite.Open(cfg.URL), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	if cfg.Driver == "sqlite" {
		// 内存库每个连接相互独立
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")
	return db, nil
}

// Migrate 建表并在目录为空时写入默认维度
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.KnowledgeDimension{},
		&model.Question{},
		&model.QuestionKdRelation{},
		&model.AnswerRecord{},
	)
	if err != nil {
		return err
	}

	var count int64
	if err := db.Model(&model.KnowledgeDimension{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		dims := make([]model.KnowledgeDimension, len(defaultDimensions))
		copy(dims, defaultDimensions)
		if err := db.Create(&dims).Error; err != nil {
			return err
		}
	}
	return nil
}
