package model

// KnowledgeDimension 知识维度目录，业务侧只读
type KnowledgeDimension struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;not null" json:"name"`
	Description string `gorm:"size:200" json:"description"`
}

func (KnowledgeDimension) TableName() string {
	return "knowledge_dimension"
}
