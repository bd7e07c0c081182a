package model

// swagger:model Achievement
type Achievement struct {
	BaseModel   `yaml:"-"`
	Title       string `gorm:"size:100;not null" json:"title" yaml:"title"`
	Description string `gorm:"size:255" json:"description" yaml:"description"`
	Position    int    `gorm:"default:0" json:"-" yaml:"-"`
}

func (Achievement) TableName() string {
	return "achievements"
}
